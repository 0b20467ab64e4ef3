package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

// HandleServiceError 把服务层错误映射为 HTTP 响应
func HandleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationResponse(c, verr.Fields)
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, "Credenciais inválidas")
	case errors.Is(err, service.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, msgForbidden)
	case errors.Is(err, service.ErrListingNotFound), errors.Is(err, service.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrLogoutFailed):
		ErrorResponse(c, http.StatusBadRequest, "Erro ao fazer logout")
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, msgInternal)
	}
}
