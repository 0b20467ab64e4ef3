package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/middleware"
)

// 通用的错误信息
const (
	msgNotFound    = "Não encontrado."
	msgInternal    = "Erro interno do servidor."
	msgForbidden   = "Você não tem permissão para modificar este imóvel."
	msgNoCreds     = "As credenciais de autenticação não foram fornecidas."
	msgInvalidPage = "Página inválida."
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// ValidationResponse 以 {字段: [错误信息]} 的形式返回 400
func ValidationResponse(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, fields)
}

// currentUserID 读取 Auth 中间件写入的用户 ID，缺失时写入 401 并返回 false
func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		logrus.WithField("path", c.FullPath()).Warn("Handler: User ID not found in context, middleware missing or failed?")
		ErrorResponse(c, http.StatusUnauthorized, msgNoCreds)
		return 0, false
	}
	return userID, true
}

// pathID 解析路径中的数字 ID，非数字按不存在处理
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		ErrorResponse(c, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return uint(id), true
}
