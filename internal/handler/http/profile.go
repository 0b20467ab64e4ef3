package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

// ProfileHandler 处理 /api/perfil/
type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserOut(user))
}

// Update 同时处理 PUT 与 PATCH，请求中缺省的字段保持不变
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var in dto.ProfileWrite
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.profileService.Update(c.Request.Context(), userID, in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserOut(user))
}
