package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

// MediaHandler 为客户端签发图片直传地址
type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Presign 返回对象 key、PUT 地址以及上传后可以写入房源的公开 URL
func (h *MediaHandler) Presign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.PresignRequest
	if !bindJSON(c, &req) {
		return
	}

	up, err := h.mediaService.Presign(c.Request.Context(), userID, req.Destino, req.ContentType, req.Filename)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PresignResponse{
		Key:       up.Key,
		UploadURL: up.UploadURL,
		URL:       up.PublicURL,
		ExpiresIn: int(up.ExpiresIn.Seconds()),
	})
}
