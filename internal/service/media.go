package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// 图片目的地对应的对象前缀
var mediaPrefixes = map[string]string{
	"principal": "imoveis",
	"galeria":   "imoveis/galeria",
}

// 允许的图片类型及扩展名
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

const msgInvalidImage = "Envie uma imagem válida. O arquivo enviado não é uma imagem ou está corrompido."

// MediaService 为客户端签发图片直传授权
type MediaService struct {
	store repository.MediaStore
	now   func() time.Time
}

// NewMediaService 创建 MediaService 实例
func NewMediaService(store repository.MediaStore) *MediaService {
	if store == nil {
		panic("MediaStore cannot be nil for MediaService")
	}
	return &MediaService{store: store, now: time.Now}
}

// Presign 生成对象 key 并返回 PUT 预签名 URL
func (s *MediaService) Presign(ctx context.Context, userID uint, destino, contentType, filename string) (*repository.PresignedUpload, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "destino": destino})

	prefix, ok := mediaPrefixes[destino]
	if !ok {
		return nil, NewValidationError("destino", invalidChoice(destino))
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, NewValidationError("content_type", msgInvalidImage)
	}
	// 文件名的扩展名与类型一致时保留原扩展名 (例如 .jpeg)
	if fe := strings.ToLower(path.Ext(filename)); fe != "" && imageExtensions[contentType] == normalizeExt(fe) {
		ext = fe
	}

	key := s.objectKey(prefix, ext)
	up, err := s.store.PresignUpload(ctx, key, contentType)
	if err != nil {
		logCtx.WithError(err).Error("MediaService: failed to presign upload")
		return nil, ErrInternalServer
	}
	logCtx.WithField("key", key).Info("Upload presigned")
	return up, nil
}

// objectKey 按日期分目录并使用随机文件名
func (s *MediaService) objectKey(prefix, ext string) string {
	d := s.now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", prefix, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func normalizeExt(ext string) string {
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}
