package repository

import (
	"context"
	"time"
)

// PresignedUpload 是一次直传对象存储的授权。
type PresignedUpload struct {
	Key       string
	UploadURL string
	PublicURL string
	ExpiresIn time.Duration
}

// MediaStore 抽象房源图片所在的对象存储 (S3 兼容)。
type MediaStore interface {
	// PresignUpload 为 key 生成一个 PUT 预签名 URL。
	PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error)

	// KeyFromRef 把图片引用 (对象 key 或公开 URL) 解析为对象 key。
	// 引用指向其他域名时返回 false。
	KeyFromRef(ref string) (string, bool)

	// Delete 删除对象，不存在的对象视为已删除。
	Delete(ctx context.Context, keys ...string) error
}
