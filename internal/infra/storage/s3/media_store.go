package s3storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	deleteObjects = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error) {
		return c.DeleteObjects(ctx, in)
	}
)

// Config 是对象存储的连接配置
type Config struct {
	Endpoint      string // 为空时使用 AWS 默认端点
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // 对外访问图片的 URL 前缀，例如 https://cdn.example.com/media
	PresignTTL    time.Duration
}

// MediaStore 是 repository.MediaStore 的 S3 实现
type MediaStore struct {
	cfg     Config
	client  *s3.Client
	presign *s3.PresignClient
}

var _ repository.MediaStore = (*MediaStore)(nil)

// NewMediaStore 加载 AWS 配置并创建 S3 客户端
func NewMediaStore(ctx context.Context, cfg Config) (*MediaStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket must be set")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO 等自建服务只支持 path-style
			o.UsePathStyle = true
		}
	})

	return &MediaStore{
		cfg:     cfg,
		client:  client,
		presign: newS3PresignClient(client),
	}, nil
}

// PresignUpload 生成 PUT 预签名 URL
func (m *MediaStore) PresignUpload(ctx context.Context, key, contentType string) (*repository.PresignedUpload, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	req, err := presignPutObject(m.presign, ctx, in, s3.WithPresignExpires(m.cfg.PresignTTL))
	if err != nil {
		return nil, fmt.Errorf("s3: presign put %s: %w", key, err)
	}
	return &repository.PresignedUpload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: m.PublicURL(key),
		ExpiresIn: m.cfg.PresignTTL,
	}, nil
}

// PublicURL 返回对象的公开访问地址
func (m *MediaStore) PublicURL(key string) string {
	base := strings.TrimSuffix(m.cfg.PublicBaseURL, "/")
	if base == "" {
		return key
	}
	return base + "/" + strings.TrimPrefix(key, "/")
}

// KeyFromRef 解析图片引用
func (m *MediaStore) KeyFromRef(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	if base := strings.TrimSuffix(m.cfg.PublicBaseURL, "/"); base != "" && strings.HasPrefix(ref, base+"/") {
		return strings.TrimPrefix(ref, base+"/"), true
	}
	if strings.Contains(ref, "://") {
		return "", false
	}
	key := path.Clean(strings.TrimPrefix(ref, "/"))
	if key == "." || strings.HasPrefix(key, "../") {
		return "", false
	}
	return key, true
}

// Delete 批量删除对象
func (m *MediaStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	objs := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		objs = append(objs, types.ObjectIdentifier{Key: aws.String(k)})
	}
	out, err := deleteObjects(m.client, ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(m.cfg.Bucket),
		Delete: &types.Delete{Objects: objs, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("s3: delete %d objects: %w", len(keys), err)
	}
	if out != nil && len(out.Errors) > 0 {
		for _, e := range out.Errors {
			logrus.WithFields(logrus.Fields{
				"key":  aws.ToString(e.Key),
				"code": aws.ToString(e.Code),
			}).Warn("S3 object delete failed")
		}
		return fmt.Errorf("s3: %d of %d objects could not be deleted", len(out.Errors), len(keys))
	}
	return nil
}
