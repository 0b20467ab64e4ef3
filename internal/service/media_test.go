package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository/mocks"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

var galleryKey = regexp.MustCompile(`^imoveis/galeria/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.jpeg$`)

func TestMediaService_Presign_GalleryKey(t *testing.T) {
	store := mocks.NewMediaStore(t)
	svc := service.NewMediaService(store)
	ctx := context.Background()

	store.On("PresignUpload", ctx, mock.MatchedBy(galleryKey.MatchString), "image/jpeg").
		Return(func(_ context.Context, key, _ string) *repository.PresignedUpload {
			return &repository.PresignedUpload{Key: key, UploadURL: "https://s3/put", ExpiresIn: 15 * time.Minute}
		}, nil).Once()

	up, err := svc.Presign(ctx, 1, "galeria", "Image/JPEG", "sala.JPEG")
	require.NoError(t, err)
	assert.Regexp(t, galleryKey, up.Key)
}

func TestMediaService_Presign_MainPhotoUsesTypeExtension(t *testing.T) {
	store := mocks.NewMediaStore(t)
	svc := service.NewMediaService(store)
	ctx := context.Background()

	store.On("PresignUpload", ctx, mock.MatchedBy(func(key string) bool {
		return regexp.MustCompile(`^imoveis/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.png$`).MatchString(key)
	}), "image/png").Return(&repository.PresignedUpload{}, nil).Once()

	_, err := svc.Presign(ctx, 1, "principal", "image/png", "foto.jpg")
	assert.NoError(t, err)
}

func TestMediaService_Presign_Rejections(t *testing.T) {
	store := mocks.NewMediaStore(t)
	svc := service.NewMediaService(store)
	ctx := context.Background()

	_, err := svc.Presign(ctx, 1, "avatar", "image/png", "")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "destino")

	_, err = svc.Presign(ctx, 1, "principal", "application/pdf", "a.pdf")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "content_type")

	store.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaService_Presign_StoreFailure(t *testing.T) {
	store := mocks.NewMediaStore(t)
	svc := service.NewMediaService(store)
	ctx := context.Background()

	store.On("PresignUpload", ctx, mock.Anything, "image/webp").Return(nil, errors.New("no credentials")).Once()

	_, err := svc.Presign(ctx, 1, "principal", "image/webp", "")
	assert.ErrorIs(t, err, service.ErrInternalServer)
}
