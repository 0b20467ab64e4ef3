package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	"github.com/jonielmendes/AlugaLarCorrente/internal/tasks"
)

// MediaCleanupHandler 处理图片清理任务
type MediaCleanupHandler struct {
	store repository.MediaStore
}

// NewMediaCleanupHandler 创建 Handler 实例
func NewMediaCleanupHandler(store repository.MediaStore) *MediaCleanupHandler {
	if store == nil {
		panic("MediaStore cannot be nil for MediaCleanupHandler")
	}
	return &MediaCleanupHandler{store: store}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *MediaCleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID, _ := asynq.GetTaskID(ctx)
	currentRetry, _ := asynq.GetRetryCount(ctx)
	logCtx := logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
		"retry":     currentRetry,
	})

	payload, err := tasks.ParseMediaCleanupPayload(t)
	if err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx = logCtx.WithField("listing_id", payload.ListingID)

	// 只删除属于自己存储桶的对象，外部 URL 直接跳过
	keys := make([]string, 0, len(payload.Refs))
	for _, ref := range payload.Refs {
		if key, ok := h.store.KeyFromRef(ref); ok {
			keys = append(keys, key)
		} else {
			logCtx.WithField("ref", ref).Debug("Skipping media reference outside the bucket")
		}
	}
	if len(keys) == 0 {
		logCtx.Info("No media objects to clean up")
		return nil
	}

	if err := h.store.Delete(ctx, keys...); err != nil {
		logCtx.WithError(err).Warn("Media cleanup failed, will retry")
		return fmt.Errorf("delete media of listing %d: %w", payload.ListingID, err)
	}
	logCtx.WithField("objects", len(keys)).Info("Media cleanup task processed successfully")
	return nil
}
