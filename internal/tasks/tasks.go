package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// 定义任务类型常量
const (
	TypeMediaCleanup = "media:cleanup" // 删除房源后清理对象存储中的图片
)

// MediaCleanupPayload 定义了图片清理任务的数据结构
type MediaCleanupPayload struct {
	ListingID uint     `json:"listing_id"`
	Refs      []string `json:"refs"` // 图片引用 (对象 key 或公开 URL)
}

// NewMediaCleanupTask 创建一个图片清理任务
func NewMediaCleanupTask(listingID uint, refs []string) (*asynq.Task, error) {
	payload, err := json.Marshal(MediaCleanupPayload{ListingID: listingID, Refs: refs})
	if err != nil {
		return nil, fmt.Errorf("marshal media cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeMediaCleanup, payload,
		asynq.Queue("low"),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	), nil
}

// ParseMediaCleanupPayload 解析图片清理任务
func ParseMediaCleanupPayload(t *asynq.Task) (*MediaCleanupPayload, error) {
	var p MediaCleanupPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
