package worker

import (
	"context"
	"errors"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	"github.com/jonielmendes/AlugaLarCorrente/internal/tasks"
)

// WorkerServer 运行后台任务 (目前只有删除房源后的图片清理)
type WorkerServer struct {
	server *asynq.Server
	log    *logrus.Entry
	media  repository.MediaStore
}

// NewWorkerServer 创建 WorkerServer，concurrency <= 0 时使用 1
func NewWorkerServer(redisOpt asynq.RedisClientOpt, concurrency int, media repository.MediaStore, logger *logrus.Logger) *WorkerServer {
	if concurrency <= 0 {
		concurrency = 1
	}
	logEntry := logger.WithField("component", "worker_server")

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		// 清理任务走 low 队列，default 预留给之后的任务类型
		Queues: map[string]int{
			"default": 3,
			"low":     1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			fields := logrus.Fields{"task_type": task.Type()}
			if id, ok := asynq.GetTaskID(ctx); ok {
				fields["task_id"] = id
			}
			if queue, ok := asynq.GetQueueName(ctx); ok {
				fields["queue"] = queue
			}
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			fields["retries"] = retried
			fields["max_retry"] = maxRetry
			logEntry.WithFields(fields).Errorf("Task failed: %v", err)
		}),
	})

	return &WorkerServer{server: server, log: logEntry, media: media}
}

// NewServeMux 注册所有任务处理器
func NewServeMux(media repository.MediaStore) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeMediaCleanup, NewMediaCleanupHandler(media))
	return mux
}

// Start 阻塞运行，应在单独的 goroutine 中调用
func (ws *WorkerServer) Start() {
	ws.log.Info("Worker server starting...")
	err := ws.server.Run(NewServeMux(ws.media))
	if err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, asynq.ErrServerClosed) {
		ws.log.Info("Worker server stopped.")
		return
	}
	ws.log.Fatalf("Could not run worker server: %v", err)
}

// Shutdown 等待正在执行的任务结束后关闭
func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	ws.server.Shutdown()
	ws.log.Info("Worker server shut down complete.")
}
