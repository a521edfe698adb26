package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Job statuses reported by Queue.Status.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	queueKey     = "tasks:queue"
	jobKeyPrefix = "tasks:job:"
	jobRetention = 24 * time.Hour
)

// Job is a unit of background work. Jobs are delivered at least once; a
// handler re-run after a crash may repeat side effects such as emails, which
// is tolerated rather than prevented.
type Job struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// Handler processes one job payload. A returned error marks the job failed
// with the error text as the failure reason; it never propagates to any
// foreground request.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Queue is a redis-list backed task queue. Producers push job IDs onto a
// list; worker goroutines pop and execute them, recording status in a
// per-job hash so callers can poll asynchronously.
type Queue struct {
	rdb      *redis.Client
	logger   *zap.Logger
	handlers map[string]Handler
}

// NewQueue creates a task queue on the given redis connection.
func NewQueue(rdb *redis.Client, logger *zap.Logger) *Queue {
	return &Queue{
		rdb:      rdb,
		logger:   logger,
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a job name. Must be called before Start.
func (q *Queue) Register(name string, h Handler) {
	q.handlers[name] = h
}

// ErrQueueUnavailable is returned when no redis connection backs the queue.
var ErrQueueUnavailable = errors.New("task queue is not available")

// Enqueue records a pending job and pushes it onto the queue.
func (q *Queue) Enqueue(ctx context.Context, name string, payload interface{}) (*Job, error) {
	if q.rdb == nil {
		return nil, ErrQueueUnavailable
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job payload: %w", err)
	}

	job := &Job{
		ID:         uuid.New().String(),
		Name:       name,
		Payload:    data,
		Status:     StatusPending,
		EnqueuedAt: time.Now().UTC(),
	}

	if err := q.writeJob(ctx, job); err != nil {
		return nil, err
	}
	if err := q.rdb.LPush(ctx, queueKey, job.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}

	q.logger.Info("job enqueued", zap.String("job_id", job.ID), zap.String("name", name))
	return job, nil
}

// Status returns the stored state of a job.
func (q *Queue) Status(ctx context.Context, jobID string) (*Job, error) {
	if q.rdb == nil {
		return nil, ErrQueueUnavailable
	}

	data, err := q.rdb.Get(ctx, jobKeyPrefix+jobID).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("job %s not found", jobID)
	}
	if err != nil {
		return nil, err
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Start launches workers worker goroutines that consume the queue until ctx
// is cancelled.
func (q *Queue) Start(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		go q.worker(ctx)
	}
}

func (q *Queue) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := q.rdb.BRPop(ctx, 5*time.Second, queueKey).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			q.logger.Warn("queue pop failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value]
		q.run(ctx, res[1])
	}
}

func (q *Queue) run(ctx context.Context, jobID string) {
	job, err := q.Status(ctx, jobID)
	if err != nil {
		q.logger.Warn("dequeued unknown job", zap.String("job_id", jobID), zap.Error(err))
		return
	}

	handler, ok := q.handlers[job.Name]
	if !ok {
		job.Status = StatusFailed
		job.Error = fmt.Sprintf("no handler registered for %q", job.Name)
		q.writeJob(ctx, job)
		return
	}

	job.Status = StatusProcessing
	q.writeJob(ctx, job)

	if err := handler(ctx, job.Payload); err != nil {
		q.logger.Error("job failed",
			zap.String("job_id", job.ID),
			zap.String("name", job.Name),
			zap.Error(err),
		)
		job.Status = StatusFailed
		job.Error = err.Error()
	} else {
		q.logger.Info("job completed", zap.String("job_id", job.ID), zap.String("name", job.Name))
		job.Status = StatusCompleted
	}
	q.writeJob(ctx, job)
}

func (q *Queue) writeJob(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := q.rdb.Set(ctx, jobKeyPrefix+job.ID, data, jobRetention).Err(); err != nil {
		return fmt.Errorf("failed to store job state: %w", err)
	}
	return nil
}
