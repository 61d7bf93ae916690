package jobs

import (
	"github.com/vytor/learnpulse/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	retentionPool *worker.Pool
	privacy       worker.RetentionApplier
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(retentionPool *worker.Pool, privacy worker.RetentionApplier) JobQueue {
	return &WorkerQueue{
		retentionPool: retentionPool,
		privacy:       privacy,
	}
}

func (q *WorkerQueue) EnqueueRetention(userID string) error {
	return q.retentionPool.Submit(&worker.RetentionJob{
		Privacy: q.privacy,
		UserID:  userID,
	})
}
