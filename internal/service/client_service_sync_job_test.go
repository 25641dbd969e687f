package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// countingSyncService is a hand-rolled stub: the job only needs Sync to be
// callable and countable.
type countingSyncService struct {
	calls atomic.Int32
}

func (s *countingSyncService) Sync(ctx context.Context) error {
	s.calls.Add(1)
	return nil
}

func (s *countingSyncService) IsSyncing() bool { return false }

func TestClientSyncJob_TicksAndStops(t *testing.T) {
	stub := &countingSyncService{}
	job := NewClientSyncJob(stub)

	job.Start(context.Background(), 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return stub.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	job.Stop()
	after := stub.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, stub.calls.Load())
}

func TestClientSyncJob_StopWithoutStartIsNoOp(t *testing.T) {
	job := NewClientSyncJob(&countingSyncService{})
	job.Stop()
}

func TestClientSyncJob_RestartReplacesPreviousJob(t *testing.T) {
	stub := &countingSyncService{}
	job := NewClientSyncJob(stub)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return stub.calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_ContextCancelStopsTicking(t *testing.T) {
	stub := &countingSyncService{}
	job := NewClientSyncJob(stub)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	cancel()

	time.Sleep(30 * time.Millisecond)
	after := stub.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, stub.calls.Load())

	job.Stop()
}
