package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflow/internal/models"
)

type countingJob struct {
	wg  *sync.WaitGroup
	n   *atomic.Int32
	err error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) error {
	defer j.wg.Done()
	j.n.Add(1)
	return j.err
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := NewPool(3, 4)
	p.Start(context.Background())
	defer p.Stop()

	var wg sync.WaitGroup
	var n atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		var err error
		if i%2 == 0 {
			err = errors.New("job failed")
		}
		require.NoError(t, p.Submit(context.Background(), &countingJob{wg: &wg, n: &n, err: err}))
	}
	wg.Wait()
	assert.Equal(t, int32(10), n.Load())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	var wg sync.WaitGroup
	var n atomic.Int32
	err := p.Submit(context.Background(), &countingJob{wg: &wg, n: &n})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_SubmitRespectsContext(t *testing.T) {
	// not started: the single queue slot fills and the next submit must give up
	p := NewPool(1, 1)
	var wg sync.WaitGroup
	var n atomic.Int32
	require.NoError(t, p.Submit(context.Background(), &countingJob{wg: &wg, n: &n}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Submit(ctx, &countingJob{wg: &wg, n: &n})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, p.QueueSize())
}

type stubSessions struct {
	mu    sync.Mutex
	users []int64
	err   error
}

func (s *stubSessions) GetOrCreateToday(_ context.Context, userID, _ int64) (*models.DailySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, userID)
	if s.err != nil {
		return nil, s.err
	}
	return &models.DailySession{ID: 1, UserID: userID}, nil
}

func TestBuildSessionJob(t *testing.T) {
	sessions := &stubSessions{}
	job := &BuildSessionJob{Sessions: sessions, UserID: 8}

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []int64{8}, sessions.users)
	assert.Equal(t, "build_session", job.Name())

	sessions.err = errors.New("boom")
	assert.Error(t, job.Run(context.Background()))
}
