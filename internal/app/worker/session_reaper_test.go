package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"client_portal/internal/domain/model"
)

type fakeSessionRepo struct {
	deleteExpiredFn func(ctx context.Context) (int64, error)
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *model.Session) error { panic("not used") }

func (f *fakeSessionRepo) Find(ctx context.Context, id string) (*model.Session, error) {
	panic("not used")
}

func (f *fakeSessionRepo) Extend(ctx context.Context, id string, expiresAt time.Time) error {
	panic("not used")
}

func (f *fakeSessionRepo) Update(ctx context.Context, session *model.Session) error {
	panic("not used")
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error { panic("not used") }

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return f.deleteExpiredFn(ctx)
}

func TestSessionReaperDeletesOnTick(t *testing.T) {
	var calls int64
	repo := &fakeSessionRepo{deleteExpiredFn: func(ctx context.Context) (int64, error) {
		atomic.AddInt64(&calls, 1)
		return 3, nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewSessionReaper(repo, 10*time.Millisecond).Start(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}

	if atomic.LoadInt64(&calls) == 0 {
		t.Error("expected at least one reap tick")
	}
}

func TestSessionReaperDefaultsInterval(t *testing.T) {
	r := NewSessionReaper(&fakeSessionRepo{}, 0)
	if r.interval != time.Hour {
		t.Errorf("expected the interval to default to 1h, got %s", r.interval)
	}
}
