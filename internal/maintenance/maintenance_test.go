package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeJob struct {
	name     string
	schedule string
	runs     atomic.Int64
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(context.Context) error {
	j.runs.Add(1)
	return nil
}

func TestScheduler_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	s := NewScheduler(testLogger())
	if err := s.RegisterJob(&fakeJob{name: "a", schedule: "@hourly"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := s.RegisterJob(&fakeJob{name: "a", schedule: "@daily"}); err == nil {
		t.Error("duplicate register: expected error")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	t.Parallel()

	s := NewScheduler(testLogger())
	if err := s.RegisterJob(&fakeJob{name: "bad", schedule: "not a schedule"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Error("Start with invalid schedule: expected error")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	s := NewScheduler(testLogger())
	if err := s.RegisterJob(&fakeJob{name: "a", schedule: "@hourly"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestScheduler_DescriptorSchedules(t *testing.T) {
	t.Parallel()

	s := NewScheduler(testLogger())
	for _, expr := range []string{"@hourly", "@daily", "*/5 * * * *"} {
		if err := s.RegisterJob(&fakeJob{name: "job-" + expr, schedule: expr}); err != nil {
			t.Fatalf("register %q: %v", expr, err)
		}
	}
	if err := s.Start(); err != nil {
		t.Errorf("start: %v", err)
	}
	_ = s.Stop(context.Background())
}

type fakeTokenStore struct {
	purged int64
	err    error
	cutoff time.Time
}

func (f *fakeTokenStore) PurgeTokens(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.purged, f.err
}

func TestTokenPurgeJob(t *testing.T) {
	t.Parallel()

	store := &fakeTokenStore{purged: 3}
	job := &TokenPurgeJob{Store: store, TTL: time.Hour, Logger: testLogger()}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// The cutoff is roughly now minus the TTL.
	want := time.Now().Add(-time.Hour)
	if d := store.cutoff.Sub(want); d < -time.Minute || d > time.Minute {
		t.Errorf("cutoff = %v, want about %v", store.cutoff, want)
	}

	store.err = errors.New("boom")
	if err := job.Run(context.Background()); err == nil {
		t.Error("run with store error: expected error")
	}
}

func TestTokenPurgeJob_ZeroTTL(t *testing.T) {
	t.Parallel()

	store := &fakeTokenStore{err: errors.New("should not be called")}
	job := &TokenPurgeJob{Store: store, TTL: 0, Logger: testLogger()}

	if err := job.Run(context.Background()); err != nil {
		t.Errorf("run with zero TTL: %v", err)
	}
}

func TestTokenPurgeJob_DefaultSchedule(t *testing.T) {
	t.Parallel()

	job := &TokenPurgeJob{}
	if got := job.Schedule(); got != "@hourly" {
		t.Errorf("schedule = %q, want @hourly", got)
	}
	job.ScheduleExpr = "*/10 * * * *"
	if got := job.Schedule(); got != "*/10 * * * *" {
		t.Errorf("schedule = %q, want override", got)
	}
}

type fakeCheckpointer struct {
	calls int
	err   error
}

func (f *fakeCheckpointer) Checkpoint(context.Context) error {
	f.calls++
	return f.err
}

func TestCheckpointJob(t *testing.T) {
	t.Parallel()

	cp := &fakeCheckpointer{}
	job := &CheckpointJob{Store: cp, Logger: testLogger()}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if cp.calls != 1 {
		t.Errorf("calls = %d, want 1", cp.calls)
	}

	cp.err = errors.New("boom")
	if err := job.Run(context.Background()); err == nil {
		t.Error("run with checkpoint error: expected error")
	}

	if got := job.Schedule(); got != "@daily" {
		t.Errorf("schedule = %q, want @daily", got)
	}
}
