package reset

import (
	"context"
	"errors"
	"testing"
)

type fakeResetter struct {
	capacity int
	calls    int
	err      error
}

func (f *fakeResetter) ResetAll(_ context.Context, capacity int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.capacity = capacity
	f.calls++
	return 3, nil
}

type fixedCapacity int

func (c fixedCapacity) DailyVoteCapacity(context.Context) (int, error) {
	return int(c), nil
}

type fakeLocker struct {
	granted map[string]bool
	asked   []string
}

func (f *fakeLocker) AcquireDay(_ context.Context, dayKey string) (bool, error) {
	f.asked = append(f.asked, dayKey)
	if f.granted == nil {
		f.granted = map[string]bool{}
	}
	if f.granted[dayKey] {
		return false, nil
	}
	f.granted[dayKey] = true
	return true, nil
}

func TestRunOnceResetsAtCurrentCapacity(t *testing.T) {
	resetter := &fakeResetter{}
	job := NewJob(Dependencies{Quotas: resetter, Capacity: fixedCapacity(12)}, nil)

	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if resetter.calls != 1 || resetter.capacity != 12 {
		t.Fatalf("expected one reset at capacity 12, got calls=%d capacity=%d", resetter.calls, resetter.capacity)
	}
}

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	resetter := &fakeResetter{}
	locker := &fakeLocker{}
	job := NewJob(Dependencies{Quotas: resetter, Capacity: fixedCapacity(10), Locker: locker}, nil)

	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if resetter.calls != 1 {
		t.Fatalf("expected one reset per day, got %d", resetter.calls)
	}
	if len(locker.asked) != 2 {
		t.Fatalf("expected lock checked on every run, got %d", len(locker.asked))
	}
}

func TestRunOncePropagatesResetFailure(t *testing.T) {
	resetter := &fakeResetter{err: errors.New("connection refused")}
	job := NewJob(Dependencies{Quotas: resetter, Capacity: fixedCapacity(10)}, nil)

	if err := job.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected reset failure to surface")
	}
}
