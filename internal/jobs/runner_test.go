package jobs

import (
	"context"
	"sync"
	"testing"
	"time"
)

// collector gathers fired payloads behind a mutex.
type collector struct {
	mu    sync.Mutex
	fired []map[string]string
}

func (c *collector) handle(_ context.Context, payload map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fired = append(c.fired, payload)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fired)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSubmitFires(t *testing.T) {
	c := &collector{}
	r := NewRunner(c.handle, nil)
	defer r.Stop()

	r.Submit("tag", "job-a", map[string]string{"k": "v"}, 10*time.Millisecond)

	waitFor(t, func() bool { return c.count() == 1 })

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fired[0]["k"] != "v" {
		t.Errorf("payload = %v", c.fired[0])
	}
	if r.Pending() != 0 {
		t.Errorf("pending = %d after fire, want 0", r.Pending())
	}
}

func TestCancelTag(t *testing.T) {
	c := &collector{}
	r := NewRunner(c.handle, nil)
	defer r.Stop()

	r.Submit("habit-1", "a", nil, time.Hour)
	r.Submit("habit-1", "b", nil, time.Hour)
	r.Submit("habit-2", "c", nil, time.Hour)

	if got := r.CancelTag("habit-1"); got != 2 {
		t.Errorf("cancelled = %d, want 2", got)
	}
	if got := r.Pending(); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
	if got := r.CancelTag("habit-1"); got != 0 {
		t.Errorf("second cancel = %d, want 0", got)
	}
}

func TestSubmitSameNameReplaces(t *testing.T) {
	c := &collector{}
	r := NewRunner(c.handle, nil)
	defer r.Stop()

	r.Submit("tag", "unique", map[string]string{"v": "old"}, time.Hour)
	r.Submit("tag", "unique", map[string]string{"v": "new"}, 10*time.Millisecond)

	if got := r.Pending(); got != 1 {
		t.Fatalf("pending = %d, want 1 after replacement", got)
	}

	waitFor(t, func() bool { return c.count() == 1 })

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fired[0]["v"] != "new" {
		t.Errorf("fired payload = %v, want the replacement", c.fired[0])
	}
}

func TestStopPreventsFiring(t *testing.T) {
	c := &collector{}
	r := NewRunner(c.handle, nil)

	r.Submit("tag", "", nil, 20*time.Millisecond)
	r.Stop()

	time.Sleep(60 * time.Millisecond)
	if c.count() != 0 {
		t.Errorf("fired %d jobs after Stop, want 0", c.count())
	}
	if r.Pending() != 0 {
		t.Errorf("pending = %d after Stop, want 0", r.Pending())
	}
}

func TestUnnamedJobsDoNotReplace(t *testing.T) {
	c := &collector{}
	r := NewRunner(c.handle, nil)
	defer r.Stop()

	r.Submit("tag", "", nil, time.Hour)
	r.Submit("tag", "", nil, time.Hour)

	if got := r.Pending(); got != 2 {
		t.Errorf("pending = %d, want 2", got)
	}
}
