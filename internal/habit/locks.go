package habit

import "sync"

// keyedMutex serializes read-modify-write sequences per habit id, so two
// concurrent updates to the same habit cannot interleave. Locks are
// created on first use and never reclaimed; the set of habit ids is small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// lock acquires the mutex for id and returns its unlock function.
func (k *keyedMutex) lock(id int64) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[int64]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
