package resource

import "sync"

// LockRegistry hands out in-process advisory locks keyed by store path.
// Locks are advisory only: they serialize cooperating callers within one
// process and place no hold on the backing store itself.
type LockRegistry struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

// NewLockRegistry creates an empty registry.
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{held: make(map[string]*sync.Mutex)}
}

// Lock blocks until the advisory lock for path is available and returns the
// release token.
func (r *LockRegistry) Lock(path string) Lock {
	r.mu.Lock()
	m, ok := r.held[path]
	if !ok {
		m = &sync.Mutex{}
		r.held[path] = m
	}
	r.mu.Unlock()

	m.Lock()
	return &release{unlock: m.Unlock}
}

type release struct {
	once   sync.Once
	unlock func()
}

func (r *release) Release() {
	r.once.Do(r.unlock)
}

// nopLock is handed out where no real mutual exclusion is provided, such as
// by the single-file adaptor.
type nopLock struct{}

func (nopLock) Release() {}
