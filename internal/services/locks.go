package services

import "sync"

// entityLocks hands out one mutex per record id. Read-merge-write paths hold
// the lock for the whole update so two concurrent writers to the same record
// cannot erase each other's changes.
type entityLocks struct {
	mus sync.Map // uint -> *sync.Mutex
}

func (l *entityLocks) lock(id uint) func() {
	mu, _ := l.mus.LoadOrStore(id, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}
