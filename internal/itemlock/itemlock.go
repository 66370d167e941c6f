package itemlock

import "sync"

// Map hands out one mutex per item identifier, serializing the
// read-validate-write window of stock mutations within this process.
// Mutexes are never evicted; the set is bounded by the catalog size.
type Map struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMap() *Map {
	return &Map{locks: map[string]*sync.Mutex{}}
}

// Lock acquires the mutex for the given item and returns its release
// function.
func (m *Map) Lock(itemID string) func() {
	m.mu.Lock()
	lock, ok := m.locks[itemID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[itemID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
