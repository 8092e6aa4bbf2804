package services

import (
	"sync"
	"time"
)

// Clock returns the current time in the service's configured location.
type Clock func() time.Time

// ClockIn returns a Clock that reports wall time in loc.
func ClockIn(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

type wordKey struct {
	userID int64
	wordID int64
}

// keyedMutex serializes work per key and drops locks nobody is waiting on.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[wordKey]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[wordKey]*refLock)}
}

func (k *keyedMutex) Lock(key wordKey) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
