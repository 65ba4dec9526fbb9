package store

import "sync"

// PresenceCounter tracks the aggregate number of users currently online.
// It is read by the room listing; increments and decrements are exposed for
// connection tracking.
type PresenceCounter struct {
	mu    sync.Mutex
	count int
}

// NewPresenceCounter creates a counter starting at initial (floored at zero).
func NewPresenceCounter(initial int) *PresenceCounter {
	if initial < 0 {
		initial = 0
	}
	return &PresenceCounter{count: initial}
}

// Count returns the current online count.
func (p *PresenceCounter) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Increment adds one online user and returns the new count.
func (p *PresenceCounter) Increment() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	return p.count
}

// Decrement removes one online user, never going below zero.
func (p *PresenceCounter) Decrement() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count > 0 {
		p.count--
	}
	return p.count
}
