package limiter

import (
	"context"
	"encoding/hex"
	"sync"
	"time"
)

// Memory is an in-process limiter with a sliding window and lockout. It backs
// the demo server, which keeps no external state.
type Memory struct {
	mu       sync.Mutex
	window   time.Duration
	maxFails int
	blockFor time.Duration
	now      func() time.Time

	fails   map[string][]time.Time
	blocked map[string]time.Time
}

// NewMemory constructs an in-memory limiter.
func NewMemory(window time.Duration, maxFails int, blockFor time.Duration) *Memory {
	return &Memory{
		window:   window,
		maxFails: maxFails,
		blockFor: blockFor,
		now:      time.Now,
		fails:    map[string][]time.Time{},
		blocked:  map[string]time.Time{},
	}
}

func key(email string, ipHash []byte) string { return email + "|" + hex.EncodeToString(ipHash) }

// Allow reports whether a login attempt may proceed for this (email, ip).
func (m *Memory) Allow(_ context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(email, ipHash)
	if until, ok := m.blocked[k]; ok {
		if m.now().Before(until) {
			return false, until.Sub(m.now()), nil
		}
		delete(m.blocked, k)
	}
	return true, 0, nil
}

// Success resets counters for this (email, ip).
func (m *Memory) Success(_ context.Context, email string, ipHash []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(email, ipHash)
	delete(m.fails, k)
	delete(m.blocked, k)
	return nil
}

// Failure records a failed attempt; when the window fills up, the pair is
// blocked for blockFor.
func (m *Memory) Failure(_ context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(email, ipHash)
	now := m.now()

	kept := m.fails[k][:0]
	for _, ts := range m.fails[k] {
		if now.Sub(ts) < m.window {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	m.fails[k] = kept

	if len(kept) >= m.maxFails {
		m.blocked[k] = now.Add(m.blockFor)
		delete(m.fails, k)
		return true, m.blockFor, nil
	}
	return false, 0, nil
}
