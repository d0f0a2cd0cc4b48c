// internal/cache/memory.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache behind a mutex. Values are stored as JSON
// so behavior matches the Redis backend and cached values cannot alias live
// structs.
type Memory struct {
	mu          sync.RWMutex
	entries     map[string]memoryEntry
	cleanupFreq time.Duration
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewMemory(cleanupFreq time.Duration) *Memory {
	if cleanupFreq <= 0 {
		cleanupFreq = time.Minute
	}
	m := &Memory{
		entries:     make(map[string]memoryEntry),
		cleanupFreq: cleanupFreq,
		stopChan:    make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

func (m *Memory) Get(ctx context.Context, key string, result any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, result); err != nil {
		return false, fmt.Errorf("unmarshaling cached value: %w", err)
	}
	return true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Invalidate(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine.
func (m *Memory) Close() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(m.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, entry := range m.entries {
				if now.After(entry.expiresAt) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		case <-m.stopChan:
			return
		}
	}
}
