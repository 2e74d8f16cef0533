package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var errClosed = errors.New("medium closed")

// Memory is a process-local Medium. MaxBytes, when positive, caps the sum of
// key and value lengths the way a browser origin caps its storage.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]string
	used     int
	maxBytes int
	closed   bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// NewMemoryWithQuota returns a Memory medium that rejects writes past maxBytes.
func NewMemoryWithQuota(maxBytes int) *Memory {
	m := NewMemory()
	m.maxBytes = maxBytes
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, unavailable("memory get", errClosed)
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return unavailable("memory set", errClosed)
	}

	used := m.used
	if old, ok := m.data[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if m.maxBytes > 0 && used > m.maxBytes {
		return fmt.Errorf("%w: %w: memory set %q needs %d of %d bytes", ErrUnavailable, ErrQuotaExceeded, key, used, m.maxBytes)
	}

	m.data[key] = value
	m.used = used
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return unavailable("memory delete", errClosed)
	}
	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, unavailable("memory keys", errClosed)
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
