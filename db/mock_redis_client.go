package db

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"
)

// MockRedisClient simulates a Redis client for testing purposes.
type MockRedisClient struct {
	data    map[string]string             // Key-value store
	sets    map[string]map[string]float64 // Sorted sets: member -> score
	mu      sync.RWMutex
	context context.Context
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		sets:    make(map[string]map[string]float64),
		context: ctx,
	}
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

// UpdateValue holds the write lock across fn, which is what WATCH/MULTI guarantees on a real server.
func (m *MockRedisClient) UpdateValue(key string, fn UpdateFunc) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found := m.data[key]
	next, err := fn(current, found)
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", key, err)
	}
	m.data[key] = next
	return next, nil
}

func (m *MockRedisClient) ReplaceMembersWithJSON(ctx context.Context, setKey string, members []SetMember) error {
	blobs := make([]string, len(members))
	for i, member := range members {
		jsonData, err := json.Marshal(member.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON for %s: %w", member.Key, err)
		}
		blobs[i] = string(jsonData)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for old := range m.sets[setKey] {
		delete(m.data, old)
	}
	set := make(map[string]float64, len(members))
	for i, member := range members {
		set[member.Key] = float64(i)
		m.data[member.Key] = blobs[i]
	}
	m.sets[setKey] = set
	return nil
}

// GetMembersInOrder orders by score, then member name, like ZRANGE.
func (m *MockRedisClient) GetMembersInOrder(setKey string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set, exists := m.sets[setKey]
	if !exists {
		return nil, nil
	}

	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool {
		if set[members[i]] != set[members[j]] {
			return set[members[i]] < set[members[j]]
		}
		return members[i] < members[j]
	})

	var results []string
	for _, member := range members {
		if data, exists := m.data[member]; exists {
			results = append(results, data)
		}
	}
	return results, nil
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping always succeeds.
func (m *MockRedisClient) Ping() error {
	return nil
}

// Keys supports the glob patterns path.Match understands, which covers the DAO's prefix scans.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	for k := range m.sets {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.sets, key)
	return nil
}
