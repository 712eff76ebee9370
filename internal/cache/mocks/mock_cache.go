// Package mocks provides a mock Cache for testing.
package mocks

import (
	"context"
	"time"
)

// MockCache is a mock implementation of cache.Cache.
type MockCache struct {
	SetFunc    func(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetFunc    func(ctx context.Context, key string, dest interface{}) (bool, error)
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key, dest)
	}
	return false, nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}
