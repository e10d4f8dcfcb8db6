package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MockS3Service is an in-memory S3Interface for tests
type MockS3Service struct {
	objects map[string][]byte
	types   map[string]string
	mu      sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *MockS3Service) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), body...)
	m.types[key] = contentType
	return nil
}

func (m *MockS3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("object not found in mock S3: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

func (m *MockS3Service) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockS3Service) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	delete(m.types, key)
	m.mu.Unlock()
	return nil
}

// Object returns the stored body and content type for key
func (m *MockS3Service) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.objects[key]
	return body, m.types[key], ok
}

// Keys returns every stored key
func (m *MockS3Service) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
