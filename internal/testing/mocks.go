package testing

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of report.ObjectStore.
// It can be used across all tests that upload reports.
type MockObjectStore struct {
	mock.Mock
}

// BucketExists reports the mocked bucket state.
func (m *MockObjectStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

// PutObject records an upload.
func (m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.Error(0)
}
