package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when the blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Blob is a single named document that can be loaded, replaced and removed.
type Blob interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// TestBlob is a simple in-memory implementation for testing
type TestBlob struct {
	mu   sync.Mutex
	data []byte
	err  error
}

func NewTestBlob(data []byte) *TestBlob {
	return &TestBlob{data: data}
}

// NewTestBlobWithError returns a blob whose every operation fails with err.
func NewTestBlobWithError(err error) *TestBlob {
	return &TestBlob{err: err}
}

func (t *TestBlob) Load(ctx context.Context) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	if t.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), t.data...), nil
}

func (t *TestBlob) Save(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.data = append([]byte(nil), data...)
	return nil
}

func (t *TestBlob) Delete(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.data = nil
	return nil
}
