// Package blob stores document payloads outside the registry slots. Records
// only carry the returned reference; the bytes never end up in the slot
// JSON.
package blob

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrNotFound is returned when a reference does not resolve to a stored
// payload.
var ErrNotFound = errors.New("blob not found")

// Store is the payload storage contract. MinioStore is the production
// implementation; MemoryStore backs tests and database-less deployments.
type Store interface {
	// Put stores the payload and returns the reference to keep on the
	// document record.
	Put(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
	// Get resolves a reference to the payload and its content type.
	Get(ctx context.Context, ref string) (io.ReadCloser, string, error)
	// Remove deletes the payload. Removing a missing reference is not an
	// error.
	Remove(ctx context.Context, ref string) error
}

// MemoryStore keeps payloads in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	next  int
	blobs map[string]memoryBlob
}

type memoryBlob struct {
	data        []byte
	contentType string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]memoryBlob)}
}

func (m *MemoryStore) Put(_ context.Context, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	ref := fmt.Sprintf("mem-%d", m.next)
	m.blobs[ref] = memoryBlob{data: data, contentType: contentType}
	return ref, nil
}

func (m *MemoryStore) Get(_ context.Context, ref string) (io.ReadCloser, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[ref]
	if !ok {
		return nil, "", ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b.data)), b.contentType, nil
}

func (m *MemoryStore) Remove(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, ref)
	return nil
}

// IsDataURI reports whether a file reference is a legacy inlined data: URI
// rather than a blob store key. Older records carried their whole payload
// this way.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// DecodeDataURI unpacks a legacy data: URI into its payload and content
// type.
func DecodeDataURI(ref string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}
	contentType := "application/octet-stream"
	base64Encoded := false
	for i, part := range strings.Split(meta, ";") {
		if i == 0 && part != "" {
			contentType = part
			continue
		}
		if part == "base64" {
			base64Encoded = true
		}
	}
	if !base64Encoded {
		return []byte(payload), contentType, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI payload: %w", err)
	}
	return data, contentType, nil
}
