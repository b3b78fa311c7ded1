package engine

import (
	"fmt"
	"sync"
)

// blobStore owns the encoded bitmaps behind resource handles. Handles
// are URL-like strings resolving to in-process bytes; releasing a handle
// revokes it, so a long-lived external reference must tolerate the bytes
// disappearing when the cache evicts the entry.
type blobStore struct {
	mu    sync.Mutex
	seq   uint64
	blobs map[string][]byte
}

func newBlobStore() *blobStore {
	return &blobStore{blobs: map[string][]byte{}}
}

// put registers data under a fresh handle.
func (s *blobStore) put(data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	handle := fmt.Sprintf("mem://bitmap/%d", s.seq)
	s.blobs[handle] = data
	return handle
}

// get resolves a handle to its bytes.
func (s *blobStore) get(handle string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[handle]
	return data, ok
}

// release revokes a handle. Releasing an unknown handle is a no-op.
func (s *blobStore) release(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, handle)
}

func (s *blobStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
