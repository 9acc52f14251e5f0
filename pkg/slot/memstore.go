package slot

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store. It exists so the core is testable and
// embeddable without a Pebble directory; semantics match the persistent
// backend, minus durability.
type MemStore struct {
	mu    sync.Mutex
	cells map[memKey]Word
}

type memKey struct {
	domain Domain
	scalar bool
	key    Key
	offset uint32
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{cells: make(map[memKey]Word)}
}

// ReadScalar implements Store. Missing slots read as the zero Word.
func (s *MemStore) ReadScalar(_ context.Context, domain Domain, key Key) (Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[memKey{domain: domain, scalar: true, key: key}], nil
}

// WriteScalar implements Store.
func (s *MemStore) WriteScalar(_ context.Context, domain Domain, key Key, w Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[memKey{domain: domain, scalar: true, key: key}] = w
	return nil
}

// ReadAt implements Store. Missing slots read as the zero Word.
func (s *MemStore) ReadAt(_ context.Context, domain Domain, seg Key, offset uint32, n int) ([]Word, error) {
	if err := checkRange(offset, n); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Word, n)
	for i := range out {
		out[i] = s.cells[memKey{domain: domain, key: seg, offset: offset + uint32(i)}]
	}
	return out, nil
}

// WriteAt implements Store.
func (s *MemStore) WriteAt(_ context.Context, domain Domain, seg Key, offset uint32, words []Word) error {
	if err := checkRange(offset, len(words)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range words {
		s.cells[memKey{domain: domain, key: seg, offset: offset + uint32(i)}] = w
	}
	return nil
}

// Cells returns the number of slots that have been written. Test helper.
func (s *MemStore) Cells() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cells)
}

func checkRange(offset uint32, n int) error {
	if n < 0 || uint64(offset)+uint64(n) > SegmentSlots {
		return fmt.Errorf("slot: range [%d, %d) exceeds segment capacity %d", offset, uint64(offset)+uint64(n), SegmentSlots)
	}
	return nil
}
