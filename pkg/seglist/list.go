package seglist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rzbill/slotlist/pkg/slot"
)

// ErrOutOfBounds is returned by Get and Set for indices at or past the
// current length. It is signaled before any address computation or I/O.
var ErrOutOfBounds = errors.New("index out of bounds")

// Option customizes a List at Open time.
type Option func(*options)

type options struct {
	hasher slot.Hasher
}

// WithHasher overrides the segment-key derivation. All handles onto the same
// persisted list must use the same hasher.
func WithHasher(h slot.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

// List is a handle onto one persisted list. Handles are cheap: Open performs
// a single scalar read to load the length, and nothing else is cached, so
// constructing a fresh handle per unit of work is the intended usage.
type List[T any] struct {
	store     slot.Store
	codec     Codec[T]
	tr        Translator
	domain    slot.Domain
	base      slot.Key
	footprint uint32

	mu     sync.Mutex
	length uint64
}

// Open loads the persisted length at base and returns a handle. The codec's
// footprint must be in [1, 256]; zero-width elements cannot be addressed and
// elements wider than a segment cannot be stored.
func Open[T any](ctx context.Context, store slot.Store, domain slot.Domain, base slot.Key, codec Codec[T], opts ...Option) (*List[T], error) {
	o := options{hasher: slot.SHA256Hasher{}}
	for _, opt := range opts {
		opt(&o)
	}

	fp := codec.Footprint()
	if fp == 0 {
		return nil, errors.New("seglist: codec footprint must be positive")
	}
	if fp > slot.SegmentSlots {
		return nil, fmt.Errorf("seglist: codec footprint %d exceeds segment capacity %d", fp, slot.SegmentSlots)
	}

	w, err := store.ReadScalar(ctx, domain, base)
	if err != nil {
		return nil, fmt.Errorf("seglist: load length: %w", err)
	}
	return &List[T]{
		store:     store,
		codec:     codec,
		tr:        NewTranslator(o.hasher),
		domain:    domain,
		base:      base,
		footprint: fp,
		length:    w.Uint64(),
	}, nil
}

// Len returns the cached length. No I/O.
func (l *List[T]) Len() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.length
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool { return l.Len() == 0 }

// Append writes v at the next free index, persists the new length, and
// returns the index v landed at. The lock covers the whole read-modify-write:
// two appends racing on the cached length would otherwise target the same
// address and silently overwrite each other.
func (l *List[T]) Append(ctx context.Context, v T) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.length
	if err := l.write(ctx, idx, v); err != nil {
		return 0, err
	}
	if err := l.store.WriteScalar(ctx, l.domain, l.base, slot.WordFromUint64(idx+1)); err != nil {
		// Cached length stays equal to the persisted counter on failure.
		return 0, fmt.Errorf("seglist: persist length: %w", err)
	}
	l.length = idx + 1
	return idx, nil
}

// Get returns the element at index, or ErrOutOfBounds if index >= Len().
func (l *List[T]) Get(ctx context.Context, index uint64) (T, error) {
	var zero T
	if err := l.checkBounds(index); err != nil {
		return zero, err
	}
	seg, off := l.tr.Locate(l.base, index, l.footprint)
	words, err := l.store.ReadAt(ctx, l.domain, seg, off, int(l.footprint))
	if err != nil {
		return zero, fmt.Errorf("seglist: read index %d: %w", index, err)
	}
	return l.codec.Decode(words)
}

// Set overwrites the element at index in place, or returns ErrOutOfBounds if
// index >= Len(). The length is unchanged.
func (l *List[T]) Set(ctx context.Context, index uint64, v T) error {
	if err := l.checkBounds(index); err != nil {
		return err
	}
	return l.write(ctx, index, v)
}

func (l *List[T]) checkBounds(index uint64) error {
	if index >= l.Len() {
		return fmt.Errorf("seglist: index %d: %w", index, ErrOutOfBounds)
	}
	return nil
}

func (l *List[T]) write(ctx context.Context, index uint64, v T) error {
	seg, off := l.tr.Locate(l.base, index, l.footprint)
	words := l.codec.Encode(v)
	if uint32(len(words)) != l.footprint {
		return fmt.Errorf("seglist: codec encoded %d slots, want %d", len(words), l.footprint)
	}
	if err := l.store.WriteAt(ctx, l.domain, seg, off, words); err != nil {
		return fmt.Errorf("seglist: write index %d: %w", index, err)
	}
	return nil
}

// Locate exposes the handle's address computation for the given index,
// without bounds checking. Debugging surface.
func (l *List[T]) Locate(index uint64) (slot.Key, uint32) {
	return l.tr.Locate(l.base, index, l.footprint)
}
