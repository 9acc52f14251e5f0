package pebblestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/rzbill/slotlist/pkg/slot"
)

// slot.Store implementation. Slots are stored one Pebble key per slot; the
// substrate is zero-default, so a missing key reads as the zero Word. Values
// of any other length than slot.WordSize indicate corruption and fail loudly.

var _ slot.Store = (*DB)(nil)

// ReadScalar returns the standalone slot at key, or the zero Word when it was
// never written.
func (db *DB) ReadScalar(ctx context.Context, domain slot.Domain, key slot.Key) (slot.Word, error) {
	return db.readWord(keyScalar(domain, key))
}

// WriteScalar overwrites the standalone slot at key.
func (db *DB) WriteScalar(ctx context.Context, domain slot.Domain, key slot.Key, w slot.Word) error {
	return db.set(ctx, keyScalar(domain, key), w[:])
}

// ReadAt returns n consecutive slots of segment seg starting at offset.
func (db *DB) ReadAt(ctx context.Context, domain slot.Domain, seg slot.Key, offset uint32, n int) ([]slot.Word, error) {
	if err := checkRange(offset, n); err != nil {
		return nil, err
	}
	out := make([]slot.Word, n)
	for i := range out {
		w, err := db.readWord(keySlot(domain, seg, offset+uint32(i)))
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

// WriteAt overwrites len(words) consecutive slots of segment seg starting at
// offset. All slots of the element commit as one atomic batch.
func (db *DB) WriteAt(ctx context.Context, domain slot.Domain, seg slot.Key, offset uint32, words []slot.Word) error {
	if err := checkRange(offset, len(words)); err != nil {
		return err
	}
	b := db.NewBatch()
	defer b.Close()
	for i, w := range words {
		if err := b.Set(keySlot(domain, seg, offset+uint32(i)), w[:], nil); err != nil {
			return err
		}
	}
	return db.CommitBatch(ctx, b)
}

func (db *DB) readWord(key []byte) (slot.Word, error) {
	var w slot.Word
	buf, err := db.get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return w, nil
		}
		return w, err
	}
	if len(buf) != slot.WordSize {
		return w, fmt.Errorf("pebble: slot value is %d bytes, want %d", len(buf), slot.WordSize)
	}
	copy(w[:], buf)
	return w, nil
}

func checkRange(offset uint32, n int) error {
	if n < 0 || uint64(offset)+uint64(n) > slot.SegmentSlots {
		return fmt.Errorf("pebble: range [%d, %d) exceeds segment capacity %d", offset, uint64(offset)+uint64(n), slot.SegmentSlots)
	}
	return nil
}

// CountSlots returns how many slots have been written under domain. Used by
// the CLI stats surface.
func (db *DB) CountSlots(domain slot.Domain) (int, error) {
	low, high := DomainBounds(domain)
	iter, err := db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, iter.Error()
}
