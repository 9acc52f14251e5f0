package slot

import (
	"context"
	"encoding/binary"
)

const (
	// WordSize is the size in bytes of one storage slot.
	WordSize = 32

	// SegmentSlots is the fixed capacity of a segment. Every segment key
	// addresses exactly this many consecutive slots; the capacity is part of
	// the address computation and cannot be changed without invalidating
	// persisted data.
	SegmentSlots = 256
)

// Word is the value held by a single slot: one fixed-size 32-byte cell,
// big-endian when it carries an integer.
type Word [WordSize]byte

// WordFromUint64 packs v into the low 8 bytes of a Word, big-endian.
func WordFromUint64(v uint64) Word {
	var w Word
	binary.BigEndian.PutUint64(w[WordSize-8:], v)
	return w
}

// Uint64 reads the low 8 bytes of the word as a big-endian integer.
func (w Word) Uint64() uint64 { return binary.BigEndian.Uint64(w[WordSize-8:]) }

// IsZero reports whether every byte of the word is zero.
func (w Word) IsZero() bool { return w == Word{} }

// String returns a hex string.
func (w Word) String() string { return fmtHex(w[:]) }

// Key is a 32-byte storage key. Base keys identifying a list and segment keys
// derived from them share this type.
type Key [32]byte

// String returns a hex string.
func (k Key) String() string { return fmtHex(k[:]) }

// Domain selects which underlying address space a store call operates on.
// It is opaque to everything above the store: passed through unchanged,
// never interpreted.
type Domain string

// Store is the slot-access capability. Implementations must treat unwritten
// slots as holding the zero Word and must surface their own failures
// unchanged; callers perform no retries.
type Store interface {
	// ReadScalar returns the standalone slot stored at key.
	ReadScalar(ctx context.Context, domain Domain, key Key) (Word, error)
	// WriteScalar overwrites the standalone slot stored at key.
	WriteScalar(ctx context.Context, domain Domain, key Key, w Word) error
	// ReadAt returns n consecutive slots of the segment addressed by seg,
	// starting at offset. Requires offset+n <= SegmentSlots.
	ReadAt(ctx context.Context, domain Domain, seg Key, offset uint32, n int) ([]Word, error)
	// WriteAt overwrites len(words) consecutive slots of the segment
	// addressed by seg, starting at offset, atomically if the backend
	// supports it. Requires offset+len(words) <= SegmentSlots.
	WriteAt(ctx context.Context, domain Domain, seg Key, offset uint32, words []Word) error
}

// fmtHex is a small, allocation-lean hex encoder for fixed-size values.
func fmtHex(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexdigits[v>>4]
		out[i*2+1] = hexdigits[v&0x0f]
	}
	return string(out)
}
