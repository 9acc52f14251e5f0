package seglist

import (
	"fmt"

	"github.com/rzbill/slotlist/pkg/slot"
)

// Codec flattens element values into slots and back. Footprint is a static
// property of the element type: addresses must be computable before any value
// exists to measure, so a Codec's footprint never depends on the value being
// encoded.
type Codec[T any] interface {
	// Footprint returns the number of slots one element occupies. Must be
	// constant and positive.
	Footprint() uint32
	// Encode flattens v into exactly Footprint() words.
	Encode(v T) []slot.Word
	// Decode rebuilds a value from exactly Footprint() words.
	Decode(words []slot.Word) (T, error)
}

// WordCodec stores raw words one-to-one.
type WordCodec struct{}

func (WordCodec) Footprint() uint32 { return 1 }

func (WordCodec) Encode(v slot.Word) []slot.Word { return []slot.Word{v} }

func (WordCodec) Decode(words []slot.Word) (slot.Word, error) {
	if len(words) != 1 {
		return slot.Word{}, fmt.Errorf("seglist: word codec: got %d slots, want 1", len(words))
	}
	return words[0], nil
}

// U64Codec stores a uint64 in a single slot, big-endian.
type U64Codec struct{}

func (U64Codec) Footprint() uint32 { return 1 }

func (U64Codec) Encode(v uint64) []slot.Word { return []slot.Word{slot.WordFromUint64(v)} }

func (U64Codec) Decode(words []slot.Word) (uint64, error) {
	if len(words) != 1 {
		return 0, fmt.Errorf("seglist: u64 codec: got %d slots, want 1", len(words))
	}
	return words[0].Uint64(), nil
}

// U128 is a double-width unsigned integer.
type U128 struct {
	Hi uint64
	Lo uint64
}

// U128Codec stores a U128 across two slots: hi word first, then lo word.
type U128Codec struct{}

func (U128Codec) Footprint() uint32 { return 2 }

func (U128Codec) Encode(v U128) []slot.Word {
	return []slot.Word{slot.WordFromUint64(v.Hi), slot.WordFromUint64(v.Lo)}
}

func (U128Codec) Decode(words []slot.Word) (U128, error) {
	if len(words) != 2 {
		return U128{}, fmt.Errorf("seglist: u128 codec: got %d slots, want 2", len(words))
	}
	return U128{Hi: words[0].Uint64(), Lo: words[1].Uint64()}, nil
}
