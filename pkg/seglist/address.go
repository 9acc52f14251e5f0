package seglist

import (
	"github.com/rzbill/slotlist/pkg/slot"
)

// Translator maps logical list indices to storage addresses. It is pure:
// no state beyond the hasher, no I/O, no bounds checking (bounds are the
// caller's responsibility).
type Translator struct {
	hasher slot.Hasher
}

// NewTranslator returns a Translator deriving segment keys with h.
func NewTranslator(h slot.Hasher) Translator {
	return Translator{hasher: h}
}

// MaxPerSegment returns how many elements of the given footprint fit in one
// segment: floor(256/footprint). Slots past maxPer*footprint are padding.
func MaxPerSegment(footprint uint32) uint64 {
	return uint64(slot.SegmentSlots / footprint)
}

// Locate computes the segment key and intra-segment slot offset of the
// element at index. footprint must be in [1, 256]; Open enforces that before
// any Translator is used.
func (t Translator) Locate(base slot.Key, index uint64, footprint uint32) (slot.Key, uint32) {
	maxPer := MaxPerSegment(footprint)
	segment := index / maxPer
	ordinal := index % maxPer
	return t.hasher.Segment(base, segment), uint32(ordinal) * footprint
}
