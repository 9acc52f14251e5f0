package pebblestore

import (
	"encoding/binary"

	"github.com/rzbill/slotlist/pkg/slot"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - dom/{domain}/s/{key32}               (scalar slot, e.g. a length counter)
// - dom/{domain}/g/{key32}/{offset_be2}  (slot {offset} of segment {key32})

var (
	sep       = byte('/')
	domPrefix = []byte("dom/")
	scalarSeg = []byte("/s/")
	groupSeg  = []byte("/g/")
)

func appendBE2(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

// keyScalar builds the key of a standalone slot.
func keyScalar(domain slot.Domain, key slot.Key) []byte {
	k := make([]byte, 0, len(domain)+len(key)+8)
	k = append(k, domPrefix...)
	k = append(k, domain...)
	k = append(k, scalarSeg...)
	k = append(k, key[:]...)
	return k
}

// keySlot builds the key of one slot within a segment. Offsets fit a uint16
// since segments hold 256 slots.
func keySlot(domain slot.Domain, seg slot.Key, offset uint32) []byte {
	k := make([]byte, 0, len(domain)+len(seg)+12)
	k = append(k, domPrefix...)
	k = append(k, domain...)
	k = append(k, groupSeg...)
	k = append(k, seg[:]...)
	k = append(k, sep)
	k = appendBE2(k, uint16(offset))
	return k
}

// DomainBounds returns the [low, high) key range covering every slot of a
// domain, for iteration.
func DomainBounds(domain slot.Domain) (low, high []byte) {
	low = make([]byte, 0, len(domain)+8)
	low = append(low, domPrefix...)
	low = append(low, domain...)
	low = append(low, sep)
	high = append(append([]byte(nil), low[:len(low)-1]...), sep+1)
	return low, high
}
