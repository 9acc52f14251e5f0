package slot

import (
	"crypto/sha256"
	"encoding/binary"
)

// Hasher derives segment keys. Implementations must be deterministic and
// domain-separated: distinct (base, n) pairs map to distinct keys, and
// derived keys never collide with keys produced from a different base.
type Hasher interface {
	Segment(base Key, n uint64) Key
}

// Domain-separation tags for the built-in SHA-256 derivations. Changing
// either invalidates every key already persisted with them.
var (
	segmentTag = []byte("slotlist/segment/v1")
	baseTag    = []byte("slotlist/base/v1")
)

// SHA256Hasher derives segment keys as SHA-256(tag | base | n_be8).
type SHA256Hasher struct{}

// Segment implements Hasher.
func (SHA256Hasher) Segment(base Key, n uint64) Key {
	h := sha256.New()
	h.Write(segmentTag)
	h.Write(base[:])
	var be [8]byte
	binary.BigEndian.PutUint64(be[:], n)
	h.Write(be[:])
	var k Key
	h.Sum(k[:0])
	return k
}

// NameKey derives a stable base key from a human-readable list name. How a
// base key is produced is the caller's business; this helper exists for
// hosts, like the CLI, that address lists by name.
func NameKey(name string) Key {
	h := sha256.New()
	h.Write(baseTag)
	h.Write([]byte(name))
	var k Key
	h.Sum(k[:0])
	return k
}
