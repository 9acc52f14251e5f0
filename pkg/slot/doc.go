// Package slot defines the slot-access capability surface that slotlist's
// core is written against.
//
// # Overview
//
// The storage substrate addresses fixed-size 32-byte cells (Words) by key.
// Keys come in two flavors: scalar keys, which address a single standalone
// slot, and segment keys, which address a block of SegmentSlots consecutive
// slots. Segment keys are derived by a Hasher from a base key and a segment
// number, so each segment occupies an independent region of the key space.
//
// A Store is the substrate itself. Two implementations ship with the module:
// MemStore (in this package, for tests and embedding) and the Pebble-backed
// store in internal/storage/pebble. Stores are zero-default: reading a slot
// that was never written yields the zero Word, not an error. Storage failures
// propagate to callers unchanged; nothing in this package retries.
package slot
