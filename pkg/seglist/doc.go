// Package seglist implements a growable, indexable list over slot storage.
//
// # Overview
//
// Elements are packed densely into 256-slot segments. Each element type
// declares a fixed footprint (slots per element) through its Codec; a segment
// holds floor(256/footprint) elements, and the segment for logical index i is
// addressed by hashing the list's base key with i's segment number. When the
// footprint does not divide 256 evenly the remainder slots of every segment
// are permanent padding — the waste buys a pointer-free address computation
// and is part of the persisted layout, so it must never be packed away.
//
// The list's length lives as a scalar slot at the base key itself. A handle
// caches it at Open and re-persists it on every Append; there is no deferred
// flush.
//
// API surface
//
//	st := slot.NewMemStore()
//	l, _ := seglist.Open(ctx, st, "default", slot.NameKey("scores"), seglist.U64Codec{})
//	idx, _ := l.Append(ctx, 42) // idx == 0
//	v, _ := l.Get(ctx, idx)
//	_ = l.Set(ctx, idx, v+1)
//
// Append persists the element's slots first and the new length second. Both
// writes are assumed durable once the store call returns; a crash between the
// two leaves the counter unbumped and the element unreachable, which reads
// back as the append never having happened. No recovery protocol is layered
// on top of that.
package seglist
