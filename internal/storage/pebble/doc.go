// Package pebblestore provides the Pebble-backed slot store: a thin wrapper
// around Pebble with fsync policy, batches, and minimal metrics hooks,
// implementing the slot.Store capability.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeAlways,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Scalar slots (e.g. list length counters)
//	_ = db.WriteScalar(ctx, "default", base, slot.WordFromUint64(3))
//
//	// Multi-slot element writes commit as one atomic batch
//	_ = db.WriteAt(ctx, "default", segKey, 0, words)
//	got, _ := db.ReadAt(ctx, "default", segKey, 0, len(words))
package pebblestore
