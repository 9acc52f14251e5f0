package pebblestore

import (
	"context"
	"testing"
	"time"

	"github.com/rzbill/slotlist/pkg/slot"
)

type testMetrics struct {
	read         int
	batchCommits int
	batchBytes   int
}

func (m *testMetrics) ObserveWrite(d time.Duration, bytes int) {}
func (m *testMetrics) ObserveRead(d time.Duration, bytes int)  { m.read += bytes }
func (m *testMetrics) ObserveBatchCommit(d time.Duration, numOps int, bytes int) {
	m.batchCommits++
	m.batchBytes += bytes
}

func newTestDB(t *testing.T) (*DB, *testMetrics) {
	t.Helper()
	dir := t.TempDir()
	metrics := &testMetrics{}
	db, err := Open(Options{
		DataDir:       dir,
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
		Metrics:       metrics,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, metrics
}

func TestScalarRoundTrip(t *testing.T) {
	db, metrics := newTestDB(t)
	ctx := context.Background()

	key := slot.NameKey("counter")
	if err := db.WriteScalar(ctx, "d", key, slot.WordFromUint64(7)); err != nil {
		t.Fatalf("write scalar: %v", err)
	}
	w, err := db.ReadScalar(ctx, "d", key)
	if err != nil {
		t.Fatalf("read scalar: %v", err)
	}
	if w.Uint64() != 7 {
		t.Fatalf("got %d want 7", w.Uint64())
	}
	if metrics.read == 0 {
		t.Fatalf("expected read metrics to record bytes")
	}
}

func TestWriteAtCommitsOneBatch(t *testing.T) {
	db, metrics := newTestDB(t)
	ctx := context.Background()

	seg := slot.NameKey("seg")
	words := []slot.Word{slot.WordFromUint64(1), slot.WordFromUint64(2), slot.WordFromUint64(3)}
	if err := db.WriteAt(ctx, "d", seg, 10, words); err != nil {
		t.Fatalf("write at: %v", err)
	}

	if metrics.batchCommits != 1 {
		t.Fatalf("want 1 batch commit, got %d", metrics.batchCommits)
	}
	if metrics.batchBytes <= 0 {
		t.Fatalf("expected positive batch bytes")
	}

	got, err := db.ReadAt(ctx, "d", seg, 10, 3)
	if err != nil {
		t.Fatalf("read at: %v", err)
	}
	for i := range words {
		if got[i] != words[i] {
			t.Fatalf("slot %d: got %s want %s", i, got[i], words[i])
		}
	}
}

func TestMissingSlotsReadZero(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	seg := slot.NameKey("empty")
	got, err := db.ReadAt(ctx, "d", seg, 0, 4)
	if err != nil {
		t.Fatalf("read at: %v", err)
	}
	for i, w := range got {
		if !w.IsZero() {
			t.Fatalf("slot %d: unwritten slot must read as zero", i)
		}
	}
}

func TestRangeGuard(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	seg := slot.NameKey("guard")
	if _, err := db.ReadAt(ctx, "d", seg, 250, 10); err == nil {
		t.Fatalf("expected range error past segment capacity")
	}
	if err := db.WriteAt(ctx, "d", seg, 256, []slot.Word{{}}); err == nil {
		t.Fatalf("expected range error past segment capacity")
	}
}

func TestCountSlots(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	seg := slot.NameKey("count")
	if err := db.WriteAt(ctx, "a", seg, 0, []slot.Word{{}, {}}); err != nil {
		t.Fatalf("write at: %v", err)
	}
	if err := db.WriteScalar(ctx, "a", seg, slot.Word{}); err != nil {
		t.Fatalf("write scalar: %v", err)
	}
	if err := db.WriteScalar(ctx, "b", seg, slot.Word{}); err != nil {
		t.Fatalf("write scalar: %v", err)
	}

	n, err := db.CountSlots("a")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 slots in domain a, got %d", n)
	}
}
