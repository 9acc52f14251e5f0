package seglist

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzbill/slotlist/pkg/slot"
)

// stubHasher derives segment keys by concatenating the base prefix with the
// segment number. No cryptographic strength; it exists so tests can reason
// about distinctness directly.
type stubHasher struct{}

func (stubHasher) Segment(base slot.Key, n uint64) slot.Key {
	var k slot.Key
	copy(k[:24], base[:24])
	binary.BigEndian.PutUint64(k[24:], n)
	return k
}

func testBase(b byte) slot.Key {
	var k slot.Key
	for i := range k {
		k[i] = b
	}
	return k
}

func TestMaxPerSegment(t *testing.T) {
	cases := []struct {
		footprint uint32
		want      uint64
	}{
		{1, 256},
		{2, 128},
		{3, 85}, // floor division; one padding slot per segment
		{4, 64},
		{255, 1},
		{256, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MaxPerSegment(c.footprint), "footprint %d", c.footprint)
	}
}

func TestLocateSingleSlotPacking(t *testing.T) {
	tr := NewTranslator(stubHasher{})
	base := testBase(0xaa)

	seg0, off0 := tr.Locate(base, 0, 1)
	require.Equal(t, uint32(0), off0)

	// Indices 0..255 share a segment; 256 rolls over.
	for i := uint64(0); i < 256; i++ {
		seg, off := tr.Locate(base, i, 1)
		require.Equal(t, seg0, seg, "index %d", i)
		require.Equal(t, uint32(i), off, "index %d", i)
	}
	seg, off := tr.Locate(base, 256, 1)
	require.NotEqual(t, seg0, seg)
	require.Equal(t, uint32(0), off)
}

func TestLocateDoubleWidthPacking(t *testing.T) {
	tr := NewTranslator(stubHasher{})
	base := testBase(0xbb)

	seg0, _ := tr.Locate(base, 0, 2)
	for i := uint64(0); i < 128; i++ {
		seg, off := tr.Locate(base, i, 2)
		require.Equal(t, seg0, seg, "index %d", i)
		require.Equal(t, uint32(i)*2, off, "index %d", i)
	}
	seg, off := tr.Locate(base, 128, 2)
	require.NotEqual(t, seg0, seg)
	require.Equal(t, uint32(0), off)
}

func TestLocatePaddingPreserved(t *testing.T) {
	// footprint 3: 85 elements per segment, slot 255 is permanent padding.
	tr := NewTranslator(stubHasher{})
	base := testBase(0xcc)

	seg0, _ := tr.Locate(base, 0, 3)
	segLast, offLast := tr.Locate(base, 84, 3)
	require.Equal(t, seg0, segLast)
	require.Equal(t, uint32(252), offLast) // last element ends at slot 254

	segNext, offNext := tr.Locate(base, 85, 3)
	require.NotEqual(t, seg0, segNext)
	require.Equal(t, uint32(0), offNext)
}

func TestLocateDeterministic(t *testing.T) {
	tr := NewTranslator(stubHasher{})
	base := testBase(0x01)
	for _, idx := range []uint64{0, 7, 255, 256, 100_000} {
		s1, o1 := tr.Locate(base, idx, 2)
		s2, o2 := tr.Locate(base, idx, 2)
		require.Equal(t, s1, s2)
		require.Equal(t, o1, o2)
	}
}

func TestLocateDistinctBases(t *testing.T) {
	tr := NewTranslator(stubHasher{})
	baseA := testBase(0x02)
	baseB := testBase(0x03)
	for _, idx := range []uint64{0, 1, 255, 256, 511} {
		for _, fp := range []uint32{1, 2} {
			segA, _ := tr.Locate(baseA, idx, fp)
			segB, _ := tr.Locate(baseB, idx, fp)
			require.NotEqual(t, segA, segB, "index %d footprint %d", idx, fp)
		}
	}
}

func TestLocateWithDefaultHasher(t *testing.T) {
	tr := NewTranslator(slot.SHA256Hasher{})
	base := testBase(0x04)

	seg0, _ := tr.Locate(base, 0, 1)
	seg255, _ := tr.Locate(base, 255, 1)
	seg256, _ := tr.Locate(base, 256, 1)
	assert.Equal(t, seg0, seg255)
	assert.NotEqual(t, seg0, seg256)
}
