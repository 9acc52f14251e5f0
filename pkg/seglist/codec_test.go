package seglist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzbill/slotlist/pkg/slot"
)

func TestU64Codec(t *testing.T) {
	c := U64Codec{}
	require.Equal(t, uint32(1), c.Footprint())

	words := c.Encode(0xdeadbeef)
	require.Len(t, words, 1)
	v, err := c.Decode(words)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdeadbeef), v)

	_, err = c.Decode(nil)
	assert.Error(t, err)
}

func TestU128Codec(t *testing.T) {
	c := U128Codec{}
	require.Equal(t, uint32(2), c.Footprint())

	in := U128{Hi: 1, Lo: ^uint64(0)}
	words := c.Encode(in)
	require.Len(t, words, 2)
	v, err := c.Decode(words)
	require.NoError(t, err)
	assert.Equal(t, in, v)

	_, err = c.Decode(words[:1])
	assert.Error(t, err)
}

func TestWordCodec(t *testing.T) {
	c := WordCodec{}
	require.Equal(t, uint32(1), c.Footprint())

	var w slot.Word
	w[0] = 0x7f
	w[31] = 0x01
	words := c.Encode(w)
	v, err := c.Decode(words)
	require.NoError(t, err)
	assert.Equal(t, w, v)

	_, err = c.Decode(nil)
	assert.Error(t, err)
}
