package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedIsDeterministic(t *testing.T) {
	e := NewHashEmbedder()
	a := e.Embed("Can my landlord raise rent without notice?")
	b := e.Embed("Can my landlord raise rent without notice?")

	require.Len(t, a, Dimension)
	assert.Equal(t, a, b)
}

func TestEmbedEmptyTextIsZeroVector(t *testing.T) {
	e := NewHashEmbedder()
	for _, text := range []string{"", "   ", "\n\t"} {
		vec := e.Embed(text)
		require.Len(t, vec, Dimension)
		for i, v := range vec {
			assert.Zerof(t, v, "slot %d for %q", i, text)
		}
	}
}

func TestEmbedIsCaseInsensitive(t *testing.T) {
	e := NewHashEmbedder()
	assert.Equal(t, e.Embed("FIR Theft"), e.Embed("fir theft"))
}

func TestWordHash(t *testing.T) {
	// "ab" = 97*31 + 98
	assert.Equal(t, int32(3105), wordHash("ab"))
	assert.Equal(t, int32(0), wordHash(""))

	// Long words wrap around 32 bits instead of overflowing.
	long := wordHash("constitutionalisation")
	assert.Equal(t, long, wordHash("constitutionalisation"))
}

func TestEmbedSlotsByPosition(t *testing.T) {
	vec := NewHashEmbedder().Embed("ab ab")
	assert.InDelta(t, 0.003105, vec[0], 1e-12)
	assert.InDelta(t, 0.003105, vec[1], 1e-12)
	assert.Zero(t, vec[2])
}

func TestSplitWordsKeepsEdgePositions(t *testing.T) {
	assert.Equal(t, []string{""}, splitWords(""))
	assert.Equal(t, []string{"a", "b"}, splitWords("a  b"))
	assert.Equal(t, []string{"", "a", ""}, splitWords(" a "))
}
