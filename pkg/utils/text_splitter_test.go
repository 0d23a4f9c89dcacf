package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInputIsSingleChunk(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitTextOverlapPreservesBoundaries(t *testing.T) {
	text := strings.Repeat("a", 50) + strings.Repeat("b", 50)
	chunks := SplitText(text, 60, 20)

	require.Len(t, chunks, 2)
	// Second chunk starts 'step' (60-20=40) runes in, so it repeats the
	// last 20 runes of the first chunk.
	assert.Equal(t, chunks[0][40:], chunks[1][:20])
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 500)
	chunks := SplitText(text, 120, 30)

	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))

	total := 0
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 120)
		total += len(c)
	}
	assert.GreaterOrEqual(t, total, len(text))
}

func TestSplitTextDegenerateOverlap(t *testing.T) {
	// overlap >= chunkSize must not loop forever
	chunks := SplitText(strings.Repeat("y", 30), 10, 10)
	assert.NotEmpty(t, chunks)
}
