package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextPacksParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("alpha\n\nbeta\n\n\n\ngamma", 100, 0)

	assert.Equal(t, []string{"alpha\n\nbeta\n\ngamma"}, chunks)
}

func TestChunkTextSplitsOnLimit(t *testing.T) {
	chunker := NewTextChunker()
	para := strings.Repeat("x", 40)

	chunks := chunker.ChunkText(strings.Join([]string{para, para, para}, "\n\n"), 90, 0)

	require.Len(t, chunks, 2)
	assert.Equal(t, para+"\n\n"+para, chunks[0])
	assert.Equal(t, para, chunks[1])
}

func TestChunkTextOverlap(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("aaaaaaaaaa\n\nbbbbbbbbbb", 15, 3)

	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaaaaaaaa", chunks[0])
	assert.Equal(t, "aaa\n\nbbbbbbbbbb", chunks[1])
}

func TestChunkTextLongParagraphUsesSentences(t *testing.T) {
	chunker := NewTextChunker()
	text := "First sentence here. Second sentence here! Third sentence here?"

	chunks := chunker.ChunkText(text, 25, 0)

	assert.Equal(t, []string{"First sentence here", "Second sentence here", "Third sentence here"}, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 25)
	}
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Empty(t, NewTextChunker().ChunkText("  \n\n  ", 0, -1))
}
