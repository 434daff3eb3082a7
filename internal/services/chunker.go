package services

import (
	"strings"
	"unicode/utf8"
)

const defaultChunkSize = 1000

// TextChunker splits reference documents into pieces small enough to embed.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Paragraphs are packed greedily; a
// paragraph longer than maxChunkSize is broken on sentence boundaries.
// Each new chunk is seeded with the last overlap runes of the previous one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	p := &chunkPacker{max: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			p.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			p.add(sentence, " ")
		}
	}

	return p.finish()
}

type chunkPacker struct {
	max     int
	overlap int
	chunks  []string
	current strings.Builder
}

func (p *chunkPacker) add(piece, sep string) {
	if p.current.Len() > 0 && p.current.Len()+len(sep)+len(piece) > p.max {
		prev := p.current.String()
		p.chunks = append(p.chunks, prev)
		p.current.Reset()

		if tail := lastRunes(prev, p.overlap); tail != "" {
			p.current.WriteString(tail)
		}
	}

	if p.current.Len() > 0 {
		p.current.WriteString(sep)
	}
	p.current.WriteString(piece)
}

func (p *chunkPacker) finish() []string {
	if p.current.Len() > 0 {
		p.chunks = append(p.chunks, p.current.String())
		p.current.Reset()
	}
	return p.chunks
}

func splitIntoSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
