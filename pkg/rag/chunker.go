package rag

import (
	"iter"
	"strings"

	"github.com/sproutplan/sproutplan/pkg/types"
)

// Chunks yields text in fixed windows of types.CHUNK_MAX_SIZE runes with
// types.CHUNK_OVERLAP runes shared between neighbours, in reading order.
// Offsets are rune based so multi-byte characters are never cut in half.
// The sequence is computed on demand and can be ranged over repeatedly.
func Chunks(text string) iter.Seq[string] {
	return chunks(text, types.CHUNK_MAX_SIZE, types.CHUNK_OVERLAP)
}

// SplitText collects Chunks into a slice.
func SplitText(text string) []string {
	var out []string
	for chunk := range Chunks(text) {
		out = append(out, chunk)
	}
	return out
}

func chunks(text string, size, overlap int) iter.Seq[string] {
	return func(yield func(string) bool) {
		text := strings.TrimSpace(text)
		if text == "" {
			return
		}

		runes := []rune(text)
		if len(runes) <= size {
			yield(text)
			return
		}

		step := size - overlap
		for start := 0; start < len(runes); start += step {
			end := start + size
			if end >= len(runes) {
				yield(string(runes[start:]))
				return
			}
			if !yield(string(runes[start:end])) {
				return
			}
		}
	}
}
