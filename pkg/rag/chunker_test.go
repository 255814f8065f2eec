package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShort(t *testing.T) {
	assert.Nil(t, SplitText(""))
	assert.Nil(t, SplitText("   \n  "))
	assert.Equal(t, []string{"short text"}, SplitText("short text"))
}

func TestSplitTextWindows(t *testing.T) {
	text := strings.Repeat("a", 2500)
	chunks := SplitText(text)

	// windows start every 800 runes: 0, 800, 1600 runs to the end
	assert.Len(t, chunks, 3)
	assert.Len(t, []rune(chunks[0]), 1000)
	assert.Len(t, []rune(chunks[1]), 1000)
	assert.Len(t, []rune(chunks[2]), 900)
}

func TestSplitTextOverlap(t *testing.T) {
	var b strings.Builder
	for i := 0; b.Len() < 3000; i++ {
		b.WriteString("The quick brown fox jumps over the lazy dog. ")
	}
	text := strings.TrimSpace(b.String())

	chunks := SplitText(text)
	runes := []rune(text)

	for i := 0; i < len(chunks)-1; i++ {
		cur := []rune(chunks[i])
		next := []rune(chunks[i+1])
		// the last 200 runes of one window open the next
		assert.Equal(t, string(cur[len(cur)-200:]), string(next[:200]))
	}

	// every rune of the source appears at its original offset
	offset := 0
	for i, c := range chunks {
		cr := []rune(c)
		assert.Equal(t, string(runes[offset:offset+len(cr)]), c, "chunk %d", i)
		offset += len(cr) - 200
	}
}

func TestSplitTextMultibyte(t *testing.T) {
	text := strings.Repeat("学前教育中心", 300) // 1800 runes
	chunks := SplitText(text)

	assert.Len(t, chunks, 2)
	for _, c := range chunks {
		// windows land on rune boundaries, so chunks stay valid utf-8
		assert.True(t, strings.HasPrefix(c, "学") || strings.HasPrefix(c, "前") ||
			strings.HasPrefix(c, "教") || strings.HasPrefix(c, "育") ||
			strings.HasPrefix(c, "中") || strings.HasPrefix(c, "心"))
	}
	assert.Len(t, []rune(chunks[1]), 1000)
}

func TestChunksRestartable(t *testing.T) {
	seq := Chunks(strings.Repeat("a", 2500))

	var first, second []string
	for c := range seq {
		first = append(first, c)
	}
	for c := range seq {
		second = append(second, c)
	}
	assert.Equal(t, first, second)

	// early break stops the sequence without panicking
	var got int
	for range seq {
		got++
		break
	}
	assert.Equal(t, 1, got)
}

func TestSplitTextExactWindow(t *testing.T) {
	text := strings.Repeat("b", 1000)
	assert.Equal(t, []string{text}, SplitText(text))

	chunks := SplitText(strings.Repeat("b", 1001))
	assert.Len(t, chunks, 2)
	assert.Len(t, []rune(chunks[1]), 201)
}
