package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkByLinesKeepsShortInput(t *testing.T) {
	got := ChunkByLines("한 줄짜리 이야기", 100)
	if len(got) != 1 || got[0] != "한 줄짜리 이야기" {
		t.Errorf("got %v", got)
	}
}

func TestChunkByLinesSplitsOnLimit(t *testing.T) {
	input := strings.Join([]string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
	}, "\n")

	chunks := ChunkByLines(input, 85)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2: %v", len(chunks), chunks)
	}
	for _, chunk := range chunks {
		if utf8.RuneCountInString(chunk) > 85 {
			t.Errorf("chunk over limit: %d runes", utf8.RuneCountInString(chunk))
		}
	}
}

func TestChunkByLinesRuneAware(t *testing.T) {
	// 멀티바이트 문자는 룬 기준으로 세어야 한다.
	input := strings.Repeat("가", 10)
	chunks := ChunkByLines(input, 10)
	if len(chunks) != 1 {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestChunkByLinesZeroLimit(t *testing.T) {
	got := ChunkByLines("text", 0)
	if len(got) != 1 || got[0] != "text" {
		t.Errorf("got %v", got)
	}
}
