package chunking

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkText_SingleAndEmptyInputs(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		opts     []Option
		expected []string
	}{
		{
			name:     "EmptyText",
			text:     "",
			expected: nil,
		},
		{
			name:     "TextBelowBound",
			text:     "Patient presents with mild fever and persistent cough.",
			expected: []string{"Patient presents with mild fever and persistent cough."},
		},
		{
			name:     "SentenceSeparatorsBelowBound",
			text:     "A. B. C.",
			opts:     []Option{WithSeparators([]string{".", " ", ""})},
			expected: []string{"A. B. C."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rc := NewRecursiveCharacter(tc.opts...)
			chunks, err := rc.ChunkText(tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(chunks) != len(tc.expected) {
				t.Fatalf("expected %d chunks, got %d: %q", len(tc.expected), len(chunks), chunks)
			}
			for i := range chunks {
				if chunks[i] != tc.expected[i] {
					t.Errorf("chunk %d: expected %q, got %q", i, tc.expected[i], chunks[i])
				}
			}
		})
	}
}

func TestChunkText_CharacterFallbackSizes(t *testing.T) {
	rc := NewRecursiveCharacter()
	chunks, err := rc.ChunkText(strings.Repeat("a", 9000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int{4000, 4000, 1000}
	if len(chunks) != len(expected) {
		t.Fatalf("expected %d chunks, got %d", len(expected), len(chunks))
	}
	for i, want := range expected {
		if got := utf8.RuneCountInString(chunks[i]); got != want {
			t.Errorf("chunk %d: expected size %d, got %d", i, want, got)
		}
	}
}

func TestChunkText_SizeBound(t *testing.T) {
	text := strings.Repeat("The patient reports chest pain on exertion. No prior history of cardiac disease.\n", 200) +
		"\n\n" + strings.Repeat("Observation line with vitals and notes, recorded at intake, ", 100)

	rc := NewRecursiveCharacter(WithChunkSize(500))
	chunks, err := rc.ChunkText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	for i, c := range chunks {
		if utf8.RuneCountInString(c) > 500 {
			t.Errorf("chunk %d exceeds bound: %d runes", i, utf8.RuneCountInString(c))
		}
	}
}

func TestChunkText_LosslessReconstruction(t *testing.T) {
	testCases := []struct {
		name string
		text string
		size int
	}{
		{"Paragraphs", "First paragraph about intake.\n\nSecond paragraph about history.\n\nThird, longer paragraph with observations and a plan.", 40},
		{"Sentences", "Complaint noted. History reviewed! Labs ordered? Follow-up scheduled, pending results.", 30},
		{"NoSeparators", strings.Repeat("x", 257), 50},
		{"Unicode", strings.Repeat("température élevée, état stable. ", 20), 45},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rc := NewRecursiveCharacter(WithChunkSize(tc.size))
			chunks, err := rc.ChunkText(tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.Join(chunks, ""); got != tc.text {
				t.Errorf("reconstruction mismatch:\nwant %q\ngot  %q", tc.text, got)
			}
		})
	}
}

func TestChunkText_AdjacentChunksNotMergeable(t *testing.T) {
	text := "Short. " + strings.Repeat("A long clinical narrative sentence with detail. ", 40) + "Tail note."
	size := 120

	rc := NewRecursiveCharacter(WithChunkSize(size))
	chunks, err := rc.ChunkText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i+1 < len(chunks); i++ {
		merged := utf8.RuneCountInString(chunks[i]) + utf8.RuneCountInString(chunks[i+1])
		if merged <= size {
			t.Errorf("chunks %d and %d could be merged (%d runes <= %d)", i, i+1, merged, size)
		}
	}
}

func TestChunkText_Idempotent(t *testing.T) {
	text := strings.Repeat("Vitals stable. Patient resting comfortably.\n", 50)
	rc := NewRecursiveCharacter(WithChunkSize(200))

	first, err := rc.ChunkText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := rc.ChunkText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkText_OversizedIndivisibleUnit(t *testing.T) {
	// No empty-string fallback: a unit longer than the bound is emitted
	// whole rather than cut mid-unit.
	word := strings.Repeat("z", 50)
	rc := NewRecursiveCharacter(WithChunkSize(10), WithSeparators([]string{"\n"}))

	chunks, err := rc.ChunkText(word)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != word {
		t.Fatalf("expected the oversized unit as one chunk, got %q", chunks)
	}
}

func TestChunkText_SeparatorPriority(t *testing.T) {
	text := "History section line one.\nHistory line two.\n\nObservations section line one.\nObservations line two."
	rc := NewRecursiveCharacter(WithChunkSize(60))

	chunks, err := rc.ChunkText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The paragraph break outranks line breaks: no chunk spans it.
	for i, c := range chunks {
		if strings.Contains(strings.Trim(c, "\n"), "\n\n") {
			t.Errorf("chunk %d spans a paragraph boundary: %q", i, c)
		}
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Errorf("reconstruction mismatch: %q", got)
	}
}

func TestChunkText_OverlapWindow(t *testing.T) {
	rc := NewRecursiveCharacter(WithChunkSize(10), WithChunkOverlap(5))
	chunks, err := rc.ChunkText("aaaa bbbb cccc dddd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"aaaa bbbb ", "bbbb cccc ", "cccc dddd"}
	if len(chunks) != len(expected) {
		t.Fatalf("expected %d chunks, got %d: %q", len(expected), len(chunks), chunks)
	}
	for i := range expected {
		if chunks[i] != expected[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, expected[i], chunks[i])
		}
	}
}

func TestChunkText_InvalidUTF8(t *testing.T) {
	rc := NewRecursiveCharacter()
	_, err := rc.ChunkText("valid prefix \xff\xfe")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
