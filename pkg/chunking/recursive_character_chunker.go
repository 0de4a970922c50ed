package chunking

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrInvalidInput = errors.New("input is not valid UTF-8 text")

// DefaultSeparators is ordered from coarsest to finest granularity. The
// trailing empty string permits splitting at any character boundary.
var DefaultSeparators = []string{"\n\n", "\n", ".", "!", "?", ",", " ", ""}

const (
	DefaultChunkSize    = 4000
	DefaultChunkOverlap = 0
)

// RecursiveCharacter splits text into chunks of at most chunkSize characters
// by trying each separator in priority order and recursively re-splitting
// oversized pieces with the lower-priority separators. Separators stay
// attached to the piece they terminate, so joining the chunks reproduces the
// input text exactly.
type RecursiveCharacter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

type Option func(*RecursiveCharacter)

func WithChunkSize(size int) Option {
	return func(rc *RecursiveCharacter) {
		rc.chunkSize = size
	}
}

func WithChunkOverlap(overlap int) Option {
	return func(rc *RecursiveCharacter) {
		rc.chunkOverlap = overlap
	}
}

func WithSeparators(separators []string) Option {
	return func(rc *RecursiveCharacter) {
		rc.separators = separators
	}
}

func NewRecursiveCharacter(opts ...Option) *RecursiveCharacter {
	rc := &RecursiveCharacter{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		separators:   DefaultSeparators,
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

func (rc *RecursiveCharacter) ChunkText(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidInput
	}
	if text == "" {
		return nil, nil
	}
	m := &merger{limit: rc.chunkSize, overlap: rc.chunkOverlap}
	rc.split(text, rc.separators, m)
	return m.finish(), nil
}

func (rc *RecursiveCharacter) split(text string, separators []string, m *merger) {
	sep, rest := chooseSeparator(text, separators)
	for _, piece := range splitKeepSeparator(text, sep, rc.chunkSize) {
		if utf8.RuneCountInString(piece) <= rc.chunkSize {
			m.add(piece)
			continue
		}
		if len(rest) == 0 {
			// An indivisible unit with no finer separator left may exceed
			// the bound rather than be cut mid-unit.
			m.emitOversized(piece)
			continue
		}
		rc.split(piece, rest, m)
	}
}

// chooseSeparator returns the first separator contained in the text (the
// empty string always matches) together with the lower-priority remainder
// of the list. If nothing matches, the text is one indivisible unit and the
// last separator is returned with no remainder.
func chooseSeparator(text string, separators []string) (string, []string) {
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			return candidate, separators[i+1:]
		}
	}
	if len(separators) == 0 {
		return "", nil
	}
	return separators[len(separators)-1], nil
}

// splitKeepSeparator splits on sep with the separator kept at the end of the
// preceding piece. The empty separator slices the text into windows of at
// most limit runes.
func splitKeepSeparator(text, sep string, limit int) []string {
	if sep == "" {
		return splitRuneWindows(text, limit)
	}
	parts := strings.SplitAfter(text, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitRuneWindows(text string, limit int) []string {
	if limit < 1 {
		limit = 1
	}
	var windows []string
	start, count := 0, 0
	for i := range text {
		if count == limit {
			windows = append(windows, text[start:i])
			start, count = i, 0
		}
		count++
	}
	if start < len(text) {
		windows = append(windows, text[start:])
	}
	return windows
}

// merger greedily packs consecutive pieces into chunks of at most limit
// runes, so that no two adjacent emitted chunks could be merged without
// exceeding the limit. With a non-zero overlap it re-seeds each new chunk
// with a tail of the previous one.
type merger struct {
	limit   int
	overlap int
	chunks  []string
	pending []string
	size    int
	fresh   bool
}

func (m *merger) add(piece string) {
	n := utf8.RuneCountInString(piece)
	for m.size > 0 && m.size+n > m.limit {
		if m.fresh {
			m.flush()
		} else {
			m.dropFront()
		}
	}
	m.pending = append(m.pending, piece)
	m.size += n
	m.fresh = true
}

func (m *merger) emitOversized(piece string) {
	if m.fresh {
		m.flush()
	}
	m.pending = nil
	m.size = 0
	m.fresh = false
	m.chunks = append(m.chunks, piece)
}

func (m *merger) flush() {
	if len(m.pending) == 0 {
		return
	}
	m.chunks = append(m.chunks, strings.Join(m.pending, ""))
	m.fresh = false
	if m.overlap <= 0 {
		m.pending = m.pending[:0]
		m.size = 0
		return
	}
	var tail []string
	total := 0
	for i := len(m.pending) - 1; i >= 0; i-- {
		n := utf8.RuneCountInString(m.pending[i])
		if total+n > m.overlap {
			break
		}
		tail = append([]string{m.pending[i]}, tail...)
		total += n
	}
	m.pending = tail
	m.size = total
}

func (m *merger) dropFront() {
	m.size -= utf8.RuneCountInString(m.pending[0])
	m.pending = m.pending[1:]
}

func (m *merger) finish() []string {
	if m.fresh {
		m.flush()
	}
	return m.chunks
}
