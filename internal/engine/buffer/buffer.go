package buffer

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// LineEnding represents the line ending style used when the buffer text is
// written out. Lines are always stored without terminators.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix
	LineEndingCRLF                   // Windows
)

// Sequence returns the byte sequence for the line ending.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Buffer is an in-memory, line-oriented text buffer.
//
// Buffer is safe for concurrent use, but the comment engine only ever calls
// it from the host's event goroutine.
type Buffer struct {
	mu sync.RWMutex

	lines      []string
	lineEnding LineEnding
	readOnly   bool
	revision   uint64

	language  string
	overrides map[int]string
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLanguage sets the buffer's default language identifier.
func WithLanguage(lang string) Option {
	return func(b *Buffer) {
		b.language = lang
	}
}

// WithReadOnly makes the buffer reject every Apply.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}

// NewBuffer creates an empty buffer with a single empty line.
func NewBuffer(opts ...Option) *Buffer {
	return NewBufferFromString("", opts...)
}

// NewBufferFromString creates a buffer holding s.
// CRLF line endings are detected and normalized.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := &Buffer{overrides: make(map[int]string)}
	if strings.Contains(s, "\r\n") {
		b.lineEnding = LineEndingCRLF
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	b.lines = strings.Split(s, "\n")
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromReader creates a buffer from everything readable from r.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading buffer content: %w", err)
	}
	return NewBufferFromString(string(data), opts...), nil
}

// Text returns the entire buffer content using the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a line without its terminator.
// Out-of-range lines return an empty string.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// Clamp returns the nearest valid position to p.
func (b *Buffer) Clamp(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clamp(b.lines, p)
}

// Revision returns a counter incremented by every successful Apply.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// ReadOnly reports whether the buffer rejects writes.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly toggles read-only mode.
func (b *Buffer) SetReadOnly(readOnly bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = readOnly
}

// Apply applies edits in order, each interpreted against the state left by
// the edits before it. The batch is atomic: if any edit is invalid the
// buffer is left untouched and the error is returned.
func (b *Buffer) Apply(edits []Edit) error {
	_, err := b.ApplyInverse(edits)
	return err
}

// ApplyInverse applies edits like Apply and returns the edits that restore
// the previous text, in the order they must be applied.
func (b *Buffer) ApplyInverse(edits []Edit) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return nil, ErrReadOnly
	}

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)

	inverse := make([]Edit, len(edits))
	for i, edit := range edits {
		next, err := replace(lines, edit)
		if err != nil {
			return nil, fmt.Errorf("edit %d %s: %w", i, edit, err)
		}
		inverse[len(edits)-1-i] = Edit{
			Range:   PointRange{Start: edit.Range.Start, End: edit.NewEnd()},
			NewText: textIn(lines, edit.Range),
		}
		lines = next
	}

	b.lines = lines
	b.revision++
	return inverse, nil
}

// textIn returns the text covered by a valid range.
func textIn(lines []string, r PointRange) string {
	if r.Start.Line == r.End.Line {
		return lines[r.Start.Line][r.Start.Column:r.End.Column]
	}
	var sb strings.Builder
	sb.WriteString(lines[r.Start.Line][r.Start.Column:])
	for l := r.Start.Line + 1; l < r.End.Line; l++ {
		sb.WriteByte('\n')
		sb.WriteString(lines[l])
	}
	sb.WriteByte('\n')
	sb.WriteString(lines[r.End.Line][:r.End.Column])
	return sb.String()
}

// replace applies a single edit to lines and returns the new slice.
func replace(lines []string, edit Edit) ([]string, error) {
	r := edit.Range
	if !r.IsValid() || !valid(lines, r.Start) || !valid(lines, r.End) {
		return nil, ErrRangeInvalid
	}

	before := lines[r.Start.Line][:r.Start.Column]
	after := lines[r.End.Line][r.End.Column:]
	middle := strings.Split(before+edit.NewText+after, "\n")

	out := make([]string, 0, len(lines)-(r.End.Line-r.Start.Line)+len(middle)-1)
	out = append(out, lines[:r.Start.Line]...)
	out = append(out, middle...)
	out = append(out, lines[r.End.Line+1:]...)
	return out, nil
}

func valid(lines []string, p Point) bool {
	return p.Line >= 0 && p.Line < len(lines) && p.Column >= 0 && p.Column <= len(lines[p.Line])
}

func clamp(lines []string, p Point) Point {
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(lines) {
		last := len(lines) - 1
		return Point{Line: last, Column: len(lines[last])}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if p.Column > len(lines[p.Line]) {
		p.Column = len(lines[p.Line])
	}
	return p
}
