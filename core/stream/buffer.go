package stream

import "io"

// Buffer is an in-memory FIFO queue of lines. It is both a Writer (for the
// stage producing lines) and a Reader (for the stage consuming them).
// A Buffer isn't safe for concurrent use.
type Buffer struct {
	lines []string
	head  int
}

var _ Reader = (*Buffer)(nil)
var _ Writer = (*Buffer)(nil)

// NewBuffer creates a buffer pre-filled with lines.
func NewBuffer(lines ...string) *Buffer {
	b := &Buffer{}
	b.lines = append(b.lines, lines...)
	return b
}

// WriteLine appends a line to the back of the queue.
func (b *Buffer) WriteLine(line string) error {
	// Reclaim the consumed prefix once it dominates the slice.
	if b.head > 0 && b.head*2 >= len(b.lines) {
		n := copy(b.lines, b.lines[b.head:])
		b.lines = b.lines[:n]
		b.head = 0
	}

	b.lines = append(b.lines, line)
	return nil
}

// ReadLine pops the line at the front of the queue, it returns io.EOF when
// the queue is empty.
func (b *Buffer) ReadLine() (string, error) {
	if b.head >= len(b.lines) {
		return "", io.EOF
	}

	line := b.lines[b.head]
	b.lines[b.head] = ""
	b.head++
	return line, nil
}

// Len returns the number of unread lines.
func (b *Buffer) Len() int {
	return len(b.lines) - b.head
}
