// Package stream provides line-oriented input and output streams used to
// connect the stages of a pipeline.
package stream

import (
	"bufio"
	"io"
	"strings"
)

// Reader is a source of lines. ReadLine returns io.EOF once the stream is
// exhausted; a stream can't be restarted.
type Reader interface {
	ReadLine() (string, error)
}

// Writer is an append-only sink of lines.
type Writer interface {
	WriteLine(line string) error
}

var (
	// Empty is a Reader that is always at the end of the stream.
	Empty Reader = emptyReader{}
	// Discard is a Writer that drops every line.
	Discard Writer = discardWriter{}
)

type emptyReader struct{}

func (emptyReader) ReadLine() (string, error) {
	return "", io.EOF
}

type discardWriter struct{}

func (discardWriter) WriteLine(string) error {
	return nil
}

// NewReader creates a Reader that splits r into lines. Line terminators
// ("\n" or "\r\n") are not included in the returned lines and a final line
// without a terminator is still returned.
func NewReader(r io.Reader) Reader {
	if r == nil {
		return Empty
	}
	return &ioReader{reader: bufio.NewReader(r)}
}

type ioReader struct {
	reader *bufio.Reader
	err    error
}

func (r *ioReader) ReadLine() (string, error) {
	if r.err != nil {
		return "", r.err
	}

	line, err := r.reader.ReadString('\n')
	switch {
	case err == io.EOF && line == "":
		r.err = io.EOF
		return "", io.EOF
	case err != nil && err != io.EOF:
		r.err = err
		return "", err
	case err == io.EOF:
		// Final unterminated line, the next call reports EOF.
		r.err = io.EOF
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// NewWriter creates a Writer that writes each line to w followed by "\n".
func NewWriter(w io.Writer) Writer {
	if w == nil {
		return Discard
	}
	return &ioWriter{w}
}

type ioWriter struct {
	w io.Writer
}

func (w *ioWriter) WriteLine(line string) error {
	_, err := io.WriteString(w.w, line+"\n")
	return err
}

// ReadAll drains r and returns every line read.
func ReadAll(r Reader) ([]string, error) {
	var out []string
	for {
		line, err := r.ReadLine()
		switch {
		case err == io.EOF:
			return out, nil
		case err != nil:
			return out, err
		}
		out = append(out, line)
	}
}

// Copy moves every line from src to dst, it returns the number of lines
// copied.
func Copy(dst Writer, src Reader) (int, error) {
	count := 0
	for {
		line, err := src.ReadLine()
		switch {
		case err == io.EOF:
			return count, nil
		case err != nil:
			return count, err
		}
		if err := dst.WriteLine(line); err != nil {
			return count, err
		}
		count++
	}
}

// WriteString writes s to w one line at a time. A single trailing newline in
// s doesn't produce an extra empty line.
func WriteString(w Writer, s string) error {
	if s == "" {
		return nil
	}
	for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		if err := w.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// NewIOReader exposes a Reader as an io.Reader, each line is followed by
// "\n".
func NewIOReader(r Reader) io.Reader {
	return &lineIOReader{src: r}
}

type lineIOReader struct {
	src     Reader
	pending []byte
	err     error
}

func (r *lineIOReader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		line, err := r.src.ReadLine()
		if err != nil {
			r.err = err
			continue
		}
		r.pending = []byte(line + "\n")
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}
