package ttylog

import (
	"io"
	"sync"
	"time"
)

// Recorder timestamps traffic passing through the streams it wraps and
// forwards it to a LogSink. Recording stops at the first sink error, traffic
// keeps flowing.
type Recorder struct {
	mu     sync.Mutex
	output LogSink
	err    error

	// Now is the clock entries are stamped with.
	Now func() time.Time
}

// NewRecorder creates a recorder that forwards all traffic to output.
func NewRecorder(output LogSink) *Recorder {
	return &Recorder{output: output, Now: time.Now}
}

func (r *Recorder) record(fd FD, data []byte) {
	if len(data) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}

	r.err = r.output(&Entry{
		TimestampMicros: r.Now().UnixMicro(),
		FD:              fd,
		Data:            append([]byte(nil), data...),
	})
}

// Err returns the error that stopped the recording, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Reader records everything read from rd as traffic on fd.
func (r *Recorder) Reader(fd FD, rd io.Reader) io.Reader {
	return &recordingReader{r: r, fd: fd, wrapped: rd}
}

// Writer records everything successfully written to w as traffic on fd.
func (r *Recorder) Writer(fd FD, w io.Writer) io.Writer {
	return &recordingWriter{r: r, fd: fd, wrapped: w}
}

type recordingReader struct {
	r       *Recorder
	fd      FD
	wrapped io.Reader
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.wrapped.Read(p)
	rr.r.record(rr.fd, p[:n])
	return n, err
}

type recordingWriter struct {
	r       *Recorder
	fd      FD
	wrapped io.Writer
}

func (rw *recordingWriter) Write(p []byte) (int, error) {
	n, err := rw.wrapped.Write(p)
	rw.r.record(rw.fd, p[:n])
	return n, err
}
