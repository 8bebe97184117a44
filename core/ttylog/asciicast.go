package ttylog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

const (
	asciicastOutput = "o"
	asciicastInput  = "i"
)

func writeJSONLine(w io.Writer, structure interface{}) error {
	line, err := json.Marshal(structure)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", line)
	return err
}

// NewAsciicastLogSink creates a LogSink compatible with the asciicast v2
// format. The header is written along with the first entry.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
func NewAsciicastLogSink(w io.Writer, title string) LogSink {
	var (
		firstLogTimeMicros int64
		once               sync.Once
		headerErr          error
	)

	return func(entry *Entry) error {
		once.Do(func() {
			firstLogTimeMicros = entry.TimestampMicros
			// Generic settings that display most sessions.
			headerErr = writeJSONLine(w, map[string]interface{}{
				"version":   2,
				"width":     80,
				"height":    24,
				"timestamp": time.UnixMicro(firstLogTimeMicros).Unix(),
				"title":     title,
				"env": map[string]interface{}{
					"TERM":  "xterm-256color",
					"SHELL": "/bin/lish",
				},
			})
		})
		if headerErr != nil {
			return headerErr
		}

		// Asciicast doesn't support stderr so it's collapsed into stdout.
		direction := asciicastOutput
		if entry.FD == FDStdin {
			direction = asciicastInput
		}

		return writeJSONLine(w, &asciicastLogLine{
			TimeSeconds: microsecondsToSeconds(entry.TimestampMicros - firstLogTimeMicros),
			EventType:   direction,
			EventData:   string(entry.Data),
		})
	}
}

// AsciicastLogSource reads entries from an asciicast v2 file.
type AsciicastLogSource struct {
	r             *bufio.Reader
	consumeHeader sync.Once
	headerErr     error
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log entries from an asciicast formatted file.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{r: bufio.NewReader(r)}
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (log *AsciicastLogSource) Next() (*Entry, error) {
	log.consumeHeader.Do(func() {
		_, log.headerErr = log.r.ReadBytes('\n')
	})
	if log.headerErr != nil {
		return nil, log.headerErr
	}

	for {
		line, err := log.r.ReadBytes('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			return nil, err
		}

		if len(line) <= 1 {
			// Skip blank lines
			continue
		}

		var asciicastLine asciicastLogLine
		if err := json.Unmarshal(line, &asciicastLine); err != nil {
			return nil, err
		}

		var fd FD
		switch asciicastLine.EventType {
		case asciicastOutput:
			fd = FDStdout
		case asciicastInput:
			fd = FDStdin
		default:
			// skip unknown events
			continue
		}

		return &Entry{
			TimestampMicros: secondsToMicroseconds(asciicastLine.TimeSeconds),
			FD:              fd,
			Data:            []byte(asciicastLine.EventData),
		}, nil
	}
}

type asciicastLogLine struct {
	TimeSeconds float64
	EventType   string
	EventData   string
}

func (line *asciicastLogLine) UnmarshalJSON(data []byte) error {
	var v []interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if count := len(v); count != 3 {
		return fmt.Errorf("malformed line, expected 3 entries got %d", count)
	}

	var timeOk, typeOk, dataOk bool
	line.TimeSeconds, timeOk = v[0].(float64)
	line.EventType, typeOk = v[1].(string)
	line.EventData, dataOk = v[2].(string)

	if !timeOk || !typeOk || !dataOk {
		return fmt.Errorf("malformed data in line: %q", v)
	}

	return nil
}

func (line *asciicastLogLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{line.TimeSeconds, line.EventType, line.EventData})
}

func microsecondsToSeconds(microseconds int64) (seconds float64) {
	return (float64(microseconds) * float64(time.Microsecond)) / float64(time.Second)
}

func secondsToMicroseconds(seconds float64) (microseconds int64) {
	return int64(seconds*float64(time.Second)) / int64(time.Microsecond)
}
