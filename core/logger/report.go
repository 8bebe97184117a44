package logger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Sessions          SessionReport           `json:"session_report"`
	LoginAttempt      LoginAttemptReport      `json:"login_attempt_report"`
	Command           CommandReport           `json:"command_report"`
	SyntaxError       SyntaxErrorReport       `json:"syntax_error_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.Event().(type) {
	case *SessionStart:
		r.Sessions.Started++
	case *SessionEnd:
		r.Sessions.update(event)
	case *LoginAttempt:
		r.LoginAttempt.update(event)
	case *Command:
		r.Command.update(event)
	case *SyntaxError:
		r.SyntaxError.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type SessionReport struct {
	Started int `json:"started"`
	Ended   int `json:"ended"`
	// Return codes sessions ended with and their counts.
	ReturnCodes StrCounter `json:"return_codes"`
}

func (r *SessionReport) update(se *SessionEnd) {
	r.Ended++
	r.ReturnCodes.Increment(strconv.Itoa(se.ReturnCode))
}

type LoginAttemptReport struct {
	// List of usernames and their counts.
	Usernames StrCounter `json:"usernames"`
	// List of login attempt results and their counts.
	Results StrCounter `json:"results"`
}

func (r *LoginAttemptReport) update(la *LoginAttempt) {
	r.Usernames.Increment(la.Username)
	r.Results.Increment(string(la.Result))
}

type CommandReport struct {
	Lines int `json:"lines"`
	// Kinds of the stages that ran.
	Kinds StrCounter `json:"kinds"`
	// Return codes of each line.
	ReturnCodes StrCounter `json:"return_codes"`
	Terminated  int        `json:"terminated"`
}

func (r *CommandReport) update(c *Command) {
	r.Lines++
	for _, kind := range c.Kinds {
		r.Kinds.Increment(kind)
	}
	r.ReturnCodes.Increment(strconv.Itoa(c.ReturnCode))
	if c.Terminate {
		r.Terminated++
	}
}

type SyntaxErrorReport struct {
	Errors StrCounter `json:"errors"`
}

func (r *SyntaxErrorReport) update(se *SyntaxError) {
	r.Errors.Increment(se.Error)
}

type InvalidInvocationReport struct {
	CommandNames StrCounter `json:"command_counts"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

// NewBugReport creates a report of events that point to misuse or bugs.
func NewBugReport() *BugReport {
	return &BugReport{
		InvalidInvocations: NewPathCounter("command", "error"),
		SyntaxErrors:       NewPathCounter("error"),
	}
}

// BugReport pulls events that are likely bugs in scripts or the interpreter.
type BugReport struct {
	LogEntries int `json:"log_entries"`

	InvalidInvocations *PathCounter `json:"invalid_invocations"`
	SyntaxErrors       *PathCounter `json:"syntax_errors"`
}

func (r *BugReport) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.Event().(type) {
	case *InvalidInvocation:
		name := ""
		if len(event.Command) > 0 {
			name = event.Command[0]
		}
		r.InvalidInvocations.Increment(name, event.Error)
	case *SyntaxError:
		r.SyntaxErrors.Increment(event.Error)
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for a key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for a tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements a custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
