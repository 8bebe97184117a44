package logger

// LoginResult is the outcome of an authentication attempt.
type LoginResult string

const (
	LoginSuccess LoginResult = "SUCCESS"
	LoginFailure LoginResult = "FAILURE"
)

// SessionStart is logged when a session begins.
type SessionStart struct {
	User       string `json:"user,omitempty"`
	RemoteAddr string `json:"remote_addr,omitempty"`
	Dir        string `json:"dir"`
	// Interactive is set when the session reads lines from a user.
	Interactive bool `json:"interactive"`
}

// Command is logged for every line that ran at least one command.
type Command struct {
	Line       string   `json:"line"`
	Kinds      []string `json:"kinds"`
	ReturnCode int      `json:"return_code"`
	Terminate  bool     `json:"terminate,omitempty"`
}

// SyntaxError is logged for lines that failed to parse.
type SyntaxError struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

// InvalidInvocation is logged when a command's arguments can't be decoded.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

// LoginAttempt is logged for each password the server checks.
type LoginAttempt struct {
	Username   string      `json:"username"`
	RemoteAddr string      `json:"remote_addr,omitempty"`
	Result     LoginResult `json:"result"`
}

// SessionEnd is logged when a session finishes.
type SessionEnd struct {
	ReturnCode int `json:"return_code"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

func (e *SessionStart) setOn(le *LogEntry)      { le.SessionStart = e }
func (e *Command) setOn(le *LogEntry)           { le.Command = e }
func (e *SyntaxError) setOn(le *LogEntry)       { le.SyntaxError = e }
func (e *InvalidInvocation) setOn(le *LogEntry) { le.InvalidInvocation = e }
func (e *LoginAttempt) setOn(le *LogEntry)      { le.LoginAttempt = e }
func (e *SessionEnd) setOn(le *LogEntry)        { le.SessionEnd = e }

// LogEntry is a single line of the event log, exactly one event is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	Command           *Command           `json:"command,omitempty"`
	SyntaxError       *SyntaxError       `json:"syntax_error,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	LoginAttempt      *LoginAttempt      `json:"login_attempt,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
}

// Event returns the event set on the entry or nil.
func (le *LogEntry) Event() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.Command != nil:
		return le.Command
	case le.SyntaxError != nil:
		return le.SyntaxError
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.LoginAttempt != nil:
		return le.LoginAttempt
	case le.SessionEnd != nil:
		return le.SessionEnd
	default:
		return nil
	}
}
