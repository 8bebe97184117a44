package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"regexp"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/lish/core/config"
	"github.com/josephlewis42/lish/core/logger"
	"github.com/josephlewis42/lish/core/shell"
	"github.com/josephlewis42/lish/core/stream"
	"github.com/josephlewis42/lish/core/ttylog"
	"github.com/josephlewis42/lish/core/vos"
	"github.com/juju/ratelimit"
)

var crlf = regexp.MustCompile(`\r?\n`)

// Server serves one interpreter session per SSH connection.
type Server struct {
	configuration *config.Configuration
	logger        *logger.Logger
	sshServer     *ssh.Server
}

// NewServer creates a server from the configuration, session events are
// written to logDest as JSON lines.
func NewServer(configuration *config.Configuration, logDest io.Writer) (*Server, error) {
	return NewServerWithLogger(configuration, logger.NewJsonLinesLogRecorder(logDest))
}

// NewServerWithLogger creates a server that records session events with
// eventLog.
func NewServerWithLogger(configuration *config.Configuration, eventLog *logger.Logger) (*Server, error) {
	server := &Server{
		configuration: configuration,
		logger:        eventLog,
	}

	server.sshServer = &ssh.Server{
		Addr: configuration.ListenAddress(),
		Handler: func(s ssh.Session) {
			if err := server.HandleConnection(s); err != nil {
				log.Printf("session error: %v", err)
			}
		},
		PasswordHandler: server.checkPassword,
	}

	if keyPath := configuration.HostKeyFile(); keyPath != "" {
		if err := server.sshServer.SetOption(ssh.HostKeyFile(keyPath)); err != nil {
			return nil, fmt.Errorf("couldn't load host key: %w", err)
		}
	}

	return server, nil
}

func (s *Server) checkPassword(ctx ssh.Context, password string) bool {
	ok := s.configuration.CheckPassword(ctx.User(), password)

	result := logger.LoginFailure
	if ok {
		result = logger.LoginSuccess
	}
	_ = s.logger.Sessionless().Record(&logger.LoginAttempt{
		Username:   ctx.User(),
		RemoteAddr: fmt.Sprintf("%s", ctx.RemoteAddr()),
		Result:     result,
	})

	return ok
}

// HandleConnection runs a session over an SSH channel. Exec requests run a
// single line, other sessions read lines until the client disconnects or
// exits.
func (s *Server) HandleConnection(sess ssh.Session) error {
	virtOS, err := NewSessionOS(s.configuration, sess.User(), sess.Environ())
	if err != nil {
		fmt.Fprintf(sess.Stderr(), "%s %v\n", shell.ErrorPrefix, err)
		return sess.Exit(1)
	}

	_, _, isPty := sess.Pty()

	var stdout, stderr io.Writer = sess, sess.Stderr()
	var stdin io.Reader = sess
	if isPty {
		// PTY sessions share a single stream and need carriage returns.
		stdout = newCRLFWriter(sess)
		stderr = stdout
	}

	sessionLog := s.logger.NewSession()
	if recorder, closeRecording := s.startRecording(sessionLog.SessionID()); recorder != nil {
		defer closeRecording()
		stdin = recorder.Reader(ttylog.FDStdin, stdin)
		stdout = recorder.Writer(ttylog.FDStdout, stdout)
		if isPty {
			stderr = stdout
		} else {
			stderr = recorder.Writer(ttylog.FDStderr, stderr)
		}
	}

	if isPty {
		stdin = newPTYInput(stdin, stdout)
	}
	if rate := s.configuration.SSH.OutputRateLimit; rate > 0 {
		bucket := ratelimit.NewBucketWithRate(float64(rate), rate)
		stdout = ratelimit.Writer(stdout, bucket)
		if isPty {
			stderr = stdout
		} else {
			stderr = ratelimit.Writer(stderr, bucket)
		}
	}

	sh := shell.New(virtOS, shell.Stdio{
		In:  stream.NewReader(stdin),
		Out: stdout,
		Err: stderr,
	})
	sh.Prompt = s.configuration.Prompt
	sh.RemoteAddr = fmt.Sprintf("%s", sess.RemoteAddr())
	sh.Log = sessionLog
	sh.SetColor(s.configuration.ColorEnabled(isPty))

	var code int
	if raw := sess.RawCommand(); raw != "" {
		code = sh.RunCommand(raw)
	} else {
		sh.Interactive = true
		code = sh.Run()
	}

	return sess.Exit(int(uint8(code)))
}

// startRecording opens an asciicast recording for the session. It returns a
// nil recorder if recording is disabled or the file can't be created.
func (s *Server) startRecording(sessionID string) (*ttylog.Recorder, func()) {
	fd, err := s.configuration.CreateRecording(sessionID + "." + ttylog.AsciicastFileExt)
	switch {
	case errors.Is(err, config.ErrRecordingsDisabled):
		return nil, nil
	case err != nil:
		log.Printf("couldn't record session %s: %v", sessionID, err)
		return nil, nil
	}

	recorder := ttylog.NewRecorder(ttylog.NewAsciicastLogSink(fd, "lish session "+sessionID))
	return recorder, func() {
		if err := recorder.Err(); err != nil {
			log.Printf("recording of session %s is incomplete: %v", sessionID, err)
		}
		if err := fd.Close(); err != nil {
			log.Printf("couldn't close recording of session %s: %v", sessionID, err)
		}
	}
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.sshServer.Addr
}

func (s *Server) ListenAndServe() error {
	log.Printf("- Starting SSH server on %s\n", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

// Serve accepts connections on l until the server shuts down.
func (s *Server) Serve(l net.Listener) error {
	return s.sshServer.Serve(l)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.sshServer.Shutdown(ctx)
}

// NewSessionOS creates the environment of a session over the host
// filesystem. username sets $USER when it isn't empty.
func NewSessionOS(configuration *config.Configuration, username string, environ []string) (*vos.OS, error) {
	virtOS, err := vos.NewHostOS(environ)
	if err != nil {
		return nil, err
	}

	if configuration.Home != "" {
		virtOS.SetHome(configuration.Home)
	}
	if username != "" {
		if err := virtOS.Setenv(vos.EnvUser, username); err != nil {
			return nil, err
		}
	}
	if configuration.StartDir != "" {
		if err := virtOS.Chdir(configuration.StartDir); err != nil {
			return nil, fmt.Errorf("couldn't enter start_dir: %w", err)
		}
	}

	return virtOS, nil
}

// crlfWriter translates line feeds to carriage return line feeds.
type crlfWriter struct {
	w io.Writer
}

func newCRLFWriter(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(crlf.ReplaceAll(p, []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ptyInput adapts keystrokes from a raw terminal into lines: carriage returns
// end lines, input is echoed and ^D ends the input.
type ptyInput struct {
	r    io.Reader
	echo io.Writer
	eof  bool
}

func newPTYInput(r io.Reader, echo io.Writer) io.Reader {
	return &ptyInput{r: r, echo: echo}
}

const ctrlD = 0x04

func (p *ptyInput) Read(b []byte) (int, error) {
	if p.eof {
		return 0, io.EOF
	}

	n, err := p.r.Read(b)
	for i := 0; i < n; i++ {
		switch b[i] {
		case '\r':
			b[i] = '\n'
		case ctrlD:
			n = i
			p.eof = true
		}
	}

	if n > 0 {
		// Echo failures surface on the next write to the session.
		_, _ = p.echo.Write(b[:n])
	}
	if p.eof && err == nil {
		err = io.EOF
	}
	return n, err
}
