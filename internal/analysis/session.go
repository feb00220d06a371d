// Package analysis drives an external engine over the UCI protocol.
package analysis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ErrBusy is returned when a session is asked to start a second analysis.
var ErrBusy = errors.ErrEngineBusy

// closeTimeout bounds how long Close waits for an engine process to exit
// after "quit".
const closeTimeout = 2 * time.Second

// Session is a conversation with one UCI engine. A session runs at most one
// analysis at a time.
type Session struct {
	w      io.Writer
	closer io.Closer
	cmd    *exec.Cmd
	log    zerolog.Logger

	lines   chan string
	done    chan struct{}
	closing chan struct{}
	once    sync.Once

	writeMu sync.Mutex
	mu      sync.Mutex
	busy    bool
	name    string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for protocol traffic.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// NewSession wraps an engine connection. Lines read from rw are consumed by
// a single goroutine until rw reports EOF. If rw is also an io.Closer, Close
// closes it.
func NewSession(rw io.ReadWriter, opts ...Option) *Session {
	s := &Session{
		w:       rw,
		log:     zerolog.Nop(),
		lines:   make(chan string, 64),
		done:    make(chan struct{}),
		closing: make(chan struct{}),
	}
	if c, ok := rw.(io.Closer); ok {
		s.closer = c
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.readLoop(rw)
	return s
}

type pipe struct {
	io.Reader
	io.WriteCloser
}

// Start launches the engine at path and returns a session connected to its
// standard input and output. Call Init before analysing.
func Start(ctx context.Context, path string, args []string, opts ...Option) (*Session, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEngine, "stdin: %v", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEngine, "stdout: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrEngine, "start %s: %v", path, err)
	}

	s := NewSession(pipe{Reader: stdout, WriteCloser: stdin}, opts...)
	s.cmd = cmd
	s.log.Debug().Str("path", path).Int("pid", cmd.Process.Pid).Msg("engine started")
	return s, nil
}

func (s *Session) readLoop(r io.Reader) {
	defer close(s.done)
	defer close(s.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.log.Trace().Str("line", line).Msg("engine >")
		select {
		case s.lines <- line:
		case <-s.closing:
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn().Err(err).Msg("engine output closed")
	}
}

func (s *Session) send(cmd string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.log.Trace().Str("line", cmd).Msg("engine <")
	if _, err := io.WriteString(s.w, cmd+"\n"); err != nil {
		return errors.Wrapf(errors.ErrEngine, "send %q: %v", cmd, err)
	}
	return nil
}

// readLine returns the next line from the engine.
func (s *Session) readLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", errors.Wrap(errors.ErrEngine, "engine closed its output")
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// await reads lines until one equal to want, passing the others to seen.
func (s *Session) await(ctx context.Context, want string, seen func(string)) error {
	for {
		line, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		if line == want {
			return nil
		}
		if seen != nil {
			seen(line)
		}
	}
}

// Init performs the protocol handshake: "uci" answered by "uciok", then
// "isready" answered by "readyok".
func (s *Session) Init(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.send("uci"); err != nil {
		return err
	}
	err := s.await(ctx, "uciok", func(line string) {
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			s.mu.Lock()
			s.name = name
			s.mu.Unlock()
		}
	})
	if err != nil {
		return errors.Wrap(err, "uci handshake")
	}
	if err := s.send("isready"); err != nil {
		return err
	}
	if err := s.await(ctx, "readyok", nil); err != nil {
		return errors.Wrap(err, "isready")
	}
	s.log.Debug().Str("engine", s.Name()).Msg("engine ready")
	return nil
}

// Name returns the engine's self-reported name, known after Init.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Analyse searches the position fen to the given depth. Evaluations are
// streamed as the engine reports them; the last one carries BestMove and
// the channel is closed after it. The caller must drain the channel.
// Cancelling ctx sends "stop" and closes the channel once the engine
// answers.
func (s *Session) Analyse(ctx context.Context, fen string, depth int) (<-chan engine.Evaluation, error) {
	if err := engine.ValidateFEN(fen); err != nil {
		return nil, err
	}
	if depth <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "depth %d must be positive", depth)
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}

	for _, cmd := range []string{"position fen " + fen, fmt.Sprintf("go depth %d", depth)} {
		if err := s.send(cmd); err != nil {
			s.release()
			return nil, err
		}
	}

	out := make(chan engine.Evaluation)
	go s.stream(ctx, out)
	return out, nil
}

func (s *Session) stream(ctx context.Context, out chan<- engine.Evaluation) {
	defer close(out)
	defer s.release()

	var eval engine.Evaluation
	done := ctx.Done()
	stopped := false
	stop := func() {
		done, stopped = nil, true
		if err := s.send("stop"); err != nil {
			s.log.Warn().Err(err).Msg("stop analysis")
		}
	}
	emit := func(e engine.Evaluation) {
		if stopped {
			return
		}
		e.PV = append([]string(nil), e.PV...)
		select {
		case out <- e:
		case <-done:
			stop()
		}
	}

	for {
		var line string
		select {
		case l, ok := <-s.lines:
			if !ok {
				s.log.Warn().Msg("engine exited during analysis")
				return
			}
			line = l
		case <-done:
			stop()
			continue
		}

		if best, ok := parseBestMove(line); ok {
			eval.BestMove = best
			emit(eval)
			return
		}
		if parseInfo(line, &eval) {
			emit(eval)
		}
	}
}

// Stop asks the engine to finish the running search now.
func (s *Session) Stop() error {
	return s.send("stop")
}

// Close sends "quit" and releases the connection. For an engine started
// with Start it waits for the process to exit, killing it after a grace
// period.
func (s *Session) Close() error {
	err := s.send("quit")
	s.once.Do(func() { close(s.closing) })
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if s.cmd == nil {
		return err
	}

	select {
	case <-s.done:
	case <-time.After(closeTimeout):
		s.log.Warn().Msg("engine did not quit, killing it")
		_ = s.cmd.Process.Kill()
		<-s.done
	}
	if werr := s.cmd.Wait(); werr != nil {
		s.log.Debug().Err(werr).Msg("engine exit")
	}
	return err
}
