// Package bloxide serves the game over SSH. Every session gets its own game
// and bubbletea program.
package bloxide

import (
	"context"
	"errors"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/ghthor/bloxide/ctxhelp"
	"github.com/ghthor/bloxide/highscore"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

type Session interface {
	RemoteAddr() net.Addr
	User() string
}

type NewSessionModel func(context.Context, ssh.Pty, Session) tea.Model
type NewTeaProgram func(context.Context, tea.Model, ...tea.ProgramOption) *tea.Program

// NewProgram is a NewTeaProgram that binds the program to ctx.
func NewProgram(ctx context.Context, m tea.Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(m, append(opts, tea.WithContext(ctx), tea.WithAltScreen())...)
}

// Scorer is implemented by session models that report the result of their
// game when the session ends.
type Scorer interface {
	Result() highscore.Result
}

// WishMiddleware runs one game program per session. The program context ends
// with either the server context or the session.
func WishMiddleware(ctx context.Context, newModel NewSessionModel, newProg NewTeaProgram) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			progCtx, cancel := ctxhelp.Join(ctx, s.Context())
			defer cancel(nil)

			var m tea.Model
			teaHandler := func(s ssh.Session) *tea.Program {
				pty, _, active := s.Pty()
				if !active {
					wish.Fatalln(s, "no active terminal, skipping")
					return nil
				}
				m = newModel(progCtx, pty, s)
				return newProg(progCtx, m, bubbletea.MakeOptions(s)...)
			}
			bubbletea.MiddlewareWithProgramHandler(teaHandler, termenv.ANSI256)(next)(s)

			if m != nil {
				logSessionEnd(log.Default(), s, m)
			}
		}
	}
}

func logSessionEnd(l *log.Logger, s Session, m tea.Model) {
	kv := []any{"user", s.User(), "remote", s.RemoteAddr().String()}
	if sc, ok := m.(Scorer); ok {
		r := sc.Result()
		kv = append(kv, "score", r.Score, "level", r.Level, "lines", r.Lines)
	}
	l.Info("session ended", kv...)
}

// NewServer builds an SSH server on addr. A missing host key is generated at
// hostKeyPath.
func NewServer(addr, hostKeyPath string, mw wish.Middleware) (*ssh.Server, error) {
	return wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			mw,
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
}

func RunSSH(ctx context.Context, grp *errgroup.Group, cancel context.CancelCauseFunc, l net.Listener, s *ssh.Server) error {
	if l == nil {
		var err error
		l, err = net.Listen("tcp", s.Addr)
		if err != nil {
			return err
		}
	}

	grp.Go(func() error {
		if err := s.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			cancel(err)
			return err
		}
		return nil
	})

	return nil
}

// DefaultShutdownTimeout is how long running games get to finish before their
// sessions are closed.
const DefaultShutdownTimeout = 30 * time.Second

// ShutdownSSH stops accepting sessions and waits for running games to end,
// closing whatever is left once timeout passes.
func ShutdownSSH(s *ssh.Server, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.Shutdown(ctx)
	switch {
	case err == nil, errors.Is(err, ssh.ErrServerClosed):
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("games still running, closing sessions", "timeout", timeout)
		return s.Close()
	default:
		return err
	}
}
