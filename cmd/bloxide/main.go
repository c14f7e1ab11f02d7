package main

// A falling block puzzle game for the terminal. Plays in the local terminal
// by default or serves one game per session over SSH with -ssh.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/ghthor/bloxide"
	"github.com/ghthor/bloxide/bubbles/playfield"
	"github.com/ghthor/bloxide/game"
	"github.com/ghthor/bloxide/highscore"
	"golang.org/x/sync/errgroup"
)

var (
	serveSSH bool
	sshAddr  string = "localhost:23234"
	hostKey  string = ".ssh/id_ed25519"
	dbPath   string = ".highscore.db"
	seed     uint64
	logLevel string = "info"
	logFile  string
)

func init() {
	switch os.Getenv("LIPGLOSS_LOG_FORMAT") {
	case "json":
		log.SetFormatter(log.JSONFormatter)
	}
}

func main() {
	flag.BoolVar(&serveSSH, "ssh", false, "serve games over ssh instead of playing locally")
	flag.StringVar(&sshAddr, "ssh-addr", sshAddr, "address for the ssh listener")
	flag.StringVar(&hostKey, "host-key", hostKey, "ssh host key path, generated if missing")
	flag.StringVar(&dbPath, "db", dbPath, "sqlite file recording finished games")
	flag.Uint64Var(&seed, "seed", 0, "piece sequence seed, 0 for a random sequence")
	flag.StringVar(&logLevel, "log-level", logLevel, "debug, info, warn or error")
	flag.StringVar(&logFile, "log-file", "", "write logs to this file")

	flag.Parse()

	os.Exit(run())
}

// setupLogging configures the default logger. The returned closer owns the
// log file, if any.
func setupLogging(level, file string, quiet bool) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	if file == "" {
		if quiet {
			// the game owns the terminal
			log.SetOutput(io.Discard)
		}
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

func run() int {
	logs, err := setupLogging(logLevel, logFile, !serveSSH)
	if err != nil {
		log.Error("logging setup failed", "error", err)
		return 1
	}
	defer logs.Close()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	rootCtx := ctx

	ctx, sigCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer sigCancel()

	store, err := highscore.Open(ctx, dbPath)
	if err != nil {
		log.Error("could not open highscore db", "path", dbPath, "error", err)
		return 1
	}
	defer store.Close()

	if !serveSSH {
		if err = playLocal(ctx, store); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			log.Error("game exited", "error", err)
			return 1
		}
		return 0
	}

	grp, grpCtx := errgroup.WithContext(ctx)

	s, err := bloxide.NewServer(sshAddr, hostKey,
		bloxide.WishMiddleware(ctx, newSessionModel(store), bloxide.NewProgram),
	)
	if err != nil {
		log.Error("Could not create SSH server", "error", err)
		return 1
	}

	log.Info("Starting SSH server", "addr", sshAddr)
	if err = bloxide.RunSSH(grpCtx, grp, cancel, nil, s); err != nil {
		log.Error("failed to start ssh server", "error", err)
		return 1
	}

	code := 0
	<-ctx.Done()
	if err = context.Cause(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("ssh server failed", "error", err)
		code = 1
	}

	log.Info("Stopping SSH server")
	if err = bloxide.ShutdownSSH(s, bloxide.DefaultShutdownTimeout); err != nil {
		log.Error("Could not stop server", "error", err)
		code = 1
	}

	if err = grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("error shutting down server", "error", err)
		code = 1
	}
	return code
}

func newGame(store *highscore.Store, logger *log.Logger) *game.State {
	best, err := store.Best()
	if err != nil {
		logger.Warn("could not read high score", "error", err)
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithHighScore(best),
	}
	if seed != 0 {
		opts = append(opts, game.WithSeed(seed))
	}
	return game.New(opts...)
}

func playLocal(ctx context.Context, store *highscore.Store) error {
	logger := log.Default()
	m := playfield.New(newGame(store, logger),
		playfield.WithRecorder(store),
		playfield.WithLogger(logger),
	)

	_, err := bloxide.NewProgram(ctx, m).Run()
	return err
}

func newSessionModel(store *highscore.Store) bloxide.NewSessionModel {
	return func(ctx context.Context, pty ssh.Pty, sess bloxide.Session) tea.Model {
		logger := log.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		return playfield.New(newGame(store, logger),
			playfield.WithRecorder(store),
			playfield.WithLogger(logger),
		)
	}
}
