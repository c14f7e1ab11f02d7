package bloxide

import (
	"context"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/ghthor/bloxide/highscore"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRunAndShutdownSSH(t *testing.T) {
	ctx, cancel := context.WithCancelCause(t.Context())
	defer cancel(nil)

	var noModel NewSessionModel
	s, err := NewServer(
		"127.0.0.1:0",
		filepath.Join(t.TempDir(), "host_ed25519"),
		WishMiddleware(ctx, noModel, NewProgram),
	)
	require.NoError(t, err)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	grp, grpCtx := errgroup.WithContext(ctx)
	require.NoError(t, RunSSH(grpCtx, grp, cancel, l, s))

	conn, err := net.DialTimeout("tcp", l.Addr().String(), time.Second)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.NoError(t, ShutdownSSH(s, time.Second))
	// Serve may not have tracked the listener before the shutdown
	_ = l.Close()
	require.NoError(t, grp.Wait())
	require.NoError(t, context.Cause(ctx))
}

type fakeSession struct{}

func (fakeSession) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4242}
}
func (fakeSession) User() string { return "tester" }

type scoredModel struct {
	tea.Model
	result highscore.Result
}

func (m scoredModel) Result() highscore.Result { return m.result }

type plainModel struct{ tea.Model }

func TestLogSessionEnd(t *testing.T) {
	var b strings.Builder
	l := log.New(&b)
	l.SetFormatter(log.LogfmtFormatter)

	logSessionEnd(l, fakeSession{}, scoredModel{result: highscore.Result{Score: 1200, Level: 3, Lines: 24}})

	out := b.String()
	require.Contains(t, out, "session ended")
	require.Contains(t, out, "user=tester")
	require.Contains(t, out, "remote=127.0.0.1:4242")
	require.Contains(t, out, "score=1200")
	require.Contains(t, out, "level=3")
	require.Contains(t, out, "lines=24")
}

func TestLogSessionEndWithoutScore(t *testing.T) {
	var b strings.Builder
	l := log.New(&b)
	l.SetFormatter(log.LogfmtFormatter)

	logSessionEnd(l, fakeSession{}, plainModel{})

	require.Contains(t, b.String(), "session ended")
	require.NotContains(t, b.String(), "score=")
}
