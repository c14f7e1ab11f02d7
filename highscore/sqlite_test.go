package highscore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.Context(), filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBestEmpty(t *testing.T) {
	s := openTestStore(t)

	best, err := s.Best()
	require.NoError(t, err)
	require.Equal(t, uint64(0), best)

	top, err := s.Top(5)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestSaveAndTop(t *testing.T) {
	s := openTestStore(t)

	at := time.Unix(1700000000, 0).UTC()
	for _, score := range []uint64{300, 1200, 40, 800} {
		r, err := s.Save(Result{Score: score, Level: 2, Lines: 14, EndedAt: at})
		require.NoError(t, err)
		require.NotZero(t, r.ID)
	}

	best, err := s.Best()
	require.NoError(t, err)
	require.Equal(t, uint64(1200), best)

	top, err := s.Top(3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, uint64(1200), top[0].Score)
	require.Equal(t, uint64(800), top[1].Score)
	require.Equal(t, uint64(300), top[2].Score)

	require.Equal(t, 2, top[0].Level)
	require.Equal(t, 14, top[0].Lines)
	require.True(t, at.Equal(top[0].EndedAt))
}

func TestSaveDefaultsEndedAt(t *testing.T) {
	s := openTestStore(t)

	r, err := s.Save(Result{Score: 10})
	require.NoError(t, err)
	require.False(t, r.EndedAt.IsZero())

	top, err := s.Top(1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.False(t, top[0].EndedAt.IsZero())
	require.True(t, r.EndedAt.Equal(top[0].EndedAt))
}

func TestOpenDirectoryFails(t *testing.T) {
	_, err := Open(t.Context(), t.TempDir())
	require.Error(t, err)
}

func TestReopenKeepsResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := Open(t.Context(), path)
	require.NoError(t, err)
	_, err = s.Save(Result{Score: 500, Level: 1, Lines: 4})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(t.Context(), path)
	require.NoError(t, err)
	defer s.Close()

	best, err := s.Best()
	require.NoError(t, err)
	require.Equal(t, uint64(500), best)
}
