package highscore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

type Store struct {
	ctx context.Context
	db  *sql.DB
}

func Open(ctx context.Context, filename string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)", filename))
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			ts DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			result JSON NOT NULL CHECK (json_valid(result))
		);
	`)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("error initializing sqlite table: %w", err),
			db.Close(),
		)
	}

	return &Store{
		ctx: ctx,
		db:  db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a finished game, retrying briefly if the database is busy.
func (s *Store) Save(r Result) (Result, error) {
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}

	data, err := r.marshal()
	if err != nil {
		return r, fmt.Errorf("error marshaling result: %w", err)
	}

	exp := &backoff.ExponentialBackOff{
		InitialInterval:     20 * time.Millisecond,
		RandomizationFactor: 0.1,
		Multiplier:          2,
		MaxInterval:         200 * time.Millisecond,
	}
	id, err := backoff.Retry(s.ctx, func() (int64, error) {
		res, err := s.db.ExecContext(s.ctx, `INSERT INTO results(ts, result) VALUES (?, ?)`, r.EndedAt, data)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	},
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(3),
		backoff.WithNotify(func(err error, d time.Duration) {
			log.Warn("highscore save", "error", err, "retrying", d)
		}),
	)
	if err != nil {
		return r, fmt.Errorf("error saving result: %w", err)
	}

	r.ID = id
	return r, nil
}

// Best returns the highest recorded score, 0 when nothing was recorded.
func (s *Store) Best() (uint64, error) {
	var best int64
	err := s.db.QueryRowContext(s.ctx, `
SELECT COALESCE(MAX(json_extract(result, '$.score')), 0)
FROM results
`).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("best score query error: %w", err)
	}
	return uint64(best), nil
}

// Top returns the n best results, highest score first.
func (s *Store) Top(n int) ([]Result, error) {
	rows, err := s.db.QueryContext(s.ctx, `
SELECT id, result
FROM results
ORDER BY json_extract(result, '$.score') DESC, id ASC
LIMIT ?
`, n)
	if err != nil {
		return nil, fmt.Errorf("results query error: %w", err)
	}

	results := make([]Result, 0, n)
	for rows.Next() {
		var (
			id   int64
			data string
			r    Result
		)
		err = rows.Scan(&id, &data)
		if err != nil {
			break
		}

		r, err = unmarshalResult(id, data)
		if err != nil {
			err = fmt.Errorf("json decoding error: %w", err)
			break
		}
		results = append(results, r)
	}
	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("rows close error: %w", closeErr)
	}
	if err != nil {
		return nil, fmt.Errorf("rows scan error: %w", err)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows unexpected error: %w", rows.Err())
	}

	return results, nil
}
