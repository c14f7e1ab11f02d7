// Package highscore persists finished games and the best score, the baseline
// handed to a new game.State.
package highscore

import (
	"encoding/json"
	"fmt"
	"time"
)

// Result is the outcome of one finished game.
type Result struct {
	ID      int64     `json:"-"`
	Score   uint64    `json:"score"`
	Level   int       `json:"level"`
	Lines   int       `json:"lines"`
	EndedAt time.Time `json:"ended_at"`
}

func (r Result) String() string {
	return fmt.Sprintf("%d (level %d, %d lines)", r.Score, r.Level, r.Lines)
}

func (r Result) marshal() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalResult(id int64, data string) (Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return r, err
	}
	r.ID = id
	return r, nil
}
