// Package highscore contains the leaderboard domain type.
package highscore

import (
	"context"
	"time"
)

// Entry is a leaderboard record. Score is a percentage in [0, 100].
type Entry struct {
	Name      string
	Score     float64
	CreatedAt time.Time
}

// Store represents a store for high scores.
type Store interface {
	// Insert appends a new entry. Names are not unique.
	Insert(ctx context.Context, name string, score float64) error
	// Top returns at most n entries ordered by score descending, ties in insertion order.
	Top(ctx context.Context, n int) ([]Entry, error)
}

// LowestQualifying returns the score a new entry has to beat to make a leaderboard of the given size. It returns
// false when the snapshot holds fewer than size entries, in which case every score qualifies.
func LowestQualifying(top []Entry, size int) (float64, bool) {
	if size < 1 || len(top) < size {
		return 0, false
	}

	return top[size-1].Score, true
}
