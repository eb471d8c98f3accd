package store_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/starquake/quizgame/internal/store"
)

func TestTimestamp(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		want := time.Date(2024, 5, 1, 12, 30, 15, int(250*time.Millisecond), time.UTC)
		v, err := Timestamp(want).Value()
		if err != nil {
			t.Fatalf("Value error: %v", err)
		}

		var ts Timestamp
		if err = ts.Scan(v); err != nil {
			t.Fatalf("Scan error: %v", err)
		}
		if got := time.Time(ts); !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("nil is zero time", func(t *testing.T) {
		t.Parallel()

		ts := Timestamp(time.Now())
		if err := ts.Scan(nil); err != nil {
			t.Fatalf("Scan error: %v", err)
		}
		if !time.Time(ts).IsZero() {
			t.Errorf("got %v, want zero time", time.Time(ts))
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()

		var ts Timestamp
		if err := ts.Scan("yesterday"); !errors.Is(err, ErrConvertingValueIntoTimestamp) {
			t.Errorf("got error %v, want %v", err, ErrConvertingValueIntoTimestamp)
		}
	})
}
