package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrConvertingValueIntoTimestamp is returned when a value cannot be converted into a Timestamp.
var ErrConvertingValueIntoTimestamp = errors.New("cannot convert value into Timestamp")

// Timestamp is a time stored as Unix milliseconds in an INTEGER column.
//
//nolint:recvcheck // sql.Scanner needs a pointer receiver, driver.Valuer a value receiver.
type Timestamp time.Time

// Scan converts an int64 column value to a Timestamp. NULL becomes the zero time.
func (t *Timestamp) Scan(value any) error {
	if value == nil {
		*t = Timestamp(time.Time{})

		return nil
	}

	ms, ok := value.(int64)
	if !ok {
		return fmt.Errorf("%w: %T", ErrConvertingValueIntoTimestamp, value)
	}

	*t = Timestamp(time.UnixMilli(ms).UTC())

	return nil
}

// Value converts a Timestamp to Unix milliseconds.
func (t Timestamp) Value() (driver.Value, error) {
	return time.Time(t).UnixMilli(), nil
}
