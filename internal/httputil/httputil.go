// Package httputil provides utility functions for HTTP servers.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// choiceStep is the granularity of the offered question counts.
const choiceStep = 5

// ErrMissingValue is returned when a required form or query value is empty.
var ErrMissingValue = errors.New("missing value")

// IntFromString parses a base 10 int. An empty string is ErrMissingValue.
func IntFromString(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingValue
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", s, err)
	}

	return n, nil
}

// FormInt parses the named form value of r as an int.
func FormInt(r *http.Request, key string) (int, error) {
	n, err := IntFromString(r.PostFormValue(key))
	if err != nil {
		return 0, fmt.Errorf("form value %s: %w", key, err)
	}

	return n, nil
}

// CountChoices returns the question counts offered to the player: multiples of five up to total, followed by total
// itself when it is not a multiple of five. It returns nil when total is not positive.
func CountChoices(total int) []int {
	if total <= 0 {
		return nil
	}

	choices := make([]int, 0, total/choiceStep+1)
	for n := choiceStep; n <= total; n += choiceStep {
		choices = append(choices, n)
	}
	if total%choiceStep != 0 {
		choices = append(choices, total)
	}

	return choices
}

// EncodeJSON encodes v to JSON, sets status, and writes it to w.
func EncodeJSON[T any](w http.ResponseWriter, statusCode int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}

	return nil
}
