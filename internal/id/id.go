package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const dateFormat = "2006-01-02"

// NewRunID returns a unique, time-ordered identifier for one projection run.
func NewRunID() string {
	return ulid.Make().String()
}

// FormatPostingID returns a posting ID like "2025-01-06-001" for the seq-th
// posting (1-based) of a simulated day.
func FormatPostingID(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%03d", date.Format(dateFormat), seq)
}

// ParsePostingID parses "2025-01-06-001" into its date and sequence.
func ParsePostingID(id string) (date time.Time, seq int, err error) {
	i := strings.LastIndex(id, "-")
	if i < 0 {
		return time.Time{}, 0, fmt.Errorf("invalid posting ID format: %q", id)
	}

	date, err = time.Parse(dateFormat, id[:i])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid date in posting ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(id[i+1:])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in posting ID %q: %w", id, err)
	}
	if seq < 1 {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in posting ID %q: must be at least 1", id)
	}

	return date, seq, nil
}
