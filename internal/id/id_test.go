package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)

	_, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Len(t, a, 26)
}

func TestFormatPostingID(t *testing.T) {
	tests := []struct {
		date time.Time
		seq  int
		want string
	}{
		{time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 1, "2025-01-06-001"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 99, "2025-12-31-099"},
		{time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 123, "2026-02-01-123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPostingID(tt.date, tt.seq))
	}
}

func TestParsePostingID(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantSeq int
	}{
		{"2025-01-06-001", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 1},
		{"2025-12-31-099", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 99},
	}
	for _, tt := range tests {
		date, seq, err := ParsePostingID(tt.input)
		require.NoError(t, err, "ParsePostingID(%q)", tt.input)
		assert.True(t, tt.want.Equal(date))
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParsePostingID_Invalid(t *testing.T) {
	for _, input := range []string{"", "garbage", "2025-13-01-001", "2025-01-06-abc", "2025-01-06-000"} {
		_, _, err := ParsePostingID(input)
		assert.Error(t, err, "ParsePostingID(%q) should fail", input)
	}
}

func TestPostingIDRoundTrip(t *testing.T) {
	date := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	got, seq, err := ParsePostingID(FormatPostingID(date, 7))
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
	assert.Equal(t, 7, seq)
}
