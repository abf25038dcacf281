package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{name: "plain date", input: "2025-02-19", loc: time.UTC, want: Day(2025, time.February, 19)},
		{name: "plain date ignores location", input: "2025-02-19", loc: jakarta, want: Day(2025, time.February, 19)},
		{name: "surrounding spaces", input: "  2025-02-19 ", loc: time.UTC, want: Day(2025, time.February, 19)},
		{name: "utc timestamp", input: "2025-02-19T23:30:00Z", loc: time.UTC, want: Day(2025, time.February, 19)},
		{name: "utc timestamp seen from jakarta", input: "2025-02-19T23:30:00Z", loc: jakarta, want: Day(2025, time.February, 20)},
		{name: "offset timestamp", input: "2025-02-19T01:00:00+07:00", loc: time.UTC, want: Day(2025, time.February, 18)},
		{name: "fractional seconds", input: "2025-02-19T10:00:00.123Z", loc: time.UTC, want: Day(2025, time.February, 19)},
		{name: "zoneless timestamp", input: "2025-02-19T10:00:00", loc: jakarta, want: Day(2025, time.February, 19)},
		{name: "nil location", input: "2025-02-19T10:00:00Z", loc: nil, want: Day(2025, time.February, 19)},
		{name: "empty", input: "", loc: time.UTC, wantErr: true},
		{name: "garbage", input: "not-a-date", loc: time.UTC, wantErr: true},
		{name: "impossible day", input: "2025-02-30", loc: time.UTC, wantErr: true},
		{name: "day first", input: "19-02-2025", loc: time.UTC, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.loc)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestStartOfToday(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	now := time.Date(2025, time.February, 19, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, Day(2025, time.February, 19), StartOfToday(now, time.UTC))
	// 18:30 UTC is already 01:30 the next day in Jakarta.
	assert.Equal(t, Day(2025, time.February, 20), StartOfToday(now, jakarta))
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{}, c)

	c, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 23, Minute: 59}, c)
	assert.Equal(t, "23:59", c.String())

	for _, bad := range []string{"24:00", "7:00", "12:60", "noon", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestNextOccurrence(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	midnight := ClockTime{}

	tests := []struct {
		name string
		now  time.Time
		at   ClockTime
		loc  *time.Location
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2025, 2, 19, 10, 0, 0, 0, time.UTC),
			at:   ClockTime{Hour: 22},
			loc:  time.UTC,
			want: time.Date(2025, 2, 19, 22, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight rolls to tomorrow",
			now:  time.Date(2025, 2, 19, 10, 0, 0, 0, time.UTC),
			at:   midnight,
			loc:  time.UTC,
			want: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at trigger moves a full day",
			now:  time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
			at:   midnight,
			loc:  time.UTC,
			want: time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC),
			at:   midnight,
			loc:  time.UTC,
			want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "other timezone",
			now:  time.Date(2025, 2, 19, 10, 0, 0, 0, time.UTC),
			at:   midnight,
			loc:  jakarta,
			want: time.Date(2025, 2, 19, 17, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.now, tt.at, tt.loc)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}
