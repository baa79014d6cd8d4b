package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gofintrack/internal/domain"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		amount string
		want   Band
	}{
		{"0", BandNone},
		{"0.01", BandLight},
		{"499.99", BandLight},
		{"500", BandMedium},
		{"1999.99", BandMedium},
		{"2000", BandDark},
		{"125000", BandDark},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, BandFor(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestHeatmap(t *testing.T) {
	t.Run("scenario snapshot", func(t *testing.T) {
		now := at(2024, time.March, 2, 20)

		days := Heatmap(scenarioSnapshot(), now)

		require.Len(t, days, 2)
		assert.Equal(t, "1000", days[0].Total.String())
		assert.Equal(t, BandMedium, days[0].Band)
		assert.Equal(t, "500", days[1].Total.String())
		assert.Equal(t, BandMedium, days[1].Band)
	})

	t.Run("fills gaps up to today", func(t *testing.T) {
		now := at(2024, time.March, 10, 8)
		txs := []*domain.Transaction{
			expense(2500, "rent", at(2024, time.March, 1, 10)),
			income(9000, "salary", at(2024, time.February, 1, 10)),
			expense(20, "food", at(2024, time.March, 1, 18)),
		}

		days := Heatmap(txs, now)

		require.Len(t, days, 10)
		assert.Equal(t, "2520", days[0].Total.String())
		assert.Equal(t, BandDark, days[0].Band)
		for _, d := range days[1:] {
			assert.True(t, d.Total.IsZero())
			assert.Equal(t, BandNone, d.Band)
		}
		assert.Equal(t, at(2024, time.March, 10, 0), days[9].Date)
	})

	t.Run("no expenses", func(t *testing.T) {
		txs := []*domain.Transaction{income(10, "salary", at(2024, time.March, 1, 10))}
		days := Heatmap(txs, at(2024, time.March, 2, 10))

		assert.NotNil(t, days)
		assert.Empty(t, days)
	})

	t.Run("range ends today despite future expenses", func(t *testing.T) {
		now := at(2024, time.March, 3, 12)
		txs := []*domain.Transaction{
			expense(10, "food", at(2024, time.March, 1, 9)),
			expense(10, "food", at(2024, time.March, 10, 9)),
		}

		days := Heatmap(txs, now)

		require.Len(t, days, 3)
		assert.Equal(t, at(2024, time.March, 3, 0), days[2].Date)
		assert.True(t, days[2].Total.IsZero())
		assert.Equal(t, "10", days[0].Total.String())
	})

	t.Run("only future expenses", func(t *testing.T) {
		txs := []*domain.Transaction{expense(10, "food", at(2024, time.March, 10, 9))}

		days := Heatmap(txs, at(2024, time.March, 3, 12))

		assert.Empty(t, days)
	})

	t.Run("calendar days use now's location", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*3600)
		now := time.Date(2024, time.March, 2, 12, 0, 0, 0, loc)
		// 03:00 UTC on March 2 is still March 1 at UTC-5.
		txs := []*domain.Transaction{expense(10, "food", at(2024, time.March, 2, 3))}

		days := Heatmap(txs, now)

		require.Len(t, days, 2)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), days[0].Date)
		assert.Equal(t, "10", days[0].Total.String())
	})
}

func TestDayRange(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		days := DayRange(at(2024, time.March, 1, 23), at(2024, time.March, 1, 1))
		require.Len(t, days, 1)
		assert.Equal(t, at(2024, time.March, 1, 0), days[0])
	})

	t.Run("end before start", func(t *testing.T) {
		assert.Empty(t, DayRange(at(2024, time.March, 2, 0), at(2024, time.March, 1, 0)))
	})

	t.Run("crosses month and leap day", func(t *testing.T) {
		days := DayRange(at(2024, time.February, 27, 5), at(2024, time.March, 2, 5))
		require.Len(t, days, 5)
		assert.Equal(t, at(2024, time.February, 29, 0), days[2])
	})

	t.Run("DST transitions neither skip nor repeat days", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skipf("tz database unavailable: %v", err)
		}

		start := time.Date(2024, time.March, 9, 12, 0, 0, 0, loc)
		end := time.Date(2024, time.November, 4, 12, 0, 0, 0, loc)

		days := DayRange(start, end)

		require.Len(t, days, 241)
		seen := make(map[string]bool)
		for i, d := range days {
			assert.Equal(t, 0, d.Hour(), "day %d", i)
			key := d.Format(time.DateOnly)
			assert.False(t, seen[key], "repeated %s", key)
			seen[key] = true
		}
	})
}
