package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 30, 45, 0, time.Local)

	t.Run("literal date", func(t *testing.T) {
		rng, ok := ResolvePeriod("2025-02-01", now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local), rng.From)
		assert.Equal(t, time.Date(2025, time.February, 1, 23, 59, 59, 0, time.Local), rng.To)
	})

	t.Run("today", func(t *testing.T) {
		rng, ok := ResolvePeriod(PeriodToday, now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local), rng.From)
		assert.Equal(t, time.Date(2025, time.March, 15, 23, 59, 59, 0, time.Local), rng.To)
	})

	t.Run("yesterday", func(t *testing.T) {
		rng, ok := ResolvePeriod(PeriodYesterday, now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local), rng.From)
		assert.Equal(t, time.Date(2025, time.March, 14, 23, 59, 59, 0, time.Local), rng.To)
	})

	t.Run("last7days is rolling", func(t *testing.T) {
		rng, ok := ResolvePeriod(PeriodLast7Days, now)
		require.True(t, ok)
		assert.Equal(t, now.AddDate(0, 0, -7), rng.From)
		assert.Equal(t, now, rng.To)
	})

	t.Run("last30days is rolling", func(t *testing.T) {
		rng, ok := ResolvePeriod(PeriodLast30Days, now)
		require.True(t, ok)
		assert.Equal(t, now.AddDate(0, 0, -30), rng.From)
		assert.Equal(t, now, rng.To)
	})

	t.Run("unrecognized token falls back to today", func(t *testing.T) {
		rng, ok := ResolvePeriod("lastweek", now)
		assert.False(t, ok)
		today, _ := ResolvePeriod(PeriodToday, now)
		assert.Equal(t, today, rng)
	})

	t.Run("empty token means today", func(t *testing.T) {
		rng, ok := ResolvePeriod("", now)
		assert.True(t, ok)
		today, _ := ResolvePeriod(PeriodToday, now)
		assert.Equal(t, today, rng)
	})

	t.Run("spring-forward day still ends at 23:59:59", func(t *testing.T) {
		lj, err := time.LoadLocation("Europe/Ljubljana")
		require.NoError(t, err)

		// 2025-03-30 is only 23 hours long in Ljubljana.
		rng, ok := ResolvePeriod("2025-03-30", now.In(lj))
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.March, 30, 0, 0, 0, 0, lj), rng.From)
		assert.True(t, rng.To.Equal(time.Date(2025, time.March, 30, 23, 59, 59, 0, lj)))
	})

	t.Run("fall-back day still ends at 23:59:59", func(t *testing.T) {
		lj, err := time.LoadLocation("Europe/Ljubljana")
		require.NoError(t, err)

		// 2025-10-26 is 25 hours long in Ljubljana.
		rng, ok := ResolvePeriod("2025-10-26", now.In(lj))
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.October, 26, 0, 0, 0, 0, lj), rng.From)
		assert.True(t, rng.To.Equal(time.Date(2025, time.October, 26, 23, 59, 59, 0, lj)))
	})

	t.Run("malformed literal date falls back", func(t *testing.T) {
		rng, ok := ResolvePeriod("2025-13-99", now)
		assert.False(t, ok)
		today, _ := ResolvePeriod(PeriodToday, now)
		assert.Equal(t, today, rng)
	})
}
