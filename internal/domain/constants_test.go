package domain_test

import (
	"testing"
	"time"

	"sprout/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	at := time.Date(2026, time.March, 11, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-11", domain.DayKey(at))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, domain.DaysBetween(a, b))
	assert.Equal(t, -2, domain.DaysBetween(b, a))
	assert.Equal(t, 0, domain.DaysBetween(b, b))
}

func TestISOWeekBounds(t *testing.T) {
	// Wednesday → the surrounding Monday..Monday window
	wed := time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC)
	start, end := domain.ISOWeekBounds(wed)
	assert.Equal(t, "2026-03-09", domain.DayKey(start))
	assert.Equal(t, "2026-03-16", domain.DayKey(end))

	// Sunday belongs to the week that started the previous Monday
	sun := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	start, end = domain.ISOWeekBounds(sun)
	assert.Equal(t, "2026-03-09", domain.DayKey(start))
	assert.Equal(t, "2026-03-16", domain.DayKey(end))

	// Monday starts its own week
	mon := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	start, _ = domain.ISOWeekBounds(mon)
	assert.Equal(t, "2026-03-09", domain.DayKey(start))
}
