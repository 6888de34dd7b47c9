package domain

import "time"

const (
	PotSpend  = "SPEND"
	PotSave   = "SAVE"
	PotDonate = "DONATE"
)

// Pots in split order. The rounding remainder always lands on SPEND.
var Pots = []string{PotSpend, PotSave, PotDonate}

const (
	TxTypeEarn       = "EARN"
	TxTypeSpend      = "SPEND"
	TxTypeAllowance  = "ALLOWANCE"
	TxTypeLoan       = "LOAN"
	TxTypeConversion = "CONVERSION"
)

const (
	DifficultyEasy      = "EASY"
	DifficultyMedium    = "MEDIUM"
	DifficultyHard      = "HARD"
	DifficultyLegendary = "LEGENDARY"
)

const (
	TaskLogPending  = "PENDING"
	TaskLogApproved = "APPROVED"
	TaskLogRejected = "REJECTED"
)

const (
	RarityNormal  = "NORMAL"
	RaritySpecial = "SPECIAL"
	RarityEpic    = "EPIC"
)

const (
	MissionPending   = "PENDING"
	MissionCompleted = "COMPLETED"
)

const (
	MoodCelebrating = "CELEBRATING"
	MoodProud       = "PROUD"
	MoodConcerned   = "CONCERNED"
	MoodExcited     = "EXCITED"
	MoodNeutral     = "NEUTRAL"
)

// Child-reported moods that pull Axion toward CONCERNED.
const (
	ChildMoodHappy = "HAPPY"
	ChildMoodSad   = "SAD"
	ChildMoodAngry = "ANGRY"
	ChildMoodTired = "TIRED"
)

const (
	ConversionPending  = "PENDING"
	ConversionApproved = "APPROVED"
	ConversionRejected = "REJECTED"
)

// DayKey renders t as a calendar-day key (UTC date), used for
// one-row-per-day unique indexes.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Midnight truncates t to its UTC calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole calendar days from a to b (negative if b is
// before a).
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// ISOWeekBounds returns the Monday 00:00 UTC and next-Monday 00:00 UTC
// bracketing the ISO week containing t.
func ISOWeekBounds(t time.Time) (time.Time, time.Time) {
	day := Midnight(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	start := day.AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, 7)
}
