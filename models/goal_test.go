package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoalProgressMidWindow(t *testing.T) {
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	goal := Goal{
		Title:        "Primavera",
		TargetAmount: 1000,
		StartDate:    now.AddDate(0, 0, -10),
		EndDate:      now.AddDate(0, 0, 10),
	}

	p := goal.Progress(250, now)

	assert.Equal(t, 25.00, p.Percentage)
	assert.Equal(t, 10, p.DaysElapsed)
	assert.Equal(t, 10, p.DaysRemaining)
	assert.Equal(t, 20, p.TotalDays)
	assert.Equal(t, 25.00, p.AveragePerDay)
	assert.Equal(t, 75.00, p.RequiredAveragePerDay)
	assert.False(t, p.IsOnTrack)
}

func TestGoalProgressOnTrack(t *testing.T) {
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	goal := Goal{
		TargetAmount: 1000,
		StartDate:    now.AddDate(0, 0, -10),
		EndDate:      now.AddDate(0, 0, 10),
	}

	p := goal.Progress(600, now)

	assert.Equal(t, 60.00, p.AveragePerDay)
	assert.Equal(t, 40.00, p.RequiredAveragePerDay)
	assert.True(t, p.IsOnTrack)
}

func TestGoalProgressBeforeStart(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := Goal{
		TargetAmount: 500,
		StartDate:    now.AddDate(0, 0, 5),
		EndDate:      now.AddDate(0, 0, 15),
	}

	p := goal.Progress(0, now)

	assert.Equal(t, 0, p.DaysElapsed, "elapsed days never go negative")
	assert.Equal(t, 10, p.TotalDays)
	assert.Equal(t, 0.0, p.AveragePerDay)
}

func TestGoalProgressAfterEnd(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	goal := Goal{
		TargetAmount: 500,
		StartDate:    now.AddDate(0, 0, -30),
		EndDate:      now.AddDate(0, 0, -10),
	}

	p := goal.Progress(700, now)

	assert.Equal(t, 20, p.DaysElapsed, "elapsed is clamped to the window")
	assert.Equal(t, 0, p.DaysRemaining)
	assert.Equal(t, 140.00, p.Percentage)
	assert.Equal(t, 0.0, p.RequiredAveragePerDay, "target already met")
	assert.True(t, p.IsOnTrack)
}

func TestGoalProgressZeroTarget(t *testing.T) {
	now := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	goal := Goal{
		TargetAmount: 0,
		StartDate:    now.AddDate(0, 0, -1),
		EndDate:      now.AddDate(0, 0, 1),
	}

	p := goal.Progress(100, now)

	assert.Equal(t, 0.0, p.Percentage, "zero target never divides")
}

func TestGoalProgressFirstDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	goal := Goal{
		TargetAmount: 300,
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	p := goal.Progress(30, now)

	// zero full days elapsed: averages divide by max(days, 1)
	assert.Equal(t, 0, p.DaysElapsed)
	assert.Equal(t, 30.00, p.AveragePerDay)
	assert.Equal(t, 9.00, p.RequiredAveragePerDay)
}
