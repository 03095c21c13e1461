package models

import (
	"math"
	"time"
)

// Goal is a revenue target over a calendar window.
type Goal struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	TargetAmount float64   `gorm:"not null" json:"target_amount"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	Active       bool      `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type GoalProgress struct {
	Goal                  Goal    `json:"goal"`
	CurrentRevenue        float64 `json:"current_revenue"`
	Percentage            float64 `json:"percentage"`
	DaysElapsed           int     `json:"days_elapsed"`
	DaysRemaining         int     `json:"days_remaining"`
	TotalDays             int     `json:"total_days"`
	AveragePerDay         float64 `json:"average_per_day"`
	RequiredAveragePerDay float64 `json:"required_average_per_day"`
	IsOnTrack             bool    `json:"is_on_track"`
}

// Progress computes where the goal stands at "now" given the revenue
// accumulated inside its window. Day counts are clamped to the window and
// division guards use max(days, 1).
func (g *Goal) Progress(currentRevenue float64, now time.Time) GoalProgress {
	totalDays := daysBetween(g.StartDate, g.EndDate)
	daysElapsed := daysBetween(g.StartDate, now)
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	if daysElapsed > totalDays {
		daysElapsed = totalDays
	}
	daysRemaining := totalDays - daysElapsed

	percentage := 0.0
	if g.TargetAmount > 0 {
		percentage = round2(currentRevenue / g.TargetAmount * 100)
	}

	avg := round2(currentRevenue / math.Max(float64(daysElapsed), 1))
	remaining := g.TargetAmount - currentRevenue
	if remaining < 0 {
		remaining = 0
	}
	required := round2(remaining / math.Max(float64(daysRemaining), 1))

	return GoalProgress{
		Goal:                  *g,
		CurrentRevenue:        currentRevenue,
		Percentage:            percentage,
		DaysElapsed:           daysElapsed,
		DaysRemaining:         daysRemaining,
		TotalDays:             totalDays,
		AveragePerDay:         avg,
		RequiredAveragePerDay: required,
		IsOnTrack:             avg >= required,
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
