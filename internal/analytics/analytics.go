// Package analytics derives summaries from an in-memory slice of habit log
// entries. Every function is pure: no storage, no clock, no side effects.
package analytics

import (
	"sort"
	"time"

	"habit-tracker-api/internal/models"
)

// dayOf truncates a timestamp to midnight of its calendar day. All date
// comparisons in this package happen at day granularity; sub-day differences
// must never influence streaks or range filtering.
func dayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// CalculateStreaks returns, per habit name, the longest run of entries on
// consecutive calendar days. A habit with a single entry has a streak of 1.
// Entries on the same day do not extend a run; they reset it to 1, like any
// other non-1-day gap.
func CalculateStreaks(entries []models.HabitLog) map[string]int {
	byName := make(map[string][]time.Time)
	for _, e := range entries {
		byName[e.Name] = append(byName[e.Name], e.LoggedAt)
	}

	streaks := make(map[string]int, len(byName))
	for name, dates := range byName {
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		maxStreak, currentStreak := 0, 0
		var prevDay time.Time
		hasPrev := false
		for _, d := range dates {
			day := dayOf(d)
			if hasPrev && day.Equal(prevDay.AddDate(0, 0, 1)) {
				currentStreak++
			} else {
				currentStreak = 1
			}
			if currentStreak > maxStreak {
				maxStreak = currentStreak
			}
			prevDay = day
			hasPrev = true
		}
		streaks[name] = maxStreak
	}
	return streaks
}

// FilterByHabitAndRange keeps entries for one habit whose date component lies
// in [start, end], inclusive at both ends.
func FilterByHabitAndRange(entries []models.HabitLog, name string, start, end time.Time) []models.HabitLog {
	startDay := dayOf(start)
	endDay := dayOf(end)

	filtered := make([]models.HabitLog, 0, len(entries))
	for _, e := range entries {
		if e.Name != name {
			continue
		}
		day := dayOf(e.LoggedAt)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// StatusCounts is a frequency count of statuses, used for proportion charts.
func StatusCounts(entries []models.HabitLog) map[models.HabitStatus]int {
	counts := make(map[models.HabitStatus]int)
	for _, e := range entries {
		counts[e.Status]++
	}
	return counts
}

// SuccessRate is the percentage of entries with status completed, in [0,100].
// An empty slice yields 0, never a division by zero.
func SuccessRate(entries []models.HabitLog) float64 {
	if len(entries) == 0 {
		return 0
	}
	completed := 0
	for _, e := range entries {
		if e.Status == models.StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(entries)) * 100
}

// PivotRow is one heatmap row: a calendar date with a count per status.
type PivotRow struct {
	Date   string                     `json:"date"`
	Counts map[models.HabitStatus]int `json:"counts"`
}

// DailyStatusPivot builds a heatmap table: one row per distinct date in the
// entries, ascending, with a count for every status observed anywhere in the
// set. A (date, status) cell with no entries is 0, not absent.
func DailyStatusPivot(entries []models.HabitLog) []PivotRow {
	const dateLayout = "2006-01-02"

	statuses := make(map[models.HabitStatus]struct{})
	byDate := make(map[string]map[models.HabitStatus]int)
	for _, e := range entries {
		statuses[e.Status] = struct{}{}
		date := dayOf(e.LoggedAt).Format(dateLayout)
		if byDate[date] == nil {
			byDate[date] = make(map[models.HabitStatus]int)
		}
		byDate[date][e.Status]++
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]PivotRow, 0, len(dates))
	for _, date := range dates {
		counts := make(map[models.HabitStatus]int, len(statuses))
		for status := range statuses {
			counts[status] = byDate[date][status]
		}
		rows = append(rows, PivotRow{Date: date, Counts: counts})
	}
	return rows
}
