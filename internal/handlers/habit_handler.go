package handlers

import (
	"errors"
	"net/http"
	"time"

	"habit-tracker-api/internal/analytics"
	"habit-tracker-api/internal/habits"
	"habit-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// AddHabitRequest represents the request payload for adding a habit
type AddHabitRequest struct {
	Name  string `json:"name" binding:"required"`
	Notes string `json:"notes"`
}

// LogProgressRequest represents the request payload for logging progress
type LogProgressRequest struct {
	Name   string             `json:"name" binding:"required"`
	Status models.HabitStatus `json:"status" binding:"required"`
}

const queryDateLayout = "2006-01-02"

/*
*
AddHabit handles POST /api/habits
Writes the initial "Started" entry for the authenticated user.
*/
func AddHabit(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req AddHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := habitService().AddHabit(userID, req.Name, req.Notes); err != nil {
		if errors.Is(err, habits.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Habit name cannot be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add habit"})
		return
	}

	broadcastHabitEvent(userID, "habit_added", req.Name)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Habit added successfully",
		"name":    req.Name,
	})
}

/*
*
LogProgress handles POST /api/habits/progress
Appends one entry with the chosen status. The habit name is not required to
exist yet; an unknown name starts a new lineage.
*/
func LogProgress(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req LogProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := habitService().LogProgress(userID, req.Name, req.Status); err != nil {
		switch {
		case errors.Is(err, habits.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of: completed, inprogress, skipped"})
		case errors.Is(err, habits.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Habit name cannot be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log progress"})
		}
		return
	}

	broadcastHabitEvent(userID, "progress_logged", req.Name)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Progress logged successfully",
		"name":    req.Name,
		"status":  req.Status,
	})
}

/*
*
GetHabits handles GET /api/habits
Returns the authenticated user's full log history for table display.
*/
func GetHabits(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	entries, err := loadHabitsCached(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": entries,
		"count":  len(entries),
	})
}

/*
*
GetAnalytics handles GET /api/habits/analytics?name=&start=&end=
Status counts, daily pivot and success rate are computed over the filtered
range; the longest streak is computed over the full history, matching the
dashboard the API replaces.
*/
func GetAnalytics(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	entries, err := loadHabitsCached(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habits"})
		return
	}

	start, end, ok := analyticsRange(c, entries)
	if !ok {
		return
	}

	filtered := analytics.FilterByHabitAndRange(entries, name, start, end)
	if len(filtered) == 0 {
		// Not an error: render the empty state and let the client say
		// "no data available for the selected habit and date range".
		c.JSON(http.StatusOK, gin.H{
			"hasData": false,
			"message": "No data available for the selected habit and date range",
		})
		return
	}

	streaks := analytics.CalculateStreaks(entries)

	c.JSON(http.StatusOK, gin.H{
		"hasData":       true,
		"statusCounts":  analytics.StatusCounts(filtered),
		"dailyPivot":    analytics.DailyStatusPivot(filtered),
		"successRate":   analytics.SuccessRate(filtered),
		"longestStreak": streaks[name],
	})
}

// analyticsRange resolves the start/end query params, defaulting to the
// earliest and latest logged dates when omitted. Responds with 400 and
// returns ok=false on a malformed date.
func analyticsRange(c *gin.Context, entries []models.HabitLog) (time.Time, time.Time, bool) {
	start, end := historyBounds(entries)

	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse(queryDateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be formatted as YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := time.Parse(queryDateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be formatted as YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		end = parsed
	}

	return start, end, true
}

func historyBounds(entries []models.HabitLog) (time.Time, time.Time) {
	var min, max time.Time
	for _, e := range entries {
		if min.IsZero() || e.LoggedAt.Before(min) {
			min = e.LoggedAt
		}
		if max.IsZero() || e.LoggedAt.After(max) {
			max = e.LoggedAt
		}
	}
	return min, max
}
