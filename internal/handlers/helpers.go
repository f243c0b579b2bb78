package handlers

import (
	"encoding/json"
	"time"

	"habit-tracker-api/internal/cache"
	"habit-tracker-api/internal/database"
	"habit-tracker-api/internal/habits"
	"habit-tracker-api/internal/models"
	"habit-tracker-api/internal/realtime"
	"habit-tracker-api/internal/store"
)

// logCache keeps each user's parsed log history between reads. The TTL is a
// safety net; write handlers invalidate eagerly.
var logCache = cache.New[uint, []models.HabitLog]()

const logCacheTTL = time.Minute

func habitService() *habits.Service {
	return habits.NewService(store.New(database.GetDB()))
}

// loadHabitsCached returns the user's parsed history, hitting the store only
// on a cache miss.
func loadHabitsCached(userID uint) ([]models.HabitLog, error) {
	if entries, ok := logCache.Get(userID); ok {
		return entries, nil
	}
	entries, err := habitService().LoadHabits(userID)
	if err != nil {
		return nil, err
	}
	logCache.Set(userID, entries, logCacheTTL)
	return entries, nil
}

// broadcastHabitEvent notifies the user's open connections after a write and
// drops the now-stale cached history.
func broadcastHabitEvent(userID uint, eventType, habitName string) {
	logCache.Invalidate(userID)

	evt := map[string]any{
		"type":    eventType,
		"habit":   habitName,
		"userId":  userID,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(userID, bytes)
	}
}
