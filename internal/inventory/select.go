package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"chefwho/internal/models"
)

// MissingDaysLeft ranks items without a days_left value behind any tracked item.
const MissingDaysLeft = 9999

// maxTime ranks items without an updated_at behind every stamped item.
var maxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

// NormalizeUserID returns the comparable form of a user identifier: trimmed,
// and canonical lowercase when the value is a UUID in any accepted spelling.
func NormalizeUserID(id string) string {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return id
}

// SelectLeastFresh returns the user's item with the smallest (days_left, updated_at).
// Items of other users are ignored. Ties keep the earlier item.
func SelectLeastFresh(items []models.InventoryItem, userID string) (models.InventoryItem, bool) {
	want := NormalizeUserID(userID)
	var (
		best  models.InventoryItem
		found bool
	)
	for _, item := range items {
		if NormalizeUserID(item.UserID) != want {
			continue
		}
		if !found || less(item, best) {
			best = item
			found = true
		}
	}
	return best, found
}

func less(a, b models.InventoryItem) bool {
	da, db := daysKey(a), daysKey(b)
	if da != db {
		return da < db
	}
	return updatedKey(a).Before(updatedKey(b))
}

func daysKey(item models.InventoryItem) int {
	if item.DaysLeft == nil {
		return MissingDaysLeft
	}
	return *item.DaysLeft
}

func updatedKey(item models.InventoryItem) time.Time {
	if item.UpdatedAt == nil {
		return maxTime
	}
	return *item.UpdatedAt
}
