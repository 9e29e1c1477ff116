package chef

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chefwho/internal/models"
)

func TestSummarizeAppliesDefaults(t *testing.T) {
	s := Summarize(models.InventoryItem{UserID: "u1"})
	assert.Equal(t, ItemSummary{
		Name:      "unknown",
		DaysLeft:  0,
		Status:    "unknown",
		QtyValue:  1,
		QtyUnit:   "",
		Storage:   "counter",
		UpdatedAt: "unknown",
	}, s)
	assert.Equal(t, "1", s.Quantity())
}

func TestSummarizeKeepsStoredValues(t *testing.T) {
	days := 2
	qty := 2.0
	updated := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := Summarize(models.InventoryItem{
		Name: "Carrots", DaysLeft: &days, Status: "ripe", QtyValue: &qty,
		QtyUnit: "lbs", Storage: "fridge", UpdatedAt: &updated,
	})
	assert.Equal(t, "2lbs", s.Quantity())
	assert.Equal(t, "2024-01-01T09:00:00Z", s.UpdatedAt)
	assert.Equal(t, "Carrots | status: ripe | days_left: 2 | qty: 2lbs | storage: fridge", s.LogMessage())
}

func TestQuantityKeepsFractions(t *testing.T) {
	s := ItemSummary{QtyValue: 1.5, QtyUnit: "kg"}
	assert.Equal(t, "1.5kg", s.Quantity())
}

func TestEffectiveMinutes(t *testing.T) {
	zero, neg, twenty := 0, -5, 20
	assert.Equal(t, DefaultMinutes, EffectiveMinutes(nil))
	assert.Equal(t, DefaultMinutes, EffectiveMinutes(&zero))
	assert.Equal(t, DefaultMinutes, EffectiveMinutes(&neg))
	assert.Equal(t, 20, EffectiveMinutes(&twenty))
}

func TestBuildPrompt(t *testing.T) {
	item := ItemSummary{Name: "Spinach", DaysLeft: 1, Status: "wilting", QtyValue: 3, Storage: "fridge"}
	p := BuildPrompt(item, Dinner, 999)

	assert.Contains(t, p.System, "Chef Who")
	assert.Contains(t, p.System, "food waste")
	assert.Contains(t, p.User, "**Spinach**")
	assert.Contains(t, p.User, "labeled as 'wilting'")
	assert.Contains(t, p.User, "about 1 day(s) left")
	assert.Contains(t, p.User, "They have 3 units stored in the fridge.")
	assert.Contains(t, p.User, "It's dinner")
	assert.Contains(t, p.User, "roughly 999 minutes")

	item.QtyValue = 2
	item.QtyUnit = "lbs"
	p = BuildPrompt(item, LateNightSnack, 15)
	assert.Contains(t, p.User, "They have 2 lbs stored")
	assert.Contains(t, p.User, "It's late-night snack, and they have roughly 15 minutes")
}
