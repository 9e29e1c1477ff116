package chef

import (
	"fmt"
	"strconv"
	"time"

	"chefwho/internal/models"
)

// DefaultMinutes is the time budget assumed when the caller gives none.
const DefaultMinutes = 999

const systemPrompt = "You are Chef Who, an AI culinary assistant that helps reduce food waste. " +
	"You use inventory details (days left, storage, and quantity) to suggest realistic, " +
	"culturally inclusive dishes or preservation ideas that fit the time of day."

// Prompt is the system/user message pair sent to the completion service.
type Prompt struct {
	System string
	User   string
}

// ItemSummary is an inventory item with display defaults applied.
type ItemSummary struct {
	Name      string
	DaysLeft  int
	Status    string
	QtyValue  float64
	QtyUnit   string
	Storage   string
	UpdatedAt string
}

// Summarize fills the blanks of a stored item: unknown name and status, zero
// days left, a quantity of one, counter storage.
func Summarize(item models.InventoryItem) ItemSummary {
	s := ItemSummary{
		Name:      orDefault(item.Name, "unknown"),
		Status:    orDefault(item.Status, "unknown"),
		QtyValue:  1,
		QtyUnit:   item.QtyUnit,
		Storage:   orDefault(item.Storage, "counter"),
		UpdatedAt: "unknown",
	}
	if item.DaysLeft != nil {
		s.DaysLeft = *item.DaysLeft
	}
	if item.QtyValue != nil {
		s.QtyValue = *item.QtyValue
	}
	if item.UpdatedAt != nil {
		s.UpdatedAt = item.UpdatedAt.Format(time.RFC3339)
	}
	return s
}

// Quantity renders value and unit without a separator, e.g. "2lbs".
func (s ItemSummary) Quantity() string {
	return formatNumber(s.QtyValue) + s.QtyUnit
}

// displayUnit is the unit used in prose; an empty unit reads as "units".
func (s ItemSummary) displayUnit() string {
	return orDefault(s.QtyUnit, "units")
}

// LogMessage is the one-line record written to the chat log.
func (s ItemSummary) LogMessage() string {
	return fmt.Sprintf("%s | status: %s | days_left: %d | qty: %s | storage: %s",
		s.Name, s.Status, s.DaysLeft, s.Quantity(), s.Storage)
}

// EffectiveMinutes returns the caller's time budget, or DefaultMinutes when it is absent or not positive.
// Negative and zero budgets are treated like an absent one.
func EffectiveMinutes(minutes *int) int {
	if minutes == nil || *minutes <= 0 {
		return DefaultMinutes
	}
	return *minutes
}

// BuildPrompt describes the item and meal context for the model.
func BuildPrompt(item ItemSummary, period MealPeriod, minutes int) Prompt {
	user := fmt.Sprintf(
		"The user's most at-risk produce is **%s**, currently labeled as '%s', "+
			"with about %d day(s) left before it spoils. "+
			"They have %s %s stored in the %s. "+
			"It's %s, and they have roughly %d minutes to cook. "+
			"Suggest a simple meal or preservation tip that minimizes waste.",
		item.Name, item.Status, item.DaysLeft,
		formatNumber(item.QtyValue), item.displayUnit(), item.Storage,
		period, minutes,
	)
	return Prompt{System: systemPrompt, User: user}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
