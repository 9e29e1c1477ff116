package chef

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chefwho/internal/inventory"
	"chefwho/internal/models"
)

// NoItemMessage is returned in place of a suggestion when the user has nothing tracked.
const NoItemMessage = "No produce found for this user in the inventory. " +
	"Try adding some items with expiration or storage data first!"

// ItemFinder looks up the most urgent item of a user.
type ItemFinder interface {
	LeastFresh(ctx context.Context, userID string) inventory.Lookup
}

// Completer turns a prompt pair into model text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Recorder accepts audit entries without blocking the caller.
type Recorder interface {
	Record(entry models.ChatLogEntry) error
}

type Request struct {
	UserID           string
	AvailableMinutes *int
}

// Suggestion is the outcome of one request. Item is zero when Found is false.
type Suggestion struct {
	UserID     string
	MealPeriod MealPeriod
	Found      bool
	Lookup     inventory.LookupStatus
	Item       ItemSummary
	Minutes    int
	Message    string
}

// Service orchestrates lookup, prompt building, completion and audit.
type Service struct {
	items     ItemFinder
	completer Completer
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(items ItemFinder, completer Completer, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		items:     items,
		completer: completer,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the wall clock used for meal periods and log timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Suggest returns a recommendation for the user's least-fresh item. Only
// completion failures are returned as errors; a broken inventory read yields
// the same no-item suggestion as an empty inventory.
func (s *Service) Suggest(ctx context.Context, req Request) (*Suggestion, error) {
	period := CurrentMealPeriod(s.now())
	minutes := EffectiveMinutes(req.AvailableMinutes)

	lookup := s.items.LeastFresh(ctx, req.UserID)
	if lookup.Status != inventory.Found {
		if lookup.Status == inventory.Failed {
			s.logger.Warn("inventory lookup failed, answering without item", "user_id", req.UserID, "error", lookup.Err)
		}
		return &Suggestion{
			UserID:     req.UserID,
			MealPeriod: period,
			Lookup:     lookup.Status,
			Minutes:    minutes,
			Message:    NoItemMessage,
		}, nil
	}

	item := Summarize(lookup.Item)
	prompt := BuildPrompt(item, period, minutes)
	s.logger.Debug("chef prompt built", "user_id", req.UserID, "prompt", prompt.User)

	text, err := s.completer.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		return nil, fmt.Errorf("complete suggestion: %w", err)
	}

	s.record(req.UserID, item)

	return &Suggestion{
		UserID:     req.UserID,
		MealPeriod: period,
		Found:      true,
		Lookup:     inventory.Found,
		Item:       item,
		Minutes:    minutes,
		Message:    text,
	}, nil
}

func (s *Service) record(userID string, item ItemSummary) {
	if s.recorder == nil {
		return
	}
	entry := models.ChatLogEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		MessageType: models.MessageTypeAssistant,
		Name:        item.Name,
		Message:     item.LogMessage(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.recorder.Record(entry); err != nil {
		s.logger.Warn("chat log not recorded", "user_id", userID, "error", err)
	}
}
