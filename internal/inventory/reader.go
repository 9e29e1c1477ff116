package inventory

import (
	"context"
	"log/slog"

	"chefwho/internal/models"
)

// Source returns the stored items that may belong to userID. Implementations are
// free to over-fetch; the reader applies the exact user match itself.
type Source interface {
	ListItems(ctx context.Context, userID string) ([]models.InventoryItem, error)
}

type LookupStatus int

const (
	NotFound LookupStatus = iota
	Found
	Failed
)

func (s LookupStatus) String() string {
	switch s {
	case Found:
		return "found"
	case Failed:
		return "failed"
	default:
		return "not_found"
	}
}

// Lookup is the outcome of a least-fresh query. Item is only meaningful when
// Status is Found and Err only when Status is Failed.
type Lookup struct {
	Status LookupStatus
	Item   models.InventoryItem
	Err    error
}

// Reader picks the most urgent item of a user from a Source.
type Reader struct {
	source Source
	logger *slog.Logger
}

func NewReader(source Source, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{source: source, logger: logger}
}

// LeastFresh never returns an error directly; store failures are reported as a Failed lookup.
func (r *Reader) LeastFresh(ctx context.Context, userID string) Lookup {
	items, err := r.source.ListItems(ctx, userID)
	if err != nil {
		r.logger.Warn("fetch inventory failed", "user_id", userID, "error", err)
		return Lookup{Status: Failed, Err: err}
	}
	if len(items) == 0 {
		r.logger.Debug("no inventory rows returned", "user_id", userID)
		return Lookup{Status: NotFound}
	}
	item, ok := SelectLeastFresh(items, userID)
	if !ok {
		r.logger.Debug("no inventory items for user", "user_id", userID, "rows", len(items))
		return Lookup{Status: NotFound}
	}
	r.logger.Debug("least-fresh item selected", "user_id", userID, "name", item.Name)
	return Lookup{Status: Found, Item: item}
}
