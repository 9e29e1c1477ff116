package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"chefwho/internal/models"
	"chefwho/internal/storage"
)

// SQLStore reads items from the items table.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, dbType string) (*SQLStore, error) {
	driver, err := storage.Normalize(dbType)
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, driver: driver}, nil
}

// ListItems filters on the stringified user_id so text and UUID columns both match.
// The comparison trims and ignores case; exact matching happens in SelectLeastFresh.
// Stored UUIDs in braced or urn:uuid: form are not matched by this filter.
func (s *SQLStore) ListItems(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	userCol := storage.TextCast(s.driver, "user_id")
	query := storage.Rebind(s.driver, fmt.Sprintf(`
		SELECT %s, name, days_left, status, qty_value, qty_unit, storage, updated_at
		FROM items
		WHERE LOWER(TRIM(%s)) = LOWER(?)
		ORDER BY id`, userCol, userCol))

	rows, err := s.db.QueryContext(ctx, query, NormalizeUserID(userID))
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var (
			uid, name, status, unit, place sql.NullString
			days                           sql.NullInt64
			qty                            sql.NullFloat64
			updated                        sql.NullTime
		)
		if err := rows.Scan(&uid, &name, &days, &status, &qty, &unit, &place, &updated); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item := models.InventoryItem{
			UserID:  uid.String,
			Name:    name.String,
			Status:  status.String,
			QtyUnit: unit.String,
			Storage: place.String,
		}
		if days.Valid {
			d := int(days.Int64)
			item.DaysLeft = &d
		}
		if qty.Valid {
			q := qty.Float64
			item.QtyValue = &q
		}
		if updated.Valid {
			u := updated.Time
			item.UpdatedAt = &u
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// AddItem inserts an item. A blank storage location is stored as "counter".
func (s *SQLStore) AddItem(ctx context.Context, item models.InventoryItem) error {
	var (
		days    any
		qty     any
		updated any
		place   any
	)
	if item.DaysLeft != nil {
		days = *item.DaysLeft
	}
	if item.QtyValue != nil {
		qty = *item.QtyValue
	}
	if item.UpdatedAt != nil {
		updated = item.UpdatedAt.UTC()
	}
	if item.Storage != "" {
		place = item.Storage
	} else {
		place = "counter"
	}
	_, err := s.db.ExecContext(ctx, storage.Rebind(s.driver, `
		INSERT INTO items (user_id, name, days_left, status, qty_value, qty_unit, storage, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		item.UserID, item.Name, days, item.Status, qty, item.QtyUnit, place, updated)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}
