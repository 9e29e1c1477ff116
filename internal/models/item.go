package models

import "time"

// InventoryItem is one tracked produce row owned by the inventory store.
// Pointer fields are nil when the stored column is NULL.
type InventoryItem struct {
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	DaysLeft  *int       `json:"days_left"`
	Status    string     `json:"status"`
	QtyValue  *float64   `json:"qty_value"`
	QtyUnit   string     `json:"qty_unit"`
	Storage   string     `json:"storage"`
	UpdatedAt *time.Time `json:"updated_at"`
}
