package audit

import (
	"context"
	"database/sql"
	"fmt"

	"chefwho/internal/models"
	"chefwho/internal/storage"
)

// SQLSink inserts entries into the chatlogs table.
type SQLSink struct {
	db     *sql.DB
	driver string
}

func NewSQLSink(db *sql.DB, dbType string) (*SQLSink, error) {
	driver, err := storage.Normalize(dbType)
	if err != nil {
		return nil, err
	}
	return &SQLSink{db: db, driver: driver}, nil
}

func (s *SQLSink) InsertChatLog(ctx context.Context, entry models.ChatLogEntry) error {
	_, err := s.db.ExecContext(ctx, storage.Rebind(s.driver,
		`INSERT INTO chatlogs (id, user_id, message_type, name, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		entry.ID, entry.UserID, string(entry.MessageType), entry.Name, entry.Message, entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert chat log: %w", err)
	}
	return nil
}
