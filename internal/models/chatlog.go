package models

import "time"

type MessageType string

// MessageTypeAssistant marks entries produced by the model.
const MessageTypeAssistant MessageType = "assistant"

// ChatLogEntry is a write-only audit record of one generated recommendation.
type ChatLogEntry struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	MessageType MessageType `json:"message_type"`
	Name        string      `json:"name"`
	Message     string      `json:"message"`
	CreatedAt   time.Time   `json:"created_at"`
}
