package models

import "time"

// Conversation is an unordered set of two or more participants.
type Conversation struct {
	ID               int64     `json:"id" db:"id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	ParticipantIDs   []int64   `json:"participant_ids"`
	ParticipantNames []string  `json:"participant_names"`
}

// Message is an append-only entry of a conversation.
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversation_id" db:"conversation_id"`
	SenderID       int64     `json:"sender_id" db:"sender_id"`
	SenderName     string    `json:"sender_name,omitempty" db:"sender_name"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
