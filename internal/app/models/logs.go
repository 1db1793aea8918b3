package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Email delivery statuses
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog records one credential delivery attempt.
type EmailLog struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StudentEmail string             `json:"student_email" bson:"student_email"`
	MessageID    string             `json:"message_id,omitempty" bson:"message_id,omitempty"`
	Status       string             `json:"status" bson:"status"`
	Error        string             `json:"error,omitempty" bson:"error,omitempty"`
	Timestamp    time.Time          `json:"timestamp" bson:"timestamp"`
}

// Upload log kinds
const (
	UploadKindRosterCSV = "roster_csv"
	UploadKindMedia     = "media"
)

// UploadLog audits roster imports and media uploads.
type UploadLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind      string             `json:"kind" bson:"kind"`
	StudentID int64              `json:"student_id,omitempty" bson:"student_id,omitempty"`
	StartTime time.Time          `json:"start_time" bson:"start_time"`
	EndTime   time.Time          `json:"end_time" bson:"end_time"`

	// roster_csv
	TotalRecords         int `json:"total_records,omitempty" bson:"total_records,omitempty"`
	Created              int `json:"created,omitempty" bson:"created,omitempty"`
	Updated              int `json:"updated,omitempty" bson:"updated,omitempty"`
	NotificationFailures int `json:"notification_failures,omitempty" bson:"notification_failures,omitempty"`

	// media
	UploadType   string `json:"upload_type,omitempty" bson:"upload_type,omitempty"`
	FileName     string `json:"file_name,omitempty" bson:"file_name,omitempty"`
	Size         int64  `json:"size,omitempty" bson:"size,omitempty"`
	ResourceType string `json:"resource_type,omitempty" bson:"resource_type,omitempty"`
	URL          string `json:"url,omitempty" bson:"url,omitempty"`
	PublicID     string `json:"public_id,omitempty" bson:"public_id,omitempty"`

	Error string `json:"error,omitempty" bson:"error,omitempty"`
}

// MessageLog mirrors a sent direct message into the content store.
type MessageLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	MessageID      int64              `bson:"message_id"`
	ConversationID int64              `bson:"conversation_id"`
	SenderID       int64              `bson:"sender_id"`
	ReceiverID     int64              `bson:"receiver_id"`
	Content        string             `bson:"content"`
	CreatedAt      time.Time          `bson:"created_at"`
}

// InterestCategory is one entry of the interest catalog.
type InterestCategory struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Category string             `json:"category" bson:"category"`
	Options  []string           `json:"options" bson:"options"`
}
