package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/db"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuditLogRepository appends to the email, upload and message log collections.
type AuditLogRepository struct {
	emails   *mongo.Collection
	uploads  *mongo.Collection
	messages *mongo.Collection
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(m *db.MongoDB) *AuditLogRepository {
	return &AuditLogRepository{
		emails:   m.Collection(db.CollectionEmailLogs),
		uploads:  m.Collection(db.CollectionUploadLogs),
		messages: m.Collection(db.CollectionMessages),
	}
}

func (r *AuditLogRepository) InsertEmailLog(ctx context.Context, entry *models.EmailLog) error {
	if _, err := r.emails.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error inserting email log: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) InsertUploadLog(ctx context.Context, entry *models.UploadLog) error {
	if _, err := r.uploads.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error inserting upload log: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) InsertMessageLog(ctx context.Context, entry *models.MessageLog) error {
	if _, err := r.messages.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error inserting message log: %w", err)
	}
	return nil
}
