package repositories

import (
	"context"

	"github.com/yigit/collegesocial/internal/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentStore is the roster store surface used by the services.
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByERN(ctx context.Context, ern string) (*models.Student, error)
	GetAuthorSummaries(ctx context.Context, ids []int64) (map[int64]models.AuthorSummary, error)
	Create(ctx context.Context, s *models.Student) error
	UpdateRosterFields(ctx context.Context, id int64, f RosterFields) error
	UpdatePassword(ctx context.Context, id int64, hash string, firstLogin bool) error
	UpdateProfilePicture(ctx context.Context, id int64, url, publicID *string) error
	UpdateMobileNumber(ctx context.Context, id int64, mobile *string) error
	UpdateInterests(ctx context.Context, id int64, interests models.Interests) error
	Search(ctx context.Context, query string, excludeID int64, limit uint64) ([]models.Student, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
}

// MessagingStore is the conversation and message surface of the roster store.
type MessagingStore interface {
	FindPairConversation(ctx context.Context, a, b int64) (int64, bool, error)
	CreateConversation(ctx context.Context, participantIDs []int64) (*models.Conversation, error)
	InsertMessage(ctx context.Context, m *models.Message) error
	ListPairMessages(ctx context.Context, a, b int64, limit uint64) ([]models.Message, error)
	ListConversations(ctx context.Context, studentID int64) ([]models.Conversation, error)
}

// RosterTx is the set of roster repositories bound to one transaction.
type RosterTx struct {
	Students  StudentStore
	Messaging MessagingStore
}

// RosterTransactor runs fn inside one roster store transaction.
type RosterTransactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx RosterTx) error) error
}

// PostStore is the content store surface for feed posts.
type PostStore interface {
	Feed(ctx context.Context, skip, limit int64) ([]models.Post, int64, error)
	ByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	Upcoming(ctx context.Context, today string) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByIDAndAuthor(ctx context.Context, id primitive.ObjectID, authorID int64) (*models.Post, error)
	Insert(ctx context.Context, p *models.Post) error
	Update(ctx context.Context, id primitive.ObjectID, authorID int64, u PostUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID, authorID int64) error
}

// InterestStore is the interest catalog.
type InterestStore interface {
	List(ctx context.Context) ([]models.InterestCategory, error)
	SeedIfEmpty(ctx context.Context, catalog []models.InterestCategory) (int, error)
}

// AuditLog appends best-effort audit documents.
type AuditLog interface {
	InsertEmailLog(ctx context.Context, entry *models.EmailLog) error
	InsertUploadLog(ctx context.Context, entry *models.UploadLog) error
	InsertMessageLog(ctx context.Context, entry *models.MessageLog) error
}

var (
	_ StudentStore     = (*StudentRepository)(nil)
	_ MessagingStore   = (*MessagingRepository)(nil)
	_ RosterTransactor = (*TxManager)(nil)
	_ PostStore        = (*PostRepository)(nil)
	_ InterestStore    = (*InterestRepository)(nil)
	_ AuditLog         = (*AuditLogRepository)(nil)
)
