package repositories

import (
	"github.com/yigit/collegesocial/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	Students  *StudentRepository
	Messaging *MessagingRepository
	Tx        *TxManager
	Posts     *PostRepository
	Interests *InterestRepository
	AuditLog  *AuditLogRepository
}

// NewRepositories initializes all repositories over the two stores
func NewRepositories(pg *db.PostgresDB, mongo *db.MongoDB) *Repositories {
	return &Repositories{
		Students:  NewStudentRepository(pg.Pool),
		Messaging: NewMessagingRepository(pg.Pool),
		Tx:        NewTxManager(pg),
		Posts:     NewPostRepository(mongo),
		Interests: NewInterestRepository(mongo),
		AuditLog:  NewAuditLogRepository(mongo),
	}
}
