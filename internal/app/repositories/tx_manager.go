package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/collegesocial/internal/db"
)

// TxManager binds the roster repositories to a transaction of the shared pool.
type TxManager struct {
	db *db.PostgresDB
}

// NewTxManager creates a new TxManager
func NewTxManager(pg *db.PostgresDB) *TxManager {
	return &TxManager{db: pg}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx RosterTx) error) error {
	return m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, RosterTx{
			Students:  NewStudentRepository(tx),
			Messaging: NewMessagingRepository(tx),
		})
	})
}
