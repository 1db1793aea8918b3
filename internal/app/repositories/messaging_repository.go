package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/db"
	"github.com/yigit/collegesocial/internal/pkg/dberrors"
)

// pairConversationQuery selects the conversations whose participants are exactly the two bound ids.
const pairConversationQuery = `
	SELECT cp1.conversation_id
	FROM conversation_participants cp1
	JOIN conversation_participants cp2 ON cp2.conversation_id = cp1.conversation_id
	WHERE cp1.student_id = ? AND cp2.student_id = ?
	  AND (SELECT COUNT(*) FROM conversation_participants cp3
	       WHERE cp3.conversation_id = cp1.conversation_id) = 2`

// MessagingRepository handles conversations, participants and messages.
type MessagingRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewMessagingRepository creates a new MessagingRepository on a pool or a transaction.
func NewMessagingRepository(conn db.DBTX) *MessagingRepository {
	return &MessagingRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FindPairConversation returns the oldest 1:1 conversation between a and b.
func (r *MessagingRepository) FindPairConversation(ctx context.Context, a, b int64) (int64, bool, error) {
	sql, err := squirrel.Dollar.ReplacePlaceholders(pairConversationQuery + ` ORDER BY cp1.conversation_id ASC LIMIT 1`)
	if err != nil {
		return 0, false, fmt.Errorf("failed to build pair conversation query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, a, b).Scan(&id); err != nil {
		if dberrors.IsNoRows(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error looking up conversation: %w", err)
	}
	return id, true, nil
}

// CreateConversation inserts a conversation and its participants.
func (r *MessagingRepository) CreateConversation(ctx context.Context, participantIDs []int64) (*models.Conversation, error) {
	conv := &models.Conversation{ParticipantIDs: participantIDs}
	err := r.db.QueryRow(ctx, `INSERT INTO conversations DEFAULT VALUES RETURNING id, created_at`).
		Scan(&conv.ID, &conv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	insert := r.sb.Insert("conversation_participants").Columns("conversation_id", "student_id")
	for _, id := range participantIDs {
		insert = insert.Values(conv.ID, id)
	}
	sql, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build add participants query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("error adding participants: %w", err)
	}
	return conv, nil
}

// InsertMessage appends a message and fills its id and timestamp.
func (r *MessagingRepository) InsertMessage(ctx context.Context, m *models.Message) error {
	sql, args, err := r.sb.Insert("messages").
		Columns("conversation_id", "sender_id", "content").
		Values(m.ConversationID, m.SenderID, m.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert message query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("error inserting message: %w", err)
	}
	return nil
}

// ListPairMessages returns up to limit messages between a and b, newest first.
func (r *MessagingRepository) ListPairMessages(ctx context.Context, a, b int64, limit uint64) ([]models.Message, error) {
	sql, args, err := r.sb.Select("m.id", "m.conversation_id", "m.sender_id", "s.name", "m.content", "m.created_at").
		From("messages m").
		Join("students s ON s.id = m.sender_id").
		Where("m.conversation_id IN ("+pairConversationQuery+")", a, b).
		OrderBy("m.created_at DESC", "m.id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderName, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}

// ListConversations returns the conversations studentID takes part in, newest first.
func (r *MessagingRepository) ListConversations(ctx context.Context, studentID int64) ([]models.Conversation, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.created_at",
		"array_agg(s.id ORDER BY s.id)",
		"array_agg(s.name ORDER BY s.id)",
	).
		From("conversations c").
		Join("conversation_participants me ON me.conversation_id = c.id AND me.student_id = ?", studentID).
		Join("conversation_participants p ON p.conversation_id = c.id").
		Join("students s ON s.id = p.student_id").
		GroupBy("c.id", "c.created_at").
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list conversations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.ParticipantIDs, &c.ParticipantNames); err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}
	return conversations, nil
}
