package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/metrics"
	"github.com/yigit/collegesocial/internal/pkg/websocket"
)

const (
	// PairHistoryLimit is the number of most recent messages returned for a pair.
	PairHistoryLimit = 50
	// MaxMessageLength bounds message content, in characters.
	MaxMessageLength = 4000
)

// MessagingService stores direct messages and pushes them to connected recipients.
type MessagingService struct {
	tx        repositories.RosterTransactor
	messaging repositories.MessagingStore
	publisher websocket.Publisher
	auditLog  repositories.AuditLog
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(
	tx repositories.RosterTransactor,
	messaging repositories.MessagingStore,
	publisher websocket.Publisher,
	auditLog repositories.AuditLog,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *MessagingService {
	return &MessagingService{
		tx:        tx,
		messaging: messaging,
		publisher: publisher,
		auditLog:  auditLog,
		metrics:   m,
		logger:    logger,
	}
}

// Send appends a message to the 1:1 conversation of sender and receiver, creating the
// conversation on first contact. Lookup and creation share one transaction.
func (s *MessagingService) Send(ctx context.Context, senderID, receiverID int64, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	switch {
	case content == "":
		return nil, apperrors.NewValidationError("Message content is required").WithField("content")
	case utf8.RuneCountInString(content) > MaxMessageLength:
		return nil, apperrors.NewValidationError("Message content is too long").WithField("content")
	case receiverID <= 0:
		return nil, apperrors.NewValidationError("receiverId is required").WithField("receiverId")
	case receiverID == senderID:
		return nil, apperrors.NewValidationError("Cannot send a message to yourself").WithField("receiverId")
	}

	msg := &models.Message{SenderID: senderID, Content: content}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx repositories.RosterTx) error {
		sender, err := tx.Students.GetByID(ctx, senderID)
		if err != nil {
			if errors.Is(err, repositories.ErrStudentNotFound) {
				return apperrors.NewUnauthenticatedError("Student no longer exists")
			}
			return apperrors.StoreError("failed to look up sender", err)
		}
		msg.SenderName = sender.Name

		n, err := tx.Students.CountExisting(ctx, []int64{receiverID})
		if err != nil {
			return apperrors.StoreError("failed to look up recipient", err)
		}
		if n == 0 {
			return apperrors.NewNotFoundOrUnauthorizedError("Recipient not found")
		}

		conversationID, found, err := tx.Messaging.FindPairConversation(ctx, senderID, receiverID)
		if err != nil {
			return apperrors.StoreError("failed to look up conversation", err)
		}
		if !found {
			conv, err := tx.Messaging.CreateConversation(ctx, []int64{senderID, receiverID})
			if err != nil {
				return apperrors.StoreError("failed to create conversation", err)
			}
			conversationID = conv.ID
			s.logger.Info().Int64("conversationID", conv.ID).Int64("senderID", senderID).Int64("receiverID", receiverID).Msg("Conversation created")
		}

		msg.ConversationID = conversationID
		if err := tx.Messaging.InsertMessage(ctx, msg); err != nil {
			return apperrors.StoreError("failed to send message", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.MessageSent()
	s.mirror(ctx, msg, receiverID)
	s.push(ctx, msg, []int64{receiverID})
	return msg, nil
}

// History returns up to PairHistoryLimit messages between caller and peer, newest first.
func (s *MessagingService) History(ctx context.Context, callerID, peerID int64) ([]models.Message, error) {
	if peerID <= 0 {
		return nil, apperrors.NewValidationError("Query parameter 'with' must be a student id").WithField("with")
	}
	messages, err := s.messaging.ListPairMessages(ctx, callerID, peerID, PairHistoryLimit)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", callerID).Int64("peerID", peerID).Msg("Failed to fetch messages")
		return nil, apperrors.StoreError("failed to fetch messages", err)
	}
	return messages, nil
}

// CreateConversation creates a conversation of the creator and participantIDs.
// Duplicates are dropped; at least two distinct students must remain.
func (s *MessagingService) CreateConversation(ctx context.Context, creatorID int64, participantIDs []int64) (*models.Conversation, error) {
	ids := normalizeParticipants(creatorID, participantIDs)
	if len(ids) < 2 {
		return nil, apperrors.NewValidationError("A conversation needs at least two participants").WithField("participant_ids")
	}

	var conv *models.Conversation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx repositories.RosterTx) error {
		n, err := tx.Students.CountExisting(ctx, ids)
		if err != nil {
			return apperrors.StoreError("failed to look up participants", err)
		}
		if n != len(ids) {
			return apperrors.NewValidationError("Unknown participant").WithField("participant_ids")
		}

		conv, err = tx.Messaging.CreateConversation(ctx, ids)
		if err != nil {
			return apperrors.StoreError("failed to create conversation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("conversationID", conv.ID).Int64("creatorID", creatorID).Int("participants", len(ids)).Msg("Conversation created")
	return conv, nil
}

// Conversations lists the caller's conversations, newest first.
func (s *MessagingService) Conversations(ctx context.Context, studentID int64) ([]models.Conversation, error) {
	conversations, err := s.messaging.ListConversations(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to fetch conversations")
		return nil, apperrors.StoreError("failed to fetch conversations", err)
	}
	return conversations, nil
}

func normalizeParticipants(creatorID int64, participantIDs []int64) []int64 {
	seen := map[int64]struct{}{creatorID: {}}
	ids := []int64{creatorID}
	for _, id := range participantIDs {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *MessagingService) mirror(ctx context.Context, msg *models.Message, receiverID int64) {
	if s.auditLog == nil {
		return
	}
	err := s.auditLog.InsertMessageLog(ctx, &models.MessageLog{
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		ReceiverID:     receiverID,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("messageID", msg.ID).Msg("Failed to mirror message to content store")
	}
}

func (s *MessagingService) push(ctx context.Context, msg *models.Message, recipients []int64) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, websocket.Delivery{
		RecipientIDs: recipients,
		Push: websocket.Push{
			Type:           websocket.PushTypeMessage,
			ConversationID: msg.ConversationID,
			MessageID:      msg.ID,
			SenderID:       msg.SenderID,
			SenderName:     msg.SenderName,
			Content:        msg.Content,
			CreatedAt:      msg.CreatedAt,
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("messageID", msg.ID).Msg("Failed to publish message push")
	}
}
