package dto

import "github.com/yigit/collegesocial/internal/app/models"

// SendMessageRequest is the body of POST /api/messages.
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" binding:"required,min=1" example:"2"`
	Content    string `json:"content" binding:"required" example:"Hi!"`
}

// SendMessageResponse returns the conversation the message landed in.
type SendMessageResponse struct {
	Success        bool  `json:"success" example:"true"`
	ConversationID int64 `json:"conversationId" example:"7"`
	MessageID      int64 `json:"messageId" example:"31"`
}

// MessagesResponse is returned by GET /api/messages?with=.
type MessagesResponse struct {
	Success  bool             `json:"success" example:"true"`
	Messages []models.Message `json:"messages"`
}

// CreateConversationRequest is the body of POST /api/conversations.
type CreateConversationRequest struct {
	ParticipantIDs []int64 `json:"participant_ids" binding:"required,min=1"`
}

// ConversationResponse wraps a created conversation id.
type ConversationResponse struct {
	Success        bool  `json:"success" example:"true"`
	ConversationID int64 `json:"conversationId" example:"7"`
}

// ConversationsResponse lists the caller's conversations.
type ConversationsResponse struct {
	Success       bool                  `json:"success" example:"true"`
	Conversations []models.Conversation `json:"conversations"`
}
