package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/middleware"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
)

// MessagingService is what MessageController needs from the messaging service.
type MessagingService interface {
	Send(ctx context.Context, senderID, receiverID int64, content string) (*models.Message, error)
	History(ctx context.Context, callerID, peerID int64) ([]models.Message, error)
	CreateConversation(ctx context.Context, creatorID int64, participantIDs []int64) (*models.Conversation, error)
	Conversations(ctx context.Context, studentID int64) ([]models.Conversation, error)
}

// PushServer attaches an upgraded push connection to a student.
type PushServer interface {
	Serve(w http.ResponseWriter, r *http.Request, studentID int64) error
}

// MessageController serves direct messages, conversations and the push socket.
type MessageController struct {
	messaging MessagingService
	push      PushServer
	logger    zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messaging MessagingService, push PushServer, logger zerolog.Logger) *MessageController {
	return &MessageController{messaging: messaging, push: push, logger: logger}
}

// SendMessage sends a direct message
// @Summary Send a message
// @Description Appends to the 1:1 conversation with the receiver, creating it on first contact.
// @Tags messages
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.SendMessageResponse "Message stored"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Router /messages [post]
// @Security BearerAuth
func (c *MessageController) SendMessage(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.messaging.Send(ctx.Request.Context(), studentID, req.ReceiverID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SendMessageResponse{Success: true, ConversationID: msg.ConversationID, MessageID: msg.ID})
}

// GetMessages returns the pair history
// @Summary Get messages with a student
// @Description At most 50 messages of the 1:1 conversation, newest first.
// @Tags messages
// @Produce json
// @Param with query int true "Other student's id"
// @Success 200 {object} dto.MessagesResponse "Messages"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid 'with'"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages [get]
// @Security BearerAuth
func (c *MessageController) GetMessages(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	peerID, err := strconv.ParseInt(ctx.Query("with"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Query parameter 'with' must be a student id").WithField("with"))
		return
	}

	messages, err := c.messaging.History(ctx.Request.Context(), studentID, peerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	ctx.JSON(http.StatusOK, dto.MessagesResponse{Success: true, Messages: messages})
}

// CreateConversation creates a multi-party conversation
// @Summary Create a conversation
// @Description The creator is always included and duplicates are dropped. At least two distinct participants are required.
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body dto.CreateConversationRequest true "Participants"
// @Success 201 {object} dto.ConversationResponse "Conversation created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /conversations [post]
// @Security BearerAuth
func (c *MessageController) CreateConversation(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	conv, err := c.messaging.CreateConversation(ctx.Request.Context(), studentID, req.ParticipantIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ConversationResponse{Success: true, ConversationID: conv.ID})
}

// ListConversations lists the caller's conversations
// @Summary List conversations
// @Tags conversations
// @Produce json
// @Success 200 {object} dto.ConversationsResponse "Conversations, newest first"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /conversations [get]
// @Security BearerAuth
func (c *MessageController) ListConversations(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	conversations, err := c.messaging.Conversations(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ConversationsResponse{Success: true, Conversations: conversations})
}

// Connect upgrades to the push socket
// @Summary Message push socket
// @Description Upgrades to a websocket that receives {type:"message", ...} pushes. The token may be passed as ?token=.
// @Tags messages
// @Param token query string false "Bearer token"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /ws [get]
func (c *MessageController) Connect(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	// Serve writes its own response on failure.
	if err := c.push.Serve(ctx.Writer, ctx.Request, studentID); err != nil {
		c.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Push connection rejected")
	}
}
