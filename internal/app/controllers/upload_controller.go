package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/app/services"
	"github.com/yigit/collegesocial/internal/middleware"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
)

// MediaUploader stores a student's media file.
type MediaUploader interface {
	Upload(ctx context.Context, in services.MediaUpload) (*filestorage.UploadResult, error)
}

// RosterImporter runs a bulk onboarding file.
type RosterImporter interface {
	Import(ctx context.Context, r io.Reader) (*services.OnboardingResult, error)
}

// UploadController handles media uploads and the administrative roster upload.
type UploadController struct {
	uploads    MediaUploader
	onboarding RosterImporter
	logger     zerolog.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(uploads MediaUploader, onboarding RosterImporter, logger zerolog.Logger) *UploadController {
	return &UploadController{uploads: uploads, onboarding: onboarding, logger: logger}
}

// Upload handles media uploads
// @Summary Upload media
// @Description Stores a profile picture or post media under "<type>s/<studentID>". The token may also come from the "token" cookie.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param type formData string true "Upload type" Enums(profile, post)
// @Success 200 {object} dto.UploadResponse "Uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or invalid type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.ErrorResponse "Object storage failed"
// @Router /upload [post]
// @Security BearerAuth
func (c *UploadController) Upload(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	uploadType := ctx.PostForm("type")
	if uploadType != services.UploadTypeProfile && uploadType != services.UploadTypePost {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid upload type").WithField("type"))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("No file provided").WithField("file"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded file")
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Unreadable file").WithField("file"))
		return
	}
	defer file.Close()

	res, err := c.uploads.Upload(ctx.Request.Context(), services.MediaUpload{
		StudentID: studentID,
		Type:      uploadType,
		Filename:  fileHeader.Filename,
		Size:      fileHeader.Size,
		Reader:    file,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UploadResponse{
		Success:      true,
		URL:          res.URL,
		PublicID:     res.PublicID,
		ResourceType: string(res.ResourceType),
	})
}

// UploadRoster handles bulk onboarding
// @Summary Upload student roster
// @Description Upserts every CSV row by ERN in one transaction and emails credentials to new students.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Roster CSV"
// @Success 200 {object} dto.RosterUploadResponse "Roster processed"
// @Failure 400 {object} dto.ErrorResponse "Malformed file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or ERN, nothing was written"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/upload [post]
// @Security AdminAuth
func (c *UploadController) UploadRoster(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("No file uploaded").WithField("file"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Unreadable file").WithField("file"))
		return
	}
	defer file.Close()

	c.logger.Info().Str("file", fileHeader.Filename).Int64("size", fileHeader.Size).Msg("Roster upload received")

	result, err := c.onboarding.Import(ctx.Request.Context(), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RosterUploadResponse{
		Success:              true,
		Message:              result.Message,
		Total:                result.Total,
		Created:              result.Created,
		Updated:              result.Updated,
		NotificationFailures: result.NotificationFailures,
	})
}
