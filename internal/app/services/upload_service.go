package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/metrics"
)

// Upload types accepted by POST /api/upload.
const (
	UploadTypeProfile = "profile"
	UploadTypePost    = "post"
)

// MediaUpload is one file handed to the object store.
type MediaUpload struct {
	StudentID int64
	Type      string
	Filename  string
	Size      int64
	Reader    io.Reader
}

// UploadService sends media to the object store under a per-student folder.
type UploadService struct {
	storage  filestorage.ObjectStore
	auditLog repositories.AuditLog
	metrics  *metrics.Metrics
	timeout  time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewUploadService creates a new UploadService. timeout bounds one upload.
func NewUploadService(
	storage filestorage.ObjectStore,
	auditLog repositories.AuditLog,
	m *metrics.Metrics,
	timeout time.Duration,
	logger zerolog.Logger,
) *UploadService {
	return &UploadService{
		storage:  storage,
		auditLog: auditLog,
		metrics:  m,
		timeout:  timeout,
		now:      time.Now,
		logger:   logger,
	}
}

// Upload stores the file in "<type>s/<studentID>" and classifies it by its leading bytes.
func (s *UploadService) Upload(ctx context.Context, in MediaUpload) (*filestorage.UploadResult, error) {
	if in.Type != UploadTypeProfile && in.Type != UploadTypePost {
		return nil, apperrors.NewValidationError("Invalid upload type").WithField("type")
	}
	if in.Reader == nil {
		return nil, apperrors.NewValidationError("No file provided").WithField("file")
	}

	started := s.now().UTC()
	br := bufio.NewReader(in.Reader)
	header, err := br.Peek(filestorage.HeaderSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, apperrors.NewValidationError("Unreadable file").WithField("file")
	}
	if len(header) == 0 {
		return nil, apperrors.NewValidationError("File is empty").WithField("file")
	}
	resourceType := filestorage.DetectResourceType(header)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	entry := &models.UploadLog{
		Kind:         models.UploadKindMedia,
		StudentID:    in.StudentID,
		StartTime:    started,
		UploadType:   in.Type,
		FileName:     in.Filename,
		Size:         in.Size,
		ResourceType: string(resourceType),
	}

	res, err := s.storage.Upload(ctx, filestorage.UploadInput{
		Reader:       br,
		Filename:     in.Filename,
		Folder:       fmt.Sprintf("%ss/%d", in.Type, in.StudentID),
		ResourceType: resourceType,
		Size:         in.Size,
	})
	s.metrics.Upload(in.Type, err == nil)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", in.StudentID).Str("type", in.Type).Msg("Media upload failed")
		entry.Error = err.Error()
		s.record(entry)
		return nil, apperrors.CollaboratorError("failed to upload file", err)
	}

	entry.URL = res.URL
	entry.PublicID = res.PublicID
	entry.ResourceType = string(res.ResourceType)
	s.record(entry)

	s.logger.Info().Int64("studentID", in.StudentID).Str("type", in.Type).Str("publicID", res.PublicID).Msg("Media uploaded")
	return res, nil
}

// record writes the audit entry on a fresh context so a timed out upload is still logged.
func (s *UploadService) record(entry *models.UploadLog) {
	if s.auditLog == nil {
		return
	}
	entry.EndTime = s.now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.auditLog.InsertUploadLog(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record upload log")
	}
}
