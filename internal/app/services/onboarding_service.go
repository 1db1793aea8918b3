package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/auth"
	"github.com/yigit/collegesocial/internal/pkg/email"
	"github.com/yigit/collegesocial/internal/pkg/metrics"
	"github.com/yigit/collegesocial/internal/pkg/rostercsv"
)

// OnboardingResult summarizes one committed roster import.
type OnboardingResult struct {
	Total                int
	Created              int
	Updated              int
	NotificationFailures int
	Message              string
}

// OnboardingService upserts a roster file into the roster store keyed by ERN.
type OnboardingService struct {
	tx           repositories.RosterTransactor
	hasher       *auth.PasswordHasher
	notifier     email.Notifier
	auditLog     repositories.AuditLog
	metrics      *metrics.Metrics
	tempPassword func() (string, error)
	now          func() time.Time
	logger       zerolog.Logger
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(
	tx repositories.RosterTransactor,
	hasher *auth.PasswordHasher,
	notifier email.Notifier,
	auditLog repositories.AuditLog,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		tx:           tx,
		hasher:       hasher,
		notifier:     notifier,
		auditLog:     auditLog,
		metrics:      m,
		tempPassword: auth.GenerateTempPassword,
		now:          time.Now,
		logger:       logger,
	}
}

type pendingCredential struct {
	name     string
	email    string
	password string
}

// Import parses the whole file, then applies every row inside one transaction. Any row
// failure rolls the whole file back. Credentials of created students are delivered
// after commit; delivery failures are only counted.
func (s *OnboardingService) Import(ctx context.Context, r io.Reader) (*OnboardingResult, error) {
	started := s.now().UTC()

	records, err := rostercsv.Parse(r)
	if err != nil {
		s.recordRun(ctx, started, nil, err)
		return nil, apperrors.NewValidationError(err.Error()).WithField("file")
	}

	result := &OnboardingResult{Total: len(records)}
	var pending []pendingCredential

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, tx repositories.RosterTx) error {
		result.Created, result.Updated = 0, 0
		pending = pending[:0]

		for _, rec := range records {
			created, cred, err := s.upsert(ctx, tx.Students, rec)
			if err != nil {
				return err
			}
			if created {
				result.Created++
				pending = append(pending, cred)
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("records", len(records)).Msg("Roster import rolled back")
		s.recordRun(ctx, started, nil, err)
		return nil, err
	}

	for _, cred := range pending {
		if !s.deliver(ctx, cred) {
			result.NotificationFailures++
		}
	}

	result.Message = fmt.Sprintf("Processed %d records (%d new, %d updated)", result.Created+result.Updated, result.Created, result.Updated)
	if result.NotificationFailures > 0 {
		result.Message += fmt.Sprintf(". Warning: %d emails failed to send", result.NotificationFailures)
	}

	s.metrics.RosterCommitted(result.Created, result.Updated, result.NotificationFailures)
	s.recordRun(ctx, started, result, nil)
	s.logger.Info().
		Int("total", result.Total).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("notificationFailures", result.NotificationFailures).
		Msg("Roster import committed")
	return result, nil
}

func (s *OnboardingService) upsert(ctx context.Context, students repositories.StudentStore, rec rostercsv.Record) (bool, pendingCredential, error) {
	existing, err := students.GetByERN(ctx, rec.ERNNumber)
	switch {
	case err == nil:
		err = students.UpdateRosterFields(ctx, existing.ID, repositories.RosterFields{
			Name:         rec.Name,
			Email:        rec.Email,
			Branch:       rec.Branch,
			BatchYear:    rec.BatchYear,
			Section:      rec.Section,
			MobileNumber: rec.MobileNumber,
		})
		if err != nil {
			return false, pendingCredential{}, rowError(rec, "update", err)
		}
		return false, pendingCredential{}, nil
	case !errors.Is(err, repositories.ErrStudentNotFound):
		return false, pendingCredential{}, rowError(rec, "lookup", err)
	}

	password, err := s.tempPassword()
	if err != nil {
		return false, pendingCredential{}, fmt.Errorf("line %d: %w", rec.Line, err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, pendingCredential{}, fmt.Errorf("line %d: %w", rec.Line, err)
	}

	student := &models.Student{
		ERNNumber:    rec.ERNNumber,
		Name:         rec.Name,
		Email:        rec.Email,
		Branch:       rec.Branch,
		BatchYear:    rec.BatchYear,
		Section:      rec.Section,
		MobileNumber: rec.MobileNumber,
		Password:     &hash,
		FirstLogin:   true,
		Interests:    models.Interests{},
	}
	if err := students.Create(ctx, student); err != nil {
		return false, pendingCredential{}, rowError(rec, "insert", err)
	}
	return true, pendingCredential{name: rec.Name, email: rec.Email, password: password}, nil
}

func rowError(rec rostercsv.Record, op string, err error) error {
	if errors.Is(err, repositories.ErrEmailExists) || errors.Is(err, repositories.ErrERNExists) {
		return apperrors.NewConflictError(fmt.Sprintf("line %d: %v", rec.Line, unwrapDuplicate(err))).
			WithField("file").
			WithDetails(map[string]interface{}{"line": rec.Line, "ern_number": rec.ERNNumber})
	}
	return apperrors.StoreError(fmt.Sprintf("line %d: roster %s failed", rec.Line, op), err)
}

func unwrapDuplicate(err error) error {
	if errors.Is(err, repositories.ErrEmailExists) {
		return repositories.ErrEmailExists
	}
	return repositories.ErrERNExists
}

// deliver sends one credential message and records the attempt. It never fails the import.
func (s *OnboardingService) deliver(ctx context.Context, cred pendingCredential) bool {
	messageID, err := s.notifier.SendLoginCredentials(ctx, email.CredentialsMessage{
		StudentName:  cred.name,
		StudentEmail: cred.email,
		TempPassword: cred.password,
	})

	entry := &models.EmailLog{StudentEmail: cred.email, Timestamp: s.now().UTC()}
	if err != nil {
		s.logger.Warn().Err(err).Str("email", cred.email).Msg("Credential delivery failed")
		entry.Status = models.EmailStatusFailed
		entry.Error = err.Error()
	} else {
		entry.Status = models.EmailStatusSent
		entry.MessageID = messageID
	}

	if s.auditLog != nil {
		if logErr := s.auditLog.InsertEmailLog(ctx, entry); logErr != nil {
			s.logger.Warn().Err(logErr).Str("email", cred.email).Msg("Failed to record email log")
		}
	}
	return err == nil
}

func (s *OnboardingService) recordRun(ctx context.Context, started time.Time, result *OnboardingResult, runErr error) {
	if s.auditLog == nil {
		return
	}
	entry := &models.UploadLog{
		Kind:      models.UploadKindRosterCSV,
		StartTime: started,
		EndTime:   s.now().UTC(),
	}
	if result != nil {
		entry.TotalRecords = result.Total
		entry.Created = result.Created
		entry.Updated = result.Updated
		entry.NotificationFailures = result.NotificationFailures
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if err := s.auditLog.InsertUploadLog(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record roster upload log")
	}
}
