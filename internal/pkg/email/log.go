package email

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogNotifier writes the credentials to the log instead of sending mail. Development only.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendLoginCredentials implements Notifier.
func (n *LogNotifier) SendLoginCredentials(_ context.Context, msg CredentialsMessage) (string, error) {
	id := uuid.NewString()
	n.logger.Warn().
		Str("toEmail", msg.StudentEmail).
		Str("toName", msg.StudentName).
		Str("tempPassword", msg.TempPassword).
		Str("messageID", id).
		Msg("Email delivery not configured - credentials logged instead of sent")
	return id, nil
}
