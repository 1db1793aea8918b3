package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendFunc func(ctx context.Context, req rest.Request) (*rest.Response, error)

// SendGridNotifier sends credentials through the SendGrid v3 API.
type SendGridNotifier struct {
	key      string
	from     *sgmail.Email
	branding Branding
	logger   zerolog.Logger
	send     sendFunc
}

// NewSendGridNotifier creates a SendGrid backed Notifier.
func NewSendGridNotifier(apiKey string, branding Branding, logger zerolog.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		key:      apiKey,
		from:     sgmail.NewEmail(branding.FromName, branding.FromEmail),
		branding: branding,
		logger:   logger,
		send:     sendgrid.MakeRequestWithContext,
	}
}

func (n *SendGridNotifier) prepare(msg CredentialsMessage) (*sgmail.SGMailV3, error) {
	mail, err := render(n.branding, msg)
	if err != nil {
		return nil, err
	}

	p := sgmail.NewPersonalization()
	p.Subject = mail.Subject
	p.AddTos(sgmail.NewEmail(msg.StudentName, msg.StudentEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", mail.Text),
		sgmail.NewContent("text/html", mail.HTML),
	)
	return m, nil
}

// SendLoginCredentials implements Notifier.
func (n *SendGridNotifier) SendLoginCredentials(ctx context.Context, msg CredentialsMessage) (string, error) {
	m, err := n.prepare(msg)
	if err != nil {
		return "", err
	}

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := n.send(ctx, req)
	if err != nil {
		n.logger.Error().Err(err).Str("toEmail", msg.StudentEmail).Msg("Failed to send email via SendGrid")
		return "", fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		n.logger.Error().Int("status", res.StatusCode).Str("body", res.Body).Msg("SendGrid rejected email")
		return "", fmt.Errorf("sendgrid rejected email with status %d", res.StatusCode)
	}

	if ids := res.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
