package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

// SMTPNotifier sends credentials through an SMTP relay.
type SMTPNotifier struct {
	config   SMTPConfig
	branding Branding
	logger   zerolog.Logger
}

// NewSMTPNotifier creates an SMTP backed Notifier.
func NewSMTPNotifier(config SMTPConfig, branding Branding, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{config: config, branding: branding, logger: logger}
}

// SendLoginCredentials implements Notifier.
func (s *SMTPNotifier) SendLoginCredentials(ctx context.Context, msg CredentialsMessage) (string, error) {
	mail, err := render(s.branding, msg)
	if err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.config.Host)
	raw := buildMIME(s.branding, msg.StudentEmail, messageID, mail)

	done := make(chan error, 1)
	go func() { done <- s.send(msg.StudentEmail, raw) }()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", err
		}
		return messageID, nil
	}
}

func buildMIME(b Branding, to, messageID string, mail renderedMail) []byte {
	headers := []struct{ key, value string }{
		{"From", fmt.Sprintf("%s <%s>", b.FromName, b.FromEmail)},
		{"To", to},
		{"Subject", mail.Subject},
		{"Message-ID", messageID},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var out []byte
	for _, h := range headers {
		out = append(out, h.key+": "+h.value+"\r\n"...)
	}
	out = append(out, "\r\n"...)
	out = append(out, mail.HTML...)
	return out
}

func (s *SMTPNotifier) send(to string, message []byte) error {
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if !s.config.UseTLS {
		if err := smtp.SendMail(addr, auth, s.branding.FromEmail, []string{to}, message); err != nil {
			s.logger.Error().Err(err).Str("server", addr).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", addr).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit() //nolint:errcheck

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err := client.Mail(s.branding.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
