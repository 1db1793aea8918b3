package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"
)

// Notifier delivers onboarding credentials to a student. Implementations return the
// provider's message id when one is available.
type Notifier interface {
	SendLoginCredentials(ctx context.Context, msg CredentialsMessage) (string, error)
}

// CredentialsMessage is the content of a welcome mail for a newly imported student.
type CredentialsMessage struct {
	StudentName  string
	StudentEmail string
	TempPassword string
}

// Branding is shared by every notifier.
type Branding struct {
	FromName    string
	FromEmail   string
	CollegeName string
	LoginURL    string
}

const credentialsSubject = "Welcome to the College Social Platform!"

var credentialsHTML = template.Must(template.New("credentials").Parse(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2>Hello {{.StudentName}},</h2>
		<p>You have been registered on our college social platform.</p>
		<p>Your login credentials are as follows:</p>
		<p><strong>Email:</strong> {{.StudentEmail}}<br>
		<strong>Temporary Password:</strong> {{.TempPassword}}</p>
		{{if .LoginURL}}<p><a href="{{.LoginURL}}">Log in here</a></p>{{end}}
		<p>Please log in and change your password immediately.</p>
		<br>
		<p>Regards,<br>{{.CollegeName}} Admin Team</p>
	</div>
</body>
</html>`))

type renderedMail struct {
	Subject string
	Text    string
	HTML    string
}

func render(b Branding, msg CredentialsMessage) (renderedMail, error) {
	data := struct {
		CredentialsMessage
		CollegeName string
		LoginURL    string
	}{msg, b.CollegeName, b.LoginURL}

	var html strings.Builder
	if err := credentialsHTML.Execute(&html, data); err != nil {
		return renderedMail{}, fmt.Errorf("failed to render credentials mail: %w", err)
	}

	text := fmt.Sprintf("Hello %s,\n\nYou have been registered on our college social platform.\n\n"+
		"Email: %s\nTemporary Password: %s\n\nPlease log in and change your password immediately.\n\n"+
		"Regards,\n%s Admin Team\n", msg.StudentName, msg.StudentEmail, msg.TempPassword, b.CollegeName)

	return renderedMail{Subject: credentialsSubject, Text: text, HTML: html.String()}, nil
}
