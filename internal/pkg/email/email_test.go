package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBranding = Branding{
	FromName:    "College Social",
	FromEmail:   "no-reply@x.edu",
	CollegeName: "Model College",
	LoginURL:    "https://social.x.edu/login",
}

var testMessage = CredentialsMessage{StudentName: "Asha Rao", StudentEmail: "asha@x.edu", TempPassword: "Tmp12345ab"}

func TestRenderCredentials(t *testing.T) {
	mail, err := render(testBranding, testMessage)
	require.NoError(t, err)

	assert.Equal(t, credentialsSubject, mail.Subject)
	assert.Contains(t, mail.HTML, "Hello Asha Rao")
	assert.Contains(t, mail.HTML, "Tmp12345ab")
	assert.Contains(t, mail.HTML, "Model College Admin Team")
	assert.Contains(t, mail.HTML, testBranding.LoginURL)
	assert.Contains(t, mail.Text, "Temporary Password: Tmp12345ab")
}

func TestRenderEscapesHTML(t *testing.T) {
	msg := testMessage
	msg.StudentName = "<script>x</script>"
	mail, err := render(testBranding, msg)
	require.NoError(t, err)
	assert.NotContains(t, mail.HTML, "<script>")
}

func TestBuildMIMEHeaders(t *testing.T) {
	mail, err := render(testBranding, testMessage)
	require.NoError(t, err)

	raw := string(buildMIME(testBranding, "asha@x.edu", "<id@smtp>", mail))
	assert.Contains(t, raw, "From: College Social <no-reply@x.edu>\r\n")
	assert.Contains(t, raw, "To: asha@x.edu\r\n")
	assert.Contains(t, raw, "Message-ID: <id@smtp>\r\n")
	assert.Contains(t, raw, "\r\n\r\n<html>")
}

func TestSendGridNotifier(t *testing.T) {
	n := NewSendGridNotifier("key", testBranding, zerolog.Nop())

	var captured rest.Request
	n.send = func(_ context.Context, req rest.Request) (*rest.Response, error) {
		captured = req
		return &rest.Response{StatusCode: http.StatusAccepted, Headers: map[string][]string{"X-Message-Id": {"sg-123"}}}, nil
	}

	id, err := n.SendLoginCredentials(context.Background(), testMessage)
	require.NoError(t, err)
	assert.Equal(t, "sg-123", id)
	assert.Equal(t, http.MethodPost, string(captured.Method))
	assert.Equal(t, "Bearer key", captured.Headers["Authorization"])

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(bytes.NewReader(captured.Body)).Decode(&body))
	assert.Equal(t, "no-reply@x.edu", body["from"].(map[string]interface{})["email"])
}

func TestSendGridNotifierFailures(t *testing.T) {
	n := NewSendGridNotifier("key", testBranding, zerolog.Nop())

	n.send = func(context.Context, rest.Request) (*rest.Response, error) {
		return &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}, nil
	}
	_, err := n.SendLoginCredentials(context.Background(), testMessage)
	assert.ErrorContains(t, err, "status 401")

	n.send = func(context.Context, rest.Request) (*rest.Response, error) {
		return nil, errors.New("dial tcp: timeout")
	}
	_, err = n.SendLoginCredentials(context.Background(), testMessage)
	assert.ErrorContains(t, err, "sendgrid request failed")
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	id, err := n.SendLoginCredentials(context.Background(), testMessage)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), "asha@x.edu")
}
