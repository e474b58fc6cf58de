package mailer

import (
	"context"
	"strings"
	"testing"

	"gatormarket/internal/config"
	"gatormarket/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsDriver(t *testing.T) {
	m, err := New(&config.Config{MailDriver: "log"})
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = New(&config.Config{MailDriver: "smtp", SMTPHost: "localhost", SMTPPort: 2525, MailFrom: "no-reply@sfsu.edu"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	_, err = New(&config.Config{MailDriver: "pigeon"})
	assert.Error(t, err)
}

func TestLogMailerRejectsEmptyRecipient(t *testing.T) {
	m := NewLogMailer(middleware.Logger)
	assert.Error(t, m.Send(context.Background(), Email{Subject: "x"}))
	assert.NoError(t, m.Send(context.Background(), Email{To: "a@sfsu.edu", Subject: "x"}))
}

func TestVerificationEmail(t *testing.T) {
	verify, remove := VerificationLinks("http://localhost:5173", "abc-123")
	assert.Equal(t, "http://localhost:5173/verify-email?token=abc-123", verify)
	assert.Equal(t, "http://localhost:5173/delete-account?token=abc-123", remove)

	msg, err := VerificationEmail("gator@sfsu.edu", "<Ada>", verify, remove)
	require.NoError(t, err)
	assert.Equal(t, "gator@sfsu.edu", msg.To)
	assert.Contains(t, msg.Text, verify)
	assert.Contains(t, msg.Text, remove)
	assert.Contains(t, msg.HTML, "&lt;Ada&gt;")
	assert.True(t, strings.Contains(msg.HTML, "token=abc-123"))
}

func TestSMTPMailerRejectsBadRecipient(t *testing.T) {
	m, err := NewSMTPMailer(&config.Config{SMTPHost: "localhost", SMTPPort: 2525, MailFrom: "no-reply@sfsu.edu", MailRatePerSecond: 100})
	require.NoError(t, err)

	err = m.Send(context.Background(), Email{To: "not an address", Subject: "x", Text: "y"})
	assert.ErrorContains(t, err, "invalid recipient")
}
