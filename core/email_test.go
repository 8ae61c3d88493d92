package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	a := NewEmail("noreply@example.com", "user@example.com", "Hi", "Hello Ann!")
	b := NewEmail("noreply@example.com", "user@example.com", "Hi", "Hello Ann!")

	assert.Equal(t, "noreply@example.com", a.Sender())
	assert.Equal(t, "user@example.com", a.To())
	assert.Equal(t, "Hi", a.Subject())
	assert.Equal(t, "Hello Ann!", a.Body())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestEmailToMessage(t *testing.T) {
	email := NewEmail("noreply@example.com", "user@example.com", "Welcome", "Hello Ann!")

	msg, err := email.ToMessage()
	require.NoError(t, err)

	rcpts, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"user@example.com"}, rcpts)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Subject: Welcome")
	assert.Contains(t, out, "Hello Ann!")
	assert.Contains(t, out, email.ID().String())
}

func TestEmailToMessageRejectsBadSender(t *testing.T) {
	email := NewEmail("not an address", "user@example.com", "Welcome", "Hello")

	_, err := email.ToMessage()
	assert.Error(t, err)
}
