package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailerErrorIs(t *testing.T) {
	err := NewTemplateNotFoundError("welcome", "en")

	assert.EqualError(t, err, "template welcome:en not found")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.NotErrorIs(t, err, ErrInvalidAddress)

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.ErrorIs(t, wrapped, ErrTemplateNotFound)
	assert.True(t, IsMailerError(wrapped))
	assert.Equal(t, ErrKeyTemplateNotFound, AsMailerError(wrapped).Key)
}

func TestMailerErrorWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewMailerError(ErrKeyInvalidAddress, cause)

	assert.EqualError(t, err, "The email address provided is invalid.: boom")
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsErrorType(ErrKeyInvalidAddress))
}

func TestAsMailerErrorForeign(t *testing.T) {
	assert.Nil(t, AsMailerError(errors.New("other")))
	assert.Nil(t, AsMailerError(nil))
	assert.False(t, IsMailerError(nil))
}
