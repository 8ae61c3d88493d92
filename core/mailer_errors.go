package core

import (
	"errors"
	"fmt"
)

type MailerErrorType string

const (
	ErrKeyTemplateNotFound MailerErrorType = "ErrTemplateNotFound"
	ErrKeyInvalidAddress   MailerErrorType = "ErrInvalidAddress"
)

var defaultMailerErrorMessages = map[MailerErrorType]string{
	ErrKeyTemplateNotFound: "The requested email template was not found.",
	ErrKeyInvalidAddress:   "The email address provided is invalid.",
}

// Sentinels for errors.Is; any *MailerError with the same key matches.
var (
	ErrTemplateNotFound = &MailerError{Key: ErrKeyTemplateNotFound, Message: defaultMailerErrorMessages[ErrKeyTemplateNotFound]}
	ErrInvalidAddress   = &MailerError{Key: ErrKeyInvalidAddress, Message: defaultMailerErrorMessages[ErrKeyInvalidAddress]}
)

type MailerError struct {
	Key     MailerErrorType // A unique identifier for the error type
	Message string          // Human-readable error message
	Err     error           // Underlying error, if any
}

func (e *MailerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MailerError) Unwrap() error {
	return e.Err
}

func (e *MailerError) Is(target error) bool {
	var t *MailerError
	if !errors.As(target, &t) {
		return false
	}

	return e.Key == t.Key
}

func (e *MailerError) IsErrorType(key MailerErrorType) bool {
	return e.Key == key
}

func NewMailerError(key MailerErrorType, err error, customMessage ...string) *MailerError {
	message, exists := defaultMailerErrorMessages[key]
	if !exists {
		message = "An unknown error occurred"
	}
	if len(customMessage) > 0 {
		message = customMessage[0]
	}
	return &MailerError{
		Key:     key,
		Message: message,
		Err:     err,
	}
}

func NewTemplateNotFoundError(name, language string) *MailerError {
	return NewMailerError(ErrKeyTemplateNotFound, nil, fmt.Sprintf("template %s:%s not found", name, language))
}

func NewInvalidAddressError(address string) *MailerError {
	return NewMailerError(ErrKeyInvalidAddress, nil, fmt.Sprintf("invalid email address '%s'", address))
}

func IsMailerError(err error) bool {
	return AsMailerError(err) != nil
}

func AsMailerError(err error) *MailerError {
	var e *MailerError
	if errors.As(err, &e) {
		return e
	}
	return nil
}
