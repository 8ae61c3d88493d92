package core

import (
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// Email is a prepared message. It is immutable once built; the only thing that
// happens to it afterwards is staging.
type Email struct {
	id      uuid.UUID
	sender  string
	to      string
	subject string
	body    string
}

func NewEmail(sender, to, subject, body string) *Email {
	return &Email{
		id:      uuid.New(),
		sender:  sender,
		to:      to,
		subject: subject,
		body:    body,
	}
}

func (e *Email) ID() uuid.UUID {
	return e.id
}

func (e *Email) Sender() string {
	return e.sender
}

func (e *Email) To() string {
	return e.to
}

func (e *Email) Subject() string {
	return e.subject
}

func (e *Email) Body() string {
	return e.body
}

// ToMessage converts the email into a go-mail message for whatever dispatches the queue.
func (e *Email) ToMessage() (*mail.Msg, error) {
	msg := mail.NewMsg()

	err := msg.From(e.sender)
	if err != nil {
		return nil, err
	}

	err = msg.To(e.to)
	if err != nil {
		return nil, err
	}

	msg.SetMessageIDWithValue(e.id.String())
	msg.Subject(e.subject)
	msg.SetBodyString(mail.TypeTextPlain, e.body)

	return msg, nil
}

type EmailTemplate struct {
	Name     string
	Language string
	Subject  string
	Body     string
	From     string
}
