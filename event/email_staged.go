package event

import (
	gevent "github.com/gookit/event"
	"go.lumeweb.com/queuemailer/core"
)

const (
	EVENT_EMAIL_STAGED = "mailer.email.staged"
)

type EmailStagedEvent struct {
	core.Event
}

func (e *EmailStagedEvent) SetEmail(email *core.Email) {
	e.Set("email", email)
}

func (e *EmailStagedEvent) Email() *core.Email {
	email, _ := e.Get("email").(*core.Email)
	return email
}

func FireEmailStagedEvent(em *gevent.Manager, email *core.Email) error {
	return fire(em, EVENT_EMAIL_STAGED, &EmailStagedEvent{}, func(evt *EmailStagedEvent) {
		evt.SetEmail(email)
	})
}
