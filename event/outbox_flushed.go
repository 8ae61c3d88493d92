package event

import (
	gevent "github.com/gookit/event"
	"go.lumeweb.com/queuemailer/core"
)

const (
	EVENT_OUTBOX_FLUSHED = "mailer.outbox.flushed"
)

type OutboxFlushedEvent struct {
	core.Event
}

func (e *OutboxFlushedEvent) SetEmails(emails []*core.Email) {
	e.Set("emails", emails)
}

func (e *OutboxFlushedEvent) Emails() []*core.Email {
	emails, _ := e.Get("emails").([]*core.Email)
	return emails
}

func FireOutboxFlushedEvent(em *gevent.Manager, emails []*core.Email) error {
	return fire(em, EVENT_OUTBOX_FLUSHED, &OutboxFlushedEvent{}, func(evt *OutboxFlushedEvent) {
		evt.SetEmails(emails)
	})
}
