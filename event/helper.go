package event

import (
	gevent "github.com/gookit/event"
	"go.lumeweb.com/queuemailer/core"
)

// fire builds a fresh event per call so concurrent fires never share event state.
// A nil manager means nobody is listening.
func fire[T core.Eventer](em *gevent.Manager, name string, evt T, fill func(T)) error {
	if em == nil {
		return nil
	}

	evt.SetName(name)
	fill(evt)

	return em.FireEvent(evt)
}
