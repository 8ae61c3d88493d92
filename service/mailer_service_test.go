package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gevent "github.com/gookit/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lumeweb.com/queuemailer/config"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db"
	"go.lumeweb.com/queuemailer/event"
)

func TestNewQueueMailerService(t *testing.T) {
	dir := t.TempDir()
	translations := filepath.Join(dir, "translations.yaml")
	require.NoError(t, os.WriteFile(translations, []byte("en:\n  cta: Verify your account\n"), 0644))

	file := filepath.Join(dir, "queuemailer.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
core:
  mail:
    default_sender: noreply@example.com
    base_url: https://example.com/
    translations_file: `+translations+`
  db:
    type: sqlite
    file: "file:mailer_service?mode=memory&cache=shared"
`), 0644))

	cm, err := config.NewManager(config.ManagerWithConfigFile(file), config.ManagerWithEnvPrefix("QMTEST_"))
	require.NoError(t, err)
	require.NoError(t, cm.Init())

	ctx, err := core.NewContext(cm, core.NewNopLogger())
	require.NoError(t, err)

	_, dbOpts, err := db.NewDatabase(ctx)
	require.NoError(t, err)
	ctx, err = ctx.With(dbOpts...)
	require.NoError(t, err)
	require.NoError(t, ctx.Startup())

	m, outbox, opts, err := NewQueueMailerService(ctx)
	require.NoError(t, err)
	ctx, err = ctx.With(opts...)
	require.NoError(t, err)

	assert.Same(t, m, ctx.Service(core.MAILER_SERVICE))
	assert.Same(t, outbox, ctx.Service(core.OUTBOX_SERVICE))

	require.NoError(t, NewTemplateStore(ctx.DB()).SaveTemplate(context.Background(), &core.EmailTemplate{
		Name:     "verify",
		Language: "en",
		Subject:  "Verify",
		Body:     `{{ _ "cta" }}: {{ link "account/verify" "token" .token }}`,
	}))

	email, err := m.PrepareEmailFromTemplate(ctx, "verify", "user@example.com", core.MailerTemplateData{"token": "abc"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Verify your account: https://example.com/account/verify?token=abc", email.Body())

	var flushed int
	ctx.Event().On(event.EVENT_OUTBOX_FLUSHED, gevent.ListenerFunc(func(e gevent.Event) error {
		flushed = len(e.(*event.OutboxFlushedEvent).Emails())
		return nil
	}))

	require.NoError(t, m.Send(ctx, email))
	assert.Len(t, outbox.Pending(), 1)

	// a signal cancels the context before the exit hooks run
	ctx.Cancel()
	require.NoError(t, ctx.Exit())
	assert.Equal(t, 1, flushed)
	assert.Empty(t, outbox.Pending())
}
