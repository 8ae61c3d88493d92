package service

import (
	"context"
	"errors"

	gevent "github.com/gookit/event"
	"github.com/samber/lo"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/event"
	"go.lumeweb.com/queuemailer/service/internal/mailer"
	"go.uber.org/zap"
)

var _ core.MailerService = (*QueueMailer)(nil)

type QueueMailerConfig struct {
	DefaultSender   string
	DefaultLanguage string
}

type QueueMailerDeps struct {
	Store      core.MailerTemplateStore
	Renderer   core.MailerRenderer
	Stager     core.MailerStager
	Validator  core.MailerAddressValidator
	Links      core.MailerLinkGenerator
	Translator core.MailerTranslator
	Events     *gevent.Manager
	Logger     *core.Logger
}

// QueueMailer prepares emails, either directly or from stored templates, and stages them.
// Staging is all Send does; committing and delivery belong to the stager's owner.
type QueueMailer struct {
	sender     string
	language   string
	store      core.MailerTemplateStore
	renderer   core.MailerRenderer
	stager     core.MailerStager
	validator  core.MailerAddressValidator
	links      core.MailerLinkGenerator
	translator core.MailerTranslator
	events     *gevent.Manager
	logger     *core.Logger
}

func NewQueueMailer(cfg QueueMailerConfig, deps QueueMailerDeps) (*QueueMailer, error) {
	if deps.Store == nil {
		return nil, errors.New("mailer: template store is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("mailer: renderer is required")
	}
	if deps.Stager == nil {
		return nil, errors.New("mailer: stager is required")
	}
	if cfg.DefaultLanguage == "" {
		return nil, errors.New("mailer: default language is required")
	}

	validator := deps.Validator
	if validator == nil {
		validator = mailer.NewAddressValidator()
	}

	if !validator.IsValidEmailAddress(cfg.DefaultSender) {
		return nil, core.NewInvalidAddressError(cfg.DefaultSender)
	}

	return &QueueMailer{
		sender:     cfg.DefaultSender,
		language:   cfg.DefaultLanguage,
		store:      deps.Store,
		renderer:   deps.Renderer,
		stager:     deps.Stager,
		validator:  validator,
		links:      deps.Links,
		translator: deps.Translator,
		events:     deps.Events,
		logger:     lo.Ternary(deps.Logger != nil, deps.Logger, core.NewNopLogger()),
	}, nil
}

func (m *QueueMailer) PrepareEmail(to, subject, body, from string) (*core.Email, error) {
	if !m.validator.IsValidEmailAddress(to) {
		return nil, core.NewInvalidAddressError(to)
	}

	if from != "" && !m.validator.IsValidEmailAddress(from) {
		return nil, core.NewInvalidAddressError(from)
	}

	return core.NewEmail(lo.Ternary(from != "", from, m.sender), to, subject, body), nil
}

func (m *QueueMailer) PrepareEmailFromTemplate(ctx context.Context, templateName, to string, parameters core.MailerTemplateData, language string) (*core.Email, error) {
	if language == "" {
		language = m.language
	}

	tpl, err := m.store.FindTemplate(ctx, templateName, language)
	if err != nil {
		return nil, err
	}

	body, err := m.renderer.Render(tpl.Body, parameters, core.RenderContext{
		Language:   language,
		Links:      m.links,
		Translator: m.translator,
	})
	if err != nil {
		return nil, err
	}

	return m.PrepareEmail(to, tpl.Subject, body, tpl.From)
}

func (m *QueueMailer) Send(ctx context.Context, email *core.Email) error {
	err := m.stager.StageEmail(ctx, email)
	if err != nil {
		return err
	}

	m.logger.Debug("email staged",
		zap.String("id", email.ID().String()),
		zap.String("to", email.To()),
		zap.String("subject", email.Subject()),
	)

	if err := event.FireEmailStagedEvent(m.events, email); err != nil {
		m.logger.Error("email staged listener failed", zap.String("id", email.ID().String()), zap.Error(err))
	}

	return nil
}

func (m *QueueMailer) DefaultSender() string {
	return m.sender
}

func (m *QueueMailer) DefaultLanguage() string {
	return m.language
}

// NewQueueMailerService wires a QueueMailer and its Outbox from the context's config and
// database. Staged emails still pending at exit are flushed by the exit hook.
func NewQueueMailerService(ctx core.Context) (*QueueMailer, *Outbox, []core.ContextBuilderOption, error) {
	cfg := ctx.Config().Config().Core.Mail

	translator, err := mailer.NewTranslatorFromFile(cfg.TranslationsFile, cfg.DefaultLanguage)
	if err != nil {
		return nil, nil, nil, err
	}

	var links core.MailerLinkGenerator
	if cfg.BaseURL != "" {
		links, err = mailer.NewLinkGenerator(cfg.BaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	outbox := NewOutbox(ctx.DB(), ctx.Logger(), ctx.Event())

	m, err := NewQueueMailer(QueueMailerConfig{
		DefaultSender:   cfg.DefaultSender,
		DefaultLanguage: cfg.DefaultLanguage,
	}, QueueMailerDeps{
		Store:      NewTemplateStore(ctx.DB()),
		Renderer:   mailer.NewRenderer(),
		Stager:     outbox,
		Links:      links,
		Translator: translator,
		Events:     ctx.Event(),
		Logger:     ctx.Logger(),
	})
	if err != nil {
		return nil, nil, nil, err
	}

	opts := core.ContextOptions(
		core.ContextWithService(core.MAILER_SERVICE, m),
		core.ContextWithService(core.OUTBOX_SERVICE, outbox),
		core.ContextWithExitFunc(func(ctx core.Context) error {
			// the context may already be canceled by a signal; the flush still has to run
			_, err := outbox.Flush(context.WithoutCancel(ctx))
			return err
		}),
	)

	return m, outbox, opts, nil
}
