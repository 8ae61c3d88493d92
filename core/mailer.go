package core

import "context"

const MAILER_SERVICE = "mailer"
const OUTBOX_SERVICE = "outbox"

type MailerTemplateData = map[string]any

// MailerTemplateStore resolves stored templates by their (name, language) key.
type MailerTemplateStore interface {
	FindTemplate(ctx context.Context, name, language string) (*EmailTemplate, error)
}

type MailerLinkGenerator interface {
	Link(destination string, args ...string) (string, error)
}

type MailerTranslator interface {
	Translate(language, key string, args ...any) string
}

// RenderContext carries the providers a template may call into while rendering.
type RenderContext struct {
	Language   string
	Links      MailerLinkGenerator
	Translator MailerTranslator
}

type MailerRenderer interface {
	Render(text string, params MailerTemplateData, rctx RenderContext) (string, error)
}

type MailerAddressValidator interface {
	IsValidEmailAddress(address string) bool
}

// MailerStager accepts an email for a later commit. Accepting makes no delivery promise.
type MailerStager interface {
	StageEmail(ctx context.Context, email *Email) error
}

type MailerService interface {
	PrepareEmail(to, subject, body, from string) (*Email, error)
	PrepareEmailFromTemplate(ctx context.Context, templateName, to string, parameters MailerTemplateData, language string) (*Email, error)
	Send(ctx context.Context, email *Email) error
}
