package mailer

import (
	"errors"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"go.lumeweb.com/queuemailer/core"
)

var _ core.MailerRenderer = (*Renderer)(nil)

var ErrNoLinkGenerator = errors.New("template uses link but no link generator is configured")

// Renderer renders stored template sources with text/template. On top of the sprig
// function map it provides link and translate (aliased as _), both bound to the
// RenderContext of the call. Referencing a parameter that was not passed is an error.
type Renderer struct {
	funcs template.FuncMap
}

func NewRenderer() *Renderer {
	return &Renderer{funcs: sprig.TxtFuncMap()}
}

func (r *Renderer) Render(text string, params core.MailerTemplateData, rctx core.RenderContext) (string, error) {
	tmpl, err := template.New("body").Option("missingkey=error").Funcs(r.funcs).Funcs(contextFuncs(rctx)).Parse(text)
	if err != nil {
		return "", err
	}

	var bodyBuilder strings.Builder
	err = tmpl.Execute(&bodyBuilder, params)
	if err != nil {
		return "", err
	}

	return bodyBuilder.String(), nil
}

func contextFuncs(rctx core.RenderContext) template.FuncMap {
	translate := func(key string, args ...any) string {
		if rctx.Translator == nil {
			return key
		}
		return rctx.Translator.Translate(rctx.Language, key, args...)
	}

	return template.FuncMap{
		"link": func(destination string, args ...string) (string, error) {
			if rctx.Links == nil {
				return "", ErrNoLinkGenerator
			}
			return rctx.Links.Link(destination, args...)
		},
		"translate": translate,
		"_":         translate,
		"lang": func() string {
			return rctx.Language
		},
	}
}
