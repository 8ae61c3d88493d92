package mailer

import (
	"fmt"
	"os"

	"go.lumeweb.com/queuemailer/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

var _ core.MailerTranslator = (*Translator)(nil)

// Translations maps a language code to its message keys.
type Translations map[string]map[string]string

// Translator looks messages up in an x/text catalog. Unknown keys render as the key itself,
// formatted with the given args.
type Translator struct {
	catalog *catalog.Builder
}

func NewTranslator(translations Translations, fallback string) (*Translator, error) {
	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback language %q: %w", fallback, err)
	}

	builder := catalog.NewBuilder(catalog.Fallback(fallbackTag))

	for lang, messages := range translations {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}

		// catalog lookups walk tag parents up to Und, so the fallback messages live there too
		tags := []language.Tag{tag}
		if tag == fallbackTag {
			tags = append(tags, language.Und)
		}

		for key, msg := range messages {
			for _, t := range tags {
				if err := builder.SetString(t, key, msg); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Translator{catalog: builder}, nil
}

// NewTranslatorFromFile reads a YAML translations file. An empty path yields a translator
// with no messages.
func NewTranslatorFromFile(file string, fallback string) (*Translator, error) {
	translations := Translations{}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("parse translations %s: %w", file, err)
		}
	}

	return NewTranslator(translations, fallback)
}

func (t *Translator) Translate(lang, key string, args ...any) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}

	return message.NewPrinter(tag, message.Catalog(t.catalog)).Sprintf(key, args...)
}
