package config

import (
	"errors"
	"net/url"
)

var _ Defaults = (*MailConfig)(nil)
var _ Validator = (*MailConfig)(nil)

type MailConfig struct {
	DefaultSender    string `mapstructure:"default_sender"`
	DefaultLanguage  string `mapstructure:"default_language"`
	BaseURL          string `mapstructure:"base_url"`
	TranslationsFile string `mapstructure:"translations_file"`
}

func (m MailConfig) Defaults() map[string]any {
	return map[string]any{
		"default_language": "en",
	}
}

func (m MailConfig) Validate() error {
	if m.DefaultSender == "" {
		return errors.New("core.mail.default_sender is required")
	}
	if m.DefaultLanguage == "" {
		return errors.New("core.mail.default_language is required")
	}
	if m.BaseURL != "" {
		u, err := url.Parse(m.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("core.mail.base_url must be an absolute url")
		}
	}
	return nil
}
