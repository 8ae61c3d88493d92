package mailer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.lumeweb.com/queuemailer/core"
)

var _ core.MailerLinkGenerator = (*LinkGenerator)(nil)

var ErrOddLinkArgs = errors.New("link arguments must be key/value pairs")

// LinkGenerator builds absolute links below a base url. Arguments are query key/value pairs.
type LinkGenerator struct {
	base *url.URL
}

func NewLinkGenerator(baseURL string) (*LinkGenerator, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %s", baseURL)
	}

	return &LinkGenerator{base: u}, nil
}

func (l *LinkGenerator) Link(destination string, args ...string) (string, error) {
	if len(args)%2 != 0 {
		return "", ErrOddLinkArgs
	}

	u := l.base.JoinPath(strings.TrimPrefix(destination, "/"))

	if len(args) > 0 {
		query := u.Query()
		for i := 0; i < len(args); i += 2 {
			query.Add(args[i], args[i+1])
		}
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}
