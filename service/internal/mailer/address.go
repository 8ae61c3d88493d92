package mailer

import (
	emailverifier "github.com/AfterShip/email-verifier"
	"go.lumeweb.com/queuemailer/core"
)

var _ core.MailerAddressValidator = (*AddressValidator)(nil)

// AddressValidator does syntax checks only. Nothing here touches the network.
type AddressValidator struct {
	verifier *emailverifier.Verifier
}

func NewAddressValidator() *AddressValidator {
	verifier := emailverifier.NewVerifier()

	verifier.DisableSMTPCheck()
	verifier.DisableGravatarCheck()
	verifier.DisableDomainSuggest()
	verifier.DisableAutoUpdateDisposable()

	return &AddressValidator{verifier: verifier}
}

func (v *AddressValidator) IsValidEmailAddress(address string) bool {
	if address == "" {
		return false
	}

	return v.verifier.ParseAddress(address).Valid
}
