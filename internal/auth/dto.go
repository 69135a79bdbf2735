package auth

import (
	"strings"

	"github.com/frahmantamala/marketplace-storefront/internal"
)

// LoginDTO is what a sign-in form submits. Credential is an email or a display name.
type LoginDTO struct {
	Credential string `json:"credential"`
	Password   string `json:"password,omitempty"`
}

// Validate checks required fields.
func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Credential) == "" {
		return internal.NewValidationFieldError("credential", "email or name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
