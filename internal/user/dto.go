package user

import (
	"strings"

	"github.com/frahmantamala/marketplace-storefront/internal"
)

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string      `json:"name,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Role        *Role        `json:"role,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Password    *string      `json:"password,omitempty"`
	Permissions *Permissions `json:"permissions,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil && p.Avatar == nil &&
		p.Phone == nil && p.Password == nil && p.Permissions == nil
}

// NewUser carries the fields accepted when an operator is created.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func (d NewUser) Validate() error {
	var errs internal.ValidationErrors
	if strings.TrimSpace(d.Name) == "" {
		errs.Add("name", "name is required", internal.ErrCodeInvalidName)
	}
	if !strings.Contains(d.Email, "@") {
		errs.Add("email", "email must be a valid address", internal.ErrCodeInvalidEmail)
	}
	if d.Role != "" && (!d.Role.Valid() || d.Role == RoleGuest) {
		errs.Add("role", "role must be user, admin or superadmin", internal.ErrCodeValidationFailed)
	}
	return errs.Err()
}
