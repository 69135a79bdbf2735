package user

import (
	"strings"
)

type Role string

const (
	RoleGuest      Role = "guest"
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Permissions are four independent capability flags.
type Permissions struct {
	CanManagePublications bool `json:"canManagePublications"`
	CanManageBanners      bool `json:"canManageBanners"`
	CanManageCategories   bool `json:"canManageCategories"`
	CanManageChats        bool `json:"canManageChats"`
}

// AllPermissions is the capability set of the seeded superadmin.
func AllPermissions() Permissions {
	return Permissions{
		CanManagePublications: true,
		CanManageBanners:      true,
		CanManageCategories:   true,
		CanManageChats:        true,
	}
}

// User is persisted as-is, password included. This is a storefront mock,
// not an account system.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Avatar      string      `json:"avatar,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Password    string      `json:"password,omitempty"`
	Permissions Permissions `json:"permissions"`
}

const GuestID = "guest"

// Guest returns the sentinel session user.
func Guest() User {
	return User{
		ID:    GuestID,
		Name:  "Guest",
		Email: "",
		Role:  RoleGuest,
	}
}

func (u *User) IsGuest() bool {
	return u.ID == GuestID || u.Role == RoleGuest
}

func (u *User) IsOperator() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// MatchesCredential reports whether credential equals the email or the
// display name, ignoring case. The first result is true for an email match.
func (u *User) MatchesCredential(credential string) (byEmail, byName bool) {
	c := strings.ToLower(strings.TrimSpace(credential))
	if c == "" {
		return false, false
	}
	return u.Email != "" && strings.ToLower(u.Email) == c, strings.ToLower(u.Name) == c
}

// Apply merges the non-nil fields of p into u.
func (u *User) Apply(p Patch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Permissions != nil {
		u.Permissions = *p.Permissions
	}
}

// Operators lists the users that may sign into the admin dashboard.
func Operators(users []User) []User {
	var ops []User
	for _, u := range users {
		if u.IsOperator() {
			ops = append(ops, u)
		}
	}
	return ops
}

// FindByID returns the index of the user with id, or -1.
func FindByID(users []User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
