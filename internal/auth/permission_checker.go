package auth

import (
	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
)

type Capability string

const (
	CapManagePublications Capability = "manage_publications"
	CapManageBanners      Capability = "manage_banners"
	CapManageCategories   Capability = "manage_categories"
	CapManageChats        Capability = "manage_chats"
	CapManageUsers        Capability = "manage_users"
)

type PermissionChecker interface {
	Can(u user.User, capability Capability) bool
	Require(u user.User, capability Capability) error
	CanAccessDashboard(u user.User) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

// Can answers from the user's own permission flags. User administration is
// reserved to the superadmin role and has no flag of its own.
func (c *DefaultPermissionChecker) Can(u user.User, capability Capability) bool {
	if u.IsGuest() {
		return false
	}
	p := u.Permissions
	switch capability {
	case CapManagePublications:
		return p.CanManagePublications
	case CapManageBanners:
		return p.CanManageBanners
	case CapManageCategories:
		return p.CanManageCategories
	case CapManageChats:
		return p.CanManageChats
	case CapManageUsers:
		return u.IsSuperAdmin()
	}
	return false
}

func (c *DefaultPermissionChecker) Require(u user.User, capability Capability) error {
	if c.Can(u, capability) {
		return nil
	}
	return internal.ErrPermissionDenied.WithDetails(map[string]string{
		"user_id":    u.ID,
		"capability": string(capability),
	})
}

func (c *DefaultPermissionChecker) CanAccessDashboard(u user.User) bool {
	return u.IsOperator()
}
