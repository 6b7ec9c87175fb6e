package domain

import (
	"errors"
	"time"
)

const (
	RoleTenant = "tenant"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSelfModeration = errors.New("admins cannot moderate their own account")

// User models an account: tenants browse, owners list, admins moderate.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	ContactInfo  string    `json:"contact_info,omitempty"`
	IsBlocked    bool      `json:"is_blocked"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidSignupRole reports whether role may be chosen at signup.
// Admin accounts are provisioned out of band, never self-registered.
func ValidSignupRole(role string) bool {
	return role == RoleTenant || role == RoleOwner
}

// Actor is the authenticated identity attached to a request by the auth
// middleware. It is passed explicitly into every policy check.
type Actor struct {
	ID        string
	Role      string
	IsBlocked bool
}

// PropertyAction enumerates the mutations gated by CanMutateProperty.
type PropertyAction string

const (
	ActionUpdate        PropertyAction = "update"
	ActionDelete        PropertyAction = "delete"
	ActionTogglePublish PropertyAction = "publish-toggle"
	ActionSetOccupancy  PropertyAction = "occupancy-toggle"
)

// CanMutateProperty decides whether the actor may perform a mutation on the
// given property. Ownership is required for all owner actions; admins bypass
// ownership for delete only. A blocked owner keeps delete rights on their own
// listings but loses everything that would surface or change them.
func (a Actor) CanMutateProperty(p *Property, action PropertyAction) bool {
	if p == nil {
		return false
	}
	if a.Role == RoleAdmin {
		return action == ActionDelete
	}
	if a.Role != RoleOwner || p.OwnerID != a.ID {
		return false
	}
	if a.IsBlocked {
		return action == ActionDelete
	}
	return true
}
