package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles in the marketplace.
type Role string

const (
	RoleRenter           Role = "renter"
	RoleLandlord         Role = "landlord"
	RoleRealEstateAgency Role = "real_estate_agency"
	RoleLodgeOwner       Role = "lodge_owner"
	RoleBnbOwner         Role = "bnb_owner"
	RoleAdmin            Role = "admin"
)

// listerRoles are the roles subject to the verification gate. Renters never
// list properties, so they are rejected before the gate even runs.
var listerRoles = map[Role]struct{}{
	RoleLandlord:         {},
	RoleRealEstateAgency: {},
	RoleLodgeOwner:       {},
	RoleBnbOwner:         {},
	RoleAdmin:            {},
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleRenter, RoleLandlord, RoleRealEstateAgency, RoleLodgeOwner, RoleBnbOwner, RoleAdmin:
		return true
	}
	return false
}

// CanListProperties reports whether the role is eligible to create listings
// at all. Eligible roles are further constrained by the verification gate.
func (r Role) CanListProperties() bool {
	_, ok := listerRoles[r]
	return ok
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrAccountNotFound = errors.New("account not found")

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
