package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength    = 254
	MaxNameLength     = 100
	MinPasswordLength = 6
)

// Role constants
const (
	RoleSuperAdmin    = "super_admin"
	RoleManager       = "manager"
	RoleCustomer      = "customer"
	RoleTravelCompany = "travel_company"
	RoleClerk         = "clerk"
)

// landingPaths maps each role to its dashboard.
var landingPaths = map[string]string{
	RoleSuperAdmin:    "/admin",
	RoleManager:       "/manager",
	RoleCustomer:      "/customer",
	RoleTravelCompany: "/travel_company",
	RoleClerk:         "/clerk",
}

// Domain errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidRole      = errors.New("role must be one of: super_admin, manager, customer, travel_company, clerk")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// User holds state for a person who can sign in.
// BranchID is zero when the user has no branch association.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	BranchID     int64
	CreatedAt    time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is at least MinPasswordLength characters
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// HasBranch reports whether the user is associated with a branch.
func (u *User) HasBranch() bool {
	return u.BranchID > 0
}

// IsValidRole reports whether role has a dashboard.
func IsValidRole(role string) bool {
	_, ok := landingPaths[role]
	return ok
}

// LandingPath returns the dashboard path for role.
// The second result is false for an unknown role.
func LandingPath(role string) (string, bool) {
	path, ok := landingPaths[role]
	return path, ok
}
