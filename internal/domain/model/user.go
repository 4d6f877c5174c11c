package model

import (
	"strings"
	"time"

	"github.com/jobtracker/jobtracker-api/internal/domain/validation"
)

const (
	minUserNameLen  = 3
	maxUserNameLen  = 20
	maxLastNameLen  = 20
	maxLocationLen  = 20
	minPasswordLen  = 6
	maxEmailLen     = 254
	defaultLastName = "lastName"
	defaultLocation = DefaultJobLocation
)

// User is an account that owns jobs. PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"id"       db:"id"`
	Name         string    `json:"name"     db:"name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email"    db:"email"`
	Location     string    `json:"location" db:"location"`
	PasswordHash string    `json:"-"        db:"password_hash"`
	CreatedAt    time.Time `json:"-"        db:"created_at"`
	UpdatedAt    time.Time `json:"-"        db:"updated_at"`
}

// NormalizeEmail lower-cases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PublicUser is the subset of a User returned to clients.
type PublicUser struct {
	Email    string `json:"email"`
	LastName string `json:"lastName"`
	Location string `json:"location"`
	Name     string `json:"name"`
}

// Public strips identifiers and credentials from u.
func (u *User) Public() PublicUser {
	return PublicUser{Email: u.Email, LastName: u.LastName, Location: u.Location, Name: u.Name}
}

// AuthResponse is returned by register, login, and profile updates.
type AuthResponse struct {
	User     PublicUser `json:"user"`
	Location string     `json:"location"`
	Token    string     `json:"token"`
}

// RegisterRequest represents parameters to create a User.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HasAllValues reports whether every field was supplied.
func (r *RegisterRequest) HasAllValues() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Email) != "" && r.Password != ""
}

// Validate checks field constraints and normalizes the email.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	return validation.New().
		Validate("name", r.Name, validation.RequiredRange("Name", minUserNameLen, maxUserNameLen)).
		Validate("email", r.Email, validation.Required("Email", maxEmailLen), validation.Email("Email")).
		Validate("password", r.Password, validation.MinLength("Password", minPasswordLen)).
		Err()
}

// NewUser builds the row to insert for a validated registration.
func (r *RegisterRequest) NewUser(passwordHash string) *User {
	return &User{
		Name:         r.Name,
		LastName:     defaultLastName,
		Email:        r.Email,
		Location:     defaultLocation,
		PasswordHash: passwordHash,
	}
}

// LoginRequest carries credentials for a login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HasAllValues reports whether both credentials were supplied.
func (r *LoginRequest) HasAllValues() bool {
	return strings.TrimSpace(r.Email) != "" && r.Password != ""
}

// UpdateUserRequest replaces the caller's profile fields. All fields are required.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Location string `json:"location"`
}

// HasAllValues reports whether every field was supplied.
func (r *UpdateUserRequest) HasAllValues() bool {
	return strings.TrimSpace(r.Email) != "" && strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.LastName) != "" && strings.TrimSpace(r.Location) != ""
}

// Validate checks field constraints and normalizes values.
func (r *UpdateUserRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Location = strings.TrimSpace(r.Location)
	return validation.New().
		Validate("email", r.Email, validation.Required("Email", maxEmailLen), validation.Email("Email")).
		Validate("name", r.Name, validation.RequiredRange("Name", minUserNameLen, maxUserNameLen)).
		Validate("lastName", r.LastName, validation.Required("Last name", maxLastNameLen)).
		Validate("location", r.Location, validation.Required("Location", maxLocationLen)).
		Err()
}
