package entity

import (
	"time"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// Password holds the bcrypt hash of the credential. The raw password
	// never reaches the storage layer.
	Password string `json:"-"`

	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`

	IsVendor bool `json:"is_vendor"`

	IsVerified        bool       `json:"is_verified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// UserUpdate is a partial update: nil fields are left untouched.
type UserUpdate struct {
	Username          *string
	Email             *string
	Password          *string
	FirstName         *string
	LastName          *string
	PhoneNumber       *string
	Street            *string
	City              *string
	State             *string
	ZipCode           *string
	IsVendor          *bool
	IsVerified        *bool
	VerificationToken *string
	ResetToken        *string
	ResetTokenExpiry  *time.Time
}

// Apply merges the non-nil fields into u.
func (up UserUpdate) Apply(u *User) {
	if up.Username != nil {
		u.Username = *up.Username
	}
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Password != nil {
		u.Password = *up.Password
	}
	if up.FirstName != nil {
		u.FirstName = *up.FirstName
	}
	if up.LastName != nil {
		u.LastName = *up.LastName
	}
	if up.PhoneNumber != nil {
		u.PhoneNumber = *up.PhoneNumber
	}
	if up.Street != nil {
		u.Street = *up.Street
	}
	if up.City != nil {
		u.City = *up.City
	}
	if up.State != nil {
		u.State = *up.State
	}
	if up.ZipCode != nil {
		u.ZipCode = *up.ZipCode
	}
	if up.IsVendor != nil {
		u.IsVendor = *up.IsVendor
	}
	if up.IsVerified != nil {
		u.IsVerified = *up.IsVerified
	}
	if up.VerificationToken != nil {
		u.VerificationToken = *up.VerificationToken
	}
	if up.ResetToken != nil {
		u.ResetToken = *up.ResetToken
		if *up.ResetToken == "" {
			u.ResetTokenExpiry = nil
		}
	}
	if up.ResetTokenExpiry != nil {
		expiry := *up.ResetTokenExpiry
		u.ResetTokenExpiry = &expiry
	}
}
