package users

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/tenantflow/authcore/identity"
)

// User is a member account within a tenant. Role and activation status are
// what the authorization core cares about; the rest is descriptive.
type User struct {
	ID           string        `json:"id,omitempty"`
	TenantID     string        `json:"tenant_id,omitempty"`
	Email        string        `json:"email,omitempty"`
	FullName     string        `json:"full_name,omitempty"`
	Role         identity.Role `json:"role,omitempty"`
	PasswordHash string        `json:"-"` // never serialize
	IsActive     bool          `json:"is_active"`
	DateJoined   time.Time     `json:"date_joined,omitempty"`
}

// Identity projects the user record into the shape authorization decisions
// consume.
func (u *User) Identity() identity.Identity {
	return identity.Identity{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Role:     u.Role,
		Email:    u.Email,
		FullName: u.FullName,
		Active:   u.IsActive,
	}
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
