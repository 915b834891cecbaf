package models

import "github.com/golang-jwt/jwt/v5"

// Role names carried in the JWT "role" claim.
const (
	RoleDoctor = "Doctor"
	RoleNurse  = "Nurse"
)

// Claims is the JWT claims structure issued by the identity provider.
// Token issuance lives upstream; this backend only verifies and reads.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"` // "Doctor" or "Nurse"
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}

// AuthContext is the resolved authorization decision handed to services.
// Services never re-derive roles from tokens; they only read these flags.
type AuthContext struct {
	UserID   string
	IsDoctor bool
	IsNurse  bool
}

// FromClaims maps verified claims onto role flags.
func FromClaims(c *Claims) AuthContext {
	return AuthContext{
		UserID:   c.Subject,
		IsDoctor: c.Role == RoleDoctor,
		IsNurse:  c.Role == RoleNurse,
	}
}
