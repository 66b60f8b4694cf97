package models

import "github.com/golang-jwt/jwt/v5"

// Security levels as stored in LKP_PTA_USR_SECUR. Editors may mutate
// archives, viewers are read-only.
const (
	SecurityViewer = "VIEWER"
	SecurityEditor = "EDITOR"
)

// Claims is the JWT payload issued after a successful DMS login.
type Claims struct {
	Username      string `json:"username"`
	SecurityLevel string `json:"security_level"`
	SessionID     string `json:"session_id"`
	jwt.RegisteredClaims
}

// IsEditor reports whether the session may mutate archive data.
func (c *Claims) IsEditor() bool {
	return c.SecurityLevel == SecurityEditor
}

// AuthenticatedUser is returned to the client after login.
type AuthenticatedUser struct {
	Username      string `json:"username"`
	FullName      string `json:"full_name,omitempty"`
	SecurityLevel string `json:"security_level"`
	Token         string `json:"token,omitempty"`
}
