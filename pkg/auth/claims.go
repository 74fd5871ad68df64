package auth

import (
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	// JTI is generated when empty. It doubles as the redis session id.
	JTI string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller resolved from a valid token.
type Identity struct {
	UserID  uuid.UUID
	Role    enums.UserRole
	TokenID string
}

// IsAdmin reports whether the caller carries the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.Role == enums.UserRoleAdmin
}

// Identity projects the claims onto the request identity.
func (c *AccessTokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Role: c.Role, TokenID: c.ID}
}
