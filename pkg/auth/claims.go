package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	Role    enums.UserRole
	StoreID *uuid.UUID
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients. Store admins
// carry the store they administer so handlers can gate per-store actions
// without a user lookup.
type AccessTokenClaims struct {
	UserID  uuid.UUID      `json:"user_id"`
	Role    enums.UserRole `json:"role"`
	StoreID *uuid.UUID     `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// AdministersStore reports whether the claims allow acting for the store.
func (c *AccessTokenClaims) AdministersStore(storeID uuid.UUID) bool {
	if c.Role == enums.UserRoleSuperAdmin {
		return true
	}
	return c.Role == enums.UserRoleStoreAdmin && c.StoreID != nil && *c.StoreID == storeID
}
