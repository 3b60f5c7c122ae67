// Package auth issues and validates device tokens for the HTTP API.
//
// The app is used on a single family device, so a token identifies a device
// rather than a user account. Tokens are HS256 JWTs minted with the `token`
// CLI command and presented as bearer credentials.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenTypeDevice is the only token type the service issues.
const TokenTypeDevice = "device"

// JWTService defines operations for managing device tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the given device.
	GenerateToken(ctx context.Context, deviceID uuid.UUID) (string, error)

	// ValidateToken validates the token string and extracts its claims.
	// It returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a device token.
type Claims struct {
	DeviceID  uuid.UUID `json:"did,omitempty"`
	TokenType string    `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
