package dto

import (
	"time"

	"github.com/google/uuid"

	"egg-hunt-api/internal/domain"
)

// AdminLoginRequest represents an admin login attempt
// @Description Admin password check, returns a session token on success
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse carries the issued session token
type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UpdateCodeRequest represents an admin edit of one catalog entry
// @Description Replace the value of an existing secret code
type UpdateCodeRequest struct {
	ID   uuid.UUID `json:"id" binding:"required" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Code string    `json:"code" binding:"required" example:"newcode"`
}

// SeedRequest represents a catalog reseed
// @Description Replace the whole catalog; omit codes to seed the defaults
type SeedRequest struct {
	Codes []string `json:"codes,omitempty" example:"CODE1,CODE2"`
}

// SecretCodeResponse represents one catalog entry including its value.
// Admin-only: the public API never exposes code values that the caller has
// not already found.
type SecretCodeResponse struct {
	ID        uuid.UUID `json:"id" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Code      string    `json:"code" example:"CODE1"`
	CreatedAt time.Time `json:"createdAt" example:"2026-04-05T09:00:00Z"`
}

// ToSecretCodeResponse converts a domain secret code to its response form
func ToSecretCodeResponse(c *domain.SecretCode) SecretCodeResponse {
	return SecretCodeResponse{
		ID:        c.ID,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
	}
}

// ToSecretCodeResponses converts a catalog slice preserving order
func ToSecretCodeResponses(codes []*domain.SecretCode) []SecretCodeResponse {
	out := make([]SecretCodeResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, ToSecretCodeResponse(c))
	}
	return out
}
