package dto

import (
	"time"

	"github.com/google/uuid"

	"egg-hunt-api/internal/domain"
)

// RegisterRequest represents the request to register a new participant
// @Description Request to register a participant by username
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
}

// ParticipantResponse represents a registered participant
// @Description Participant information
type ParticipantResponse struct {
	ID        uuid.UUID `json:"id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Username  string    `json:"username" example:"alice"`
	CreatedAt time.Time `json:"createdAt" example:"2026-04-05T10:30:00Z"`
}

// ToParticipantResponse converts a domain participant to its response form
func ToParticipantResponse(p *domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:        p.ID,
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
	}
}
