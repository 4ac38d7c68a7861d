package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitCodeRequest represents a code submission
// @Description Request to credit the participant with a secret code
type SubmitCodeRequest struct {
	ParticipantID uuid.UUID `json:"participantId" binding:"required" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Code          string    `json:"code" binding:"required" example:"code1"`
}

// SubmitCodeResponse represents the outcome of an accepted submission
// @Description Updated standing after a successful submission
type SubmitCodeResponse struct {
	Code     string           `json:"code" example:"CODE1"`
	FoundAt  time.Time        `json:"foundAt" example:"2026-04-05T10:31:00Z"`
	Standing StandingResponse `json:"standing"`
	Winner   bool             `json:"winner" example:"false"`
}

// ProgressResponse represents a participant's own progress view
// @Description Found code values plus the participant's standing
type ProgressResponse struct {
	FoundCodes []string         `json:"foundCodes" example:"CODE1,CODE2"`
	Standing   StandingResponse `json:"standing"`
}
