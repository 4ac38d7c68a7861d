package dto

import (
	"github.com/google/uuid"

	"egg-hunt-api/internal/domain"
)

// StandingResponse represents one leaderboard row
// @Description Derived progress for one participant
type StandingResponse struct {
	ParticipantID uuid.UUID `json:"participantId" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Username      string    `json:"username" example:"alice"`
	CodesFound    int       `json:"codesFound" example:"3"`
	TotalCodes    int       `json:"totalCodes" example:"10"`
}

// LeaderboardResponse represents the full leaderboard
// @Description Standings sorted by codes found, plus the winner if the hunt
// @Description is complete for someone
type LeaderboardResponse struct {
	Standings  []StandingResponse `json:"standings"`
	TotalCodes int                `json:"totalCodes" example:"10"`
	Winner     *StandingResponse  `json:"winner,omitempty"`
}

// ToStandingResponse converts a derived standing to its response form
func ToStandingResponse(s domain.Standing) StandingResponse {
	return StandingResponse{
		ParticipantID: s.ParticipantID,
		Username:      s.Username,
		CodesFound:    s.CodesFound,
		TotalCodes:    s.TotalCodes,
	}
}

// ToStandingResponses converts a slice of standings preserving order
func ToStandingResponses(standings []domain.Standing) []StandingResponse {
	out := make([]StandingResponse, 0, len(standings))
	for _, s := range standings {
		out = append(out, ToStandingResponse(s))
	}
	return out
}
