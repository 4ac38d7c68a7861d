package domain

import (
	"time"

	"github.com/google/uuid"
)

// FoundRecord credits a participant with one secret code. The composite
// unique index on (participant_id, code_id) is the authoritative guard
// against double credit: two concurrent submissions of the same code can
// both pass the read-side check, but only one insert wins.
//
// Rows are hard-deleted in bulk on game reset; a soft-deleted pair would
// keep holding the unique slot and block re-finding the code.
type FoundRecord struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ParticipantID uuid.UUID   `gorm:"type:uuid;not null;index:idx_found_records_participant_id;uniqueIndex:uq_found_records_participant_code" json:"participant_id"`
	CodeID        uuid.UUID   `gorm:"type:uuid;not null;index:idx_found_records_code_id;uniqueIndex:uq_found_records_participant_code" json:"code_id"`
	FoundAt       time.Time   `gorm:"type:timestamp;not null;default:now()" json:"found_at"`
	Participant   Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Code          SecretCode  `gorm:"foreignKey:CodeID" json:"code,omitempty"`
}

// TableName specifies the table name for FoundRecord
func (FoundRecord) TableName() string {
	return "found_records"
}

// Standing is a participant's derived progress against the current catalog.
// It is never persisted; it is recomputed on demand and on every relevant
// change notification.
type Standing struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Username      string    `json:"username"`
	CodesFound    int       `json:"codes_found"`
	TotalCodes    int       `json:"total_codes"`
}

// IsComplete reports whether the standing represents a finished hunt.
// An empty catalog never produces a winner.
func (s Standing) IsComplete() bool {
	return s.TotalCodes > 0 && s.CodesFound == s.TotalCodes
}
