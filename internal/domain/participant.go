package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Participant represents a registered player identified by a unique username.
// Rows are never updated; they are only removed by a full reset.
type Participant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_participants_username" json:"username"`
	CreatedAt time.Time `gorm:"type:timestamp;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "participants"
}

// NormalizeUsername trims surrounding whitespace. Usernames stay
// case-sensitive: "Alice" and "alice" are distinct participants.
func NormalizeUsername(raw string) string {
	return strings.TrimSpace(raw)
}
