package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SecretCode is one entry in the set of codes players must find and submit.
// The value is always stored in canonical form (see NormalizeCode).
type SecretCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code      string    `gorm:"type:varchar(128);not null" json:"code"`
	CreatedAt time.Time `gorm:"type:timestamp;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for SecretCode
func (SecretCode) TableName() string {
	return "secret_codes"
}

// NormalizeCode converts a candidate code to its canonical form: surrounding
// whitespace trimmed, letters uppercased. Submission, admin edit and seeding
// all pass through here, so matching is case-insensitive with a single
// canonical stored form.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
