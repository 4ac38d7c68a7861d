package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
)

// FoundRecordRepository defines the interface for progress ledger data access
type FoundRecordRepository interface {
	Create(ctx context.Context, record *domain.FoundRecord) error
	Exists(ctx context.Context, participantID, codeID uuid.UUID) (bool, error)
	FindByParticipant(ctx context.Context, participantID uuid.UUID) ([]*domain.FoundRecord, error)
	CountByParticipant(ctx context.Context, participantID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountsByParticipant(ctx context.Context) (map[uuid.UUID]int64, error)
	DeleteAll(ctx context.Context) error
}

// foundRecordRepositoryImpl is the GORM implementation of FoundRecordRepository
type foundRecordRepositoryImpl struct {
	db *gorm.DB
}

// NewFoundRecordRepository creates a new instance of FoundRecordRepository
func NewFoundRecordRepository(db *gorm.DB) FoundRecordRepository {
	return &foundRecordRepositoryImpl{db: db}
}

// Create inserts a found record, translating a unique-constraint violation
// into ErrDuplicatePair.
func (r *foundRecordRepositoryImpl) Create(ctx context.Context, record *domain.FoundRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePair
		}
		return err
	}
	return nil
}

// Exists reports whether the pair already holds a record. This is the cheap
// read-side check; Create remains the authoritative one.
func (r *foundRecordRepositoryImpl) Exists(ctx context.Context, participantID, codeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.FoundRecord{}).
		Where("participant_id = ? AND code_id = ?", participantID, codeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByParticipant returns a participant's records in find order
func (r *foundRecordRepositoryImpl) FindByParticipant(ctx context.Context, participantID uuid.UUID) ([]*domain.FoundRecord, error) {
	var records []*domain.FoundRecord
	if err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("found_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountByParticipant returns how many codes a participant has found
func (r *foundRecordRepositoryImpl) CountByParticipant(ctx context.Context, participantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.FoundRecord{}).
		Where("participant_id = ?", participantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAll returns the total number of found records
func (r *foundRecordRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.FoundRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountsByParticipant returns found-code counts grouped by participant in a
// single query, for leaderboard assembly.
func (r *foundRecordRepositoryImpl) CountsByParticipant(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		ParticipantID uuid.UUID
		Total         int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.FoundRecord{}).
		Select("participant_id, count(*) as total").
		Group("participant_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ParticipantID] = row.Total
	}
	return counts, nil
}

// DeleteAll clears the ledger (game reset). Participants and codes stay.
func (r *foundRecordRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.FoundRecord{}).Error
}
