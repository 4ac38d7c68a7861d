package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error)
	FindByUsername(ctx context.Context, username string) (*domain.Participant, error)
	FindAll(ctx context.Context) ([]*domain.Participant, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// participantRepositoryImpl is the GORM implementation of ParticipantRepository
type participantRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new instance of ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepositoryImpl{db: db}
}

// Create inserts a new participant, translating a unique-constraint
// violation into ErrDuplicateUsername.
func (r *participantRepositoryImpl) Create(ctx context.Context, participant *domain.Participant) error {
	if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// FindByID finds a participant by its ID
func (r *participantRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	if err := r.db.WithContext(ctx).First(&participant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByUsername finds a participant by exact username (case-sensitive)
func (r *participantRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.Participant, error) {
	var participant domain.Participant
	if err := r.db.WithContext(ctx).First(&participant, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindAll returns every participant in registration order
func (r *participantRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// Count returns the number of registered participants
func (r *participantRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Participant{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAll removes every participant. Callers must clear found_records
// first; there is no cascade on the foreign key.
func (r *participantRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.Participant{}).Error
}
