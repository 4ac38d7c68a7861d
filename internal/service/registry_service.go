package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
	"egg-hunt-api/internal/dto"
	"egg-hunt-api/internal/metrics"
	"egg-hunt-api/internal/repository"
	"egg-hunt-api/internal/response"
)

// RegistryService defines the interface for participant identity logic
type RegistryService interface {
	Register(ctx context.Context, username string) (*dto.ParticipantResponse, error)
	Lookup(ctx context.Context, username string) (*dto.ParticipantResponse, error)
}

// registryServiceImpl is the implementation of RegistryService
type registryServiceImpl struct {
	participantRepo repository.ParticipantRepository
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewRegistryService creates a new instance of RegistryService
func NewRegistryService(participantRepo repository.ParticipantRepository, m *metrics.Metrics, logger *zap.Logger) RegistryService {
	return &registryServiceImpl{
		participantRepo: participantRepo,
		metrics:         m,
		logger:          logger,
	}
}

// Register creates a new participant. Uniqueness is enforced by the store's
// constraint, not by a lookup first, so two concurrent registrations of the
// same name resolve to exactly one participant.
func (s *registryServiceImpl) Register(ctx context.Context, username string) (*dto.ParticipantResponse, error) {
	username = domain.NormalizeUsername(username)
	if username == "" {
		return nil, response.NewValidationError("Username cannot be empty", "")
	}

	participant := &domain.Participant{Username: username}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, response.NewAppError(response.ErrCodeDuplicateUsername, "Username already taken", username)
		}
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to create participant", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementParticipantRegistered()
	}
	s.logger.Info("Participant registered",
		zap.String("participant_id", participant.ID.String()),
		zap.String("username", participant.Username),
	)

	return dto.ToParticipantResponse(participant), nil
}

// Lookup finds a participant by exact username
func (s *registryServiceImpl) Lookup(ctx context.Context, username string) (*dto.ParticipantResponse, error) {
	username = domain.NormalizeUsername(username)
	if username == "" {
		return nil, response.NewValidationError("Username cannot be empty", "")
	}

	participant, err := s.participantRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Participant not found")
		}
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to look up participant", err.Error())
	}

	return dto.ToParticipantResponse(participant), nil
}
