package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
	"egg-hunt-api/internal/repository"
	"egg-hunt-api/internal/response"
)

func TestRegister_TrimsAndKeepsCase(t *testing.T) {
	var created *domain.Participant
	participantRepo := &MockParticipantRepository{
		CreateFunc: func(ctx context.Context, participant *domain.Participant) error {
			participant.ID = uuid.New()
			participant.CreatedAt = time.Now().UTC()
			created = participant
			return nil
		},
	}

	svc := NewRegistryService(participantRepo, nil, zap.NewNop())

	resp, err := svc.Register(context.Background(), "  Alice ")
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "Alice", created.Username)
	assert.Equal(t, "Alice", resp.Username)
	assert.Equal(t, created.ID, resp.ID)
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := NewRegistryService(&MockParticipantRepository{}, nil, zap.NewNop())

	_, err := svc.Register(context.Background(), "   ")
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	participantRepo := &MockParticipantRepository{
		CreateFunc: func(ctx context.Context, participant *domain.Participant) error {
			return repository.ErrDuplicateUsername
		},
	}

	svc := NewRegistryService(participantRepo, nil, zap.NewNop())

	_, err := svc.Register(context.Background(), "alice")
	assert.Equal(t, response.ErrCodeDuplicateUsername, appErrorCode(t, err))
}

func TestLookup_Found(t *testing.T) {
	participant := testParticipant("alice")
	participantRepo := &MockParticipantRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.Participant, error) {
			assert.Equal(t, "alice", username)
			return participant, nil
		},
	}

	svc := NewRegistryService(participantRepo, nil, zap.NewNop())

	resp, err := svc.Lookup(context.Background(), " alice ")
	require.NoError(t, err)
	assert.Equal(t, participant.ID, resp.ID)
}

func TestLookup_NotFound(t *testing.T) {
	participantRepo := &MockParticipantRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.Participant, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewRegistryService(participantRepo, nil, zap.NewNop())

	_, err := svc.Lookup(context.Background(), "nobody")
	assert.Equal(t, response.ErrCodeNotFound, appErrorCode(t, err))
}
