package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"egg-hunt-api/internal/domain"
	"egg-hunt-api/internal/events"
)

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	CreateFunc         func(ctx context.Context, participant *domain.Participant) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Participant, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.Participant, error)
	FindAllFunc        func(ctx context.Context) ([]*domain.Participant, error)
	CountFunc          func(ctx context.Context) (int64, error)
	DeleteAllFunc      func(ctx context.Context) error
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participant)
	}
	return nil
}

func (m *MockParticipantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockParticipantRepository) FindByUsername(ctx context.Context, username string) (*domain.Participant, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockParticipantRepository) FindAll(ctx context.Context) ([]*domain.Participant, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockParticipantRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockParticipantRepository) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}

// MockSecretCodeRepository is a mock implementation of SecretCodeRepository
type MockSecretCodeRepository struct {
	CreateFunc     func(ctx context.Context, code *domain.SecretCode) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.SecretCode, error)
	FindByCodeFunc func(ctx context.Context, code string) (*domain.SecretCode, error)
	FindAllFunc    func(ctx context.Context) ([]*domain.SecretCode, error)
	CountFunc      func(ctx context.Context) (int64, error)
	UpdateFunc     func(ctx context.Context, code *domain.SecretCode) error
	ReseedFunc     func(ctx context.Context, values []string) ([]*domain.SecretCode, error)
}

func (m *MockSecretCodeRepository) Create(ctx context.Context, code *domain.SecretCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

func (m *MockSecretCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SecretCode, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSecretCodeRepository) FindByCode(ctx context.Context, code string) (*domain.SecretCode, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockSecretCodeRepository) FindAll(ctx context.Context) ([]*domain.SecretCode, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockSecretCodeRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockSecretCodeRepository) Update(ctx context.Context, code *domain.SecretCode) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, code)
	}
	return nil
}

func (m *MockSecretCodeRepository) Reseed(ctx context.Context, values []string) ([]*domain.SecretCode, error) {
	if m.ReseedFunc != nil {
		return m.ReseedFunc(ctx, values)
	}
	return nil, nil
}

// MockFoundRecordRepository is a mock implementation of FoundRecordRepository
type MockFoundRecordRepository struct {
	CreateFunc              func(ctx context.Context, record *domain.FoundRecord) error
	ExistsFunc              func(ctx context.Context, participantID, codeID uuid.UUID) (bool, error)
	FindByParticipantFunc   func(ctx context.Context, participantID uuid.UUID) ([]*domain.FoundRecord, error)
	CountByParticipantFunc  func(ctx context.Context, participantID uuid.UUID) (int64, error)
	CountAllFunc            func(ctx context.Context) (int64, error)
	CountsByParticipantFunc func(ctx context.Context) (map[uuid.UUID]int64, error)
	DeleteAllFunc           func(ctx context.Context) error
}

func (m *MockFoundRecordRepository) Create(ctx context.Context, record *domain.FoundRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *MockFoundRecordRepository) Exists(ctx context.Context, participantID, codeID uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, participantID, codeID)
	}
	return false, nil
}

func (m *MockFoundRecordRepository) FindByParticipant(ctx context.Context, participantID uuid.UUID) ([]*domain.FoundRecord, error) {
	if m.FindByParticipantFunc != nil {
		return m.FindByParticipantFunc(ctx, participantID)
	}
	return nil, nil
}

func (m *MockFoundRecordRepository) CountByParticipant(ctx context.Context, participantID uuid.UUID) (int64, error) {
	if m.CountByParticipantFunc != nil {
		return m.CountByParticipantFunc(ctx, participantID)
	}
	return 0, nil
}

func (m *MockFoundRecordRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

func (m *MockFoundRecordRepository) CountsByParticipant(ctx context.Context) (map[uuid.UUID]int64, error) {
	if m.CountsByParticipantFunc != nil {
		return m.CountsByParticipantFunc(ctx)
	}
	return map[uuid.UUID]int64{}, nil
}

func (m *MockFoundRecordRepository) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}

// RecordingPublisher collects published change events for assertions
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []events.ChangeEvent
}

func (p *RecordingPublisher) Publish(ctx context.Context, event events.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

func (p *RecordingPublisher) Published() []events.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.ChangeEvent, len(p.Events))
	copy(out, p.Events)
	return out
}
