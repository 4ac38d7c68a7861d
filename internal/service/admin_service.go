package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"egg-hunt-api/internal/config"
	"egg-hunt-api/internal/domain"
	"egg-hunt-api/internal/dto"
	"egg-hunt-api/internal/events"
	"egg-hunt-api/internal/repository"
	"egg-hunt-api/internal/response"
)

// DefaultSeedCodes is the catalog installed by Seed when no explicit list
// is given.
var DefaultSeedCodes = []string{
	"CODE1", "CODE2", "CODE3", "CODE4", "CODE5",
	"CODE6", "CODE7", "CODE8", "CODE9", "CODE10",
}

// AdminService defines the interface for privileged game management
type AdminService interface {
	Login(ctx context.Context, password string) (*dto.AdminLoginResponse, error)
	ListCodes(ctx context.Context) ([]dto.SecretCodeResponse, error)
	UpdateCode(ctx context.Context, req *dto.UpdateCodeRequest) (*dto.SecretCodeResponse, error)
	Seed(ctx context.Context, values []string) ([]dto.SecretCodeResponse, error)
	ResetGame(ctx context.Context) error
	ResetAll(ctx context.Context) error
}

// adminServiceImpl is the implementation of AdminService
type adminServiceImpl struct {
	participantRepo repository.ParticipantRepository
	codeRepo        repository.SecretCodeRepository
	recordRepo      repository.FoundRecordRepository
	publisher       events.Publisher
	adminCfg        config.AdminConfig
	logger          *zap.Logger
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(
	participantRepo repository.ParticipantRepository,
	codeRepo repository.SecretCodeRepository,
	recordRepo repository.FoundRecordRepository,
	publisher events.Publisher,
	adminCfg config.AdminConfig,
	logger *zap.Logger,
) AdminService {
	return &adminServiceImpl{
		participantRepo: participantRepo,
		codeRepo:        codeRepo,
		recordRepo:      recordRepo,
		publisher:       publisher,
		adminCfg:        adminCfg,
		logger:          logger,
	}
}

// Login checks the admin password and issues a short-lived HS256 session
// token. Admin operations are rejected outright when no password is
// configured rather than running open.
func (s *adminServiceImpl) Login(ctx context.Context, password string) (*dto.AdminLoginResponse, error) {
	if s.adminCfg.Password == "" || s.adminCfg.Secret == "" {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Admin access is not configured", "")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminCfg.Password)) != 1 {
		s.logger.Warn("Rejected admin login attempt")
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid admin password", "")
	}

	expiresAt := time.Now().Add(s.adminCfg.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(s.adminCfg.Secret))
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue admin token", err.Error())
	}

	return &dto.AdminLoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ListCodes returns the full catalog including values, oldest first
func (s *adminServiceImpl) ListCodes(ctx context.Context) ([]dto.SecretCodeResponse, error) {
	codes, err := s.codeRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to fetch codes", err.Error())
	}
	return dto.ToSecretCodeResponses(codes), nil
}

// UpdateCode replaces one catalog entry's value, normalized exactly like a
// submission so the edited code stays findable.
func (s *adminServiceImpl) UpdateCode(ctx context.Context, req *dto.UpdateCodeRequest) (*dto.SecretCodeResponse, error) {
	normalized := domain.NormalizeCode(req.Code)
	if normalized == "" {
		return nil, response.NewValidationError("Code cannot be empty", "")
	}

	code, err := s.codeRepo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Code not found")
		}
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to look up code", err.Error())
	}

	code.Code = normalized
	if err := s.codeRepo.Update(ctx, code); err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to update code", err.Error())
	}

	s.publisher.Publish(ctx, events.ChangeEvent{
		Table:  events.TableSecretCodes,
		Action: events.ActionUpdate,
		At:     time.Now().UTC(),
	})

	s.logger.Info("Secret code updated",
		zap.String("code_id", code.ID.String()),
		zap.String("code", code.Code),
	)

	resp := dto.ToSecretCodeResponse(code)
	return &resp, nil
}

// Seed replaces the whole catalog. Clearing the old catalog also clears the
// ledger (found records reference codes), so a reseed starts a fresh round.
func (s *adminServiceImpl) Seed(ctx context.Context, values []string) ([]dto.SecretCodeResponse, error) {
	if len(values) == 0 {
		values = DefaultSeedCodes
	}

	normalized := make([]string, 0, len(values))
	for _, value := range values {
		v := domain.NormalizeCode(value)
		if v == "" {
			return nil, response.NewValidationError("Code cannot be empty", "")
		}
		normalized = append(normalized, v)
	}

	codes, err := s.codeRepo.Reseed(ctx, normalized)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to reseed codes", err.Error())
	}

	now := time.Now().UTC()
	s.publisher.Publish(ctx, events.ChangeEvent{Table: events.TableFoundRecords, Action: events.ActionDelete, At: now})
	s.publisher.Publish(ctx, events.ChangeEvent{Table: events.TableSecretCodes, Action: events.ActionInsert, At: now})

	s.logger.Info("Catalog reseeded", zap.Int("codes", len(codes)))

	return dto.ToSecretCodeResponses(codes), nil
}

// ResetGame wipes every found record. Participants and codes stay.
func (s *adminServiceImpl) ResetGame(ctx context.Context) error {
	if err := s.recordRepo.DeleteAll(ctx); err != nil {
		return response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to reset game", err.Error())
	}

	s.publisher.Publish(ctx, events.ChangeEvent{
		Table:  events.TableFoundRecords,
		Action: events.ActionDelete,
		At:     time.Now().UTC(),
	})

	s.logger.Info("Game reset: all found records cleared")
	return nil
}

// ResetAll wipes found records and then participants, in that order: the
// ledger references participants and there is no cascade to lean on.
func (s *adminServiceImpl) ResetAll(ctx context.Context) error {
	if err := s.recordRepo.DeleteAll(ctx); err != nil {
		return response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to clear found records", err.Error())
	}
	if err := s.participantRepo.DeleteAll(ctx); err != nil {
		return response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to clear participants", err.Error())
	}

	s.publisher.Publish(ctx, events.ChangeEvent{
		Table:  events.TableFoundRecords,
		Action: events.ActionDelete,
		At:     time.Now().UTC(),
	})

	s.logger.Info("Full reset: found records and participants cleared")
	return nil
}
