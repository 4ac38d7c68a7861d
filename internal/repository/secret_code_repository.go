package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
)

// SecretCodeRepository defines the interface for code catalog data access.
// Values passed to FindByCode and stored via Create/Update/Reseed must
// already be in canonical form (domain.NormalizeCode).
type SecretCodeRepository interface {
	Create(ctx context.Context, code *domain.SecretCode) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SecretCode, error)
	FindByCode(ctx context.Context, code string) (*domain.SecretCode, error)
	FindAll(ctx context.Context) ([]*domain.SecretCode, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, code *domain.SecretCode) error
	Reseed(ctx context.Context, values []string) ([]*domain.SecretCode, error)
}

// secretCodeRepositoryImpl is the GORM implementation of SecretCodeRepository
type secretCodeRepositoryImpl struct {
	db *gorm.DB
}

// NewSecretCodeRepository creates a new instance of SecretCodeRepository
func NewSecretCodeRepository(db *gorm.DB) SecretCodeRepository {
	return &secretCodeRepositoryImpl{db: db}
}

// Create inserts a new secret code
func (r *secretCodeRepositoryImpl) Create(ctx context.Context, code *domain.SecretCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// FindByID finds a secret code by its ID
func (r *secretCodeRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.SecretCode, error) {
	var code domain.SecretCode
	if err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// FindByCode finds a secret code by its canonical value
func (r *secretCodeRepositoryImpl) FindByCode(ctx context.Context, value string) (*domain.SecretCode, error) {
	var code domain.SecretCode
	if err := r.db.WithContext(ctx).First(&code, "code = ?", value).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// FindAll returns the whole catalog, oldest first
func (r *secretCodeRepositoryImpl) FindAll(ctx context.Context) ([]*domain.SecretCode, error) {
	var codes []*domain.SecretCode
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Count returns the catalog size
func (r *secretCodeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.SecretCode{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update replaces a code's value
func (r *secretCodeRepositoryImpl) Update(ctx context.Context, code *domain.SecretCode) error {
	return r.db.WithContext(ctx).
		Model(&domain.SecretCode{}).
		Where("id = ?", code.ID).
		Update("code", code.Code).Error
}

// Reseed atomically replaces the catalog with the given values. Found
// records reference codes, so they are cleared first inside the same
// transaction.
func (r *secretCodeRepositoryImpl) Reseed(ctx context.Context, values []string) ([]*domain.SecretCode, error) {
	codes := make([]*domain.SecretCode, 0, len(values))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.FoundRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&domain.SecretCode{}).Error; err != nil {
			return err
		}
		for _, value := range values {
			code := &domain.SecretCode{Code: value}
			if err := tx.Create(code).Error; err != nil {
				return err
			}
			codes = append(codes, code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return codes, nil
}
