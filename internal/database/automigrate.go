package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models. The
// uniqueness constraints it creates (participants.username and
// found_records(participant_id, code_id)) are load-bearing: the game rules
// rely on them for race-safe duplicate detection.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Participant{},
		&domain.SecretCode{},
		&domain.FoundRecord{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate runs auto-migration per table, logging progress. For
// existing tables GORM only applies schema differences.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	models := []struct {
		model     interface{}
		tableName string
	}{
		{&domain.Participant{}, "participants"},
		{&domain.SecretCode{}, "secret_codes"},
		{&domain.FoundRecord{}, "found_records"},
	}

	for _, m := range models {
		tableExists := db.Migrator().HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	return nil
}
