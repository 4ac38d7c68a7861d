package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the hunt schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	// Every new connection to an in-memory SQLite is a separate database,
	// so pin the pool to a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Register callback to generate UUIDs for SQLite (since it doesn't support gen_random_uuid())
	db.Callback().Create().Before("gorm:create").Register("generate_uuid", func(db *gorm.DB) {
		if db.Statement.Schema != nil {
			for _, field := range db.Statement.Schema.PrimaryFields {
				if field.DataType == "uuid" {
					fieldValue := field.ReflectValueOf(db.Statement.Context, db.Statement.ReflectValue)
					if fieldValue.IsZero() {
						field.Set(db.Statement.Context, db.Statement.ReflectValue, uuid.New())
					}
				}
			}
		}
	})

	// Create tables manually for SQLite compatibility
	// SQLite doesn't support UUID type or gen_random_uuid()
	err = db.Exec(`
		CREATE TABLE participants (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err, "Failed to create participants table")

	err = db.Exec(`
		CREATE TABLE secret_codes (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err, "Failed to create secret_codes table")

	err = db.Exec(`
		CREATE TABLE found_records (
			id TEXT PRIMARY KEY,
			participant_id TEXT NOT NULL,
			code_id TEXT NOT NULL,
			found_at DATETIME NOT NULL,
			UNIQUE(participant_id, code_id)
		)
	`).Error
	require.NoError(t, err, "Failed to create found_records table")

	return db
}

func createParticipant(t *testing.T, db *gorm.DB, username string, at time.Time) *domain.Participant {
	participant := &domain.Participant{Username: username, CreatedAt: at}
	require.NoError(t, db.Create(participant).Error)
	return participant
}

func createCode(t *testing.T, db *gorm.DB, value string, at time.Time) *domain.SecretCode {
	code := &domain.SecretCode{Code: value, CreatedAt: at}
	require.NoError(t, db.Create(code).Error)
	return code
}

func TestParticipantRepository_Create_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Participant{Username: "alice"})
	require.NoError(t, err)

	err = repo.Create(ctx, &domain.Participant{Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// Username matching is exact, different case is a different participant
	err = repo.Create(ctx, &domain.Participant{Username: "Alice"})
	assert.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestParticipantRepository_FindByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	created := createParticipant(t, db, "bob", time.Now().UTC())

	found, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "bob", found.Username)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestParticipantRepository_FindAll_RegistrationOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	createParticipant(t, db, "third", base.Add(3*time.Minute))
	createParticipant(t, db, "first", base.Add(1*time.Minute))
	createParticipant(t, db, "second", base.Add(2*time.Minute))

	participants, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, participants, 3)
	assert.Equal(t, "first", participants[0].Username)
	assert.Equal(t, "second", participants[1].Username)
	assert.Equal(t, "third", participants[2].Username)
}

func TestParticipantRepository_DeleteAll_FreesUsernames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Participant{Username: "alice"}))
	require.NoError(t, repo.DeleteAll(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The username slot must be reusable after a full reset
	assert.NoError(t, repo.Create(ctx, &domain.Participant{Username: "alice"}))
}

func TestSecretCodeRepository_FindByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSecretCodeRepository(db)
	ctx := context.Background()

	created := createCode(t, db, "CODE1", time.Now().UTC())

	found, err := repo.FindByCode(ctx, "CODE1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// The repository expects canonical values; a raw lowercase lookup misses
	_, err = repo.FindByCode(ctx, "code1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSecretCodeRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSecretCodeRepository(db)
	ctx := context.Background()

	code := createCode(t, db, "OLD", time.Now().UTC())

	code.Code = "NEW"
	require.NoError(t, repo.Update(ctx, code))

	reloaded, err := repo.FindByID(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, "NEW", reloaded.Code)
}

func TestSecretCodeRepository_Reseed_ReplacesCatalogAndClearsLedger(t *testing.T) {
	db := setupTestDB(t)
	codeRepo := NewSecretCodeRepository(db)
	recordRepo := NewFoundRecordRepository(db)
	ctx := context.Background()

	participant := createParticipant(t, db, "alice", time.Now().UTC())
	old := createCode(t, db, "OLD1", time.Now().UTC())
	require.NoError(t, recordRepo.Create(ctx, &domain.FoundRecord{
		ParticipantID: participant.ID,
		CodeID:        old.ID,
		FoundAt:       time.Now().UTC(),
	}))

	codes, err := codeRepo.Reseed(ctx, []string{"NEW1", "NEW2", "NEW3"})
	require.NoError(t, err)
	assert.Len(t, codes, 3)

	all, err := codeRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, code := range all {
		assert.NotEqual(t, "OLD1", code.Code)
	}

	// Reseeding clears progress, the old records reference deleted codes
	remaining, err := recordRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)
}

func TestFoundRecordRepository_Create_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFoundRecordRepository(db)
	ctx := context.Background()

	participant := createParticipant(t, db, "alice", time.Now().UTC())
	code := createCode(t, db, "CODE1", time.Now().UTC())

	record := &domain.FoundRecord{
		ParticipantID: participant.ID,
		CodeID:        code.ID,
		FoundAt:       time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, record))

	dup := &domain.FoundRecord{
		ParticipantID: participant.ID,
		CodeID:        code.ID,
		FoundAt:       time.Now().UTC(),
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicatePair)

	exists, err := repo.Exists(ctx, participant.ID, code.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFoundRecordRepository_ConcurrentCredit_OneWinner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFoundRecordRepository(db)
	ctx := context.Background()

	participant := createParticipant(t, db, "alice", time.Now().UTC())
	code := createCode(t, db, "CODE1", time.Now().UTC())

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, &domain.FoundRecord{
				ParticipantID: participant.ID,
				CodeID:        code.ID,
				FoundAt:       time.Now().UTC(),
			})
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case err == ErrDuplicatePair:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Exactly one insert wins regardless of scheduling
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)

	count, err := repo.CountByParticipant(ctx, participant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFoundRecordRepository_CountsByParticipant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFoundRecordRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	alice := createParticipant(t, db, "alice", now)
	bob := createParticipant(t, db, "bob", now)
	idle := createParticipant(t, db, "idle", now)
	code1 := createCode(t, db, "CODE1", now)
	code2 := createCode(t, db, "CODE2", now)

	for _, pair := range []struct {
		participant uuid.UUID
		code        uuid.UUID
	}{
		{alice.ID, code1.ID},
		{alice.ID, code2.ID},
		{bob.ID, code1.ID},
	} {
		require.NoError(t, repo.Create(ctx, &domain.FoundRecord{
			ParticipantID: pair.participant,
			CodeID:        pair.code,
			FoundAt:       now,
		}))
	}

	counts, err := repo.CountsByParticipant(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[alice.ID])
	assert.Equal(t, int64(1), counts[bob.ID])

	// Participants with no records simply have no entry
	_, ok := counts[idle.ID]
	assert.False(t, ok)
}

func TestFoundRecordRepository_DeleteAll_KeepsParticipantsAndCodes(t *testing.T) {
	db := setupTestDB(t)
	recordRepo := NewFoundRecordRepository(db)
	participantRepo := NewParticipantRepository(db)
	codeRepo := NewSecretCodeRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	alice := createParticipant(t, db, "alice", now)
	code := createCode(t, db, "CODE1", now)
	require.NoError(t, recordRepo.Create(ctx, &domain.FoundRecord{
		ParticipantID: alice.ID,
		CodeID:        code.ID,
		FoundAt:       now,
	}))

	require.NoError(t, recordRepo.DeleteAll(ctx))

	records, err := recordRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), records)

	participants, err := participantRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), participants)

	codes, err := codeRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), codes)

	// The pair can be credited again after a reset
	assert.NoError(t, recordRepo.Create(ctx, &domain.FoundRecord{
		ParticipantID: alice.ID,
		CodeID:        code.ID,
		FoundAt:       time.Now().UTC(),
	}))
}
