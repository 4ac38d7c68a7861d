package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"egg-hunt-api/internal/domain"
	"egg-hunt-api/internal/dto"
	"egg-hunt-api/internal/events"
	"egg-hunt-api/internal/metrics"
	"egg-hunt-api/internal/repository"
	"egg-hunt-api/internal/response"
)

// GameService defines the interface for the game rules: validating
// submissions, recording credit and deriving standings.
type GameService interface {
	SubmitCode(ctx context.Context, req *dto.SubmitCodeRequest) (*dto.SubmitCodeResponse, error)
	Progress(ctx context.Context, participantID uuid.UUID) (*dto.ProgressResponse, error)
	Leaderboard(ctx context.Context) (*dto.LeaderboardResponse, error)
}

// gameServiceImpl is the implementation of GameService
type gameServiceImpl struct {
	participantRepo repository.ParticipantRepository
	codeRepo        repository.SecretCodeRepository
	recordRepo      repository.FoundRecordRepository
	publisher       events.Publisher
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewGameService creates a new instance of GameService
func NewGameService(
	participantRepo repository.ParticipantRepository,
	codeRepo repository.SecretCodeRepository,
	recordRepo repository.FoundRecordRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) GameService {
	return &gameServiceImpl{
		participantRepo: participantRepo,
		codeRepo:        codeRepo,
		recordRepo:      recordRepo,
		publisher:       publisher,
		metrics:         m,
		logger:          logger,
	}
}

// SubmitCode runs a submission through normalize, validate, credit check and
// record. The ledger insert is the only authoritative duplicate check: the
// Exists pre-read just gives a friendlier fast path, and a constraint
// violation on insert is reported as AlreadyFound, never as double credit.
func (s *gameServiceImpl) SubmitCode(ctx context.Context, req *dto.SubmitCodeRequest) (*dto.SubmitCodeResponse, error) {
	normalized := domain.NormalizeCode(req.Code)
	if normalized == "" {
		s.recordSubmission("invalid_input")
		return nil, response.NewValidationError("Code cannot be empty", "")
	}

	participant, err := s.participantRepo.FindByID(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordSubmission("unknown_participant")
			return nil, response.NewNotFoundError("Participant not found")
		}
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to look up participant", err.Error())
	}

	code, err := s.codeRepo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordSubmission("invalid_code")
			return nil, response.NewAppError(response.ErrCodeInvalidCode, "Invalid code", normalized)
		}
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to look up code", err.Error())
	}

	exists, err := s.recordRepo.Exists(ctx, participant.ID, code.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to check progress", err.Error())
	}
	if exists {
		s.recordSubmission("already_found")
		return nil, response.NewAppError(response.ErrCodeAlreadyFound, "Code already found", "")
	}

	record := &domain.FoundRecord{
		ParticipantID: participant.ID,
		CodeID:        code.ID,
		FoundAt:       time.Now().UTC(),
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicatePair) {
			// Lost the race against a concurrent submission of the same code.
			s.recordSubmission("already_found")
			return nil, response.NewAppError(response.ErrCodeAlreadyFound, "Code already found", "")
		}
		s.recordSubmission("recording_failed")
		return nil, response.NewAppError(response.ErrCodeRecordingFailed, "Failed to record code", err.Error())
	}

	s.recordSubmission("accepted")
	s.publisher.Publish(ctx, events.ChangeEvent{
		Table:  events.TableFoundRecords,
		Action: events.ActionInsert,
		At:     record.FoundAt,
	})

	standing, err := s.standingFor(ctx, participant)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Code submission accepted",
		zap.String("participant_id", participant.ID.String()),
		zap.String("username", participant.Username),
		zap.String("code", code.Code),
		zap.Int("codes_found", standing.CodesFound),
		zap.Int("total_codes", standing.TotalCodes),
	)

	return &dto.SubmitCodeResponse{
		Code:     code.Code,
		FoundAt:  record.FoundAt,
		Standing: dto.ToStandingResponse(standing),
		Winner:   standing.IsComplete(),
	}, nil
}

// Progress returns the participant's found code values in find order plus
// their current standing.
func (s *gameServiceImpl) Progress(ctx context.Context, participantID uuid.UUID) (*dto.ProgressResponse, error) {
	participant, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Participant not found")
		}
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to look up participant", err.Error())
	}

	records, err := s.recordRepo.FindByParticipant(ctx, participant.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to fetch progress", err.Error())
	}

	totalCodes, err := s.codeRepo.Count(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to count codes", err.Error())
	}

	foundCodes := make([]string, 0, len(records))
	for _, record := range records {
		code, err := s.codeRepo.FindByID(ctx, record.CodeID)
		if err != nil {
			// Catalog entry deleted since the record was written; the
			// count still reflects the current catalog.
			continue
		}
		foundCodes = append(foundCodes, code.Code)
	}

	return &dto.ProgressResponse{
		FoundCodes: foundCodes,
		Standing: dto.ToStandingResponse(domain.Standing{
			ParticipantID: participant.ID,
			Username:      participant.Username,
			CodesFound:    len(records),
			TotalCodes:    int(totalCodes),
		}),
	}, nil
}

// Leaderboard derives every participant's standing. Sorted by codes found
// descending; ties break by registration time ascending, then username, so
// the order is deterministic.
func (s *gameServiceImpl) Leaderboard(ctx context.Context) (*dto.LeaderboardResponse, error) {
	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to fetch participants", err.Error())
	}

	counts, err := s.recordRepo.CountsByParticipant(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to fetch progress", err.Error())
	}

	totalCodes, err := s.codeRepo.Count(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to count codes", err.Error())
	}

	standings := BuildStandings(participants, counts, int(totalCodes))

	resp := &dto.LeaderboardResponse{
		Standings:  dto.ToStandingResponses(standings),
		TotalCodes: int(totalCodes),
	}

	if winner, ok := Winner(standings); ok {
		w := dto.ToStandingResponse(winner)
		resp.Winner = &w
	}

	return resp, nil
}

func (s *gameServiceImpl) standingFor(ctx context.Context, participant *domain.Participant) (domain.Standing, error) {
	codesFound, err := s.recordRepo.CountByParticipant(ctx, participant.ID)
	if err != nil {
		return domain.Standing{}, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to count progress", err.Error())
	}

	totalCodes, err := s.codeRepo.Count(ctx)
	if err != nil {
		return domain.Standing{}, response.NewAppError(response.ErrCodeStoreUnavailable, "Failed to count codes", err.Error())
	}

	return domain.Standing{
		ParticipantID: participant.ID,
		Username:      participant.Username,
		CodesFound:    int(codesFound),
		TotalCodes:    int(totalCodes),
	}, nil
}

func (s *gameServiceImpl) recordSubmission(result string) {
	if s.metrics != nil {
		s.metrics.IncrementSubmission(result)
	}
}

// BuildStandings assembles sorted standings from participants in
// registration order and their found-code counts.
func BuildStandings(participants []*domain.Participant, counts map[uuid.UUID]int64, totalCodes int) []domain.Standing {
	standings := make([]domain.Standing, 0, len(participants))
	for _, p := range participants {
		standings = append(standings, domain.Standing{
			ParticipantID: p.ID,
			Username:      p.Username,
			CodesFound:    int(counts[p.ID]),
			TotalCodes:    totalCodes,
		})
	}

	order := make(map[uuid.UUID]time.Time, len(participants))
	for _, p := range participants {
		order[p.ID] = p.CreatedAt
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].CodesFound != standings[j].CodesFound {
			return standings[i].CodesFound > standings[j].CodesFound
		}
		ti, tj := order[standings[i].ParticipantID], order[standings[j].ParticipantID]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return standings[i].Username < standings[j].Username
	})

	return standings
}

// Winner returns the first complete standing, if any. There is no persisted
// winner and no game-over latch: the winner is re-derived on every ledger
// change, and several participants may be complete at once.
func Winner(standings []domain.Standing) (domain.Standing, bool) {
	for _, s := range standings {
		if s.IsComplete() {
			return s, true
		}
	}
	return domain.Standing{}, false
}
