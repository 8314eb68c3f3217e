package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/courtmix/americano-system/formats"
	"github.com/courtmix/americano-system/models"
	"github.com/courtmix/americano-system/repositories"
	"golang.org/x/sync/errgroup"
)

const DefaultFormat = "americano"

type CreateTournamentInput struct {
	Name        string   `json:"name"`
	Format      string   `json:"format"`
	PlayerCount int      `json:"player_count"`
	CourtCount  int      `json:"court_count"`
	PlayerNames []string `json:"player_names"`
}

// Schedule is the generated round plan of a tournament. EffectiveCourts and
// CourtFallback mirror the catalog lookup: when the requested court count had
// no dedicated fixture list, the max-court list was used and the caller must
// see that.
type Schedule struct {
	TournamentID    int               `json:"tournament_id"`
	Format          string            `json:"format"`
	Timeslots       []models.Timeslot `json:"timeslots"`
	GamesPerPlayer  int               `json:"games_per_player"`
	EffectiveCourts int               `json:"effective_courts"`
	CourtFallback   bool              `json:"court_fallback"`
}

// StandingsView pairs the ranked leaderboard with progress counters derived
// from the same score snapshot.
type StandingsView struct {
	TournamentID int               `json:"tournament_id"`
	Standings    []models.Standing `json:"standings"`
	Progress     models.Progress   `json:"progress"`
}

// FormatInfo describes one registered format for discovery endpoints.
type FormatInfo struct {
	Name       string `json:"name"`
	MinPlayers int    `json:"min_players"`
	MaxPlayers int    `json:"max_players"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error
	GetSchedule(ctx context.Context, id int) (*Schedule, error)
	GetStandings(ctx context.Context, id int) (*StandingsView, error)
	GetPartnershipMatrix(ctx context.Context, id int) ([][]int, error)
	ValidateConfiguration(formatName string, playerCount, courtCount int) (models.ValidationResult, error)
	Formats() []FormatInfo
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	scoreRepo      repositories.ScoreRepository
	registry       *formats.Registry
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	scoreRepo repositories.ScoreRepository,
	registry *formats.Registry,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		scoreRepo:      scoreRepo,
		registry:       registry,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	formatName := input.Format
	if formatName == "" {
		formatName = DefaultFormat
	}
	format, err := s.registry.Get(formatName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotFound, formatName)
	}

	if result := format.ValidateConfiguration(input.PlayerCount, input.CourtCount); !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, result.Error)
	}
	if len(input.PlayerNames) > input.PlayerCount {
		return nil, fmt.Errorf("%w: %d names for %d players", ErrTooManyPlayerNames, len(input.PlayerNames), input.PlayerCount)
	}

	names := make([]string, len(input.PlayerNames))
	for i, n := range input.PlayerNames {
		names[i] = strings.TrimSpace(n)
	}

	tournament := &models.Tournament{
		Name:        name,
		Format:      format.Name(),
		PlayerCount: input.PlayerCount,
		CourtCount:  input.CourtCount,
		PlayerNames: names,
		Status:      models.StatusActive,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.Int("id", tournament.ID),
		slog.String("format", tournament.Format),
		slog.Int("players", tournament.PlayerCount),
		slog.Int("courts", tournament.CourtCount),
	)
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error) {
	switch status {
	case models.StatusActive, models.StatusCompleted, models.StatusCanceled:
	default:
		return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidStatus, status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a tournament and its scores atomically.
func (s *tournamentService) Delete(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := s.scoreRepo.DeleteByTournament(ctx, tx, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, tx, id); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tournament delete: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament deleted", slog.Int("id", id))
	return nil
}

func (s *tournamentService) GetSchedule(ctx context.Context, id int) (*Schedule, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	format, err := s.registry.Get(tournament.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotFound, tournament.Format)
	}

	set, err := format.GetFixtures(tournament.PlayerCount, tournament.CourtCount)
	if err != nil {
		return nil, err
	}
	timeslots, err := format.GenerateRounds(tournament.PlayerCount, tournament.CourtCount)
	if err != nil {
		return nil, err
	}
	if set.CourtFallback {
		s.logger.WarnContext(ctx, "no fixture list for requested court count, using max-court list",
			slog.Int("tournament_id", id),
			slog.Int("requested_courts", tournament.CourtCount),
			slog.Int("effective_courts", set.EffectiveCourts),
		)
	}

	return &Schedule{
		TournamentID:    tournament.ID,
		Format:          tournament.Format,
		Timeslots:       timeslots,
		GamesPerPlayer:  set.GamesPerPlayer,
		EffectiveCourts: set.EffectiveCourts,
		CourtFallback:   set.CourtFallback,
	}, nil
}

// GetStandings loads the tournament and the current score snapshot
// concurrently, then recomputes the leaderboard in full. Standings are never
// updated incrementally; an in-progress tournament has incomplete scores at
// virtually all times and this always reflects the latest snapshot.
func (s *tournamentService) GetStandings(ctx context.Context, id int) (*StandingsView, error) {
	var (
		tournament *models.Tournament
		scores     models.ScoreMap
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.GetByID(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = s.scoreRepo.MapByTournament(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	format, err := s.registry.Get(tournament.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotFound, tournament.Format)
	}
	standings, err := format.CalculateStandings(tournament.PlayerNames, scores, tournament.PlayerCount, tournament.CourtCount)
	if err != nil {
		return nil, err
	}
	progress, err := format.Progress(scores, tournament.PlayerCount, tournament.CourtCount)
	if err != nil {
		return nil, err
	}

	return &StandingsView{
		TournamentID: tournament.ID,
		Standings:    standings,
		Progress:     progress,
	}, nil
}

func (s *tournamentService) GetPartnershipMatrix(ctx context.Context, id int) ([][]int, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	format, err := s.registry.Get(tournament.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotFound, tournament.Format)
	}
	return format.PartnershipMatrix(tournament.PlayerCount, tournament.CourtCount)
}

func (s *tournamentService) ValidateConfiguration(formatName string, playerCount, courtCount int) (models.ValidationResult, error) {
	if formatName == "" {
		formatName = DefaultFormat
	}
	format, err := s.registry.Get(formatName)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("%w: %s", ErrFormatNotFound, formatName)
	}
	return format.ValidateConfiguration(playerCount, courtCount), nil
}

func (s *tournamentService) Formats() []FormatInfo {
	all := s.registry.All()
	infos := make([]FormatInfo, 0, len(all))
	for _, f := range all {
		min, max := f.PlayerRange()
		infos = append(infos, FormatInfo{Name: f.Name(), MinPlayers: min, MaxPlayers: max})
	}
	return infos
}
