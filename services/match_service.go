package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/courtmix/americano-system/formats"
	"github.com/courtmix/americano-system/models"
	"github.com/courtmix/americano-system/repositories"
)

// Broadcaster pushes live updates to a tournament's websocket room.
// Satisfied by *formats.Hub.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// ScoreInput carries a submitted score. A nil side marks that side as not
// entered yet, so a partially filled scoreboard can be saved without the
// fixture counting towards standings.
type ScoreInput struct {
	Team1 *int `json:"team1"`
	Team2 *int `json:"team2"`
}

// ScoreView is the stored score of one fixture as returned to clients.
type ScoreView struct {
	TournamentID int              `json:"tournament_id"`
	FixtureIndex int              `json:"fixture_index"`
	ScoreKey     string           `json:"score_key"`
	Score        models.MatchScore `json:"score"`
}

type MatchService interface {
	SubmitScore(ctx context.Context, tournamentID, fixtureIndex int, input ScoreInput) (*ScoreView, error)
	ResetScore(ctx context.Context, tournamentID, fixtureIndex int) error
	ListScores(ctx context.Context, tournamentID int) (models.ScoreMap, error)
}

type matchService struct {
	tournamentRepo repositories.TournamentRepository
	scoreRepo      repositories.ScoreRepository
	registry       *formats.Registry
	hub            Broadcaster
	logger         *slog.Logger
}

func NewMatchService(
	tournamentRepo repositories.TournamentRepository,
	scoreRepo repositories.ScoreRepository,
	registry *formats.Registry,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tournamentRepo: tournamentRepo,
		scoreRepo:      scoreRepo,
		registry:       registry,
		hub:            hub,
		logger:         logger,
	}
}

// SubmitScore stores the result of one fixture and broadcasts the refreshed
// standings to the tournament's room. Scores may arrive in any order and may
// overwrite earlier entries; the standings are always recomputed from the
// full snapshot afterwards.
func (s *matchService) SubmitScore(ctx context.Context, tournamentID, fixtureIndex int, input ScoreInput) (*ScoreView, error) {
	if (input.Team1 != nil && *input.Team1 < 0) || (input.Team2 != nil && *input.Team2 < 0) {
		return nil, ErrScoreNegative
	}

	tournament, format, set, err := s.loadFixtures(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: status is %s", ErrTournamentNotActive, tournament.Status)
	}
	if fixtureIndex < 0 || fixtureIndex >= len(set.Fixtures) {
		return nil, fmt.Errorf("%w: index %d of %d fixtures", ErrFixtureIndexOutOfRange, fixtureIndex, len(set.Fixtures))
	}

	key := models.FixtureScoreKey(fixtureIndex)
	score := models.MatchScore{Team1: input.Team1, Team2: input.Team2}
	if err := s.scoreRepo.Upsert(ctx, tournamentID, key, score); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "score submitted",
		slog.Int("tournament_id", tournamentID),
		slog.Int("fixture_index", fixtureIndex),
	)
	s.broadcastUpdate(ctx, tournament, format, fixtureIndex, score)

	return &ScoreView{
		TournamentID: tournamentID,
		FixtureIndex: fixtureIndex,
		ScoreKey:     key,
		Score:        score,
	}, nil
}

// ResetScore marks a fixture as not played again.
func (s *matchService) ResetScore(ctx context.Context, tournamentID, fixtureIndex int) error {
	tournament, format, set, err := s.loadFixtures(ctx, tournamentID)
	if err != nil {
		return err
	}
	if fixtureIndex < 0 || fixtureIndex >= len(set.Fixtures) {
		return fmt.Errorf("%w: index %d of %d fixtures", ErrFixtureIndexOutOfRange, fixtureIndex, len(set.Fixtures))
	}

	err = s.scoreRepo.Delete(ctx, tournamentID, models.FixtureScoreKey(fixtureIndex))
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return nil // already unplayed
		}
		return err
	}

	s.broadcastUpdate(ctx, tournament, format, fixtureIndex, models.MatchScore{})
	return nil
}

func (s *matchService) ListScores(ctx context.Context, tournamentID int) (models.ScoreMap, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.scoreRepo.MapByTournament(ctx, tournamentID)
}

func (s *matchService) getTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *matchService) loadFixtures(ctx context.Context, tournamentID int) (*models.Tournament, formats.Format, *models.FixtureSet, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, nil, err
	}
	format, err := s.registry.Get(tournament.Format)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrFormatNotFound, tournament.Format)
	}
	set, err := format.GetFixtures(tournament.PlayerCount, tournament.CourtCount)
	if err != nil {
		return nil, nil, nil, err
	}
	return tournament, format, set, nil
}

func (s *matchService) broadcastUpdate(ctx context.Context, tournament *models.Tournament, format formats.Format, fixtureIndex int, score models.MatchScore) {
	if s.hub == nil {
		return
	}
	room := "tournament_" + strconv.Itoa(tournament.ID)
	s.hub.BroadcastToRoom(room, formats.WebSocketMessage{
		Type:   formats.EventScoreUpdated,
		RoomID: room,
		Payload: map[string]interface{}{
			"fixture_index": fixtureIndex,
			"score":         score,
		},
	})

	// Recompute from the fresh snapshot so every connected scoreboard sees
	// the same ranking.
	scores, err := s.scoreRepo.MapByTournament(ctx, tournament.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load scores for standings broadcast",
			slog.Int("tournament_id", tournament.ID), slog.Any("error", err))
		return
	}
	standings, err := format.CalculateStandings(tournament.PlayerNames, scores, tournament.PlayerCount, tournament.CourtCount)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to recompute standings for broadcast",
			slog.Int("tournament_id", tournament.ID), slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom(room, formats.WebSocketMessage{
		Type:    formats.EventStandingsUpdated,
		RoomID:  room,
		Payload: standings,
	})
}
