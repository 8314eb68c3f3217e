package services

import (
	"context"
	"errors"
	"testing"

	"github.com/courtmix/americano-system/formats"
	"github.com/courtmix/americano-system/models"
)

type recordingBroadcaster struct {
	messages []broadcastCall
}

type broadcastCall struct {
	roomID  string
	message formats.WebSocketMessage
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	wsMessage, _ := message.(formats.WebSocketMessage)
	b.messages = append(b.messages, broadcastCall{roomID: roomID, message: wsMessage})
}

func newTestMatchService(t *testing.T) (MatchService, TournamentService, *fakeScoreRepo, *recordingBroadcaster) {
	t.Helper()
	tournamentRepo := newFakeTournamentRepo()
	scoreRepo := newFakeScoreRepo()
	registry := testRegistry(t)
	logger := testLogger()
	hub := &recordingBroadcaster{}
	matchSvc := NewMatchService(tournamentRepo, scoreRepo, registry, hub, logger)
	tournamentSvc := NewTournamentService(nil, tournamentRepo, scoreRepo, registry, logger)
	return matchSvc, tournamentSvc, scoreRepo, hub
}

func TestSubmitScore(t *testing.T) {
	matchSvc, tournamentSvc, scoreRepo, hub := newTestMatchService(t)
	tournament := createTestTournament(t, tournamentSvc, 8, 2)

	view, err := matchSvc.SubmitScore(context.Background(), tournament.ID, 3, ScoreInput{
		Team1: intPtr(11), Team2: intPtr(7),
	})
	if err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	if view.ScoreKey != "match_3" {
		t.Fatalf("score key = %q, want match_3", view.ScoreKey)
	}
	stored, ok := scoreRepo.scores[tournament.ID]["match_3"]
	if !ok {
		t.Fatal("score not persisted")
	}
	if *stored.Team1 != 11 || *stored.Team2 != 7 {
		t.Fatalf("stored score = %v/%v, want 11/7", stored.Team1, stored.Team2)
	}

	if len(hub.messages) != 2 {
		t.Fatalf("got %d broadcasts, want score update followed by standings", len(hub.messages))
	}
	wantRoom := "tournament_1"
	for _, call := range hub.messages {
		if call.roomID != wantRoom {
			t.Fatalf("broadcast to room %q, want %q", call.roomID, wantRoom)
		}
	}
	if hub.messages[0].message.Type != formats.EventScoreUpdated {
		t.Fatalf("first broadcast type = %q, want %q", hub.messages[0].message.Type, formats.EventScoreUpdated)
	}
	if hub.messages[1].message.Type != formats.EventStandingsUpdated {
		t.Fatalf("second broadcast type = %q, want %q", hub.messages[1].message.Type, formats.EventStandingsUpdated)
	}
	standings, ok := hub.messages[1].message.Payload.([]models.Standing)
	if !ok {
		t.Fatalf("standings payload has type %T", hub.messages[1].message.Payload)
	}
	if len(standings) != 8 {
		t.Fatalf("broadcast standings cover %d players, want 8", len(standings))
	}
}

func TestSubmitScorePartial(t *testing.T) {
	matchSvc, tournamentSvc, scoreRepo, _ := newTestMatchService(t)
	tournament := createTestTournament(t, tournamentSvc, 8, 2)

	if _, err := matchSvc.SubmitScore(context.Background(), tournament.ID, 0, ScoreInput{Team1: intPtr(6)}); err != nil {
		t.Fatalf("SubmitScore with one side: %v", err)
	}
	stored := scoreRepo.scores[tournament.ID]["match_0"]
	if stored.Team2 != nil {
		t.Fatalf("missing side should stay nil, got %d", *stored.Team2)
	}
	if stored.Played() {
		t.Fatal("a half-entered score must not count as played")
	}
}

func TestSubmitScoreOverwrite(t *testing.T) {
	matchSvc, tournamentSvc, scoreRepo, _ := newTestMatchService(t)
	tournament := createTestTournament(t, tournamentSvc, 8, 2)

	ctx := context.Background()
	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, 0, ScoreInput{Team1: intPtr(5), Team2: intPtr(5)}); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, 0, ScoreInput{Team1: intPtr(12), Team2: intPtr(9)}); err != nil {
		t.Fatalf("SubmitScore (second): %v", err)
	}
	stored := scoreRepo.scores[tournament.ID]["match_0"]
	if *stored.Team1 != 12 || *stored.Team2 != 9 {
		t.Fatalf("resubmission should overwrite, got %d/%d", *stored.Team1, *stored.Team2)
	}
}

func TestSubmitScoreRejections(t *testing.T) {
	matchSvc, tournamentSvc, _, _ := newTestMatchService(t)
	tournament := createTestTournament(t, tournamentSvc, 8, 2)

	ctx := context.Background()

	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, 0, ScoreInput{Team1: intPtr(-1), Team2: intPtr(5)}); !errors.Is(err, ErrScoreNegative) {
		t.Fatalf("negative score: error = %v, want ErrScoreNegative", err)
	}
	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, 999, ScoreInput{Team1: intPtr(1), Team2: intPtr(2)}); !errors.Is(err, ErrFixtureIndexOutOfRange) {
		t.Fatalf("index out of range: error = %v, want ErrFixtureIndexOutOfRange", err)
	}
	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, -1, ScoreInput{Team1: intPtr(1), Team2: intPtr(2)}); !errors.Is(err, ErrFixtureIndexOutOfRange) {
		t.Fatalf("negative index: error = %v, want ErrFixtureIndexOutOfRange", err)
	}
	if _, err := matchSvc.SubmitScore(ctx, 99, 0, ScoreInput{Team1: intPtr(1), Team2: intPtr(2)}); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("missing tournament: error = %v, want ErrTournamentNotFound", err)
	}

	if _, err := tournamentSvc.UpdateStatus(ctx, tournament.ID, models.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, 0, ScoreInput{Team1: intPtr(1), Team2: intPtr(2)}); !errors.Is(err, ErrTournamentNotActive) {
		t.Fatalf("completed tournament: error = %v, want ErrTournamentNotActive", err)
	}
}

func TestResetScore(t *testing.T) {
	matchSvc, tournamentSvc, scoreRepo, hub := newTestMatchService(t)
	tournament := createTestTournament(t, tournamentSvc, 8, 2)

	ctx := context.Background()
	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, 1, ScoreInput{Team1: intPtr(10), Team2: intPtr(3)}); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	hub.messages = nil

	if err := matchSvc.ResetScore(ctx, tournament.ID, 1); err != nil {
		t.Fatalf("ResetScore: %v", err)
	}
	if _, ok := scoreRepo.scores[tournament.ID]["match_1"]; ok {
		t.Fatal("score still stored after reset")
	}
	if len(hub.messages) != 2 {
		t.Fatalf("got %d broadcasts after reset, want 2", len(hub.messages))
	}

	// Resetting an already unplayed fixture succeeds.
	if err := matchSvc.ResetScore(ctx, tournament.ID, 1); err != nil {
		t.Fatalf("ResetScore on unplayed fixture: %v", err)
	}
	if err := matchSvc.ResetScore(ctx, tournament.ID, 999); !errors.Is(err, ErrFixtureIndexOutOfRange) {
		t.Fatalf("index out of range: error = %v, want ErrFixtureIndexOutOfRange", err)
	}
}

func TestListScores(t *testing.T) {
	matchSvc, tournamentSvc, _, _ := newTestMatchService(t)
	tournament := createTestTournament(t, tournamentSvc, 8, 2)

	ctx := context.Background()
	if _, err := matchSvc.SubmitScore(ctx, tournament.ID, 0, ScoreInput{Team1: intPtr(4), Team2: intPtr(11)}); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}

	scores, err := matchSvc.ListScores(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("ListScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	if _, ok := scores["match_0"]; !ok {
		t.Fatal("match_0 missing from score map")
	}

	if _, err := matchSvc.ListScores(ctx, 99); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("missing tournament: error = %v, want ErrTournamentNotFound", err)
	}
}
