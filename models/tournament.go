package models

import (
	"fmt"
	"time"
)

// TournamentStatus represents the tournament lifecycle states, matching the
// ENUM in the database.
type TournamentStatus string

const (
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
	StatusCanceled  TournamentStatus = "canceled"
)

// Tournament is one running or finished event. PlayerCount and CourtCount are
// fixed at creation; the fixture design for that pair comes from the format's
// catalog and never changes afterwards.
type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Format      string           `json:"format" db:"format"`
	PlayerCount int              `json:"player_count" db:"player_count"`
	CourtCount  int              `json:"court_count" db:"court_count"`
	PlayerNames []string         `json:"player_names" db:"player_names"`
	Status      TournamentStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// PlayerName returns the display name for a 1-based player number, falling
// back to a positional label when no name was entered.
func (t *Tournament) PlayerName(player int) string {
	if player >= 1 && player <= len(t.PlayerNames) && t.PlayerNames[player-1] != "" {
		return t.PlayerNames[player-1]
	}
	return fmt.Sprintf("Player %d", player)
}
