package models

import "fmt"

// Fixture is one precomputed match of a partnership design: two disjoint
// 2-player teams plus the players resting while it is on court. Player
// numbers are 1-based. Index is the fixture's stable position within its
// catalog list and is the basis of the score key mapping.
type Fixture struct {
	Index int    `json:"index"`
	Team1 [2]int `json:"team1"`
	Team2 [2]int `json:"team2"`
	Rest  []int  `json:"rest,omitempty"`
}

// Players returns the four scheduled players of the fixture.
func (f Fixture) Players() [4]int {
	return [4]int{f.Team1[0], f.Team1[1], f.Team2[0], f.Team2[1]}
}

// ScoreKey returns the stable key under which this fixture's score is stored.
// The mapping is 1:1 with the fixture index for the lifetime of a tournament.
func (f Fixture) ScoreKey() string {
	return FixtureScoreKey(f.Index)
}

func FixtureScoreKey(index int) string {
	return fmt.Sprintf("match_%d", index)
}

// ScheduledMatch is a fixture placed on a court within a timeslot.
type ScheduledMatch struct {
	FixtureIndex int    `json:"fixture_index"`
	Court        int    `json:"court"`
	Team1        [2]int `json:"team1"`
	Team2        [2]int `json:"team2"`
}

// Timeslot is a batch of matches played concurrently: no player appears in
// more than one match and the match count never exceeds the court count.
// Resting holds the sorted players not on court this round.
type Timeslot struct {
	Round   int              `json:"round"`
	Matches []ScheduledMatch `json:"matches"`
	Resting []int            `json:"resting"`
}

// FixtureSet is the result of a catalog lookup. CourtFallback reports that the
// requested court count had no dedicated fixture list and the list stored for
// EffectiveCourts (the maximum for this player count) was returned instead,
// which changes the effective games per player.
type FixtureSet struct {
	Fixtures        []Fixture `json:"fixtures"`
	GamesPerPlayer  int       `json:"games_per_player"`
	EffectiveCourts int       `json:"effective_courts"`
	CourtFallback   bool      `json:"court_fallback"`
}
