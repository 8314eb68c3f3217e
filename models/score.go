package models

// MatchScore is the submitted result of one fixture. A nil side means that
// side's score has not been entered yet; the fixture counts towards standings
// only when both sides are present and nonnegative.
type MatchScore struct {
	Team1 *int `json:"team1"`
	Team2 *int `json:"team2"`
}

// Played reports whether the score is complete and valid. Anything else,
// including a malformed entry normalized to nil at the storage boundary, is
// treated as "not yet played".
func (s MatchScore) Played() bool {
	return s.Team1 != nil && s.Team2 != nil && *s.Team1 >= 0 && *s.Team2 >= 0
}

// ScoreMap is a snapshot of all submitted scores of a tournament, keyed by
// fixture score key. It may be incomplete at any time; entries arrive in
// arbitrary order.
type ScoreMap map[string]MatchScore
