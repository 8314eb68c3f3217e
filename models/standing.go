package models

// PlayerStat accumulates one player's results over all completed fixtures.
type PlayerStat struct {
	Player        int `json:"player"`
	GamesPlayed   int `json:"games_played"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Draws         int `json:"draws"`
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`
	TotalScore    int `json:"total_score"`
}

// Standing is one ranked leaderboard row. TotalPoints is the primary ranking
// key; PointsDiff and Wins break ties, and remaining ties keep original
// player order.
type Standing struct {
	Rank          int    `json:"rank"`
	Player        int    `json:"player"`
	Name          string `json:"name"`
	GamesPlayed   int    `json:"games_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Draws         int    `json:"draws"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	PointsDiff    int    `json:"points_diff"`
	TotalPoints   int    `json:"total_points"`
}

// Progress summarizes how far a tournament has advanced.
type Progress struct {
	CompletedMatches int `json:"completed_matches"`
	TotalMatches     int `json:"total_matches"`
	TotalTimeslots   int `json:"total_timeslots"`
}
