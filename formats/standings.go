package formats

import (
	"fmt"
	"sort"

	"github.com/courtmix/americano-system/models"
)

// AggregateStats folds a score snapshot into per-player statistics. A fixture
// contributes only when both team scores are present and nonnegative; an
// absent or incomplete score means "not yet played" and changes nothing for
// any of the four players involved. Both teams are processed symmetrically.
func AggregateStats(fixtures []models.Fixture, scores models.ScoreMap, playerCount int) []models.PlayerStat {
	stats := make([]models.PlayerStat, playerCount)
	for i := range stats {
		stats[i].Player = i + 1
	}

	for _, fixture := range fixtures {
		score, ok := scores[fixture.ScoreKey()]
		if !ok || !score.Played() {
			continue
		}
		applyTeamResult(stats, fixture.Team1, *score.Team1, *score.Team2)
		applyTeamResult(stats, fixture.Team2, *score.Team2, *score.Team1)
	}

	return stats
}

func applyTeamResult(stats []models.PlayerStat, team [2]int, own, opposing int) {
	for _, player := range team {
		if player < 1 || player > len(stats) {
			continue
		}
		stat := &stats[player-1]
		stat.GamesPlayed++
		stat.PointsFor += own
		stat.PointsAgainst += opposing
		stat.TotalScore += own
		switch {
		case own > opposing:
			stat.Wins++
		case own < opposing:
			stat.Losses++
		default:
			stat.Draws++
		}
	}
}

// RankStandings orders player statistics into the leaderboard. The comparator
// is fixed and explicit: total points, then points difference, then wins, all
// descending. Ties beyond that keep original player order via the stable sort.
func RankStandings(stats []models.PlayerStat, playerNames []string) []models.Standing {
	standings := make([]models.Standing, len(stats))
	for i, stat := range stats {
		standings[i] = models.Standing{
			Player:        stat.Player,
			Name:          displayName(playerNames, stat.Player),
			GamesPlayed:   stat.GamesPlayed,
			Wins:          stat.Wins,
			Losses:        stat.Losses,
			Draws:         stat.Draws,
			PointsFor:     stat.PointsFor,
			PointsAgainst: stat.PointsAgainst,
			PointsDiff:    stat.PointsFor - stat.PointsAgainst,
			TotalPoints:   stat.TotalScore,
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		if standings[i].PointsDiff != standings[j].PointsDiff {
			return standings[i].PointsDiff > standings[j].PointsDiff
		}
		return standings[i].Wins > standings[j].Wins
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

func displayName(playerNames []string, player int) string {
	if player >= 1 && player <= len(playerNames) && playerNames[player-1] != "" {
		return playerNames[player-1]
	}
	return fmt.Sprintf("Player %d", player)
}

// CountCompletedMatches reports how many fixtures have a complete score.
func CountCompletedMatches(fixtures []models.Fixture, scores models.ScoreMap) int {
	completed := 0
	for _, fixture := range fixtures {
		if score, ok := scores[fixture.ScoreKey()]; ok && score.Played() {
			completed++
		}
	}
	return completed
}
