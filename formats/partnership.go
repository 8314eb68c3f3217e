package formats

import "github.com/courtmix/americano-system/models"

// PartnershipMatrix counts how often each pair of players appears as
// teammates across a fixture list. Entry [i][j] is the teammate count of
// players i+1 and j+1; the matrix is symmetric and its diagonal is zero.
// Used for fairness auditing, not by scheduling or standings.
func PartnershipMatrix(fixtures []models.Fixture, playerCount int) [][]int {
	matrix := make([][]int, playerCount)
	for i := range matrix {
		matrix[i] = make([]int, playerCount)
	}

	for _, fixture := range fixtures {
		for _, team := range [][2]int{fixture.Team1, fixture.Team2} {
			a, b := team[0], team[1]
			if a < 1 || a > playerCount || b < 1 || b > playerCount {
				continue
			}
			matrix[a-1][b-1]++
			matrix[b-1][a-1]++
		}
	}

	return matrix
}
