package formats

import (
	"sort"

	"github.com/courtmix/americano-system/models"
)

// ScheduleTimeslots partitions a fixture list into ordered timeslots such
// that no timeslot contains two matches sharing a player and no timeslot
// holds more than courtCount matches.
//
// Packing is first-fit greedy: fixtures are scanned in their fixed catalog
// order, and each unplaced fixture joins the current timeslot when none of
// its four players is occupied and a court is free. The scan order never
// varies, so identical input always yields identical timeslots. The greedy
// strategy does not guarantee the minimum number of timeslots; it guarantees
// conflict-freedom and capacity only, which is sufficient at catalog sizes
// of at most a few hundred fixtures.
func ScheduleTimeslots(fixtures []models.Fixture, playerCount, courtCount int) []models.Timeslot {
	if courtCount < 1 {
		return []models.Timeslot{}
	}

	timeslots := []models.Timeslot{}
	placed := make([]bool, len(fixtures))
	remaining := len(fixtures)

	for remaining > 0 {
		occupied := make(map[int]bool, playerCount)
		slot := models.Timeslot{Round: len(timeslots) + 1}

		for i := range fixtures {
			if len(slot.Matches) >= courtCount {
				break
			}
			if placed[i] {
				continue
			}
			fixture := fixtures[i]
			if anyOccupied(occupied, fixture) {
				continue
			}
			slot.Matches = append(slot.Matches, models.ScheduledMatch{
				FixtureIndex: fixture.Index,
				Court:        len(slot.Matches) + 1,
				Team1:        fixture.Team1,
				Team2:        fixture.Team2,
			})
			for _, p := range fixture.Players() {
				occupied[p] = true
			}
			placed[i] = true
			remaining--
		}

		if len(slot.Matches) == 0 {
			// A fixture that can never be placed would loop forever; catalog
			// validation rules this out, but stay safe on bad input.
			break
		}

		slot.Resting = restingPlayers(occupied, playerCount)
		timeslots = append(timeslots, slot)
	}

	return timeslots
}

func anyOccupied(occupied map[int]bool, fixture models.Fixture) bool {
	for _, p := range fixture.Players() {
		if occupied[p] {
			return true
		}
	}
	return false
}

// restingPlayers returns the sorted complement of the occupied set, so that
// scheduled plus resting players always cover every player of the round.
func restingPlayers(occupied map[int]bool, playerCount int) []int {
	resting := make([]int, 0, playerCount)
	for p := 1; p <= playerCount; p++ {
		if !occupied[p] {
			resting = append(resting, p)
		}
	}
	sort.Ints(resting)
	return resting
}
