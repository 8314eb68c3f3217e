package formats

import (
	"reflect"
	"testing"

	"github.com/courtmix/americano-system/models"
)

func mustDefaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := DefaultAmericanoCatalog()
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	return catalog
}

// checkTimeslots verifies the three scheduling invariants: no player twice in
// a round, capacity respected, scheduled plus resting covers every player.
func checkTimeslots(t *testing.T, timeslots []models.Timeslot, playerCount, courtCount int) {
	t.Helper()
	for _, slot := range timeslots {
		if len(slot.Matches) > courtCount {
			t.Fatalf("round %d has %d matches for %d courts", slot.Round, len(slot.Matches), courtCount)
		}
		seen := make(map[int]bool)
		for _, match := range slot.Matches {
			for _, p := range [4]int{match.Team1[0], match.Team1[1], match.Team2[0], match.Team2[1]} {
				if seen[p] {
					t.Fatalf("round %d schedules player %d twice", slot.Round, p)
				}
				seen[p] = true
			}
		}
		for _, p := range slot.Resting {
			if seen[p] {
				t.Fatalf("round %d has player %d both scheduled and resting", slot.Round, p)
			}
			seen[p] = true
		}
		if len(seen) != playerCount {
			t.Fatalf("round %d covers %d of %d players", slot.Round, len(seen), playerCount)
		}
	}
}

func TestScheduleTimeslotsInvariants(t *testing.T) {
	catalog := mustDefaultCatalog(t)

	for playerCount := catalog.MinPlayers; playerCount <= catalog.MaxPlayers; playerCount++ {
		entry, ok := catalog.Entry(playerCount)
		if !ok {
			continue
		}
		for courts := 1; courts <= entry.MaxCourts; courts++ {
			set, err := catalog.FixtureSet(playerCount, courts)
			if err != nil {
				t.Fatalf("FixtureSet(%d, %d): %v", playerCount, courts, err)
			}
			timeslots := ScheduleTimeslots(set.Fixtures, playerCount, courts)

			scheduled := 0
			for _, slot := range timeslots {
				scheduled += len(slot.Matches)
			}
			if scheduled != len(set.Fixtures) {
				t.Fatalf("%d players, %d courts: scheduled %d of %d fixtures",
					playerCount, courts, scheduled, len(set.Fixtures))
			}
			checkTimeslots(t, timeslots, playerCount, courts)
		}
	}
}

func TestScheduleTimeslotsDeterministic(t *testing.T) {
	catalog := mustDefaultCatalog(t)
	set, err := catalog.FixtureSet(8, 2)
	if err != nil {
		t.Fatalf("FixtureSet(8, 2): %v", err)
	}

	first := ScheduleTimeslots(set.Fixtures, 8, 2)
	second := ScheduleTimeslots(set.Fixtures, 8, 2)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical input produced different timeslot orderings")
	}
}

func TestScheduleTimeslotsEmptyFixtureList(t *testing.T) {
	timeslots := ScheduleTimeslots(nil, 8, 2)
	if len(timeslots) != 0 {
		t.Fatalf("expected no timeslots for empty fixture list, got %d", len(timeslots))
	}
}

func TestScheduleTimeslotsIdleCourts(t *testing.T) {
	// 4 players can fill one court at a time; extra courts stay idle without
	// being an error.
	fixtures := []models.Fixture{
		{Index: 0, Team1: [2]int{1, 2}, Team2: [2]int{3, 4}},
		{Index: 1, Team1: [2]int{1, 3}, Team2: [2]int{2, 4}},
		{Index: 2, Team1: [2]int{1, 4}, Team2: [2]int{2, 3}},
	}

	timeslots := ScheduleTimeslots(fixtures, 4, 3)
	if len(timeslots) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(timeslots))
	}
	for _, slot := range timeslots {
		if len(slot.Matches) != 1 {
			t.Fatalf("round %d should hold a single match, got %d", slot.Round, len(slot.Matches))
		}
		if len(slot.Resting) != 0 {
			t.Fatalf("round %d should rest nobody, got %v", slot.Round, slot.Resting)
		}
	}
}

func TestScheduleTimeslotsFixedCatalogOrder(t *testing.T) {
	// First-fit scanning in catalog order: fixture 1 shares players with
	// fixture 0, so fixture 2 is pulled forward into the first round.
	fixtures := []models.Fixture{
		{Index: 0, Team1: [2]int{1, 2}, Team2: [2]int{3, 4}},
		{Index: 1, Team1: [2]int{1, 3}, Team2: [2]int{2, 4}},
		{Index: 2, Team1: [2]int{5, 6}, Team2: [2]int{7, 8}},
	}

	timeslots := ScheduleTimeslots(fixtures, 8, 2)
	if len(timeslots) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(timeslots))
	}
	first := timeslots[0]
	if len(first.Matches) != 2 || first.Matches[0].FixtureIndex != 0 || first.Matches[1].FixtureIndex != 2 {
		t.Fatalf("unexpected first round packing: %+v", first.Matches)
	}
	if timeslots[1].Matches[0].FixtureIndex != 1 {
		t.Fatalf("expected fixture 1 in round 2, got %+v", timeslots[1].Matches)
	}
	wantResting := []int{5, 6, 7, 8}
	if !reflect.DeepEqual(timeslots[1].Resting, wantResting) {
		t.Fatalf("round 2 resting = %v, want %v", timeslots[1].Resting, wantResting)
	}
}

func TestScheduleTimeslotsNoCourts(t *testing.T) {
	fixtures := []models.Fixture{{Index: 0, Team1: [2]int{1, 2}, Team2: [2]int{3, 4}}}
	if got := ScheduleTimeslots(fixtures, 4, 0); len(got) != 0 {
		t.Fatalf("expected no timeslots without courts, got %d", len(got))
	}
}
