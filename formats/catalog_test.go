package formats

import (
	"errors"
	"fmt"
	"testing"

	"github.com/courtmix/americano-system/models"
)

func TestDefaultCatalogBalancedGames(t *testing.T) {
	catalog := mustDefaultCatalog(t)

	checkList := func(t *testing.T, fixtures []models.Fixture, playerCount, wantGames int) {
		t.Helper()
		appearances := make([]int, playerCount+1)
		for _, fixture := range fixtures {
			for _, p := range fixture.Players() {
				appearances[p]++
			}
		}
		for player := 1; player <= playerCount; player++ {
			if appearances[player] != wantGames {
				t.Fatalf("player %d appears in %d fixtures, want %d", player, appearances[player], wantGames)
			}
		}
	}

	for playerCount := catalog.MinPlayers; playerCount <= catalog.MaxPlayers; playerCount++ {
		entry, ok := catalog.Entry(playerCount)
		if !ok {
			continue
		}
		if entry.FixturesByCourts == nil {
			t.Run(fmt.Sprintf("%d players", playerCount), func(t *testing.T) {
				checkList(t, entry.Fixtures, playerCount, entry.GamesPerPlayer)
			})
			continue
		}
		for courts, fixtures := range entry.FixturesByCourts {
			courts, fixtures := courts, fixtures
			t.Run(fmt.Sprintf("%d players %d courts", playerCount, courts), func(t *testing.T) {
				checkList(t, fixtures, playerCount, entry.GamesPerPlayerByCourts[courts])
			})
		}
	}
}

func TestDefaultCatalogStableIndices(t *testing.T) {
	catalog := mustDefaultCatalog(t)
	for playerCount := catalog.MinPlayers; playerCount <= catalog.MaxPlayers; playerCount++ {
		entry, ok := catalog.Entry(playerCount)
		if !ok {
			continue
		}
		lists := [][]models.Fixture{entry.Fixtures}
		for _, fixtures := range entry.FixturesByCourts {
			lists = append(lists, fixtures)
		}
		for _, fixtures := range lists {
			for i, fixture := range fixtures {
				if fixture.Index != i {
					t.Fatalf("%d players: fixture at position %d has index %d", playerCount, i, fixture.Index)
				}
				if fixture.ScoreKey() != fmt.Sprintf("match_%d", i) {
					t.Fatalf("%d players: fixture %d has score key %q", playerCount, i, fixture.ScoreKey())
				}
			}
		}
	}
}

func TestFixtureSetCourtFallback(t *testing.T) {
	catalog := mustDefaultCatalog(t)
	entry, ok := catalog.Entry(16)
	if !ok {
		t.Fatal("catalog has no 16-player entry")
	}
	if entry.FixturesByCourts == nil {
		t.Fatal("16-player entry should carry per-court fixture lists")
	}

	set, err := catalog.FixtureSet(16, 2)
	if err != nil {
		t.Fatalf("FixtureSet: %v", err)
	}
	if !set.CourtFallback {
		t.Fatal("requesting 2 courts for 16 players should be flagged as a fallback")
	}
	if set.EffectiveCourts != entry.MaxCourts {
		t.Fatalf("fallback should use the %d-court list, got %d", entry.MaxCourts, set.EffectiveCourts)
	}
	if set.GamesPerPlayer != entry.GamesPerPlayerByCourts[entry.MaxCourts] {
		t.Fatalf("fallback games per player = %d, want %d", set.GamesPerPlayer, entry.GamesPerPlayerByCourts[entry.MaxCourts])
	}
}

func TestFixtureSetExactCourtMatch(t *testing.T) {
	catalog := mustDefaultCatalog(t)
	entry, ok := catalog.Entry(16)
	if !ok {
		t.Fatal("catalog has no 16-player entry")
	}
	courts := entry.MaxCourts - 1
	if _, ok := entry.FixturesByCourts[courts]; !ok {
		t.Fatalf("16-player entry has no %d-court list", courts)
	}

	set, err := catalog.FixtureSet(16, courts)
	if err != nil {
		t.Fatalf("FixtureSet: %v", err)
	}
	if set.CourtFallback {
		t.Fatalf("%d courts has a dedicated list and must not fall back", courts)
	}
	if set.EffectiveCourts != courts {
		t.Fatalf("EffectiveCourts = %d, want %d", set.EffectiveCourts, courts)
	}
}

func TestFixtureSetFlatEntryKeepsRequestedCourts(t *testing.T) {
	catalog := mustDefaultCatalog(t)
	set, err := catalog.FixtureSet(7, 1)
	if err != nil {
		t.Fatalf("FixtureSet: %v", err)
	}
	if set.CourtFallback {
		t.Fatal("flat entries never fall back")
	}
	if set.EffectiveCourts != 1 {
		t.Fatalf("EffectiveCourts = %d, want 1", set.EffectiveCourts)
	}
}

func TestFixtureSetNilCatalog(t *testing.T) {
	var catalog *Catalog
	if _, err := catalog.FixtureSet(8, 2); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("nil catalog: got %v, want ErrCatalogUnavailable", err)
	}
}

func TestFixtureSetUnknownPlayerCount(t *testing.T) {
	catalog := mustDefaultCatalog(t)
	if _, err := catalog.FixtureSet(17, 4); err == nil {
		t.Fatal("expected an error for a player count without catalog data")
	}
}

func TestParseCatalogRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"malformed json", `{"format": "americano"`},
		{"range below minimum", `{"format":"americano","minPlayers":3,"maxPlayers":8,"entries":{}}`},
		{"inverted range", `{"format":"americano","minPlayers":8,"maxPlayers":5,"entries":{}}`},
		{
			"entry key outside range",
			`{"format":"americano","minPlayers":5,"maxPlayers":6,"entries":{
				"9":{"maxCourts":2,"gamesPerPlayer":1,"fixtures":[{"team1":[1,2],"team2":[3,4],"rest":[]}]}
			}}`,
		},
		{
			"entry without courts",
			`{"format":"americano","minPlayers":5,"maxPlayers":6,"entries":{
				"5":{"maxCourts":0,"gamesPerPlayer":1,"fixtures":[{"team1":[1,2],"team2":[3,4],"rest":[5]}]}
			}}`,
		},
		{
			"entry without fixtures",
			`{"format":"americano","minPlayers":5,"maxPlayers":6,"entries":{
				"5":{"maxCourts":1,"gamesPerPlayer":1,"fixtures":[]}
			}}`,
		},
		{
			"player on both teams",
			`{"format":"americano","minPlayers":5,"maxPlayers":6,"entries":{
				"5":{"maxCourts":1,"gamesPerPlayer":1,"fixtures":[{"team1":[1,2],"team2":[2,4],"rest":[5]}]}
			}}`,
		},
		{
			"player outside range",
			`{"format":"americano","minPlayers":5,"maxPlayers":6,"entries":{
				"5":{"maxCourts":1,"gamesPerPlayer":1,"fixtures":[{"team1":[1,2],"team2":[3,9],"rest":[5]}]}
			}}`,
		},
		{
			"invalid court key",
			`{"format":"americano","minPlayers":16,"maxPlayers":16,"entries":{
				"16":{"maxCourts":4,"gamesPerPlayerByCourts":{"x":3},"fixturesByCourts":{
					"x":[{"team1":[1,2],"team2":[3,4],"rest":[]}]
				}}
			}}`,
		},
		{
			"missing fallback court list",
			`{"format":"americano","minPlayers":16,"maxPlayers":16,"entries":{
				"16":{"maxCourts":4,"gamesPerPlayerByCourts":{"3":3},"fixturesByCourts":{
					"3":[{"team1":[1,2],"team2":[3,4],"rest":[]}]
				}}
			}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tc.data)); err == nil {
				t.Fatal("expected ParseCatalog to reject the data")
			}
		})
	}
}

func TestParseCatalogSortsRestLists(t *testing.T) {
	data := `{"format":"americano","minPlayers":6,"maxPlayers":6,"entries":{
		"6":{"maxCourts":1,"gamesPerPlayer":1,"fixtures":[{"team1":[1,2],"team2":[3,4],"rest":[6,5]}]}
	}}`
	catalog, err := ParseCatalog([]byte(data))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	entry, _ := catalog.Entry(6)
	want := []int{5, 6}
	if got := entry.Fixtures[0].Rest; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("rest list = %v, want %v", got, want)
	}
}
