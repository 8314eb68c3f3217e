package formats

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/courtmix/americano-system/models"
)

//go:embed data/americano.json
var defaultAmericanoData []byte

// CatalogEntry holds the precomputed fixture data for one player count.
// Smaller counts carry a single flat list (court count only affects how the
// scheduler packs it); upper-range counts carry one list per court count,
// because how many courts are used changes the games each player gets.
type CatalogEntry struct {
	MaxCourts              int
	GamesPerPlayer         int
	Fixtures               []models.Fixture
	GamesPerPlayerByCourts map[int]int
	FixturesByCourts       map[int][]models.Fixture
}

// Catalog is the immutable, externally supplied table of partnership designs,
// keyed by player count. It is set once at construction and never modified;
// how the designs are produced is outside this system.
type Catalog struct {
	FormatName string
	MinPlayers int
	MaxPlayers int
	entries    map[int]*CatalogEntry
}

type catalogJSON struct {
	Format     string                      `json:"format"`
	MinPlayers int                         `json:"minPlayers"`
	MaxPlayers int                         `json:"maxPlayers"`
	Entries    map[string]catalogEntryJSON `json:"entries"`
}

type catalogEntryJSON struct {
	MaxCourts              int                             `json:"maxCourts"`
	GamesPerPlayer         int                             `json:"gamesPerPlayer"`
	Fixtures               []catalogFixtureJSON            `json:"fixtures"`
	GamesPerPlayerByCourts map[string]int                  `json:"gamesPerPlayerByCourts"`
	FixturesByCourts       map[string][]catalogFixtureJSON `json:"fixturesByCourts"`
}

type catalogFixtureJSON struct {
	Team1 [2]int `json:"team1"`
	Team2 [2]int `json:"team2"`
	Rest  []int  `json:"rest"`
}

// ParseCatalog decodes and validates catalog JSON. Every fixture must have
// four distinct players within 1..playerCount; fixture indices are assigned
// from list positions here and stay stable afterwards.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw catalogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode fixture catalog: %w", err)
	}
	if raw.MinPlayers < 4 || raw.MaxPlayers < raw.MinPlayers {
		return nil, fmt.Errorf("invalid catalog player range %d-%d", raw.MinPlayers, raw.MaxPlayers)
	}

	catalog := &Catalog{
		FormatName: raw.Format,
		MinPlayers: raw.MinPlayers,
		MaxPlayers: raw.MaxPlayers,
		entries:    make(map[int]*CatalogEntry, len(raw.Entries)),
	}

	for key, rawEntry := range raw.Entries {
		playerCount, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog entry key %q: %w", key, err)
		}
		if playerCount < raw.MinPlayers || playerCount > raw.MaxPlayers {
			return nil, fmt.Errorf("catalog entry for %d players is outside range %d-%d", playerCount, raw.MinPlayers, raw.MaxPlayers)
		}
		if rawEntry.MaxCourts < 1 {
			return nil, fmt.Errorf("catalog entry for %d players has no courts", playerCount)
		}

		entry := &CatalogEntry{
			MaxCourts:      rawEntry.MaxCourts,
			GamesPerPlayer: rawEntry.GamesPerPlayer,
		}

		switch {
		case len(rawEntry.Fixtures) > 0:
			entry.Fixtures, err = convertFixtures(rawEntry.Fixtures, playerCount)
			if err != nil {
				return nil, fmt.Errorf("catalog entry for %d players: %w", playerCount, err)
			}
		case len(rawEntry.FixturesByCourts) > 0:
			entry.FixturesByCourts = make(map[int][]models.Fixture, len(rawEntry.FixturesByCourts))
			entry.GamesPerPlayerByCourts = make(map[int]int, len(rawEntry.GamesPerPlayerByCourts))
			for courtKey, rawFixtures := range rawEntry.FixturesByCourts {
				courts, err := strconv.Atoi(courtKey)
				if err != nil || courts < 1 || courts > rawEntry.MaxCourts {
					return nil, fmt.Errorf("catalog entry for %d players has invalid court key %q", playerCount, courtKey)
				}
				fixtures, err := convertFixtures(rawFixtures, playerCount)
				if err != nil {
					return nil, fmt.Errorf("catalog entry for %d players, %d courts: %w", playerCount, courts, err)
				}
				entry.FixturesByCourts[courts] = fixtures
				entry.GamesPerPlayerByCourts[courts] = rawEntry.GamesPerPlayerByCourts[courtKey]
			}
			if _, ok := entry.FixturesByCourts[rawEntry.MaxCourts]; !ok {
				return nil, fmt.Errorf("catalog entry for %d players is missing the %d-court list used as fallback", playerCount, rawEntry.MaxCourts)
			}
		default:
			return nil, fmt.Errorf("catalog entry for %d players has no fixtures", playerCount)
		}

		catalog.entries[playerCount] = entry
	}

	return catalog, nil
}

func convertFixtures(raw []catalogFixtureJSON, playerCount int) ([]models.Fixture, error) {
	fixtures := make([]models.Fixture, len(raw))
	for i, rf := range raw {
		fixture := models.Fixture{
			Index: i,
			Team1: rf.Team1,
			Team2: rf.Team2,
			Rest:  append([]int(nil), rf.Rest...),
		}
		seen := make(map[int]bool, 4)
		for _, p := range fixture.Players() {
			if p < 1 || p > playerCount {
				return nil, fmt.Errorf("fixture %d references player %d outside 1-%d", i, p, playerCount)
			}
			if seen[p] {
				return nil, fmt.Errorf("fixture %d uses player %d on both teams", i, p)
			}
			seen[p] = true
		}
		sort.Ints(fixture.Rest)
		fixtures[i] = fixture
	}
	return fixtures, nil
}

// Entry returns the catalog entry for a player count.
func (c *Catalog) Entry(playerCount int) (*CatalogEntry, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.entries[playerCount]
	return entry, ok
}

// MaxCourts reports the maximum legal court count for a player count, 0 when
// the player count has no entry.
func (c *Catalog) MaxCourts(playerCount int) int {
	entry, ok := c.Entry(playerCount)
	if !ok {
		return 0
	}
	return entry.MaxCourts
}

// FixtureSet resolves the fixture list for a configuration. For per-court
// entries the requested court count is used when a dedicated list exists;
// otherwise the list stored for the entry's maximum court count is returned
// with CourtFallback set, since that changes the effective games per player
// and must not happen silently.
func (c *Catalog) FixtureSet(playerCount, courtCount int) (*models.FixtureSet, error) {
	if c == nil {
		return nil, ErrCatalogUnavailable
	}
	entry, ok := c.entries[playerCount]
	if !ok {
		return nil, fmt.Errorf("no fixture data for %d players", playerCount)
	}

	if entry.FixturesByCourts == nil {
		return &models.FixtureSet{
			Fixtures:        entry.Fixtures,
			GamesPerPlayer:  entry.GamesPerPlayer,
			EffectiveCourts: courtCount,
		}, nil
	}

	effective := courtCount
	fallback := false
	if _, ok := entry.FixturesByCourts[effective]; !ok {
		effective = entry.MaxCourts
		fallback = true
	}
	return &models.FixtureSet{
		Fixtures:        entry.FixturesByCourts[effective],
		GamesPerPlayer:  entry.GamesPerPlayerByCourts[effective],
		EffectiveCourts: effective,
		CourtFallback:   fallback,
	}, nil
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// DefaultAmericanoCatalog returns the catalog embedded with the binary. It is
// a working subset of the full americano tables; deployments supply the
// complete catalog through configuration.
func DefaultAmericanoCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(defaultAmericanoData)
	})
	return defaultCatalog, defaultCatalogErr
}
