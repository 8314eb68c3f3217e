package formats

import (
	"fmt"

	"github.com/courtmix/americano-system/models"
)

// AmericanoFormat is an individual round-robin doubles format: partners
// rotate between fixtures and every player is ranked individually by the
// points scored with each partner. Fixture composition comes entirely from
// the injected catalog.
type AmericanoFormat struct {
	catalog *Catalog
}

func NewAmericanoFormat(catalog *Catalog) *AmericanoFormat {
	return &AmericanoFormat{catalog: catalog}
}

func (f *AmericanoFormat) Name() string {
	return "americano"
}

func (f *AmericanoFormat) PlayerRange() (int, int) {
	if f.catalog == nil {
		return 0, 0
	}
	return f.catalog.MinPlayers, f.catalog.MaxPlayers
}

func (f *AmericanoFormat) MaxCourts(playerCount int) int {
	return f.catalog.MaxCourts(playerCount)
}

// ValidateConfiguration checks a (playerCount, courtCount) pair against the
// catalog's supported range and per-count court metadata. Pure; never fails
// with an error return.
func (f *AmericanoFormat) ValidateConfiguration(playerCount, courtCount int) models.ValidationResult {
	if f.catalog == nil {
		return models.InvalidConfiguration("fixture catalog data has not been supplied")
	}
	min, max := f.catalog.MinPlayers, f.catalog.MaxPlayers
	if playerCount < min || playerCount > max {
		return models.InvalidConfiguration(fmt.Sprintf("americano supports %d to %d players, got %d", min, max, playerCount))
	}
	maxCourts := f.catalog.MaxCourts(playerCount)
	if maxCourts == 0 {
		return models.InvalidConfiguration(fmt.Sprintf("no fixture data for %d players", playerCount))
	}
	if courtCount < 1 {
		return models.InvalidConfiguration("at least 1 court is required")
	}
	if courtCount > maxCourts {
		return models.InvalidConfiguration(fmt.Sprintf("%d players support at most %d courts, got %d", playerCount, maxCourts, courtCount))
	}
	return models.ValidConfiguration()
}

func (f *AmericanoFormat) GetFixtures(playerCount, courtCount int) (*models.FixtureSet, error) {
	return f.catalog.FixtureSet(playerCount, courtCount)
}

func (f *AmericanoFormat) GenerateRounds(playerCount, courtCount int) ([]models.Timeslot, error) {
	set, err := f.catalog.FixtureSet(playerCount, courtCount)
	if err != nil {
		return nil, err
	}
	return ScheduleTimeslots(set.Fixtures, playerCount, courtCount), nil
}

func (f *AmericanoFormat) CalculateStandings(playerNames []string, scores models.ScoreMap, playerCount, courtCount int) ([]models.Standing, error) {
	set, err := f.catalog.FixtureSet(playerCount, courtCount)
	if err != nil {
		return nil, err
	}
	stats := AggregateStats(set.Fixtures, scores, playerCount)
	return RankStandings(stats, playerNames), nil
}

func (f *AmericanoFormat) PartnershipMatrix(playerCount, courtCount int) ([][]int, error) {
	set, err := f.catalog.FixtureSet(playerCount, courtCount)
	if err != nil {
		return nil, err
	}
	return PartnershipMatrix(set.Fixtures, playerCount), nil
}

func (f *AmericanoFormat) Progress(scores models.ScoreMap, playerCount, courtCount int) (models.Progress, error) {
	set, err := f.catalog.FixtureSet(playerCount, courtCount)
	if err != nil {
		return models.Progress{}, err
	}
	return models.Progress{
		CompletedMatches: CountCompletedMatches(set.Fixtures, scores),
		TotalMatches:     len(set.Fixtures),
		TotalTimeslots:   len(ScheduleTimeslots(set.Fixtures, playerCount, courtCount)),
	}, nil
}
