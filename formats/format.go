package formats

import (
	"errors"
	"fmt"

	"github.com/courtmix/americano-system/models"
)

// ErrCatalogUnavailable signals that no fixture catalog data has been
// supplied. It is distinct from a valid configuration that happens to have
// zero fixtures.
var ErrCatalogUnavailable = errors.New("fixture catalog data has not been supplied")

// Format is the capability contract every tournament format implements.
// All methods are pure functions over the immutable catalog injected at
// construction plus caller-supplied arguments; nothing is mutated in place,
// so concurrent calls are safe.
type Format interface {
	Name() string

	// PlayerRange returns the inclusive range of supported player counts.
	PlayerRange() (min, max int)

	// MaxCourts returns the maximum legal court count for a player count,
	// or 0 when the player count is unsupported.
	MaxCourts(playerCount int) int

	// ValidateConfiguration checks a (playerCount, courtCount) pair. It
	// never returns an error; an unsupported pair yields a structured
	// result with a descriptive message.
	ValidateConfiguration(playerCount, courtCount int) models.ValidationResult

	// GetFixtures returns the ordered fixture list for a configuration.
	// The result flags a documented fallback when the requested court
	// count has no dedicated fixture list.
	GetFixtures(playerCount, courtCount int) (*models.FixtureSet, error)

	// GenerateRounds partitions the fixture list into ordered, conflict-free,
	// capacity-bounded timeslots. Deterministic for identical input.
	GenerateRounds(playerCount, courtCount int) ([]models.Timeslot, error)

	// CalculateStandings recomputes the ranked leaderboard from the complete
	// current score snapshot. Incomplete or unplayed entries are excluded.
	CalculateStandings(playerNames []string, scores models.ScoreMap, playerCount, courtCount int) ([]models.Standing, error)

	// PartnershipMatrix builds the symmetric teammate-count matrix used for
	// fairness auditing.
	PartnershipMatrix(playerCount, courtCount int) ([][]int, error)

	// Progress derives completion counters from the same inputs as the
	// standings.
	Progress(scores models.ScoreMap, playerCount, courtCount int) (models.Progress, error)
}

// Registry holds the available formats by name.
type Registry struct {
	formats map[string]Format
}

func NewRegistry(formats ...Format) *Registry {
	r := &Registry{formats: make(map[string]Format, len(formats))}
	for _, f := range formats {
		r.formats[f.Name()] = f
	}
	return r
}

func (r *Registry) Get(name string) (Format, error) {
	f, ok := r.formats[name]
	if !ok {
		return nil, fmt.Errorf("unsupported tournament format %q", name)
	}
	return f, nil
}

func (r *Registry) All() []Format {
	all := make([]Format, 0, len(r.formats))
	for _, f := range r.formats {
		all = append(all, f)
	}
	return all
}
