package services

import "errors"

// Shared errors used across services and HTTP mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTournamentNotActive     = errors.New("tournament is not active")
	ErrTournamentInvalidStatus = errors.New("invalid tournament status provided")
	ErrFixtureIndexOutOfRange  = errors.New("fixture index is not part of the tournament schedule")
	ErrScoreNegative           = errors.New("scores must be nonnegative")
	ErrTooManyPlayerNames      = errors.New("more player names than players")

	// Conflicts
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Entity-specific (more context than the generic ErrNotFound)
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrFormatNotFound     = errors.New("tournament format not found")
)
