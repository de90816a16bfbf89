package sim

import "errors"

var (
	// ErrInvalidDimensions is returned when a grid is requested with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrInvalidTerrain is returned by ParseGrid for an unknown cell symbol or
	// ragged rows.
	ErrInvalidTerrain = errors.New("invalid terrain layout")

	// ErrPlacementFailure means no free traversable cell was left for an entity
	// the match cannot start without.
	ErrPlacementFailure = errors.New("no free cell for entity")

	// ErrMatchEnded is returned by every mutating call on an ended match.
	ErrMatchEnded = errors.New("match has ended")

	// ErrMatchPaused is returned when a move or turn is requested while paused.
	ErrMatchPaused = errors.New("match is paused")

	// ErrInvalidTransition is returned for pause/resume calls that do not apply
	// to the current state (pausing a paused match, resuming an active one).
	ErrInvalidTransition = errors.New("invalid state transition")
)
