package engine

import "errors"

var (
	// ErrInvalidConfig indicates the engine cannot be constructed from the
	// given configuration.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// ErrBackendUnavailable indicates no compute backend could be selected.
	ErrBackendUnavailable = errors.New("engine: no compute backend available")
)
