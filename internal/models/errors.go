package models

import "errors"

var (
	// ErrInvalidRouteRequest start/end coordinates out of bounds or identical
	ErrInvalidRouteRequest = errors.New("invalid route request")

	// ErrProviderUnavailable the routing provider is unreachable or returned an error
	ErrProviderUnavailable = errors.New("routing provider unavailable")

	// ErrInvalidGeometry route geometry is malformed (fewer than 2 points)
	ErrInvalidGeometry = errors.New("invalid route geometry")

	// ErrDataLoad flood zone source file is missing or malformed
	ErrDataLoad = errors.New("flood zone data load failed")
)
