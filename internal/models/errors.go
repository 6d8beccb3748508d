package models

import "errors"

var (
	// ErrInvalidUnitType is returned for unit types outside the registry.
	ErrInvalidUnitType = errors.New("invalid unit type")

	// ErrInvalidUnitName is returned for empty, reserved or escaping names.
	ErrInvalidUnitName = errors.New("invalid unit name")
)
