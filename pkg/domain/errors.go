package domain

import "errors"

// ErrInvalidPosition is returned when a position name is not one of the six canonical positions.
var ErrInvalidPosition = errors.New("invalid position")

// ErrInvalidDuration is returned when a duration cannot be parsed.
var ErrInvalidDuration = errors.New("invalid duration")

// ErrInvalidConfig is returned when a configuration file fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// ErrMapperPanic is logged when a promise result mapping panics.
var ErrMapperPanic = errors.New("promise mapping panicked")

// ErrUnknownStep is returned when a scenario names an operation that does not exist.
var ErrUnknownStep = errors.New("unknown scenario step")
