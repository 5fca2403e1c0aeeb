package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrConfigInvalid is returned when a spending config misses a parameter its
	// period type requires, or has out of range values.
	ErrConfigInvalid = errors.New("the spending config is invalid")

	// ErrNoActiveConfig is returned when a calculation is requested without a
	// config ID and the user has no active config.
	ErrNoActiveConfig = errors.New("there is no active spending config")

	// ErrGoalHasChildren is returned when deleting a goal that still has sub-goals.
	ErrGoalHasChildren = errors.New("the goal has sub-goals, delete them first")
)
