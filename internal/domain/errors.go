package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDay is returned when a progress day counter is below 1.
	ErrInvalidDay = errors.New("current day must be at least 1")

	// ErrInvalidCategory is returned when an equations category is not recognized.
	ErrInvalidCategory = errors.New("invalid equations category")

	// ErrUnknownToken is returned when a session token is not required by today's schedule.
	ErrUnknownToken = errors.New("session token is not part of today's schedule")

	// ErrInvalidSession is returned when a book session number is outside 1..3.
	ErrInvalidSession = errors.New("invalid book session")

	// ErrInvalidItemType is returned when a book item type is neither words nor sentences.
	ErrInvalidItemType = errors.New("invalid book item type")

	// ErrInvalidSessionItem is returned when an item type is not offered by a session,
	// for example sentences outside session 3.
	ErrInvalidSessionItem = errors.New("item type is not offered by this session")

	// ErrInvalidCorpus is returned when a no-repeat corpus name is not recognized.
	ErrInvalidCorpus = errors.New("invalid no-repeat corpus")
)
