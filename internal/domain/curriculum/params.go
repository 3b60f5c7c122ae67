package curriculum

import (
	"errors"
	"fmt"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

// ErrInvalidParams is returned when curriculum parameters are out of range.
var ErrInvalidParams = errors.New("invalid curriculum parameters")

// NumbersParams defines the day policy of the numbers track.
type NumbersParams struct {
	// BlockSize is the count of sequential numbers shown per day.
	BlockSize int
	// SequentialDays is the last day showing only subitizing sessions.
	SequentialDays int
	// ExtendedDays is the last day using the sequential block.
	ExtendedDays int
	// RandomCount is the count of random numbers shown after ExtendedDays.
	RandomCount int
	// MaxNumber bounds random numbers to [0, MaxNumber).
	MaxNumber int
}

// NewDefaultNumbersParams returns the standard numbers policy.
func NewDefaultNumbersParams() NumbersParams {
	return NumbersParams{
		BlockSize:      10,
		SequentialDays: 15,
		ExtendedDays:   30,
		RandomCount:    10,
		MaxNumber:      300,
	}
}

// Validate checks parameter ranges.
func (p NumbersParams) Validate() error {
	switch {
	case p.BlockSize < 1:
		return fmt.Errorf("%w: block size must be positive", ErrInvalidParams)
	case p.SequentialDays < 1 || p.ExtendedDays < p.SequentialDays:
		return fmt.Errorf("%w: day thresholds must be ordered", ErrInvalidParams)
	case p.RandomCount < 1:
		return fmt.Errorf("%w: random count must be positive", ErrInvalidParams)
	case p.MaxNumber < 1:
		return fmt.Errorf("%w: max number must be positive", ErrInvalidParams)
	}
	return nil
}

// EquationsParams defines the policy of the equations track.
type EquationsParams struct {
	// CategoryDurations is the number of days spent in each category.
	// Missing categories use DefaultCategoryDays.
	CategoryDurations map[domain.Category]int
	// SessionsPerDay is the session count of every equations day.
	SessionsPerDay int
	// EquationsPerSession is the count of equations shown per session.
	EquationsPerSession int
	// MaxAddend bounds additive operands of integer-like categories.
	MaxAddend int
	// MaxFactor bounds multiplication operands.
	MaxFactor int
	// MaxDividend bounds the numerator of integer divisions.
	MaxDividend int
}

// Equations defaults.
const (
	DefaultCategoryDays        = 5
	DefaultSessionsPerDay      = 3
	DefaultEquationsPerSession = 10
	MinEquationsPerSession     = 1
	MaxEquationsPerSession     = 50
)

// NewDefaultEquationsParams returns the standard equations policy.
func NewDefaultEquationsParams() EquationsParams {
	durations := make(map[domain.Category]int, len(domain.CategoryOrder))
	for _, c := range domain.CategoryOrder {
		durations[c] = DefaultCategoryDays
	}
	return EquationsParams{
		CategoryDurations:   durations,
		SessionsPerDay:      DefaultSessionsPerDay,
		EquationsPerSession: DefaultEquationsPerSession,
		MaxAddend:           20,
		MaxFactor:           10,
		MaxDividend:         100,
	}
}

// Duration returns the number of days spent in c.
func (p EquationsParams) Duration(c domain.Category) int {
	if d, ok := p.CategoryDurations[c]; ok && d > 0 {
		return d
	}
	return DefaultCategoryDays
}

// WithEquationsPerSession returns a copy of p using n equations per session.
func (p EquationsParams) WithEquationsPerSession(n int) EquationsParams {
	p.EquationsPerSession = n
	return p
}

// Validate checks parameter ranges.
func (p EquationsParams) Validate() error {
	switch {
	case p.SessionsPerDay < 1:
		return fmt.Errorf("%w: sessions per day must be positive", ErrInvalidParams)
	case p.EquationsPerSession < MinEquationsPerSession || p.EquationsPerSession > MaxEquationsPerSession:
		return fmt.Errorf("%w: equations per session must be within %d..%d",
			ErrInvalidParams, MinEquationsPerSession, MaxEquationsPerSession)
	case p.MaxAddend < 2 || p.MaxFactor < 2 || p.MaxDividend < 4:
		return fmt.Errorf("%w: operand bounds too small", ErrInvalidParams)
	}
	for c, d := range p.CategoryDurations {
		if !c.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, c)
		}
		if d < 1 {
			return fmt.Errorf("%w: duration of %s must be positive", ErrInvalidParams, c)
		}
	}
	return nil
}
