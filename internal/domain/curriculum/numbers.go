package curriculum

import (
	"math/rand"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

var (
	subitizingOrdered   = domain.SessionSpec{Type: domain.SessionTypeSubitizing, IsOrdered: true}
	subitizingUnordered = domain.SessionSpec{Type: domain.SessionTypeSubitizing, IsOrdered: false}
	numbersOrdered      = domain.SessionSpec{Type: domain.SessionTypeNumbers, IsOrdered: true}
	numbersUnordered    = domain.SessionSpec{Type: domain.SessionTypeNumbers, IsOrdered: false}
)

// NumbersScheme generates the numbers/subitizing track.
type NumbersScheme struct {
	Params NumbersParams
}

// NewNumbersScheme creates a scheme with params.
func NewNumbersScheme(params NumbersParams) NumbersScheme {
	return NumbersScheme{Params: params}
}

// Track implements Scheme.
func (NumbersScheme) Track() domain.Track { return domain.TrackNumbers }

// Initial implements Scheme.
func (NumbersScheme) Initial() domain.ProgressState { return domain.NewProgressState("") }

// Generate implements Scheme.
func (s NumbersScheme) Generate(state domain.ProgressState, rng *rand.Rand) domain.NumbersDailyData {
	return GenerateNumbers(state.CurrentDay, s.Params, rng)
}

// Advance implements Scheme.
func (NumbersScheme) Advance(state domain.ProgressState) domain.ProgressState {
	next := state.Clone()
	next.CurrentDay++
	next.ClearLedger()
	return next
}

// GenerateNumbers returns the numbers track content of day.
func GenerateNumbers(day int, p NumbersParams, rng *rand.Rand) domain.NumbersDailyData {
	if day < 1 {
		day = 1
	}
	return domain.NumbersDailyData{
		Schedule: domain.Schedule{
			ActiveDay:      day,
			SessionContent: NumbersSessions(day, p),
		},
		Numbers: NumbersForDay(day, p, rng),
	}
}

// NumbersSessions returns the session structure of day.
func NumbersSessions(day int, p NumbersParams) []domain.Session {
	switch {
	case day <= p.SequentialDays:
		return []domain.Session{
			{subitizingOrdered},
			{subitizingUnordered},
		}
	case day <= p.ExtendedDays:
		return []domain.Session{
			{subitizingOrdered},
			{subitizingUnordered},
			{numbersOrdered},
		}
	default:
		return []domain.Session{
			{subitizingOrdered, numbersUnordered},
			{numbersOrdered, subitizingUnordered},
		}
	}
}

// NumbersForDay returns the numbers shown on day. Up to ExtendedDays this is
// the block (day-1)*BlockSize onwards; afterwards RandomCount distinct values
// from [0, MaxNumber) in random order.
func NumbersForDay(day int, p NumbersParams, rng *rand.Rand) []int {
	if day <= p.ExtendedDays {
		start := (day - 1) * p.BlockSize
		out := make([]int, p.BlockSize)
		for i := range out {
			out[i] = start + i
		}
		return out
	}

	count := p.RandomCount
	if count > p.MaxNumber {
		count = p.MaxNumber
	}
	return rng.Perm(p.MaxNumber)[:count]
}
