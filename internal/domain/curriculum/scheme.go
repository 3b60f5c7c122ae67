package curriculum

import (
	"math/rand"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

// DailyData is the session structure every generated day exposes.
// domain.Schedule satisfies it and is embedded by the track payloads.
type DailyData interface {
	RequiredTokens() []domain.Token
	SessionTokens(index int) []domain.Token
	Requires(token domain.Token) bool
}

// Scheme couples a track's content generator with its advance rule.
type Scheme[D DailyData] interface {
	// Track identifies the track the scheme generates.
	Track() domain.Track
	// Initial returns the state of a fresh install.
	Initial() domain.ProgressState
	// Generate builds the content of state's day.
	Generate(state domain.ProgressState, rng *rand.Rand) D
	// Advance moves a completed state to its next day.
	Advance(state domain.ProgressState) domain.ProgressState
}

var (
	_ Scheme[domain.NumbersDailyData]   = NumbersScheme{}
	_ Scheme[domain.EquationsDailyData] = EquationsScheme{}
)
