// Package curriculum generates the daily content of each learning track.
//
// Everything here is a pure function of a progress state, parameters and an
// injected *rand.Rand, so callers control determinism by seeding the
// generator (see Seed).
package curriculum
