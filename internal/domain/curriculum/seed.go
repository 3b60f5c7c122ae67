package curriculum

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
)

// Seed derives a stable generator seed for one track day. The same local
// date, day counter and category always yield the same seed; salt separates
// installations.
func Seed(track domain.Track, now time.Time, day int, category domain.Category, salt int64) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s|%s|%d|%s|%d", track, clock.DateKey(now, now.Location()), day, category, salt)
	return int64(h.Sum64())
}

// NewRand returns a generator seeded for one track day.
func NewRand(track domain.Track, now time.Time, day int, category domain.Category, salt int64) *rand.Rand {
	return rand.New(rand.NewSource(Seed(track, now, day, category, salt)))
}
