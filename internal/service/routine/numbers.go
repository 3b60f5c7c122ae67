package routine

import (
	"fmt"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain/curriculum"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// NumbersService schedules the numbers/subitizing track.
type NumbersService struct {
	*Scheduler[domain.NumbersDailyData]
}

// NewNumbersService creates the numbers track scheduler.
func NewNumbersService(params curriculum.NumbersParams, deps Deps) (*NumbersService, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("numbers service: %w", err)
	}
	scheme := curriculum.NewNumbersScheme(params)
	return &NumbersService{
		Scheduler: NewScheduler[domain.NumbersDailyData](scheme, store.KeyNumbersProgress, deps),
	}, nil
}
