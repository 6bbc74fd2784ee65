package stw

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/fwojciec/mensa"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency bounds concurrent requests of a Batch.
const DefaultConcurrency = 4

// FacilityMenu is the menu of one facility.
type FacilityMenu struct {
	Facility int                        `json:"facility"`
	Menu     mensa.Response[mensa.Meal] `json:"menu"`
}

// Batch fetches the menus of several facilities through a MenuService.
type Batch struct {
	Menus mensa.MenuService

	// Concurrency bounds parallel requests. Defaults to DefaultConcurrency.
	Concurrency int

	// RatePerSecond paces requests. Zero disables pacing.
	RatePerSecond float64
}

// NewBatch returns a Batch with default concurrency and no pacing.
func NewBatch(menus mensa.MenuService) *Batch {
	return &Batch{Menus: menus, Concurrency: DefaultConcurrency}
}

// FindMenus fetches the menus of facilities for the same date concurrently.
// Results are sorted by facility code. The first failure cancels the
// remaining requests and is returned.
func (b *Batch) FindMenus(ctx context.Context, facilities []int, date time.Time) ([]FacilityMenu, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var limiter *rate.Limiter
	if b.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(b.RatePerSecond), 1)
	}

	results := make([]FacilityMenu, len(facilities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, code := range facilities {
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
			}
			menu, err := b.Menus.FindMenu(ctx, mensa.MenuQuery{Facility: code, Date: date})
			if err != nil {
				return err
			}
			results[i] = FacilityMenu{Facility: code, Menu: menu}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(x, y FacilityMenu) int {
		return cmp.Compare(x.Facility, y.Facility)
	})
	return results, nil
}
