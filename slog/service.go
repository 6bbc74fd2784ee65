package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mensa"
)

var (
	_ mensa.MenuService     = (*LoggingMenuService)(nil)
	_ mensa.FacilityService = (*LoggingFacilityService)(nil)
	_ mensa.AllergenService = (*LoggingAllergenService)(nil)
)

// LoggingMenuService wraps a MenuService with logging.
type LoggingMenuService struct {
	next   mensa.MenuService
	logger *slog.Logger
}

// NewLoggingMenuService creates a new LoggingMenuService.
func NewLoggingMenuService(next mensa.MenuService, logger *slog.Logger) *LoggingMenuService {
	return &LoggingMenuService{next: next, logger: logger}
}

// FindMenu delegates to the wrapped service and logs group and meal counts.
func (s *LoggingMenuService) FindMenu(ctx context.Context, q mensa.MenuQuery) (menu mensa.Response[mensa.Meal], err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"facility", q.Facility,
			"groups", len(menu),
			"meals", menu.Len(),
			"duration", time.Since(begin),
		}
		if !q.Date.IsZero() {
			attrs = append(attrs, "date", q.Date.Format(time.DateOnly))
		}
		if err != nil {
			attrs = append(attrs, "err", err, "code", mensa.ErrorCode(err))
			if path := mensa.FieldPath(err); len(path) > 0 {
				attrs = append(attrs, "field", path[len(path)-1])
			}
		}
		s.logger.Info("find menu", attrs...)
	}(time.Now())
	return s.next.FindMenu(ctx, q)
}

// LoggingFacilityService wraps a FacilityService with logging.
type LoggingFacilityService struct {
	next   mensa.FacilityService
	logger *slog.Logger
}

// NewLoggingFacilityService creates a new LoggingFacilityService.
func NewLoggingFacilityService(next mensa.FacilityService, logger *slog.Logger) *LoggingFacilityService {
	return &LoggingFacilityService{next: next, logger: logger}
}

// FindFacilities delegates to the wrapped service and logs the count.
func (s *LoggingFacilityService) FindFacilities(ctx context.Context) (list mensa.Response[mensa.Facility], err error) {
	defer func(begin time.Time) {
		s.logger.Info("find facilities",
			"groups", len(list),
			"facilities", list.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFacilities(ctx)
}

// LoggingAllergenService wraps an AllergenService with logging.
type LoggingAllergenService struct {
	next   mensa.AllergenService
	logger *slog.Logger
}

// NewLoggingAllergenService creates a new LoggingAllergenService.
func NewLoggingAllergenService(next mensa.AllergenService, logger *slog.Logger) *LoggingAllergenService {
	return &LoggingAllergenService{next: next, logger: logger}
}

// FindAllergens delegates to the wrapped service and logs the count.
func (s *LoggingAllergenService) FindAllergens(ctx context.Context) (allergens []mensa.Allergen, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find allergens",
			"count", len(allergens),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindAllergens(ctx)
}
