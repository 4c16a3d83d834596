package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
)

// Checker answers the two booking questions with one polarity each:
// IsAvailable is true when the slot fits a configured window, HasConflict is
// true when the slot overlaps a live appointment.
type Checker struct {
	repo domain.Repository
	loc  *time.Location
}

func NewChecker(repo domain.Repository, loc *time.Location) *Checker {
	return &Checker{repo: repo, loc: loc}
}

func (c *Checker) IsAvailable(
	ctx context.Context,
	doctorID uuid.UUID,
	day domain.Day,
	start domain.Clock,
	duration time.Duration,
) (bool, error) {

	// every window of the doctor; the day filter runs in memory
	rows, err := c.repo.ListAvailabilities(ctx, doctorID)
	if err != nil {
		return false, err
	}

	return domain.WithinWindows(rows, day, start, duration), nil
}

func (c *Checker) HasConflict(
	ctx context.Context,
	doctorID uuid.UUID,
	slot domain.Slot,
	excludeID uuid.UUID,
) (bool, error) {

	start, end := slot.Bounds(c.loc)
	return c.repo.HasTimeConflict(ctx, doctorID, slot.Date, start, end, excludeID)
}

// Verify runs the availability check, then the conflict check.
func (c *Checker) Verify(
	ctx context.Context,
	doctorID uuid.UUID,
	slot domain.Slot,
	excludeID uuid.UUID,
) error {

	ok, err := c.IsAvailable(ctx, doctorID, slot.Day(), slot.Start, slot.Duration)
	if err != nil {
		return fmt.Errorf("check availability: %w", err)
	}
	if !ok {
		return httperr.ErrUnavailable()
	}

	conflict, err := c.HasConflict(ctx, doctorID, slot, excludeID)
	if err != nil {
		return fmt.Errorf("check conflict: %w", err)
	}
	if conflict {
		return httperr.ErrConflict()
	}

	return nil
}
