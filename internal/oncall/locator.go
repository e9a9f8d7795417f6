package oncall

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/pagerduty"
)

// ShiftFetcher is the bulk-query capability the locator builds on.
// *Planner satisfies it.
type ShiftFetcher interface {
	FetchAll(ctx context.Context, q domain.ScheduleQuery) ([]pagerduty.Oncall, error)
}

// Locator finds the maximal run of consecutive shifts a user holds
// starting at a given date. This per-day walk is deliberately a
// different call pattern from the bulk window query: the run is
// defined day by day, and the first empty day ends it.
type Locator struct {
	fetcher ShiftFetcher
	log     *zap.Logger
}

// NewLocator creates a Locator over the given fetcher.
func NewLocator(fetcher ShiftFetcher, log *zap.Logger) *Locator {
	return &Locator{fetcher: fetcher, log: log}
}

// FindConsecutive walks UTC-day windows [00:00, 00:00+24h) from
// startDate for at most horizonDays, querying each day for the target
// user's shifts (with overflow, so multi-day shifts surface in every
// day they touch). The first day with no shift terminates the search
// permanently — there is no resume after a gap. An empty day 0 yields
// an empty, non-error result: "nothing to override" is not a failure.
func (l *Locator) FindConsecutive(ctx context.Context, scheduleID, userID string, startDate time.Time, horizonDays int) ([]domain.Shift, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizonDays)
	}

	day0 := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)

	var run []domain.Shift
	seen := make(map[string]struct{})
	for i := 0; i < horizonDays; i++ {
		since := day0.AddDate(0, 0, i)
		records, err := l.fetcher.FetchAll(ctx, domain.ScheduleQuery{
			ScheduleID: scheduleID,
			Since:      since,
			Until:      since.AddDate(0, 0, 1),
			UserID:     userID,
			Overflow:   true,
		})
		if err != nil {
			return nil, err
		}
		shifts, err := Dedupe(records, time.UTC)
		if err != nil {
			return nil, err
		}
		if len(shifts) == 0 {
			l.log.Debug("gap found, run complete",
				zap.String("user_id", userID),
				zap.Int("day", i),
				zap.Int("shifts", len(run)),
			)
			break
		}
		// A shift spanning midnight reappears in the next day's window;
		// keep the first occurrence only, preserving day order.
		for _, s := range shifts {
			k := domain.FormatWireTime(s.Start) + "/" + domain.FormatWireTime(s.End) + "/" + s.UserID
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			run = append(run, s)
		}
	}
	return run, nil
}
