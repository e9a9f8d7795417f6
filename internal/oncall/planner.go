package oncall

import (
	"context"

	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/pagerduty"
)

const defaultPageLimit = 100

// OncallPager fetches one page of raw on-call records.
type OncallPager interface {
	OncallsPage(ctx context.Context, p pagerduty.OncallsParams) (pagerduty.OncallsPage, error)
}

// Planner turns a ScheduleQuery into upstream query parameters and
// drives pagination to exhaustion.
type Planner struct {
	api       OncallPager
	log       *zap.Logger
	pageLimit int
}

// NewPlanner creates a Planner over the given page source.
func NewPlanner(api OncallPager, log *zap.Logger) *Planner {
	return &Planner{api: api, log: log, pageLimit: defaultPageLimit}
}

// FetchAll accumulates every page of the query into one record slice.
// Duplicates can span page boundaries, so downstream dedup needs the
// complete set; on any page failure the partial accumulation is
// discarded and the error returned — a truncated shift set would
// misrepresent schedule state.
func (p *Planner) FetchAll(ctx context.Context, q domain.ScheduleQuery) ([]pagerduty.Oncall, error) {
	params := pagerduty.OncallsParams{
		Since:    q.Since,
		Until:    q.Until,
		Overflow: q.Overflow,
		Limit:    p.pageLimit,
	}
	if q.ScheduleID != "" {
		params.ScheduleIDs = []string{q.ScheduleID}
	}
	if q.UserID != "" {
		params.UserIDs = []string{q.UserID}
	}

	var records []pagerduty.Oncall
	for offset := 0; ; {
		params.Offset = offset
		page, err := p.api.OncallsPage(ctx, params)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Oncalls...)
		if !page.More {
			break
		}
		step := page.Limit
		if step == 0 {
			step = len(page.Oncalls)
		}
		if step == 0 {
			// Upstream claimed more pages but sent an empty one; stop
			// rather than loop on the same offset.
			p.log.Warn("empty page with more=true",
				zap.String("schedule_id", q.ScheduleID),
				zap.Int("offset", offset),
			)
			break
		}
		offset += step
	}

	p.log.Debug("fetched on-call records",
		zap.String("schedule_id", q.ScheduleID),
		zap.String("since", domain.FormatWireTime(q.Since)),
		zap.String("until", domain.FormatWireTime(q.Until)),
		zap.Int("records", len(records)),
	)
	return records, nil
}
