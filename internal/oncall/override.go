package oncall

import (
	"context"

	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/pagerduty"
)

// OverrideCreator posts one schedule override.
type OverrideCreator interface {
	CreateOverride(ctx context.Context, scheduleID string, ov pagerduty.Override) (pagerduty.CreatedOverride, error)
}

// Result is the outcome of one override submission. Exactly one of
// CreatedID and Err is set.
type Result struct {
	Shift     domain.Shift
	CreatedID string
	Err       error
}

// Submitter issues override creations, one request per shift.
type Submitter struct {
	api OverrideCreator
	log *zap.Logger
}

// NewSubmitter creates a Submitter over the given creator.
func NewSubmitter(api OverrideCreator, log *zap.Logger) *Submitter {
	return &Submitter{api: api, log: log}
}

// Submit processes shifts in input order, best-effort: one rejected
// submission does not abort the rest — a conflict on one day must not
// block overriding the others. Results come back in input order, one
// per shift. Submissions are not idempotent; resubmitting can create
// duplicate overrides upstream.
func (s *Submitter) Submit(ctx context.Context, scheduleID, assignedUserID string, shifts []domain.Shift) []Result {
	results := make([]Result, 0, len(shifts))
	for _, sh := range shifts {
		ov := pagerduty.Override{
			Start: domain.FormatWireTime(sh.Start),
			End:   domain.FormatWireTime(sh.End),
			User:  pagerduty.APIObject{ID: assignedUserID, Type: "user_reference"},
		}
		created, err := s.api.CreateOverride(ctx, scheduleID, ov)
		if err != nil {
			s.log.Warn("override rejected",
				zap.String("schedule_id", scheduleID),
				zap.String("start", ov.Start),
				zap.String("end", ov.End),
				zap.Error(err),
			)
			results = append(results, Result{Shift: sh, Err: err})
			continue
		}
		results = append(results, Result{Shift: sh, CreatedID: created.ID})
	}
	return results
}
