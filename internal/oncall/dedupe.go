package oncall

import (
	"fmt"
	"sort"
	"time"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/pagerduty"
)

// Dedupe normalizes raw on-call records into a canonical shift list:
// timestamps converted into loc, duplicates collapsed on the
// (start, end, user) triple, output sorted by start, then end, then
// user id. The upstream returns the same interval from overlapping
// query windows and nested rotation layers, so the full record set
// must be deduped together. Deterministic; empty input yields empty
// output.
func Dedupe(records []pagerduty.Oncall, loc *time.Location) ([]domain.Shift, error) {
	type key struct {
		start, end int64
		user       string
	}

	seen := make(map[key]struct{}, len(records))
	shifts := make([]domain.Shift, 0, len(records))
	for _, rec := range records {
		start, err := domain.ParseWireTime(rec.Start, loc)
		if err != nil {
			return nil, fmt.Errorf("shift start: %w", err)
		}
		end, err := domain.ParseWireTime(rec.End, loc)
		if err != nil {
			return nil, fmt.Errorf("shift end: %w", err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("shift for user %s: end %s not after start %s",
				rec.User.ID, rec.End, rec.Start)
		}

		// Keying on instants, not representations: the same shift in
		// different zones must still collapse.
		k := key{start: start.UnixNano(), end: end.UnixNano(), user: rec.User.ID}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		shifts = append(shifts, domain.Shift{Start: start, End: end, UserID: rec.User.ID})
	}

	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Before(shifts[j]) })
	return shifts, nil
}
