package oncall

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/pagerduty"
)

// fakeFetcher answers per-day window queries from a day-offset map and
// records which day offsets were queried.
type fakeFetcher struct {
	start   time.Time
	byDay   map[int][]pagerduty.Oncall
	failDay int // day offset that fails; -1 for never
	queried []int
}

func (f *fakeFetcher) FetchAll(_ context.Context, q domain.ScheduleQuery) ([]pagerduty.Oncall, error) {
	day := int(q.Since.Sub(f.start).Hours() / 24)
	f.queried = append(f.queried, day)
	if f.failDay >= 0 && day == f.failDay {
		return nil, fmt.Errorf("%w: day %d", domain.ErrUpstreamUnavailable, day)
	}
	if !q.Overflow {
		return nil, errors.New("day windows must query with overflow")
	}
	return f.byDay[day], nil
}

func dayShift(day int, userID string) pagerduty.Oncall {
	start := time.Date(2024, time.March, 20+day, 9, 0, 0, 0, time.UTC)
	return rec(domain.FormatWireTime(start), domain.FormatWireTime(start.Add(24*time.Hour)), userID)
}

func TestLocator_StopsAtFirstGap(t *testing.T) {
	f := &fakeFetcher{
		start:   time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		failDay: -1,
		byDay: map[int][]pagerduty.Oncall{
			0: {dayShift(0, "U1")},
			1: {dayShift(1, "U1")},
			2: {dayShift(2, "U1")},
			// day 3 empty; day 4 would have a shift but must never be queried
			4: {dayShift(4, "U1")},
		},
	}
	l := NewLocator(f, zap.NewNop())

	got, err := l.FindConsecutive(context.Background(), "SCHED1", "U1", f.start, 5)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 consecutive shifts, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Start.Before(got[i-1].Start) {
			t.Fatalf("run out of day order at %d", i)
		}
	}
	for _, day := range f.queried {
		if day >= 4 {
			t.Fatalf("queried day %d after the gap ended the run", day)
		}
	}
	if len(f.queried) != 4 { // days 0..3; the empty day 3 terminates
		t.Fatalf("want 4 day queries, got %v", f.queried)
	}
}

func TestLocator_EmptyDayZeroMeansNothingToOverride(t *testing.T) {
	f := &fakeFetcher{
		start:   time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		failDay: -1,
		byDay:   map[int][]pagerduty.Oncall{1: {dayShift(1, "U1")}},
	}
	l := NewLocator(f, zap.NewNop())

	got, err := l.FindConsecutive(context.Background(), "SCHED1", "U1", f.start, 5)
	if err != nil {
		t.Fatalf("empty day 0 is not an error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty run, got %d shifts", len(got))
	}
	if len(f.queried) != 1 {
		t.Fatalf("want exactly one day query, got %v", f.queried)
	}
}

func TestLocator_HorizonBoundsQueries(t *testing.T) {
	f := &fakeFetcher{
		start:   time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		failDay: -1,
		byDay:   map[int][]pagerduty.Oncall{},
	}
	for day := 0; day < 30; day++ {
		f.byDay[day] = []pagerduty.Oncall{dayShift(day, "U1")}
	}
	l := NewLocator(f, zap.NewNop())

	got, err := l.FindConsecutive(context.Background(), "SCHED1", "U1", f.start, 7)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("want horizon-bounded run of 7, got %d", len(got))
	}
	if len(f.queried) != 7 {
		t.Fatalf("want 7 day queries, got %d", len(f.queried))
	}
}

func TestLocator_MidnightSpanningShiftNotDuplicated(t *testing.T) {
	// One 48h shift surfaces in both day windows via overflow.
	long := rec("2024-03-20T09:00:00Z", "2024-03-22T09:00:00Z", "U1")
	f := &fakeFetcher{
		start:   time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		failDay: -1,
		byDay: map[int][]pagerduty.Oncall{
			0: {long},
			1: {long},
		},
	}
	l := NewLocator(f, zap.NewNop())

	got, err := l.FindConsecutive(context.Background(), "SCHED1", "U1", f.start, 3)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want the spanning shift once, got %d", len(got))
	}
}

func TestLocator_TransportFailurePropagates(t *testing.T) {
	f := &fakeFetcher{
		start:   time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		failDay: 1,
		byDay:   map[int][]pagerduty.Oncall{0: {dayShift(0, "U1")}},
	}
	l := NewLocator(f, zap.NewNop())

	_, err := l.FindConsecutive(context.Background(), "SCHED1", "U1", f.start, 5)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("want ErrUpstreamUnavailable, got %v", err)
	}
}

func TestLocator_RejectsNonPositiveHorizon(t *testing.T) {
	l := NewLocator(&fakeFetcher{failDay: -1}, zap.NewNop())
	if _, err := l.FindConsecutive(context.Background(), "SCHED1", "U1", time.Now(), 0); err == nil {
		t.Fatal("want error for zero horizon")
	}
}
