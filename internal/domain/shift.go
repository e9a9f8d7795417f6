package domain

import "time"

// Shift is one canonical on-call interval. Start and End are
// timezone-aware instants (start < end). Identity is the full
// (Start, End, UserID) triple: identical boundaries assigned to
// different users are distinct shifts, while identical triples from
// overlapping query windows collapse to one.
type Shift struct {
	Start  time.Time
	End    time.Time
	UserID string
}

// Before reports whether s sorts ahead of o: by start, ties broken by
// end, then by user id. Comparison is on instants, so shifts expressed
// in different zones order consistently.
func (s Shift) Before(o Shift) bool {
	if !s.Start.Equal(o.Start) {
		return s.Start.Before(o.Start)
	}
	if !s.End.Equal(o.End) {
		return s.End.Before(o.End)
	}
	return s.UserID < o.UserID
}

// Same reports identity under the (Start, End, UserID) triple.
func (s Shift) Same(o Shift) bool {
	return s.Start.Equal(o.Start) && s.End.Equal(o.End) && s.UserID == o.UserID
}

// ScheduleQuery describes one bulk /oncalls time-window query.
// Immutable once built; UserID empty means no user filter.
type ScheduleQuery struct {
	ScheduleID string
	Since      time.Time
	Until      time.Time
	UserID     string
	Overflow   bool
}
