package domain

import (
	"errors"
	"testing"
	"time"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load tz %s: %v", name, err)
	}
	return loc
}

func TestParseWireTime_ConvertsIntoTargetZone(t *testing.T) {
	loc := mustLoc(t, "America/New_York")

	got, err := ParseWireTime("2024-03-20T09:00:00Z", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// 09:00 UTC on 2024-03-20 is 05:00 EDT (-04:00).
	if got.Format("15:04") != "05:00" {
		t.Fatalf("want 05:00 local, got %s", got.Format("15:04"))
	}
	if got.Location() != loc {
		t.Fatalf("want location %v, got %v", loc, got.Location())
	}
	_, offset := got.Zone()
	if offset != -4*3600 {
		t.Fatalf("want offset -04:00, got %d", offset)
	}
	// Same instant regardless of zone.
	if !got.Equal(time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("instant drifted: %v", got)
	}
}

func TestParseWireTime_NilLocationMeansUTC(t *testing.T) {
	got, err := ParseWireTime("2024-03-20T09:00:00Z", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Location() != time.UTC {
		t.Fatalf("want UTC, got %v", got.Location())
	}
}

func TestParseWireTime_Malformed(t *testing.T) {
	loc := mustLoc(t, "Europe/Berlin")
	bad := []string{
		"",
		"2024-03-20 09:00:00",
		"2024-03-20T09:00:00",        // missing Z
		"2024-03-20T09:00:00.500Z",   // fractional seconds
		"2024-03-20T09:00:00+02:00",  // explicit offset
		"20-03-2024T09:00:00Z",       // wrong date order
		"2024-03-20T09:00Z",          // missing seconds
		"not a timestamp",
	}
	for _, s := range bad {
		if _, err := ParseWireTime(s, loc); !errors.Is(err, ErrMalformedTimestamp) {
			t.Fatalf("input %q: want ErrMalformedTimestamp, got %v", s, err)
		}
	}
}

func TestFormatWireTime_AlwaysUTCSecondPrecision(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	local := time.Date(2024, time.March, 20, 5, 0, 0, 123456789, loc)

	got := FormatWireTime(local)
	want := "2024-03-20T09:00:00Z"
	if got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestShift_Ordering(t *testing.T) {
	base := time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)
	a := Shift{Start: base, End: base.Add(8 * time.Hour), UserID: "U1"}
	b := Shift{Start: base, End: base.Add(8 * time.Hour), UserID: "U2"}
	c := Shift{Start: base, End: base.Add(9 * time.Hour), UserID: "U1"}
	d := Shift{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour), UserID: "U1"}

	if !a.Before(b) || b.Before(a) {
		t.Fatal("equal boundaries must order by user id")
	}
	if !a.Before(c) || c.Before(a) {
		t.Fatal("equal starts must order by end")
	}
	if !a.Before(d) || d.Before(a) {
		t.Fatal("start is the primary sort key")
	}

	// Same instant in a different zone is not "before" in either direction.
	ny := mustLoc(t, "America/New_York")
	aNY := Shift{Start: a.Start.In(ny), End: a.End.In(ny), UserID: "U1"}
	if a.Before(aNY) || aNY.Before(a) {
		t.Fatal("zone representation must not affect ordering")
	}
	if !a.Same(aNY) {
		t.Fatal("zone representation must not affect identity")
	}
}
