package tasks

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("07:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TimeOfDay(7*60+30) {
		t.Fatalf("got %d, want 450", got)
	}
	if got.String() != "07:30" {
		t.Fatalf("String() = %q, want 07:30", got.String())
	}

	for _, bad := range []string{"", "7am", "25:00", "12:60", "-1:00"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseConstraint(t *testing.T) {
	c, err := ParseConstraint("before 09:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != ConstraintBefore || c.At != TimeOfDay(9*60) {
		t.Fatalf("unexpected constraint: %+v", c)
	}

	c, err = ParseConstraint("after 18:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != ConstraintAfter {
		t.Fatalf("unexpected kind: %s", c.Kind)
	}

	// Vacío = sin constraint, no error.
	c, err = ParseConstraint("")
	if err != nil || c != nil {
		t.Fatalf("empty constraint: got (%v, %v)", c, err)
	}

	for _, bad := range []string{"before", "during 09:00", "before 9am", "before 09:00 extra"} {
		if _, err := ParseConstraint(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestConstraintAllows(t *testing.T) {
	before9 := Constraint{Kind: ConstraintBefore, At: TimeOfDay(9 * 60)}

	// before = la tarea debe terminar a más tardar en At.
	if !before9.Allows(TimeOfDay(8*60+30), 30) {
		t.Fatal("08:30+30min should satisfy before 09:00")
	}
	if before9.Allows(TimeOfDay(8*60+45), 30) {
		t.Fatal("08:45+30min ends past 09:00, should not satisfy")
	}

	after18 := Constraint{Kind: ConstraintAfter, At: TimeOfDay(18 * 60)}
	if !after18.Allows(TimeOfDay(18*60), 60) {
		t.Fatal("start exactly at 18:00 should satisfy after 18:00")
	}
	if after18.Allows(TimeOfDay(17*60+45), 30) {
		t.Fatal("17:45 start should not satisfy after 18:00")
	}
}

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]Priority{
		"high":   PriorityHigh,
		"Medium": PriorityMedium,
		" low ":  PriorityLow,
	} {
		got, err := ParsePriority(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: got %s, want %s", in, got, want)
		}
	}

	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
	if Priority("urgent").Rank() != 0 {
		t.Fatal("unknown priority must rank 0")
	}
}

func TestParseFrequency(t *testing.T) {
	got, err := ParseFrequency("biweekly")
	if err != nil || got != FrequencyBiweekly {
		t.Fatalf("got (%s, %v)", got, err)
	}

	got, err = ParseFrequency("")
	if err != nil || got != FrequencyNone {
		t.Fatalf("empty frequency: got (%q, %v)", got, err)
	}

	if _, err := ParseFrequency("hourly"); err == nil {
		t.Fatal("expected error for unknown frequency")
	}
}
