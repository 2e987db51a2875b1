package tasks

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceDate_FixedSteps(t *testing.T) {
	base := date(2024, time.March, 10)

	cases := []struct {
		freq Frequency
		want time.Time
	}{
		{FrequencyDaily, date(2024, time.March, 11)},
		{FrequencyWeekly, date(2024, time.March, 17)},
		{FrequencyBiweekly, date(2024, time.March, 24)},
	}

	for _, c := range cases {
		got, err := NextOccurrenceDate(base, c.freq)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.freq, err)
		}
		if !got.Equal(c.want) {
			t.Fatalf("%s: got %s, want %s", c.freq, got, c.want)
		}
	}
}

func TestNextOccurrenceDate_MonthlyClampsDayOfMonth(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"jan31 leap year", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"jan31 regular year", date(2023, time.January, 31), date(2023, time.February, 28)},
		{"mar31 to apr30", date(2024, time.March, 31), date(2024, time.April, 30)},
		{"mid month unchanged", date(2024, time.March, 15), date(2024, time.April, 15)},
		{"year rollover", date(2024, time.December, 15), date(2025, time.January, 15)},
		{"dec31 to jan31", date(2024, time.December, 31), date(2025, time.January, 31)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NextOccurrenceDate(c.from, FrequencyMonthly)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(c.want) {
				t.Fatalf("got %s, want %s", got, c.want)
			}
		})
	}
}

func TestNextOccurrenceDate_Deterministic(t *testing.T) {
	from := date(2024, time.January, 31)

	a, err := NextOccurrenceDate(from, FrequencyMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NextOccurrenceDate(from, FrequencyMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("same input produced different outputs: %s vs %s", a, b)
	}
}

func TestNextOccurrenceDate_NoFrequencyIsError(t *testing.T) {
	if _, err := NextOccurrenceDate(date(2024, time.March, 10), FrequencyNone); err == nil {
		t.Fatal("expected error for FrequencyNone")
	}
	if _, err := NextOccurrenceDate(date(2024, time.March, 10), Frequency("hourly")); err == nil {
		t.Fatal("expected error for unknown frequency")
	}
}
