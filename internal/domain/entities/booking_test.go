package entities

import "testing"

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "completed", "cancelled"} {
		s, ok := ParseBookingStatus(valid)
		if !ok || string(s) != valid {
			t.Fatalf("expected %q to parse, got %q ok=%v", valid, s, ok)
		}
	}
	for _, invalid := range []string{"", "Pending", "paid", "done", "CANCELLED"} {
		if _, ok := ParseBookingStatus(invalid); ok {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	if BookingStatusPending.IsTerminal() || BookingStatusConfirmed.IsTerminal() {
		t.Fatal("pending/confirmed must not be terminal")
	}
	if !BookingStatusCompleted.IsTerminal() || !BookingStatusCancelled.IsTerminal() {
		t.Fatal("completed/cancelled must be terminal")
	}
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCompleted, true}, // skipping confirmed is allowed
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusPending, true}, // idempotent repeat
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false}, // no regression
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusCompleted, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusCompleted, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Fatalf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestBooking_Overlaps(t *testing.T) {
	b := Booking{StartDate: "2024-06-01", EndDate: "2024-06-05"}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "2024-06-03", "2024-06-04", true},
		{"identical", "2024-06-01", "2024-06-05", true},
		{"covers", "2024-05-30", "2024-06-10", true},
		{"left edge", "2024-05-28", "2024-06-01", true}, // closed interval: shared day conflicts
		{"right edge", "2024-06-05", "2024-06-08", true},
		{"before", "2024-05-20", "2024-05-31", false},
		{"after", "2024-06-06", "2024-06-10", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := b.Overlaps(c.start, c.end); got != c.want {
				t.Fatalf("overlap(%s..%s vs %s..%s) = %v, want %v", b.StartDate, b.EndDate, c.start, c.end, got, c.want)
			}
			// The predicate is symmetric in the two ranges.
			other := Booking{StartDate: c.start, EndDate: c.end}
			if got := other.Overlaps(b.StartDate, b.EndDate); got != c.want {
				t.Fatalf("overlap not symmetric for %s..%s", c.start, c.end)
			}
		})
	}
}

func TestBooking_Days(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-06-01", "2024-06-01", 1},
		{"2024-06-01", "2024-06-05", 5},
		{"2024-06-28", "2024-07-02", 5}, // crosses a month boundary
		{"bad", "2024-06-05", 0},
	}
	for _, c := range cases {
		b := Booking{StartDate: c.start, EndDate: c.end}
		if got := b.Days(); got != c.want {
			t.Fatalf("days(%s..%s) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}
