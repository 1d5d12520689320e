package entities

import "time"

// BookingStatus is the booking lifecycle state.
//
// The machine only moves forward:
//
//	pending -> confirmed -> completed
//
// with cancelled reachable from pending or confirmed. completed and
// cancelled are terminal.

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus maps a wire value to a known status.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// rank orders the forward path. cancelled sits outside the ordering and
// is handled explicitly.
func (s BookingStatus) rank() int {
	switch s {
	case BookingStatusPending:
		return 0
	case BookingStatusConfirmed:
		return 1
	case BookingStatusCompleted:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether the machine admits s -> target.
// Terminal states admit nothing. Same-status transitions are admitted
// so repeated updates stay idempotent. Skipping confirmed on the way to
// completed is allowed; moving backward is not.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return !s.IsTerminal()
	}
	if s.IsTerminal() {
		return false
	}
	if target == BookingStatusCancelled {
		return true
	}
	return target.rank() > s.rank()
}

// PaymentStatus tracks whether the provider captured the charge.
// It moves unpaid -> paid exactly once.

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// BookingDateFormat is the wire and storage format for rental dates.
// Date-only strings in this layout compare lexicographically in
// chronological order, which the DynamoDB filter expressions rely on.
const BookingDateFormat = "2006-01-02"

// Booking is the rental reservation persisted by the service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (car_id-index): car_id
//   - GSI2 (user_id-index): user_id
type Booking struct {
	ID              string        `json:"id"`
	CarID           string        `json:"car_id"`
	UserID          string        `json:"user_id"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	PickupTime      string        `json:"pickup_time"`
	DropoffTime     string        `json:"dropoff_time"`
	PickupLocation  string        `json:"pickup_location"`
	DropoffLocation string        `json:"dropoff_location"`
	TotalAmount     float64       `json:"total_amount"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Overlaps reports whether the booking's date range intersects
// [start, end] under the closed-interval test: two ranges overlap iff
// startA <= endB && startB <= endA. The same predicate backs both the
// availability check and booking creation.
func (b Booking) Overlaps(start, end string) bool {
	return b.StartDate <= end && start <= b.EndDate
}

// Days is the chargeable day count, inclusive of both endpoints.
func (b Booking) Days() int {
	start, err := time.Parse(BookingDateFormat, b.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(BookingDateFormat, b.EndDate)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
