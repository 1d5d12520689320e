package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
	"github.com/techcs7646/carRental-backend/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidCarID      = errors.New("invalid car id")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrInvalidBookingID  = errors.New("invalid booking id")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDateRange  = errors.New("start date must be before end date")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrCarNotFound       = errors.New("car not found")
	ErrCarUnavailable    = errors.New("car is not available for rental")
	ErrDatesConflict     = errors.New("car is already booked for these dates")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// nonTerminalExclusions are the statuses that no longer block a car's
// calendar. The conflict check skips them on both the availability and
// the creation path.
var nonTerminalExclusions = []entities.BookingStatus{
	entities.BookingStatusCancelled,
	entities.BookingStatusCompleted,
}

// CreateBookingCommand carries the renter's booking request.
type CreateBookingCommand struct {
	CarID           string
	UserID          string
	StartDate       string
	EndDate         string
	PickupTime      string
	DropoffTime     string
	PickupLocation  string
	DropoffLocation string
	TotalAmount     float64
}

// AvailabilityResult is the non-error answer to an availability query.
// A car blocked by its admin flag or by a conflicting booking is a
// negative result, not a failure.
type AvailabilityResult struct {
	Available bool
	Message   string
}

// IBookingUseCase is the booking lifecycle engine: creation with
// conflict detection, the status state machine, cancellation, and the
// availability query sharing creation's overlap predicate.
type IBookingUseCase interface {
	Create(ctx context.Context, cmd CreateBookingCommand) (entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, target string) (entities.Booking, error)
	Cancel(ctx context.Context, id string) (entities.Booking, error)
	CheckAvailability(ctx context.Context, carID, startDate, endDate string) (AvailabilityResult, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Booking, error)
	ListAll(ctx context.Context, statusFilter string) ([]entities.Booking, error)
}

type BookingUseCase struct {
	repo    interfaces.IBookingRepository
	carRepo interfaces.ICarRepository

	// carLocks serializes check-then-insert per car so two racing
	// creations for the same car cannot both pass the conflict check.
	// Holds *sync.Mutex values keyed by car id. Entries are never
	// pruned, so the map grows with the number of distinct cars booked
	// over the process lifetime (a mutex per car, fine at fleet scale).
	// Only serializes within one process; the store's conditional
	// writes remain the backstop.
	carLocks sync.Map
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(repo interfaces.IBookingRepository, carRepo interfaces.ICarRepository) *BookingUseCase {
	return &BookingUseCase{repo: repo, carRepo: carRepo}
}

func (u *BookingUseCase) lockCar(carID string) func() {
	v, _ := u.carLocks.LoadOrStore(carID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// normalizeDateRange parses both dates and re-renders them in the
// canonical storage layout. Ordering is validated on the parsed values.
func normalizeDateRange(startDate, endDate string) (string, string, error) {
	start, err := time.Parse(entities.BookingDateFormat, strings.TrimSpace(startDate))
	if err != nil {
		return "", "", ErrInvalidDateFormat
	}
	end, err := time.Parse(entities.BookingDateFormat, strings.TrimSpace(endDate))
	if err != nil {
		return "", "", ErrInvalidDateFormat
	}
	if start.After(end) {
		return "", "", ErrInvalidDateRange
	}
	return start.Format(entities.BookingDateFormat), end.Format(entities.BookingDateFormat), nil
}

func (u *BookingUseCase) Create(ctx context.Context, cmd CreateBookingCommand) (entities.Booking, error) {
	carID := strings.TrimSpace(cmd.CarID)
	userID := strings.TrimSpace(cmd.UserID)
	log.Printf("[booking][usecase] create start car_id=%s user_id=%s range=%s..%s", carID, userID, cmd.StartDate, cmd.EndDate)
	if carID == "" {
		return entities.Booking{}, ErrInvalidCarID
	}
	if userID == "" {
		return entities.Booking{}, ErrInvalidUserID
	}

	start, end, err := normalizeDateRange(cmd.StartDate, cmd.EndDate)
	if err != nil {
		log.Printf("[booking][usecase] create rejected car_id=%s err=%v", carID, err)
		return entities.Booking{}, err
	}

	// Check-then-insert is one critical section per car. The store's
	// conditional put guards the id; the lock guards the interval.
	unlock := u.lockCar(carID)
	defer unlock()

	car, err := u.carRepo.GetByID(ctx, carID)
	if err != nil {
		log.Printf("[booking][usecase] car lookup failed car_id=%s err=%v", carID, err)
		return entities.Booking{}, err
	}
	if car.ID == "" {
		return entities.Booking{}, ErrCarNotFound
	}
	if !car.IsAvailable {
		return entities.Booking{}, ErrCarUnavailable
	}

	overlapping, err := u.repo.FindOverlapping(ctx, carID, start, end, nonTerminalExclusions)
	if err != nil {
		log.Printf("[booking][usecase] conflict check failed car_id=%s err=%v", carID, err)
		return entities.Booking{}, err
	}
	if len(overlapping) > 0 {
		log.Printf("[booking][usecase] conflict car_id=%s range=%s..%s blocking=%s", carID, start, end, overlapping[0].ID)
		return entities.Booking{}, ErrDatesConflict
	}

	now := time.Now().UTC()
	b := entities.Booking{
		ID:              uuid.NewString(),
		CarID:           carID,
		UserID:          userID,
		StartDate:       start,
		EndDate:         end,
		PickupTime:      strings.TrimSpace(cmd.PickupTime),
		DropoffTime:     strings.TrimSpace(cmd.DropoffTime),
		PickupLocation:  strings.TrimSpace(cmd.PickupLocation),
		DropoffLocation: strings.TrimSpace(cmd.DropoffLocation),
		TotalAmount:     cmd.TotalAmount,
		Status:          entities.BookingStatusPending,
		PaymentStatus:   entities.PaymentStatusUnpaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := u.repo.Insert(ctx, b)
	if err != nil {
		log.Printf("[booking][usecase] insert failed booking_id=%s err=%v", b.ID, err)
		return entities.Booking{}, err
	}
	log.Printf("[booking][usecase] create success booking_id=%s car_id=%s status=%s", created.ID, carID, created.Status)
	return created, nil
}

func (u *BookingUseCase) UpdateStatus(ctx context.Context, id string, target string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}
	status, ok := entities.ParseBookingStatus(strings.TrimSpace(target))
	if !ok {
		return entities.Booking{}, ErrInvalidStatus
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}

	// The transition rule also rejects same-status repeats on terminal
	// bookings, so it must run before the no-op shortcut.
	if !b.Status.CanTransitionTo(status) {
		return entities.Booking{}, fmt.Errorf("%w: cannot move booking from %s to %s", ErrInvalidTransition, b.Status, status)
	}
	if b.Status == status {
		// Idempotent repeat of the current status; nothing to write.
		return b, nil
	}

	updated, err := u.repo.UpdateStatus(ctx, id, b.Status, status)
	if err != nil {
		log.Printf("[booking][usecase] status update failed booking_id=%s err=%v", id, err)
		return entities.Booking{}, err
	}
	if updated.ID == "" {
		// The compare-and-set lost to a concurrent writer.
		return entities.Booking{}, fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
	}
	log.Printf("[booking][usecase] status update success booking_id=%s status=%s", id, updated.Status)
	return updated, nil
}

func (u *BookingUseCase) Cancel(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	if b.Status.IsTerminal() {
		return entities.Booking{}, fmt.Errorf("%w: booking cannot be cancelled as it is already %s", ErrInvalidTransition, b.Status)
	}

	updated, err := u.repo.UpdateStatus(ctx, id, b.Status, entities.BookingStatusCancelled)
	if err != nil {
		log.Printf("[booking][usecase] cancel failed booking_id=%s err=%v", id, err)
		return entities.Booking{}, err
	}
	if updated.ID == "" {
		return entities.Booking{}, fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
	}
	log.Printf("[booking][usecase] cancel success booking_id=%s", id)
	return updated, nil
}

func (u *BookingUseCase) CheckAvailability(ctx context.Context, carID, startDate, endDate string) (AvailabilityResult, error) {
	carID = strings.TrimSpace(carID)
	if carID == "" {
		return AvailabilityResult{}, ErrInvalidCarID
	}
	start, end, err := normalizeDateRange(startDate, endDate)
	if err != nil {
		return AvailabilityResult{}, err
	}

	car, err := u.carRepo.GetByID(ctx, carID)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if car.ID == "" {
		return AvailabilityResult{}, ErrCarNotFound
	}
	if !car.IsAvailable {
		return AvailabilityResult{Available: false, Message: "Car is not available for rental"}, nil
	}

	overlapping, err := u.repo.FindOverlapping(ctx, carID, start, end, nonTerminalExclusions)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if len(overlapping) > 0 {
		return AvailabilityResult{Available: false, Message: "Car is not available for the selected dates"}, nil
	}
	return AvailabilityResult{Available: true, Message: "Car is available for the selected dates"}, nil
}

func (u *BookingUseCase) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}
	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (u *BookingUseCase) ListByUserID(ctx context.Context, userID string) ([]entities.Booking, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return u.repo.ListByUserID(ctx, userID)
}

func (u *BookingUseCase) ListAll(ctx context.Context, statusFilter string) ([]entities.Booking, error) {
	statusFilter = strings.TrimSpace(statusFilter)
	if statusFilter == "" {
		return u.repo.ListByStatus(ctx, "")
	}
	status, ok := entities.ParseBookingStatus(statusFilter)
	if !ok {
		return nil, ErrInvalidStatus
	}
	return u.repo.ListByStatus(ctx, status)
}
