package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
	mock_interfaces "github.com/techcs7646/carRental-backend/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// memBookingRepo is an in-memory IBookingRepository used for the
// end-to-end lifecycle scenarios; it applies the same overlap predicate
// and compare-and-set guards the DynamoDB repository implements.
type memBookingRepo struct {
	mu    sync.Mutex
	items map[string]entities.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{items: map[string]entities.Booking{}}
}

func (r *memBookingRepo) Insert(_ context.Context, b entities.Booking) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; ok {
		return entities.Booking{}, errors.New("conditional check failed")
	}
	r.items[b.ID] = b
	return b, nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memBookingRepo) FindOverlapping(_ context.Context, carID, start, end string, exclude []entities.BookingStatus) ([]entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Booking
	for _, b := range r.items {
		if b.CarID != carID {
			continue
		}
		excluded := false
		for _, s := range exclude {
			if b.Status == s {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id string, from, to entities.BookingStatus) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok || b.Status != from {
		return entities.Booking{}, nil
	}
	b.Status = to
	r.items[id] = b
	return b, nil
}

func (r *memBookingRepo) UpdatePayment(_ context.Context, id string, from, to entities.BookingStatus, payment entities.PaymentStatus) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok || b.Status != from || b.PaymentStatus != entities.PaymentStatusUnpaid {
		return entities.Booking{}, nil
	}
	b.Status = to
	b.PaymentStatus = payment
	r.items[id] = b
	return b, nil
}

func (r *memBookingRepo) ListByUserID(_ context.Context, userID string) ([]entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Booking
	for _, b := range r.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByStatus(_ context.Context, status entities.BookingStatus) ([]entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Booking
	for _, b := range r.items {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func availableCarRepo(ctrl *gomock.Controller, carID string) *mock_interfaces.MockICarRepository {
	carRepo := mock_interfaces.NewMockICarRepository(ctrl)
	carRepo.EXPECT().GetByID(gomock.Any(), carID).Return(entities.Car{ID: carID, IsAvailable: true}, nil).AnyTimes()
	return carRepo
}

func TestBookingUseCase_Create_Validations(t *testing.T) {
	uc := NewBookingUseCase(nil, nil)

	t.Run("empty car id", func(t *testing.T) {
		_, err := uc.Create(context.Background(), CreateBookingCommand{UserID: "u1", StartDate: "2024-06-01", EndDate: "2024-06-05"})
		if !errors.Is(err, ErrInvalidCarID) {
			t.Fatalf("expected ErrInvalidCarID, got %v", err)
		}
	})

	t.Run("empty user id", func(t *testing.T) {
		_, err := uc.Create(context.Background(), CreateBookingCommand{CarID: "c1", StartDate: "2024-06-01", EndDate: "2024-06-05"})
		if !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("expected ErrInvalidUserID, got %v", err)
		}
	})

	t.Run("unparseable dates", func(t *testing.T) {
		for _, bad := range []string{"06/01/2024", "2024-13-40", "yesterday", ""} {
			_, err := uc.Create(context.Background(), CreateBookingCommand{CarID: "c1", UserID: "u1", StartDate: bad, EndDate: "2024-06-05"})
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Fatalf("start=%q: expected ErrInvalidDateFormat, got %v", bad, err)
			}
			_, err = uc.Create(context.Background(), CreateBookingCommand{CarID: "c1", UserID: "u1", StartDate: "2024-06-01", EndDate: bad})
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Fatalf("end=%q: expected ErrInvalidDateFormat, got %v", bad, err)
			}
		}
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := uc.Create(context.Background(), CreateBookingCommand{CarID: "c1", UserID: "u1", StartDate: "2024-06-05", EndDate: "2024-06-01"})
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestBookingUseCase_Create_CarChecks(t *testing.T) {
	cmd := CreateBookingCommand{CarID: "c1", UserID: "u1", StartDate: "2024-06-01", EndDate: "2024-06-05"}

	t.Run("car lookup error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		carRepo := mock_interfaces.NewMockICarRepository(ctrl)
		carRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(entities.Car{}, errors.New("db"))
		uc := NewBookingUseCase(newMemBookingRepo(), carRepo)

		_, err := uc.Create(context.Background(), cmd)
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("car not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		carRepo := mock_interfaces.NewMockICarRepository(ctrl)
		carRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(entities.Car{}, nil)
		uc := NewBookingUseCase(newMemBookingRepo(), carRepo)

		_, err := uc.Create(context.Background(), cmd)
		if !errors.Is(err, ErrCarNotFound) {
			t.Fatalf("expected ErrCarNotFound, got %v", err)
		}
	})

	t.Run("car flagged unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		carRepo := mock_interfaces.NewMockICarRepository(ctrl)
		carRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(entities.Car{ID: "c1", IsAvailable: false}, nil)
		uc := NewBookingUseCase(newMemBookingRepo(), carRepo)

		_, err := uc.Create(context.Background(), cmd)
		if !errors.Is(err, ErrCarUnavailable) {
			t.Fatalf("expected ErrCarUnavailable, got %v", err)
		}
	})
}

func TestBookingUseCase_NoDoubleBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := newMemBookingRepo()
	uc := NewBookingUseCase(repo, availableCarRepo(ctrl, "car-x"))
	ctx := context.Background()

	create := func(start, end string) (entities.Booking, error) {
		return uc.Create(ctx, CreateBookingCommand{CarID: "car-x", UserID: "u1", StartDate: start, EndDate: end})
	}

	first, err := create("2024-06-01", "2024-06-05")
	if err != nil {
		t.Fatalf("first booking should succeed: %v", err)
	}
	if first.Status != entities.BookingStatusPending || first.PaymentStatus != entities.PaymentStatusUnpaid {
		t.Fatalf("new booking must start pending/unpaid, got %s/%s", first.Status, first.PaymentStatus)
	}

	if _, err := create("2024-06-03", "2024-06-04"); !errors.Is(err, ErrDatesConflict) {
		t.Fatalf("overlapping booking must conflict, got %v", err)
	}
	if _, err := create("2024-06-05", "2024-06-08"); !errors.Is(err, ErrDatesConflict) {
		t.Fatalf("shared end date must conflict (closed interval), got %v", err)
	}

	if _, err := create("2024-06-06", "2024-06-10"); err != nil {
		t.Fatalf("adjacent non-overlapping booking should succeed: %v", err)
	}

	// Cancelling frees the calendar.
	if _, err := uc.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := create("2024-06-01", "2024-06-05"); err != nil {
		t.Fatalf("dates of a cancelled booking should be rebookable: %v", err)
	}
}

// CheckAvailability and Create must agree: the availability answer for
// a range predicts exactly whether a create for that range conflicts.
func TestBookingUseCase_AvailabilityMatchesCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := newMemBookingRepo()
	uc := NewBookingUseCase(repo, availableCarRepo(ctrl, "car-x"))
	ctx := context.Background()

	if _, err := uc.Create(ctx, CreateBookingCommand{CarID: "car-x", UserID: "u1", StartDate: "2024-06-10", EndDate: "2024-06-15"}); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	ranges := [][2]string{
		{"2024-06-01", "2024-06-05"},
		{"2024-06-01", "2024-06-10"},
		{"2024-06-12", "2024-06-13"},
		{"2024-06-15", "2024-06-20"},
		{"2024-06-16", "2024-06-20"},
		{"2024-06-10", "2024-06-10"},
	}
	for _, r := range ranges {
		res, err := uc.CheckAvailability(ctx, "car-x", r[0], r[1])
		if err != nil {
			t.Fatalf("availability(%s..%s): %v", r[0], r[1], err)
		}
		_, createErr := uc.Create(ctx, CreateBookingCommand{CarID: "car-x", UserID: "u2", StartDate: r[0], EndDate: r[1]})
		if res.Available && createErr != nil {
			t.Fatalf("range %s..%s reported available but create failed: %v", r[0], r[1], createErr)
		}
		if !res.Available && !errors.Is(createErr, ErrDatesConflict) {
			t.Fatalf("range %s..%s reported unavailable but create returned %v", r[0], r[1], createErr)
		}
		if createErr == nil {
			// Remove the probe booking so later ranges see the same store.
			var probeID string
			for id, b := range repo.items {
				if b.UserID == "u2" {
					probeID = id
				}
			}
			delete(repo.items, probeID)
		}
	}
}

func TestBookingUseCase_CheckAvailability(t *testing.T) {
	t.Run("bad dates", func(t *testing.T) {
		uc := NewBookingUseCase(nil, nil)
		if _, err := uc.CheckAvailability(context.Background(), "c1", "bad", "2024-06-05"); !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
		}
		if _, err := uc.CheckAvailability(context.Background(), "c1", "2024-06-05", "2024-06-01"); !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("car not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		carRepo := mock_interfaces.NewMockICarRepository(ctrl)
		carRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(entities.Car{}, nil)
		uc := NewBookingUseCase(newMemBookingRepo(), carRepo)

		if _, err := uc.CheckAvailability(context.Background(), "c1", "2024-06-01", "2024-06-05"); !errors.Is(err, ErrCarNotFound) {
			t.Fatalf("expected ErrCarNotFound, got %v", err)
		}
	})

	t.Run("admin flag off is a negative answer, not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		carRepo := mock_interfaces.NewMockICarRepository(ctrl)
		carRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(entities.Car{ID: "c1", IsAvailable: false}, nil)
		uc := NewBookingUseCase(newMemBookingRepo(), carRepo)

		res, err := uc.CheckAvailability(context.Background(), "c1", "2024-06-01", "2024-06-05")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Available || res.Message != "Car is not available for rental" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestBookingUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, status entities.BookingStatus) (*BookingUseCase, *memBookingRepo, entities.Booking) {
		t.Helper()
		repo := newMemBookingRepo()
		b := entities.Booking{ID: "bk-1", CarID: "c1", UserID: "u1", StartDate: "2024-06-01", EndDate: "2024-06-05", Status: status, PaymentStatus: entities.PaymentStatusUnpaid}
		repo.items[b.ID] = b
		return NewBookingUseCase(repo, nil), repo, b
	}

	t.Run("invalid status value", func(t *testing.T) {
		uc, _, _ := seed(t, entities.BookingStatusPending)
		if _, err := uc.UpdateStatus(ctx, "bk-1", "paid"); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, _, _ := seed(t, entities.BookingStatusPending)
		if _, err := uc.UpdateStatus(ctx, "missing", "confirmed"); !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("forward transition", func(t *testing.T) {
		uc, _, _ := seed(t, entities.BookingStatusPending)
		b, err := uc.UpdateStatus(ctx, "bk-1", "confirmed")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Status != entities.BookingStatusConfirmed {
			t.Fatalf("expected confirmed, got %s", b.Status)
		}
	})

	t.Run("skipping confirmed is allowed", func(t *testing.T) {
		uc, _, _ := seed(t, entities.BookingStatusPending)
		if _, err := uc.UpdateStatus(ctx, "bk-1", "completed"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		uc, _, _ := seed(t, entities.BookingStatusConfirmed)
		b, err := uc.UpdateStatus(ctx, "bk-1", "confirmed")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Status != entities.BookingStatusConfirmed {
			t.Fatalf("unexpected status %s", b.Status)
		}
	})

	t.Run("no regression", func(t *testing.T) {
		uc, _, _ := seed(t, entities.BookingStatusConfirmed)
		if _, err := uc.UpdateStatus(ctx, "bk-1", "pending"); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("terminal states are immutable", func(t *testing.T) {
		for _, terminal := range []entities.BookingStatus{entities.BookingStatusCompleted, entities.BookingStatusCancelled} {
			uc, repo, _ := seed(t, terminal)
			for _, target := range []string{"pending", "confirmed", "completed", "cancelled"} {
				_, err := uc.UpdateStatus(ctx, "bk-1", target)
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("from %s to %s: expected ErrInvalidTransition, got %v", terminal, target, err)
				}
			}
			if repo.items["bk-1"].Status != terminal {
				t.Fatalf("terminal booking was mutated to %s", repo.items["bk-1"].Status)
			}
		}
	})
}

func TestBookingUseCase_Cancel(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, status entities.BookingStatus) (*BookingUseCase, *memBookingRepo) {
		t.Helper()
		repo := newMemBookingRepo()
		repo.items["bk-1"] = entities.Booking{
			ID: "bk-1", CarID: "c1", UserID: "u1",
			StartDate: "2024-06-01", EndDate: "2024-06-05",
			PickupLocation: "Airport", DropoffLocation: "Downtown",
			TotalAmount: 250, Status: status,
		}
		return NewBookingUseCase(repo, nil), repo
	}

	t.Run("not found", func(t *testing.T) {
		uc, _ := seed(t, entities.BookingStatusPending)
		if _, err := uc.Cancel(ctx, "missing"); !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("pending cancels and keeps display fields", func(t *testing.T) {
		uc, _ := seed(t, entities.BookingStatusPending)
		b, err := uc.Cancel(ctx, "bk-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Status != entities.BookingStatusCancelled {
			t.Fatalf("expected cancelled, got %s", b.Status)
		}
		if b.StartDate != "2024-06-01" || b.TotalAmount != 250 || b.PickupLocation != "Airport" || b.DropoffLocation != "Downtown" {
			t.Fatalf("cancel dropped display fields: %+v", b)
		}
	})

	t.Run("confirmed is still cancellable", func(t *testing.T) {
		uc, _ := seed(t, entities.BookingStatusConfirmed)
		if _, err := uc.Cancel(ctx, "bk-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("completed names the current status", func(t *testing.T) {
		uc, _ := seed(t, entities.BookingStatusCompleted)
		_, err := uc.Cancel(ctx, "bk-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if !strings.Contains(err.Error(), "already completed") {
			t.Fatalf("message should name the current status, got %q", err.Error())
		}
	})

	t.Run("cancelled twice fails", func(t *testing.T) {
		uc, _ := seed(t, entities.BookingStatusCancelled)
		_, err := uc.Cancel(ctx, "bk-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if !strings.Contains(err.Error(), "already cancelled") {
			t.Fatalf("message should name the current status, got %q", err.Error())
		}
	})
}

func TestBookingUseCase_ConcurrentCreatesSerialize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := newMemBookingRepo()
	uc := NewBookingUseCase(repo, availableCarRepo(ctrl, "car-x"))

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), CreateBookingCommand{
				CarID: "car-x", UserID: "u1",
				StartDate: "2024-06-01", EndDate: "2024-06-05",
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrDatesConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winning create, got %d", won)
	}
}

func TestBookingUseCase_Listings(t *testing.T) {
	ctx := context.Background()
	repo := newMemBookingRepo()
	repo.items["a"] = entities.Booking{ID: "a", UserID: "u1", Status: entities.BookingStatusPending}
	repo.items["b"] = entities.Booking{ID: "b", UserID: "u2", Status: entities.BookingStatusConfirmed}
	repo.items["c"] = entities.Booking{ID: "c", UserID: "u1", Status: entities.BookingStatusCancelled}
	uc := NewBookingUseCase(repo, nil)

	mine, err := uc.ListByUserID(ctx, "u1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 bookings for u1, got %d err=%v", len(mine), err)
	}

	confirmed, err := uc.ListAll(ctx, "confirmed")
	if err != nil || len(confirmed) != 1 || confirmed[0].ID != "b" {
		t.Fatalf("unexpected filtered listing: %+v err=%v", confirmed, err)
	}

	all, err := uc.ListAll(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 bookings, got %d err=%v", len(all), err)
	}

	if _, err := uc.ListAll(ctx, "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
