package response

import (
	"time"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
)

// Envelope is the response wrapper the original API exposed: every
// success carries success=true plus data, every failure success=false
// plus a message.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

type BookingResponse struct {
	ID              string    `json:"id"`
	CarID           string    `json:"carId"`
	UserID          string    `json:"userId"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	PickupTime      string    `json:"pickupTime,omitempty"`
	DropoffTime     string    `json:"dropoffTime,omitempty"`
	PickupLocation  string    `json:"pickupLocation,omitempty"`
	DropoffLocation string    `json:"dropoffLocation,omitempty"`
	TotalAmount     float64   `json:"totalAmount"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBooking(b entities.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		CarID:           b.CarID,
		UserID:          b.UserID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		PickupTime:      b.PickupTime,
		DropoffTime:     b.DropoffTime,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		TotalAmount:     b.TotalAmount,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func FromBookings(bs []entities.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}

// AvailabilityResponse keeps the original flat shape of the
// availability endpoint; it is not wrapped in the envelope.
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
