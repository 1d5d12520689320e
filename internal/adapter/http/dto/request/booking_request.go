package request

import "strings"

// CreateBookingRequest is the renter-facing booking payload. Field
// names preserve the public API contract of the original frontend.
type CreateBookingRequest struct {
	CarID           string  `json:"carId" binding:"required"`
	UserID          string  `json:"userId"`
	StartDate       string  `json:"startDate" binding:"required"`
	EndDate         string  `json:"endDate" binding:"required"`
	PickupTime      string  `json:"pickupTime"`
	DropoffTime     string  `json:"dropoffTime"`
	PickupLocation  string  `json:"pickupLocation"`
	DropoffLocation string  `json:"dropoffLocation"`
	TotalAmount     float64 `json:"totalAmount"`
}

// ResolveUserID prefers the authenticated principal over the body
// field; the body value only backstops unauthenticated test traffic.
func (r CreateBookingRequest) ResolveUserID(principalID string) string {
	if v := strings.TrimSpace(principalID); v != "" {
		return v
	}
	return strings.TrimSpace(r.UserID)
}

// UpdateBookingStatusRequest drives a state-machine transition.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
