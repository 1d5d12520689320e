package response

import (
	"time"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
)

type CreatePaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
}

type ReceiptResponse struct {
	ReceiptNumber string    `json:"receiptNumber"`
	IssueDate     time.Time `json:"issueDate"`
	RenterName    string    `json:"renterName"`
	RenterEmail   string    `json:"renterEmail"`
	CarDetails    string    `json:"carDetails"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Days          int       `json:"days"`
	Amount        float64   `json:"amount"`
	PaymentID     string    `json:"paymentId"`
	PaymentStatus string    `json:"paymentStatus"`
	PaidAt        time.Time `json:"paidAt"`
}

func FromReceipt(r entities.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptNumber: r.ReceiptNumber,
		IssueDate:     r.IssueDate,
		RenterName:    r.RenterName,
		RenterEmail:   r.RenterEmail,
		CarDetails:    r.CarDetails,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Days:          r.Days,
		Amount:        r.Amount,
		PaymentID:     r.PaymentID,
		PaymentStatus: r.PaymentStatus,
		PaidAt:        r.PaidAt,
	}
}

// ConfirmPaymentResponse is returned on the confirmed outcome.
type ConfirmPaymentResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
	Receipt ReceiptResponse `json:"receipt"`
}
