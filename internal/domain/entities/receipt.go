package entities

import (
	"fmt"
	"time"
)

// Receipt is the artifact handed back on successful payment
// confirmation. It is computed on demand and never persisted, so
// rebuilding it from the same inputs yields an equivalent document.
type Receipt struct {
	ReceiptNumber string    `json:"receipt_number"`
	IssueDate     time.Time `json:"issue_date"`
	RenterName    string    `json:"renter_name"`
	RenterEmail   string    `json:"renter_email"`
	CarDetails    string    `json:"car_details"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Days          int       `json:"days"`
	Amount        float64   `json:"amount"`
	PaymentID     string    `json:"payment_id"`
	PaymentStatus string    `json:"payment_status"`
	PaidAt        time.Time `json:"paid_at"`
}

// BuildReceipt derives a receipt from the confirmed booking and the
// provider's intent. The receipt number is keyed off the intent so a
// redelivered confirmation produces the same number.
func BuildReceipt(b Booking, car Car, renter User, intent PaymentIntent, issuedAt time.Time) Receipt {
	return Receipt{
		ReceiptNumber: fmt.Sprintf("RCPT-%s", intent.ID),
		IssueDate:     issuedAt,
		RenterName:    renter.Name,
		RenterEmail:   renter.Email,
		CarDetails:    car.Description(),
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Days:          b.Days(),
		Amount:        b.TotalAmount,
		PaymentID:     intent.ID,
		PaymentStatus: intent.Status,
		PaidAt:        intent.CreatedAt,
	}
}
