package domain

import "time"

const (
	// RentalCodePrefix precedes the sequential number of every rental code.
	RentalCodePrefix = "LOC"
	// RentalCodeDigits is the zero-padded width of the numeric suffix.
	RentalCodeDigits = 4
)

// Rental is a car reservation for a date range. A rental is never updated;
// cancelling one deletes it.
type Rental struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	CarID       string       `json:"carId"`
	RequesterID string       `json:"requesterId"`
	PickupDate  time.Time    `json:"pickupDate"`
	ReturnDate  time.Time    `json:"returnDate"`
	Price       Money        `json:"price"`
	Notes       string       `json:"notes"`
	Car         *Car         `json:"car,omitempty"`
	Requester   *UserSummary `json:"requester,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// RentalRequest is the input of the rental engine. Dates are kept as the raw
// client strings so that missing and malformed values can be told apart.
type RentalRequest struct {
	RequesterID string
	CarID       string
	PickupDate  string
	ReturnDate  string
	Notes       string
}
