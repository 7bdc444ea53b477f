package http

import (
	"time"

	"easyrent-backend/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type brandRequest struct {
	Name string `json:"name"`
}

type modelRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	BrandID     string `json:"brandId"`
}

func (req modelRequest) toDomain(id string) *domain.Model {
	return &domain.Model{
		ID:          id,
		Code:        req.Code,
		Description: req.Description,
		BrandID:     req.BrandID,
	}
}

type carRequest struct {
	Code        string       `json:"code"`
	ModelID     string       `json:"modelId"`
	Year        int          `json:"year"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
	Notes       string       `json:"notes"`
	Image       *string      `json:"image"`
	DailyRate   domain.Money `json:"dailyRate"`
}

func (req carRequest) toDomain(id string) *domain.Car {
	return &domain.Car{
		ID:          id,
		Code:        req.Code,
		ModelID:     req.ModelID,
		Year:        req.Year,
		Color:       req.Color,
		Description: req.Description,
		Notes:       req.Notes,
		Image:       req.Image,
		DailyRate:   req.DailyRate,
	}
}

type rentalRequest struct {
	CarID      string `json:"carId"`
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
	Notes      string `json:"notes"`
}

// rentalResponse is the body returned when a rental is created.
type rentalResponse struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	CarID       string       `json:"carId"`
	RequesterID string       `json:"requesterId"`
	PickupDate  time.Time    `json:"pickupDate"`
	ReturnDate  time.Time    `json:"returnDate"`
	Price       domain.Money `json:"price"`
	Notes       string       `json:"notes"`
}

func newRentalResponse(r *domain.Rental) rentalResponse {
	return rentalResponse{
		ID:          r.ID,
		Code:        r.Code,
		CarID:       r.CarID,
		RequesterID: r.RequesterID,
		PickupDate:  r.PickupDate,
		ReturnDate:  r.ReturnDate,
		Price:       r.Price,
		Notes:       r.Notes,
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
