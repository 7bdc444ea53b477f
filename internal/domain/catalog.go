package domain

import "time"

type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Models    []Model   `json:"models,omitempty"` // Populated when fetching brand details
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Model struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	BrandID     string    `json:"brandId"`
	Brand       *Brand    `json:"brand,omitempty"`
	Cars        []Car     `json:"cars,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Car struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	ModelID     string    `json:"modelId"`
	Model       *Model    `json:"model,omitempty"`
	Year        int       `json:"year"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	Notes       string    `json:"notes,omitempty"`
	Image       *string   `json:"image,omitempty"`
	DailyRate   Money     `json:"dailyRate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
