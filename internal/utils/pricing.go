package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"easyrent-backend/internal/domain"
)

const day = 24 * time.Hour

// Accepted rental date layouts, most specific last.
var rentalDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// RentalCostBreakdown provides the inputs and result of a price computation
type RentalCostBreakdown struct {
	Days      int64
	DailyRate domain.Money
	TotalCost domain.Money
}

// ParseRentalDate parses an ISO-8601 date or date-time. Plain dates and
// date-times without an offset are read as UTC.
func ParseRentalDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range rentalDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd or RFC 3339", value)
}

// StartOfDay truncates t to midnight UTC of the same calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the number of billable days between pickup and return.
// Partial days are rounded up, so 2.1 days bill as 3.
func RentalDays(pickup, ret time.Time) int64 {
	diff := ret.Sub(pickup)
	if diff <= 0 {
		return 0
	}
	days := int64(diff / day)
	if diff%day != 0 {
		days++
	}
	return days
}

// CalculateRentalCost computes days * daily rate for a car.
func CalculateRentalCost(pickup, ret time.Time, car *domain.Car) (domain.Money, error) {
	breakdown, err := CalculateRentalCostWithBreakdown(pickup, ret, car)
	if err != nil {
		return 0, err
	}
	return breakdown.TotalCost, nil
}

// CalculateRentalCostWithBreakdown is CalculateRentalCost with its inputs.
func CalculateRentalCostWithBreakdown(pickup, ret time.Time, car *domain.Car) (RentalCostBreakdown, error) {
	if car == nil {
		return RentalCostBreakdown{}, fmt.Errorf("car is required")
	}
	if car.DailyRate <= 0 {
		return RentalCostBreakdown{}, fmt.Errorf("car %s has no daily rate", car.Code)
	}
	days := RentalDays(pickup, ret)
	if days == 0 {
		return RentalCostBreakdown{}, fmt.Errorf("return date must be after pickup date")
	}
	return RentalCostBreakdown{
		Days:      days,
		DailyRate: car.DailyRate,
		TotalCost: car.DailyRate.Times(days),
	}, nil
}

// FormatRentalCode renders a sequence number as LOC0001, LOC0002, ...
func FormatRentalCode(seq int64) string {
	return fmt.Sprintf("%s%0*d", domain.RentalCodePrefix, domain.RentalCodeDigits, seq)
}

// ParseRentalCode extracts the sequence number of a rental code.
func ParseRentalCode(code string) (int64, error) {
	if !strings.HasPrefix(code, domain.RentalCodePrefix) {
		return 0, fmt.Errorf("rental code %q lacks prefix %s", code, domain.RentalCodePrefix)
	}
	seq, err := strconv.ParseInt(strings.TrimPrefix(code, domain.RentalCodePrefix), 10, 64)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("rental code %q has no numeric suffix", code)
	}
	return seq, nil
}

// NextRentalCode returns the code following latest. An empty or malformed
// latest code restarts the sequence at LOC0001.
func NextRentalCode(latest string) string {
	if latest == "" {
		return FormatRentalCode(1)
	}
	seq, err := ParseRentalCode(latest)
	if err != nil {
		return FormatRentalCode(1)
	}
	return FormatRentalCode(seq + 1)
}
