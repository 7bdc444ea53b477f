package jobs

import (
	"context"
	"errors"
	"fmt"

	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/utils"
)

// SendPickupReminders emails every requester whose pickup date is tomorrow (UTC)
func (jr *JobRunner) SendPickupReminders() error {
	return jr.runWithRecovery(JobSendPickupReminders, func(ctx context.Context) error {
		from := utils.StartOfDay(jr.now()).AddDate(0, 0, 1)
		to := from.AddDate(0, 0, 1)

		rentals, err := jr.deps.Rentals.ListByPickupRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to list upcoming rentals: %w", err)
		}

		var errs []error
		sent := 0
		for i := range rentals {
			rental := &rentals[i]
			if rental.Requester == nil || rental.Requester.Email == "" {
				logger.Warn("Rental has no requester email, skipping reminder", "code", rental.Code)
				continue
			}
			if err := jr.deps.Email.SendPickupReminder(ctx, rental.Requester, rental); err != nil {
				logger.Error("Failed to send pickup reminder", "code", rental.Code, "error", err)
				errs = append(errs, fmt.Errorf("rental %s: %w", rental.Code, err))
				continue
			}
			sent++
		}

		logger.Info("Pickup reminders sent", "date", from.Format("2006-01-02"), "rentals", len(rentals), "sent", sent)
		return errors.Join(errs...)
	})
}
