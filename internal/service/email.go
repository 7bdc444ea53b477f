package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"easyrent-backend/internal/config"
	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const rentalDateLayout = "2006-01-02"

// mailSender is the part of the SendGrid client we use.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client      mailSender
	fromEmail   string
	fromName    string
	frontendURL string
}

// NewEmailService returns a SendGrid backed sender, or a no-op one when no
// API key is configured.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if !cfg.Enabled() {
		logger.Info("SendGrid API key not set, emails are disabled")
		return noopEmailService{}
	}
	return newSendGridEmailService(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg)
}

func newSendGridEmailService(client mailSender, cfg config.EmailConfig) *sendGridEmailService {
	return &sendGridEmailService{
		client:      client,
		fromEmail:   cfg.FromEmail,
		fromName:    cfg.FromName,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
	}
}

func (s *sendGridEmailService) SendRentalConfirmation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	subject := fmt.Sprintf("Rental %s confirmed", rental.Code)
	plain := fmt.Sprintf("Hello %s,\n\nYour rental %s of %s is confirmed.\nPickup: %s\nReturn: %s\nTotal: %s\n\nBest regards,\nThe EasyRent Team",
		to.Name, rental.Code, carLabel(rental), rental.PickupDate.Format(rentalDateLayout),
		rental.ReturnDate.Format(rentalDateLayout), rental.Price.String())
	return s.send(ctx, to, subject, plain, s.htmlBody("Rental confirmed", plain))
}

func (s *sendGridEmailService) SendRentalCancellation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	subject := fmt.Sprintf("Rental %s cancelled", rental.Code)
	plain := fmt.Sprintf("Hello %s,\n\nYour rental %s of %s scheduled for %s has been cancelled.\n\nBest regards,\nThe EasyRent Team",
		to.Name, rental.Code, carLabel(rental), rental.PickupDate.Format(rentalDateLayout))
	return s.send(ctx, to, subject, plain, s.htmlBody("Rental cancelled", plain))
}

func (s *sendGridEmailService) SendPickupReminder(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	subject := fmt.Sprintf("Reminder: pickup for rental %s", rental.Code)
	plain := fmt.Sprintf("Hello %s,\n\nThis is a reminder that you pick up %s on %s (rental %s).\n\nBest regards,\nThe EasyRent Team",
		to.Name, carLabel(rental), rental.PickupDate.Format(rentalDateLayout), rental.Code)
	return s.send(ctx, to, subject, plain, s.htmlBody("Pickup reminder", plain))
}

func (s *sendGridEmailService) send(ctx context.Context, to *domain.UserSummary, subject, plain, htmlContent string) error {
	if to == nil || to.Email == "" {
		return fmt.Errorf("email recipient is required")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(to.Name, to.Email)
	message := mail.NewSingleEmail(from, subject, recipient, plain, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "subject", subject)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *sendGridEmailService) htmlBody(title, plain string) string {
	var b strings.Builder
	b.WriteString("<html><body><h2>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</h2><p>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(plain), "\n", "<br>"))
	b.WriteString("</p>")
	if s.frontendURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s/locacao">View your rentals</a></p>`, html.EscapeString(s.frontendURL))
	}
	b.WriteString("</body></html>")
	return b.String()
}

func carLabel(rental *domain.Rental) string {
	if rental.Car == nil {
		return "your car"
	}
	c := rental.Car
	if c.Model != nil {
		name := c.Model.Description
		if c.Model.Brand != nil {
			name = c.Model.Brand.Name + " " + name
		}
		return fmt.Sprintf("%s (%s)", name, c.Code)
	}
	return c.Code
}

// noopEmailService drops every message.
type noopEmailService struct{}

func (noopEmailService) SendRentalConfirmation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	logger.Debug("Email disabled, skipping rental confirmation", "code", rental.Code)
	return nil
}

func (noopEmailService) SendRentalCancellation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	logger.Debug("Email disabled, skipping rental cancellation", "code", rental.Code)
	return nil
}

func (noopEmailService) SendPickupReminder(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	logger.Debug("Email disabled, skipping pickup reminder", "code", rental.Code)
	return nil
}
