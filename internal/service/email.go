package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, customerName, equipmentName, bookingNumber string) error {
	body := fmt.Sprintf("Hello,\n\n%s has requested to book your equipment: %s.\n\nBooking reference: %s\n\nPlease confirm or reject the request from your dashboard.\n\nBest regards,\nThe AgroHire Team",
		customerName, equipmentName, bookingNumber)
	return s.send(ownerEmail, fmt.Sprintf("New Booking Request - %s", equipmentName), body)
}

func (s *emailService) SendBookingConfirmationNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber, ownerNotes string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking %s for %s has been confirmed.", bookingNumber, equipmentName)
	if ownerNotes != "" {
		body += fmt.Sprintf("\n\nNote from the owner: %s", ownerNotes)
	}
	body += "\n\nBest regards,\nThe AgroHire Team"
	return s.send(customerEmail, fmt.Sprintf("Booking Confirmed - %s", bookingNumber), body)
}

func (s *emailService) SendBookingRejectionNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber, reason string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking %s for %s has been rejected.", bookingNumber, equipmentName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe AgroHire Team"
	return s.send(customerEmail, fmt.Sprintf("Booking Rejected - %s", bookingNumber), body)
}

func (s *emailService) SendBookingCancellationNotification(ctx context.Context, ownerEmail, customerName, equipmentName, bookingNumber, reason string) error {
	body := fmt.Sprintf("Hello,\n\n%s has cancelled booking %s for %s.", customerName, bookingNumber, equipmentName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe AgroHire Team"
	return s.send(ownerEmail, fmt.Sprintf("Booking Cancelled - %s", bookingNumber), body)
}

func (s *emailService) SendBookingCompletionNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber string, totalAmount decimal.Decimal) error {
	body := fmt.Sprintf("Hello,\n\nYour booking %s for %s is complete.\n\nTotal amount: %s\n\nThank you for renting with us.\n\nBest regards,\nThe AgroHire Team",
		bookingNumber, equipmentName, totalAmount.StringFixed(2))
	return s.send(customerEmail, fmt.Sprintf("Booking Completed - %s", bookingNumber), body)
}
