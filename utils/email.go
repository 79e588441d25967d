package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// SendBookingConfirmationEmail sends a plain-text confirmation for a new
// booking. When SMTP is not configured it logs a mock send instead, so dev
// environments work without a mail server.
func SendBookingConfirmationEmail(
	recipientEmail,
	guestName,
	referenceCode,
	roomDesignation,
	arrivalDate,
	departureDate string,
) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Resort Reservations")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s booking:%s room:%s stay:%s -> %s",
			recipientEmail, referenceCode, roomDesignation, arrivalDate, departureDate)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guestName = safe(guestName)
	referenceCode = safe(referenceCode)
	roomDesignation = safe(roomDesignation)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Booking Confirmation %s", referenceCode)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your reservation is confirmed. Details:\n\n"+
			"Booking Reference: %s\n"+
			"Room: %s\n"+
			"Arrival: %s\n"+
			"Departure: %s\n\n"+
			"We look forward to welcoming you.\n\n"+
			"Best regards,\n%s",
		guestName, referenceCode, roomDesignation, arrivalDate, departureDate, fromName,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("failed to send confirmation email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("confirmation email sent to %s (booking %s)", recipientEmail, referenceCode)
	return nil
}
