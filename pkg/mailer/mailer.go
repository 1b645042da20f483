package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"arena-hub/pkg/utils"

	"go.uber.org/zap"
)

// Mailer mengirim email notifikasi via SMTP. Fire-and-forget:
// kegagalan hanya dilog, tidak menggagalkan operasi pemanggil.
type Mailer struct {
	cfg utils.EmailConfig
	log *zap.Logger
}

func NewMailer(cfg utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: log.With(zap.String("component", "mailer")),
	}
}

// Send mengirim satu email. Return false kalau gagal atau SMTP belum dikonfigurasi.
func (m *Mailer) Send(to, subject, body string) bool {
	if m.cfg.Host == "" {
		m.log.Info("SMTP not configured, skipping email",
			zap.String("to", to),
			zap.String("subject", subject))
		return false
	}

	from := m.cfg.From
	if from == "" {
		from = "noreply@arenahub.com"
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		m.log.Warn("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject))
		return false
	}

	m.log.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return true
}

// SendRegistrationConfirmation mengirim konfirmasi registrasi event beserta seat numbers
func (m *Mailer) SendRegistrationConfirmation(to, participantName, eventTitle, registrationID string, seats []int) bool {
	seatStrs := make([]string, len(seats))
	for i, s := range seats {
		seatStrs[i] = fmt.Sprintf("%d", s)
	}

	subject := fmt.Sprintf("ArenaHub - Registration Confirmed: %s", eventTitle)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your registration for %s is confirmed.\n\n"+
			"Registration ID: %s\n"+
			"Seat numbers: %s\n\n"+
			"Please keep this email as proof of registration.\n\n"+
			"Best regards,\nArenaHub Team",
		participantName, eventTitle, registrationID, strings.Join(seatStrs, ", "))

	return m.Send(to, subject, body)
}

// SendBookingReceipt mengirim receipt booking fasilitas setelah payment sukses
func (m *Mailer) SendBookingReceipt(to, contactName, bookingRef, activity string, amount int64) bool {
	subject := fmt.Sprintf("ArenaHub - Booking Confirmed: %s", bookingRef)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your %s booking is confirmed.\n\n"+
			"Booking reference: %s\n"+
			"Amount paid: INR %d\n\n"+
			"Best regards,\nArenaHub Team",
		contactName, activity, bookingRef, amount)

	return m.Send(to, subject, body)
}
