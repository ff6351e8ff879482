package service

import (
	"fmt"

	"denticare-server/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// NotificationService delivers booking emails over SMTP. Delivery is
// fire-and-forget: the caller never blocks a booking on an email.
type NotificationService struct {
	cfg config.SMTPConfig
	log *logrus.Logger
}

func NewNotificationService(cfg config.SMTPConfig, log *logrus.Logger) *NotificationService {
	return &NotificationService{
		cfg: cfg,
		log: log,
	}
}

// SendBookingConfirmation emails the patient after a successful booking.
func (s *NotificationService) SendBookingConfirmation(to, patientName, dentistName, date, timeOfDay string) {
	subject := "Appointment confirmed"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with %s on %s at %s is confirmed.\n\nIf you need to cancel, please do so at least 2 hours before your appointment.",
		patientName, dentistName, date, timeOfDay,
	)
	s.send(to, subject, body)
}

// SendCancellationNotice emails the patient after an appointment is canceled.
func (s *NotificationService) SendCancellationNotice(to, patientName, date, timeOfDay string) {
	subject := "Appointment canceled"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment on %s at %s has been canceled.",
		patientName, date, timeOfDay,
	)
	s.send(to, subject, body)
}

func (s *NotificationService) send(to, subject, body string) {
	if s.cfg.Host == "" || to == "" {
		return
	}

	go func() {
		m := gomail.NewMessage()
		m.SetHeader("From", s.cfg.From)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", body)

		d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
		if err := d.DialAndSend(m); err != nil {
			s.log.Warnf("Failed to send notification email to %s: %+v", to, err)
		}
	}()
}
