// Package services содержит почтовый воркер: отправку напоминаний об
// истекающих подписках и пересылку сообщений формы обратной связи.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/lib/smtp"
	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// SenderService отправляет письма через SMTP транспорт.
type SenderService struct {
	transport    smtp.TransportInterface
	contactInbox string
	log          *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
// contactInbox — адрес, на который пересылаются сообщения формы обратной связи.
func NewSenderService(transport smtp.TransportInterface, contactInbox string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:    transport,
		contactInbox: contactInbox,
		log:          log,
	}
}

// SendExpiryReminder отправляет пользователю напоминание о том,
// что его подписка истекает завтра.
func (s *SenderService) SendExpiryReminder(body []byte) error {
	var message models.ExpiringEntitlement
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Your Lumi Library subscription expires tomorrow"
	bodyText := fmt.Sprintf("Hello, %s!\n\nYour %s subscription to Lumi Library expires on %s.\n\nRenew it to keep reading without interruption.",
		message.Name, message.Plan, message.Expiry.Format("2006-01-02"))

	return s.sendEmail(to, subject, bodyText)
}

// SendContactMessage пересылает сообщение формы обратной связи на
// служебный ящик поддержки.
func (s *SenderService) SendContactMessage(body []byte) error {
	var message models.ContactMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{s.contactInbox}
	subject := "Contact form: " + message.Subject
	bodyText := fmt.Sprintf("From: %s <%s>\n\n%s", message.Name, message.Email, message.Message)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			s.log.Error("failed to close SMTP client", sl.Err(closeErr))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
