package email

import (
	"fmt"
	"mime"
	"net/smtp"
)

// Service handles email sending via SMTP
type Service struct {
	host     string
	port     string
	from     string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host:     host,
		port:     port,
		from:     from,
		sendMail: smtp.SendMail,
	}
}

// SendOrderConfirmation sends an order confirmation email
func (s *Service) SendOrderConfirmation(to string, data OrderConfirmation) error {
	subject := fmt.Sprintf("Confirmation de votre commande AfriMarket #%s", data.ShortID)
	body, err := BuildOrderConfirmationBody(data)
	if err != nil {
		return err
	}
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, mime.QEncoding.Encode("UTF-8", subject), body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, nil, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
