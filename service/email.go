package service

import (
	"errors"
	"fmt"
	"html"
	"io"

	"expo/config"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled email delivery is switched off in the config
var ErrEmailDisabled = errors.New("email service is disabled, set email.enabled=true")

// ErrNoRecipient the account has no email address
var ErrNoRecipient = errors.New("no email address on this account")

// mailSender is satisfied by *gomail.Dialer
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService email delivery
type EmailService struct {
	cfg    *config.EmailConfig
	dialer func(cfg *config.EmailConfig) mailSender
}

// NewEmailService creates an email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg, dialer: smtpDialer}
}

func smtpDialer(cfg *config.EmailConfig) mailSender {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
}

// Enabled reports whether bills can be mailed
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendBill mails the PDF bill of username to toEmail
func (s *EmailService) SendBill(toEmail, username, total string, pdf []byte) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	if toEmail == "" {
		return ErrNoRecipient
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "[EXPO] Your expense bill")
	m.SetBody("text/html", s.generateBillEmailBody(username, total))
	m.Attach("expense_bill.pdf",
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
	)

	if err := s.dialer(s.cfg).DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// generateBillEmailBody bill email content
func (s *EmailService) generateBillEmailBody(username, total string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: #343a40; color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; letter-spacing: 4px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .total { font-size: 22px; font-weight: bold; color: #198754; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>EXPO</h1>
        </div>
        <div class="content">
            <p>Hello <strong>%s</strong>,</p>
            <p>Your expense bill is attached to this email.</p>
            <p>Total spent: <span class="total">%s</span></p>
        </div>
        <div class="footer">
            <p>Thank you for using Expense Tracker</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(username), html.EscapeString(total))
}
