package email

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"
)

// Config holds SMTP settings (Brevo relay by default)
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	ToEmail   string
}

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails via SMTP
type EmailService struct {
	cfg  Config
	send SendFunc
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

func NewEmailService(cfg Config) *EmailService {
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.Username
	}
	return &EmailService{cfg: cfg, send: smtp.SendMail}
}

// WithSender replaces the SMTP transport; used by tests
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h1>New message from the Link1t contact form</h1>
    <p><strong>From:</strong> {{.SenderName}} ({{.SenderEmail}})</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <div style="background: #fff; padding: 15px; border-left: 4px solid #111; white-space: pre-wrap;">{{.Message}}</div>
    <p style="color: #888; font-size: 12px;">Reply directly to this email to answer {{.SenderName}}.</p>
</body>
</html>`))

// BuildContactMessage renders the RFC 5322 message for a contact submission
func (s *EmailService) BuildContactMessage(data ContactEmailData) ([]byte, error) {
	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := mime.QEncoding.Encode("utf-8", "Contact Form: "+stripNewlines(data.Subject))

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", s.cfg.ToEmail)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", stripNewlines(data.SenderEmail))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// SendContactEmail sends a contact form email to the configured recipient
func (s *EmailService) SendContactEmail(data ContactEmailData) error {
	msg, err := s.BuildContactMessage(data)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.FromEmail, []string{s.cfg.ToEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.ToEmail != ""
}

// stripNewlines prevents header injection through user-supplied values
func stripNewlines(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
