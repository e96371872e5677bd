package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"regexp"
	"strings"

	"github.com/harshit0019/portfolio/internal/config"
)

const defaultSubject = "New message from your portfolio"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactMessage is a visitor's message as submitted through either contact
// form.
type ContactMessage struct {
	Name    string `json:"name" form:"fullName" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message" binding:"required"`
}

// ValidEmail reports whether the sender address looks like an email address.
func (m ContactMessage) ValidEmail() bool {
	return emailPattern.MatchString(m.Email)
}

// MailSubject is the subject line of the relayed email.
func (m ContactMessage) MailSubject() string {
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		subject = defaultSubject
	}
	return "Portfolio Contact: " + subject
}

var mailBody = template.Must(template.New("mail").Parse(`<h3>New contact form submission</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{if .Subject}}{{.Subject}}{{else}}N/A{{end}}</p>
<p><strong>Message:</strong></p>
<p style="white-space: pre-line">{{.Message}}</p>
<hr>
<p>Sent from your portfolio contact form</p>
`))

// Mailer relays contact messages to the site owner.
type Mailer interface {
	Send(m ContactMessage) error
}

type smtpMailer struct {
	cfg  config.SMTP
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg config.SMTP) *smtpMailer {
	return &smtpMailer{cfg: cfg, send: smtp.SendMail}
}

func (s *smtpMailer) Send(m ContactMessage) error {
	if err := s.cfg.Check(); err != nil {
		return err
	}

	msg, err := s.compose(m)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	if err := s.send(s.cfg.Addr(), auth, s.cfg.User, []string{s.cfg.To}, msg); err != nil {
		log.Printf("Error sending email: %v", err)
		return fmt.Errorf("send mail: %w", err)
	}

	log.Printf("Email sent successfully from %s", m.Name)
	return nil
}

func (s *smtpMailer) compose(m ContactMessage) ([]byte, error) {
	var body bytes.Buffer
	if err := mailBody.Execute(&body, m); err != nil {
		return nil, fmt.Errorf("render mail: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", s.cfg.To)
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.User)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", headerValue(m.Email))
	fmt.Fprintf(&msg, "Subject: %s\r\n", headerValue(m.MailSubject()))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// headerValue strips line breaks so user input cannot add headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
