// Package mailer sends transactional email over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"tours-api/internal/models"
)

// Mailer is the notification collaborator contract: given a recipient and a
// message kind, deliver synchronously and report failure as an error.
type Mailer interface {
	SendWelcome(user *models.User, homeURL string) error
	SendPasswordReset(user *models.User, resetURL string) error
}

// SMTPMailer sends email through a plain SMTP endpoint.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(host, port, username, password, from, fromName string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<html>
<body>
  <h2>Welcome to the family, {{.FirstName}}!</h2>
  <p>We're thrilled to have you on board. Browse our tours and book your next adventure.</p>
  <p><a href="{{.URL}}">Visit your account</a></p>
</body>
</html>`))

var passwordResetTemplate = template.Must(template.New("passwordReset").Parse(`
<html>
<body>
  <h2>Hi {{.FirstName}},</h2>
  <p>Forgot your password? Submit a new one at the link below.
     The link is valid for 10 minutes.</p>
  <p><a href="{{.URL}}">Reset your password</a></p>
  <p>If you didn't request a reset, please ignore this email.</p>
</body>
</html>`))

type templateData struct {
	FirstName string
	URL       string
}

// SendWelcome delivers the post-signup greeting.
func (m *SMTPMailer) SendWelcome(user *models.User, homeURL string) error {
	return m.send(user, welcomeTemplate, "Welcome to the Tours family!", homeURL)
}

// SendPasswordReset delivers the reset link carrying the raw token.
func (m *SMTPMailer) SendPasswordReset(user *models.User, resetURL string) error {
	return m.send(user, passwordResetTemplate, "Your password reset token (valid for 10 minutes)", resetURL)
}

func (m *SMTPMailer) send(user *models.User, tmpl *template.Template, subject, url string) error {
	var body bytes.Buffer
	data := templateData{FirstName: firstName(user.Name), URL: url}
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	fromHeader := fmt.Sprintf("%s <%s>", m.fromName, m.from)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", user.Email),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{user.Email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", user.Email, err)
	}
	return nil
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

// Ensure SMTPMailer implements Mailer interface
var _ Mailer = (*SMTPMailer)(nil)
