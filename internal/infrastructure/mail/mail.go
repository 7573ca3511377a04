// Package mail sends the transactional email the auth flows need. Usecases
// depend on the Mailer interface; the SendGrid adapter is swapped for the
// no-op sender in development so flows work without an API key.
package mail

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"farmstand/pkg/logger"
)

type Mailer interface {
	SendVerificationEmail(toEmail, token string) error
	SendPasswordResetEmail(toEmail, token string) error
}

type SendgridMailer struct {
	client  *sendgrid.Client
	from    string
	baseURL string
}

func NewSendgridMailer(apiKey, from, baseURL string) *SendgridMailer {
	return &SendgridMailer{
		client:  sendgrid.NewSendClient(apiKey),
		from:    from,
		baseURL: baseURL,
	}
}

func (m *SendgridMailer) message(toEmail, subject, textContent, htmlContent string) *sgmail.SGMailV3 {
	from := sgmail.NewEmail("Farmstand", m.from)
	to := sgmail.NewEmail("", toEmail)
	return sgmail.NewSingleEmail(from, subject, to, textContent, htmlContent)
}

func (m *SendgridMailer) send(toEmail, subject, textContent, htmlContent string) error {
	response, err := m.client.Send(m.message(toEmail, subject, textContent, htmlContent))
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned %d", response.StatusCode)
	}
	return nil
}

func (m *SendgridMailer) SendVerificationEmail(toEmail, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", m.baseURL, token)
	text := fmt.Sprintf("Welcome to Farmstand! Please verify your email by opening %s", link)
	html := fmt.Sprintf(
		`<strong>Welcome to Farmstand!</strong><br><br>Please verify your email by clicking <a href="%s">here</a>.`,
		link)
	return m.send(toEmail, "Verify your email", text, html)
}

func (m *SendgridMailer) SendPasswordResetEmail(toEmail, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	text := fmt.Sprintf(
		"A password reset was requested for your account. Open %s to choose a new password. The link expires in one hour.",
		link)
	html := fmt.Sprintf(
		`A password reset was requested for your account. Click <a href="%s">here</a> to choose a new password. The link expires in one hour.`,
		link)
	return m.send(toEmail, "Reset your password", text, html)
}

// NoopMailer logs instead of sending. Used when no API key is configured.
type NoopMailer struct{}

func (NoopMailer) SendVerificationEmail(toEmail, token string) error {
	logger.Info("mail disabled, verification token for %s: %s", toEmail, token)
	return nil
}

func (NoopMailer) SendPasswordResetEmail(toEmail, token string) error {
	logger.Info("mail disabled, reset token for %s: %s", toEmail, token)
	return nil
}
