package mailer

import (
	"fmt"
	"net/smtp"
	"net/url"

	"catalog-service/pkg/config"
	"catalog-service/pkg/logger"

	"go.uber.org/zap"
)

// Mailer sends account confirmation mail over SMTP. When SMTP credentials are
// not configured, sends become no-ops so the service can run without a mail
// provider.
type Mailer struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// New creates a mailer from SMTP configuration
func New(smtpConfig *config.SMTPConfig, baseURL string) *Mailer {
	return &Mailer{cfg: smtpConfig, baseURL: baseURL}
}

// Enabled reports whether the mailer has enough configuration to send
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.User != ""
}

// SendConfirmation sends the email-confirmation link to a newly registered user
func (m *Mailer) SendConfirmation(to, username, token string) error {
	if !m.Enabled() {
		logger.GetLogger().Warn("Email credentials not configured, skipping email confirmation",
			zap.String("to", to))
		return nil
	}

	confirmationURL := fmt.Sprintf("%s/api/auth/confirm-email?token=%s", m.baseURL, url.QueryEscape(token))

	body := fmt.Sprintf("Welcome %s!\r\n\r\n"+
		"Thank you for registering. Please open the link below to confirm your email address:\r\n\r\n"+
		"%s\r\n\r\n"+
		"This link will expire in 24 hours.\r\n\r\n"+
		"If you didn't create an account, please ignore this email.\r\n",
		username, confirmationURL)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Confirm Your Email Address\r\n\r\n%s",
		m.cfg.From, to, body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
