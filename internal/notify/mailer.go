package notify

import (
	"github.com/DennisDemir24/hobby-link/internal/config"
	"github.com/DennisDemir24/hobby-link/internal/pkg"
)

// SMTPMailer gomail 实现
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	return pkg.SendEmail(m.cfg, to, subject, htmlBody)
}
