package infra

import (
	"fmt"
	"net/smtp"

	"credipos/internal/config"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"
)

// Mailer sends settlement receipts over SMTP. When no SMTP host is configured
// (local development, tests) sends become logged no-ops instead of errors, so
// the receipt worker can run against a bare environment.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendComprobante emails the settlement receipt PDF to the branch responsable.
func (m *Mailer) SendComprobante(to, subject, body, pdfPath string) error {
	if m.cfg.SMTPHost == "" {
		log.Info().Str("to", to).Str("subject", subject).
			Msg("smtp no configurado, comprobante no enviado")
		return nil
	}

	e := email.NewEmail()
	e.From = m.cfg.SMTPUser
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: adjuntar PDF: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	return e.Send(addr, auth)
}
