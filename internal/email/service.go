package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/clinic-admin/internal/config"
	"github.com/jwalitptl/clinic-admin/internal/model"
)

// Notifier tells the clinic staff that a public intake form was merged.
type Notifier interface {
	IntakeReceived(ctx context.Context, result *model.ReconcileResult) error
}

// New returns an SMTP notifier when a server and recipient are configured,
// otherwise one that only logs.
func New(cfg config.NotifyConfig) Notifier {
	if cfg.SMTPHost == "" || cfg.To == "" {
		return LogNotifier{}
	}
	return NewSMTPNotifier(cfg)
}

type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewSMTPNotifier(cfg config.NotifyConfig) *SMTPNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   from,
		to:     cfg.To,
	}
}

func (n *SMTPNotifier) IntakeReceived(_ context.Context, result *model.ReconcileResult) error {
	subject, body := intakeMessage(result)

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send intake notification: %w", err)
	}
	return nil
}

type LogNotifier struct{}

func (LogNotifier) IntakeReceived(_ context.Context, result *model.ReconcileResult) error {
	subject, _ := intakeMessage(result)
	log.Info().
		Int("client_id", result.ClientID).
		Bool("created", result.Created).
		Msg(subject)
	return nil
}

func intakeMessage(r *model.ReconcileResult) (string, string) {
	if r.Created {
		return fmt.Sprintf("New intake form: %s", r.Name),
			fmt.Sprintf("A new client (%s, %s) filled in the intake form and was registered with id %d.", r.Name, r.Email, r.ClientID)
	}
	return fmt.Sprintf("Intake form updated: %s", r.Name),
		fmt.Sprintf("Client %d (%s, %s) sent a new intake form; the record was replaced.", r.ClientID, r.Name, r.Email)
}
