package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	FromName string
}

// SMTPNotifier sends HTML mail through an authenticated relay.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   fmt.Sprintf("%q <%s>", cfg.FromName, cfg.User),
	}
}

func (n *SMTPNotifier) message(recipient string, p Payload) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", p.Subject)
	msg.SetBody("text/html", p.HTML)
	return msg
}

// Notify dials, sends and hangs up. gomail has no context support, so ctx is
// only checked before dialing.
func (n *SMTPNotifier) Notify(ctx context.Context, recipient string, p Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.dialer.DialAndSend(n.message(recipient, p)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
