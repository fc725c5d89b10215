package notify

import (
	"context"

	"github.com/princinho/stonevitrine/logger"
)

// LogNotifier stands in for SMTP when no relay is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, recipient string, p Payload) error {
	logger.App().WithField("to", recipient).WithField("subject", p.Subject).
		Info("smtp not configured, notification logged only")
	return nil
}
