// Package notify sends best-effort email notifications. A failed send is
// logged and never reaches the request that triggered it.
package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/models"
	"github.com/sirupsen/logrus"
)

type Payload struct {
	Subject string
	HTML    string
}

// Notifier delivers one payload to one recipient.
type Notifier interface {
	Notify(ctx context.Context, recipient string, p Payload) error
}

// Dispatcher runs notifications in the background with a per-send timeout.
type Dispatcher struct {
	notifier Notifier
	fallback string
	timeout  time.Duration
	log      *logrus.Entry
	wg       sync.WaitGroup
}

// NewDispatcher wraps n. fallback receives notifications when the site settings
// carry no contact email.
func NewDispatcher(n Notifier, fallback string, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		notifier: n,
		fallback: fallback,
		timeout:  timeout,
		log:      logger.App().WithField("component", "notify"),
	}
}

func (d *Dispatcher) Recipient(s models.Settings) string {
	if to := strings.TrimSpace(s.ContactEmail); to != "" {
		return to
	}
	return d.fallback
}

// Dispatch sends p in a new goroutine and returns immediately.
func (d *Dispatcher) Dispatch(recipient string, p Payload) {
	if recipient == "" {
		d.log.WithField("subject", p.Subject).Warn("notification dropped: no recipient")
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		entry := d.log.WithFields(logrus.Fields{"to": recipient, "subject": p.Subject})
		if err := d.notifier.Notify(ctx, recipient, p); err != nil {
			entry.WithError(err).Error("notification failed")
			return
		}
		entry.Info("notification sent")
	}()
}

// NewMessage notifies the site owner about a contact form submission when
// the settings allow it. It reports whether a send was scheduled.
func (d *Dispatcher) NewMessage(s models.Settings, m models.Message) bool {
	if !s.Notifications.Email || !s.Notifications.NewMessage {
		return false
	}
	p, err := NewMessagePayload(m)
	if err != nil {
		d.log.WithError(err).Error("render new message email")
		return false
	}
	to := d.Recipient(s)
	d.Dispatch(to, p)
	return to != ""
}

// Wait blocks until every dispatched notification has finished.
func (d *Dispatcher) Wait() { d.wg.Wait() }
