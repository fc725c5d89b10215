// Package jobs holds the background work scheduled next to the HTTP server.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/notify"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// WeeklyReporter builds the activity digest and mails it to the site owner.
type WeeklyReporter struct {
	stores   *database.Stores
	notifier notify.Notifier
	fallback string
	now      func() time.Time
}

func NewWeeklyReporter(stores *database.Stores, n notify.Notifier, fallbackRecipient string) *WeeklyReporter {
	return &WeeklyReporter{stores: stores, notifier: n, fallback: fallbackRecipient, now: time.Now}
}

// Build computes the digest for the seven days ending now.
func (w *WeeklyReporter) Build(ctx context.Context, siteName string) (notify.WeeklyReport, error) {
	to := w.now().UTC()
	r := notify.WeeklyReport{SiteName: siteName, From: to.AddDate(0, 0, -7), To: to}

	var err error
	if r.UnreadMessages, err = w.stores.Messages.Count(ctx, bson.M{"read": false}); err != nil {
		return r, err
	}
	if r.PendingTestimonials, err = w.stores.Testimonials.Count(ctx, bson.M{"isApproved": false}); err != nil {
		return r, err
	}
	if r.Collections, err = w.stores.Collections.Count(ctx, nil); err != nil {
		return r, err
	}

	messages, err := w.stores.Messages.Find(ctx, database.Query{Sort: bson.D{{Key: "createdAt", Value: -1}}})
	if err != nil {
		return r, err
	}
	for _, m := range messages {
		if m.CreatedAt.Before(r.From) {
			break
		}
		r.NewMessages++
	}

	projects, err := w.stores.Projects.Find(ctx, database.Query{})
	if err != nil {
		return r, err
	}
	r.Projects = int64(len(projects))
	for _, p := range projects {
		r.TotalLikes += int64(p.Likes)
	}
	return r, nil
}

// Run sends the digest when the settings ask for it, or always when force is set.
// It reports whether a mail went out.
func (w *WeeklyReporter) Run(ctx context.Context, force bool) (bool, error) {
	s, err := database.GetOrCreateSettings(ctx, w.stores.Settings)
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}
	if !force && !s.Notifications.WeeklyReport {
		return false, nil
	}

	report, err := w.Build(ctx, s.SiteName)
	if err != nil {
		return false, fmt.Errorf("build weekly report: %w", err)
	}
	payload, err := notify.WeeklyReportPayload(report)
	if err != nil {
		return false, err
	}

	to := w.recipient(*s)
	if to == "" {
		return false, fmt.Errorf("no recipient for weekly report")
	}
	if err := w.notifier.Notify(ctx, to, payload); err != nil {
		return false, err
	}
	return true, nil
}

func (w *WeeklyReporter) recipient(s models.Settings) string {
	if to := strings.TrimSpace(s.ContactEmail); to != "" {
		return to
	}
	return w.fallback
}

// StartScheduler runs the reporter on a six-field cron schedule (seconds first).
// Stop the returned cron on shutdown.
func StartScheduler(schedule string, w *WeeklyReporter) (*cron.Cron, error) {
	log := logger.App().WithField("job", "weekly-report")
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		sent, err := w.Run(ctx, false)
		switch {
		case err != nil:
			log.WithError(err).Error("weekly report failed")
		case sent:
			log.Info("weekly report sent")
		default:
			log.Debug("weekly report disabled in settings")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule weekly report %q: %w", schedule, err)
	}

	c.Start()
	log.WithField("schedule", schedule).Info("cron scheduler started")
	return c, nil
}
