package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/princinho/stonevitrine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	to string
	p  Payload
}

type recorder struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (r *recorder) Notify(_ context.Context, to string, p Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{to: to, p: p})
	return r.err
}

func (r *recorder) all() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sent(nil), r.sent...)
}

func sampleMessage() models.Message {
	return models.Message{Name: "Jean", Email: "jean@mail.com", Subject: "Devis", Message: "Bonjour\n<b>merci</b>"}
}

func TestNewMessageUsesSettingsRecipient(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec, "owner@relay.com", time.Second)

	s := models.DefaultSettings(time.Now())
	assert.True(t, d.NewMessage(s, sampleMessage()))
	d.Wait()

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, "contact@liteos.fr", got[0].to)
	assert.Equal(t, "Nouveau message: Devis", got[0].p.Subject)
	assert.Contains(t, got[0].p.HTML, "Bonjour<br>")
	assert.Contains(t, got[0].p.HTML, "&lt;b&gt;merci&lt;/b&gt;")
}

func TestNewMessageFallbackRecipient(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec, "owner@relay.com", time.Second)

	s := models.DefaultSettings(time.Now())
	s.ContactEmail = ""
	d.NewMessage(s, sampleMessage())
	d.Wait()

	require.Len(t, rec.all(), 1)
	assert.Equal(t, "owner@relay.com", rec.all()[0].to)
}

func TestNewMessageRespectsSettings(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec, "owner@relay.com", time.Second)

	s := models.DefaultSettings(time.Now())
	s.Notifications.Email = false
	assert.False(t, d.NewMessage(s, sampleMessage()))

	s = models.DefaultSettings(time.Now())
	s.Notifications.NewMessage = false
	assert.False(t, d.NewMessage(s, sampleMessage()))

	d.Wait()
	assert.Empty(t, rec.all())
}

func TestDispatchSwallowsFailures(t *testing.T) {
	rec := &recorder{err: errors.New("relay down")}
	d := NewDispatcher(rec, "", time.Second)

	d.Dispatch("a@b.c", Payload{Subject: "x"})
	d.Dispatch("", Payload{Subject: "dropped"})
	d.Wait()

	assert.Len(t, rec.all(), 1)
}

func TestSMTPMessageHeaders(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, User: "bot@example.com", Pass: "x", FromName: "Bakaba Stone"})
	msg := n.message("owner@example.com", Payload{Subject: "Nouveau message: Devis", HTML: "<p>hi</p>"})

	assert.Equal(t, []string{`"Bakaba Stone" <bot@example.com>`}, msg.GetHeader("From"))
	assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Nouveau message: Devis"}, msg.GetHeader("Subject"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, "owner@example.com", Payload{}), context.Canceled)
}

func TestWeeklyReportPayload(t *testing.T) {
	p, err := WeeklyReportPayload(WeeklyReport{
		SiteName: "Liteos", From: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		NewMessages: 4, UnreadMessages: 2, PendingTestimonials: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rapport hebdomadaire: Liteos", p.Subject)
	assert.Contains(t, p.HTML, "04/03/2024")
	assert.Contains(t, p.HTML, "Nouveaux messages: 4")
}
