package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Ananth-NQI/portfolio-backend/internal/logger"
	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
	"github.com/Ananth-NQI/portfolio-backend/internal/testutil"
)

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type fakeWhatsApp struct {
	mu   sync.Mutex
	sent []string
}

func (w *fakeWhatsApp) SendWhatsAppMessage(to string, message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sent = append(w.sent, to)
	return nil
}

// recordingNotifier captures events delivered by the messaging service.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []uint
	created  []bool
	replies  []uint
}

func (r *recordingNotifier) NewMessage(_ context.Context, conv *models.Conversation, msg *models.Message, created bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg.ID)
	r.created = append(r.created, created)
	return nil
}

func (r *recordingNotifier) Reply(_ context.Context, conv *models.Conversation, reply *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, reply.ID)
	return errors.New("smtp unavailable")
}

func newMessaging(t *testing.T, notifier Notifier) (*MessagingService, storage.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	svc := NewMessagingService(store, notifier, logger.Discard(), "admin@portfolio.local")
	t.Cleanup(svc.Wait)
	return svc, store
}

func bob(content string) SubmitMessageInput {
	return SubmitMessageInput{
		SenderName:  "Bob",
		SenderEmail: "bob@x.com",
		Subject:     "Hi",
		Content:     content,
	}
}
