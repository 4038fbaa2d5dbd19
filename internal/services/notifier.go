package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

// ErrNoMailer is returned when an e-mail is requested but SMTP is not configured.
var ErrNoMailer = errors.New("mailer not configured")

// Notifier is told about messaging events after they are committed.
type Notifier interface {
	NewMessage(ctx context.Context, conv *models.Conversation, msg *models.Message, created bool) error
	Reply(ctx context.Context, conv *models.Conversation, reply *models.Message) error
}

// ResetNotifier delivers password reset links.
type ResetNotifier interface {
	PasswordReset(ctx context.Context, to, link string) error
}

// DispatcherConfig names the admin's own inbox and WhatsApp number.
type DispatcherConfig struct {
	AdminEmail    string
	AdminWhatsApp string
}

// Dispatcher fans messaging events out to e-mail and WhatsApp according to
// the stored MessageSettings. mailer and whatsapp may be nil.
type Dispatcher struct {
	store    storage.Store
	mailer   Mailer
	whatsapp WhatsAppSender
	cfg      DispatcherConfig
	log      logrus.FieldLogger
}

func NewDispatcher(store storage.Store, mailer Mailer, whatsapp WhatsAppSender, cfg DispatcherConfig, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		mailer:   mailer,
		whatsapp: whatsapp,
		cfg:      cfg,
		log:      log,
	}
}

func (d *Dispatcher) settings(ctx context.Context) (*models.MessageSettings, error) {
	settings, err := d.store.GetMessageSettings(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return models.DefaultMessageSettings(), nil
	}
	return settings, err
}

// NewMessage alerts the admin and sends the auto-reply, if any.
func (d *Dispatcher) NewMessage(ctx context.Context, conv *models.Conversation, msg *models.Message, created bool) error {
	settings, err := d.settings(ctx)
	if err != nil {
		return fmt.Errorf("load message settings: %w", err)
	}

	var errs []error
	summary := newMessageSummary(conv, msg)

	if settings.EmailNotifications && d.mailer != nil && d.cfg.AdminEmail != "" {
		subject := fmt.Sprintf("New message from %s: %s", msg.SenderName, conv.Subject)
		if err := d.mailer.Send(ctx, d.cfg.AdminEmail, subject, summary); err != nil {
			errs = append(errs, fmt.Errorf("admin email: %w", err))
		}
	}

	if settings.WhatsappNotifications && d.whatsapp != nil && d.cfg.AdminWhatsApp != "" {
		if err := d.whatsapp.SendWhatsAppMessage(d.cfg.AdminWhatsApp, summary); err != nil {
			errs = append(errs, fmt.Errorf("admin whatsapp: %w", err))
		}
	}

	if settings.LinkedinNotifications {
		d.log.Debug("LinkedIn notifications enabled but no delivery channel exists")
	}

	if err := d.autoReply(ctx, conv, msg, created); err != nil {
		errs = append(errs, fmt.Errorf("auto-reply: %w", err))
	}

	return errors.Join(errs...)
}

// autoReply e-mails the sender using the conversation's template. A new
// conversation picks up the first active template and is linked to it.
func (d *Dispatcher) autoReply(ctx context.Context, conv *models.Conversation, msg *models.Message, created bool) error {
	if d.mailer == nil || !conv.IsActive {
		return nil
	}

	var tpl *models.AutoReplyTemplate
	var err error
	switch {
	case conv.AutoReplyTemplateID != nil:
		tpl, err = d.store.GetTemplate(ctx, *conv.AutoReplyTemplateID)
	case created:
		tpl, err = d.store.FirstActiveTemplate(ctx)
		if err == nil {
			err = d.store.UpdateConversation(ctx, conv.ID, map[string]interface{}{"auto_reply_template_id": tpl.ID})
		}
	default:
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !tpl.IsActive {
		return nil
	}

	subject, body := RenderAutoReply(tpl, msg, conv)
	return d.mailer.Send(ctx, msg.SenderEmail, subject, body)
}

// Reply e-mails the admin's reply to the conversation sender.
func (d *Dispatcher) Reply(ctx context.Context, conv *models.Conversation, reply *models.Message) error {
	if d.mailer == nil {
		return nil
	}

	var body strings.Builder
	body.WriteString(reply.Content)
	if len(reply.Attachments) > 0 {
		body.WriteString("\n\nAttachments:\n")
		for _, a := range reply.Attachments {
			fmt.Fprintf(&body, "- %s: %s\n", a.FileName, a.FileURL)
		}
	}

	return d.mailer.Send(ctx, conv.SenderEmail, "Re: "+conv.Subject, body.String())
}

// PasswordReset e-mails a reset link. It returns ErrNoMailer when SMTP is not configured.
func (d *Dispatcher) PasswordReset(ctx context.Context, to, link string) error {
	if d.mailer == nil {
		return ErrNoMailer
	}
	body := "A password reset was requested for the portfolio admin account.\n\n" +
		"Open the link below within the next hour to choose a new password:\n" + link +
		"\n\nIf you did not request this, ignore this e-mail."
	return d.mailer.Send(ctx, to, "Reset your admin password", body)
}

func newMessageSummary(conv *models.Conversation, msg *models.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", msg.SenderName, msg.SenderEmail)
	if msg.SenderPhone != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *msg.SenderPhone)
	}
	fmt.Fprintf(&b, "Subject: %s\nVia: %s\n\n%s\n", conv.Subject, msg.ContactMethod, msg.Content)
	if n := len(msg.Attachments); n > 0 {
		fmt.Fprintf(&b, "\n%d attachment(s)\n", n)
	}
	return b.String()
}
