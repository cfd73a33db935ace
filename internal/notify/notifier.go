package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/spec-kit/gis-site-service/internal/config"
	"github.com/spec-kit/gis-site-service/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	KindAdminNotification = "admin_notification"
	KindUserConfirmation  = "user_confirmation"
	KindAdminReply        = "admin_reply"
)

// Recipients is where admin notifications go.
type Recipients struct {
	To string
	CC []string
}

type templateData struct {
	SiteName string
	SiteURL  string
	Message  domain.Message
	Reply    domain.MessageReply
}

// Notifier renders and sends the contact workflow emails.
type Notifier struct {
	mailer    Mailer
	templates *template.Template
	site      config.SiteConfig
}

// NewNotifier parses the embedded templates.
func NewNotifier(mailer Mailer, site config.SiteConfig) (*Notifier, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Notifier{mailer: mailer, templates: tmpl, site: site}, nil
}

// NotifyAdmin tells the configured recipients about a new submission.
func (n *Notifier) NotifyAdmin(ctx context.Context, msg domain.Message, to Recipients) (string, error) {
	body, err := n.render(KindAdminNotification, msg, domain.MessageReply{})
	if err != nil {
		return "", err
	}
	return n.mailer.Send(ctx, Email{
		To:       []string{to.To},
		CC:       to.CC,
		ReplyTo:  msg.Email,
		Subject:  fmt.Sprintf("New contact message from %s", msg.Name),
		HTMLBody: body,
		TextBody: fmt.Sprintf("%s <%s> wrote:\n\n%s", msg.Name, msg.Email, msg.Body),
	})
}

// ConfirmToSender acknowledges receipt to the visitor.
func (n *Notifier) ConfirmToSender(ctx context.Context, msg domain.Message) (string, error) {
	body, err := n.render(KindUserConfirmation, msg, domain.MessageReply{})
	if err != nil {
		return "", err
	}
	return n.mailer.Send(ctx, Email{
		To:       []string{msg.Email},
		Subject:  fmt.Sprintf("We received your message - %s", n.site.Name),
		HTMLBody: body,
		TextBody: fmt.Sprintf("Dear %s,\n\nThank you for contacting %s. We will get back to you shortly.", msg.Name, n.site.Name),
	})
}

// SendReply delivers an admin answer to the visitor.
func (n *Notifier) SendReply(ctx context.Context, msg domain.Message, reply domain.MessageReply) (string, error) {
	body, err := n.render(KindAdminReply, msg, reply)
	if err != nil {
		return "", err
	}
	return n.mailer.Send(ctx, Email{
		To:       []string{msg.Email},
		Subject:  fmt.Sprintf("Re: your message to %s", n.site.Name),
		HTMLBody: body,
		TextBody: fmt.Sprintf("Dear %s,\n\n%s", msg.Name, reply.Content),
	})
}

func (n *Notifier) render(kind string, msg domain.Message, reply domain.MessageReply) (string, error) {
	var buf bytes.Buffer
	data := templateData{SiteName: n.site.Name, SiteURL: n.site.URL, Message: msg, Reply: reply}
	if err := n.templates.ExecuteTemplate(&buf, kind, data); err != nil {
		return "", fmt.Errorf("render %s: %w", kind, err)
	}
	return buf.String(), nil
}
