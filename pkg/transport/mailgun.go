package transport

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// EmailMessage is the provider-neutral email built from a payload.
type EmailMessage struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers an EmailMessage and returns the provider message id.
type Mailer interface {
	Deliver(ctx context.Context, msg EmailMessage) (string, error)
}

// MailgunConfig holds the Mailgun account and routing settings.
type MailgunConfig struct {
	Domain    string
	APIKey    string
	FromEmail string
	FromName  string
	To        []string
	Subject   string
	Timeout   time.Duration
}

func (c MailgunConfig) validate() error {
	switch {
	case strings.TrimSpace(c.Domain) == "":
		return fmt.Errorf("%w: mailgun domain is required", ErrNotConfigured)
	case strings.TrimSpace(c.APIKey) == "":
		return fmt.Errorf("%w: mailgun api key is required", ErrNotConfigured)
	case strings.TrimSpace(c.FromEmail) == "":
		return fmt.Errorf("%w: sender address is required", ErrNotConfigured)
	case len(c.To) == 0:
		return fmt.Errorf("%w: at least one recipient is required", ErrNotConfigured)
	}
	return nil
}

type mailgunMailer struct {
	client *mailgun.MailgunImpl
}

// NewMailgunMailer wraps the Mailgun SDK client.
func NewMailgunMailer(domain, apiKey string) Mailer {
	return &mailgunMailer{client: mailgun.NewMailgun(domain, apiKey)}
}

func (m *mailgunMailer) Deliver(ctx context.Context, msg EmailMessage) (string, error) {
	message := m.client.NewMessage(msg.From, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}
	if msg.ReplyTo != "" {
		message.AddHeader("Reply-To", msg.ReplyTo)
	}
	_, id, err := m.client.Send(ctx, message)
	return id, err
}

// Email turns a consultation request into an email and hands it to a Mailer.
type Email struct {
	cfg    MailgunConfig
	mailer Mailer
	labels map[string]string
	order  []string
	logger *zap.Logger
}

// EmailOption configures the Email transport.
type EmailOption func(*Email)

// WithMailer replaces the Mailgun client, mainly for tests.
func WithMailer(mailer Mailer) EmailOption {
	return func(e *Email) {
		if mailer != nil {
			e.mailer = mailer
		}
	}
}

// WithFieldLabels sets the human labels and display order of the fields.
func WithFieldLabels(order []string, labels map[string]string) EmailOption {
	return func(e *Email) {
		e.order = append([]string(nil), order...)
		e.labels = make(map[string]string, len(labels))
		for key, value := range labels {
			e.labels[key] = value
		}
	}
}

// WithEmailLogger sets the transport logger.
func WithEmailLogger(logger *zap.Logger) EmailOption {
	return func(e *Email) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewMailgun validates cfg and constructs an Email transport backed by
// Mailgun unless WithMailer supplies another Mailer.
func NewMailgun(cfg MailgunConfig, options ...EmailOption) (*Email, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Subject == "" {
		cfg.Subject = "New consultation request"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	e := &Email{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.mailer == nil {
		e.mailer = NewMailgunMailer(cfg.Domain, cfg.APIKey)
	}
	return e, nil
}

// Send formats and delivers one email.
func (e *Email) Send(ctx context.Context, payload Payload) error {
	msg := e.Compose(payload)

	sendCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	id, err := e.mailer.Deliver(sendCtx, msg)
	if err != nil {
		e.logger.Error("failed to send consultation email", zap.Strings("to", msg.To), zap.Error(err))
		return AsSubmissionError("mailgun", err)
	}
	e.logger.Info("consultation email sent", zap.Strings("to", msg.To), zap.String("message_id", id))
	return nil
}

// Compose builds the email for payload. User values are stripped of markup
// before they are placed in the HTML body.
func (e *Email) Compose(payload Payload) EmailMessage {
	from := e.cfg.FromEmail
	if e.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", e.cfg.FromName, e.cfg.FromEmail)
	}

	policy := emailPolicy()
	var text, html strings.Builder
	html.WriteString("<table>")
	for _, key := range e.fieldOrder(payload) {
		value := payload[key]
		label := e.label(key)
		fmt.Fprintf(&text, "%s: %s\n", label, value)
		fmt.Fprintf(&html, "<tr><th>%s</th><td>%s</td></tr>",
			policy.Sanitize(label),
			strings.ReplaceAll(policy.Sanitize(value), "\n", "<br>"))
	}
	html.WriteString("</table>")

	msg := EmailMessage{
		From:    from,
		To:      append([]string(nil), e.cfg.To...),
		Subject: e.cfg.Subject,
		Text:    text.String(),
		HTML:    html.String(),
	}
	if email := strings.TrimSpace(payload["email"]); email != "" && !strings.ContainsAny(email, "\r\n") {
		msg.ReplyTo = email
	}
	if company := strings.TrimSpace(payload["company"]); company != "" {
		msg.Subject = fmt.Sprintf("%s: %s", e.cfg.Subject, headerSafe.Replace(company))
	}
	return msg
}

func (e *Email) fieldOrder(payload Payload) []string {
	if len(e.order) == 0 {
		return payload.Keys()
	}
	seen := make(map[string]struct{}, len(e.order))
	out := make([]string, 0, len(payload))
	for _, key := range e.order {
		if _, ok := payload[key]; ok {
			out = append(out, key)
			seen[key] = struct{}{}
		}
	}
	for _, key := range payload.Keys() {
		if _, ok := seen[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

func (e *Email) label(key string) string {
	if label := strings.TrimSpace(e.labels[key]); label != "" {
		return label
	}
	return key
}

var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

var (
	emailPolicyOnce sync.Once
	emailPolicyInst *bluemonday.Policy
)

func emailPolicy() *bluemonday.Policy {
	emailPolicyOnce.Do(func() {
		emailPolicyInst = bluemonday.StrictPolicy()
	})
	return emailPolicyInst
}
