package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-contactform/pkg/transport"
)

func TestSimulatedLogsPayloadAfterLatency(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tick := make(chan time.Time, 1)
	var requested time.Duration

	sim := transport.NewSimulated(
		transport.WithSimulatedLogger(zap.New(core)),
		transport.WithTimer(func(d time.Duration) <-chan time.Time {
			requested = d
			return tick
		}),
	)

	done := make(chan error, 1)
	go func() {
		done <- sim.Send(context.Background(), transport.Payload{"company": "Acme", "email": "a@b.co"})
	}()

	select {
	case err := <-done:
		t.Fatalf("send returned before latency elapsed: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	tick <- time.Now()
	if err := <-done; err != nil {
		t.Fatalf("send: %v", err)
	}
	if requested != transport.DefaultSimulatedLatency {
		t.Fatalf("expected default latency, got %v", requested)
	}

	entries := logs.FilterMessage("form submission data").All()
	if len(entries) != 1 {
		t.Fatalf("expected one payload record, got %d", len(entries))
	}
	payload, ok := entries[0].ContextMap()["payload"].(map[string]any)
	if !ok {
		t.Fatalf("payload field missing: %#v", entries[0].ContextMap())
	}
	if diff := cmp.Diff(map[string]any{"company": "Acme", "email": "a@b.co"}, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulatedHonoursContext(t *testing.T) {
	sim := transport.NewSimulated(transport.WithTimer(func(time.Duration) <-chan time.Time {
		return make(chan time.Time)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sim.Send(ctx, transport.Payload{})
	var subErr *transport.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if subErr.Reason != "canceled" || !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error %+v", subErr)
	}
}

func TestHTTPSendsJSON(t *testing.T) {
	var got map[string]string
	var contentType, apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		apiKey = r.Header.Get("X-Api-Key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	tr, err := transport.NewHTTP(srv.URL, transport.WithHeader("X-Api-Key", "secret"))
	if err != nil {
		t.Fatalf("new http: %v", err)
	}

	if err := tr.Send(context.Background(), transport.Payload{"company": "Acme"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if contentType != "application/json" || apiKey != "secret" {
		t.Fatalf("unexpected headers content-type=%q key=%q", contentType, apiKey)
	}
	if diff := cmp.Diff(map[string]string{"company": "Acme"}, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPSendsForm(t *testing.T) {
	var company string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		company = r.PostForm.Get("company")
	}))
	defer srv.Close()

	tr, err := transport.NewHTTP(srv.URL, transport.WithEncoding(transport.EncodingForm))
	if err != nil {
		t.Fatalf("new http: %v", err)
	}
	if err := tr.Send(context.Background(), transport.Payload{"company": "Acme & Co"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if company != "Acme & Co" {
		t.Fatalf("unexpected company %q", company)
	}
}

func TestHTTPRejection(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantFields map[string][]string
	}{
		{
			name:       "field list",
			status:     http.StatusUnprocessableEntity,
			body:       `{"errors":{"email":["taken"]}}`,
			wantFields: map[string][]string{"email": {"taken"}},
		},
		{
			name:       "field string",
			status:     http.StatusBadRequest,
			body:       `{"errors":{"phone":"unreachable"}}`,
			wantFields: map[string][]string{"phone": {"unreachable"}},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			tr, err := transport.NewHTTP(srv.URL)
			if err != nil {
				t.Fatalf("new http: %v", err)
			}
			err = tr.Send(context.Background(), transport.Payload{"email": "a@b.co"})

			var subErr *transport.SubmissionError
			if !errors.As(err, &subErr) {
				t.Fatalf("expected SubmissionError, got %v", err)
			}
			if subErr.StatusCode != tt.status {
				t.Fatalf("status mismatch: want %d got %d", tt.status, subErr.StatusCode)
			}
			if diff := cmp.Diff(tt.wantFields, subErr.FieldErrors); diff != "" {
				t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewHTTPRequiresEndpoint(t *testing.T) {
	if _, err := transport.NewHTTP("  "); !errors.Is(err, transport.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

type fakeMailer struct {
	sent []transport.EmailMessage
	err  error
}

func (f *fakeMailer) Deliver(_ context.Context, msg transport.EmailMessage) (string, error) {
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return "", f.err
	}
	return "<id@mailgun>", nil
}

func mailgunConfig() transport.MailgunConfig {
	return transport.MailgunConfig{
		Domain:    "mg.example.com",
		APIKey:    "key",
		FromEmail: "noreply@example.com",
		FromName:  "Landing",
		To:        []string{"sales@example.com"},
		Subject:   "Consultation",
	}
}

func TestEmailComposeSanitizesValues(t *testing.T) {
	mailer := &fakeMailer{}
	tr, err := transport.NewMailgun(mailgunConfig(),
		transport.WithMailer(mailer),
		transport.WithFieldLabels([]string{"company", "email", "message"}, map[string]string{
			"company": "Company",
			"email":   "Email",
		}),
	)
	if err != nil {
		t.Fatalf("new mailgun: %v", err)
	}

	payload := transport.Payload{
		"message": "<script>alert(1)</script>hello",
		"email":   "a@b.co",
		"company": "Acme",
	}
	if err := tr.Send(context.Background(), payload); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}

	msg := mailer.sent[0]
	if msg.From != "Landing <noreply@example.com>" {
		t.Fatalf("unexpected from %q", msg.From)
	}
	if msg.Subject != "Consultation: Acme" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.ReplyTo != "a@b.co" {
		t.Fatalf("unexpected reply-to %q", msg.ReplyTo)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatalf("html body not sanitized: %s", msg.HTML)
	}
	wantText := "Company: Acme\nEmail: a@b.co\nmessage: <script>alert(1)</script>hello\n"
	if msg.Text != wantText {
		t.Fatalf("text body mismatch:\nwant %q\ngot  %q", wantText, msg.Text)
	}
}

func TestEmailDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	tr, err := transport.NewMailgun(mailgunConfig(), transport.WithMailer(mailer))
	if err != nil {
		t.Fatalf("new mailgun: %v", err)
	}

	err = tr.Send(context.Background(), transport.Payload{"company": "Acme"})
	var subErr *transport.SubmissionError
	if !errors.As(err, &subErr) || subErr.Transport != "mailgun" {
		t.Fatalf("expected mailgun SubmissionError, got %v", err)
	}
}

func TestNewMailgunValidatesConfig(t *testing.T) {
	cfg := mailgunConfig()
	cfg.To = nil
	if _, err := transport.NewMailgun(cfg); !errors.Is(err, transport.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
