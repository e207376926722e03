package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-contactform/pkg/validation"
)

// Message keys used outside the validation rules.
const (
	MessageSubmitBusy     = "contact.submit.busy"
	MessageSubmitSuccess  = "contact.notice.success"
	MessageSubmitFailure  = "contact.notice.failure"
	MessageFormInvalid    = "contact.notice.invalid"
	MessageRateLimited    = "contact.notice.rate_limited"
	MessageModalClose     = "contact.modal.close"
	MessageRequiredMarker = "contact.field.required"
	DefaultLocale         = "ko"
	fallbackLocaleEnglish = "en"
)

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// translator was configured.
	ErrMissingTranslator = errors.New("render: translator is not configured")
	// ErrMissingTranslation is returned by Catalog when a key is unknown.
	ErrMissingTranslation = errors.New("render: translation not found")
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to display when a key cannot be
// resolved.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

// Catalog is an in-memory Translator keyed by locale then message key.
// Lookups fall back to the catalog's default locale before giving up.
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	messages      map[string]map[string]string
}

// NewCatalog constructs an empty catalog.
func NewCatalog(defaultLocale string) *Catalog {
	if strings.TrimSpace(defaultLocale) == "" {
		defaultLocale = DefaultLocale
	}
	return &Catalog{
		defaultLocale: normalizeLocale(defaultLocale),
		messages:      make(map[string]map[string]string),
	}
}

// DefaultCatalog returns the built-in Korean and English messages.
func DefaultCatalog() *Catalog {
	catalog := NewCatalog(DefaultLocale)
	catalog.Add(DefaultLocale, map[string]string{
		validation.MessageRequired: "이 필드는 필수입니다.",
		validation.MessageEmail:    "올바른 이메일 주소를 입력해주세요.",
		validation.MessagePhone:    "올바른 전화번호를 입력해주세요.",
		MessageSubmitBusy:          "전송 중...",
		MessageSubmitSuccess:       "상담 신청이 완료되었습니다! 24시간 내에 연락드리겠습니다.",
		MessageSubmitFailure:       "상담 신청 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
		MessageFormInvalid:         "입력 내용을 확인해주세요.",
		MessageRateLimited:         "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
		MessageModalClose:          "닫기",
		MessageRequiredMarker:      "필수",
	})
	catalog.Add(fallbackLocaleEnglish, map[string]string{
		validation.MessageRequired: "This field is required.",
		validation.MessageEmail:    "Please enter a valid email address.",
		validation.MessagePhone:    "Please enter a valid phone number.",
		MessageSubmitBusy:          "Sending...",
		MessageSubmitSuccess:       "Thanks! We will contact you within 24 hours.",
		MessageSubmitFailure:       "Something went wrong while sending your request. Please try again shortly.",
		MessageFormInvalid:         "Please review the highlighted fields.",
		MessageRateLimited:         "Too many requests. Please try again shortly.",
		MessageModalClose:          "Close",
		MessageRequiredMarker:      "required",
	})
	return catalog
}

// Add merges messages for locale, replacing existing keys.
func (c *Catalog) Add(locale string, messages map[string]string) {
	if c == nil || len(messages) == 0 {
		return
	}
	locale = normalizeLocale(locale)

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, msg := range messages {
		bucket[strings.TrimSpace(key)] = msg
	}
}

// Translate implements Translator. Arguments are applied with fmt.Sprintf
// when present.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	key = strings.TrimSpace(key)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeCandidates(locale, c.defaultLocale) {
		if msg, ok := c.messages[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

// Locales lists the locales with at least one message.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// Localizer binds a translator to one locale.
type Localizer struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Text resolves key, routing failures through OnMissing.
func (l Localizer) Text(key string, args ...any) string {
	onMissing := l.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if l.Translator == nil {
		return onMissing(l.Locale, key, args, ErrMissingTranslator)
	}
	msg, err := l.Translator.Translate(l.Locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(l.Locale, key, args, err)
	}
	return msg
}

func localeCandidates(locale, fallback string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if idx := strings.IndexAny(locale, "-_"); idx > 0 {
			out = append(out, locale[:idx])
		}
	}
	if fallback != "" && fallback != locale {
		out = append(out, fallback)
	}
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
