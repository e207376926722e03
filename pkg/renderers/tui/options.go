package tui

// Theme captures optional message prefixes.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme marks errors and notices with plain ASCII prefixes.
var DefaultTheme = Theme{InfoPrefix: "", ErrorPrefix: "! "}

// DefaultMaxAttempts bounds how often an invalid field is asked again.
const DefaultMaxAttempts = 5

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithConfirm asks message before submitting. An empty message skips the
// confirmation.
func WithConfirm(message string) Option {
	return func(s *Session) {
		s.confirm = message
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryPrompt offers to resend after a failed submission.
func WithRetryPrompt(message string) Option {
	return func(s *Session) {
		s.retry = message
	}
}
