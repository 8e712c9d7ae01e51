package guard

import (
	"log/slog"
	"regexp"
	"strings"
)

// injectionPatterns match input resembling injection attempts. Matches are
// stripped, never rejected; sanitization always yields usable (possibly
// empty) text.
var injectionPatterns = []*regexp.Regexp{
	// A whole script element goes first so its payload is removed with it;
	// the second pattern catches unpaired tags.
	regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`),
	regexp.MustCompile(`(?i)<\s*/?\s*script[^>]*>`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bdrop\s+table\b`),
	regexp.MustCompile(`(?i)\bdelete\s+from\b`),
	regexp.MustCompile(`(?i)\binsert\s+into\b`),
	regexp.MustCompile(`(?i)\bupdate\s+\w+\s+set\b`),
	regexp.MustCompile(`(?i)\bunion\s+select\b`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Sanitizer strips injection-style patterns from raw user input.
// The zero value is not usable; construct with NewSanitizer.
type Sanitizer struct {
	logger *slog.Logger
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sanitizer) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSanitizer creates a sanitizer.
func NewSanitizer(opts ...Option) *Sanitizer {
	s := &Sanitizer{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize strips injection-style patterns from text and reports whether
// anything suspicious was found. Whitespace is normalized to single spaces.
// Sanitizing already-clean text returns it unchanged with suspicious=false,
// so the operation is idempotent.
func (s *Sanitizer) Sanitize(text string) (clean string, suspicious bool) {
	clean = text
	// Stripping can splice two halves of a pattern together
	// ("drop drop table table"), so repeat until a full pass finds nothing.
	for stripped := true; stripped; {
		stripped = false
		for _, pattern := range injectionPatterns {
			if pattern.MatchString(clean) {
				suspicious = true
				stripped = true
				clean = pattern.ReplaceAllString(clean, " ")
			}
		}
	}

	clean = strings.TrimSpace(whitespaceRun.ReplaceAllString(clean, " "))

	if suspicious {
		s.logger.Warn("suspicious input neutralized", "original_length", len(text), "clean_length", len(clean))
	}

	return clean, suspicious
}
