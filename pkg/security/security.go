package security

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxSearchLength bounds free-text search input
const MaxSearchLength = 100

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
	jsSchemePattern    = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRegexp = regexp.MustCompile(`(?i)on\w+=`)
	gaIDPattern        = regexp.MustCompile(`^G-[A-Z0-9]+$`)
	adSenseIDPattern   = regexp.MustCompile(`^ca-pub-\d+$`)
)

// SanitizeSearchInput trims and truncates the input to maxLength runes, then
// strips HTML tags, javascript: schemes and inline event handler attributes
func SanitizeSearchInput(input string, maxLength int) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if runes := []rune(s); len(runes) > maxLength {
		s = string(runes[:maxLength])
	}

	s = htmlTagPattern.ReplaceAllString(s, "")
	s = jsSchemePattern.ReplaceAllString(s, "")
	s = eventHandlerRegexp.ReplaceAllString(s, "")
	return s
}

// IsValidExternalURL reports whether raw is an absolute http or https URL
func IsValidExternalURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsValidGAID checks the GA4 measurement id format (G-XXXXXXXXXX)
func IsValidGAID(id string) bool {
	return gaIDPattern.MatchString(id)
}

// IsValidAdSenseID checks the AdSense publisher id format (ca-pub-<digits>)
func IsValidAdSenseID(id string) bool {
	return adSenseIDPattern.MatchString(id)
}
