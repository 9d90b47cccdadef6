package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSearchInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"plain text is trimmed", "  sea turtle ", "sea turtle"},
		{"html tags removed", "<b>owl</b>", "owl"},
		{"script tag removed", "<script>alert(1)</script>bird", "alert(1)bird"},
		{"javascript scheme removed", "JavaScript:alert", "alert"},
		{"event handler removed", "x onClick=steal", "x steal"},
		{"chinese text kept", "石虎", "石虎"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeSearchInput(tt.input, MaxSearchLength))
		})
	}
}

func TestSanitizeSearchInput_TruncatesRunes(t *testing.T) {
	input := strings.Repeat("熊", 150)
	result := SanitizeSearchInput(input, MaxSearchLength)
	assert.Equal(t, MaxSearchLength, len([]rune(result)))
}

func TestIsValidExternalURL(t *testing.T) {
	assert.True(t, IsValidExternalURL("https://example.org/donate"))
	assert.True(t, IsValidExternalURL("http://example.org"))
	assert.False(t, IsValidExternalURL(""))
	assert.False(t, IsValidExternalURL("javascript:alert(1)"))
	assert.False(t, IsValidExternalURL("ftp://example.org"))
	assert.False(t, IsValidExternalURL("/relative/path"))
}

func TestIsValidGAID(t *testing.T) {
	assert.True(t, IsValidGAID("G-ABC123XYZ"))
	assert.False(t, IsValidGAID("UA-12345-1"))
	assert.False(t, IsValidGAID("G-abc"))
	assert.False(t, IsValidGAID(""))
}

func TestIsValidAdSenseID(t *testing.T) {
	assert.True(t, IsValidAdSenseID("ca-pub-1234567890123456"))
	assert.False(t, IsValidAdSenseID("pub-123"))
	assert.False(t, IsValidAdSenseID("ca-pub-abc"))
}

func TestHeaders(t *testing.T) {
	handler := Headers(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "https://calendar.google.com")
	assert.Contains(t, csp, "object-src 'none'")
}
