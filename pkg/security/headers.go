package security

import (
	"net/http"
	"strings"
)

type cspDirective struct {
	name    string
	sources []string
}

var cspDirectives = []cspDirective{
	{"default-src", []string{"'self'"}},
	{"script-src", []string{
		"'self'",
		"'unsafe-inline'",
		"https://www.googletagmanager.com",
		"https://pagead2.googlesyndication.com",
		"https://www.google-analytics.com",
		"https://partner.googleadservices.com",
		"https://tpc.googlesyndication.com",
		"https://www.gstatic.com",
	}},
	{"style-src", []string{"'self'", "'unsafe-inline'", "https://fonts.googleapis.com"}},
	{"font-src", []string{"'self'", "https://fonts.gstatic.com"}},
	{"img-src", []string{"'self'", "data:", "blob:", "https:"}},
	{"frame-src", []string{
		"'self'",
		"https://calendar.google.com",
		"https://googleads.g.doubleclick.net",
		"https://tpc.googlesyndication.com",
		"https://www.google.com",
	}},
	{"connect-src", []string{
		"'self'",
		"https://docs.google.com",
		"https://www.googletagmanager.com",
		"https://www.google-analytics.com",
		"https://analytics.google.com",
		"https://pagead2.googlesyndication.com",
	}},
	{"object-src", []string{"'none'"}},
	{"base-uri", []string{"'self'"}},
	{"form-action", []string{"'self'"}},
	{"frame-ancestors", []string{"'self'"}},
}

// ContentSecurityPolicy renders the CSP header value
func ContentSecurityPolicy() string {
	parts := make([]string, 0, len(cspDirectives))
	for _, d := range cspDirectives {
		parts = append(parts, d.name+" "+strings.Join(d.sources, " "))
	}
	return strings.Join(parts, "; ")
}

// Headers adds security response headers to every response
func Headers(next http.Handler) http.Handler {
	csp := ContentSecurityPolicy()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		next.ServeHTTP(w, r)
	})
}
