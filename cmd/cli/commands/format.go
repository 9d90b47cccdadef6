package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wildlifewatch/conservation-hub/pkg/core/donationwindow"
	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/i18n"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorOrange = "\033[38;5;208m"
	colorDim    = "\033[2m"
)

// statusColor picks the terminal color for a status tier
func statusColor(status model.Status) string {
	switch status {
	case model.StatusRed:
		return colorRed
	case model.StatusOrange:
		return colorOrange
	case model.StatusYellow:
		return colorYellow
	case model.StatusGreen:
		return colorGreen
	case model.StatusBlue:
		return colorBlue
	case model.StatusPurple:
		return colorPurple
	default:
		return colorDim
	}
}

// truncate shortens s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// formatDate renders an optional window date
func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// describeWindow summarizes window info in one line
func describeWindow(info donationwindow.WindowInfo) string {
	var b strings.Builder
	if info.IsOpen {
		b.WriteString("open")
	} else {
		b.WriteString("closed")
	}
	if info.StartDate != nil || info.EndDate != nil {
		fmt.Fprintf(&b, " (%s → %s)", formatDate(info.StartDate), formatDate(info.EndDate))
	}
	if !info.IsOpen && info.HasFutureWindow {
		b.WriteString(", reopens " + formatDate(info.StartDate))
	}
	return b.String()
}

// resolveLocale parses a --locale flag, falling back to the configured default
func resolveLocale(raw string, fallback model.Locale) (model.Locale, error) {
	if raw == "" {
		return fallback, nil
	}
	locale, ok := i18n.ParseLocale(raw)
	if !ok {
		return "", fmt.Errorf("unsupported locale %q (use zh-TW or en)", raw)
	}
	return locale, nil
}

// writeOutput writes data to path, or stdout when path is empty or "-"
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
