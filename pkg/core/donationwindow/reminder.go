package donationwindow

import (
	"fmt"
	"strings"
	"time"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

const googleCalendarURL = "https://calendar.google.com/calendar/render"

// Message keys looked up through TranslateFunc
const (
	KeyCalendarTitle   = "calendarTitle"
	KeyCalendarDetails = "calendarDetails"
)

const allDayLayout = "20060102"

// TranslateFunc resolves a message key with named values. A nil TranslateFunc
// selects the built-in Traditional Chinese texts.
type TranslateFunc func(key string, values map[string]string) string

// ReminderText returns the localized event title and details for an organization
func ReminderText(org *model.Organization, locale model.Locale, translate TranslateFunc) (title, details string) {
	name := org.Name(locale)
	if translate == nil {
		return "勸募開始日期: " + name, "本年度勸募開始日期: " + name
	}
	values := map[string]string{"name": name}
	return translate(KeyCalendarTitle, values), translate(KeyCalendarDetails, values)
}

// ReminderLink builds a Google Calendar template link for the next start of the
// donation window. It reports false when no usable start date is configured.
func ReminderLink(org *model.Organization, locale model.Locale, translate TranslateFunc) (string, bool) {
	return ReminderLinkAt(time.Now(), org, locale, translate)
}

// ReminderLinkAt is ReminderLink with an explicit clock reading
func ReminderLinkAt(now time.Time, org *model.Organization, locale model.Locale, translate TranslateFunc) (string, bool) {
	if org.DonationStartDate == "" {
		return "", false
	}
	start, ok := ParseMonthDay(org.DonationStartDate)
	if !ok {
		return "", false
	}

	day := start.NextOccurrence(now).Format(allDayLayout)
	title, details := ReminderText(org, locale, translate)

	return fmt.Sprintf("%s?action=TEMPLATE&text=%s&dates=%s/%s&details=%s",
		googleCalendarURL, EncodeURIComponent(title), day, day, EncodeURIComponent(details)), true
}

const upperHex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes every UTF-8 byte except A-Z a-z 0-9 and - _ . ! ~ * ' ( )
// Invalid UTF-8 is encoded byte by byte rather than rejected.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
