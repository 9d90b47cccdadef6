// Package donationwindow resolves an organization's recurring MM-DD donation
// window against a clock reading and builds calendar reminders for it.
package donationwindow

import (
	"regexp"
	"strconv"
	"time"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

var monthDayPattern = regexp.MustCompile(`^(\d{2})-(\d{2})$`)

// Encoded bounds used when one side of the window is missing
const (
	openStart = 0
	openEnd   = 1231
)

// MonthDay is a year-less calendar position. Month is zero-based (0 is January).
// Day is only range-checked, so "02-31" is accepted.
type MonthDay struct {
	Month int
	Day   int
}

// ParseMonthDay parses "MM-DD". Anything else reports false and is treated as no bound.
func ParseMonthDay(raw string) (MonthDay, bool) {
	match := monthDayPattern.FindStringSubmatch(raw)
	if match == nil {
		return MonthDay{}, false
	}

	month, _ := strconv.Atoi(match[1])
	day, _ := strconv.Atoi(match[2])
	month--

	if month < 0 || month > 11 || day < 1 || day > 31 {
		return MonthDay{}, false
	}
	return MonthDay{Month: month, Day: day}, true
}

func (md MonthDay) encode() int {
	return md.Month*100 + md.Day
}

// In returns the occurrence in the given year at midnight in loc.
// Out-of-range days normalize forward the way time.Date does.
func (md MonthDay) In(year int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(md.Month+1), md.Day, 0, 0, 0, 0, loc)
}

// NextOccurrence returns this year's occurrence, or next year's if it is already before now
func (md MonthDay) NextOccurrence(now time.Time) time.Time {
	candidate := md.In(now.Year(), now.Location())
	if candidate.Before(now) {
		candidate = md.In(now.Year()+1, now.Location())
	}
	return candidate
}

// IsOpen reports whether now falls inside the organization's donation window.
// Organizations without a usable bound are always open. A start later in the year
// than the end wraps over New Year.
func IsOpen(org *model.Organization, now time.Time) bool {
	if org.DonationStartDate == "" && org.DonationEndDate == "" {
		return true
	}

	start, hasStart := ParseMonthDay(org.DonationStartDate)
	end, hasEnd := ParseMonthDay(org.DonationEndDate)
	if !hasStart && !hasEnd {
		return true
	}

	current := MonthDay{Month: int(now.Month()) - 1, Day: now.Day()}.encode()
	startCompare, endCompare := openStart, openEnd
	if hasStart {
		startCompare = start.encode()
	}
	if hasEnd {
		endCompare = end.encode()
	}

	if startCompare > endCompare {
		return current >= startCompare || current <= endCompare
	}
	return current >= startCompare && current <= endCompare
}

// WindowInfo is the donation window resolved to concrete dates
type WindowInfo struct {
	IsOpen          bool       `json:"isOpen"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	HasFutureWindow bool       `json:"hasFutureWindow"`
}

// Info resolves the window bounds relative to now. The start rolls to next year
// once passed; the end rolls forward whenever it would land before the start.
func Info(org *model.Organization, now time.Time) WindowInfo {
	info := WindowInfo{IsOpen: IsOpen(org, now)}

	if start, ok := ParseMonthDay(org.DonationStartDate); ok {
		startDate := start.NextOccurrence(now)
		info.StartDate = &startDate
	}

	if end, ok := ParseMonthDay(org.DonationEndDate); ok {
		endDate := end.In(now.Year(), now.Location())
		if info.StartDate != nil && endDate.Before(*info.StartDate) {
			endDate = end.In(now.Year()+1, now.Location())
		}
		info.EndDate = &endDate
	}

	info.HasFutureWindow = info.StartDate != nil && info.StartDate.After(now)
	return info
}
