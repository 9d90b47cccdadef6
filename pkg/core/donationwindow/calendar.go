package donationwindow

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/security"
)

const (
	productID    = "-//Wildlife Watch//Conservation Hub//EN"
	calendarName = "Conservation donation windows"
	uidDomain    = "conservation-hub.wildlifewatch.org"
)

// emptyCalendar is served when no organization has a usable start date
const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + productID + "\r\nEND:VCALENDAR\r\n"

// ErrNoDonationWindow is returned when an organization has no usable start date
var ErrNoDonationWindow = errors.New("organization has no donation start date")

// ReminderEvent builds a yearly all-day VEVENT on the next start of the donation window
func ReminderEvent(org *model.Organization, locale model.Locale, translate TranslateFunc, now time.Time) (*ical.Event, bool) {
	start, ok := ParseMonthDay(org.DonationStartDate)
	if !ok {
		return nil, false
	}
	day := start.NextOccurrence(now)
	title, details := ReminderText(org, locale, translate)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("donation-start-%s@%s", org.ID, uidDomain))
	event.Props.SetText(ical.PropSummary, title)
	event.Props.SetText(ical.PropDescription, details)

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(eventStamp(org, day))
	event.Props.Set(stamp)

	dtStart := ical.NewProp(ical.PropDateTimeStart)
	dtStart.SetDate(day)
	event.Props.Set(dtStart)

	dtEnd := ical.NewProp(ical.PropDateTimeEnd)
	dtEnd.SetDate(day.AddDate(0, 0, 1))
	event.Props.Set(dtEnd)

	event.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.YEARLY})

	if security.IsValidExternalURL(org.DonationURL) {
		// Set manually to avoid a VALUE=TEXT param
		link := ical.NewProp(ical.PropURL)
		link.Value = org.DonationURL
		event.Props.Set(link)
	}

	return event, true
}

// eventStamp is taken from sheet data, never from the clock
func eventStamp(org *model.Organization, day time.Time) time.Time {
	if !org.LastUpdateAt.IsZero() {
		return org.LastUpdateAt.UTC()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// ReminderCalendar encodes a single organization's reminder as an iCalendar document
func ReminderCalendar(org *model.Organization, locale model.Locale, translate TranslateFunc, now time.Time) ([]byte, error) {
	event, ok := ReminderEvent(org, locale, translate, now)
	if !ok {
		return nil, ErrNoDonationWindow
	}
	return encodeCalendar([]*ical.Event{event})
}

// CalendarFeed encodes reminders for every visible organization that has a start date
func CalendarFeed(orgs []model.Organization, locale model.Locale, translate TranslateFunc, now time.Time) ([]byte, error) {
	var events []*ical.Event
	for i := range orgs {
		if !orgs[i].IsShow {
			continue
		}
		if event, ok := ReminderEvent(&orgs[i], locale, translate, now); ok {
			events = append(events, event)
		}
	}
	return encodeCalendar(events)
}

func encodeCalendar(events []*ical.Event) ([]byte, error) {
	if len(events) == 0 {
		return []byte(emptyCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", calendarName)
	for _, event := range events {
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
