package sheetsdata

import (
	"strings"
	"time"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/security"
	"github.com/wildlifewatch/conservation-hub/pkg/sheettable"
)

// Timestamp layouts accepted in lastUpdateAt and curatedAt cells
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006/1/2",
}

// parseTimestamp returns the zero time for blank or unrecognized input
func parseTimestamp(value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// safeURL drops anything that is not an absolute http(s) URL
func safeURL(raw string) string {
	if security.IsValidExternalURL(raw) {
		return raw
	}
	return ""
}

func toOrganization(row organizationRow, loc *time.Location) model.Organization {
	urgency := row.UrgencyLevel
	if urgency == 0 {
		urgency = 1
	}

	status := model.Status(strings.ToLower(row.Status))
	if !status.IsValid() {
		status = model.StatusGray
	}

	return model.Organization{
		ID:                  row.ID,
		IsShow:              row.IsShow,
		NameZh:              row.NameZh,
		NameEn:              row.NameEn,
		DescriptionZh:       row.DescriptionZh,
		DescriptionEn:       row.DescriptionEn,
		DetailZh:            row.DetailZh,
		DetailEn:            row.DetailEn,
		Category:            model.Category(row.Category),
		RegionZh:            row.RegionZh,
		RegionEn:            row.RegionEn,
		UrgencyLevel:        urgency,
		DonationURL:         safeURL(row.DonationURL),
		LastUpdateAt:        parseTimestamp(row.LastUpdateAt, loc),
		Status:              status,
		ImageURL:            safeURL(row.ImageURL),
		DonationStartDate:   row.DonationStartDate,
		DonationEndDate:     row.DonationEndDate,
		InvoiceDonationCode: row.InvoiceDonationCode,
		WebsiteURL:          safeURL(row.OrganizationURL),
		SNSURL:              safeURL(row.SNSURL),
		ShopURL:             safeURL(row.ShopURL),
		Comment:             row.Comment,
	}
}

// toDonation derives the general donation record carried on an organizations row.
// Rows without both recentYear and donationAmount have none.
func toDonation(row organizationRow, currentYear int) (model.DonationInfo, bool) {
	if row.RecentYear == "" || row.DonationAmount == "" {
		return model.DonationInfo{}, false
	}

	year := currentYear
	if y, ok := sheettable.ParseNumber(row.RecentYear); ok && y != 0 {
		year = int(y)
	}
	amount, _ := sheettable.ParseNumber(row.DonationAmount)

	return model.DonationInfo{
		OrganizationID: row.ID,
		Year:           year,
		Amount:         amount,
		ReportURL:      safeURL(row.RecentYearDonationReportURL),
	}, true
}

func toFundraising(row fundraisingRow, currentYear int) model.FundraisingInfo {
	year := row.Year
	if year == 0 {
		year = currentYear
	}
	return model.FundraisingInfo{
		OrganizationID:  row.OrganizationID,
		Year:            year,
		TargetAmount:    row.TargetAmount,
		RaisedAmount:    row.RaisedAmount,
		ActivityNameZh:  row.ActivityNameZh,
		ActivityNameEn:  row.ActivityNameEn,
		FundActivityURL: safeURL(row.FundActivityURL),
	}
}

func toHighlight(row highlightRow, loc *time.Location) model.Highlight {
	return model.Highlight{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		TitleZh:        row.TitleZh,
		TitleEn:        row.TitleEn,
		SummaryZh:      row.SummaryZh,
		SummaryEn:      row.SummaryEn,
		SourceURL:      safeURL(row.SourceURL),
		ImageURL:       safeURL(row.ImageURL),
		CuratedAt:      parseTimestamp(row.CuratedAt, loc),
		Category:       model.HighlightCategory(strings.ToLower(row.Category)),
		IsFeatured:     row.IsFeatured,
	}
}
