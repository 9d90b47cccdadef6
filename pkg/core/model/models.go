package model

import "time"

type Locale string

const (
	LocaleZhTW Locale = "zh-TW"
	LocaleEn   Locale = "en"
)

// DefaultLocale is used whenever a request carries no usable locale
const DefaultLocale = LocaleZhTW

// SupportedLocales lists locales in preference order
var SupportedLocales = []Locale{LocaleZhTW, LocaleEn}

func (l Locale) IsValid() bool {
	return l == LocaleZhTW || l == LocaleEn
}

// Status is the color-coded funding health tier shown next to an organization
type Status string

const (
	StatusRed    Status = "red"
	StatusOrange Status = "orange"
	StatusYellow Status = "yellow"
	StatusGreen  Status = "green"
	StatusBlue   Status = "blue"
	StatusPurple Status = "purple"
	StatusGray   Status = "gray"
)

// AllStatuses lists every tier from most to least urgent
var AllStatuses = []Status{
	StatusRed, StatusOrange, StatusYellow, StatusGreen, StatusBlue, StatusPurple, StatusGray,
}

func (s Status) IsValid() bool {
	for _, candidate := range AllStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

type Category string

const (
	CategoryWildlifeRescue         Category = "Wildlife Rescue"
	CategoryHabitatConservation    Category = "Habitat Conservation and Education"
	CategoryBirdProtection         Category = "Bird Protection"
	CategoryMarineConservation     Category = "Marine Conservation"
	CategoryEndangeredSpecies      Category = "Endangered Species"
	CategoryWildlifeRehabilitation Category = "Wildlife Rehabilitation"
)

// Organization is a single row of the organizations tab
type Organization struct {
	ID                  string    `json:"id"`
	IsShow              bool      `json:"isShow"`
	NameZh              string    `json:"nameZh"`
	NameEn              string    `json:"nameEn"`
	DescriptionZh       string    `json:"descriptionZh"`
	DescriptionEn       string    `json:"descriptionEn"`
	DetailZh            string    `json:"detailZh,omitempty"`
	DetailEn            string    `json:"detailEn,omitempty"`
	Category            Category  `json:"category"`
	RegionZh            string    `json:"regionZh"`
	RegionEn            string    `json:"regionEn"`
	UrgencyLevel        int       `json:"urgencyLevel"` // 1-5, 5 is most urgent
	DonationURL         string    `json:"donationUrl"`
	LastUpdateAt        time.Time `json:"lastUpdateAt"` // zero when the sheet has no usable timestamp
	Status              Status    `json:"status"`
	ImageURL            string    `json:"imageUrl,omitempty"`
	DonationStartDate   string    `json:"donationStartDate,omitempty"` // MM-DD, recurring annually
	DonationEndDate     string    `json:"donationEndDate,omitempty"`   // MM-DD, recurring annually
	InvoiceDonationCode string    `json:"invoiceDonationCode,omitempty"`
	WebsiteURL          string    `json:"websiteUrl,omitempty"`
	SNSURL              string    `json:"snsUrl,omitempty"`
	ShopURL             string    `json:"shopUrl,omitempty"`
	Comment             string    `json:"comment,omitempty"`
}

// Name returns the organization name for the given locale
func (o *Organization) Name(locale Locale) string {
	if locale == LocaleEn {
		return o.NameEn
	}
	return o.NameZh
}

// Description returns the short description for the given locale
func (o *Organization) Description(locale Locale) string {
	if locale == LocaleEn {
		return o.DescriptionEn
	}
	return o.DescriptionZh
}

// Region returns the region label for the given locale
func (o *Organization) Region(locale Locale) string {
	if locale == LocaleEn {
		return o.RegionEn
	}
	return o.RegionZh
}

// Detail returns the extended description for the given locale, empty if none
func (o *Organization) Detail(locale Locale) string {
	if locale == LocaleEn {
		return o.DetailEn
	}
	return o.DetailZh
}

// FundraisingInfo is a per-year fundraising campaign (fundraisingData tab)
type FundraisingInfo struct {
	OrganizationID  string  `json:"organizationId"`
	Year            int     `json:"year"`
	TargetAmount    float64 `json:"targetAmount"` // NTD
	RaisedAmount    float64 `json:"raisedAmount"` // NTD
	ActivityNameZh  string  `json:"activityNameZh"`
	ActivityNameEn  string  `json:"activityNameEn"`
	FundActivityURL string  `json:"fundActivityUrl,omitempty"`
}

// ActivityName returns the campaign name for the given locale
func (f *FundraisingInfo) ActivityName(locale Locale) string {
	if locale == LocaleEn {
		return f.ActivityNameEn
	}
	return f.ActivityNameZh
}

// DonationInfo is the general donation total reported on the organizations tab
type DonationInfo struct {
	OrganizationID string  `json:"organizationId"`
	Year           int     `json:"year"`
	Amount         float64 `json:"amount"` // NTD
	ReportURL      string  `json:"reportUrl,omitempty"`
}

// RankedOrganization is built fresh on every ranking pass
type RankedOrganization struct {
	Organization
	Fundraising     *FundraisingInfo `json:"fundraising,omitempty"`
	Donation        *DonationInfo    `json:"donation,omitempty"`
	UrgencyScore    float64          `json:"urgencyScore"`
	FundingGapRatio *float64         `json:"fundingGapRatio,omitempty"`
}

// DonationAmount returns the reported donation amount, 0 when absent
func (r *RankedOrganization) DonationAmount() float64 {
	if r.Donation == nil {
		return 0
	}
	return r.Donation.Amount
}
