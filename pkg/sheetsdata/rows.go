package sheetsdata

// organizationRow is one row of the organizations tab
type organizationRow struct {
	ID                          string `sheet:"id"`
	IsShow                      bool   `sheet:"is_show"`
	NameZh                      string `sheet:"name_zh"`
	NameEn                      string `sheet:"name_en"`
	DescriptionZh               string `sheet:"description_zh"`
	DescriptionEn               string `sheet:"description_en"`
	DetailZh                    string `sheet:"detail_zh"`
	DetailEn                    string `sheet:"detail_en"`
	Category                    string `sheet:"category"`
	RegionZh                    string `sheet:"region_zh"`
	RegionEn                    string `sheet:"region_en"`
	UrgencyLevel                int    `sheet:"urgencyLevel"`
	OrganizationURL             string `sheet:"organizationURL"`
	SNSURL                      string `sheet:"snsURL"`
	DonationURL                 string `sheet:"donationURL"`
	ShopURL                     string `sheet:"shopURL"`
	Status                      string `sheet:"status"`
	RecentYear                  string `sheet:"recentYear"`
	RecentYearDonationReportURL string `sheet:"recentYearDonationReportURL"`
	DonationAmount              string `sheet:"donationAmount"`
	ImageURL                    string `sheet:"imageURL"`
	DonationStartDate           string `sheet:"donationStartDate"`
	DonationEndDate             string `sheet:"donationEndDate"`
	InvoiceDonationCode         string `sheet:"invoiceDonationCode"`
	LastUpdateAt                string `sheet:"lastUpdateAt"`
	Comment                     string `sheet:"comment"`
}

// fundraisingRow is one row of the fundraisingData tab
type fundraisingRow struct {
	OrganizationID  string  `sheet:"organizationId"`
	Year            int     `sheet:"year"`
	TargetAmount    float64 `sheet:"targetAmount"`
	RaisedAmount    float64 `sheet:"raisedAmount"`
	ActivityNameZh  string  `sheet:"activityNameZh"`
	ActivityNameEn  string  `sheet:"activityNameEn"`
	FundActivityURL string  `sheet:"fundActivityURL"`
}

// highlightRow is one row of the highlights tab
type highlightRow struct {
	ID             string `sheet:"id"`
	OrganizationID string `sheet:"organizationId"`
	TitleZh        string `sheet:"titleZh"`
	TitleEn        string `sheet:"titleEn"`
	SummaryZh      string `sheet:"summaryZh"`
	SummaryEn      string `sheet:"summaryEn"`
	SourceURL      string `sheet:"sourceURL"`
	ImageURL       string `sheet:"imageURL"`
	CuratedAt      string `sheet:"curatedAt"`
	Category       string `sheet:"category"`
	IsFeatured     bool   `sheet:"isFeatured"`
}
