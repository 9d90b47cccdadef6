// Package sheetsdata loads organizations, fundraising campaigns, donation
// totals and highlights from the spreadsheet tabs.
package sheetsdata

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wildlifewatch/conservation-hub/pkg/clients/sheetsclient"
	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/sheettable"
)

// Tabs names the sheet tabs to read
type Tabs struct {
	Organizations string
	Fundraising   string
	Highlights    string
}

// DefaultTabs are the tab names the site's spreadsheet uses
var DefaultTabs = Tabs{
	Organizations: "organizations",
	Fundraising:   "fundraisingData",
	Highlights:    "highlights",
}

// Dataset is one consistent read of every tab
type Dataset struct {
	Organizations []model.Organization
	Fundraising   []model.FundraisingInfo
	Donations     []model.DonationInfo
	Highlights    []model.Highlight
	LoadedAt      time.Time
}

// FindOrganization returns the organization with the given id, visible or not
func (d *Dataset) FindOrganization(id string) (*model.Organization, bool) {
	for i := range d.Organizations {
		if d.Organizations[i].ID == id {
			return &d.Organizations[i], true
		}
	}
	return nil, false
}

// Loader reads the spreadsheet through a Source
type Loader struct {
	source   sheetsclient.Source
	sheetID  string
	tabs     Tabs
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewLoader creates a loader. Timestamps without a zone are read in loc.
func NewLoader(source sheetsclient.Source, sheetID string, tabs Tabs, loc *time.Location, logger *zap.Logger) *Loader {
	if tabs.Organizations == "" {
		tabs.Organizations = DefaultTabs.Organizations
	}
	if tabs.Fundraising == "" {
		tabs.Fundraising = DefaultTabs.Fundraising
	}
	if tabs.Highlights == "" {
		tabs.Highlights = DefaultTabs.Highlights
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Loader{
		source:   source,
		sheetID:  sheetID,
		tabs:     tabs,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

func (l *Loader) readTable(ctx context.Context, tab string) (*sheettable.Table, error) {
	values, err := l.source.Values(ctx, l.sheetID, tab)
	if err != nil {
		return nil, err
	}
	return sheettable.New(values), nil
}

// Load reads all tabs concurrently. A failing highlights tab is logged and
// yields no highlights; the other tabs are required.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	dataset := &Dataset{LoadedAt: l.now()}
	if l.sheetID == "" {
		l.logger.Warn("Sheet ID not set, using empty data")
		return dataset, nil
	}

	currentYear := l.now().In(l.location).Year()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		table, err := l.readTable(gctx, l.tabs.Organizations)
		if err != nil {
			return fmt.Errorf("failed to load organizations: %w", err)
		}
		rows, err := sheettable.Decode[organizationRow](table)
		if err != nil {
			return fmt.Errorf("failed to decode organizations: %w", err)
		}
		if missing := sheettable.MissingColumns[organizationRow](table); len(missing) > 0 {
			l.logger.Debug("Organizations tab is missing columns", zap.Strings("columns", missing))
		}

		for _, row := range rows {
			dataset.Organizations = append(dataset.Organizations, toOrganization(row, l.location))
			if donation, ok := toDonation(row, currentYear); ok {
				dataset.Donations = append(dataset.Donations, donation)
			}
		}
		return nil
	})

	g.Go(func() error {
		table, err := l.readTable(gctx, l.tabs.Fundraising)
		if err != nil {
			return fmt.Errorf("failed to load fundraising data: %w", err)
		}
		rows, err := sheettable.Decode[fundraisingRow](table)
		if err != nil {
			return fmt.Errorf("failed to decode fundraising data: %w", err)
		}
		for _, row := range rows {
			dataset.Fundraising = append(dataset.Fundraising, toFundraising(row, currentYear))
		}
		return nil
	})

	g.Go(func() error {
		table, err := l.readTable(gctx, l.tabs.Highlights)
		if err == nil {
			var rows []highlightRow
			rows, err = sheettable.Decode[highlightRow](table)
			for _, row := range rows {
				dataset.Highlights = append(dataset.Highlights, toHighlight(row, l.location))
			}
		}
		if err != nil {
			l.logger.Warn("Failed to load highlights", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("Loaded sheet data",
		zap.Int("organizations", len(dataset.Organizations)),
		zap.Int("fundraising", len(dataset.Fundraising)),
		zap.Int("donations", len(dataset.Donations)),
		zap.Int("highlights", len(dataset.Highlights)))

	return dataset, nil
}

// ColumnReport describes the organizations tab for troubleshooting sheet edits
type ColumnReport struct {
	TotalRows        int                 `json:"totalRows"`
	AllColumnNames   []string            `json:"allColumnNames"`
	MissingColumns   []string            `json:"missingColumns"`
	FirstRowComplete map[string]string   `json:"firstRowComplete"`
	DonationFields   []map[string]string `json:"donationFields"`
}

// donationFieldHints select the columns shown in DonationFields
var donationFieldHints = []string{"donation", "amount", "year", "report"}

// Columns reads the organizations tab and reports its columns and the
// donation-related cells of every row
func (l *Loader) Columns(ctx context.Context) (*ColumnReport, error) {
	table, err := l.readTable(ctx, l.tabs.Organizations)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizations: %w", err)
	}

	records := table.Records()
	report := &ColumnReport{
		TotalRows:        len(records),
		AllColumnNames:   table.Headers,
		MissingColumns:   sheettable.MissingColumns[organizationRow](table),
		FirstRowComplete: map[string]string{},
		DonationFields:   make([]map[string]string, 0, len(records)),
	}
	if len(records) > 0 {
		report.FirstRowComplete = records[0]
	}

	for i, record := range records {
		fields := map[string]string{
			"index": fmt.Sprint(i),
			"id":    record["id"],
			"name":  record["name_zh"],
		}
		for key, value := range record {
			lower := strings.ToLower(key)
			for _, hint := range donationFieldHints {
				if strings.Contains(lower, hint) {
					fields[key] = value
					break
				}
			}
		}
		report.DonationFields = append(report.DonationFields, fields)
	}
	sort.Strings(report.MissingColumns)
	return report, nil
}
