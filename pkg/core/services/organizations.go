package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/cache"
	"github.com/wildlifewatch/conservation-hub/pkg/core/donationwindow"
	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/core/ranking"
)

var ErrOrganizationNotFound = errors.New("organization not found")

// ListOptions controls the ranked organization list
type ListOptions struct {
	Locale model.Locale
	Sort   ranking.SortMode
	Query  string
	Status model.Status
}

// OrganizationSummary is a ranked organization with its display fields resolved
type OrganizationSummary struct {
	model.RankedOrganization
	StatusLabel     string                    `json:"statusLabel"`
	GapPercentage   string                    `json:"gapPercentage,omitempty"`
	DonationDisplay string                    `json:"donationDisplay,omitempty"`
	Window          donationwindow.WindowInfo `json:"window"`
}

// OrganizationDetail adds the page-only fields to a summary
type OrganizationDetail struct {
	OrganizationSummary
	StatusDescription string            `json:"statusDescription"`
	ReminderLink      string            `json:"reminderLink,omitempty"`
	Highlights        []model.Highlight `json:"highlights"`
}

// ListOrganizations ranks the visible organizations, then applies the filter and sort mode
func ListOrganizations(ctx context.Context, data DatasetSource, localizer Localizer, logger *zap.Logger, opts ListOptions, now time.Time) ([]OrganizationSummary, error) {
	dataset, err := data.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizations: %w", err)
	}

	ranked := ranking.RankOrganizationsAt(now, dataset.Organizations, dataset.Fundraising, dataset.Donations)
	ranked = ranking.Filter(ranked, ranking.FilterOptions{
		Query:  opts.Query,
		Status: opts.Status,
		Locale: opts.Locale,
	})
	if opts.Sort == "" {
		opts.Sort = ranking.DefaultSortMode
	}
	ranked = ranking.Sort(ranked, opts.Sort)

	logger.Debug("Ranked organizations",
		zap.Int("total", len(dataset.Organizations)),
		zap.Int("listed", len(ranked)),
		zap.String("sort", string(opts.Sort)))

	summaries := make([]OrganizationSummary, len(ranked))
	for i := range ranked {
		summaries[i] = summarize(ranked[i], localizer, opts.Locale, now)
	}
	return summaries, nil
}

// GetOrganization returns one visible organization with its window, reminder link and highlights.
// Hidden and unknown ids both report ErrOrganizationNotFound.
func GetOrganization(ctx context.Context, data DatasetSource, localizer Localizer, logger *zap.Logger, id string, locale model.Locale, now time.Time) (*OrganizationDetail, error) {
	dataset, err := data.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizations: %w", err)
	}

	ranked := ranking.RankOrganizationsAt(now, dataset.Organizations, dataset.Fundraising, dataset.Donations)
	for i := range ranked {
		if ranked[i].ID != id {
			continue
		}

		detail := &OrganizationDetail{
			OrganizationSummary: summarize(ranked[i], localizer, locale, now),
			StatusDescription:   localizer.StatusDescription(locale, ranked[i].Status),
			Highlights:          cache.ByOrganization(dataset, id),
		}
		if !detail.Window.IsOpen && detail.Window.HasFutureWindow {
			if link, ok := donationwindow.ReminderLinkAt(now, &ranked[i].Organization, locale, translator(localizer, locale)); ok {
				detail.ReminderLink = link
			}
		}
		return detail, nil
	}

	logger.Debug("Organization not listed", zap.String("id", id))
	return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, id)
}

// ListHighlights returns every highlight, or only featured ones, newest first
func ListHighlights(ctx context.Context, data DatasetSource, featuredOnly bool) ([]model.Highlight, error) {
	dataset, err := data.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load highlights: %w", err)
	}
	if featuredOnly {
		return cache.Featured(dataset), nil
	}
	return cache.All(dataset), nil
}

func summarize(org model.RankedOrganization, localizer Localizer, locale model.Locale, now time.Time) OrganizationSummary {
	summary := OrganizationSummary{
		RankedOrganization: org,
		StatusLabel:        localizer.StatusLabel(locale, org.Status),
		Window:             donationwindow.Info(&org.Organization, now),
	}
	if org.FundingGapRatio != nil {
		summary.GapPercentage = ranking.FormatPercentage(*org.FundingGapRatio)
	}
	if amount := org.DonationAmount(); amount > 0 {
		summary.DonationDisplay = ranking.FormatCurrency(amount, ranking.DefaultCurrency, locale)
	}
	return summary
}
