// Package scheduler refreshes the sheet data cache on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
)

// Refresher reloads the cached dataset
type Refresher interface {
	Refresh(ctx context.Context) (*sheetsdata.Dataset, error)
}

// Parser accepts the optional seconds field so configs can use either form
var Parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate reports whether expr is an acceptable refresh schedule
func Validate(expr string) error {
	if _, err := Parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", expr, err)
	}
	return nil
}

// Scheduler runs the refresh task
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	logger    *zap.Logger
	ctx       context.Context
}

func New(ctx context.Context, refresher Refresher, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithParser(Parser)),
		refresher: refresher,
		logger:    logger,
		ctx:       ctx,
	}
}

// Register adds the refresh task under the given schedule
func (s *Scheduler) Register(expr string) error {
	if _, err := s.cron.AddFunc(expr, s.RunNow); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	s.logger.Info("Registered cache refresh", zap.String("schedule", expr))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop waits for a running refresh to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// RunNow performs one refresh immediately
func (s *Scheduler) RunNow() {
	if s.ctx.Err() != nil {
		return
	}
	s.logger.Debug("Refreshing sheet data")

	dataset, err := s.refresher.Refresh(s.ctx)
	if err != nil {
		s.logger.Error("Scheduled refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("Sheet data refreshed",
		zap.Int("organizations", len(dataset.Organizations)),
		zap.Int("fundraising", len(dataset.Fundraising)),
		zap.Int("highlights", len(dataset.Highlights)))
}
