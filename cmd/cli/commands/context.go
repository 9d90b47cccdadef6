package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/internal/config"
	"github.com/wildlifewatch/conservation-hub/pkg/cache"
	"github.com/wildlifewatch/conservation-hub/pkg/core/gamification"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
	"github.com/wildlifewatch/conservation-hub/pkg/i18n"
	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Loader   *sheetsdata.Loader
	Cache    *cache.Snapshots
	Catalog  *i18n.Catalog
	Progress db.ProgressStore
	Store    *gamification.Store
	Tracker  *gamification.Tracker
	Logger   *zap.Logger
	Ctx      context.Context
}

// Now reads the wall clock in the configured timezone
func (a *AppContext) Now() time.Time {
	return time.Now().In(a.Cfg.Location())
}
