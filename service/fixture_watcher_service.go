package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"localgame-server/logging"
)

const DefaultFixtureDebounce = 250 * time.Millisecond

// FixtureWatcherService refreshes the catalog whenever the venues fixture file changes.
type FixtureWatcherService struct {
	path      string
	refresher *CatalogRefresherService
	debounce  time.Duration
	logger    *zap.Logger
}

func NewFixtureWatcherService(path string, refresher *CatalogRefresherService, debounce time.Duration, logger *zap.Logger) *FixtureWatcherService {
	return &FixtureWatcherService{
		path:      filepath.Clean(path),
		refresher: refresher,
		debounce:  debounce,
		logger:    logging.Component(logger, "FixtureWatcherService"),
	}
}

// Run watches the fixture's directory until ctx is done. Editors often replace
// the file rather than write it, so the directory is watched, not the file.
func (s *FixtureWatcherService) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fixture watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	s.logger.Info("watching venues fixture", zap.String("path", s.path))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping fixture watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.logger.Debug("fixture changed", zap.String("op", event.Op.String()))
			pending = time.After(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("fixture watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			if err := s.refresher.RefreshCatalog(ctx); err != nil {
				s.logger.Warn("reloading fixture failed, keeping previous catalog", zap.Error(err))
			}
		}
	}
}
