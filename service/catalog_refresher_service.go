package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"localgame-server/catalog"
	"localgame-server/logging"
	"localgame-server/models/venue"
)

// CatalogRefresherService periodically reloads the venue catalog from its source,
// folds in live check-in activity and publishes a new snapshot.
type CatalogRefresherService struct {
	// mu serializes refreshes so an older load can never publish over a newer one.
	mu            sync.Mutex
	source        VenueSource
	activity      LiveActivityStore
	store         *catalog.Store
	staleAfter    time.Duration
	busyThreshold int
	now           func() time.Time
	logger        *zap.Logger
}

// NewCatalogRefresherService constructs a refresher. activity may be nil.
func NewCatalogRefresherService(
	source VenueSource,
	activity LiveActivityStore,
	store *catalog.Store,
	staleAfter time.Duration,
	busyThreshold int,
	logger *zap.Logger,
) *CatalogRefresherService {
	return &CatalogRefresherService{
		source:        source,
		activity:      activity,
		store:         store,
		staleAfter:    staleAfter,
		busyThreshold: busyThreshold,
		now:           time.Now,
		logger:        logging.Component(logger, "CatalogRefresherService"),
	}
}

// Run refreshes on every tick until ctx is done.
func (r *CatalogRefresherService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping periodic catalog refresh")
			return
		case <-ticker.C:
			r.logger.Debug("running periodic catalog refresh")
			if err := r.RefreshCatalog(ctx); err != nil {
				r.logger.Warn("periodic catalog refresh failed", zap.Error(err))
			}
		}
	}
}

// RefreshCatalog loads, merges and validates a new catalog. On any error the
// previous snapshot stays published.
func (r *CatalogRefresherService) RefreshCatalog(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	venues, err := r.source.LoadVenues(ctx)
	if err != nil {
		return fmt.Errorf("loading venues: %w", err)
	}

	venues = r.mergeLiveActivity(venues)

	next, err := catalog.New(venues)
	if err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}

	r.store.Replace(next)
	r.logger.Info("catalog refreshed", zap.Int("venues", next.Len()))
	return nil
}

func (r *CatalogRefresherService) mergeLiveActivity(venues []venue.Venue) []venue.Venue {
	if r.activity == nil {
		return venues
	}
	now := r.now()
	out := make([]venue.Venue, len(venues))
	for i, v := range venues {
		out[i] = v
		a, err := r.activity.GetLiveActivity(v.ID)
		if err != nil {
			r.logger.Warn("live activity lookup failed, keeping catalog status",
				zap.String("venue_id", v.ID), zap.Error(err))
			continue
		}
		if a == nil {
			continue
		}
		out[i] = venue.ApplyActivity(v, *a, now, r.staleAfter, r.busyThreshold)
	}
	return out
}
