package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"localgame-server/catalog"
	"localgame-server/logging"
	"localgame-server/models/venue"
)

// CheckInService records a player arriving at a venue.
type CheckInService struct {
	store      *catalog.Store
	activity   LiveActivityStore
	refresher  *CatalogRefresherService
	staleAfter time.Duration
	logger     *zap.Logger
}

func NewCheckInService(
	store *catalog.Store,
	activity LiveActivityStore,
	refresher *CatalogRefresherService,
	staleAfter time.Duration,
	logger *zap.Logger,
) *CheckInService {
	return &CheckInService{
		store:      store,
		activity:   activity,
		refresher:  refresher,
		staleAfter: staleAfter,
		logger:     logging.Component(logger, "CheckInService"),
	}
}

// CheckIn adds one player to the venue's live activity and republishes the catalog.
// A venue with no cached activity counts from its catalog players; activity older
// than the stale window starts over from zero.
func (s *CheckInService) CheckIn(ctx context.Context, venueID string, now time.Time) (venue.LiveActivity, error) {
	return s.record(ctx, venueID, now, "checked in", func(current *venue.LiveActivity, base int) venue.LiveActivity {
		return venue.LiveActivity{Players: base + 1, LastCheckIn: now}
	})
}

// CheckOut removes one player, never going below zero. Leaving does not refresh
// the last check-in of fresh activity.
func (s *CheckInService) CheckOut(ctx context.Context, venueID string, now time.Time) (venue.LiveActivity, error) {
	return s.record(ctx, venueID, now, "checked out", func(current *venue.LiveActivity, base int) venue.LiveActivity {
		next := venue.LiveActivity{Players: max(base-1, 0), LastCheckIn: now}
		if s.fresh(current, now) {
			next.LastCheckIn = current.LastCheckIn
		}
		return next
	})
}

func (s *CheckInService) record(
	ctx context.Context,
	venueID string,
	now time.Time,
	action string,
	step func(current *venue.LiveActivity, base int) venue.LiveActivity,
) (venue.LiveActivity, error) {
	listed, ok := s.store.Snapshot().Get(venueID)
	if !ok {
		return venue.LiveActivity{}, fmt.Errorf("%w: %s", ErrVenueNotFound, venueID)
	}

	next, err := s.activity.UpdateLiveActivity(venueID, func(current *venue.LiveActivity) venue.LiveActivity {
		base := 0
		switch {
		case current == nil:
			base = listed.Players
		case s.fresh(current, now):
			base = current.Players
		}
		return step(current, base)
	})
	if err != nil {
		return venue.LiveActivity{}, fmt.Errorf("updating live activity: %w", err)
	}
	s.logger.Info(action, zap.String("venue_id", venueID), zap.Int("players", next.Players))

	if s.refresher != nil {
		if err := s.refresher.RefreshCatalog(ctx); err != nil {
			s.logger.Warn("catalog refresh after "+action+" failed", zap.String("venue_id", venueID), zap.Error(err))
		}
	}
	return next, nil
}

func (s *CheckInService) fresh(a *venue.LiveActivity, now time.Time) bool {
	return a != nil && now.Sub(a.LastCheckIn) <= s.staleAfter
}
