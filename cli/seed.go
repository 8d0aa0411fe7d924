package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"localgame-server/catalog"
	"localgame-server/config"
	"localgame-server/dao/redis"
	"localgame-server/di"
	"localgame-server/models/venue"
	"localgame-server/util"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the fixture catalog into Redis or SQLite",
		Long: "Replace the stored catalog with the venues fixture. With the redis source the cached live activity " +
			"is replaced by the activity fixture, shifted so the latest check-in happens now.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, time.Now())
		},
	}
	return cmd
}

func runSeed(cmd *cobra.Command, now time.Time) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Source != config.SOURCE_REDIS && cfg.Source != config.SOURCE_SQLITE {
		return fmt.Errorf("seed needs the redis or sqlite source, got %q", cfg.Source)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	venues, err := util.ReadVenuesFromJSON(cfg.ResourcePath(config.VENUES_CATALOG_RESOURCE))
	if err != nil {
		return err
	}
	// Refuse to store a catalog that serve would then fail to load.
	if _, err := catalog.New(venues); err != nil {
		return fmt.Errorf("invalid venues fixture: %w", err)
	}

	ctx := cmd.Context()
	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	switch {
	case container.RedisVenueDao != nil:
		if err := container.RedisVenueDao.ReplaceCatalog(venues); err != nil {
			return err
		}
		activity, err := util.ReadLiveActivityFromJSON(cfg.ResourcePath(config.LIVE_ACTIVITY_RESOURCE))
		if err != nil {
			return err
		}
		if err := replaceLiveActivity(container.RedisVenueDao, venue.Rebase(activity, now)); err != nil {
			return err
		}
	case container.SQLiteVenueDao != nil:
		if err := container.SQLiteVenueDao.ReplaceCatalog(venues); err != nil {
			return err
		}
	}

	if err := container.CatalogRefresherService.RefreshCatalog(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d venues into %s\n", container.CatalogStore.Snapshot().Len(), cfg.Source)
	return nil
}

// replaceLiveActivity drops every cached check-in and stores activity in its place.
func replaceLiveActivity(dao *redis.RedisVenueDAO, activity []venue.LiveActivity) error {
	ids, err := dao.ListLiveActivityVenueIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := dao.DeleteLiveActivity(id); err != nil {
			return err
		}
	}
	for _, a := range activity {
		if err := dao.SetLiveActivity(a); err != nil {
			return err
		}
	}
	return nil
}
