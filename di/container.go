package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"localgame-server/api"
	"localgame-server/api/venuefeed"
	"localgame-server/catalog"
	"localgame-server/config"
	"localgame-server/dao/redis"
	"localgame-server/dao/sqlite"
	"localgame-server/db"
	"localgame-server/server"
	"localgame-server/server/handlers"
	services "localgame-server/service"
	"localgame-server/util"
)

// Container holds all application dependencies.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	// Set only for the matching catalog source.
	RedisInternalClient *goredis.Client
	RedisClient         db.RedisClient
	RedisVenueDao       *redis.RedisVenueDAO
	SQLiteDB            *sql.DB
	SQLiteVenueDao      *sqlite.SQLiteVenueDAO
	VenueFeedAPI        venuefeed.VenueFeedAPI

	CatalogStore            *catalog.Store
	LiveActivity            services.LiveActivityStore
	ExploreService          *services.ExploreService
	CatalogRefresherService *services.CatalogRefresherService
	FixtureWatcherService   *services.FixtureWatcherService // fixture source only
	CheckInService          *services.CheckInService
	NotificationService     *services.NotificationService
	VenueHandler            *handlers.VenueHandler
	NotificationHandler     *handlers.NotificationHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	LocalGameHttpServer     *server.LocalGameHttpServer
}

// NewContainer initializes and wires up all dependencies, then loads the first catalog snapshot.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger.Info("initializing container", zap.String("env", cfg.Env), zap.String("source", cfg.Source))
	c := &Container{Config: cfg, Logger: logger}

	source, err := c.initSource(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	// Redis persists check-ins and the feed reports its own; the rest count them in process.
	if c.LiveActivity == nil {
		c.LiveActivity = services.NewMemoryLiveActivityStore()
	}

	notifications, err := util.ReadNotificationsFromJSON(cfg.ResourcePath(config.NOTIFICATIONS_RESOURCE))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.Close()
		return nil, err
	}

	c.CatalogStore = catalog.NewStore(nil)
	c.CatalogRefresherService = services.NewCatalogRefresherService(source, c.LiveActivity, c.CatalogStore,
		cfg.Refresh.StaleAfter, cfg.Refresh.BusyThreshold, logger)
	c.ExploreService = services.NewExploreService(c.CatalogStore)
	if cfg.Source == config.SOURCE_FIXTURE {
		c.FixtureWatcherService = services.NewFixtureWatcherService(cfg.ResourcePath(config.VENUES_CATALOG_RESOURCE),
			c.CatalogRefresherService, services.DefaultFixtureDebounce, logger)
	}
	c.CheckInService = services.NewCheckInService(c.CatalogStore, c.LiveActivity, c.CatalogRefresherService,
		cfg.Refresh.StaleAfter, logger)
	c.NotificationService = services.NewNotificationService(notifications)

	c.VenueHandler = handlers.NewVenueHandler(c.ExploreService, c.CheckInService, logger)
	c.NotificationHandler = handlers.NewNotificationHandler(c.NotificationService, logger)
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.VenueHandler, c.NotificationHandler, c.MuxRouter)
	c.LocalGameHttpServer = server.NewLocalGameHttpServer(c.Router, c.MuxRouter,
		cfg.HTTPAddress, config.HTTP_SHUTDOWN_TIMEOUT, logger)

	if err := c.CatalogRefresherService.RefreshCatalog(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("initial catalog load: %w", err)
	}
	return c, nil
}

func (c *Container) initSource(ctx context.Context) (services.VenueSource, error) {
	cfg := c.Config
	switch cfg.Source {
	case config.SOURCE_FIXTURE:
		return services.FixtureSource(cfg.ResourcePath(config.VENUES_CATALOG_RESOURCE)), nil

	case config.SOURCE_REDIS:
		c.RedisInternalClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.RedisClient = db.NewCatalogRedisClient(ctx, c.RedisInternalClient, c.Logger)
		if err := c.RedisClient.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Address, err)
		}
		c.RedisVenueDao = redis.NewRedisVenueDAO(c.RedisClient)
		c.LiveActivity = c.RedisVenueDao
		return services.ListerSource(c.RedisVenueDao), nil

	case config.SOURCE_SQLITE:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.SQLiteDB = conn
		c.SQLiteVenueDao = sqlite.NewSQLiteVenueDAO(conn)
		return services.ListerSource(c.SQLiteVenueDao), nil

	case config.SOURCE_FEED:
		if cfg.Env != "prod" {
			c.Logger.Info("using mock venue feed api")
			mock := venuefeed.NewVenueFeedApiClientMock(cfg.ResourcesDir)
			mock.SetClock(time.Now)
			c.VenueFeedAPI = mock
		} else {
			c.Logger.Info("using prod venue feed api", zap.String("base_url", cfg.Feed.BaseURL))
			client := venuefeed.NewVenueFeedApiClient(api.NewHTTPClient(cfg.Feed.BaseURL))
			client.SetCredentials(cfg.Feed.APIKey)
			c.VenueFeedAPI = client
		}
		c.LiveActivity = services.NewFeedLiveActivityStore(c.VenueFeedAPI)
		return services.FeedSource(c.VenueFeedAPI), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
}

// Close releases the Redis and SQLite connections.
func (c *Container) Close() error {
	var errs []error
	if c.RedisInternalClient != nil {
		errs = append(errs, c.RedisInternalClient.Close())
	}
	if c.SQLiteDB != nil {
		errs = append(errs, c.SQLiteDB.Close())
	}
	return errors.Join(errs...)
}
