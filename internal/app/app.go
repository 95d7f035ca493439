package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/db"
	"trip-planner-go/internal/domain/access"
	invitesdomain "trip-planner-go/internal/domain/invites"
	notesdomain "trip-planner-go/internal/domain/notes"
	packingdomain "trip-planner-go/internal/domain/packing"
	shoppingdomain "trip-planner-go/internal/domain/shopping"
	tripsdomain "trip-planner-go/internal/domain/trips"
	userdomain "trip-planner-go/internal/domain/user"
	"trip-planner-go/internal/metrics"
	"trip-planner-go/internal/repository/inmemory"
	invitesrepo "trip-planner-go/internal/repository/postgres/invites"
	notesrepo "trip-planner-go/internal/repository/postgres/notes"
	packingrepo "trip-planner-go/internal/repository/postgres/packing"
	shoppingrepo "trip-planner-go/internal/repository/postgres/shopping"
	tripsrepo "trip-planner-go/internal/repository/postgres/trips"
	userrepo "trip-planner-go/internal/repository/postgres/user"
	redisrepo "trip-planner-go/internal/repository/redis"
	"trip-planner-go/internal/transport/httpserver"
	"trip-planner-go/internal/transport/httpserver/handler"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
	inviteshandler "trip-planner-go/internal/transport/httpserver/handler/invites"
	noteshandler "trip-planner-go/internal/transport/httpserver/handler/notes"
	packinghandler "trip-planner-go/internal/transport/httpserver/handler/packing"
	shoppinghandler "trip-planner-go/internal/transport/httpserver/handler/shopping"
	tripshandler "trip-planner-go/internal/transport/httpserver/handler/trips"
	"trip-planner-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
	sweeper    *invitesdomain.Sweeper
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: log, db: dbConn}

	if err := db.Migrate(ctx, dbConn, log); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	cache, err := a.accessCache(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var appMetrics *metrics.Metrics
	inviteOpts := []invitesdomain.Option{invitesdomain.WithDefaultTTL(cfg.Invites.DefaultTTL)}
	if cfg.MetricsEnabled {
		appMetrics = metrics.New()
		inviteOpts = append(inviteOpts, invitesdomain.WithObserver(appMetrics))
	}

	tripsRepository := tripsrepo.NewPostgres(dbConn)
	authz := access.NewAuthorizer(tripsRepository, cache, cfg.AccessCache.TTL)

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	trips := tripsdomain.NewService(tripsRepository, authz)
	invites := invitesdomain.NewService(invitesrepo.NewPostgres(dbConn), tripsRepository, users, authz, inviteOpts...)
	notes := notesdomain.NewService(notesrepo.NewPostgres(dbConn), authz)
	packing := packingdomain.NewService(packingrepo.NewPostgres(dbConn), authz)
	shopping := shoppingdomain.NewService(shoppingrepo.NewPostgres(dbConn), authz)

	handlers := &handler.Handlers{
		Common:   commonhandler.New(users, log),
		Trips:    tripshandler.New(trips, log),
		Invites:  inviteshandler.New(invites, log),
		Notes:    noteshandler.New(notes, log),
		Packing:  packinghandler.New(packing, log),
		Shopping: shoppinghandler.New(shopping, log),
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, users, appMetrics, log)
	a.httpServer = httpserver.New(cfg, router)

	a.sweeper = invitesdomain.NewSweeper(invites, cfg.Invites.SweepInterval, log)
	a.sweeper.Start(context.Background())

	return a, nil
}

func (a *App) accessCache(ctx context.Context) (access.Cache, error) {
	switch a.cfg.AccessCache.Backend {
	case config.AccessCacheRedis:
		a.log.Info("app: access cache backed by redis", "addr", a.cfg.Redis.Addr)
		rdb, err := redisrepo.NewClient(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		return redisrepo.NewAccessCache(rdb, a.log), nil
	case config.AccessCacheNone:
		return access.NoopCache{}, nil
	default:
		return inmemory.NewAccessCache(), nil
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Close stops background work before releasing connections.
func (a *App) Close() error {
	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
