// Package app assembles the storefront server from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/cart"
	"github.com/Olajosh80/Realms/internal/events"
	"github.com/Olajosh80/Realms/internal/gate"
	"github.com/Olajosh80/Realms/internal/httpserver"
	"github.com/Olajosh80/Realms/internal/identity"
	"github.com/Olajosh80/Realms/internal/kv"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/search"
	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/pkg/config"
	pkgdb "github.com/Olajosh80/Realms/pkg/db"
	"github.com/Olajosh80/Realms/pkg/middleware/csrf"
	loggingmw "github.com/Olajosh80/Realms/pkg/middleware/logging"
)

type App struct {
	Config config.Config
	Log    *slog.Logger
	DB     *gorm.DB
	Echo   *echo.Echo

	closers []func() error
}

// New opens the database and the optional Redis, Kafka and Elasticsearch
// backends, then builds the HTTP surface. Optional backends fall back to
// in-process stand-ins when their address is not configured.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := pkgdb.Open(openCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, func() error { return pkgdb.Close(db) })

	var storage kv.Store = kv.NewMemory()
	if cfg.RedisAddr != "" {
		r, err := kv.NewRedis(openCtx, cfg.RedisAddr, cfg.RedisDB, cfg.CartTTL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		storage = r
		a.closers = append(a.closers, r.Close)
	} else {
		log.Warn("cart storage is in-memory", "reason", "REDIS_ADDR not set")
	}

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		k := events.NewKafka(cfg.KafkaBrokers)
		pub = k
		a.closers = append(a.closers, k.Close)
	}

	products := backend.NewTable[models.Product](db)
	var engine search.Engine = &search.Backend{Products: products}
	if cfg.ESURL != "" {
		es, err := search.NewElastic(openCtx, search.ElasticConfig{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("elasticsearch: %w", err)
		}
		engine = es
	}

	a.Echo = a.build(storage, pub, engine, products)
	return a, nil
}

func (a *App) build(storage kv.Store, pub events.Publisher, engine search.Engine, products *backend.Table[models.Product]) *echo.Echo {
	cfg := a.Config
	db := a.DB

	orders := backend.NewTable[models.Order](db)
	profiles := backend.NewTable[models.UserProfile](db)
	posts := backend.NewTable[models.BlogPost](db)

	ids := identity.NewService(db, cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	users := &service.UserService{Profiles: profiles, Events: pub}
	catalog := &service.CatalogService{Products: products, Search: engine, Events: pub}
	orderSvc := &service.OrderService{Orders: orders, Events: pub}

	edgeSessions := &identity.SessionResolver{Svc: ids, Refresh: true, Secure: cfg.CookieSecure}
	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure
	sessions := &identity.SessionResolver{Svc: ids, Secure: cfg.CookieSecure}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(loggingmw.RequestLogger(a.Log))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:        ids,
			Users:      users,
			Sessions:   edgeSessions,
			AdminRoles: cfg.AdminRoles,
			Secure:     cfg.CookieSecure,
		},
		Catalog:   &httpserver.CatalogHTTP{Svc: catalog},
		Divisions: &httpserver.DivisionHTTP{Svc: &service.DivisionService{Divisions: backend.NewTable[models.Division](db)}},
		Orders: &httpserver.OrderHTTP{
			Svc:        orderSvc,
			Sessions:   edgeSessions,
			Roles:      users,
			AdminRoles: cfg.AdminRoles,
		},
		Blog:  &httpserver.BlogHTTP{Svc: &service.BlogService{Posts: posts}},
		Users: &httpserver.UserHTTP{Svc: users},
		Contact: &httpserver.ContactHTTP{Svc: &service.ContactService{
			Submissions: backend.NewTable[models.ContactSubmission](db),
			Subscribers: backend.NewTable[models.NewsletterSubscriber](db),
			Events:      pub,
		}},
		Cart: &httpserver.CartHTTP{
			Carts:    &cart.Registry{Storage: storage, Log: a.Log},
			Catalog:  catalog,
			Checkout: &service.CheckoutService{Orders: orderSvc},
			Sessions: edgeSessions,
			Secure:   cfg.CookieSecure,
			TTL:      cfg.CartTTL,
		},
		Admin: &httpserver.AdminHTTP{Svc: &service.DashboardService{
			Products: products,
			Orders:   orders,
			Profiles: profiles,
			Posts:    posts,
		}},
		Edge: gate.NewEdge(edgeSessions, users, cfg.ProtectedPrefixes, cfg.AdminRoles),
		View: gate.NewViewGate(sessions, users, cfg.AdminRoles),
		CSRF: csrfCfg,
		Ready: func(c echo.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(c.Request().Context())
		},
	})
	return e
}

// Migrate creates or updates every table the storefront uses.
func (a *App) Migrate(ctx context.Context) error {
	return a.DB.WithContext(ctx).AutoMigrate(models.All()...)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(a.Config.ServerPort),
		Handler:           a.Echo,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.Log.Info("stopped")
	return nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
