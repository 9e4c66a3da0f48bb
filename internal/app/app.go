package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"gorm.io/gorm"

	"campusai/internal/auth"
	"campusai/internal/cache"
	"campusai/internal/config"
	"campusai/internal/db"
	"campusai/internal/handler"
	"campusai/internal/repository"
	"campusai/internal/router"
	"campusai/internal/service"
)

// App is a fully wired server.
type App struct {
	Echo *echo.Echo
	DB   *gorm.DB

	cfg   *config.Config
	log   *charmlog.Logger
	cache *cache.Client
}

type options struct {
	model      llms.Model
	bcryptCost int
}

// Option customizes New.
type Option func(*options)

// WithModel replaces the OpenAI client with model.
func WithModel(model llms.Model) Option {
	return func(o *options) { o.model = model }
}

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// New validates cfg and wires every component. It fails before touching the
// database when required configuration is missing.
func New(cfg *config.Config, log *charmlog.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{bcryptCost: auth.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}

	gormDB, err := db.NewSQLite(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		closeDB(gormDB)
		return nil, err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Warn("redis unreachable, user lookups will hit the database", "addr", cfg.RedisAddr, "err", err)
		}
	}

	model := o.model
	if model == nil {
		model, err = newOpenAI(cfg)
		if err != nil {
			closeDB(gormDB)
			return nil, fmt.Errorf("completion client: %w", err)
		}
	}

	hasher, err := auth.NewBcryptHasher(o.bcryptCost)
	if err != nil {
		closeDB(gormDB)
		return nil, err
	}

	userRepo := repository.NewCachedUserRepository(repository.NewUserRepository(gormDB), cacheClient)

	authService := service.NewAuthService(userRepo, hasher, service.NewRollNoValidator())
	askService := service.NewAskService(model, cfg.OpenAIModel)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		log,
		gormDB,
		handler.NewPageHandler(),
		handler.NewAuthHandler(authService),
		handler.NewAskHandler(askService),
	)

	return &App{Echo: e, DB: gormDB, cfg: cfg, log: log, cache: cacheClient}, nil
}

func newOpenAI(cfg *config.Config) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.OpenAIModel),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return openai.New(opts...)
}

// Start serves until the server is shut down.
func (a *App) Start() error {
	a.log.Info("listening", "addr", ":"+a.cfg.ServerPort, "swagger", SwaggerURL(a.cfg.SwaggerHost, a.cfg.ServerPort))
	if err := a.Echo.Start(":" + a.cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server start: %w", err)
	}
	return nil
}

// Shutdown stops the server and releases the database and cache.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	_ = a.cache.Close()
	closeDB(a.DB)
	return err
}

func closeDB(gormDB *gorm.DB) {
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// SwaggerURL returns the URL of the swagger UI. host may already carry a scheme.
func SwaggerURL(host, port string) string {
	switch {
	case host == "":
		return "http://localhost:" + port + "/swagger/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return strings.TrimSuffix(host, "/") + "/swagger/index.html"
	default:
		return "http://" + host + "/swagger/index.html"
	}
}
