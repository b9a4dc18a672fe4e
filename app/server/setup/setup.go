package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialmedia/app/server/auth"
	"socialmedia/app/server/cache"
	"socialmedia/app/server/config"
	"socialmedia/app/server/db"
	"socialmedia/app/server/email"
	"socialmedia/app/server/handlers"
	"socialmedia/app/server/host"
	"socialmedia/app/server/imagegen"
	"socialmedia/app/server/logging"
	"socialmedia/app/server/routes"
	"socialmedia/app/server/storage"
	"socialmedia/app/server/tasks"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	Config  *config.Config
	Handler *handlers.Handler
	Router  *mux.Router

	closers []io.Closer
}

func MustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func MustInitLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.Init(logging.Options{
		Production: cfg.IsProd(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func InitStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	if cfg.DatabaseUrl == config.MemoryDatabaseUrl {
		zap.L().Warn("using in-memory store; data will not survive a restart")
		return db.NewMemoryStore(), nil
	}

	store, err := db.Connect(ctx, cfg.DatabaseUrl, cfg.IsProd())
	if err != nil {
		return nil, err
	}

	if err := store.MigrationsUp(cfg.MigrationsDir); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}

func InitCache(ctx context.Context, cfg *config.Config) cache.FeedCache {
	if cfg.RedisAddr == "" {
		zap.L().Debug("REDIS_ADDR not set; feed cache disabled")
		return cache.Noop{}
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zap.L().Warn("feed cache disabled", zap.Error(err))
		return cache.Noop{}
	}

	zap.L().Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedisFeedCache(client, cfg.FeedCacheTTL)
}

// Build wires every backend named by cfg into a ready-to-serve router.
func Build(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	app := &App{Config: cfg}

	issuer, err := auth.NewIssuer(cfg.SecretKey, cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	if cfg.PublicUrlDerived {
		publicHost, err := host.PublicHost(ctx, cfg.Host)
		if err != nil {
			zap.L().Warn("could not resolve public host, using listen address", zap.Error(err))
		} else {
			cfg.PublicUrl = "http://" + net.JoinHostPort(publicHost, cfg.Port)
		}
	}

	store, err := InitStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %v", err)
	}
	app.closers = append(app.closers, store)

	mailer, err := email.New(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	bucket, err := storage.New(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("error initializing storage: %v", err)
	}
	app.closers = append(app.closers, bucket)

	generator, err := imagegen.New(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	feedCache := InitCache(ctx, cfg)
	app.closers = append(app.closers, feedCache)

	queue := tasks.NewQueue(cfg.TaskWorkers, cfg.TaskQueueSize)

	app.Handler = &handlers.Handler{
		Store:  store,
		Issuer: issuer,
		Queue:  queue,
		Runner: &tasks.Runner{
			Store:     store,
			Mailer:    mailer,
			Generator: generator,
			Cache:     feedCache,
		},
		Bucket:           bucket,
		Cache:            feedCache,
		PublicUrl:        cfg.PublicUrl,
		DefaultPrompt:    cfg.ImagePrompt,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		UploadImagesOnly: cfg.UploadImagesOnly,
	}

	opts := routes.Options{Version: version}
	if cfg.StorageProvider == config.StorageProviderLocal {
		opts.LocalUploadDir = cfg.LocalUploadDir
	}
	app.Router = routes.New(app.Handler, opts)

	zap.L().Info("server configured",
		zap.String("env", cfg.EnvState),
		zap.String("mail", cfg.MailProvider),
		zap.String("storage", cfg.StorageProvider),
		zap.String("images", cfg.ImageProvider),
	)

	return app, nil
}

func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			zap.L().Warn("error closing resource", zap.Error(err))
		}
	}
}

// StartServer serves until SIGINT/SIGTERM, then stops accepting requests,
// lets queued tasks finish and releases backends.
func StartServer(app *App) error {
	if app.Config.IsDev() {
		zap.L().Info("In development mode.")
	}

	srv := &http.Server{
		Addr:              app.Config.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("Started server", zap.String("addr", srv.Addr), zap.String("publicUrl", app.Config.PublicUrl))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server on %s: %v", srv.Addr, err)
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Warn("error shutting down http server", zap.Error(err))
	}

	queue := app.Handler.Queue
	for {
		l := queue.NumActive()
		if l == 0 || ctx.Err() != nil {
			break
		}
		zap.L().Info(fmt.Sprintf("Waiting for %d active tasks to finish...", l))
		time.Sleep(1 * time.Second)
	}

	if err := queue.Shutdown(ctx); err != nil {
		zap.L().Warn("tasks did not finish before shutdown", zap.Error(err))
	}

	app.Close()
	return nil
}
