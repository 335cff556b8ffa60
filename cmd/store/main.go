package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/laptop_store/internal/config"
	"github.com/Skotchmaster/laptop_store/internal/db"
	"github.com/Skotchmaster/laptop_store/internal/events"
	"github.com/Skotchmaster/laptop_store/internal/hash"
	"github.com/Skotchmaster/laptop_store/internal/httpserver"
	"github.com/Skotchmaster/laptop_store/internal/logging"
	authmw "github.com/Skotchmaster/laptop_store/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/laptop_store/internal/middleware/logging"
	"github.com/Skotchmaster/laptop_store/internal/repo"
	"github.com/Skotchmaster/laptop_store/internal/search"
	"github.com/Skotchmaster/laptop_store/internal/service"
	"github.com/Skotchmaster/laptop_store/internal/storage/images"
)

type store interface {
	service.UserStore
	service.LaptopStore
	service.OrderStore
	Ping(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (store, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if cfg.StoreDriver == config.DriverMongo {
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		r := &repo.MongoRepo{DB: client.Database(cfg.MongoDatabase)}
		if err := r.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Error("mongo disconnect error", "error", err)
			}
		}
		return r, closeFn, nil
	}

	gdb, err := db.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(gdb); err != nil {
			slog.Error("db close error", "error", err)
		}
	}
	return &repo.GormRepo{DB: gdb}, closeFn, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store open: %w", err)
	}
	defer closeStore()
	logger.Info("store ready", "driver", cfg.StoreDriver)

	var publisher service.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		if err := events.EnsureTopics(ctx, cfg.KafkaBrokers[0], events.Topics...); err != nil {
			logger.Warn("kafka topics not ensured", "error", err)
		}
		prod, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := prod.Close(); err != nil {
				logger.Error("kafka close error", "error", err)
			}
		}()
		publisher = prod
	}

	var indexer service.Indexer
	if cfg.ES.URL != "" {
		es, err := search.NewClient(cfg.ES)
		if err != nil {
			return fmt.Errorf("elasticsearch: %w", err)
		}
		idx := search.NewIndex(es, cfg.ES.Index)
		if err := idx.CreateIndexIfNotExist(ctx); err != nil {
			return fmt.Errorf("elasticsearch index: %w", err)
		}
		indexer = idx
	}

	var imageStore service.ImageStore
	if cfg.Minio.Endpoint != "" {
		s, err := images.New(ctx, cfg.Minio)
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}
		imageStore = s
	}

	authSvc := &service.AuthService{Users: st, Hasher: &hash.Hasher{}, Events: publisher}
	created, err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		logger.Info("admin user created", "username", cfg.AdminUsername)
	}

	catalog := &service.CatalogService{
		Laptops: st,
		Index:   indexer,
		Images:  imageStore,
		Events:  publisher,
	}
	if indexer != nil {
		n, err := catalog.Reindex(ctx)
		if err != nil {
			// search would trust an incomplete index
			logger.Warn("search index disabled", "error", err)
			catalog.Index = nil
		} else {
			logger.Info("search index synced", "count", n)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.HTTPErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalog},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Orders: st, Events: publisher}},
		Guard:          authmw.NewBasicMiddleware(authSvc),
		Ready:          st.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("laptop store listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
