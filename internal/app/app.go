package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/images"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/infrastructure/sanity"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/storefront/internal/repository/minio"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout      = 10 * time.Second
	forcedCloseTimeout   = 3 * time.Second
	dependencyInitTimeout = 10 * time.Second
	kafkaTopicTimeout    = 10 * time.Second
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	limiter *v1Http.RateLimiter
}

// NewApp собирает зависимости витрины. Ресурсы регистрируются в closer в порядке создания
// и закрываются в обратном.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(forcedCloseTimeout),
	}

	store, err := a.initContentStore()
	if err != nil {
		a.closeOnInitError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cache, err := a.initCache()
	if err != nil {
		a.closeOnInitError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cart, err := a.initCart()
	if err != nil {
		a.closeOnInitError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	storefrontUC := usecase.NewStorefrontUC(store, cache, cart, a.initImages(), logger)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, logger)
	a.grpcSrv.RegisterServices(storefrontUC)

	a.limiter = v1Http.NewRateLimiter(cfg.Http.AddToCartRPS, cfg.Http.AddToCartBurst)
	r := chi.NewRouter()
	if err := v1Http.NewRouter(r, a.limiter, logger).Init(storefrontUC); err != nil {
		a.closeOnInitError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	return a, nil
}

// Run запускает серверы и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.limiter.RunCleanup(ctx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.grpcSrv.SetServing(true)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.grpcSrv.SetServing(false)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			a.logger.Errorf(err, "gRPC server shutdown error")
		} else {
			a.logger.Warnf("gRPC server shutdown timeout")
		}
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "resources shutdown error")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) initContentStore() (usecase.ContentStore, error) {
	switch a.cfg.Content.Backend {
	case config.BackendPostgres:
		db, err := initPGDB(a.logger, a.cfg)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.Add("postgres", db.Close)

		a.logger.Infof("Content backend: postgres %s:%s/%s", a.cfg.Db.Host, a.cfg.Db.Port, a.cfg.Db.DBName)
		return pgdb.NewProductRepo(db.Pool), nil
	case config.BackendSanity:
		a.logger.Infof("Content backend: sanity %s", sanity.QueryEndpoint(a.cfg.Sanity))
		return sanity.NewClient(a.cfg.Sanity, a.logger), nil
	default:
		return nil, e.Wrap(a.cfg.Content.Backend, e.ErrUnknownBackend)
	}
}

func (a *App) initCache() (usecase.ProductCache, error) {
	redisClient := clients.NewRedisClient(a.cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), dependencyInitTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx); err != nil {
		_ = redisClient.Close(ctx)
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("redis", redisClient.Close)

	return redis.NewCacheRepo(redisClient, a.cfg.Redis, a.logger), nil
}

// initCart выбирает Kafka-продюсер, если брокеры заданы, иначе корзину в памяти.
func (a *App) initCart() (usecase.CartStore, error) {
	if a.cfg.Kafka == nil {
		a.logger.Warnf("KAFKA_BROKERS is not set, cart commands are kept in memory")
		return memory.NewCartRepo(), nil
	}

	producer := kafka.NewCartProducer(a.logger, a.cfg.Kafka)
	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		_ = producer.Close(context.Background())
		a.logger.Errorf(err, "failed to ensure kafka topic %s", a.cfg.Kafka.Topic)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("kafka producer", producer.Close)

	return producer, nil
}

// initImages поднимает плейсхолдер в MinIO. Недоступность MinIO не фатальна:
// карточки без изображения получат встроенный плейсхолдер.
func (a *App) initImages() *images.Resolver {
	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Warnf("MinIO client init failed, using static placeholder: %v", err)
		return images.NewResolver(nil, a.logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dependencyInitTimeout)
	defer cancel()

	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Warnf("MinIO bucket %s is unavailable, using static placeholder: %v", a.cfg.Minio.BucketName, err)
		return images.NewResolver(nil, a.logger)
	}

	placeholder, err := v1Http.PlaceholderSVG()
	if err != nil {
		a.logger.Warnf("Embedded placeholder is missing: %v", err)
		return images.NewResolver(nil, a.logger)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)
	if err := imageRepo.EnsurePlaceholder(ctx, placeholder, "image/svg+xml"); err != nil {
		a.logger.Warnf("Failed to upload placeholder to MinIO, using static placeholder: %v", err)
		return images.NewResolver(nil, a.logger)
	}

	return images.NewResolver(imageRepo, a.logger)
}

func (a *App) closeOnInitError() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("cleanup after failed init: %v", err)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		_ = db.Close(context.Background())
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		_ = db.Close(context.Background())
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
