package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/soil2spoon/go-backend/internal/cfg"
	v1Http "github.com/soil2spoon/go-backend/internal/delivery/v1/http"
	"github.com/soil2spoon/go-backend/internal/infrastructure/geocode"
	"github.com/soil2spoon/go-backend/internal/infrastructure/kafka"
	"github.com/soil2spoon/go-backend/internal/infrastructure/mail"
	"github.com/soil2spoon/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/soil2spoon/go-backend/internal/repository/pgdb/converter"
	"github.com/soil2spoon/go-backend/internal/repository/redis"
	redisConv "github.com/soil2spoon/go-backend/internal/repository/redis/converter"
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/clients"
	"github.com/soil2spoon/go-backend/pkg/closer"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
	"github.com/soil2spoon/go-backend/pkg/postgres"
	"github.com/soil2spoon/go-backend/pkg/token"
)

// App собирает все зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
	closer  *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductCardConverter{}, cfg.Redis, log)

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverter{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverter{})
	reviewRepo := pgdb.NewReviewRepo(db.Pool, pgdbConv.ReviewConverter{})
	cartRepo := pgdb.NewCartRepo(db.Pool)
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.OrderConverter{})
	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.UserConverter{})
	addressRepo := pgdb.NewAddressRepo(db.Pool, pgdbConv.AddressConverter{})
	txm := pgdb.NewTxManager(db.Pool)

	tokens, err := token.NewManager(cfg.Jwt.Secret, cfg.Jwt.TTL)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	verifier := geocode.NewValidator(cfg.Geocode, log)
	mailer := mail.NewMailer(cfg.Mail, log)

	// Событийный поток включается только при наличии брокеров
	var (
		outboxRepo usecase.OutboxRepository
		worker     *kafka.OutboxWorker
	)
	if cfg.Kafka != nil {
		producer, err := kafka.NewProducer(log, cfg.Kafka)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := producer.EnsureTopic(10 * time.Second); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cl.Add(func(ctx context.Context) error {
			return producer.Close()
		})

		repo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{})
		outboxRepo = repo
		worker = kafka.NewOutboxWorker(repo, log, producer, db.Dsn)
	} else {
		log.Infof("KAFKA_BROKERS not set, order events are disabled")
	}

	authUC := usecase.NewAuthUC(userRepo, tokens, mailer, cfg.Mail.PublicBaseURL, log)
	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, cacheRepo, txm, log)
	reviewUC := usecase.NewReviewUC(reviewRepo, productRepo, userRepo, txm, cacheRepo, log)
	cartUC := usecase.NewCartUC(cartRepo, productRepo, txm, log)
	orderUC := usecase.NewOrderUC(orderRepo, cartRepo, outboxRepo, verifier, txm, log)
	addressUC := usecase.NewAddressUC(addressRepo, verifier, txm, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(v1Http.UseCases{
		Catalog: catalogUC,
		Review:  reviewUC,
		Cart:    cartUC,
		Order:   orderUC,
		Address: addressUC,
		Auth:    authUC,
	}, v1Http.NewAuthMiddleware(tokens, authUC, log))

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: v1Http.NewServer(r, cfg.Http),
		worker:  worker,
		closer:  cl,
	}, nil
}

// Run запускает сервис и блокируется до сигнала остановки либо
// фатальной ошибки HTTP-сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if a.worker != nil {
		a.worker.Start(workerCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if a.worker != nil {
		workerCancel()
		a.worker.Stop()
		a.logger.Infof("Outbox worker stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "resource shutdown error")
	}

	a.logger.Infof("Application shutdown complete")

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
