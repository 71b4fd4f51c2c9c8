package main

import (
	"context"
	"court-booking-service/config"
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/handler"
	"court-booking-service/internal/module/booking/models/event"
	"court-booking-service/internal/module/booking/models/request"
	"court-booking-service/internal/module/booking/repositories"
	"court-booking-service/internal/module/booking/usecases"
	"court-booking-service/internal/pkg/database"
	"court-booking-service/internal/pkg/http"
	"court-booking-service/internal/pkg/httpclient"
	"court-booking-service/internal/pkg/lock"
	log_internal "court-booking-service/internal/pkg/log"
	"court-booking-service/internal/pkg/messagestream"
	"court-booking-service/internal/pkg/middleware"
	"court-booking-service/internal/pkg/payment"
	"court-booking-service/internal/pkg/ratelimit"
	"court-booking-service/internal/pkg/redis"
	"court-booking-service/internal/pkg/scheduler"
	router "court-booking-service/internal/route"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type service struct {
	app            *fiber.App
	messageRouters []*message.Router
	scheduler      *scheduler.Scheduler
	closers        []func() error
	log            *zap.Logger
}

func main() {
	cfg := config.InitConfig()

	svc := initService(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	for _, r := range svc.messageRouters {
		r := r
		g.Go(func() error {
			return r.Run(gctx)
		})
	}

	// start http server
	g.Go(func() error {
		return http.StartHttpServer(svc.app, cfg.HttpServer.Port)
	})

	g.Go(func() error {
		<-gctx.Done()
		svc.scheduler.Shutdown()
		err := svc.app.Shutdown()
		for _, c := range svc.closers {
			if cerr := c(); cerr != nil {
				svc.log.Error("error close resource", zap.Error(cerr))
			}
		}
		return err
	})

	if err := g.Wait(); err != nil {
		svc.log.Error("service stopped", zap.Error(err))
	}
}

func initService(cfg *config.Config) *service {
	// init logger
	logZap := log_internal.SetupLogger()
	log_internal.Init(logZap)
	logger := log_internal.GetLogger()
	otelLogger := otelzap.New(logZap)

	ctx := context.Background()

	// init database
	db := database.GetConnection(&cfg.Database)
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			logZap.Fatal("error run migrations", zap.Error(err))
		}
	}
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	var locker lock.Locker
	if cfg.Booking.DistributedLock {
		locker = lock.NewRedisLocker(redisClient, cfg.Booking.LockExpiry, logger)
	} else {
		locker = lock.NewLocalLocker()
	}

	holidays, err := domain.NewStaticHolidays(cfg.Booking.HolidayDates())
	if err != nil {
		logZap.Fatal("error load holidays", zap.Error(err))
	}

	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream, logZap)

	// Init Subscriber
	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Error(ctx, "Failed to create subscriber", err)
	}

	// Init Publisher
	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Error(ctx, "Failed to create publisher", err)
	}

	// init scheduler
	sched := &scheduler.Scheduler{Log: logger}
	taskClient := sched.InitClient(&cfg.Redis)

	clock := domain.RealClock{}
	bookingRepo := repositories.New(db, logger, httpClient, redisClient, &cfg.CatalogService, locker, taskClient)
	bookingUsecase := usecases.New(bookingRepo, logger, publisher, payment.NewSimulated(clock), clock, holidays, &cfg.Booking)

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRedisLimiter(redisClient, ratelimit.Config{
			Prefix: cfg.RateLimit.Prefix,
			Limit:  cfg.RateLimit.Limit,
			Window: cfg.RateLimit.Window,
		})
	}

	mw := middleware.Middleware{
		Log:       otelLogger,
		JWTSecret: cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
		Limiter:   limiter,
	}

	bookingHandler := handler.BookingHandler{
		Log:         otelLogger,
		Validator:   validator.New(),
		Usecase:     bookingUsecase,
		Publish:     publisher,
		PoisonQueue: cfg.MessageStream.PoisonQueue,
	}

	var messageRouters []*message.Router

	if !cfg.MessageStream.DisableConsume && subscriber != nil && publisher != nil {
		consumers := []struct {
			name    string
			topic   string
			handler message.NoPublishHandlerFunc
		}{
			{name: "catalog_court_updated_handler", topic: event.TopicCatalogCourtUpdated, handler: bookingHandler.ConsumeCourtUpdated},
			{name: "catalog_facility_updated_handler", topic: event.TopicCatalogFacilityUpdated, handler: bookingHandler.ConsumeFacilityUpdated},
		}
		for _, c := range consumers {
			r, err := messagestream.NewRouter(publisher, cfg.MessageStream.PoisonQueue, c.name, c.topic, subscriber,
				cfg.MessageStream.MaxRetries, amqp.Logger(), c.handler)
			if err != nil {
				logger.Error(ctx, "Failed to create "+c.name+" router", err)
				continue
			}
			messageRouters = append(messageRouters, r)
		}
	}

	err = sched.StartHandler(&cfg.Redis,
		[]string{scheduler.TypeSettleRefund, scheduler.TypeSweepElapsed},
		[]func(ctx context.Context, t *asynq.Task) error{bookingHandler.SettleRefund, bookingHandler.SweepElapsed},
	)
	if err != nil {
		logZap.Fatal("error start task handlers", zap.Error(err))
	}

	if cfg.Booking.SweepEnabled {
		payload, _ := json.Marshal(request.SweepElapsed{BatchSize: cfg.Booking.SweepBatchSize})
		if err := sched.StartPeriodic(&cfg.Redis, cfg.Booking.SweepCron, scheduler.TypeSweepElapsed, payload); err != nil {
			logZap.Fatal("error start elapsed booking sweep", zap.Error(err))
		}
	}

	serverHttp := http.SetupHttpEngine(&cfg.HttpServer)

	r := router.Initialize(serverHttp, &bookingHandler, &mw, sched.Monitoring(&cfg.Redis))

	closers := []func() error{taskClient.Close, redisClient.Close, db.Close}
	if publisher != nil {
		closers = append(closers, publisher.Close)
	}
	if subscriber != nil {
		closers = append(closers, subscriber.Close)
	}

	return &service{
		app:            r,
		messageRouters: messageRouters,
		scheduler:      sched,
		closers:        closers,
		log:            logZap,
	}
}
