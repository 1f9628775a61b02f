package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Eursukkul/paddle-center/booking-service/config"
	"github.com/Eursukkul/paddle-center/booking-service/internal/consumer"
	"github.com/Eursukkul/paddle-center/booking-service/internal/handler"
	"github.com/Eursukkul/paddle-center/booking-service/internal/middleware"
	"github.com/Eursukkul/paddle-center/booking-service/internal/notifier"
	"github.com/Eursukkul/paddle-center/booking-service/internal/repository"
	"github.com/Eursukkul/paddle-center/booking-service/internal/scheduler"
	"github.com/Eursukkul/paddle-center/booking-service/internal/service"
	"github.com/Eursukkul/paddle-center/booking-service/pkg/auth"
	"github.com/Eursukkul/paddle-center/booking-service/pkg/database"
	"github.com/Eursukkul/paddle-center/booking-service/pkg/obs"
	"github.com/Eursukkul/paddle-center/booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
)

const serviceName = "booking-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTelEndpoint)
		if err != nil {
			log.Fatalf("failed to init tracer: %v", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Printf("tracer shutdown: %v", err)
			}
		}()
	}

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	resourceRepo := repository.NewResourceRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// RabbitMQ publisher: reservation events for the notification worker
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.Exchange)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Services
	catalogSvc := service.NewCatalogService(resourceRepo)
	availabilitySvc := service.NewAvailabilityService(resourceRepo, slotRepo)
	userSvc := service.NewUserService(userRepo)
	bookingSvc := service.NewBookingService(
		repository.NewTransactor(db), resourceRepo, slotRepo, reservationRepo, userRepo, publisher,
	)

	// Consumers
	userSync := startConsumer(ctx, rabbitmq.ConsumerConfig{
		URL:      cfg.RabbitURL,
		Exchange: cfg.Exchange,
		Queue:    cfg.UserSyncQueue,
		Bindings: []string{"user.*"},
		Prefetch: 10,
	}, consumer.NewUserConsumer(userRepo).Start)
	defer userSync.Close()

	sender, err := notifier.New(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("failed to init notifier: %v", err)
	}
	notify := startConsumer(ctx, rabbitmq.ConsumerConfig{
		URL:      cfg.RabbitURL,
		Exchange: cfg.Exchange,
		Queue:    cfg.NotifyQueue,
		Bindings: []string{"reservation.*"},
		Prefetch: 10,
	}, consumer.NewNotificationWorker(userRepo, sender).Start)
	defer notify.Close()

	go scheduler.NewSweeper(availabilitySvc, cfg.SweepInterval, cfg.SlotRetention).Start(ctx)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})

	api := e.Group("", middleware.JWTAuth(auth.NewTokenParser(cfg.JWTSecret), userSvc))
	handler.NewResourceHandler(catalogSvc, availabilitySvc).RegisterRoutes(api)
	handler.NewReservationHandler(bookingSvc).RegisterRoutes(api)
	handler.NewUserHandler(userSvc, bookingSvc).RegisterRoutes(api)

	go func() {
		log.Printf("Booking Service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func startConsumer(ctx context.Context, cfg rabbitmq.ConsumerConfig, start func(context.Context, <-chan amqp.Delivery)) *rabbitmq.Consumer {
	c, err := rabbitmq.NewConsumer(cfg)
	if err != nil {
		log.Fatalf("failed to connect consumer %s: %v", cfg.Queue, err)
	}
	msgs, err := c.Consume(ctx)
	if err != nil {
		log.Fatalf("failed to consume %s: %v", cfg.Queue, err)
	}
	start(ctx, msgs)
	return c
}
