package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aperture-dining/web-service/config"
	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/consumer"
	"github.com/aperture-dining/web-service/internal/events"
	"github.com/aperture-dining/web-service/internal/handler"
	"github.com/aperture-dining/web-service/internal/middleware"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/querycache"
	"github.com/aperture-dining/web-service/internal/repository"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/aperture-dining/web-service/internal/telemetry"
	"github.com/aperture-dining/web-service/pkg/cache"
	"github.com/aperture-dining/web-service/pkg/database"
	"github.com/aperture-dining/web-service/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	instanceID := cfg.ServiceName + "-" + uuid.NewString()[:8]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(cfg.ServiceName)

	// Client state: Redis by default, Postgres when STATE_BACKEND=postgres
	var state repository.StateRepository
	switch cfg.StateBackend {
	case config.StateBackendPostgres:
		db := database.NewPostgresDB(cfg.DSN())
		state = repository.NewStateRepository(db, cfg.StateTTL)
		go purgeExpiredState(ctx, db)
	default:
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		state = repository.NewRedisStateRepository(rdb, cfg.StateTTL)
	}
	log.Printf("client state stored in %s", cfg.StateBackend)
	sessions := repository.NewSessionRepository(state)

	emitter := events.NewEmitter()

	api := apiclient.New(cfg.BackendBaseURL,
		apiclient.WithTimeout(cfg.BackendTimeout),
		apiclient.WithUnauthorizedHandler(func(ctx context.Context) {
			creds, _ := apiclient.CredentialsFrom(ctx)
			emitter.Emit(ctx, events.Event{Topic: events.TopicSessionExpired, SessionID: creds.SessionID})
		}),
	)

	// Services
	authSvc := service.NewAuthService(api, sessions, state)
	menuSvc := service.NewMenuService(api)
	cartSvc := service.NewCartService(state)
	availabilitySvc := service.NewAvailabilityService(api, state, time.Now)
	reservationSvc := service.NewReservationService(api, availabilitySvc)
	orderSvc := service.NewOrderService(api, cartSvc)
	profileSvc := service.NewProfileService(api, authSvc)
	adminSvc := service.NewAdminService(api)

	emitter.Subscribe(events.TopicSessionExpired, func(ctx context.Context, evt events.Event) error {
		if evt.SessionID == "" {
			return nil
		}
		return authSvc.HandleSessionExpired(ctx, evt.SessionID)
	})

	// Status workflows; order and payment share cached order records
	records := querycache.New()
	reservationFlow := service.NewStatusWorkflow(service.WorkflowConfig[models.Reservation]{
		Policy:    service.ReservationPolicy(),
		CacheKind: "reservation",
		Topic:     events.TopicReservationStatusChanged,
		Fetch:     api.GetReservation,
		Update:    api.UpdateReservationStatus,
		StatusOf:  func(r *models.Reservation) string { return string(r.Status) },
	}, records, emitter)
	orderFlow := service.NewStatusWorkflow(service.WorkflowConfig[models.Order]{
		Policy:    service.OrderPolicy(),
		CacheKind: "order",
		Topic:     events.TopicOrderStatusChanged,
		Fetch:     api.GetOrder,
		Update:    api.UpdateOrderStatus,
		StatusOf:  func(o *models.Order) string { return string(o.Status) },
	}, records, emitter)
	paymentFlow := service.NewStatusWorkflow(service.WorkflowConfig[models.Order]{
		Policy:    service.PaymentPolicy(),
		CacheKind: "order",
		Topic:     events.TopicPaymentStatusChanged,
		Fetch:     api.GetOrder,
		Update:    api.UpdatePaymentStatus,
		StatusOf:  func(o *models.Order) string { return string(o.PaymentStatus) },
	}, records, emitter)

	// RabbitMQ is optional: forward local events and evict records changed by other instances
	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, instanceID)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		emitter.Subscribe("*", events.Forward(publisher))

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, instanceID)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}

		statusConsumer := consumer.NewStatusConsumer(instanceID)
		statusConsumer.Register(events.TopicReservationStatusChanged, reservationFlow)
		statusConsumer.Register(events.TopicOrderStatusChanged, orderFlow)
		statusConsumer.Register(events.TopicPaymentStatusChanged, paymentFlow)
		statusConsumer.Start(msgs)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": cfg.ServiceName})
	})

	requireUser := middleware.RequireUser(authSvc)
	apiGroup := e.Group("/api", middleware.Session(middleware.SessionConfig{
		Sessions: sessions,
		Secure:   cfg.SessionCookieSecure,
		MaxAge:   cfg.StateTTL,
	}))

	handler.NewAuthHandler(authSvc).RegisterRoutes(apiGroup.Group("/auth"))
	handler.NewMenuHandler(menuSvc).RegisterRoutes(apiGroup.Group("/menu"))
	handler.NewCartHandler(cartSvc, menuSvc, cfg.TaxRate).RegisterRoutes(apiGroup.Group("/cart"))
	handler.NewOrderHandler(orderSvc).RegisterRoutes(apiGroup, requireUser)
	handler.NewReservationHandler(reservationSvc, availabilitySvc, authSvc).RegisterRoutes(apiGroup.Group("/reservations"), requireUser)
	handler.NewProfileHandler(profileSvc).RegisterRoutes(apiGroup.Group("/profile", requireUser))

	admin := apiGroup.Group("/admin", middleware.RequireAdmin(authSvc))
	handler.NewAdminHandler(adminSvc).RegisterRoutes(admin)

	adminReservations := admin.Group("/reservations")
	reservationStatus := handler.NewStatusHandler(reservationFlow)
	adminReservations.GET("/:id", reservationStatus.Detail)
	reservationStatus.RegisterRoutes(adminReservations, "status")

	adminOrders := admin.Group("/orders")
	orderStatus := handler.NewStatusHandler(orderFlow)
	adminOrders.GET("/:id", orderStatus.Detail)
	orderStatus.RegisterRoutes(adminOrders, "status")
	handler.NewStatusHandler(paymentFlow).RegisterRoutes(adminOrders, "payment-status")

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           otelhttp.NewHandler(e, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s starting on :%s", cfg.ServiceName, cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}

// purgeExpiredState removes expired client-state rows hourly. Redis expires keys itself.
func purgeExpiredState(ctx context.Context, db *gorm.DB) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repository.PurgeExpired(ctx, db)
			if err != nil {
				log.Printf("[State] purge expired: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[State] purged %d expired entries", n)
			}
		}
	}
}
