package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calendarOverridesHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/calendar_overrides"
	cancelBookingHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/cancel_booking"
	cancelWaitlistEntryHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/cancel_waitlist_entry"
	checkInBookingHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/check_in_booking"
	confirmOfferHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/confirm_offer"
	createBookingHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/get_booking"
	getOperatingTemplateHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/get_operating_template"
	getUserBookingsHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/get_user_bookings"
	joinWaitlistHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/join_waitlist"
	listBookingsHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/list_bookings"
	listWaitlistHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/list_waitlist"
	quoteFeeHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/quote_fee"
	rateConfigsHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/rate_configs"
	recordDeliveryHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/record_delivery"
	updateOperatingTemplateHandler "github.com/m04kA/SMC-TeeTimeService/internal/api/handlers/update_operating_template"
	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	"github.com/m04kA/SMC-TeeTimeService/internal/config"
	"github.com/m04kA/SMC-TeeTimeService/internal/infra/cache/ratecache"
	bookingRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/booking"
	rateConfigRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/rateconfig"
	templateRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/template"
	waitlistRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-TeeTimeService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-TeeTimeService/internal/service/bookings"
	ratesService "github.com/m04kA/SMC-TeeTimeService/internal/service/rates"
	templatesService "github.com/m04kA/SMC-TeeTimeService/internal/service/templates"
	waitlistService "github.com/m04kA/SMC-TeeTimeService/internal/service/waitlist"
	confirmOfferUC "github.com/m04kA/SMC-TeeTimeService/internal/usecase/confirm_offer"
	createBookingUC "github.com/m04kA/SMC-TeeTimeService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TeeTimeService/internal/usecase/get_available_slots"
	joinWaitlistUC "github.com/m04kA/SMC-TeeTimeService/internal/usecase/join_waitlist"
	quoteFeeUC "github.com/m04kA/SMC-TeeTimeService/internal/usecase/quote_fee"
	"github.com/m04kA/SMC-TeeTimeService/internal/worker/expiry"
	"github.com/m04kA/SMC-TeeTimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
	"github.com/m04kA/SMC-TeeTimeService/pkg/metrics"
	"github.com/m04kA/SMC-TeeTimeService/pkg/txmanager"
)

const sweepTimeout = 30 * time.Second

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TeeTimeService...")
	log.Info("Configuration loaded from config.toml")

	// "Сегодня" и "старт уже прошел" считаются в часовом поясе поля
	courseLocation, err := cfg.Course.Location()
	if err != nil {
		log.Fatal("Invalid course timezone: %v", err)
	}
	time.Local = courseLocation
	log.Info("Course timezone: %s", courseLocation)

	// Инициализируем метрики (если включены). nil-метрики ничего не пишут.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	waitlistRepository := waitlistRepo.NewRepository(wrappedDB)
	rateConfigRepository := rateConfigRepo.NewRepository(wrappedDB)
	templateRepository := templateRepo.NewRepository(wrappedDB)

	// Кэш активной тарифной сетки (Redis, опционально)
	var rateCache ratesService.ActiveConfigCache
	if cfg.Redis.Enabled {
		rdb, err := ratecache.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, rate cache disabled: %v", err)
		} else {
			defer rdb.Close()
			rateCache = ratecache.NewCache(rdb, cfg.Rates.CacheTTL())
			log.Info("Rate cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Rates.CacheTTL())
		}
	}

	// Канал предложений листа ожидания: RabbitMQ или лог
	var offerNotifier waitlistService.Notifier
	if cfg.RabbitMQ.Enabled {
		publisher, err := notifier.NewPublisher(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.RoutingKey,
			time.Duration(cfg.RabbitMQ.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		offerNotifier = publisher
		log.Info("Promotion offers published to exchange=%s, routing_key=%s",
			cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
	} else {
		offerNotifier = notifier.NewLogNotifier(log)
		log.Warn("RabbitMQ disabled, promotion offers are only logged")
	}

	// Инициализируем сервисы
	templateSvc := templatesService.NewService(templateRepository, log)
	templateSvc.SetDefaultTurnDuration(cfg.Course.DefaultTurnDurationMinutes)

	rateSvc := ratesService.NewService(
		rateConfigRepository,
		rateCache,
		txMgr,
		cfg.Rates.RequiredTiers,
		cfg.Rates.RequiredRatios,
		log,
	)

	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		bookingRepository,
		templateSvc,
		offerNotifier,
		txMgr,
		metricsCollector,
		cfg.Waitlist.HoldDuration(),
		log,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		waitlistSvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		templateSvc,
		txMgr,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		templateSvc,
		log,
	)

	joinWaitlistUseCase := joinWaitlistUC.NewUseCase(waitlistSvc, templateSvc, log)

	confirmOfferUseCase := confirmOfferUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		waitlistSvc,
		templateSvc,
		txMgr,
		metricsCollector,
		log,
	)

	quoteFeeUseCase := quoteFeeUC.NewUseCase(rateSvc, templateSvc, metricsCollector, log)

	// Фоновое истечение удержаний
	sweeper, err := expiry.New(waitlistSvc, cfg.Waitlist.SweepCron, sweepTimeout, log)
	if err != nil {
		log.Fatal("Failed to schedule waitlist sweep: %v", err)
	}
	sweeper.Start()
	log.Info("Waitlist sweep scheduled: %s", cfg.Waitlist.SweepCron)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	checkInBooking := checkInBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(joinWaitlistUseCase, log)
	confirmOffer := confirmOfferHandler.NewHandler(confirmOfferUseCase, log)
	cancelWaitlistEntry := cancelWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	recordDelivery := recordDeliveryHandler.NewHandler(waitlistSvc, log)
	listWaitlist := listWaitlistHandler.NewHandler(waitlistSvc, log)
	quoteFee := quoteFeeHandler.NewHandler(quoteFeeUseCase, log)
	rateConfigs := rateConfigsHandler.NewHandler(rateSvc, log)
	getOperatingTemplate := getOperatingTemplateHandler.NewHandler(templateSvc, log)
	updateOperatingTemplate := updateOperatingTemplateHandler.NewHandler(templateSvc, log)
	calendarOverrides := calendarOverridesHandler.NewHandler(templateSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Стартовый лист даты
	api.HandleFunc("/tee-times/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Заполненность пиковых окон
	api.HandleFunc("/peak-windows/status", getAvailableSlots.HandlePeakWindows).Methods(http.MethodGet)

	// Шаблон работы поля
	api.HandleFunc("/operating-template", getOperatingTemplate.Handle).Methods(http.MethodGet)

	// Расчет стоимости и активная тарифная сетка
	api.HandleFunc("/quotes", quoteFee.Handle).Methods(http.MethodPost)
	api.HandleFunc("/rate-configs/active", rateConfigs.HandleGetActive).Methods(http.MethodGet)

	// Отчет шлюза уведомлений о доставке предложения
	api.HandleFunc("/waitlist/{entryId:[0-9]+}/delivery", recordDelivery.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	protected.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/waitlist/{entryId:[0-9]+}/confirm", confirmOffer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/waitlist/{entryId:[0-9]+}", cancelWaitlistEntry.Handle).Methods(http.MethodDelete)

	// ============================================================
	// STAFF ROUTES (X-User-Role: staff)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	// --- Стартовый лист ---
	staff.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/check-in", checkInBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/waitlist", listWaitlist.Handle).Methods(http.MethodGet)

	// --- Тарифные сетки ---
	staff.HandleFunc("/rate-configs", rateConfigs.HandleList).Methods(http.MethodGet)
	staff.HandleFunc("/rate-configs", rateConfigs.HandleCreate).Methods(http.MethodPost)
	staff.HandleFunc("/rate-configs/{id:[0-9]+}", rateConfigs.HandleGet).Methods(http.MethodGet)
	staff.HandleFunc("/rate-configs/{id:[0-9]+}", rateConfigs.HandleUpdate).Methods(http.MethodPut)
	staff.HandleFunc("/rate-configs/{id:[0-9]+}/{action}", rateConfigs.HandleTransition).Methods(http.MethodPost)

	// --- Шаблон и календарь ---
	staff.HandleFunc("/operating-template", updateOperatingTemplate.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/calendar-overrides", calendarOverrides.HandleList).Methods(http.MethodGet)
	staff.HandleFunc("/calendar-overrides/{date}", calendarOverrides.HandleUpsert).Methods(http.MethodPut)
	staff.HandleFunc("/calendar-overrides/{date}", calendarOverrides.HandleDelete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся текущего прогона sweep
	sweeper.Stop(shutdownCtx)

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
