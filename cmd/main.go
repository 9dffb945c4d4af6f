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
	"github.com/redis/go-redis/v9"

	blockClientHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/block_client"
	changeAppointmentStatusHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/change_appointment_status"
	createAppointmentHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/create_appointment"
	createProfessionalHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/create_professional"
	createServiceHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/create_service"
	deactivateProfessionalHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/deactivate_professional"
	deactivateServiceHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/deactivate_service"
	getAppointmentHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/get_availability"
	getAvailableDaysHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/get_available_days"
	getAvailableSlotsHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/get_available_slots"
	getCatalogHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/get_catalog"
	getClientHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/get_client"
	listAppointmentsHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/list_appointments"
	listBlockedClientsHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/list_blocked_clients"
	replaceAvailabilityHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/replace_availability"
	unblockClientHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/unblock_client"
	updateProfessionalHandler "github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers/update_professional"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/middleware"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/config"
	appointmentRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/appointment"
	availabilityRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/availability"
	catalogRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/catalog"
	clientRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/client"
	tenantRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/tenant"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/integrations/notifier"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/jobs"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/scheduling"
	appointmentsService "github.com/contatodubela-dotcom/cleverya-booking/internal/service/appointments"
	availabilityService "github.com/contatodubela-dotcom/cleverya-booking/internal/service/availability"
	catalogService "github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog"
	clientsService "github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	createAppointmentUC "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/create_appointment"
	getAvailableDaysUC "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/get_available_days"
	getAvailableSlotsUC "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/get_available_slots"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/dbmetrics"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/metrics"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/tracing"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/txmanager"
)

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

	log.Info("Starting booking service...")

	// Инициализируем метрики (если включены); nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трейсинг
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.Endpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}
	settings := scheduling.Settings{
		GranularityMinutes: cfg.Scheduling.SlotGranularityMinutes,
		WindowDays:         cfg.Scheduling.CandidateWindowDays,
		Location:           location,
	}.WithDefaults()

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка собирает метрики запросов; при выключенных метриках работает как прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	tenantResolver := tenancy.NewResolver(tenantRepo.NewRepository(wrappedDB))

	// Публикация событий о записях
	var writer notifier.MessageWriter
	if cfg.Kafka.Enabled {
		writer = notifier.NewKafkaWriter(cfg.Kafka.BrokerList(), cfg.Kafka.Topic)
		log.Info("Kafka notifier enabled (brokers=%s, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	events := notifier.NewClient(writer, cfg.Kafka.Topic, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		clientRepository,
		catalogRepository,
		availabilityRepository,
		appointmentRepository,
		txMgr,
		events,
		metricsCollector,
		settings,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		availabilityRepository,
		appointmentRepository,
		settings,
		log,
	)
	getAvailableDaysUseCase := getAvailableDaysUC.NewUseCase(
		catalogRepository,
		availabilityRepository,
		settings,
		log,
	)

	// Сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogRepository,
		txMgr,
		events,
		metricsCollector,
		cfg.Scheduling.NoShowBlockThreshold,
		log,
	)
	availabilitySvc := availabilityService.NewService(availabilityRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)
	clientSvc := clientsService.NewService(clientRepository, appointmentRepository, cfg.Scheduling.NoShowBlockThreshold, log)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDays := getAvailableDaysHandler.NewHandler(getAvailableDaysUseCase, log)
	getCatalog := getCatalogHandler.NewHandler(catalogSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	changeAppointmentStatus := changeAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	replaceAvailability := replaceAvailabilityHandler.NewHandler(availabilitySvc, log)
	createProfessional := createProfessionalHandler.NewHandler(catalogSvc, log)
	updateProfessional := updateProfessionalHandler.NewHandler(catalogSvc, log)
	deactivateProfessional := deactivateProfessionalHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	deactivateService := deactivateServiceHandler.NewHandler(catalogSvc, log)
	getClient := getClientHandler.NewHandler(clientSvc, log)
	blockClient := blockClientHandler.NewHandler(clientSvc, log)
	unblockClient := unblockClientHandler.NewHandler(clientSvc, log)
	listBlockedClients := listBlockedClientsHandler.NewHandler(clientSvc, log)

	// Ограничение частоты публичного бронирования
	var createAppointmentRoute http.Handler = http.HandlerFunc(createAppointment.Handle)
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		limiter := middleware.NewRateLimiter(
			rdb,
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.FailOpen,
			metricsCollector,
			log,
		)
		proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate limit trusted proxies: %v", err)
		}
		createAppointmentRoute = limiter.WithTrustedProxies(proxies).Middleware("create_appointment")(createAppointmentRoute)
		log.Info("Rate limit enabled for appointment creation (%d per %ds)", cfg.RateLimit.Limit, cfg.RateLimit.WindowSeconds)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница записи клиента)
	// ============================================================

	api.HandleFunc("/businesses/{businessId:[0-9]+}/catalog", getCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId:[0-9]+}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId:[0-9]+}/professionals/{professionalId:[0-9]+}/available-days",
		getAvailableDays.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId:[0-9]+}/professionals/{professionalId:[0-9]+}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.Handle("/businesses/{businessId:[0-9]+}/appointments", createAppointmentRoute).Methods(http.MethodPost)

	// ============================================================
	// OWNER ROUTES (JWT владельца, бизнес определяется по пользователю)
	// ============================================================

	owner := api.PathPrefix("").Subrouter()
	owner.Use(middleware.Auth(cfg.Auth.JWTSecret))
	owner.Use(middleware.Tenant(tenantResolver, log))

	// --- Записи ---
	owner.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", changeAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	owner.HandleFunc("/availability", getAvailability.HandleOwner).Methods(http.MethodGet)
	owner.HandleFunc("/availability", replaceAvailability.Handle).Methods(http.MethodPut)

	// --- Каталог ---
	owner.HandleFunc("/catalog", getCatalog.HandleOwner).Methods(http.MethodGet)
	owner.HandleFunc("/professionals", createProfessional.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/professionals/{professionalId:[0-9]+}", updateProfessional.Handle).Methods(http.MethodPatch)
	owner.HandleFunc("/professionals/{professionalId:[0-9]+}", deactivateProfessional.Handle).Methods(http.MethodDelete)
	owner.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/services/{serviceId:[0-9]+}", deactivateService.Handle).Methods(http.MethodDelete)

	// --- Клиенты ---
	owner.HandleFunc("/clients/blocked", listBlockedClients.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/clients/{clientId:[0-9]+}", getClient.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/clients/{clientId:[0-9]+}/block", blockClient.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/clients/{clientId:[0-9]+}/block", unblockClient.Handle).Methods(http.MethodDelete)

	// Фоновая отмена неоплаченных записей
	var sweeper *jobs.PendingPaymentSweeper
	if cfg.Sweep.Enabled {
		sweeper, err = jobs.NewPendingPaymentSweeper(
			appointmentSvc,
			cfg.Sweep.Schedule,
			time.Duration(cfg.Sweep.PendingPaymentTTLMinutes)*time.Minute,
			log,
		)
		if err != nil {
			log.Fatal("Failed to configure sweep: %v", err)
		}
		sweeper.Start()
	}

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

	if sweeper != nil {
		sweeper.Stop()
	}

	// Дожидаемся отправки событий, ушедших в фон
	if err := events.Close(); err != nil {
		log.Error("Failed to close notifier: %v", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
