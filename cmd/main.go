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

	addAvailabilitySlotHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/add_availability_slot"
	addUnavailabilitySlotHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/add_unavailability_slot"
	getAvailabilityHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/get_availability"
	getBoardingDatesHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/get_boarding_dates"
	getCalendarMarksHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/get_calendar_marks"
	getUnavailabilityHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/get_unavailability"
	removeAvailabilitySlotHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/remove_availability_slot"
	removeUnavailabilitySlotHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/remove_unavailability_slot"
	saveAvailabilityHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/save_availability"
	saveBoardingDatesHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/save_boarding_dates"
	saveUnavailabilityHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/save_unavailability"
	toggleBoardingDateHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/toggle_boarding_date"
	toggleDateUnavailableHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/toggle_date_unavailable"
	updateAvailabilitySlotHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/update_availability_slot"
	updateUnavailabilitySlotHandler "github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers/update_unavailability_slot"
	"github.com/sernanic/DogSitter-ScheduleService/internal/api/middleware"
	"github.com/sernanic/DogSitter-ScheduleService/internal/config"
	"github.com/sernanic/DogSitter-ScheduleService/internal/infra/cache"
	availabilityRepo "github.com/sernanic/DogSitter-ScheduleService/internal/infra/storage/availability"
	boardingRepo "github.com/sernanic/DogSitter-ScheduleService/internal/infra/storage/boarding"
	unavailabilityRepo "github.com/sernanic/DogSitter-ScheduleService/internal/infra/storage/unavailability"
	accountServiceClient "github.com/sernanic/DogSitter-ScheduleService/internal/integrations/accountservice"
	availabilityService "github.com/sernanic/DogSitter-ScheduleService/internal/service/availability"
	boardingService "github.com/sernanic/DogSitter-ScheduleService/internal/service/boarding"
	unavailabilityService "github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability"
	getCalendarMarksUC "github.com/sernanic/DogSitter-ScheduleService/internal/usecase/get_calendar_marks"
	toggleBoardingDateUC "github.com/sernanic/DogSitter-ScheduleService/internal/usecase/toggle_boarding_date"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/dbmetrics"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/logger"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/metrics"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/simpletxmanager"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/txmanager"
)

// noopCache заглушка кеша, когда Redis выключен в конфигурации
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}
func (noopCache) Set(ctx context.Context, key string, value interface{}) error   { return nil }
func (noopCache) Invalidate(ctx context.Context, keys ...string) error           { return nil }

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

	log.Info("Starting DogSitter-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем кеш расписаний (если включен)
	var scheduleCache availabilityService.ScheduleCache = noopCache{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		scheduleCache = cache.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info("Schedule cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	} else {
		log.Info("Schedule cache disabled, reads go straight to database")
	}

	// Инициализируем клиента AccountService
	accountClient := accountServiceClient.NewClient(
		cfg.AccountService.URL,
		time.Duration(cfg.AccountService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AccountService=%s timeout=%ds)",
		cfg.AccountService.URL, cfg.AccountService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		availabilityRepository   *availabilityRepo.Repository
		unavailabilityRepository *unavailabilityRepo.Repository
		boardingRepository       *boardingRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		unavailabilityRepository = unavailabilityRepo.NewRepository(wrappedDB)
		boardingRepository = boardingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
		unavailabilityRepository = unavailabilityRepo.NewRepository(db)
		boardingRepository = boardingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		accountClient,
		scheduleCache,
		txMgr,
		log,
	)
	unavailabilitySvc := unavailabilityService.NewService(
		unavailabilityRepository,
		accountClient,
		scheduleCache,
		txMgr,
		log,
	)
	boardingSvc := boardingService.NewService(
		boardingRepository,
		unavailabilityRepository,
		accountClient,
		scheduleCache,
		txMgr,
		log,
	)

	// Инициализируем use cases
	toggleBoardingDateUseCase := toggleBoardingDateUC.NewUseCase(
		boardingRepository,
		unavailabilityRepository,
		scheduleCache,
		txMgr,
		log,
	)
	getCalendarMarksUseCase := getCalendarMarksUC.NewUseCase(
		availabilityRepository,
		unavailabilityRepository,
		boardingRepository,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	saveAvailability := saveAvailabilityHandler.NewHandler(availabilitySvc, log)
	addAvailabilitySlot := addAvailabilitySlotHandler.NewHandler(availabilitySvc, log)
	updateAvailabilitySlot := updateAvailabilitySlotHandler.NewHandler(availabilitySvc, log)
	removeAvailabilitySlot := removeAvailabilitySlotHandler.NewHandler(availabilitySvc, log)
	getUnavailability := getUnavailabilityHandler.NewHandler(unavailabilitySvc, log)
	saveUnavailability := saveUnavailabilityHandler.NewHandler(unavailabilitySvc, log)
	toggleDateUnavailable := toggleDateUnavailableHandler.NewHandler(unavailabilitySvc, log)
	addUnavailabilitySlot := addUnavailabilitySlotHandler.NewHandler(unavailabilitySvc, log)
	updateUnavailabilitySlot := updateUnavailabilitySlotHandler.NewHandler(unavailabilitySvc, log)
	removeUnavailabilitySlot := removeUnavailabilitySlotHandler.NewHandler(unavailabilitySvc, log)
	getBoardingDates := getBoardingDatesHandler.NewHandler(boardingSvc, log)
	saveBoardingDates := saveBoardingDatesHandler.NewHandler(boardingSvc, log)
	toggleBoardingDate := toggleBoardingDateHandler.NewHandler(toggleBoardingDateUseCase, log)
	getCalendarMarks := getCalendarMarksHandler.NewHandler(getCalendarMarksUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Еженедельное расписание ситтера
	api.HandleFunc("/sitters/{sitterId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Календарь недоступности ситтера
	api.HandleFunc("/sitters/{sitterId}/unavailability",
		getUnavailability.Handle).Methods(http.MethodGet)

	// Даты передержки ситтера
	api.HandleFunc("/sitters/{sitterId}/boarding-dates",
		getBoardingDates.Handle).Methods(http.MethodGet)

	// Разметка календаря
	api.HandleFunc("/sitters/{sitterId}/calendar",
		getCalendarMarks.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Еженедельная доступность ---
	protected.HandleFunc("/sitters/{sitterId}/availability",
		saveAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sitters/{sitterId}/availability/slots",
		addAvailabilitySlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sitters/{sitterId}/availability/slots/{slotId}",
		updateAvailabilitySlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sitters/{sitterId}/availability/slots/{slotId}",
		removeAvailabilitySlot.Handle).Methods(http.MethodDelete)

	// --- Недоступность по датам ---
	protected.HandleFunc("/sitters/{sitterId}/unavailability",
		saveUnavailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sitters/{sitterId}/unavailability/toggle",
		toggleDateUnavailable.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sitters/{sitterId}/unavailability/slots",
		addUnavailabilitySlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sitters/{sitterId}/unavailability/slots/{slotId}",
		updateUnavailabilitySlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sitters/{sitterId}/unavailability/slots/{slotId}",
		removeUnavailabilitySlot.Handle).Methods(http.MethodDelete)

	// --- Даты передержки ---
	protected.HandleFunc("/sitters/{sitterId}/boarding-dates",
		saveBoardingDates.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sitters/{sitterId}/boarding-dates/toggle",
		toggleBoardingDate.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
