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

	blockSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/block_slot"
	bookSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/book_slot"
	cancelSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_slot"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	getSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_slot"
	getWindowOptionsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_window_options"
	submitWindowsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/submit_windows"
	unblockSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/unblock_slot"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	slotsService "github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	getAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
	submitWindowsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/submit_windows"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем репозиторий (с метриками или без)
	var slotRepository *slotRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		slotRepository = slotRepo.NewRepository(db)
	}

	// Собираем политику выбора дат и каталог рабочих окон из конфигурации
	excludedWeekday, err := cfg.Schedule.Weekday()
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	datePolicy := domain.NewDateConstraintPolicy(excludedWeekday)

	catalog, err := domain.NewTimeWindowCatalog(
		types.TimeString(cfg.Schedule.EarliestStart),
		types.TimeString(cfg.Schedule.LatestStart),
		types.TimeString(cfg.Schedule.EarliestEnd),
		types.TimeString(cfg.Schedule.LatestEnd),
		cfg.Schedule.StepMinutes,
	)
	if err != nil {
		log.Fatal("Invalid time window catalog configuration: %v", err)
	}
	log.Info("Time window catalog: start %s-%s, end %s-%s, step %d min, excluded weekday %s",
		cfg.Schedule.EarliestStart, cfg.Schedule.LatestStart,
		cfg.Schedule.EarliestEnd, cfg.Schedule.LatestEnd,
		cfg.Schedule.StepMinutes, excludedWeekday)

	generator := submitWindowsUC.NewGenerator(catalog, submitWindowsUC.GeneratorConfig{
		SplitWindows:        cfg.Schedule.SplitWindows,
		SlotDurationMinutes: cfg.Schedule.SlotDurationMinutes,
	})

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(slotRepository, log)

	// Инициализируем use cases
	submitWindowsUseCase := submitWindowsUC.NewUseCase(
		slotRepository,
		datePolicy,
		generator,
		cfg.Schedule.MaxDates,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(slotRepository, log)

	// Инициализируем handlers
	submitWindows := submitWindowsHandler.NewHandler(submitWindowsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	blockSlot := blockSlotHandler.NewHandler(slotSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotSvc, log)
	bookSlot := bookSlotHandler.NewHandler(slotSvc, log)
	cancelSlot := cancelSlotHandler.NewHandler(slotSvc, log)
	getWindowOptions := getWindowOptionsHandler.NewHandler(catalog, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог допустимых границ рабочего окна (для формы публикации)
	api.HandleFunc("/availability/window-options", getWindowOptions.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Technician-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Публикация рабочих окон (создание слотов)
	protected.HandleFunc("/availability/windows", submitWindows.Handle).Methods(http.MethodPost)

	// Инвентарь слотов техника, сгруппированный по датам
	protected.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Получение слота по ID
	protected.HandleFunc("/availability/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// Блокировка и разблокировка слота техником
	protected.HandleFunc("/availability/slots/{slotId}/block", blockSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/availability/slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPatch)

	// ============================================================
	// INTERNAL ROUTES (service-to-service, вызывает сервис бронирования)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/slots/{slotId}/book", bookSlot.Handle).Methods(http.MethodPatch)
	internal.HandleFunc("/slots/{slotId}/cancel", cancelSlot.Handle).Methods(http.MethodPatch)

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
