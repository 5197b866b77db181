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

	adminLoginHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/admin_login"
	adminLogoutHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/admin_logout"
	blockDateHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/block_date"
	calculatePriceHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/calculate_price"
	createBookingHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/delete_booking"
	exportCalendarHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/export_calendar"
	getAvailabilityHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/get_availability"
	getRateConfigHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/get_rate_config"
	listBlockedDatesHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/list_blocked_dates"
	listBookingsHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/list_bookings"
	syncStatusHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/sync_status"
	triggerSyncHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/trigger_sync"
	unblockDateHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/unblock_date"
	updateBookingStatusHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/lesnoydomik/booking-service/internal/api/handlers/update_settings"
	"github.com/lesnoydomik/booking-service/internal/api/middleware"
	"github.com/lesnoydomik/booking-service/internal/config"
	blockedDateRepo "github.com/lesnoydomik/booking-service/internal/infra/storage/blockeddate"
	reservationRepo "github.com/lesnoydomik/booking-service/internal/infra/storage/reservation"
	settingsRepo "github.com/lesnoydomik/booking-service/internal/infra/storage/settings"
	avitoClient "github.com/lesnoydomik/booking-service/internal/integrations/avito"
	telegramClient "github.com/lesnoydomik/booking-service/internal/integrations/telegram"
	"github.com/lesnoydomik/booking-service/internal/jobs/avitosync"
	"github.com/lesnoydomik/booking-service/internal/jobs/expiry"
	"github.com/lesnoydomik/booking-service/internal/jobs/reminder"
	"github.com/lesnoydomik/booking-service/internal/service/auth"
	availabilityService "github.com/lesnoydomik/booking-service/internal/service/availability"
	reservationsService "github.com/lesnoydomik/booking-service/internal/service/reservations"
	settingsService "github.com/lesnoydomik/booking-service/internal/service/settings"
	calculatePriceUC "github.com/lesnoydomik/booking-service/internal/usecase/calculate_price"
	createBookingUC "github.com/lesnoydomik/booking-service/internal/usecase/create_booking"
	"github.com/lesnoydomik/booking-service/pkg/dbmetrics"
	"github.com/lesnoydomik/booking-service/pkg/logger"
	"github.com/lesnoydomik/booking-service/pkg/metrics"
	"github.com/lesnoydomik/booking-service/pkg/simpletxmanager"
	"github.com/lesnoydomik/booking-service/pkg/txmanager"
)

// realTime провайдер реального времени
type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// noopSyncMetrics заглушка метрик синхронизации при выключенном prometheus
type noopSyncMetrics struct{}

func (noopSyncMetrics) ObserveSyncRun(string, int, int, float64) {}

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

	log.Info("Starting LesnoyDomik booking service...")
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

	// Интерфейс для transaction manager (используется в usecases и jobs)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Репозитории и транзакции: с метриками или без
	var (
		dbExec dbmetrics.DBExecutor = db
		txMgr  TxManager            = simpletxmanager.NewTransactionManager(db)
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		dbExec = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	}

	reservationRepository := reservationRepo.NewRepository(dbExec)
	blockedDateRepository := blockedDateRepo.NewRepository(dbExec)
	settingsRepository := settingsRepo.NewRepository(dbExec)

	// Интеграционные клиенты
	telegram := telegramClient.NewClient(
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		time.Duration(cfg.Telegram.Timeout)*time.Second,
		cfg.Telegram.Enabled,
		log,
	)
	avito := avitoClient.NewClient(
		cfg.AvitoSync.ICalURL,
		time.Duration(cfg.AvitoSync.HTTPTimeout)*time.Second,
	)
	log.Info("Integration clients initialized (telegram_enabled=%v, avito_sync_enabled=%v)",
		cfg.Telegram.Enabled, cfg.AvitoSync.Enabled)

	// Сервисы
	authSvc := auth.New(
		cfg.Admin.Login,
		cfg.Admin.PasswordHash,
		time.Duration(cfg.Admin.TokenTTLHours)*time.Hour,
		log,
	)
	authSvc.Start()
	defer authSvc.Stop()

	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		blockedDateRepository,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.New(
		blockedDateRepository,
		realTime{},
		log,
		cfg.Site.Domain,
		cfg.Site.CalendarName,
	)
	settingsSvc := settingsService.New(settingsRepository, txMgr, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		blockedDateRepository,
		settingsRepository,
		telegram,
		txMgr,
		log,
	)
	calculatePriceUseCase := calculatePriceUC.NewUseCase(settingsRepository, log)

	// Фоновые задачи
	var syncMetrics avitosync.MetricsObserver = noopSyncMetrics{}
	if cfg.Metrics.Enabled {
		syncMetrics = metricsCollector
	}
	syncJob := avitosync.New(
		avito,
		blockedDateRepository,
		txMgr,
		syncMetrics,
		log,
		time.Duration(cfg.AvitoSync.IntervalMinutes)*time.Minute,
	)
	if cfg.AvitoSync.Enabled {
		syncJob.Start()
		defer syncJob.Stop()
	}

	expiryJob := expiry.New(
		reservationRepository,
		blockedDateRepository,
		settingsRepository,
		telegram,
		txMgr,
		realTime{},
		log,
		time.Duration(cfg.Jobs.ExpiryIntervalMinutes)*time.Minute,
	)
	expiryJob.Start()
	defer expiryJob.Stop()

	reminderJob := reminder.New(
		reservationRepository,
		settingsRepository,
		telegram,
		realTime{},
		log,
		time.Duration(cfg.Jobs.ReminderIntervalMinutes)*time.Minute,
		cfg.Jobs.ReminderAfterHours,
	)
	reminderJob.Start()
	defer reminderJob.Stop()

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	calculatePrice := calculatePriceHandler.NewHandler(calculatePriceUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getRateConfig := getRateConfigHandler.NewHandler(settingsSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(availabilitySvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	adminLogout := adminLogoutHandler.NewHandler(authSvc, log)
	listBookings := listBookingsHandler.NewHandler(reservationsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(reservationsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(reservationsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	listBlockedDates := listBlockedDatesHandler.NewHandler(availabilitySvc, log)
	blockDate := blockDateHandler.NewHandler(availabilitySvc, log)
	unblockDate := unblockDateHandler.NewHandler(availabilitySvc, log)
	syncStatus := syncStatusHandler.NewHandler(syncJob, log)
	triggerSync := triggerSyncHandler.NewHandler(syncJob, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятые даты для календаря на сайте
	api.HandleFunc("/bookings/blocked-dates", getAvailability.Handle).Methods(http.MethodGet)

	// Расчет стоимости проживания
	api.HandleFunc("/bookings/calculate", calculatePrice.Handle).Methods(http.MethodPost)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Действующие тарифы
	api.HandleFunc("/settings", getRateConfig.Handle).Methods(http.MethodGet)

	// iCal-лента занятости для внешних площадок
	api.HandleFunc("/calendar/export.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// Вход администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer-токен администратора)
	// ============================================================

	protected := api.PathPrefix("/admin").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	// --- Сессия ---
	protected.HandleFunc("/logout", adminLogout.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Тарифы ---
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Управление занятостью ---
	protected.HandleFunc("/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/blocked-dates", blockDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/{date}", unblockDate.Handle).Methods(http.MethodDelete)

	// --- Синхронизация с Авито ---
	protected.HandleFunc("/sync/status", syncStatus.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sync/trigger", triggerSync.Handle).Methods(http.MethodPost)

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
