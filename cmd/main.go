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

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	activateLicenseHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/activate_license"
	adminLoginHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/admin_login"
	checkLicenseHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/check_license"
	createBookingHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/create_booking"
	deactivateLicenseHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/deactivate_license"
	getBookingHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/get_bookings"
	getDaySlotsHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/get_day_slots"
	getLicenseStatusHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/get_license_status"
	getMonthOverviewHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/get_month_overview"
	getSettingsHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/get_settings"
	healthHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/health"
	updateSettingsHandler "github.com/m04kA/SMC-SimpleBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-SimpleBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SimpleBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/booking"
	licenseRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/license"
	settingsRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SimpleBooking/internal/integrations/licenseserver"
	"github.com/m04kA/SMC-SimpleBooking/internal/jobs"
	authService "github.com/m04kA/SMC-SimpleBooking/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-SimpleBooking/internal/service/bookings"
	licenseService "github.com/m04kA/SMC-SimpleBooking/internal/service/license"
	settingsService "github.com/m04kA/SMC-SimpleBooking/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-SimpleBooking/internal/usecase/create_booking"
	getDaySlotsUC "github.com/m04kA/SMC-SimpleBooking/internal/usecase/get_day_slots"
	getMonthOverviewUC "github.com/m04kA/SMC-SimpleBooking/internal/usecase/get_month_overview"
	"github.com/m04kA/SMC-SimpleBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
	"github.com/m04kA/SMC-SimpleBooking/pkg/metrics"
	"github.com/m04kA/SMC-SimpleBooking/pkg/sealer"
	"github.com/m04kA/SMC-SimpleBooking/pkg/txmanager"
)

// version передается при сборке: -ldflags "-X main.version=1.2.0"
var version = "dev"

// recoveryLogger адаптер логгера для gorilla/handlers.RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic: %s", fmt.Sprint(v...))
}

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

	log.Info("Starting SMC-SimpleBooking %s...", version)
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). nil коллектор метрики не пишет.
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	licenseRepository := licenseRepo.NewRepository(wrappedDB)

	// Инициализируем клиента сервера лицензий
	licenseSealer, err := sealer.New(cfg.License.Secret)
	if err != nil {
		log.Fatal("Failed to initialize license sealer: %v", err)
	}
	licenseClient := licenseserver.NewClient(
		cfg.License.ServerURL,
		time.Duration(cfg.License.Timeout)*time.Second,
		log,
	)
	if cfg.License.ServerURL == "" {
		log.Warn("License server URL is not configured, activation is unavailable")
	} else {
		log.Info("License server client initialized (url=%s, timeout=%ds)", cfg.License.ServerURL, cfg.License.Timeout)
	}

	// Инициализируем сервисы
	authSvc, err := authService.NewService(authService.Config{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.Admin.JWTSecret,
		TokenTTL:     time.Duration(cfg.Admin.TokenTTLHours) * time.Hour,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize admin auth: %v", err)
	}

	bookingSvc := bookingsService.NewService(bookingRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, txMgr, log)
	licenseSvc := licenseService.NewService(
		licenseRepository,
		licenseClient,
		licenseSealer,
		metricsCollector,
		licenseService.Config{
			Plugin:          cfg.License.Plugin,
			Version:         version,
			Platform:        cfg.License.Platform,
			SiteURL:         cfg.License.SiteURL,
			GracePeriod:     time.Duration(cfg.License.GracePeriodDays) * 24 * time.Hour,
			RecheckInterval: time.Duration(cfg.License.RecheckIntervalHours) * time.Hour,
			CacheTTL:        time.Duration(cfg.License.CacheTTLSeconds) * time.Second,
		},
		log,
	)
	log.Info("License instance_id=%s", licenseSvc.InstanceID())

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		txMgr,
		metricsCollector,
		log,
	)
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(bookingRepository, settingsRepository, log)
	getMonthOverviewUseCase := getMonthOverviewUC.NewUseCase(bookingRepository, settingsRepository, log)

	// Периодическая перепроверка лицензии
	scheduler := jobs.NewScheduler(log)
	if err := scheduler.AddLicenseRecheck(
		cfg.License.RecheckSchedule,
		licenseSvc,
		time.Duration(cfg.License.RecheckTimeout)*time.Second,
	); err != nil {
		log.Fatal("Failed to schedule license recheck: %v", err)
	}
	scheduler.Start()

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	getMonthOverview := getMonthOverviewHandler.NewHandler(getMonthOverviewUseCase, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getLicenseStatus := getLicenseStatusHandler.NewHandler(licenseSvc, log)
	activateLicense := activateLicenseHandler.NewHandler(licenseSvc, log)
	deactivateLicense := deactivateLicenseHandler.NewHandler(licenseSvc, log)
	checkLicense := checkLicenseHandler.NewHandler(licenseSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Общие middleware
	licenseGate := middleware.LicenseGate(licenseSvc, log)
	adminAuth := middleware.AdminAuth(authSvc, log)
	rateLimit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst, 0)
		rateLimit = middleware.RateLimit(limiter, log)
		log.Info("Rate limit enabled: %.2f req/s, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (ограничение частоты, требуют активной лицензии)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(rateLimit, licenseGate)

	// Обзор месяца
	public.HandleFunc("/calendar/{year}/{month}", getMonthOverview.Handle).Methods(http.MethodGet)

	// Слоты дня
	public.HandleFunc("/calendar/days/{date}/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()

	// Вход администратора (без токена, с ограничением частоты)
	admin.Handle("/login", rateLimit(http.HandlerFunc(adminLogin.Handle))).Methods(http.MethodPost)

	// Требуют токен администратора
	protected := admin.PathPrefix("").Subrouter()
	protected.Use(adminAuth)

	// --- Лицензия (доступна и без активной лицензии) ---
	protected.HandleFunc("/license", getLicenseStatus.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/license/activate", activateLicense.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/license/deactivate", deactivateLicense.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/license/check", checkLicense.Handle).Methods(http.MethodPost)

	// --- Требуют активной лицензии ---
	licensed := protected.PathPrefix("").Subrouter()
	licensed.Use(licenseGate)

	// Последние бронирования
	licensed.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Бронирование по ID
	licensed.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Настройки доступности
	licensed.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	licensed.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Внешние обертки: proxy заголовки, CORS, восстановление после паники
	var handler http.Handler = r
	if cfg.Server.TrustProxyHeaders {
		handler = ghandlers.ProxyHeaders(handler)
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = ghandlers.CORS(
			ghandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
			ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
			ghandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		)(handler)
		log.Info("CORS enabled for %v", cfg.CORS.AllowedOrigins)
	}
	handler = ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(recoveryLogger{log: log}),
		ghandlers.PrintRecoveryStack(true),
	)(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Дожидаемся выполняющейся перепроверки лицензии
	select {
	case <-scheduler.Stop().Done():
		log.Info("Scheduler stopped")
	case <-shutdownCtx.Done():
		log.Warn("Scheduler did not stop in time")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
