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

	cancelBookingHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/complete_booking"
	confirmPaymentHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/create_booking"
	expirePointsHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/expire_points"
	getAvailableSlotsHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/get_booking"
	getLoyaltyPointsHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/get_loyalty_points"
	getLoyaltySummaryHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/get_loyalty_summary"
	getUserBookingsHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/get_user_bookings"
	getVendorBookingsHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/get_vendor_bookings"
	loyaltyAnalyticsHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/loyalty_analytics"
	markNoShowHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/mark_no_show"
	platformRevenueHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/platform_revenue"
	processPayoutHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/process_payout"
	startServiceHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/start_service"
	vendorEarningsHandler "github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers/vendor_earnings"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/config"
	bookingRepo "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/booking"
	loyaltyRepo "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/loyalty"
	transactionRepo "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/transaction"
	vendorBalanceRepo "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/vendorbalance"
	vendorServiceClient "github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	billingService "github.com/AryanRathore04/Builder-mystic-forge/internal/service/billing"
	bookingsService "github.com/AryanRathore04/Builder-mystic-forge/internal/service/bookings"
	loyaltyService "github.com/AryanRathore04/Builder-mystic-forge/internal/service/loyalty"
	cancelBookingUC "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/confirm_payment"
	createBookingUC "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/create_booking"
	expirePointsUC "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/expire_points"
	getAvailableSlotsUC "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/get_available_slots"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/dbmetrics"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/logger"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/metrics"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/simpletxmanager"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/txmanager"
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

	log.Info("Starting BeautyBook-BookingService...")
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

	// Инициализируем клиент каталога салонов
	vendorClient := vendorServiceClient.NewClient(
		cfg.VendorService.URL,
		time.Duration(cfg.VendorService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (VendorService=%s timeout=%ds)",
		cfg.VendorService.URL, cfg.VendorService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository       *bookingRepo.Repository
		loyaltyRepository       *loyaltyRepo.Repository
		transactionRepository   *transactionRepo.Repository
		vendorBalanceRepository *vendorBalanceRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		loyaltyRepository = loyaltyRepo.NewRepository(wrappedDB)
		transactionRepository = transactionRepo.NewRepository(wrappedDB)
		vendorBalanceRepository = vendorBalanceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		loyaltyRepository = loyaltyRepo.NewRepository(db)
		transactionRepository = transactionRepo.NewRepository(db)
		vendorBalanceRepository = vendorBalanceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	billingSvc := billingService.NewService(
		transactionRepository,
		vendorBalanceRepository,
		cfg.Billing.CommissionRate,
		&billingService.RealTimeProvider{},
		log,
	)
	loyaltySvc := loyaltyService.NewService(
		loyaltyRepository,
		loyaltyService.Config{
			PointsPerCurrencyUnit: cfg.Loyalty.PointsPerCurrencyUnit,
			RedemptionRate:        cfg.Loyalty.RedemptionRate,
			MinRedemptionPoints:   cfg.Loyalty.MinRedemptionPoints,
			ExpiryDays:            cfg.Loyalty.ExpiryDays,
		},
		&loyaltyService.RealTimeProvider{},
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		vendorClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		vendorClient,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		vendorClient,
		loyaltySvc,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		loyaltySvc,
		billingSvc,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		billingSvc,
		vendorClient,
		txMgr,
		log,
	)
	expirePointsUseCase := expirePointsUC.NewUseCase(
		loyaltySvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVendorBookings := getVendorBookingsHandler.NewHandler(bookingSvc, log)
	startService := startServiceHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	getLoyaltySummary := getLoyaltySummaryHandler.NewHandler(loyaltySvc, log)
	getLoyaltyPoints := getLoyaltyPointsHandler.NewHandler(loyaltySvc, log)
	processPayout := processPayoutHandler.NewHandler(billingSvc, vendorClient, log)
	vendorEarnings := vendorEarningsHandler.NewHandler(billingSvc, vendorClient, log)
	platformRevenue := platformRevenueHandler.NewHandler(billingSvc, log)
	loyaltyAnalytics := loyaltyAnalyticsHandler.NewHandler(loyaltySvc, log)
	expirePoints := expirePointsHandler.NewHandler(expirePointsUseCase, log)

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

	// Получение доступных слотов салона
	api.HandleFunc("/vendors/{vendorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение оплаты
	protected.HandleFunc("/bookings/{bookingId}/confirm-payment", confirmPayment.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Начало оказания услуги
	protected.HandleFunc("/bookings/{bookingId}/start", startService.Handle).Methods(http.MethodPost)

	// Завершение бронирования
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPost)

	// Отметка о неявке клиента
	protected.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Лояльность ---
	// История начислений и списаний баллов
	protected.HandleFunc("/users/{userId}/loyalty", getLoyaltySummary.Handle).Methods(http.MethodGet)

	// Текущий баланс баллов
	protected.HandleFunc("/users/{userId}/loyalty/points", getLoyaltyPoints.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Список бронирований салона
	protected.HandleFunc("/vendors/{vendorId}/bookings", getVendorBookings.Handle).Methods(http.MethodGet)

	// Сводка по доходам салона
	protected.HandleFunc("/vendors/{vendorId}/earnings", vendorEarnings.Handle).Methods(http.MethodGet)

	// Регистрация выплаты салону
	protected.HandleFunc("/vendors/{vendorId}/payouts", processPayout.Handle).Methods(http.MethodPost)

	// --- Административные операции ---
	// Сводка по комиссиям платформы
	protected.HandleFunc("/admin/platform-revenue", platformRevenue.Handle).Methods(http.MethodGet)

	// Сводка программы лояльности
	protected.HandleFunc("/admin/loyalty/analytics", loyaltyAnalytics.Handle).Methods(http.MethodGet)

	// Принудительный запуск списания просроченных баллов
	protected.HandleFunc("/admin/loyalty/expire", expirePoints.Handle).Methods(http.MethodPost)

	// Фоновое списание просроченных баллов
	stopSweepCh := make(chan struct{})
	go func() {
		interval := time.Duration(cfg.Loyalty.ExpirySweepIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info("Loyalty expiry sweep started (interval=%s)", interval)
		for {
			select {
			case <-ticker.C:
				resp, err := expirePointsUseCase.Execute(context.Background())
				if err != nil {
					log.Error("Loyalty expiry sweep failed: %v", err)
					continue
				}
				log.Info("Loyalty expiry sweep finished: processed=%d", resp.Processed)
			case <-stopSweepCh:
				return
			}
		}
	}()

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

	// Останавливаем фоновое списание баллов
	close(stopSweepCh)

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
