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
	"github.com/shopspring/decimal"

	cancelBookingHandler "github.com/slotta-app/SlottaService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/slotta-app/SlottaService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/slotta-app/SlottaService/internal/api/handlers/create_booking"
	createBookingWithPaymentHandler "github.com/slotta-app/SlottaService/internal/api/handlers/create_booking_with_payment"
	getBookingHandler "github.com/slotta-app/SlottaService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/slotta-app/SlottaService/internal/api/handlers/get_client_bookings"
	getMasterAnalyticsHandler "github.com/slotta-app/SlottaService/internal/api/handlers/get_master_analytics"
	getMasterBookingsHandler "github.com/slotta-app/SlottaService/internal/api/handlers/get_master_bookings"
	getMasterServicesHandler "github.com/slotta-app/SlottaService/internal/api/handlers/get_master_services"
	getMasterTransactionsHandler "github.com/slotta-app/SlottaService/internal/api/handlers/get_master_transactions"
	getMasterWalletHandler "github.com/slotta-app/SlottaService/internal/api/handlers/get_master_wallet"
	markNoShowHandler "github.com/slotta-app/SlottaService/internal/api/handlers/mark_no_show"
	rescheduleBookingHandler "github.com/slotta-app/SlottaService/internal/api/handlers/reschedule_booking"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	"github.com/slotta-app/SlottaService/internal/config"
	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
	clientRepo "github.com/slotta-app/SlottaService/internal/infra/storage/client"
	serviceRepo "github.com/slotta-app/SlottaService/internal/infra/storage/service"
	transactionRepo "github.com/slotta-app/SlottaService/internal/infra/storage/transaction"
	"github.com/slotta-app/SlottaService/internal/integrations/notifier"
	"github.com/slotta-app/SlottaService/internal/integrations/omisepay"
	bookingsService "github.com/slotta-app/SlottaService/internal/service/bookings"
	catalogService "github.com/slotta-app/SlottaService/internal/service/catalog"
	walletService "github.com/slotta-app/SlottaService/internal/service/wallet"
	cancelBookingUC "github.com/slotta-app/SlottaService/internal/usecase/cancel_booking"
	completeBookingUC "github.com/slotta-app/SlottaService/internal/usecase/complete_booking"
	createBookingUC "github.com/slotta-app/SlottaService/internal/usecase/create_booking"
	markNoShowUC "github.com/slotta-app/SlottaService/internal/usecase/mark_no_show"
	rescheduleBookingUC "github.com/slotta-app/SlottaService/internal/usecase/reschedule_booking"
	"github.com/slotta-app/SlottaService/pkg/dbmetrics"
	"github.com/slotta-app/SlottaService/pkg/logger"
	"github.com/slotta-app/SlottaService/pkg/metrics"
	"github.com/slotta-app/SlottaService/pkg/simpletxmanager"
	"github.com/slotta-app/SlottaService/pkg/txmanager"
)

// bookingNotifier общий интерфейс диспетчера событий жизненного цикла
type bookingNotifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
	BookingCancelled(ctx context.Context, booking *domain.Booking)
	BookingCompleted(ctx context.Context, booking *domain.Booking)
	BookingNoShow(ctx context.Context, booking *domain.Booking, masterCompensation, clientCredit decimal.Decimal)
	BookingRescheduled(ctx context.Context, booking *domain.Booking)
}

// nopNotifier заглушка диспетчера для окружений без RabbitMQ
type nopNotifier struct{}

func (nopNotifier) BookingCreated(context.Context, *domain.Booking)     {}
func (nopNotifier) BookingCancelled(context.Context, *domain.Booking)   {}
func (nopNotifier) BookingCompleted(context.Context, *domain.Booking)   {}
func (nopNotifier) BookingRescheduled(context.Context, *domain.Booking) {}
func (nopNotifier) BookingNoShow(context.Context, *domain.Booking, decimal.Decimal, decimal.Decimal) {
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

	log.Info("Starting SlottaService...")
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

	// Платежный шлюз холдов
	gateway, err := omisepay.NewGateway(
		cfg.Payments.PublicKey,
		cfg.Payments.SecretKey,
		cfg.Payments.Currency,
		time.Duration(cfg.Payments.Timeout)*time.Second,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway: %v", err)
	}
	log.Info("Payment gateway initialized (currency=%s, timeout=%ds)",
		cfg.Payments.Currency, cfg.Payments.Timeout)

	// Диспетчер событий жизненного цикла
	var dispatcher bookingNotifier = nopNotifier{}
	if cfg.Notifications.Enabled {
		d, err := notifier.NewDispatcher(cfg.Notifications.URL, cfg.Notifications.Exchange, log)
		if err != nil {
			log.Fatal("Failed to initialize notification dispatcher: %v", err)
		}
		defer d.Close()
		dispatcher = d
		log.Info("Notification dispatcher initialized (exchange=%s)", cfg.Notifications.Exchange)
	} else {
		log.Info("Notifications disabled, lifecycle events will not be published")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		clientRepository      *clientRepo.Repository
		serviceRepository     *serviceRepo.Repository
		transactionRepository *transactionRepo.Repository
	)

	// Интерфейс transaction manager, общий для обоих вариантов
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		transactionRepository = transactionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		transactionRepository = transactionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	walletSvc := walletService.NewService(transactionRepository, bookingRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		serviceRepository,
		gateway,
		dispatcher,
		txMgr,
		log,
	)
	completeBookingUseCase := completeBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		gateway,
		dispatcher,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		gateway,
		dispatcher,
		txMgr,
		log,
	)
	markNoShowUseCase := markNoShowUC.NewUseCase(
		bookingRepository,
		clientRepository,
		transactionRepository,
		gateway,
		dispatcher,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		dispatcher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createBookingWithPayment := createBookingWithPaymentHandler.NewHandler(createBookingUseCase, log)
	completeBooking := completeBookingHandler.NewHandler(completeBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getMasterBookings := getMasterBookingsHandler.NewHandler(bookingSvc, log)
	getMasterServices := getMasterServicesHandler.NewHandler(catalogSvc, log)
	getMasterWallet := getMasterWalletHandler.NewHandler(walletSvc, log)
	getMasterTransactions := getMasterTransactionsHandler.NewHandler(walletSvc, log)
	getMasterAnalytics := getMasterAnalyticsHandler.NewHandler(walletSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют идентификации вызывающей стороны
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Жизненный цикл бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/with-payment", createBookingWithPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// --- История и расписание ---
	api.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId}/bookings", getMasterBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId}/services", getMasterServices.Handle).Methods(http.MethodGet)

	// --- Кошелек и аналитика мастера ---
	api.HandleFunc("/masters/{masterId}/wallet", getMasterWallet.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId}/transactions", getMasterTransactions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId}/analytics", getMasterAnalytics.Handle).Methods(http.MethodGet)

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
