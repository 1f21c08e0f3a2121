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

	cancelBookingHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/create_booking"
	createOfferHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/create_offer"
	deactivateOfferHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/deactivate_offer"
	getBookingHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/get_booking"
	getBookingByReferenceHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/get_booking_by_reference"
	getOfferHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/get_offer"
	getPropertyBookingsHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/get_property_bookings"
	getUserBookingsHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/get_user_bookings"
	quoteBookingHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/quote_booking"
	updateOfferHandler "github.com/stayfinder/SF-BookingService/internal/api/handlers/update_offer"
	"github.com/stayfinder/SF-BookingService/internal/api/middleware"
	"github.com/stayfinder/SF-BookingService/internal/config"
	offerRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/offer"
	reservationRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/reservation"
	propertyServiceClient "github.com/stayfinder/SF-BookingService/internal/integrations/propertyservice"
	bookingsService "github.com/stayfinder/SF-BookingService/internal/service/bookings"
	offersService "github.com/stayfinder/SF-BookingService/internal/service/offers"
	createBookingUC "github.com/stayfinder/SF-BookingService/internal/usecase/create_booking"
	quoteBookingUC "github.com/stayfinder/SF-BookingService/internal/usecase/quote_booking"
	"github.com/stayfinder/SF-BookingService/pkg/dbmetrics"
	"github.com/stayfinder/SF-BookingService/pkg/logger"
	"github.com/stayfinder/SF-BookingService/pkg/metrics"
	"github.com/stayfinder/SF-BookingService/pkg/simpletxmanager"
	"github.com/stayfinder/SF-BookingService/pkg/txmanager"
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

	log.Info("Starting SF-BookingService...")
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

	// Инициализируем клиента PropertyService
	propertyClient := propertyServiceClient.NewClient(
		cfg.PropertyService.URL,
		time.Duration(cfg.PropertyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (PropertyService=%s timeout=%ds)",
		cfg.PropertyService.URL, cfg.PropertyService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		offerRepository       *offerRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		offerRepository = offerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		offerRepository = offerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		reservationRepository,
		offerRepository,
		propertyClient,
		txMgr,
		log,
	)
	offerSvc := offersService.NewService(
		offerRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		offerRepository,
		propertyClient,
		txMgr,
		log,
	)
	quoteBookingUseCase := quoteBookingUC.NewUseCase(
		reservationRepository,
		offerRepository,
		propertyClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	quoteBooking := quoteBookingHandler.NewHandler(quoteBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByReference := getBookingByReferenceHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getPropertyBookings := getPropertyBookingsHandler.NewHandler(bookingSvc, log)
	createOffer := createOfferHandler.NewHandler(offerSvc, log)
	getOffer := getOfferHandler.NewHandler(offerSvc, log)
	updateOffer := updateOfferHandler.NewHandler(offerSvc, log)
	deactivateOffer := deactivateOfferHandler.NewHandler(offerSvc, log)

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

	// Расчёт стоимости проживания без создания бронирования
	api.HandleFunc("/bookings/quote", quoteBooking.Handle).Methods(http.MethodPost)

	// Получение оффера по коду
	api.HandleFunc("/offers/{code}", getOffer.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по клиентскому номеру
	protected.HandleFunc("/bookings/by-reference/{reference}", getBookingByReference.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Подтверждение бронирования владельцем объекта
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Бронирования объекта размещения (для владельца)
	protected.HandleFunc("/properties/{propertyId}/bookings", getPropertyBookings.Handle).Methods(http.MethodGet)

	// --- Управление офферами ---
	protected.HandleFunc("/offers", createOffer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/offers/{offerId}", updateOffer.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/offers/{offerId}", deactivateOffer.Handle).Methods(http.MethodDelete)

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
