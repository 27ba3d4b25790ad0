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

	createBookingHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/get_booking"
	getKioskBookingsHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/get_kiosk_bookings"
	getSlotGridHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/get_slot_grid"
	occupancyReportHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/occupancy_report"
	recallBatchHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/recall_batch"
	recallBookingHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/recall_booking"
	updateBookingStatusHandler "github.com/m04kA/ADS-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/ADS-BookingService/internal/api/middleware"
	"github.com/m04kA/ADS-BookingService/internal/config"
	"github.com/m04kA/ADS-BookingService/internal/infra/devicecontrol"
	bookingRepo "github.com/m04kA/ADS-BookingService/internal/infra/storage/booking"
	outboxRepo "github.com/m04kA/ADS-BookingService/internal/infra/storage/outbox"
	kioskServiceClient "github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
	mediaServiceClient "github.com/m04kA/ADS-BookingService/internal/integrations/mediaservice"
	"github.com/m04kA/ADS-BookingService/internal/notifier"
	bookingsService "github.com/m04kA/ADS-BookingService/internal/service/bookings"
	reportsService "github.com/m04kA/ADS-BookingService/internal/service/reports"
	createBookingUC "github.com/m04kA/ADS-BookingService/internal/usecase/create_booking"
	getSlotGridUC "github.com/m04kA/ADS-BookingService/internal/usecase/get_slot_grid"
	recallBookingsUC "github.com/m04kA/ADS-BookingService/internal/usecase/recall_bookings"
	"github.com/m04kA/ADS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-BookingService/pkg/logger"
	"github.com/m04kA/ADS-BookingService/pkg/metrics"
	"github.com/m04kA/ADS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/ADS-BookingService/pkg/txmanager"
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

	log.Info("Starting ADS-BookingService...")
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

	// Инициализируем интеграционных клиентов
	kioskClient := kioskServiceClient.NewClient(
		cfg.KioskService.URL,
		time.Duration(cfg.KioskService.Timeout)*time.Second,
		time.Duration(cfg.KioskService.CacheTTLSeconds)*time.Second,
		log,
	)
	mediaClient := mediaServiceClient.NewClient(
		cfg.MediaService.URL,
		time.Duration(cfg.MediaService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (KioskService=%s timeout=%ds, MediaService=%s timeout=%ds)",
		cfg.KioskService.URL, cfg.KioskService.Timeout, cfg.MediaService.URL, cfg.MediaService.Timeout)

	// Подключаемся к MQTT-брокеру плоскости управления
	devicePublisher, err := devicecontrol.NewPublisher(cfg.MQTT)
	if err != nil {
		log.Fatal("Failed to connect to MQTT broker at %s: %v", cfg.MQTT.BrokerURL, err)
	}
	defer devicePublisher.Close()
	log.Info("Connected to MQTT broker at %s (qos=%d)", cfg.MQTT.BrokerURL, cfg.MQTT.QoS)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		outboxRepository  *outboxRepo.Repository
		txMgr             *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		outboxRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		kioskClient,
		mediaClient,
		txMgr,
		log,
	)

	getSlotGridUseCase := getSlotGridUC.NewUseCase(
		bookingRepository,
		kioskClient,
		log,
	)

	recallBookingsUseCase := recallBookingsUC.NewUseCase(
		bookingRepository,
		outboxRepository,
		txMgr,
		log,
	)

	reportsSvc := reportsService.NewService(getSlotGridUseCase, log)

	// Запускаем диспетчер команд остановки
	notifierCtx, notifierCancel := context.WithCancel(context.Background())
	defer notifierCancel()

	dispatcher := notifier.New(
		cfg.Notifier,
		outboxRepository,
		devicePublisher,
		txMgr,
		metricsCollector,
		log,
	)
	dispatcher.Start(notifierCtx)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getSlotGrid := getSlotGridHandler.NewHandler(getSlotGridUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getKioskBookings := getKioskBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	recallBooking := recallBookingHandler.NewHandler(bookingSvc, log)
	recallBatch := recallBatchHandler.NewHandler(recallBookingsUseCase, log)
	occupancyReport := occupancyReportHandler.NewHandler(reportsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Сетка слотов киоска со статусами и ценами
	api.HandleFunc("/kiosks/{kioskId}/slot-grid", getSlotGrid.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Operator-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переходы конвейера воспроизведения
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Телеметрия воспроизведения от киоска
	protected.HandleFunc("/bookings/{bookingId}/proof-of-play",
		updateBookingStatus.HandleProofOfPlay).Methods(http.MethodPost)

	// Отзыв одного бронирования
	protected.HandleFunc("/bookings/{bookingId}/recall", recallBooking.Handle).Methods(http.MethodPost)

	// Пакетный отзыв бронирований
	protected.HandleFunc("/recalls", recallBatch.Handle).Methods(http.MethodPost)

	// --- Киоски ---
	// Журнал бронирований киоска
	protected.HandleFunc("/kiosks/{kioskId}/bookings", getKioskBookings.Handle).Methods(http.MethodGet)

	// Отчет о занятости киоска
	protected.HandleFunc("/kiosks/{kioskId}/occupancy-report", occupancyReport.Handle).Methods(http.MethodGet)

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

	// Останавливаем диспетчер: текущие пачки доставляются до конца
	dispatcher.Stop()
	notifierCancel()

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
