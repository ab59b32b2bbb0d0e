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

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addReviewHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/add_review"
	addToWishlistHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/add_to_wishlist"
	checkWishlistHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/check_wishlist"
	createBookingHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/create_booking"
	createVendorHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/create_vendor"
	deleteReviewHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/delete_review"
	getAvailableSlotsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_booking"
	getMeHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_me"
	getMyVendorHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_my_vendor"
	getUserBookingsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_user_bookings"
	getUserReviewsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_user_reviews"
	getVendorHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_vendor"
	getVendorBookingsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_vendor_bookings"
	getVendorReviewsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_vendor_reviews"
	getVendorSlotsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_vendor_slots"
	getWishlistHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/get_wishlist"
	initiateBookingHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/initiate_booking"
	listAdminVendorsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/list_admin_vendors"
	listVendorsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/list_vendors"
	loginHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/login"
	registerHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/register"
	removeFromWishlistHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/remove_from_wishlist"
	replaceVendorSlotsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/replace_vendor_slots"
	setVendorFlagsHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/set_vendor_flags"
	updateBookingStatusHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/update_booking_status"
	updateMeHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/update_me"
	updateVendorHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/update_vendor"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/auth"
	"github.com/m04kA/WeddingMarketService/internal/config"
	"github.com/m04kA/WeddingMarketService/internal/domain"
	bookingRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/booking"
	reconciliationRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/reconciliation"
	reviewRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/review"
	slotsRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/slots"
	userRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/user"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	wishlistRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/wishlist"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/internal/integrations/identity"
	"github.com/m04kA/WeddingMarketService/internal/integrations/payment"
	accountsService "github.com/m04kA/WeddingMarketService/internal/service/accounts"
	bookingsService "github.com/m04kA/WeddingMarketService/internal/service/bookings"
	reviewsService "github.com/m04kA/WeddingMarketService/internal/service/reviews"
	vendorsService "github.com/m04kA/WeddingMarketService/internal/service/vendors"
	wishlistService "github.com/m04kA/WeddingMarketService/internal/service/wishlist"
	addReviewUC "github.com/m04kA/WeddingMarketService/internal/usecase/add_review"
	createBookingUC "github.com/m04kA/WeddingMarketService/internal/usecase/create_booking"
	deleteReviewUC "github.com/m04kA/WeddingMarketService/internal/usecase/delete_review"
	getAvailableSlotsUC "github.com/m04kA/WeddingMarketService/internal/usecase/get_available_slots"
	initiateBookingUC "github.com/m04kA/WeddingMarketService/internal/usecase/initiate_booking"
	updateBookingStatusUC "github.com/m04kA/WeddingMarketService/internal/usecase/update_booking_status"
	"github.com/m04kA/WeddingMarketService/pkg/dbmetrics"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
	"github.com/m04kA/WeddingMarketService/pkg/metrics"
	"github.com/m04kA/WeddingMarketService/pkg/txmanager"
)

const tokenIssuer = "wedding-market-service"

// PaymentGateway общий интерфейс mock и http шлюза
type PaymentGateway interface {
	Process(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentResult, error)
}

// IdentityProvider общий интерфейс провайдеров учётных записей
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	Lookup(ctx context.Context, userID int64) (*domain.Identity, error)
	Register(ctx context.Context, req identity.RegisterRequest) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, userID int64, upd identity.ProfileUpdate) (*domain.Identity, error)
}

// EventPublisher общий интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting WeddingMarketService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: при выключенных в сервисы уходит nil, методы записи nil-safe
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	vendorRepository := vendorRepo.NewRepository(wrappedDB)
	slotsRepository := slotsRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	reconciliationRepository := reconciliationRepo.NewRepository(wrappedDB)

	// Redis для избранного (опционально)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Connected to redis at %s", cfg.Redis.Addr)
	} else {
		log.Warn("Redis is not configured, wishlist endpoints are disabled")
	}

	// Публикация событий (опционально)
	var publisher EventPublisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Domain events are published to exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Платёжный шлюз
	paymentTimeout := time.Duration(cfg.Payment.Timeout) * time.Second
	var gateway PaymentGateway
	switch cfg.Payment.Provider {
	case config.PaymentProviderHTTP:
		gateway = payment.NewClient(cfg.Payment.URL, cfg.Payment.APIKey, paymentTimeout, log)
	default:
		gateway = payment.NewMockGateway(cfg.Payment.SuccessRate, time.Duration(cfg.Payment.DelayMillis)*time.Millisecond, log)
	}
	log.Info("Payment gateway initialized (provider=%s, timeout=%ds)", cfg.Payment.Provider, cfg.Payment.Timeout)

	// Провайдер учётных записей
	var identityProvider IdentityProvider
	switch cfg.Auth.Provider {
	case config.AuthProviderMemory:
		users := make([]identity.MemoryUser, 0, len(cfg.Auth.Users))
		for _, u := range cfg.Auth.Users {
			users = append(users, identity.MemoryUser{
				ID:          u.ID,
				Email:       u.Email,
				Password:    u.Password,
				DisplayName: u.DisplayName,
				Role:        domain.Role(u.Role),
			})
		}
		memoryProvider, err := identity.NewInMemoryProvider(users, cfg.Auth.AdminEmail, log)
		if err != nil {
			log.Fatal("Failed to initialize in-memory identity provider: %v", err)
		}
		// Пользователи из конфигурации должны существовать в users для внешних ключей
		if err := memoryProvider.Sync(context.Background(), userRepository); err != nil {
			log.Fatal("Failed to sync in-memory users to database: %v", err)
		}
		identityProvider = memoryProvider
	default:
		identityProvider = identity.NewDirectoryProvider(userRepository, cfg.Auth.AdminEmail, log)
	}
	log.Info("Identity provider initialized (provider=%s)", cfg.Auth.Provider)

	tokens := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, tokenIssuer, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	// Сервисы
	accountSvc := accountsService.NewService(identityProvider, tokens, log)
	vendorSvc := vendorsService.NewService(vendorRepository, slotsRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, vendorRepository, log)
	reviewSvc := reviewsService.NewService(reviewRepository, vendorRepository, log)

	// Use cases
	initiateBookingUseCase := initiateBookingUC.NewUseCase(
		vendorRepository,
		slotsRepository,
		cfg.Booking.HorizonDays,
		cfg.Booking.Currency,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		initiateBookingUseCase,
		gateway,
		bookingRepository,
		reconciliationRepository,
		publisher,
		metricsCollector,
		paymentTimeout,
		log,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		vendorRepository,
		publisher,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		vendorRepository,
		slotsRepository,
		cfg.Booking.HorizonDays,
		log,
	)

	addReviewUseCase := addReviewUC.NewUseCase(
		txMgr,
		vendorRepository,
		reviewRepository,
		bookingRepository,
		publisher,
		metricsCollector,
		cfg.Reviews.MaxRetries,
		cfg.Reviews.RequireCompletedBooking,
		log,
	)

	deleteReviewUseCase := deleteReviewUC.NewUseCase(
		txMgr,
		vendorRepository,
		reviewRepository,
		publisher,
		metricsCollector,
		cfg.Reviews.MaxRetries,
		log,
	)

	// Handlers
	register := registerHandler.NewHandler(accountSvc, log)
	login := loginHandler.NewHandler(accountSvc, log)
	getMe := getMeHandler.NewHandler(accountSvc, log)
	updateMe := updateMeHandler.NewHandler(accountSvc, log)

	listVendors := listVendorsHandler.NewHandler(vendorSvc, log)
	getVendor := getVendorHandler.NewHandler(vendorSvc, log)
	getMyVendor := getMyVendorHandler.NewHandler(vendorSvc, log)
	createVendor := createVendorHandler.NewHandler(vendorSvc, log)
	updateVendor := updateVendorHandler.NewHandler(vendorSvc, log)
	setVendorFlags := setVendorFlagsHandler.NewHandler(vendorSvc, log)
	listAdminVendors := listAdminVendorsHandler.NewHandler(vendorSvc, log)
	getVendorSlots := getVendorSlotsHandler.NewHandler(vendorSvc, log)
	replaceVendorSlots := replaceVendorSlotsHandler.NewHandler(vendorSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	initiateBooking := initiateBookingHandler.NewHandler(initiateBookingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVendorBookings := getVendorBookingsHandler.NewHandler(bookingSvc, log)

	addReview := addReviewHandler.NewHandler(addReviewUseCase, log)
	deleteReview := deleteReviewHandler.NewHandler(deleteReviewUseCase, log)
	getVendorReviews := getVendorReviewsHandler.NewHandler(reviewSvc, log)
	getUserReviews := getUserReviewsHandler.NewHandler(reviewSvc, log)

	authMiddleware := middleware.NewAuth(tokens, identityProvider, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (токен опционален, влияет на видимость неодобренных вендоров)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(authMiddleware.Optional)

	public.HandleFunc("/auth/register", register.Handle).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	public.HandleFunc("/vendors", listVendors.Handle).Methods(http.MethodGet)
	public.HandleFunc("/vendors/{vendorId:[0-9]+}", getVendor.Handle).Methods(http.MethodGet)
	public.HandleFunc("/vendors/{vendorId:[0-9]+}/slots", getVendorSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/vendors/{vendorId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/vendors/{vendorId:[0-9]+}/reviews", getVendorReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware.Required)

	// --- Учётная запись ---
	protected.HandleFunc("/auth/me", getMe.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/auth/me", updateMe.Handle).Methods(http.MethodPatch)

	// --- Вендоры ---
	protected.HandleFunc("/vendors", createVendor.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/vendors/me", getMyVendor.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/vendors/{vendorId:[0-9]+}", updateVendor.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/vendors/{vendorId:[0-9]+}/slots", replaceVendorSlots.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/vendors/{vendorId:[0-9]+}/bookings", getVendorBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/vendors", listAdminVendors.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/vendors/{vendorId:[0-9]+}", setVendorFlags.Handle).Methods(http.MethodPatch)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/draft", initiateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Отзывы ---
	protected.HandleFunc("/vendors/{vendorId:[0-9]+}/reviews", addReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/vendors/{vendorId:[0-9]+}/reviews/{reviewId:[0-9]+}", deleteReview.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/me/reviews", getUserReviews.Handle).Methods(http.MethodGet)

	// --- Избранное ---
	if redisClient != nil {
		wishlistSvc := wishlistService.NewService(wishlistRepo.NewRepository(redisClient), vendorRepository, log)

		getWishlist := getWishlistHandler.NewHandler(wishlistSvc, log)
		checkWishlist := checkWishlistHandler.NewHandler(wishlistSvc, log)
		addToWishlist := addToWishlistHandler.NewHandler(wishlistSvc, log)
		removeFromWishlist := removeFromWishlistHandler.NewHandler(wishlistSvc, log)

		protected.HandleFunc("/wishlist", getWishlist.Handle).Methods(http.MethodGet)
		protected.HandleFunc("/wishlist/{vendorId:[0-9]+}", checkWishlist.Handle).Methods(http.MethodGet)
		protected.HandleFunc("/wishlist/{vendorId:[0-9]+}", addToWishlist.Handle).Methods(http.MethodPost)
		protected.HandleFunc("/wishlist/{vendorId:[0-9]+}", removeFromWishlist.Handle).Methods(http.MethodDelete)
	}

	// CORS оборачивает весь роутер, чтобы preflight OPTIONS не упирался в Methods()
	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(r)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
