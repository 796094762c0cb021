package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/tastebook/tastebook/docs"
	cataloghttp "github.com/tastebook/tastebook/internal/catalog/delivery/http"
	catalogrepo "github.com/tastebook/tastebook/internal/catalog/repository"
	membershiprepo "github.com/tastebook/tastebook/internal/membership/repository"
	recipehttp "github.com/tastebook/tastebook/internal/recipe/delivery/http"
	reciperepo "github.com/tastebook/tastebook/internal/recipe/repository"
	"github.com/tastebook/tastebook/internal/recipe/shortlink"
	userhttp "github.com/tastebook/tastebook/internal/user/delivery/http"
	userrepo "github.com/tastebook/tastebook/internal/user/repository"
	"github.com/tastebook/tastebook/kafka"
	"github.com/tastebook/tastebook/pkg/database"
	"github.com/tastebook/tastebook/pkg/imagestore"
	"github.com/tastebook/tastebook/pkg/logger"
	"github.com/tastebook/tastebook/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "tastebook-api")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting tastebook API")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "tastebook"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Initialize repositories and run migrations
	users := userrepo.NewGormUserRepository(db)
	ingredients := catalogrepo.NewGormIngredientRepository(db)
	tags := catalogrepo.NewGormTagRepository(db)
	memberships := membershiprepo.NewGormMembershipRepository(db)
	recipes := reciperepo.NewGormRecipeRepositoryWithTracing(db)

	for _, migrate := range []func() error{
		users.AutoMigrate,
		ingredients.AutoMigrate,
		memberships.AutoMigrate,
		recipes.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Media storage for recipe images and avatars
	mediaRoot := getEnv("MEDIA_ROOT", "./media")
	images := imagestore.New(mediaRoot)

	// Redis backs short links; the API degrades without it
	var shortlinks *shortlink.Store
	redisAddr := getEnv("REDIS_ADDR", "")
	if redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unavailable, short links disabled")
		} else {
			shortlinks = shortlink.NewStore(redisClient)
			logger.Logger.Info().Str("addr", redisAddr).Msg("Short link store initialized")
		}
	}

	// Kafka publisher for recipe activity; optional
	var publisher *kafka.Publisher
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	if kafkaBrokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(kafkaBrokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, activity events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	baseURL := getEnv("BASE_URL", "http://localhost:8080")

	// Initialize handlers
	userHandler := userhttp.NewUserHandler(users, memberships, recipes, images)
	catalogHandler := cataloghttp.NewCatalogHandler(ingredients, tags)
	recipeHandler := recipehttp.NewRecipeHandler(recipes, ingredients, tags, memberships, images, publisher, shortlinks, baseURL)

	// Setup router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	recipeHandler.RegisterRoutes(router)

	// Swagger UI
	recipehttp.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Uploaded media
	router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(mediaRoot))))

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: c.Handler(otelhttp.NewHandler(router, "tastebook-api")),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
