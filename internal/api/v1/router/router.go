package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pyforge/internal/api/v1/handler"
	"pyforge/internal/config"
	"pyforge/internal/metrics"
	"pyforge/internal/middleware"
	"pyforge/internal/pgmq"
	"pyforge/internal/pubsub"
	"pyforge/internal/repository"
	"pyforge/internal/service"

	_ "pyforge/docs"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Msg("Router initialized")

	// Log environment variables for debugging
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")
	logger.Info().Str("db_connection_string_port_check", getPortFromDSN(cfg.DatabaseURL)).Msg("DB connection string port")

	// 1. Open DB connection (connection pooling)
	dsn := cfg.DatabaseURL
	// In a development environment, we want to ensure that SSL is disabled for
	// local testing. In production, the connection string should be provided
	// with the correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}
	// For non-development environments that use a transaction pooler like pgbouncer,
	// we must use the simple query protocol to avoid issues with server-side prepared statements.
	if cfg.Environment != "development" {
		if !strings.Contains(dsn, "prefer_simple_protocol") {
			separator := "&"
			if !strings.Contains(dsn, "?") {
				separator = "?"
			}
			dsn += separator + "prefer_simple_protocol=true"
		}
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal().Msgf("Failed to parse DB connection string: %v", err)
		return nil, nil, err
	}
	poolCfg.MaxConns = 25
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB connection: %v", err)
		return nil, nil, err
	}

	// Ping the database to ensure connection is valid
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal().Msgf("Failed to ping DB: %v", err)
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Resolve the JWT secret. Production deployments keep it in Secret
	// Manager; locally JWT_SECRET is used as-is.
	jwtSecret := cfg.JWTSecret
	if cfg.JWTSecretName != "" {
		secretSvc, err := service.NewSecretManagerService(context.Background(), cfg)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Secret Manager client: %v", err)
			return nil, nil, err
		}
		jwtSecret, err = secretSvc.GetJWTSecret(context.Background())
		if err != nil {
			logger.Fatal().Msgf("Failed to fetch JWT secret: %v", err)
			return nil, nil, err
		}
		if err := secretSvc.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close Secret Manager client")
		}
		logger.Info().Str("secret_name", cfg.JWTSecretName).Msg("JWT secret loaded from Secret Manager")
	}

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize Pub/Sub publisher and queue client
	pubSubPublisher, err := pubsub.NewPublisher(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub publisher: %v", err)
		return nil, nil, err
	}
	queueClient := pgmq.New(pool)

	// 5. Initialize Prometheus collectors
	metrics.Init()

	// 6. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	curriculumRepo := repository.NewCurriculumRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)
	submissionRepo := repository.NewSubmissionRepo(pool)
	dlqRepo := repository.NewDLQRepository(pool)

	sandboxClient := service.NewSandboxClient(cfg, logger)

	userSvc := service.NewUserService(userRepo)
	lessonSvc := service.NewLessonService(curriculumRepo, userRepo, progressRepo, logger)
	dashboardSvc := service.NewDashboardService(userRepo, progressRepo, curriculumRepo, logger)
	executionSvc := service.NewExecutionService(sandboxClient, curriculumRepo, submissionRepo, queueClient, cfg.ArchiveQueueName, logger)
	progressSvc := service.NewProgressService(progressRepo, curriculumRepo, pubSubPublisher, cfg.PubSubCompletionTopic, logger)
	dlqSvc := service.NewDLQService(dlqRepo)

	userHandler := handler.NewUserHandler(userSvc, validate)
	lessonHandler := handler.NewLessonHandler(lessonSvc, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, logger)
	executionHandler := handler.NewExecutionHandler(executionSvc, validate, logger)
	progressHandler := handler.NewProgressHandler(progressSvc, validate)
	dlqHandler := handler.NewDLQHandler(dlqSvc, logger)

	// 7. Initialize middleware
	requireAuth := middleware.RequireAuth(jwtSecret, logger)
	optionalAuth := middleware.OptionalAuth(jwtSecret, logger)
	isLocalDev := cfg.PubSubEmulatorHost != ""
	pubsubAuthMiddleware := middleware.PubSubAuthMiddleware(isLocalDev, cfg.DLQEndpointURL, cfg.PubSubPushServiceAccountEmail, logger)

	// 8. Create ServeMux router
	mux := http.NewServeMux()

	// Create a subrouter for API v1 with the /v1 prefix
	apiV1Mux := http.NewServeMux()
	userHandler.RegisterRoutes(apiV1Mux, requireAuth)
	dashboardHandler.RegisterRoutes(apiV1Mux, requireAuth)
	executionHandler.RegisterRoutes(apiV1Mux, requireAuth)
	progressHandler.RegisterRoutes(apiV1Mux, requireAuth)
	lessonHandler.RegisterRoutes(apiV1Mux, optionalAuth)
	dlqHandler.RegisterRoutes(apiV1Mux, pubsubAuthMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Add Swagger documentation
	mux.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, "swagger spec unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})

	// Redirect /api/* to /v1/* for backward compatibility
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	// Redirect all other root-level requests to /v1/{path}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Avoid redirect loops by checking if already under /v1, /swagger,
		// /metrics or /api
		if strings.HasPrefix(r.URL.Path, "/v1/") || strings.HasPrefix(r.URL.Path, "/swagger/") ||
			strings.HasPrefix(r.URL.Path, "/metrics") || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/v1"+r.URL.Path, http.StatusMovedPermanently)
	})

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Allow all origins for development
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), pool, nil
}

// getPortFromDSN is a helper function to extract the port from a DSN string.
// It is intended for debugging purposes.
func getPortFromDSN(dsn string) string {
	parts := strings.Split(dsn, ":")
	for i, part := range parts {
		if strings.Contains(part, "@") {
			// This part contains user:pass@host, next part is port
			if len(parts) > i+1 {
				portAndDB := strings.Split(parts[i+1], "/")
				if len(portAndDB) > 0 {
					return portAndDB[0]
				}
			}
		}
	}
	return "not_found"
}
