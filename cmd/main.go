package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sbilibin2017/gw-social-network/docs"
	"github.com/sbilibin2017/gw-social-network/internal/handlers"
	"github.com/sbilibin2017/gw-social-network/internal/jwt"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/mailer"
	"github.com/sbilibin2017/gw-social-network/internal/middlewares"
	"github.com/sbilibin2017/gw-social-network/internal/migrations"
	"github.com/sbilibin2017/gw-social-network/internal/repositories"
	"github.com/sbilibin2017/gw-social-network/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// User store drivers
const (
	storagePostgres = "postgres"
	storageMongo    = "mongo"
)

// config holds every setting read from the environment.
type config struct {
	AppHost, AppPort, LogLevel string
	AppTitle, AppVersion       string
	BackendURL, FrontendURL    string
	StorageDriver              string

	PGHost                         string
	PGPort                         int
	PGUser, PGPassword, PGDB       string
	PGMaxOpenConns, PGMaxIdleConns int

	MongoURI, MongoDB string

	RedisHost                        string
	RedisPort, RedisDB               int
	RedisPassword                    string
	RedisPoolSize, RedisMinIdleConns int
	RedisExp                         time.Duration

	KafkaBrokers   []string
	KafkaMailTopic string

	SessionSecret           string
	SessionExp              time.Duration
	EmailConfirmationSecret string
	EmailConfirmationExp    time.Duration
	ResetPasswordSecret     string
	ResetPasswordExp        time.Duration
}

// @title gw-social-network API
// @version 1.0.0
// @description Social network backend: accounts, tags, posts, groups and invitations
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, storage, cache, mail and token configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var err error
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return n
	}
	getSeconds := func(key, defaultValue string) time.Duration {
		return time.Duration(getInt(key, defaultValue)) * time.Second
	}

	cfg := &config{
		// Application config
		AppHost:       getEnv("APP_HOST", "localhost"),
		AppPort:       getEnv("APP_PORT", "8080"),
		LogLevel:      getEnv("APP_LOG_LEVEL", "info"),
		AppTitle:      getEnv("APP_TITLE", "gw-social-network"),
		AppVersion:    getEnv("APP_VERSION", "1.0.0"),
		BackendURL:    getEnv("BACKEND_URL", "http://localhost:8080/api"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		StorageDriver: getEnv("STORAGE_DRIVER", storagePostgres),

		// PostgreSQL config
		PGHost:         getEnv("POSTGRES_HOST", "localhost"),
		PGPort:         getInt("POSTGRES_PORT", "5432"),
		PGUser:         getEnv("POSTGRES_USER", "user"),
		PGPassword:     getEnv("POSTGRES_PASSWORD", "password"),
		PGDB:           getEnv("POSTGRES_DB", "database"),
		PGMaxOpenConns: getInt("POSTGRES_MAX_OPEN_CONNS", "16"),
		PGMaxIdleConns: getInt("POSTGRES_MAX_IDLE_CONNS", "8"),

		// MongoDB config
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "social"),

		// Redis config
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getInt("REDIS_PORT", "6379"),
		RedisDB:           getInt("REDIS_DB", "0"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisPoolSize:     getInt("REDIS_POOL_SIZE", "10"),
		RedisMinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", "2"),
		RedisExp:          getSeconds("REDIS_EXP_SECOND", "300"),

		// Kafka config
		KafkaBrokers:   strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaMailTopic: getEnv("KAFKA_MAIL_TOPIC", "mail-outbox"),

		// JWT config
		SessionSecret:           getEnv("JWT_SECRET_KEY", "my_super_secret_key"),
		SessionExp:              getSeconds("JWT_EXP_SECOND", "31536000"),
		EmailConfirmationSecret: getEnv("EMAIL_CONFIRMATION_SECRET", "email_confirmation_secret"),
		EmailConfirmationExp:    getSeconds("EMAIL_CONFIRMATION_EXP_SECOND", "3600"),
		ResetPasswordSecret:     getEnv("RESET_PASSWORD_SECRET", "reset_password_secret"),
		ResetPasswordExp:        getSeconds("RESET_PASSWORD_EXP_SECOND", "3600"),
	}
	if err != nil {
		return nil, err
	}

	if cfg.StorageDriver != storagePostgres && cfg.StorageDriver != storageMongo {
		return nil, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", cfg.StorageDriver)
	}
	return cfg, nil
}

// newTokens builds the token issuer and rejects shared secrets.
func newTokens(cfg *config) (*jwt.JWT, error) {
	tokens := jwt.New(
		jwt.WithSecretKey(jwt.Session, cfg.SessionSecret),
		jwt.WithExpiration(jwt.Session, cfg.SessionExp),
		jwt.WithSecretKey(jwt.EmailConfirmation, cfg.EmailConfirmationSecret),
		jwt.WithExpiration(jwt.EmailConfirmation, cfg.EmailConfirmationExp),
		jwt.WithSecretKey(jwt.PasswordReset, cfg.ResetPasswordSecret),
		jwt.WithExpiration(jwt.PasswordReset, cfg.ResetPasswordExp),
	)
	if err := tokens.CheckSecrets(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// routerDeps is everything the HTTP surface needs.
type routerDeps struct {
	AppTitle, AppVersion string
	Tokens               middlewares.Tokener
	DB                   *sqlx.DB
	Accounts             *services.AccountService
	Tags                 *services.TagService
	Posts                *services.PostService
	Groups               *services.GroupService
	Invitations          *services.InvitationService
}

// newRouter mounts every route under /api and the Swagger UI.
func newRouter(deps routerDeps) http.Handler {
	auth := middlewares.AuthMiddleware(deps.Tokens)
	tx := middlewares.TxMiddleware(deps.DB)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api", func(r chi.Router) {
		handlers.RegisterRootHandlers(r, deps.AppTitle, deps.AppVersion)
		handlers.RegisterAuthHandlers(r, deps.Accounts)
		handlers.RegisterUserHandlers(r, deps.Accounts, auth)
		handlers.RegisterTagHandlers(r, deps.Tags, auth)
		handlers.RegisterPostHandlers(r, deps.Posts, auth, tx)
		handlers.RegisterGroupHandlers(r, deps.Groups, auth, tx)
		handlers.RegisterInvitationHandlers(r, deps.Invitations, auth, tx)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	return r
}

// run initializes the logger, stores, cache, mail outbox and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	log := logger.Log
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	tokens, err := newTokens(cfg)
	if err != nil {
		return err
	}

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	// Select the user store
	var (
		userReader services.UserReader
		userWriter services.UserWriter
	)
	switch cfg.StorageDriver {
	case storageMongo:
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return fmt.Errorf("MongoDB connection error: %w", err)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Errorw("MongoDB disconnect error", "error", err)
			}
		}()
		if err := client.Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB ping failed: %w", err)
		}

		users := repositories.NewUserMongoRepository(client.Database(cfg.MongoDB))
		if err := users.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("MongoDB indexes: %w", err)
		}
		userReader, userWriter = users, users
		log.Infof("Users stored in MongoDB database %s", cfg.MongoDB)
	default:
		userReader = repositories.NewUserReadRepository(db)
		userWriter = repositories.NewUserWriteRepository(db)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Mail outbox
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaMailTopic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warnw("Mail outbox delivery failed", "messages", len(messages), "error", err)
			}
		},
	}
	publisher := mailer.NewPublisher(writer)
	defer publisher.Close()

	// Initialize repositories
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)
	profileCache := repositories.NewProfileCacheRepository(rdb, cfg.RedisExp)
	tagRepo := repositories.NewTagRepository(db, txGetter)
	postRepo := repositories.NewPostRepository(db, txGetter)
	groupRepo := repositories.NewGroupRepository(db, txGetter)
	invitationRepo := repositories.NewInvitationRepository(db, txGetter)

	// Initialize services
	accounts := services.NewAccountService(userReader, userWriter, tokens, publisher, profileCache,
		cfg.BackendURL, cfg.FrontendURL)

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	docs.SwaggerInfo.Version = cfg.AppVersion

	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: newRouter(routerDeps{
			AppTitle:    cfg.AppTitle,
			AppVersion:  cfg.AppVersion,
			Tokens:      tokens,
			DB:          db,
			Accounts:    accounts,
			Tags:        services.NewTagService(tagRepo),
			Posts:       services.NewPostService(postRepo, tagRepo, groupRepo),
			Groups:      services.NewGroupService(groupRepo),
			Invitations: services.NewInvitationService(invitationRepo, groupRepo, userReader),
		}),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
