package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocksuperhero/dashboard/internal/client"
	"github.com/stocksuperhero/dashboard/internal/config"
	"github.com/stocksuperhero/dashboard/internal/database"
	"github.com/stocksuperhero/dashboard/internal/events"
	"github.com/stocksuperhero/dashboard/internal/handler"
	"github.com/stocksuperhero/dashboard/internal/logging"
	"github.com/stocksuperhero/dashboard/internal/middleware"
	"github.com/stocksuperhero/dashboard/internal/repository"
	"github.com/stocksuperhero/dashboard/internal/search"
	"github.com/stocksuperhero/dashboard/internal/service"
	"github.com/stocksuperhero/dashboard/internal/session"
	"github.com/stocksuperhero/dashboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	// Optional .env for local runs
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.Connect(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis client
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = setupRedis(cfg.Redis, logger)
		if err != nil {
			logger.Error("Failed to set up Redis", zap.Error(err))
			// Continue without Redis
		}
	}

	// Initialize Kafka producer
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID, logger)
		logger.Info("Initialized Kafka producer", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db, logger)
	priceRepo := repository.NewPriceRepository(db, logger)
	similarityRepo := repository.NewSimilarityRepository(db, logger)
	accessKeyRepo := repository.NewAccessKeyRepository(db, logger)
	watchlistRepo := repository.NewWatchlistRepository(db, logger)

	// Session store
	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, cfg.Redis.SessionPrefix, cfg.Auth.SessionDuration, logger)
	} else {
		sessions = session.NewMemoryStore(cfg.Auth.SessionDuration)
	}

	logos, err := storage.NewLogoResolver(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to set up logo storage", zap.Error(err))
	}

	index, err := search.NewIndex()
	if err != nil {
		logger.Fatal("Failed to create search index", zap.Error(err))
	}
	defer index.Close()

	// The snapshot cache is only used when caching is enabled
	snapshotRedis := redisClient
	if !cfg.Cache.Enabled {
		snapshotRedis = nil
	}

	// Initialize services
	companyService := service.NewCompanyService(
		companyRepo,
		similarityRepo,
		index,
		logos,
		snapshotRedis,
		cfg.Cache.SnapshotTTL,
		logger,
	)
	authService := service.NewAuthService(
		accessKeyRepo,
		sessions,
		publisher,
		cfg.Auth,
		cfg.Kafka.Topics["login"],
		logger,
	)
	filterService := service.NewFilterService(sessions, companyService, logger)
	chartService := service.NewChartService(priceRepo, companyService, cfg.Gauge, cfg.ReferenceAreas, logger)
	watchlistService := service.NewWatchlistService(
		watchlistRepo,
		companyService,
		publisher,
		cfg.Kafka.Topics["watchlist"],
		logger,
	)

	var quoteService *service.QuoteService
	if cfg.Quotes.Enabled {
		quoteService = service.NewQuoteService(client.NewQuoteClient(cfg.Quotes.Timeout, logger), companyService)
	} else {
		quoteService = service.NewQuoteService(nil, companyService)
	}

	// Warm the company snapshot so the first request does not pay for it
	if _, err := companyService.Records(context.Background()); err != nil {
		logger.Warn("Failed to preload companies", zap.Error(err))
	}

	var responseCache *middleware.ResponseCache
	if redisClient != nil && cfg.Cache.Enabled {
		responseCache = middleware.NewResponseCache(redisClient, middleware.CacheConfig{
			Duration:  cfg.Cache.ChartTTL,
			PrefixKey: "dashboard-cache",
		}, logger)
	}

	// Initialize handlers
	var flusher handler.CacheFlusher
	if responseCache != nil {
		flusher = responseCache
	}
	authHandler := handler.NewAuthHandler(authService, logger)
	filterHandler := handler.NewFilterHandler(filterService, logger)
	companyHandler := handler.NewCompanyHandler(filterService, companyService, flusher, logger)
	symbolHandler := handler.NewSymbolHandler(chartService, quoteService, logger)
	chartHandler := handler.NewChartHandler(filterService, chartService, logger)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService, logger)

	// Set up HTTP server with Gin
	router := setupRouter(
		cfg,
		authHandler,
		filterHandler,
		companyHandler,
		symbolHandler,
		chartHandler,
		watchlistHandler,
		authService,
		redisClient,
		responseCache,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := publisher.Close(); err != nil {
		logger.Warn("Failed to close event publisher", zap.Error(err))
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited properly")
}

// setupRedis connects to Redis and checks the connection
func setupRedis(cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	redisOptions, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Plain host:port
		redisOptions = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	rdb := redis.NewClient(redisOptions)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, err
	}

	logger.Info("Connected to Redis", zap.String("addr", redisOptions.Addr))
	return rdb, nil
}

func setupRouter(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	filterHandler *handler.FilterHandler,
	companyHandler *handler.CompanyHandler,
	symbolHandler *handler.SymbolHandler,
	chartHandler *handler.ChartHandler,
	watchlistHandler *handler.WatchlistHandler,
	authService *service.AuthService,
	redisClient *redis.Client,
	responseCache *middleware.ResponseCache,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				status = "degraded"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": status})
	})

	api := router.Group("/api/v1")

	// Login is rate limited per client IP
	loginChain := []gin.HandlerFunc{}
	if cfg.RateLimit.Enabled {
		if redisClient != nil {
			loginChain = append(loginChain, middleware.RedisRateLimit(redisClient, middleware.RedisRateLimitConfig{
				RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
				BurstSize:         cfg.RateLimit.BurstSize,
				KeyPrefix:         "login:",
			}, logger))
		} else {
			loginChain = append(loginChain, middleware.RateLimit(
				middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize),
			))
		}
	}
	api.POST("/auth/login", append(loginChain, authHandler.Login)...)

	protected := api.Group("")
	protected.Use(middleware.SessionAuth(authService, logger))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		// Filters
		protected.GET("/filters", filterHandler.GetFilters)
		protected.PUT("/filters/:dimension", filterHandler.SetFilter)
		protected.DELETE("/filters", filterHandler.ClearFilters)
		protected.PUT("/selection", filterHandler.SelectSymbol)

		// Companies
		protected.GET("/companies", companyHandler.ListCompanies)
		protected.GET("/companies/search", companyHandler.SearchCompanies)
		protected.POST("/companies/refresh", companyHandler.RefreshCompanies)
		protected.GET("/companies/:symbol", companyHandler.GetCompany)
		protected.GET("/companies/:symbol/similar", companyHandler.GetSimilar)

		// Per-symbol detail, cacheable across sessions
		symbols := protected.Group("/symbols/:symbol")
		if responseCache != nil {
			symbols.Use(responseCache.Handler())
		}
		symbols.GET("/prices", symbolHandler.GetPrices)
		symbols.GET("/charts/price", symbolHandler.GetPriceChart)
		symbols.GET("/charts/price.svg", symbolHandler.GetPriceSVG)
		symbols.GET("/charts/macd", symbolHandler.GetMACD)
		protected.GET("/symbols/:symbol/quote", symbolHandler.GetQuote)

		// View-wide charts
		protected.GET("/charts/ps", chartHandler.GetPSBars)
		protected.GET("/charts/ps.svg", chartHandler.GetPSBarSVG)
		protected.GET("/charts/gauge", chartHandler.GetGauge)

		// Watchlist
		protected.GET("/watchlist", watchlistHandler.GetWatchlist)
		protected.PUT("/watchlist", watchlistHandler.ReplaceWatchlist)
		protected.POST("/watchlist/:symbol", watchlistHandler.AddSymbol)
		protected.DELETE("/watchlist/:symbol", watchlistHandler.RemoveSymbol)
		protected.GET("/widgets/ticker-tape", watchlistHandler.GetTickerTape)
	}

	return router
}
