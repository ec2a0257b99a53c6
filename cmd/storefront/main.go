package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/walex4242/godheranca-storefront/internal/cache"
	"github.com/walex4242/godheranca-storefront/internal/geocode"
	h "github.com/walex4242/godheranca-storefront/internal/http"
	"github.com/walex4242/godheranca-storefront/internal/order"
	"github.com/walex4242/godheranca-storefront/internal/pricing"
	"github.com/walex4242/godheranca-storefront/internal/repository"
	"github.com/walex4242/godheranca-storefront/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	GeoProvider     string
	MapboxToken     string
	GoogleAPIKey    string
	RadiusKm        float64
	DeliveryFeeCap  float64
	StorePhone      string
	SessionTTL      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		GeoProvider:     getEnv("GEO_PROVIDER", "mapbox"),
		MapboxToken:     getEnv("MAPBOX_TOKEN", ""),
		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		RadiusKm:        getEnvFloat("RADIUS_KM", 20),
		DeliveryFeeCap:  getEnvFloat("DELIVERY_FEE_CAP", 0),
		StorePhone:      getEnv("STORE_PHONE", ""),
		SessionTTL:      getEnvDuration("SESSION_TTL", service.DefaultSessionTTL),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("invalid %s=%q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := loadConfig()
	ctx := context.Background()

	// MongoDB holds the store catalog.
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)

	repo := repository.NewMongoRepository(mongoDB)
	if err := repo.CreateIndexes(ctx); err != nil {
		log.Printf("creating indexes failed: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")
	redisCache := cache.NewRedisCache(redisClient)

	// External geo provider, wrapped in a circuit breaker so a flapping
	// upstream cannot stall every store listing.
	var provider geocode.Provider
	switch cfg.GeoProvider {
	case "google":
		if cfg.GoogleAPIKey == "" {
			log.Fatal("GOOGLE_API_KEY is required when GEO_PROVIDER=google")
		}
		provider = geocode.NewGoogleClient(cfg.GoogleAPIKey)
	case "mapbox":
		if cfg.MapboxToken == "" {
			log.Fatal("MAPBOX_TOKEN is required when GEO_PROVIDER=mapbox")
		}
		provider = geocode.NewMapboxClient(cfg.MapboxToken)
	default:
		log.Fatalf("unknown GEO_PROVIDER %q (want mapbox or google)", cfg.GeoProvider)
	}
	geo := geocode.NewBreakerProvider(cfg.GeoProvider, provider)

	var publisher order.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = order.NewKafkaPublisher(cfg.KafkaBrokers...)
		log.Printf("Publishing order events to Kafka at %s", strings.Join(cfg.KafkaBrokers, ","))
	} else {
		publisher = order.LogPublisher{}
		log.Printf("KAFKA_BROKERS not set, order events go to the log")
	}
	defer publisher.Close()

	pricingCfg := pricing.DefaultConfig()
	pricingCfg.DeliveryFeeCap = cfg.DeliveryFeeCap
	pricer := pricing.NewEngine(pricingCfg)

	sessions := service.NewSessionStore(cfg.SessionTTL)
	defer sessions.Close()

	storefront := service.NewStorefrontService(service.Deps{
		Repo:      repo,
		Coords:    redisCache,
		Addresses: redisCache,
		Geocoder:  geo,
		Router:    geo,
		Pricer:    pricer,
		Publisher: publisher,
		Sessions:  sessions,
	}, service.Config{
		DefaultRadiusKm:   cfg.RadiusKm,
		DefaultStorePhone: cfg.StorePhone,
	})

	storeHandler := h.NewStoreHandler(storefront, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(storefront, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(storefront, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", storeHandler.ListNearby)
			r.Get("/{store_id}/items", storeHandler.Items)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.SetQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/address", checkoutHandler.CachedAddress)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
