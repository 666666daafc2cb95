package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"ridehail/internal/api"
	"ridehail/internal/api/handlers"
	"ridehail/internal/api/middleware"
	"ridehail/internal/catalog"
	"ridehail/internal/config"
	"ridehail/internal/geo"
	"ridehail/internal/geocode"
	"ridehail/internal/repository"
	"ridehail/internal/services"
	"ridehail/internal/staticmap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the destination catalog
	repo, closeRepo, err := repository.Open(cfg.Catalog)
	if err != nil {
		log.Fatalf("Failed to open catalog source %q: %v", cfg.Catalog.Source, err)
	}
	cat, err := catalog.Load(ctx, repo)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if err := closeRepo(); err != nil {
		log.Printf("[CATALOG] close source: %v", err)
	}

	// Initialize Google Maps integrations
	var resolver geocode.Resolver
	var maps *staticmap.Builder
	if cfg.Maps.APIKey != "" {
		resolver = geocode.NewGoogleClient(cfg.Maps.APIKey, cfg.Maps.Language, cfg.Maps.GeocodeBaseURL, cfg.Maps.GeocodeTimeout)
		maps = staticmap.NewBuilder(cfg.Maps.APIKey, cfg.Maps.StaticMapBaseURL)

		if cfg.Redis.Addr != "" {
			rdb, err := geocode.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				log.Printf("[GEOCODE] Redis unavailable, caching disabled: %v", err)
			} else {
				defer rdb.Close()
				resolver = geocode.NewCachedResolver(resolver, rdb, cfg.Redis.GeocodeTTL, geo.DefaultPrecision)
				log.Printf("[GEOCODE] Caching addresses in Redis at %s", cfg.Redis.Addr)
			}
		}
	} else {
		log.Println("[GEOCODE] GOOGLE_MAPS_API_KEY not set, addresses and maps disabled")
	}

	// Initialize services
	// Quotes and recommendations share one estimator so their numbers agree.
	recommender := services.NewRecommender(cfg)
	recommendationService := services.NewRecommendationService(cat, recommender, resolver)
	rideService := services.NewRideService(recommender.Estimator(), maps)
	locationService := services.NewLocationService(resolver, maps)

	// Setup router
	router := api.NewRouter(
		handlers.NewDestinationHandler(recommendationService),
		handlers.NewRideHandler(rideService),
		handlers.NewLocationHandler(locationService),
	)

	auth := middleware.SessionAuth(cfg.Auth.JWTSecret)
	if cfg.Auth.Disabled {
		log.Println("[AUTH] Authentication disabled, all requests are anonymous")
		auth = middleware.NoAuth()
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	router.Setup(engine, auth)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Starting ridehail server on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
