package main

import (
	"log"

	"github.com/bataanroutes/route-backend-go/internal/api"
	"github.com/bataanroutes/route-backend-go/internal/config"
	"github.com/bataanroutes/route-backend-go/internal/floodzone"
	"github.com/bataanroutes/route-backend-go/internal/handler"
	"github.com/bataanroutes/route-backend-go/internal/observability"
	"github.com/bataanroutes/route-backend-go/internal/provider"
	"github.com/bataanroutes/route-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	// Flood zones are fatal at startup: the overlay is the whole point
	store, err := floodzone.Load(cfg.FloodZonesPath)
	if err != nil {
		log.Fatal("Failed to load flood zones: ", err)
	}
	log.Printf("Loaded %d flood zones from %s", store.Count(), cfg.FloodZonesPath)

	if cfg.ORSAPIKey == "" {
		log.Println("ORS_API_KEY not set, route requests will fail until it is configured")
	}

	metrics := observability.NewMetrics(nil)

	ors := provider.NewORSClient(cfg.ORSAPIKey, cfg.ORSMaxConcurrency, metrics)
	cached, err := provider.NewCachedProvider(ors, cfg.RouteCacheSize, metrics)
	if err != nil {
		log.Fatal("Failed to initialize route cache: ", err)
	}

	svc := service.NewRouteService(cached, store, metrics)
	router := api.SetupRouter(cfg, handler.NewRouteHandler(svc), handler.NewFloodZoneHandler(store), metrics)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
