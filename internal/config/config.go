package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service configuration
type Config struct {
	Port              string
	ORSAPIKey         string
	FloodZonesPath    string
	ORSMaxConcurrency int
	RouteCacheSize    int
}

// Load reads configuration from a .env file (when present) and the
// environment. Only the ORS key has no default; without it the service
// still starts but every provider call fails.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	floodZonesPath := os.Getenv("FLOOD_ZONES_PATH")
	if floodZonesPath == "" {
		floodZonesPath = "./data/flood_prone.geojson"
	}

	return &Config{
		Port:              port,
		ORSAPIKey:         os.Getenv("ORS_API_KEY"),
		FloodZonesPath:    floodZonesPath,
		ORSMaxConcurrency: intEnv("ORS_MAX_CONCURRENCY", 1),
		RouteCacheSize:    intEnv("ROUTE_CACHE_SIZE", 256),
	}
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		log.Printf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}
