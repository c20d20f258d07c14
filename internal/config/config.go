// Package config provides configuration loading and management for the edge renderer.
// It handles environment variable parsing and provides default values for all settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// init loads environment variables from .env files during package initialization.
// In development, it loads .env and .env.local files if they exist.
// In production, it relies solely on system environment variables.
// The loading order ensures that system environment variables take precedence over .env files.
func init() {
	// godotenv.Load() does not override already-set environment variables,
	// preserving OS env > .env precedence

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
		}
	}

	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Load(".env.local"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env.local file: %v\n", err)
		}
	}
}

// Config captures environment-driven settings for the edge renderer.
type Config struct {
	Env  string // Deployment environment (dev, staging, prod)
	Port string // HTTP server port

	// Dataset origin. Exactly one backend is selected: when S3Bucket is set
	// the dataset is read from the bucket, otherwise AssetsURL must point at
	// the static origin serving /data/ documents over HTTP.
	AssetsURL   string // Base URL of the static asset origin
	S3Endpoint  string // S3-compatible storage endpoint
	S3Region    string // S3 region
	S3Bucket    string // S3 bucket holding the dataset
	S3AccessKey string // S3 access key
	S3SecretKey string // S3 secret key

	// Response cache
	RedisAddr     string        // Redis address for the edge response cache (empty disables caching)
	RedisPassword string        // Redis password
	CacheTTL      time.Duration // Fresh window for cached rendered pages

	// Site identity, injected into the renderer as an immutable value
	SiteName        string // Site display name
	SiteURL         string // Public origin used for canonical URLs and sitemaps
	SiteLogo        string // Absolute or root-relative logo URL
	SiteDescription string // Default meta description

	// Rendering and ranking bounds
	RenderMinified bool // Emit the compact page variant
	PageSize       int  // Records per precomputed listing page
	SearchLimit    int  // Result cap for search mode
	RelatedLimit   int  // Result cap for related-video mode
	SitemapLimit   int  // Entry cap for the video sitemap
}

// Default configuration values used when environment variables are not set
const (
	defaultPort         = "8080"
	defaultS3Region     = "us-east-1"
	defaultEnv          = "dev"
	defaultCacheTTL     = time.Hour
	defaultPageSize     = 200
	defaultSearchLimit  = 50
	defaultRelatedLimit = 16
	defaultSitemapLimit = 1000
)

// Load reads environment variables and produces a Config suitable for wiring the service.
// It handles both required and optional configuration parameters, providing defaults where appropriate.
// Returns an error if required parameters are missing or invalid.
func Load() (Config, error) {
	cfg := Config{
		Env:             getEnv("VS_ENV", defaultEnv),
		Port:            getEnv("VS_PORT", defaultPort),
		AssetsURL:       os.Getenv("VS_ASSETS_URL"),
		S3Endpoint:      os.Getenv("VS_S3_ENDPOINT"),
		S3Region:        getEnv("VS_S3_REGION", defaultS3Region),
		S3Bucket:        os.Getenv("VS_S3_BUCKET"),
		S3AccessKey:     os.Getenv("VS_S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("VS_S3_SECRET_KEY"),
		RedisAddr:       os.Getenv("VS_REDIS_ADDR"),
		RedisPassword:   os.Getenv("VS_REDIS_PASSWORD"),
		CacheTTL:        defaultCacheTTL,
		SiteName:        getEnv("VS_SITE_NAME", "VideoStream"),
		SiteURL:         getEnv("VS_SITE_URL", "http://localhost:8080"),
		SiteLogo:        getEnv("VS_SITE_LOGO", "/images/apple-touch-icon.png"),
		SiteDescription: getEnv("VS_SITE_DESCRIPTION", "Situs streaming video viral terbaru dan terlengkap"),
		RenderMinified:  parseBool(os.Getenv("VS_RENDER_MINIFIED")),
		PageSize:        getEnvInt("VS_PAGE_SIZE", defaultPageSize),
		SearchLimit:     getEnvInt("VS_SEARCH_LIMIT", defaultSearchLimit),
		RelatedLimit:    getEnvInt("VS_RELATED_LIMIT", defaultRelatedLimit),
		SitemapLimit:    getEnvInt("VS_SITEMAP_LIMIT", defaultSitemapLimit),
	}

	if ttl, exists := os.LookupEnv("VS_CACHE_TTL"); exists {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return cfg, fmt.Errorf("invalid VS_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}

	// Validate required parameters
	if cfg.AssetsURL == "" && cfg.S3Bucket == "" {
		return cfg, fmt.Errorf("one of VS_ASSETS_URL or VS_S3_BUCKET is required")
	}

	if cfg.PageSize <= 0 {
		return cfg, fmt.Errorf("VS_PAGE_SIZE must be positive")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value, returning a fallback if not set or empty
func getEnv(key, fallback string) string {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable, returning a fallback
// if not set or unparseable
func getEnvInt(key string, fallback int) int {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// parseBool converts a string to a boolean value, returning false if parsing fails
func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
