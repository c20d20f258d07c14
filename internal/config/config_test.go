// Package config provides tests for the configuration loading and management.
package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv removes every configuration variable that could leak between tests.
func clearEnv() {
	vars := []string{
		"VS_ENV", "VS_PORT", "VS_ASSETS_URL",
		"VS_S3_ENDPOINT", "VS_S3_REGION", "VS_S3_BUCKET", "VS_S3_ACCESS_KEY", "VS_S3_SECRET_KEY",
		"VS_REDIS_ADDR", "VS_REDIS_PASSWORD", "VS_CACHE_TTL",
		"VS_SITE_NAME", "VS_SITE_URL", "VS_SITE_LOGO", "VS_SITE_DESCRIPTION",
		"VS_RENDER_MINIFIED", "VS_PAGE_SIZE", "VS_SEARCH_LIMIT", "VS_RELATED_LIMIT", "VS_SITEMAP_LIMIT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}

// TestLoad tests the Load function with default values.
func TestLoad(t *testing.T) {
	clearEnv()

	// Satisfy the dataset-origin requirement
	os.Setenv("VS_ASSETS_URL", "https://assets.example.com")
	t.Cleanup(clearEnv)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check default values
	if cfg.Env != "dev" {
		t.Errorf("Load() Env = %v, want %v", cfg.Env, "dev")
	}
	if cfg.Port != "8080" {
		t.Errorf("Load() Port = %v, want %v", cfg.Port, "8080")
	}
	if cfg.S3Region != "us-east-1" {
		t.Errorf("Load() S3Region = %v, want %v", cfg.S3Region, "us-east-1")
	}
	if cfg.PageSize != 200 {
		t.Errorf("Load() PageSize = %v, want %v", cfg.PageSize, 200)
	}
	if cfg.SearchLimit != 50 {
		t.Errorf("Load() SearchLimit = %v, want %v", cfg.SearchLimit, 50)
	}
	if cfg.RelatedLimit != 16 {
		t.Errorf("Load() RelatedLimit = %v, want %v", cfg.RelatedLimit, 16)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("Load() CacheTTL = %v, want %v", cfg.CacheTTL, time.Hour)
	}
	if cfg.SiteName != "VideoStream" {
		t.Errorf("Load() SiteName = %v, want %v", cfg.SiteName, "VideoStream")
	}
}

// TestLoadWithEnv tests the Load function with environment variables set.
func TestLoadWithEnv(t *testing.T) {
	clearEnv()

	os.Setenv("VS_ENV", "test")
	os.Setenv("VS_PORT", "9090")
	os.Setenv("VS_ASSETS_URL", "https://assets.example.com")
	os.Setenv("VS_S3_ENDPOINT", "http://localhost:9000")
	os.Setenv("VS_S3_REGION", "us-west-2")
	os.Setenv("VS_S3_BUCKET", "test-bucket")
	os.Setenv("VS_REDIS_ADDR", "localhost:6379")
	os.Setenv("VS_CACHE_TTL", "30m")
	os.Setenv("VS_SITE_NAME", "TestStream")
	os.Setenv("VS_RENDER_MINIFIED", "true")
	os.Setenv("VS_PAGE_SIZE", "100")
	os.Setenv("VS_SEARCH_LIMIT", "25")

	t.Cleanup(clearEnv)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "test" {
		t.Errorf("Load() Env = %v, want %v", cfg.Env, "test")
	}
	if cfg.Port != "9090" {
		t.Errorf("Load() Port = %v, want %v", cfg.Port, "9090")
	}
	if cfg.AssetsURL != "https://assets.example.com" {
		t.Errorf("Load() AssetsURL = %v", cfg.AssetsURL)
	}
	if cfg.S3Endpoint != "http://localhost:9000" {
		t.Errorf("Load() S3Endpoint = %v", cfg.S3Endpoint)
	}
	if cfg.S3Region != "us-west-2" {
		t.Errorf("Load() S3Region = %v, want %v", cfg.S3Region, "us-west-2")
	}
	if cfg.S3Bucket != "test-bucket" {
		t.Errorf("Load() S3Bucket = %v, want %v", cfg.S3Bucket, "test-bucket")
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Load() RedisAddr = %v", cfg.RedisAddr)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("Load() CacheTTL = %v, want %v", cfg.CacheTTL, 30*time.Minute)
	}
	if cfg.SiteName != "TestStream" {
		t.Errorf("Load() SiteName = %v, want %v", cfg.SiteName, "TestStream")
	}
	if !cfg.RenderMinified {
		t.Errorf("Load() RenderMinified = false, want true")
	}
	if cfg.PageSize != 100 {
		t.Errorf("Load() PageSize = %v, want %v", cfg.PageSize, 100)
	}
	if cfg.SearchLimit != 25 {
		t.Errorf("Load() SearchLimit = %v, want %v", cfg.SearchLimit, 25)
	}
}

// TestLoadRequiresOrigin tests that Load fails when neither dataset origin is configured.
func TestLoadRequiresOrigin(t *testing.T) {
	clearEnv()
	t.Cleanup(clearEnv)

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error when no dataset origin is configured")
	}
}

// TestLoadRejectsBadTTL tests that an unparseable cache TTL is an error.
func TestLoadRejectsBadTTL(t *testing.T) {
	clearEnv()
	os.Setenv("VS_ASSETS_URL", "https://assets.example.com")
	os.Setenv("VS_CACHE_TTL", "soon")
	t.Cleanup(clearEnv)

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for invalid VS_CACHE_TTL")
	}
}
