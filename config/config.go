// Package config reads server settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"justlaw-backend/storage"
)

type Config struct {
	Port               string
	DatabaseURL        string // empty disables search logs and saved uploads
	GeminiAPIKey       string
	GeminiModel        string
	GeminiTemperature  float32
	BranchTimeout      time.Duration
	FallbackTimeout    time.Duration
	ScraperUserAgent   string
	ScraperHTTPTimeout time.Duration
	Storage            storage.StorageConfig
}

func Load() Config {
	return Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTemperature:  getenvFloat32("GEMINI_TEMPERATURE", 0.3),
		BranchTimeout:      getenvSeconds("SEARCH_SOURCE_TIMEOUT_SECONDS", 8),
		FallbackTimeout:    getenvSeconds("SEARCH_FALLBACK_TIMEOUT_SECONDS", 30),
		ScraperUserAgent:   os.Getenv("SCRAPER_USER_AGENT"),
		ScraperHTTPTimeout: getenvSeconds("SCRAPER_HTTP_TIMEOUT_SECONDS", 30),
		Storage: storage.StorageConfig{
			Type:         storage.StorageType(getenv("STORAGE_TYPE", string(storage.StorageTypeLocal))),
			LocalPath:    getenv("STORAGE_LOCAL_PATH", "./storage/files"),
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     getenv("AWS_REGION", "eu-central-1"),
			S3Endpoint:   os.Getenv("AWS_S3_ENDPOINT"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvSeconds(k string, fallback int) time.Duration {
	n := getenvInt(k, fallback)
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

func getenvFloat32(k string, fallback float32) float32 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fallback
	}
	return float32(f)
}
