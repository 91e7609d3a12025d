package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	APIURL           string
	GatewayTimeout   time.Duration
	GatewayUserAgent string
	DatabaseDSN      string
	SessionTTL       time.Duration
	CookieSecure     bool
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxBodyBytes     int64
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadConfig() Config {
	return Config{
		Addr:             getEnv("APP_ADDR", ":8081"),
		APIURL:           getEnv("BOOKSHOP_API_URL", "http://localhost:8080"),
		GatewayTimeout:   getDuration("GATEWAY_TIMEOUT", 0),
		GatewayUserAgent: getEnv("GATEWAY_USER_AGENT", "bookconsole/1.0"),
		DatabaseDSN:      os.Getenv("DB_DSN"),
		SessionTTL:       getDuration("SESSION_TTL", 12*time.Hour),
		CookieSecure:     getBool("SESSION_COOKIE_SECURE", false),
		RateLimitRPS:     getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:   getInt("RATE_LIMIT_BURST", 40),
		MaxBodyBytes:     int64(getInt("MAX_BODY_BYTES", 1<<20)),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %g", key, v, def)
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
