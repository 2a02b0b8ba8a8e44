package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	BookingAPIBase    string
	BookingAPIRPS     int
	BookingAPITimeout time.Duration

	CacheTTL   time.Duration
	ScratchTTL time.Duration
}

// Load reads the environment. A .env file in the working directory, if any,
// fills in variables that are not already set.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		LogLevel:          env("LOG_LEVEL", "info"),
		HTTPAddr:          env("HTTP_ADDR", ":8080"),
		MetricsAddr:       env("METRICS_ADDR", ":9100"),
		MySQLDSN:          env("MYSQL_DSN", "root:root@tcp(localhost:3306)/cleaning?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:         env("REDIS_ADDR", "localhost:6379"),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		BookingAPIBase:    env("BOOKING_API_BASE_URL", "http://localhost:5000"),
		BookingAPIRPS:     atoi("BOOKING_API_RPS", 5),
		BookingAPITimeout: time.Duration(atoi("BOOKING_API_TIMEOUT_SECONDS", 20)) * time.Second,
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		ScratchTTL:        time.Duration(atoi("SCRATCH_TTL_SECONDS", 86400)) * time.Second,
	}
	if c.BookingAPITimeout <= 0 {
		log.Warn().Msg("BOOKING_API_TIMEOUT_SECONDS must be positive, using 20")
		c.BookingAPITimeout = 20 * time.Second
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
