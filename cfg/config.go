package cfg

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type HTTPConfig struct {
	Port         string
	CORSOrigins  []string
	MaxBodyBytes int64
}

// ProviderConfig holds the live flight-offer credentials. Both must be set
// for live pricing.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

func (p ProviderConfig) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

type PricingConfig struct {
	FallbackFlightPrice int64
	Currency            string
	NightlyBudget       int64
	NightlyMid          int64
	NightlyLuxury       int64
	DefaultLocationCode string
}

type StoreConfig struct {
	Driver     string
	SQLitePath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	AppEnv        string
	HTTP          HTTPConfig
	Provider      ProviderConfig
	Pricing       PricingConfig
	Store         StoreConfig
	RedisConfig   RedisConfig
	SnowflakeNode int64
	Observability ObservabilityConfig
}

// Load reads an optional .env file and then the process environment.
// Every invalid value is reported, joined into one error.
func Load() (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := getEnv("APP_ENV", "development")

	timeoutMs := intEnv("PROVIDER_TIMEOUT_MS", 5000, &errs)
	if timeoutMs <= 0 {
		errs = append(errs, errors.New("invalid env: PROVIDER_TIMEOUT_MS must be positive"))
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", StoreSQLite))
	switch driver {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		errs = append(errs, errors.New("invalid env: STORE_DRIVER must be sqlite, redis or memory"))
	}

	node := intEnv("SNOWFLAKE_NODE", 1, &errs)
	if node < 0 || node > 1023 {
		errs = append(errs, errors.New("invalid env: SNOWFLAKE_NODE must be within 0-1023"))
	}

	config := &Config{
		AppEnv: appEnv,
		HTTP: HTTPConfig{
			Port:         getEnv("PORT", "3000"),
			CORSOrigins:  listEnv("CORS_ORIGINS", []string{"*"}),
			MaxBodyBytes: intEnv("MAX_BODY_BYTES", 1<<20, &errs),
		},
		Provider: ProviderConfig{
			ClientID:     os.Getenv("AMA_CLIENT_ID"),
			ClientSecret: os.Getenv("AMA_CLIENT_SECRET"),
			BaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
			Timeout:      time.Duration(timeoutMs) * time.Millisecond,
		},
		Pricing: PricingConfig{
			FallbackFlightPrice: amountEnv("FALLBACK_FLIGHT_PRICE", 6000, &errs),
			Currency:            strings.ToUpper(getEnv("QUOTE_CURRENCY", "INR")),
			NightlyBudget:       amountEnv("NIGHTLY_RATE_BUDGET", 1200, &errs),
			NightlyMid:          amountEnv("NIGHTLY_RATE_MID", 2500, &errs),
			NightlyLuxury:       amountEnv("NIGHTLY_RATE_LUXURY", 6500, &errs),
			DefaultLocationCode: strings.ToUpper(getEnv("DEFAULT_LOCATION_CODE", "DEL")),
		},
		Store: StoreConfig{
			Driver:     driver,
			SQLitePath: getEnv("SQLITE_PATH", "trips.db"),
		},
		RedisConfig: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		SnowflakeNode: node,
		Observability: ObservabilityConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "trulytravels"),
			Environment:  appEnv,
		},
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return config, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int64, errs *[]error) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return n
}

// maxAmount mirrors pricing.MaxAmount.
const maxAmount = 100_000_000

// amountEnv is intEnv for currency amounts, which are also capped at maxAmount.
func amountEnv(key string, fallback int64, errs *[]error) int64 {
	n := intEnv(key, fallback, errs)
	if n > maxAmount {
		*errs = append(*errs, errors.New("amount too large env: "+key))
		return fallback
	}
	return n
}

func listEnv(key string, fallback []string) []string {
	value := os.Getenv(key)
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
