package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported storage backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DBDriver          string
	DatabaseURL       string
	SQLitePath        string
	RunMigrations     bool
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	RateLimit         string // ulule/limiter formatted rate, e.g. "300-M"
	CORSOrigins       []string
	LogLevel          string
}

// SetDefaults registers the default for every key LoadConfig reads.
func SetDefaults() {
	viper.SetDefault("DB_DRIVER", DriverSQLite)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "abbis_ledger.db")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "abbis-ledger")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Values bound from command line flags take precedence.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	SetDefaults()
	viper.AutomaticEnv()

	cfg := &Config{
		DBDriver:      strings.ToLower(viper.GetString("DB_DRIVER")),
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		SQLitePath:    viper.GetString("SQLITE_PATH"),
		RunMigrations: viper.GetBool("RUN_MIGRATIONS"),
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTIssuer:     viper.GetString("JWT_ISSUER"),
		RateLimit:     viper.GetString("RATE_LIMIT"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: DB_DRIVER is postgres but PGSQL_URL environment variable not set.")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			cfg.SQLitePath = "abbis_ledger.db"
			log.Printf("Warning: SQLITE_PATH not set. Defaulting to %s\n", cfg.SQLitePath)
		}
	default:
		log.Printf("Warning: unknown DB_DRIVER %q. Defaulting to %s\n", cfg.DBDriver, DriverSQLite)
		cfg.DBDriver = DriverSQLite
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}
