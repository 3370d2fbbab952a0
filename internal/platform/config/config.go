package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string

	JWTSecret   string
	AuthEnabled bool

	RateLimit        string
	CORSAllowOrigins []string

	// Blob storage
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	LocalStoreDir string // used instead of S3 when S3_BUCKET is empty
	StoragePrefix string

	// TemplatesFile serves templates from YAML instead of Postgres when set.
	TemplatesFile string

	DownloadTimeoutSeconds int
	TotalsOrdering         string
	// BalanceSheetClosingNet fills balance sheet detail lines that have no
	// DUNO/DUCO terms from the closing net of their code.
	BalanceSheetClosingNet bool

	PosthogAPIKey   string
	PosthogEndpoint string

	// Chat-tool mirror
	MofAPIBaseURL string
	MofAPIToken   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_REGION", "ap-southeast-1")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("LOCAL_STORE_DIR", "data")
	viper.SetDefault("STORAGE_PREFIX", "report-software/mof")
	viper.SetDefault("TEMPLATES_FILE", "")
	viper.SetDefault("DOWNLOAD_TIMEOUT", 300)
	viper.SetDefault("TOTALS_ORDERING", "priority")
	viper.SetDefault("BS_CLOSING_NET_DETAILS", false)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("MOF_API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("MOF_API_TOKEN", "")

	// Values from .env can then be overridden by actual environment variables.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:          viper.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:         viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		AuthEnabled:            viper.GetBool("AUTH_ENABLED"),
		RateLimit:              viper.GetString("RATE_LIMIT"),
		S3Bucket:               viper.GetString("S3_BUCKET"),
		S3Region:               viper.GetString("S3_REGION"),
		S3Endpoint:             viper.GetString("S3_ENDPOINT"),
		S3AccessKey:            viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:            viper.GetString("S3_SECRET_KEY"),
		LocalStoreDir:          viper.GetString("LOCAL_STORE_DIR"),
		StoragePrefix:          strings.Trim(viper.GetString("STORAGE_PREFIX"), "/"),
		TemplatesFile:          viper.GetString("TEMPLATES_FILE"),
		DownloadTimeoutSeconds: viper.GetInt("DOWNLOAD_TIMEOUT"),
		TotalsOrdering:         viper.GetString("TOTALS_ORDERING"),
		BalanceSheetClosingNet: viper.GetBool("BS_CLOSING_NET_DETAILS"),
		PosthogAPIKey:          viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:        viper.GetString("POSTHOG_ENDPOINT"),
		MofAPIBaseURL:          strings.TrimRight(viper.GetString("MOF_API_BASE_URL"), "/"),
		MofAPIToken:            viper.GetString("MOF_API_TOKEN"),
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, origin)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.DatabaseURL == "" && cfg.TemplatesFile == "" {
		log.Println("Warning: neither PGSQL_URL nor TEMPLATES_FILE is set. Report templates cannot be loaded.")
	}
	if cfg.S3Bucket == "" {
		log.Printf("Warning: S3_BUCKET not set. Snapshots are stored under the local directory %s.\n", cfg.LocalStoreDir)
	}
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		log.Println("Warning: AUTH_ENABLED is set but JWT_SECRET is empty. Every request will be rejected.")
	}
	if cfg.DownloadTimeoutSeconds <= 0 {
		cfg.DownloadTimeoutSeconds = 300
		log.Printf("Warning: Invalid DOWNLOAD_TIMEOUT. Defaulting to %d seconds.\n", cfg.DownloadTimeoutSeconds)
	}

	return cfg, nil
}
