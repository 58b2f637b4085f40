// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Thresholds ThresholdConfig
	Planner    PlannerConfig
	Financials FinancialConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Drive      DriveConfig
	Log        LogConfig
}

type AppConfig struct {
	DataDir          string
	InventoryFile    string
	SalesFile        string
	PartnersFile     string
	OutputFile       string
	ExcludeProducts  []string
	QuickExcludeList []string
}

type ThresholdConfig struct {
	Critical int
	Low      int
}

type PlannerConfig struct {
	CoverageDays             int
	MinReorderQty            int
	FallbackRecommendedStock float64
	FallbackReorderQty       int
}

type FinancialConfig struct {
	Markup           float64
	PremiumUnitCost  float64
	ReorderCoverDays float64
	ReorderSafetyQty float64
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

type DriveConfig struct {
	CredentialsJSON string
	FolderID        string
}

type LogConfig struct {
	Level string
}

var (
	once     sync.Once
	instance *Config
)

// Load reads .env and the environment once and returns the shared Config.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		SetDefaults(v)

		// Read from environment variables
		v.AutomaticEnv()

		instance = FromViper(v)
	})

	return instance
}

// SetDefaults registers the default value of every recognised key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_DATA_DIR", "./data")
	v.SetDefault("INVENTORY_FILE", "inventory_summary.csv")
	v.SetDefault("SALES_FILE", "Total_sales_per_product.csv")
	v.SetDefault("PARTNERS_FILE", "partners.csv")
	v.SetDefault("APP_OUTPUT_FILE", "inventory_dashboard_data.json")
	v.SetDefault("EXCLUDE_PRODUCTS", "")
	v.SetDefault("QUICK_EXCLUDE_PRODUCTS", "prueba1")
	v.SetDefault("CRITICAL_THRESHOLD", 15)
	v.SetDefault("LOW_THRESHOLD", 30)
	v.SetDefault("COVERAGE_DAYS", 21)
	v.SetDefault("MIN_REORDER_QTY", 50)
	v.SetDefault("FALLBACK_RECOMMENDED_STOCK", 50)
	v.SetDefault("FALLBACK_REORDER_QTY", 100)
	v.SetDefault("FINANCIAL_MARKUP", 2)
	v.SetDefault("PREMIUM_UNIT_COST", 200)
	v.SetDefault("REORDER_VALUE_COVER_DAYS", 60)
	v.SetDefault("REORDER_VALUE_SAFETY_QTY", 10)
	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("STORAGE_PREFIX", "inventory")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 3600)
	v.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")
	v.SetDefault("GOOGLE_DRIVE_FOLDER_ID", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			DataDir:          v.GetString("APP_DATA_DIR"),
			InventoryFile:    v.GetString("INVENTORY_FILE"),
			SalesFile:        v.GetString("SALES_FILE"),
			PartnersFile:     v.GetString("PARTNERS_FILE"),
			OutputFile:       v.GetString("APP_OUTPUT_FILE"),
			ExcludeProducts:  SplitList(v.GetString("EXCLUDE_PRODUCTS")),
			QuickExcludeList: SplitList(v.GetString("QUICK_EXCLUDE_PRODUCTS")),
		},
		Thresholds: ThresholdConfig{
			Critical: v.GetInt("CRITICAL_THRESHOLD"),
			Low:      v.GetInt("LOW_THRESHOLD"),
		},
		Planner: PlannerConfig{
			CoverageDays:             v.GetInt("COVERAGE_DAYS"),
			MinReorderQty:            v.GetInt("MIN_REORDER_QTY"),
			FallbackRecommendedStock: v.GetFloat64("FALLBACK_RECOMMENDED_STOCK"),
			FallbackReorderQty:       v.GetInt("FALLBACK_REORDER_QTY"),
		},
		Financials: FinancialConfig{
			Markup:           v.GetFloat64("FINANCIAL_MARKUP"),
			PremiumUnitCost:  v.GetFloat64("PREMIUM_UNIT_COST"),
			ReorderCoverDays: v.GetFloat64("REORDER_VALUE_COVER_DAYS"),
			ReorderSafetyQty: v.GetFloat64("REORDER_VALUE_SAFETY_QTY"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			Prefix:    v.GetString("STORAGE_PREFIX"),
		},
		Cache: CacheConfig{
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			DashboardTTLSeconds: v.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
		},
		Drive: DriveConfig{
			CredentialsJSON: v.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
			FolderID:        v.GetString("GOOGLE_DRIVE_FOLDER_ID"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}

// Validate checks the settings the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Thresholds.Critical > c.Thresholds.Low {
		return fmt.Errorf("critical threshold (%d) must not exceed low threshold (%d)",
			c.Thresholds.Critical, c.Thresholds.Low)
	}
	if c.Planner.CoverageDays <= 0 {
		return fmt.Errorf("coverage days must be positive, got %d", c.Planner.CoverageDays)
	}
	if c.Planner.MinReorderQty < 0 {
		return fmt.Errorf("minimum reorder quantity cannot be negative, got %d", c.Planner.MinReorderQty)
	}
	if strings.TrimSpace(c.App.InventoryFile) == "" {
		return fmt.Errorf("inventory file must be configured")
	}
	return nil
}

// SplitList splits a comma separated setting, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
