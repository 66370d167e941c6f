package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Sheets       SheetsConfig
	Redis        RedisConfig
	Stock        StockConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Sheets.validate(cfg.FeatureFlags); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VAPETRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"VAPETRACK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VAPETRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VAPETRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SheetsConfig struct {
	SpreadsheetID          string        `envconfig:"VAPETRACK_SHEETS_SPREADSHEET_ID"`
	CredentialsJSON        string        `envconfig:"VAPETRACK_SHEETS_CREDENTIALS_JSON"`
	ApplicationCredentials string        `envconfig:"VAPETRACK_GOOGLE_APPLICATION_CREDENTIALS"`
	CallTimeout            time.Duration `envconfig:"VAPETRACK_SHEETS_CALL_TIMEOUT" default:"30s"`
}

func (s SheetsConfig) validate(flags FeatureFlagsConfig) error {
	if flags.UseMemoryStore {
		return nil
	}
	if strings.TrimSpace(s.SpreadsheetID) == "" {
		return fmt.Errorf("%s is required unless %s is set", EnvSheetsSpreadsheetID, EnvUseMemoryStore)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"VAPETRACK_REDIS_URL"`
	Address      string        `envconfig:"VAPETRACK_REDIS_ADDR"`
	Password     string        `envconfig:"VAPETRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"VAPETRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VAPETRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VAPETRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VAPETRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VAPETRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VAPETRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any Redis endpoint is configured. The idempotency
// layer is skipped entirely when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type StockConfig struct {
	LowStockThreshold int `envconfig:"VAPETRACK_LOW_STOCK_THRESHOLD" default:"5"`
}

type FeatureFlagsConfig struct {
	UseMemoryStore bool `envconfig:"VAPETRACK_USE_MEMORY_STORE" default:"false"`
}
