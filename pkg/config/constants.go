package config

// EnvPrefix is unused by the explicit envconfig tags but kept as the
// canonical prefix for ad hoc lookups.
const EnvPrefix = "VAPETRACK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv              = "VAPETRACK_APP_ENV"
	EnvAppPort             = "VAPETRACK_APP_PORT"
	EnvLogLevel            = "VAPETRACK_LOG_LEVEL"
	EnvSheetsSpreadsheetID = "VAPETRACK_SHEETS_SPREADSHEET_ID"
	EnvSheetsCredentials   = "VAPETRACK_SHEETS_CREDENTIALS_JSON"
	EnvRedisURL            = "VAPETRACK_REDIS_URL"
	EnvLowStockThreshold   = "VAPETRACK_LOW_STOCK_THRESHOLD"
	EnvUseMemoryStore      = "VAPETRACK_USE_MEMORY_STORE"
)
