package constants

// Application Information
const (
	AppName    = "Newsroom Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8000"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix       = "newsroom:"
	CacheKeyNews         = CacheKeyPrefix + "news:"
	CacheKeyNewsCategory = CacheKeyNews + "category:"
	CacheKeyBreakingNews = CacheKeyPrefix + "breaking:"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
