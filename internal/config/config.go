package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	History HistoryConfig `mapstructure:"history" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown. Generation requests
	// have no deadline of their own.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
	// SessionSecret signs the session cookie. When empty a random key is
	// generated at startup and sessions do not survive a restart.
	SessionSecret string `mapstructure:"session_secret" validate:"omitempty,min=32"`
	CookieName    string `mapstructure:"cookie_name" validate:"required"`
	// CookieSecure marks the session cookie Secure; enable behind HTTPS.
	CookieSecure bool `mapstructure:"cookie_secure"`
	// SessionIdleMinutes is how long an untouched session is kept in memory.
	SessionIdleMinutes int `mapstructure:"session_idle_minutes" validate:"gte=1"`
}

// LLM providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider     string `mapstructure:"provider" validate:"required,oneof=gemini openai"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	// ModelName is the Gemini model, OpenAIModelName the OpenAI one.
	ModelName       string `mapstructure:"model_name" validate:"required"`
	OpenAIModelName string `mapstructure:"openai_model_name" validate:"required"`
	// OpenAIBaseURL points the OpenAI client at a compatible endpoint.
	OpenAIBaseURL      string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// History storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// HistoryConfig selects and configures the persistent store behind the
// generation history.
type HistoryConfig struct {
	Backend  string `mapstructure:"backend" validate:"required,oneof=memory file sqlite postgres redis"`
	Key      string `mapstructure:"key" validate:"required"`
	Capacity int    `mapstructure:"capacity" validate:"required,gte=1,lte=100"`

	FilePath    string `mapstructure:"file_path" validate:"required_if=Backend file"`
	SQLitePath  string `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres"`

	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
}
