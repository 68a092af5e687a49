package config

import (
	"time"
)

// Remote backends.
const (
	RemoteNone     = "none"
	RemoteREST     = "rest"
	RemoteSupabase = "supabase"
	RemotePostgres = "postgres"
)

// Local drivers.
const (
	LocalSQLite = "sqlite"
	LocalMemory = "memory"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Local      LocalConfig      `yaml:"local"`
	Remote     RemoteConfig     `yaml:"remote"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Practice   PracticeConfig   `yaml:"practice"`
	WordOfDay  WordOfDayConfig  `yaml:"word_of_day"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// LookupRateLimit caps requests per minute on routes that call the dictionary.
	LookupRateLimit int `yaml:"lookup_rate_limit" env:"SERVER_LOOKUP_RATE_LIMIT" env-default:"30"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuthConfig holds bearer token settings. An empty secret disables
// authentication: every request runs as the guest user.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"wordpractice"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
}

// Enabled reports whether bearer tokens are accepted.
func (c AuthConfig) Enabled() bool { return c.JWTSecret != "" }

// LocalConfig selects the per-device key-value store.
type LocalConfig struct {
	Driver string `yaml:"driver" env:"LOCAL_DRIVER" env-default:"sqlite"`
	Path   string `yaml:"path"   env:"LOCAL_PATH"   env-default:"data/wordpractice.db"`
}

// RemoteConfig selects and configures the remote catalogue backend.
type RemoteConfig struct {
	Backend  string           `yaml:"backend"  env:"REMOTE_BACKEND" env-default:"none"`
	Timeout  time.Duration    `yaml:"timeout"  env:"REMOTE_TIMEOUT" env-default:"10s"`
	REST     RESTRemoteConfig `yaml:"rest"`
	Supabase SupabaseConfig   `yaml:"supabase"`
	Database DatabaseConfig   `yaml:"database"`
}

// RESTRemoteConfig points at a generic JSON catalogue service.
type RESTRemoteConfig struct {
	BaseURL string `yaml:"base_url" env:"REMOTE_REST_BASE_URL"`
	Token   string `yaml:"token"    env:"REMOTE_REST_TOKEN"`
}

// SupabaseConfig points at a PostgREST endpoint.
type SupabaseConfig struct {
	URL    string `yaml:"url"     env:"SUPABASE_URL"`
	APIKey string `yaml:"api_key" env:"SUPABASE_API_KEY"`
	Table  string `yaml:"table"   env:"SUPABASE_TABLE" env-default:"catalogues"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
	// RevisionRetentionDays is how long catalogue history rows are kept by the prune command.
	RevisionRetentionDays int `yaml:"revision_retention_days" env:"DATABASE_REVISION_RETENTION_DAYS" env-default:"30"`
}

// DictionaryConfig holds definition lookup settings.
type DictionaryConfig struct {
	Enabled bool          `yaml:"enabled"  env:"DICT_ENABLED"  env-default:"true"`
	BaseURL string        `yaml:"base_url" env:"DICT_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout time.Duration `yaml:"timeout"  env:"DICT_TIMEOUT"  env-default:"10s"`
	// Accent is the preferred pronunciation recording: us, uk or au.
	Accent string `yaml:"accent" env:"DICT_ACCENT" env-default:"us"`
}

// PracticeConfig holds word selection settings.
type PracticeConfig struct {
	// WordPoolPath replaces the embedded random-mode pool when set.
	WordPoolPath string `yaml:"word_pool_path" env:"PRACTICE_WORD_POOL_PATH"`
	// Seed fixes the selection RNG; 0 seeds from the clock.
	Seed       uint64 `yaml:"seed"        env:"PRACTICE_SEED"        env-default:"0"`
	SpeakWords bool   `yaml:"speak_words" env:"PRACTICE_SPEAK_WORDS" env-default:"true"`
	// IdleTTL drops a user's in-memory workspace after this long without use; 0 keeps it.
	IdleTTL time.Duration `yaml:"idle_ttl" env:"PRACTICE_IDLE_TTL" env-default:"30m"`
}

// WordOfDayConfig holds the daily rotation settings.
type WordOfDayConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"WOTD_ENABLED"  env-default:"true"`
	At       string `yaml:"at"       env:"WOTD_AT"       env-default:"00:00"`
	Timezone string `yaml:"timezone" env:"WOTD_TIMEZONE" env-default:"UTC"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}
