package config

import (
	"errors"
	"time"
)

// Default configuration values.
const (
	defaultServiceName     = "tipline"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultConcurrency     = 10
	defaultBatchLimit      = 200
	defaultRequestsPerSec  = 50
	defaultRequestBurst    = 100
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "tipline"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultProximityKm     = 0.3
	defaultCrossRefSim     = 0.5
	defaultDuplicateSim    = 0.85
	defaultRecentTipsLimit = 100
	defaultPatternReload   = 5 * time.Minute
)

// Config holds all configuration for the tipline service.
type Config struct {
	Service      ServiceConfig      `yaml:"service"`
	Database     DatabaseConfig     `yaml:"database"`
	Verification VerificationConfig `yaml:"verification"`
	Logging      LoggingConfig      `yaml:"logging"`
	Auth         AuthConfig         `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name           string `yaml:"name"`
	Version        string `yaml:"version"`
	Port           int    `env:"TIPLINE_PORT"        yaml:"port"`
	Debug          bool   `env:"APP_DEBUG"           yaml:"debug"`
	Concurrency    int    `env:"TIPLINE_CONCURRENCY" yaml:"concurrency"`
	BatchLimit     int    `yaml:"batch_limit"`
	RequestsPerSec int    `yaml:"requests_per_second"`
	RequestBurst   int    `yaml:"request_burst"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// VerificationConfig holds the scoring engine thresholds.
type VerificationConfig struct {
	ProximityRadiusKm            float64       `yaml:"proximity_radius_km"`
	CrossRefSimilarityThreshold  float64       `yaml:"crossref_similarity_threshold"`
	DuplicateSimilarityThreshold float64       `yaml:"duplicate_similarity_threshold"`
	RecentTipsLimit              int           `yaml:"recent_tips_limit"`
	PatternReloadInterval        time.Duration `yaml:"pattern_reload_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
	Output string `yaml:"output"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setVerificationDefaults(&cfg.Verification)
	setLoggingDefaults(&cfg.Logging)
	// Auth has no defaults; the JWT secret must come from file or env
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchLimit == 0 {
		s.BatchLimit = defaultBatchLimit
	}
	if s.RequestsPerSec == 0 {
		s.RequestsPerSec = defaultRequestsPerSec
	}
	if s.RequestBurst == 0 {
		s.RequestBurst = defaultRequestBurst
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setVerificationDefaults(v *VerificationConfig) {
	if v.ProximityRadiusKm == 0 {
		v.ProximityRadiusKm = defaultProximityKm
	}
	if v.CrossRefSimilarityThreshold == 0 {
		v.CrossRefSimilarityThreshold = defaultCrossRefSim
	}
	if v.DuplicateSimilarityThreshold == 0 {
		v.DuplicateSimilarityThreshold = defaultDuplicateSim
	}
	if v.RecentTipsLimit == 0 {
		v.RecentTipsLimit = defaultRecentTipsLimit
	}
	if v.PatternReloadInterval == 0 {
		v.PatternReloadInterval = defaultPatternReload
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
	if l.Output == "" {
		l.Output = "stdout"
	}
}

// Validate checks cross-field constraints the defaults cannot fix.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return errors.New("service port out of range")
	}
	if c.Verification.CrossRefSimilarityThreshold < 0 || c.Verification.CrossRefSimilarityThreshold > 1 {
		return errors.New("crossref similarity threshold must be within [0, 1]")
	}
	if c.Verification.DuplicateSimilarityThreshold < 0 || c.Verification.DuplicateSimilarityThreshold > 1 {
		return errors.New("duplicate similarity threshold must be within [0, 1]")
	}
	if c.Verification.ProximityRadiusKm < 0 {
		return errors.New("proximity radius must be non-negative")
	}
	return nil
}
