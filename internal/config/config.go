package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName  = "en-app-analytics"
	defaultServicePort  = 3001
	defaultVersion      = "0.1.0"
	defaultBasePath     = "/api/analytics"
	defaultLoggingLevel = "info"
	defaultMongoURI     = "mongodb://localhost:27017"
	defaultMongoDB      = "TM-LOSSRUN"
	defaultPingTimeout  = 5 * time.Second
)

// Config holds the application configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Apps     []AppEntry     `yaml:"apps"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Port      int    `env:"ANALYTICS_PORT"   yaml:"port"`
	BasePath  string `yaml:"base_path"`
	Debug     bool   `env:"APP_DEBUG"        yaml:"debug"`
	JWTSecret string `env:"ANALYTICS_SECRET" yaml:"jwt_secret"`
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI         string        `env:"MONGO_URI" yaml:"uri"`
	Database    string        `env:"MONGO_DB"  yaml:"database"`
	PingTimeout time.Duration `yaml:"ping_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// AppEntry describes one registered application exposed by the analytics API.
// The registry is configuration, not code: new apps are added here once their
// views are materialized.
type AppEntry struct {
	AppID       string `yaml:"app_id"      json:"app_id"`
	AppName     string `yaml:"app_name"    json:"app_name"`
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color"       json:"color"`
	Status      string `yaml:"status"      json:"status"`
	Database    string `yaml:"database"    json:"database"`
}

// Active reports whether the app is live and should carry quick stats.
func (a AppEntry) Active() bool {
	return a.Status == "active"
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)
	// Re-apply env overrides after defaults (env always wins)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLoggingLevel
	}
	if len(cfg.Apps) == 0 {
		cfg.Apps = DefaultApps()
	}
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.BasePath == "" {
		svc.BasePath = defaultBasePath
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.URI == "" {
		db.URI = defaultMongoURI
	}
	if db.Database == "" {
		db.Database = defaultMongoDB
	}
	if db.PingTimeout == 0 {
		db.PingTimeout = defaultPingTimeout
	}
}

// DefaultApps returns the built-in application registry used when the config
// file does not declare one.
func DefaultApps() []AppEntry {
	return []AppEntry{
		{
			AppID:       "loss-run-intelligence",
			AppName:     "Loss Run Intelligence",
			Description: "Insurance loss run processing & analytics",
			Color:       "#4285F4",
			Status:      "active",
			Database:    defaultMongoDB,
		},
	}
}

// LookupApp returns the registry entry for the given app id.
func (c *Config) LookupApp(appID string) (AppEntry, bool) {
	for _, app := range c.Apps {
		if app.AppID == appID {
			return app, true
		}
	}
	return AppEntry{}, false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("service.port: invalid port %d", c.Service.Port)
	}
	if c.Database.URI == "" {
		return fmt.Errorf("database.uri: is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database: is required")
	}
	for i, app := range c.Apps {
		if app.AppID == "" {
			return fmt.Errorf("apps[%d].app_id: is required", i)
		}
	}
	return nil
}
