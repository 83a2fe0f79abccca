package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	// Root of the per-owner file layout. Empty keeps the daemon on the
	// legacy blob only.
	Root     string `yaml:"root"`
	Timezone string `yaml:"timezone" validate:"required"`
}

type LegacyConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type AwakenConfig struct {
	Enabled bool `yaml:"enabled"`
	// -1 means unlimited, 0 disables reawakening entirely.
	DailyLimit     int           `yaml:"dailyLimit" validate:"min:-1"`
	RandomCooldown time.Duration `yaml:"randomCooldown"`
}

type NamesConfig struct {
	Prefixes []string `yaml:"prefixes"`
	Suffixes []string `yaml:"suffixes"`
}

type PanelConfig struct {
	ApiServer string `yaml:"apiServer" validate:"required|fullUrl"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Legacy    LegacyConfig  `yaml:"legacy"`
	Awaken    AwakenConfig  `yaml:"awaken"`
	Names     NamesConfig   `yaml:"names"`
	Panel     PanelConfig   `yaml:"panel"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
