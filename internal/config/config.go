// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Input    InputConfig
	Analysis AnalysisConfig
	Output   OutputConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// InputConfig describes the dataset file and how to read it.
type InputConfig struct {
	// Path is the salaries file; a positional CLI argument overrides it
	Path string `env:"INPUT_PATH" envAlt:"DATA_FILE" default:"ds_salaries.csv"`

	// Delimiter is the single-character field separator (default: ;)
	Delimiter string `env:"INPUT_DELIMITER" default:";"`

	// MaxFileSize is the maximum accepted file size in bytes (default: 100MB)
	MaxFileSize int64 `env:"INPUT_MAX_FILE_SIZE" default:"104857600"`
}

// AnalysisConfig holds the knobs of the cleaning stage.
type AnalysisConfig struct {
	// OtherThreshold is the minimum number of residents a country needs to keep its own bucket (default: 5)
	OtherThreshold int `env:"ANALYSIS_OTHER_THRESHOLD" default:"5"`

	// OtherLabel replaces residence codes below OtherThreshold
	OtherLabel string `env:"ANALYSIS_OTHER_LABEL" default:"Less than 5 employees per country"`
}

// OutputConfig controls report artifacts written by the report command.
type OutputConfig struct {
	// Dir is where charts and exports are written (default: out)
	Dir string `env:"OUTPUT_DIR" default:"out"`

	// Charts enables PNG chart rendering (default: true)
	Charts bool `env:"OUTPUT_CHARTS" default:"true"`

	// Workbook enables the xlsx export (default: true)
	Workbook bool `env:"OUTPUT_WORKBOOK" default:"true"`

	// ChartWidth is the chart width in inches (default: 8)
	ChartWidth float64 `env:"CHART_WIDTH_INCHES" default:"8"`

	// ChartHeight is the chart height in inches (default: 5)
	ChartHeight float64 `env:"CHART_HEIGHT_INCHES" default:"5"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of CIDRs or IPs whose
	// X-Real-IP / X-Forwarded-For headers are honoured (default: none)
	TrustedProxies string `env:"SERVER_TRUSTED_PROXIES" default:""`

	// RateLimit is the number of requests allowed per client IP per minute; 0 disables (default: 120)
	RateLimit int `env:"SERVER_RATE_LIMIT" default:"120"`

	// MaxRenders caps concurrent chart and workbook renders (default: 4)
	MaxRenders int `env:"SERVER_MAX_RENDERS" default:"4"`

	// RenderWait is how long a request waits for a render slot (default: 10s)
	RenderWait time.Duration `env:"SERVER_RENDER_WAIT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// TrustedProxyList splits TrustedProxies into its non-empty entries.
func (c *ServerConfig) TrustedProxyList() []string {
	var out []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DelimiterRune returns the configured delimiter as a rune.
// Validate guarantees the string holds exactly one rune.
func (c *InputConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ';'
}
