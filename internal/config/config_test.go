package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Input:    InputConfig{Path: "ds_salaries.csv", Delimiter: ";", MaxFileSize: 1024},
		Analysis: AnalysisConfig{OtherThreshold: 5, OtherLabel: "other"},
		Output:   OutputConfig{Dir: "out", ChartWidth: 8, ChartHeight: 5},
		Server:   ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RateLimit: 60, MaxRenders: 2},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Path != "ds_salaries.csv" {
		t.Errorf("Input.Path = %q, want %q", cfg.Input.Path, "ds_salaries.csv")
	}
	if cfg.Input.DelimiterRune() != ';' {
		t.Errorf("Input.DelimiterRune() = %q, want %q", cfg.Input.DelimiterRune(), ';')
	}
	if cfg.Analysis.OtherThreshold != 5 {
		t.Errorf("Analysis.OtherThreshold = %d, want %d", cfg.Analysis.OtherThreshold, 5)
	}
	if cfg.Analysis.OtherLabel != "Less than 5 employees per country" {
		t.Errorf("Analysis.OtherLabel = %q", cfg.Analysis.OtherLabel)
	}
	if !cfg.Output.Charts || !cfg.Output.Workbook {
		t.Errorf("Output.Charts/Workbook = %v/%v, want true/true", cfg.Output.Charts, cfg.Output.Workbook)
	}
	if cfg.Output.ChartWidth != 8 {
		t.Errorf("Output.ChartWidth = %v, want %v", cfg.Output.ChartWidth, 8.0)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("INPUT_DELIMITER", ",")
	t.Setenv("ANALYSIS_OTHER_THRESHOLD", "10")
	t.Setenv("OUTPUT_CHARTS", "false")
	t.Setenv("CHART_HEIGHT_INCHES", "6.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.DelimiterRune() != ',' {
		t.Errorf("Input.DelimiterRune() = %q, want %q", cfg.Input.DelimiterRune(), ',')
	}
	if cfg.Analysis.OtherThreshold != 10 {
		t.Errorf("Analysis.OtherThreshold = %d, want %d", cfg.Analysis.OtherThreshold, 10)
	}
	if cfg.Output.Charts {
		t.Error("Output.Charts = true, want false")
	}
	if cfg.Output.ChartHeight != 6.5 {
		t.Errorf("Output.ChartHeight = %v, want %v", cfg.Output.ChartHeight, 6.5)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DATA_FILE", "/data/salaries.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Path != "/data/salaries.csv" {
		t.Errorf("Input.Path = %q, want %q", cfg.Input.Path, "/data/salaries.csv")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("ANALYSIS_OTHER_THRESHOLD", "five")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric threshold")
	}
	if !strings.Contains(err.Error(), "ANALYSIS_OTHER_THRESHOLD") {
		t.Errorf("error should mention ANALYSIS_OTHER_THRESHOLD: %v", err)
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Server.ShutdownTimeout != 90*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, 90*time.Second)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"multi-char delimiter", func(c *Config) { c.Input.Delimiter = ";;" }, "INPUT_DELIMITER"},
		{"empty delimiter", func(c *Config) { c.Input.Delimiter = "" }, "INPUT_DELIMITER"},
		{"quote delimiter", func(c *Config) { c.Input.Delimiter = `"` }, "INPUT_DELIMITER"},
		{"zero file size", func(c *Config) { c.Input.MaxFileSize = 0 }, "INPUT_MAX_FILE_SIZE"},
		{"negative threshold", func(c *Config) { c.Analysis.OtherThreshold = -1 }, "ANALYSIS_OTHER_THRESHOLD"},
		{"blank label", func(c *Config) { c.Analysis.OtherLabel = "  " }, "ANALYSIS_OTHER_LABEL"},
		{"zero chart size", func(c *Config) { c.Output.ChartWidth = 0 }, "CHART_WIDTH_INCHES"},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, "SERVER_RATE_LIMIT"},
		{"zero max renders", func(c *Config) { c.Server.MaxRenders = 0 }, "SERVER_MAX_RENDERS"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestTrustedProxyList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"10.0.0.0/8", []string{"10.0.0.0/8"}},
		{" 10.0.0.0/8 , ,127.0.0.1 ", []string{"10.0.0.0/8", "127.0.0.1"}},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{TrustedProxies: tt.in}
		got := cfg.TrustedProxyList()
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("TrustedProxyList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	str := validConfig().String()
	for _, want := range []string{"ds_salaries.csv", "OtherThreshold: 5", "Port: 8080"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %q, missing %q", str, want)
		}
	}
}
