package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validTestConfig(dir string) *Config {
	return &Config{
		Mode:             "stdio",
		Host:             "127.0.0.1",
		Port:             8080,
		LibraryDirectory: dir,
		LogLevel:         "info",
		MaxFileSize:      1024,
		CacheTTL:         time.Minute,
		CacheCapacity:    10,
		PageCharBudget:   3000,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.ServerName != "mcp-paper-tools" {
		t.Errorf("Expected default server name to be 'mcp-paper-tools', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("Expected default cache TTL to be 5m, got %s", cfg.CacheTTL)
	}

	if cfg.CacheCapacity != 10 {
		t.Errorf("Expected default cache capacity to be 10, got %d", cfg.CacheCapacity)
	}

	if cfg.WriteEnabled {
		t.Error("Expected write tools to be disabled by default")
	}

	currentDir, _ := os.Getwd()
	if cfg.LibraryDirectory != currentDir {
		t.Errorf("Expected default library directory to be '%s', got '%s'", currentDir, cfg.LibraryDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid config - server mode",
			mutate:  func(c *Config) { c.Mode = "server" },
			wantErr: false,
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Mode = "invalid" },
			wantErr: true,
		},
		{
			name: "invalid port - too low (server mode)",
			mutate: func(c *Config) {
				c.Mode = "server"
				c.Port = 0
			},
			wantErr: true,
		},
		{
			name: "invalid port - too high (server mode)",
			mutate: func(c *Config) {
				c.Mode = "server"
				c.Port = 70000
			},
			wantErr: true,
		},
		{
			name:    "invalid port ignored in stdio mode",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: false,
		},
		{
			name:    "empty library directory",
			mutate:  func(c *Config) { c.LibraryDirectory = "" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: true,
		},
		{
			name:    "non-positive cache TTL",
			mutate:  func(c *Config) { c.CacheTTL = 0 },
			wantErr: true,
		},
		{
			name:    "zero cache capacity",
			mutate:  func(c *Config) { c.CacheCapacity = 0 },
			wantErr: true,
		},
		{
			name:    "tiny page budget",
			mutate:  func(c *Config) { c.PageCharBudget = 50 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig(tempDir)
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesMissingDirectory(t *testing.T) {
	tempParent := t.TempDir()
	missing := filepath.Join(tempParent, "papers")

	cfg := validTestConfig(missing)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() should create a missing library directory, got error: %v", err)
	}

	if _, err := os.Stat(missing); err != nil {
		t.Errorf("Library directory should have been created: %v", err)
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{
		Host: "192.168.1.1",
		Port: 9090,
	}

	expected := "192.168.1.1:9090"
	if got := cfg.Address(); got != expected {
		t.Errorf("Config.Address() = %v, want %v", got, expected)
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     bool
	}{
		{name: "debug level", logLevel: "debug", want: true},
		{name: "info level", logLevel: "info", want: false},
		{name: "warn level", logLevel: "warn", want: false},
		{name: "error level", logLevel: "error", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:             "server",
		Host:             "localhost",
		Port:             8080,
		LibraryDirectory: "/home/user/papers",
		LogLevel:         "debug",
		MaxFileSize:      1024,
		CacheTTL:         5 * time.Minute,
		CacheCapacity:    10,
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"Mode: server",
		"Host: localhost",
		"Port: 8080",
		"LibraryDirectory: /home/user/papers",
		"LogLevel: debug",
		"MaxFileSize: 1024",
		"CacheTTL: 5m0s",
		"CacheCapacity: 10",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}

func TestConfigValidateLogLevels(t *testing.T) {
	validLevels := []string{"debug", "info", "warn", "error"}
	invalidLevels := []string{"DEBUG", "INFO", "trace", "fatal", ""}

	tempDir := t.TempDir()

	for _, level := range validLevels {
		t.Run("valid_"+level, func(t *testing.T) {
			cfg := validTestConfig(tempDir)
			cfg.LogLevel = level

			if err := cfg.Validate(); err != nil {
				t.Errorf("Config.Validate() should accept log level '%s', got error: %v", level, err)
			}
		})
	}

	for _, level := range invalidLevels {
		t.Run("invalid_"+level, func(t *testing.T) {
			cfg := validTestConfig(tempDir)
			cfg.LogLevel = level

			if err := cfg.Validate(); err == nil {
				t.Errorf("Config.Validate() should reject log level '%s'", level)
			}
		})
	}
}

func TestConfigIsServerMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{name: "server mode", mode: "server", want: true},
		{name: "stdio mode", mode: "stdio", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsServerMode(); got != tt.want {
				t.Errorf("Config.IsServerMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigIsStdioMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{name: "stdio mode", mode: "stdio", want: true},
		{name: "server mode", mode: "server", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsStdioMode(); got != tt.want {
				t.Errorf("Config.IsStdioMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
