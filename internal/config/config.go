package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort          = 8080
	DefaultHost          = "127.0.0.1"
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 100 * 1024 * 1024 // 100MB
	DefaultCacheTTL      = 5 * time.Minute
	DefaultCacheCapacity = 10
	DefaultPageBudget    = 3000

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the paper tools MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Library configuration
	LibraryDirectory string
	MaxFileSize      int64 // Maximum document file size in bytes
	WriteEnabled     bool  // Gates note and tag tools

	// Structure cache configuration
	CacheTTL      time.Duration
	CacheCapacity int

	// Parsing configuration
	PageCharBudget int // Characters per estimated page when no page markers exist

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:             ModeStdio, // Default to stdio mode for MCP compatibility
		Host:             DefaultHost,
		Port:             DefaultPort,
		LibraryDirectory: currentDir,
		MaxFileSize:      DefaultMaxFileSize,
		WriteEnabled:     false,
		CacheTTL:         DefaultCacheTTL,
		CacheCapacity:    DefaultCacheCapacity,
		PageCharBudget:   DefaultPageBudget,
		Version:          "1.0.0",
		ServerName:       "mcp-paper-tools",
		LogLevel:         DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.LibraryDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.LibraryDirectory); err == nil {
			cfg.LibraryDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PAPER_TOOLS")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.LibraryDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("cachettl", cfg.CacheTTL)
	viper.SetDefault("cachecapacity", cfg.CacheCapacity)
	viper.SetDefault("pagebudget", cfg.PageCharBudget)
	viper.SetDefault("writes", cfg.WriteEnabled)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.LibraryDirectory, "Directory containing the document library")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum document file size in bytes")
	pflag.Duration("cachettl", cfg.CacheTTL, "How long parsed document structures stay cached")
	pflag.Int("cachecapacity", cfg.CacheCapacity, "Maximum number of cached document structures")
	pflag.Int("pagebudget", cfg.PageCharBudget, "Characters per estimated page for documents without page markers")
	pflag.Bool("writes", cfg.WriteEnabled, "Enable note and tag tools that modify the library")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("cachettl", pflag.Lookup("cachettl"))
	_ = viper.BindPFlag("cachecapacity", pflag.Lookup("cachecapacity"))
	_ = viper.BindPFlag("pagebudget", pflag.Lookup("pagebudget"))
	_ = viper.BindPFlag("writes", pflag.Lookup("writes"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Paper Tools - A Model Context Protocol server for reading academic papers\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                      "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/papers                # stdio mode with custom library\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/papers --writes       # allow notes and tags\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PAPER_TOOLS_MODE          Server mode\n")
		fmt.Fprintf(os.Stderr, "  PAPER_TOOLS_DIR           Library directory\n")
		fmt.Fprintf(os.Stderr, "  PAPER_TOOLS_LOGLEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  PAPER_TOOLS_MAXFILESIZE   Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  PAPER_TOOLS_CACHETTL      Structure cache TTL\n")
		fmt.Fprintf(os.Stderr, "  PAPER_TOOLS_CACHECAPACITY Structure cache capacity\n")
		fmt.Fprintf(os.Stderr, "  PAPER_TOOLS_WRITES        Enable write tools\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LibraryDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.CacheTTL = viper.GetDuration("cachettl")
	cfg.CacheCapacity = viper.GetInt("cachecapacity")
	cfg.PageCharBudget = viper.GetInt("pagebudget")
	cfg.WriteEnabled = viper.GetBool("writes")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.LibraryDirectory == "" {
		return errors.New("library directory cannot be empty")
	}

	// Create the library directory on first run rather than failing.
	if _, err := os.Stat(c.LibraryDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.LibraryDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create library directory %s: %w", c.LibraryDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access library directory %s: %w", c.LibraryDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.CacheTTL <= 0 {
		return errors.New("cache TTL must be positive")
	}
	if c.CacheCapacity < 1 {
		return errors.New("cache capacity must be at least 1")
	}
	if c.PageCharBudget < 100 {
		return errors.New("page character budget must be at least 100")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Mode: %s, Host: %s, Port: %d, LibraryDirectory: %s, LogLevel: %s, "+
			"MaxFileSize: %d, CacheTTL: %s, CacheCapacity: %d, WriteEnabled: %t}",
		c.Mode, c.Host, c.Port, c.LibraryDirectory, c.LogLevel,
		c.MaxFileSize, c.CacheTTL, c.CacheCapacity, c.WriteEnabled)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
