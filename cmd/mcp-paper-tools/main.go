package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/papermind/mcp-paper-tools/internal/config"
	"github.com/papermind/mcp-paper-tools/internal/library"
	"github.com/papermind/mcp-paper-tools/internal/mcp"
	"github.com/papermind/mcp-paper-tools/internal/paper"
	"github.com/papermind/mcp-paper-tools/internal/tools"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the server mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		// In server mode, use normal stdout logging with more detail
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runServerMode handles server mode execution with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runStdioMode handles stdio mode execution
func runStdioMode(ctx context.Context, _ context.CancelFunc, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle
	// We should exit cleanly when stdin is closed or we get an error
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	lib, err := library.NewDirectoryLibrary(cfg.LibraryDirectory, cfg.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to open paper library: %v", err)
	}

	deps := tools.Deps{
		Extractor:     lib,
		Lister:        lib,
		Resolver:      lib,
		WriteEnabled:  func() bool { return cfg.WriteEnabled },
		CacheTTL:      cfg.CacheTTL,
		CacheCapacity: cfg.CacheCapacity,
		Parser:        newParser(cfg),
	}
	if cfg.WriteEnabled {
		store, err := library.NewFileNoteStore(cfg.LibraryDirectory)
		if err != nil {
			log.Fatalf("Failed to open note store: %v", err)
		}
		deps.Notes = store
	}

	dispatcher, err := tools.NewDispatcher(deps)
	if err != nil {
		log.Fatalf("Failed to create tool dispatcher: %v", err)
	}
	defer dispatcher.Close()

	server, err := mcp.NewServer(cfg, dispatcher)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		runServerMode(ctx, cancel, server)
	} else {
		runStdioMode(ctx, cancel, server)
	}
}

// newParser builds the structure parser with the configured page budget.
func newParser(cfg *config.Config) *paper.Parser {
	parserCfg := paper.DefaultParserConfig()
	parserCfg.PageCharBudget = cfg.PageCharBudget
	return paper.NewParserWithConfig(parserCfg)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("MCP Paper Tools\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
