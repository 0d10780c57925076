package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/papermind/mcp-paper-tools/internal/config"
)

func TestNewParserHonorsPageBudget(t *testing.T) {
	text := strings.Repeat("A sentence of filler prose for page segmentation.\n\n", 40)

	small := newParser(&config.Config{PageCharBudget: 200})
	large := newParser(&config.Config{PageCharBudget: config.DefaultPageBudget})

	smallPages := len(small.ParsePages(text))
	largePages := len(large.ParsePages(text))

	if smallPages <= largePages {
		t.Errorf("newParser() budget 200 produced %d pages, budget %d produced %d; "+
			"a smaller budget must produce more pages", smallPages, config.DefaultPageBudget, largePages)
	}
}

func capturePrintVersion(t *testing.T) string {
	t.Helper()

	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = originalStdout }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	return buf.String()
}

func TestPrintVersion(t *testing.T) {
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = "1.2.3"
	buildTime = "2026-08-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
	}()

	output := capturePrintVersion(t)

	expectedStrings := []string{
		"MCP Paper Tools",
		"Version: 1.2.3",
		"Build Time: 2026-08-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestPrintVersionWithDefaults(t *testing.T) {
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
	}()

	output := capturePrintVersion(t)

	expectedStrings := []string{
		"MCP Paper Tools",
		"Version: dev",
		"Build Time: unknown",
		"Git Commit: unknown",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestSetupLogging_StdioMode(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	tests := []struct {
		name     string
		wantType string
		config   *config.Config
	}{
		{
			name: "stdio mode - debug enabled",
			config: &config.Config{
				Mode:     "stdio",
				LogLevel: "debug",
			},
			wantType: "stderr",
		},
		{
			name: "stdio mode - debug disabled",
			config: &config.Config{
				Mode:     "stdio",
				LogLevel: "info",
			},
			wantType: "devnull",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogging(tt.config)

			currentOutput := log.Writer()

			switch tt.wantType {
			case "stderr":
				if currentOutput != os.Stderr {
					t.Errorf("setupLogging() for stdio debug mode should set output to stderr")
				}
			case "devnull":
				if currentOutput == os.Stderr {
					t.Errorf("setupLogging() for stdio non-debug mode should not use stderr")
				}
			}
		})
	}
}

func TestSetupLogging_ServerMode(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	cfg := &config.Config{
		Mode:     "server",
		LogLevel: "info",
	}

	setupLogging(cfg)

	currentFlags := log.Flags()
	expectedFlags := log.LstdFlags | log.Lshortfile

	if currentFlags != expectedFlags {
		t.Errorf("setupLogging() for server mode: flags = %v, want %v", currentFlags, expectedFlags)
	}
}

func TestVersionFlagDetection(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		hasVersion bool
	}{
		{name: "no version flag", args: []string{"program"}, hasVersion: false},
		{name: "-version flag", args: []string{"program", "-version"}, hasVersion: true},
		{name: "--version flag", args: []string{"program", "--version"}, hasVersion: true},
		{name: "-v flag", args: []string{"program", "-v"}, hasVersion: true},
		{
			name:       "version flag with other args",
			args:       []string{"program", "-mode=server", "-version", "-port=8080"},
			hasVersion: true,
		},
		{
			name:       "similar but not version flag",
			args:       []string{"program", "-verbose", "-versions"},
			hasVersion: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, arg := range tt.args[1:] { // Skip program name
				if arg == "-version" || arg == "--version" || arg == "-v" {
					found = true
					break
				}
			}

			if found != tt.hasVersion {
				t.Errorf("Version flag detection for %v: got %v, want %v", tt.args, found, tt.hasVersion)
			}
		})
	}
}
