package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/image-transform-mcp/internal/backend"
	"github.com/ironsheep/image-transform-mcp/internal/config"
	"github.com/ironsheep/image-transform-mcp/internal/server"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("image-transform-mcp - MCP server for image transformation")
	fmt.Println()
	fmt.Println("Usage: image-transform-mcp [--config file.toml]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c FILE  Read settings from a TOML file")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (override the config file):")
	fmt.Println("  IMAGE_TRANSFORM_BACKEND=auto|full|basic")
	fmt.Println("  IMAGE_TRANSFORM_TMP_DIR=/path      Scratch directory")
	fmt.Println("  IMAGE_TRANSFORM_LOG_LEVEL=debug    debug, info, warn or error")
	fmt.Println("  IMAGE_TRANSFORM_RELOAD=true        Re-decode after every operation")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	var configPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("image-transform-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				log.Fatalf("%s needs a file argument", args[i])
			}
			i++
			configPath = args[i]
		default:
			log.Fatalf("unknown argument %q (see --help)", args[i])
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	level, _ := cfg.Level()

	// stdout is reserved for the MCP protocol
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.TmpDir != "" {
		if err := transform.SetTempDir(cfg.TmpDir); err != nil {
			log.Fatalf("Temp dir error: %v", err)
		}
	}

	b, err := backend.Select(cfg.Backend)
	if err != nil {
		log.Fatalf("Backend error: %v", err)
	}

	server.Version = Version
	logger.Debug("starting image-transform-mcp",
		"version", Version, "built", BuildTime, "commit", GitCommit,
		"backend", b.Name(), "tmp_dir", transform.TempDir(), "reload", cfg.Reload)

	srv := server.New(b, cfg, logger)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
