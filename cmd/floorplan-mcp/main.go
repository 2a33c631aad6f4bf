package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/floorplan-tools-mcp/internal/config"
	"github.com/ironsheep/floorplan-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("floorplan-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("floorplan-tools-mcp - MCP server for floor plan vectorization")
			fmt.Println()
			fmt.Println("Usage: floorplan-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Printf("  %s=debug      Enable debug logging\n", config.EnvLogLevel)
			fmt.Printf("  %s          Edge gradient threshold (default 30)\n", config.EnvEdgeThreshold)
			fmt.Printf("  %s          Minimum line run in pixels (default 30)\n", config.EnvMinRunLength)
			fmt.Printf("  %s          Line merge distance (default 5)\n", config.EnvMergeDistance)
			fmt.Printf("  %s          Minimum rectangle side (default 20)\n", config.EnvMinSeparation)
			fmt.Printf("  %s          Maximum rectangle side (default 300)\n", config.EnvMaxSeparation)
			fmt.Printf("  %s        Corner match tolerance (default 10)\n", config.EnvCornerTolerance)
			fmt.Printf("  %s       Duplicate overlap ratio (default 0.7)\n", config.EnvDuplicateOverlap)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Floorplan MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
