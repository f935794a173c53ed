package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/devbelt/toolbox-mcp/pkg/dispatch"
	"github.com/devbelt/toolbox-mcp/pkg/history"
	"github.com/devbelt/toolbox-mcp/pkg/registry"
	"github.com/devbelt/toolbox-mcp/pkg/server"
	"github.com/devbelt/toolbox-mcp/pkg/storage"
	"github.com/devbelt/toolbox-mcp/pkg/toolkit"
	"github.com/devbelt/toolbox-mcp/pkg/tools"
	"github.com/devbelt/toolbox-mcp/pkg/tools/catalog"
	historytool "github.com/devbelt/toolbox-mcp/pkg/tools/history"
	"github.com/devbelt/toolbox-mcp/pkg/tools/run"
	"github.com/devbelt/toolbox-mcp/pkg/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const (
	ServerName      = "toolbox-mcp"
	ServiceName     = "Developer Toolbox MCP Server"
	ShutdownTimeout = 10 * time.Second
)

//go:embed VERSION
var Version string

func main() {
	var (
		debug            bool
		bindAddr         string
		dbPath           string
		offloadThreshold int
		printVersion     bool
	)
	flag.BoolVar(&debug, "debug", false, "debug mode")
	flag.StringVar(&bindAddr, "bind", "localhost:8989", "bind address (host:port)")
	flag.StringVar(&dbPath, "db", "build/toolbox-mcp.db", "SQLite database file path")
	flag.IntVar(&offloadThreshold, "offload-threshold", types.OffloadThreshold, "input size in bytes above which tool execution is offloaded")
	flag.BoolVar(&printVersion, "version", false, "print version and exit")
	flag.Parse()
	// Sanitize version
	version := strings.TrimSpace(Version)
	// Check if the version flag is set
	if printVersion {
		fmt.Printf("%s Version: %s\n", ServiceName, version)
		os.Exit(0)
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger.Debug().Msg("debug mode enabled")
	}

	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}

	// Initialize storage
	storeCfg := storage.Config{
		DatabasePath: dbPath,
		Debug:        debug,
	}
	store, err := storage.NewSQLiteStorage(storeCfg)
	if err != nil {
		logger.Fatal().Msgf("Failed to initialize storage: %v", err)
	}
	logger.Info().Msgf("Database initialized at %s", dbPath)

	hist := history.New(store, logger)
	hist.Load(signalCtx)

	// Populate the tool catalog. A bad manifest is a configuration
	// error, fatal at startup.
	reg := registry.New()
	for _, desc := range toolkit.Manifest() {
		if err := reg.Register(desc); err != nil {
			logger.Fatal().Msgf("Failed to register tool %s: %v", desc.ID, err)
		}
	}
	reg.Freeze()
	logger.Info().Msgf("Registered %d utility tools", reg.Len())

	shell := dispatch.New(reg, hist, logger, dispatch.WithOffloadThreshold(offloadThreshold))

	srv := server.NewServer(impl, reg, shell, hist, store)

	// Create MCP tool instances.
	toolList := []tools.Tool{
		run.New(logger),
		catalog.New(logger),
		historytool.New(logger),
	}

	// Register all tools
	for _, tool := range toolList {
		if err := tool.Register(srv); err != nil {
			logger.Fatal().Msgf("Failed to register tool: %v", err)
		}
	}
	// Create HTTP handler for MCP server
	// Stateless mode avoids "session not found" errors after server restart
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return &srv.Server
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})

	http.Handle("/mcp", handler)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"service": ServiceName,
			"version": version,
			"endpoints": map[string]string{
				"mcp": "/mcp",
			},
		})
	})

	logger.Info().Msgf("%s starting on address %s", ServiceName, bindAddr)
	logger.Info().Msgf("MCP endpoint available at: http://%s/mcp", bindAddr)

	go func() {
		//nolint:gosec
		if err := http.ListenAndServe(bindAddr, nil); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Msgf("%s failed to start: %v", ServerName, err)
		}
	}()
	<-signalCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	// Shutdown MCP server
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Msgf("%s shutdown error: %v", ServiceName, err)
	} else {
		logger.Info().Msgf("%s shutdown complete", ServiceName)
	}
}
