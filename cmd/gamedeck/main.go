package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/gamedeck/internal/config"
	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/games"
	"github.com/mmcdole/gamedeck/internal/images"
	"github.com/mmcdole/gamedeck/internal/insights"
	"github.com/mmcdole/gamedeck/internal/logging"
	"github.com/mmcdole/gamedeck/internal/metrics"
	"github.com/mmcdole/gamedeck/internal/rawg"
	"github.com/mmcdole/gamedeck/internal/state"
	"github.com/mmcdole/gamedeck/internal/storage"
	"github.com/mmcdole/gamedeck/internal/tracing"
	"github.com/mmcdole/gamedeck/internal/tui"
	"github.com/mmcdole/gamedeck/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		metricsAddr string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.Parse()

	if showVersion {
		fmt.Printf("gamedeck %s\n", Version)
		return
	}

	if err := run(metricsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(metricsAddr string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	logger, logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	} else {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting gamedeck", "version", Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	traceCfg := tracing.DefaultConfig()
	if cfg.Tracing.Endpoint != "" {
		traceCfg.Enabled = true
		traceCfg.Endpoint = cfg.Tracing.Endpoint
	}
	traceCfg.Version = Version
	shutdownTracing, err := tracing.Setup(ctx, traceCfg)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	client := rawg.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, logger, rawg.WithTimeout(cfg.Catalog.Timeout))

	if !cfg.IsConfigured() {
		return runSetupFlow(client)
	}

	store, err := openStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	go func() {
		if err := metrics.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	service := games.NewService(client, games.Options{
		Capacity:       cfg.Cache.Capacity,
		DetailTTL:      cfg.Cache.DetailTTL,
		ListTTL:        cfg.Cache.ListTTL,
		SearchPageSize: cfg.Catalog.SearchPageSize,
		EnrichLimit:    cfg.Catalog.EnrichLimit,
		MediaPerGame:   cfg.Catalog.MediaPerGame,
	}, logger)

	appState := state.New(service, store, logger)

	advisor := insights.NewClient(insights.Config{
		Endpoint:        cfg.Insights.Endpoint,
		APIKey:          cfg.Insights.APIKey,
		Model:           cfg.Insights.Model,
		Temperature:     cfg.Insights.Temperature,
		MaxTokens:       cfg.Insights.MaxTokens,
		RepairTruncated: cfg.Insights.RepairTruncated,
		Timeout:         cfg.Insights.Timeout,
	}, logger)
	if !advisor.Enabled() {
		logger.Info("AI insights disabled, no API key configured")
	}

	model := tui.NewModel(appState, service, advisor, images.NewOptimizer(cfg.Images.ProxyURL), logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	appState.Persist()
	detail, list := service.CacheStats()
	logger.Info("shutting down",
		"detailCacheHits", detail.Hits, "listCacheHits", list.Hits)
	return nil
}

// openStorage opens the favorites database, or an in-memory store when no
// path is configured.
func openStorage(path string) (domain.Storage, error) {
	if path == "" {
		return storage.NewMemory(), nil
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return db, nil
}

// runSetupFlow asks for a catalog API key, checks it and saves it
func runSetupFlow(client *rawg.Client) error {
	fmt.Println()
	fmt.Println("Welcome to gamedeck!")
	fmt.Println()
	fmt.Println("Browsing the catalog needs a free RAWG API key (https://rawg.io/apidocs).")
	fmt.Println()

	for {
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		apiKey := strings.TrimSpace(string(keyBytes))

		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		client.SetAPIKey(apiKey)
		if err := verifyKeyWithSpinner(client); err != nil {
			fmt.Printf("✗ Could not use this key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}

		if err := config.SaveAPIKey(apiKey); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		break
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run gamedeck again to start the application.")
	return nil
}

// verifyKeyWithSpinner runs a tiny catalog search with a visual spinner
func verifyKeyWithSpinner(client *rawg.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		_, err := client.Search(ctx, "portal", 1)
		errCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("request timed out")
		}
	}
}
