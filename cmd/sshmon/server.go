package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/sshmon/internal/dataset"
	"github.com/tinytelemetry/sshmon/internal/duckdb"
	"github.com/tinytelemetry/sshmon/internal/httpserver"
	"github.com/tinytelemetry/sshmon/internal/timeseries"
	"github.com/tinytelemetry/sshmon/internal/tui"
)

// run loads the dataset, mirrors it into DuckDB, and serves either the
// terminal dashboard or the headless HTTP API.
func run(cfg appConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	mapping, err := dataset.LoadColumnMapping(cfg.ColumnMapping)
	if err != nil {
		return fmt.Errorf("loading column mapping: %w", err)
	}

	ds, err := dataset.Load(cfg.DataPath, mapping)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	parser := timeseries.NewParser(cfg.ReferenceYear)

	// The SQL mirror only exists for structured sources.
	var store *duckdb.Store
	if ds.Mode == dataset.ModeStructured {
		store, err = duckdb.NewStore(cfg.QueryTimeout)
		if err != nil {
			return fmt.Errorf("initializing DuckDB mirror: %w", err)
		}
		defer store.Close()

		if err := store.LoadRecordSet(ds.Set, parser); err != nil {
			return fmt.Errorf("mirroring dataset: %w", err)
		}
		log.Printf("dataset: loaded %d structured rows from %s", ds.Set.Len(), cfg.DataPath)
	} else {
		log.Printf("dataset: loaded %d raw lines from %s (reduced feature set)", len(ds.Lines), cfg.DataPath)
	}

	if cfg.TUIEnabled {
		if ds.Mode != dataset.ModeStructured {
			return fmt.Errorf("the dashboard requires a structured (.csv) dataset; %s is unstructured", cfg.DataPath)
		}
		return tui.Run(ds, parser)
	}

	return runHeadless(cfg, ds, parser, store)
}

// runHeadless starts the HTTP API and blocks until a shutdown signal.
func runHeadless(cfg appConfig, ds *dataset.Dataset, parser timeseries.Parser, store *duckdb.Store) error {
	if !cfg.APIEnabled {
		return fmt.Errorf("nothing to run: API disabled and TUI not requested")
	}

	apiServer := newAPIServer(cfg.APIAddr, ds, parser, store)
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer apiServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	printStartupBanner(cfg, ds)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-sigCh:
			fmt.Println("\nShutting down gracefully...")
		case <-gctx.Done():
		}
		return nil
	})

	err := g.Wait()
	signal.Stop(sigCh)
	return err
}

// newAPIServer exists so the nil-store case passes a typed nil interface
// check inside the server rather than a non-nil interface wrapping nil.
func newAPIServer(addr string, ds *dataset.Dataset, parser timeseries.Parser, store *duckdb.Store) *httpserver.Server {
	if store == nil {
		return httpserver.NewServer(addr, ds, parser, nil)
	}
	return httpserver.NewServer(addr, ds, parser, store)
}

func printStartupBanner(cfg appConfig, ds *dataset.Dataset) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, cyan.Bold(true).Render("    sshmon")+"  "+dim.Render("v"+version))
	lines = append(lines, "")
	lines = append(lines, bold.Render("    Dataset"))
	lines = append(lines, "")
	if ds.Mode == dataset.ModeStructured {
		lines = append(lines, fmt.Sprintf("    %s  Source       %s (%d rows)", check, dim.Render(cfg.DataPath), ds.Set.Len()))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Source       %s (%d lines, unstructured)", check, dim.Render(cfg.DataPath), len(ds.Lines)))
	}
	lines = append(lines, "")
	lines = append(lines, bold.Render("    Gateway"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  HTTP API     %s", check, cyan.Render(cfg.APIAddr)))
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}
