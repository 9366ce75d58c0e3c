package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/statement-splitter/constants"
	"github.com/joseph-ayodele/statement-splitter/internal/common"
	"github.com/joseph-ayodele/statement-splitter/internal/contacts"
	"github.com/joseph-ayodele/statement-splitter/internal/export"
	"github.com/joseph-ayodele/statement-splitter/internal/extract"
	"github.com/joseph-ayodele/statement-splitter/internal/rules"
	"github.com/joseph-ayodele/statement-splitter/internal/service"
	"github.com/joseph-ayodele/statement-splitter/internal/splitter"
	"github.com/joseph-ayodele/statement-splitter/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		in        = flag.String("in", "", "source PDF to split (required)")
		period    = flag.String("period", "", "period label for artifact filenames, e.g. \"May 2025\"")
		contactsF = flag.String("contacts", "", "contact list (.csv or .xlsx); empty uses CONTACTS_DB_URL when set")
		outDir    = flag.String("out-dir", "", "directory to write matched artifacts into (optional)")
		report    = flag.String("report", "", "output XLSX match report path (optional)")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// Validate required flags
	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}

	// Setup logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()

	// Rule set: user-supplied file or built-in cascade
	set := rules.DefaultSet()
	if cfg.Split.RulesPath != "" {
		loaded, err := rules.LoadSet(cfg.Split.RulesPath)
		if err != nil {
			logger.Error("failed to load rules", "path", cfg.Split.RulesPath, "error", err)
			os.Exit(1)
		}
		set = loaded
		logger.Info("loaded rule set", "path", cfg.Split.RulesPath)
	}

	// Page source + engine
	source := extract.NewPoppler(extract.Config{
		Pdftotext:   cfg.Split.Pdftotext,
		Pdfseparate: cfg.Split.Pdfseparate,
		Pdfinfo:     cfg.Split.Pdfinfo,
	}, logger)
	engine := splitter.NewEngine(source, set, logger)
	engine.SetMaxPages(cfg.Split.MaxPages)
	engine.SetPageTimeout(cfg.Split.PageTimeout)

	// Batch store with persisted or in-memory settings
	var settings store.SettingsStore = store.NewMemorySettings()
	if cfg.Store.SettingsPath != "" {
		sqlSettings, err := store.OpenSQLiteSettings(cfg.Store.SettingsPath, logger)
		if err != nil {
			logger.Error("failed to open settings db", "error", err)
			os.Exit(1)
		}
		defer sqlSettings.Close()
		settings = sqlSettings
	}
	batchStore, err := store.NewBatchStore(settings, logger)
	if err != nil {
		logger.Error("failed to create batch store", "error", err)
		os.Exit(1)
	}

	svc := service.NewService(engine, batchStore, logger)

	// Split
	resp, err := svc.SplitAndStore(ctx, service.SplitRequest{
		Path:   *in,
		Period: *period,
		OnProgress: func(percent int) {
			logger.Debug("split progress", "percent", percent)
		},
	})
	if err != nil {
		logger.Error("split failed", "error", err)
		os.Exit(1)
	}
	for _, pageErr := range resp.Result.Errors {
		logger.Warn("page skipped", "reason", pageErr)
	}
	if resp.Result.Status == constants.RunStatusCancelled {
		logger.Warn("split cancelled", "pages_done", len(resp.Result.Artifacts)+len(resp.Result.Errors))
		os.Exit(130)
	}
	if resp.BatchID == "" {
		logger.Error("no artifacts produced", "pages", resp.Result.Pages, "page_errors", len(resp.Result.Errors))
		os.Exit(1)
	}

	usage := batchStore.Usage()
	logger.Info("batch stored", "batch_id", resp.BatchID, "files", usage.FileCount, "size", usage.HumanSize)

	// Match, when a contact source is available
	src, closeSrc, err := contactSource(ctx, cfg, *contactsF, logger)
	if err != nil {
		logger.Error("contact source unavailable", "error", err)
		os.Exit(1)
	}
	matched, unmatched := 0, 0
	if src != nil {
		defer closeSrc()
		result, err := svc.MatchBatch(ctx, resp.BatchID, src)
		if err != nil {
			logger.Error("match failed", "error", err)
			os.Exit(1)
		}
		matched, unmatched = result.Stats.Matched, result.Stats.Unmatched

		if *report != "" {
			data, err := export.NewService(logger).MatchReportXLSX(result)
			if err != nil {
				logger.Error("report export failed", "error", err)
				os.Exit(1)
			}
			if err := os.WriteFile(*report, data, 0o644); err != nil {
				logger.Error("failed to write report", "path", *report, "error", err)
				os.Exit(1)
			}
			logger.Info("report written", "path", *report)
		}
	} else {
		logger.Warn("no contact source configured, skipping match")
	}

	// Write artifacts out when requested
	written := 0
	if *outDir != "" {
		written, err = svc.WriteArtifacts(resp.BatchID, *outDir)
		if err != nil {
			logger.Error("failed to write artifacts", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Split complete!\n")
	fmt.Printf("- Pages: %d\n", resp.Result.Pages)
	fmt.Printf("- Artifacts: %d\n", len(resp.Result.Artifacts))
	fmt.Printf("- Page errors: %d\n", len(resp.Result.Errors))
	if src != nil {
		fmt.Printf("- Matched: %d / Unmatched: %d\n", matched, unmatched)
	}
	if *outDir != "" {
		fmt.Printf("- Written to %s: %d\n", *outDir, written)
	}
}

// contactSource picks the contact source: an explicit file wins, then the
// Postgres directory from env, then none.
func contactSource(ctx context.Context, cfg *common.Config, path string, logger *slog.Logger) (contacts.Source, func(), error) {
	noop := func() {}
	if path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			return contacts.NewCSVSource(path, logger), noop, nil
		case ".xlsx":
			return contacts.NewXLSXSource(path, logger), noop, nil
		default:
			return nil, noop, fmt.Errorf("unsupported contact list format: %q", filepath.Ext(path))
		}
	}
	if cfg.Contacts.DSN != "" {
		dir, err := contacts.OpenPGDirectory(ctx, contacts.DirectoryConfig{
			DSN:          cfg.Contacts.DSN,
			Table:        cfg.Contacts.Table,
			MaxConns:     cfg.Contacts.MaxConns,
			DialTimeout:  cfg.Contacts.DialTimeout,
			QueryTimeout: cfg.Contacts.QueryTimeout,
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		return dir, dir.Close, nil
	}
	return nil, noop, nil
}
