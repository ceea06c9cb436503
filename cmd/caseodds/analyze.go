package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/batch"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/catalog"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/config"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/export"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/logger"
)

var errNothingProcessed = errors.New("no input file could be processed")

func runAnalyze(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	var sf settingsFlags
	sf.register(fs)
	out := fs.String("out", "", "CSV output file (default stdout)")
	watch := fs.Bool("watch", false, "re-run when an export or config file changes")
	interval := fs.Duration("interval", 2*time.Second, "poll interval for -watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("analyze needs at least one export file: %w", errUsage)
	}

	s, err := sf.load()
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	if err := analyzeOnce(ctx, s, files, *out, stdout); err != nil {
		if !*watch {
			return err
		}
		log.Error("analysis failed", "error", err)
	}
	if !*watch {
		return nil
	}

	changes := make(chan []string, 1)
	config.NewWatcher(append(append([]string{}, files...), sf.paths()...), *interval, func(paths []string) {
		select {
		case changes <- paths:
		default:
		}
	}).Start(ctx)
	log.Info("watching for changes", "files", len(files), "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			log.Info("change detected", "paths", paths)
			if reloaded, err := sf.reload(); err != nil {
				log.Error("config reload failed, keeping previous settings", "error", err)
			} else {
				s = reloaded
			}
			if err := analyzeOnce(ctx, s, files, *out, stdout); err != nil {
				log.Error("analysis failed", "error", err)
			}
		}
	}
}

func analyzeOnce(ctx context.Context, s config.Settings, files []string, out string, stdout io.Writer) error {
	report := batch.NewProcessor(adapter.Default(), s.Thresholds, s.Workers).ProcessFiles(ctx, files)
	if report.Processed == 0 {
		return errNothingProcessed
	}

	w, closeOut, err := openOut(out, stdout)
	if err != nil {
		return err
	}
	if err := export.WriteSummaries(w, report.Summaries()); err != nil {
		_ = closeOut()
		return fmt.Errorf("write summaries: %w", err)
	}
	return closeOut()
}

func runCatalog(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	var sf settingsFlags
	sf.register(fs)
	out := fs.String("out", "", "CSV output file (default stdout)")
	stats := fs.Bool("stats", false, "write count/avg/median instead of the price-range histogram")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) == 0 {
		return fmt.Errorf("catalog needs at least one listing file: %w", errUsage)
	}
	if _, err := sf.load(); err != nil {
		return err
	}

	reg, err := catalog.NewRegistry()
	if err != nil {
		return err
	}
	var all []catalog.SiteStats
	for _, path := range fs.Args() {
		st, err := processListing(reg, path)
		if err != nil {
			slog.Warn("skipping catalog listing", "file", path, "error", err)
			continue
		}
		all = append(all, st)
	}
	if len(all) == 0 {
		return errNothingProcessed
	}

	w, closeOut, err := openOut(*out, stdout)
	if err != nil {
		return err
	}
	write := export.WriteCatalogHistogram
	if *stats {
		write = export.WriteCatalogStats
	}
	if err := write(w, all); err != nil {
		_ = closeOut()
		return fmt.Errorf("write catalog: %w", err)
	}
	return closeOut()
}

func processListing(reg *catalog.Registry, path string) (catalog.SiteStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.SiteStats{}, fmt.Errorf("read %s: %w", path, err)
	}
	return reg.Process(filepath.Base(path), data)
}
