// Command caseodds analyzes case-opening site exports and generates synthetic
// item tables.
//
//	caseodds analyze  [flags] export.json...
//	caseodds catalog  [flags] ggdrop.json key-drop.json...
//	caseodds generate [flags]
//	caseodds simulate [flags] export.json
//	caseodds serve    [flags]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/config"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/logger"
)

const usage = `usage: caseodds <command> [flags] [files...]

commands:
  analyze   summarize site exports into CSV
  catalog   price statistics of site catalog listings
  generate  generate a synthetic item table
  simulate  Monte Carlo openings of one export
  serve     run the HTTP API
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		slog.Error("caseodds failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "analyze":
		return runAnalyze(ctx, rest, stdout)
	case "catalog":
		return runCatalog(rest, stdout)
	case "generate":
		return runGenerate(rest, stdout)
	case "simulate":
		return runSimulate(ctx, rest, stdout)
	case "serve":
		return runServe(ctx, rest)
	case "help", "-h", "-help", "--help":
		return errUsage
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// settingsFlags are shared by every command that reads configuration.
type settingsFlags struct {
	dir     string
	profile string
	file    string
	envFile string

	loader *config.Loader
}

func (f *settingsFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.dir, "config-dir", "configs", "directory holding default.yaml and profiles/")
	fs.StringVar(&f.profile, "profile", "", "profile to merge over default.yaml")
	fs.StringVar(&f.file, "config", "", "single config file, overrides -config-dir")
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file with CASEODDS_* overrides")
}

// paths lists the files the settings were read from, for watch mode.
func (f *settingsFlags) paths() []string {
	if f.file != "" {
		return []string{f.file}
	}
	return f.getLoader().Paths(f.profile)
}

func (f *settingsFlags) getLoader() *config.Loader {
	if f.loader == nil {
		f.loader = config.NewLoader(f.dir)
	}
	return f.loader
}

// reload drops cached files before loading again.
func (f *settingsFlags) reload() (config.Settings, error) {
	f.getLoader().Invalidate()
	return f.load()
}

// load resolves settings from files and the environment and installs the
// default logger.
func (f *settingsFlags) load() (config.Settings, error) {
	config.LoadDotEnv(f.envFile)

	var (
		s   config.Settings
		err error
	)
	if f.file != "" {
		s, err = config.LoadFile(f.file)
	} else {
		s, err = f.getLoader().Load(f.profile)
	}
	if err != nil {
		return config.Settings{}, fmt.Errorf("load config: %w", err)
	}
	if s, err = config.ApplyEnv(s); err != nil {
		return config.Settings{}, err
	}
	logger.Init(s.Log, os.Stderr)
	return s, nil
}

// openOut returns stdout for "" or "-", otherwise creates the file.
func openOut(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
