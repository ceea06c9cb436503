package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/export"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/simulate"
)

func runGenerate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	var sf settingsFlags
	sf.register(fs)
	var in generator.Input
	fs.Float64Var(&in.CasePrice, "case-price", 0, "case price in dollars")
	fs.Float64Var(&in.TargetReturnPercentage, "target", 90, "target return percentage")
	fs.Float64Var(&in.MinPrice, "min", 0.01, "cheapest item price")
	fs.Float64Var(&in.MaxPrice, "max", 0, "most expensive item price")
	fs.IntVar(&in.ItemCount, "items", 20, "number of items")
	tiered := fs.String("tiered", "", "five comma separated tier proportions, e.g. 0.4,0.3,0.2,0.07,0.03")
	out := fs.String("out", "", "CSV output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := sf.load()
	if err != nil {
		return err
	}
	src := s.NewSource()

	w, closeOut, err := openOut(*out, stdout)
	if err != nil {
		return err
	}

	if *tiered != "" {
		props, err := parseTiers(*tiered)
		if err != nil {
			_ = closeOut()
			return err
		}
		res, err := generator.GenerateTiered(in, props, s.Compare.Improved, src)
		if err != nil {
			_ = closeOut()
			return err
		}
		slog.Info("generated tiered table", "items", len(res.Items), "exponent", res.Exponent, "return_percentage", res.ReturnPercentage)
		if err := export.WriteGenerated(w, res); err != nil {
			_ = closeOut()
			return fmt.Errorf("write table: %w", err)
		}
		return closeOut()
	}

	cmp, err := generator.Compare(in, src, s.Compare)
	if err != nil {
		_ = closeOut()
		return err
	}
	slog.Info("generated comparison",
		"original_return_percentage", cmp.Original.ReturnPercentage,
		"improved_return_percentage", cmp.Improved.ReturnPercentage)
	if err := export.WriteComparison(w, cmp); err != nil {
		_ = closeOut()
		return fmt.Errorf("write comparison: %w", err)
	}
	return closeOut()
}

func parseTiers(s string) (generator.TierProportions, error) {
	var props generator.TierProportions
	parts := strings.Split(s, ",")
	if len(parts) != len(props) {
		return props, fmt.Errorf("-tiered needs %d proportions, got %d", len(props), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return props, fmt.Errorf("-tiered entry %d: %w", i+1, err)
		}
		props[i] = v
	}
	return props, nil
}

func runSimulate(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	var sf settingsFlags
	sf.register(fs)
	site := fs.String("site", "", "site key (default: derived from the file name)")
	var p simulate.Params
	var goal string
	fs.StringVar(&goal, "goal", "", "fixed_budget or first_hit (default from config)")
	fs.IntVar(&p.Trials, "trials", 0, "number of trials (default from config)")
	fs.IntVar(&p.Openings, "openings", 0, "openings per fixed_budget trial (default from config)")
	fs.Float64Var(&p.HitRatio, "hit-ratio", 0, "first_hit target as a multiple of the case price (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("simulate needs exactly one export file: %w", errUsage)
	}

	s, err := sf.load()
	if err != nil {
		return err
	}
	params := s.Simulation
	if goal != "" {
		params.Goal = simulate.TrialGoal(goal)
	}
	if p.Trials > 0 {
		params.Trials = p.Trials
	}
	if p.Openings > 0 {
		params.Openings = p.Openings
	}
	if p.HitRatio > 0 {
		params.HitRatio = p.HitRatio
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	key := *site
	if key == "" {
		key = adapter.SiteKey(path)
	}
	c, err := adapter.Default().NormalizeBytes(key, data)
	if err != nil {
		return err
	}
	stats, err := simulate.RunContext(ctx, c, params, s.NewSource())
	if err != nil {
		return fmt.Errorf("simulate %s: %w", path, err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Site   string          `json:"site"`
		Case   string          `json:"case"`
		Params simulate.Params `json:"params"`
		Stats  simulate.Stats  `json:"stats"`
	}{c.Site, c.Name, params, stats})
}
