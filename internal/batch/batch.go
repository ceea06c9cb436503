package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/logger"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/metrics"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/telemetry"
)

// Source is one raw export. Name is the filename the site key is derived from.
type Source struct {
	Name string
	Data []byte
}

// Result is the outcome for one file. Exactly one of Summary or Err is meaningful.
type Result struct {
	File    string          `json:"file"`
	Site    string          `json:"site"`
	Case    models.Case     `json:"-"`
	Summary metrics.Summary `json:"summary"`
	Err     error           `json:"-"`
}

// Report collects the results of one run, in input order.
type Report struct {
	RunID     string   `json:"run_id"`
	Results   []Result `json:"results"`
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
}

// Summaries returns the summaries of the files that succeeded.
func (r Report) Summaries() []metrics.Summary {
	out := make([]metrics.Summary, 0, r.Processed)
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res.Summary)
		}
	}
	return out
}

// Failures returns the results that carry an error.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Processor normalizes and summarizes export files with a bounded number of
// workers. A failing file never aborts the rest of the batch.
type Processor struct {
	registry   *adapter.Registry
	thresholds distribution.Thresholds
	workers    int
	readFile   func(string) ([]byte, error)
}

// NewProcessor creates a processor; workers below 1 are treated as 1.
func NewProcessor(registry *adapter.Registry, th distribution.Thresholds, workers int) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		registry:   registry,
		thresholds: th,
		workers:    workers,
		readFile:   os.ReadFile,
	}
}

// ProcessFiles reads and processes the given paths.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string) Report {
	return p.run(ctx, paths, func(i int) Result {
		path := paths[i]
		data, err := p.readFile(path)
		if err != nil {
			return Result{File: path, Site: adapter.SiteKey(path), Err: fmt.Errorf("read %s: %w", path, err)}
		}
		return p.process(Source{Name: path, Data: data})
	})
}

// ProcessSources processes exports already held in memory.
func (p *Processor) ProcessSources(ctx context.Context, srcs []Source) Report {
	names := make([]string, len(srcs))
	for i, src := range srcs {
		names[i] = src.Name
	}
	return p.run(ctx, names, func(i int) Result {
		return p.process(srcs[i])
	})
}

func (p *Processor) run(ctx context.Context, names []string, do func(int) Result) Report {
	n := len(names)
	runID, ok := logger.RunIDFromContext(ctx)
	if !ok {
		runID = logger.GenerateID()
		ctx = logger.WithRunID(ctx, runID)
	}
	log := logger.FromContext(ctx)

	results := make([]Result, n)
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := min(p.workers, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = do(i)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// files never handed to a worker fail with the context error
			for j := i; j < n; j++ {
				results[j] = Result{File: names[j], Site: adapter.SiteKey(names[j]), Err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	report := Report{RunID: runID, Results: results}
	for _, res := range results {
		if res.Err == nil {
			report.Processed++
			telemetry.FilesProcessed.WithLabelValues(res.Site).Inc()
			continue
		}
		report.Failed++
		reason := failureReason(res.Err)
		telemetry.FilesFailed.WithLabelValues(res.Site, reason).Inc()
		log.Warn("skipping export file", "file", res.File, "site", res.Site, "reason", reason, "error", res.Err)
	}
	log.Info("batch finished", "files", n, "processed", report.Processed, "failed", report.Failed)
	return report
}

func (p *Processor) process(src Source) Result {
	site := adapter.SiteKey(src.Name)
	res := Result{File: src.Name, Site: site}

	c, err := p.registry.NormalizeBytes(site, src.Data)
	if err != nil {
		res.Err = err
		return res
	}
	if c.Name == "" {
		c.Name = src.Name
	}
	sum, err := metrics.Summarize(c, p.thresholds)
	if err != nil {
		res.Err = fmt.Errorf("summarize %s: %w", src.Name, err)
		return res
	}
	res.Case = c
	res.Summary = sum
	return res
}

func failureReason(err error) string {
	var pathErr *os.PathError
	switch {
	case errors.Is(err, adapter.ErrUnknownSite):
		return telemetry.ReasonUnknownSite
	case errors.Is(err, adapter.ErrMalformedData):
		return telemetry.ReasonMalformed
	case errors.Is(err, models.ErrEmptyItemSet):
		return telemetry.ReasonEmpty
	case errors.As(err, &pathErr):
		return telemetry.ReasonIO
	default:
		return telemetry.ReasonOther
	}
}
