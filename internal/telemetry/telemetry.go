package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names
const (
	LabelSite   = "site"
	LabelReason = "reason"
	LabelMode   = "mode"
	LabelMethod = "method"
	LabelRoute  = "route"
	LabelStatus = "status"
)

// Failure reasons recorded on FilesFailed
const (
	ReasonUnknownSite = "unknown_site"
	ReasonMalformed   = "malformed"
	ReasonEmpty       = "empty"
	ReasonIO          = "io"
	ReasonOther       = "other"
)

// Generation modes recorded on Generations
const (
	ModeCompare = "compare"
	ModeTiered  = "tiered"
)

// Batch metrics
var (
	FilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseodds_files_processed_total",
			Help: "Export files normalized and summarized successfully",
		},
		[]string{LabelSite},
	)

	FilesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseodds_files_failed_total",
			Help: "Export files skipped because of an error",
		},
		[]string{LabelSite, LabelReason},
	)
)

// Generator metrics
var (
	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseodds_generations_total",
			Help: "Synthetic item tables generated",
		},
		[]string{LabelMode},
	)

	GenerationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caseodds_generation_cache_hits_total",
			Help: "Generation requests answered from the cache",
		},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseodds_http_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "caseodds_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)
)
