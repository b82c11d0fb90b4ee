package intelgraph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/obscura-osint/intelgraph/entity"
	"github.com/obscura-osint/intelgraph/extract"
	"github.com/obscura-osint/intelgraph/followup"
	"github.com/obscura-osint/intelgraph/report"
	"github.com/obscura-osint/intelgraph/store"
)

// Pipeline wires the extraction, storage, and follow-up stages behind a
// single entry point. It acts as the central coordinator:
//
//   - Reports: persisted investigation reports, queryable by ID and username
//   - Entities: the Redis-backed cross-report entity store
//   - Extraction: report scanning and entity categorization
//   - Follow-ups: prioritized next-search suggestions
type Pipeline struct {
	rdb       *redis.Client
	ownsRdb   bool
	reports   *report.Store
	entities  *store.Store
	extractor *extract.Extractor
	followups *followup.Generator
	logger    *slog.Logger

	keywordMinLength int
	keywordLimit     int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the structured logger used by the pipeline and every stage
// it constructs.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithClient makes the pipeline use an existing Redis client instead of
// opening its own connection. The caller remains responsible for closing the
// client.
func WithClient(client *redis.Client) PipelineOption {
	return func(p *Pipeline) {
		p.rdb = client
		p.ownsRdb = false
	}
}

// NewPipeline builds a Pipeline from configuration. Unless WithClient is
// given, it opens and verifies a Redis connection, which Close releases.
func NewPipeline(cfg *Config, opts ...PipelineOption) (*Pipeline, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	p := &Pipeline{
		logger:           slog.Default(),
		keywordMinLength: cfg.Extraction.GetKeywordMinLength(),
		keywordLimit:     cfg.Extraction.GetKeywordLimit(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.rdb == nil {
		ropts, err := redis.ParseURL(cfg.Redis.GetURL())
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		ropts.DialTimeout = cfg.Redis.GetConnectTimeout()
		ropts.ReadTimeout = cfg.Redis.GetReadTimeout()
		ropts.WriteTimeout = cfg.Redis.GetWriteTimeout()

		p.rdb = redis.NewClient(ropts)
		p.ownsRdb = true

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.GetConnectTimeout())
		defer cancel()
		if err := p.rdb.Ping(ctx).Err(); err != nil {
			p.rdb.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
	}

	p.reports = report.NewStore(p.rdb, report.WithLogger(p.logger))
	p.entities = store.New(p.rdb,
		store.WithLogger(p.logger),
		store.WithReportSource(p.reports),
	)
	p.extractor = extract.New(extract.WithLogger(p.logger))
	p.followups = followup.New(followup.WithLogger(p.logger))

	return p, nil
}

// Result is the outcome of processing one report through the pipeline.
type Result struct {
	// ReportID identifies the processed report.
	ReportID string `json:"report_id"`

	// Entities holds the extracted, deduplicated entities by category.
	Entities entity.Set `json:"entities"`

	// EntityCount is the total number of entities across all categories.
	EntityCount int `json:"entity_count"`

	// Suggestions are the prioritized follow-up recommendations.
	Suggestions []followup.Suggestion `json:"suggestions"`

	// ProcessedAt is when the pipeline finished the report.
	ProcessedAt time.Time `json:"processed_at"`
}

// ProcessReport runs a report through the full pipeline: the report is
// persisted, its entities extracted and indexed in the entity store, and
// follow-up suggestions generated.
func (p *Pipeline) ProcessReport(ctx context.Context, rpt *report.Report) (*Result, error) {
	if rpt == nil || rpt.ReportID == "" {
		return nil, store.ErrInvalidReportID
	}

	if err := p.reports.Save(ctx, rpt); err != nil {
		return nil, fmt.Errorf("saving report %s: %w", rpt.ReportID, err)
	}

	entities := p.extractor.Extract(rpt)
	if err := p.entities.Store(ctx, rpt.ReportID, entities); err != nil {
		return nil, fmt.Errorf("storing entities for report %s: %w", rpt.ReportID, err)
	}

	suggestions := p.followups.Generate(rpt.ReportID, entities, rpt.Username)

	p.logger.Info("processed report",
		"report_id", rpt.ReportID,
		"username", rpt.Username,
		"entities", entities.Total(),
		"suggestions", len(suggestions))

	return &Result{
		ReportID:    rpt.ReportID,
		Entities:    entities,
		EntityCount: entities.Total(),
		Suggestions: suggestions,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// Reports returns the report store for direct report queries.
func (p *Pipeline) Reports() *report.Store {
	return p.reports
}

// Entities returns the entity store for linked-report, graph, and search
// queries.
func (p *Pipeline) Entities() *store.Store {
	return p.entities
}

// Keywords extracts investigation keywords from free text using the
// configured length and count limits.
func (p *Pipeline) Keywords(text string) []string {
	return extract.Keywords(text, p.keywordMinLength, p.keywordLimit)
}

// Close releases the pipeline's Redis connection if the pipeline opened it.
func (p *Pipeline) Close() error {
	if p.ownsRdb && p.rdb != nil {
		return p.rdb.Close()
	}
	return nil
}
