package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/obscura-osint/intelgraph/entity"
	"github.com/obscura-osint/intelgraph/report"
)

// instrumentationName identifies this package to OpenTelemetry.
const instrumentationName = "github.com/obscura-osint/intelgraph/store"

// Common errors returned by store operations.
var (
	// ErrInvalidReportID is returned when a report ID is empty.
	ErrInvalidReportID = errors.New("store: invalid report id")

	// ErrEntityNotFound is returned when the requested entity has no
	// canonical record.
	ErrEntityNotFound = errors.New("store: entity not found")
)

// ReportSource resolves report metadata for investigation-graph nodes.
// *report.Store satisfies this interface.
type ReportSource interface {
	Get(ctx context.Context, reportID string) (*report.Report, error)
}

// Record is the canonical registry entry for an entity.
//
// Data holds the attributes from the entity's first sighting and is immutable
// once written; LastUpdated refreshes on every subsequent sighting.
type Record struct {
	Category    entity.Category `json:"category"`
	Data        entity.Entity   `json:"data"`
	FirstSeen   time.Time       `json:"first_seen"`
	LastUpdated time.Time       `json:"last_updated"`
}

// Options configures the Redis connection for Open.
type Options struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// Store persists entities and their report relationships in Redis.
type Store struct {
	rdb     *redis.Client
	ownsRdb bool
	reports ReportSource
	logger  *slog.Logger
	tracer  trace.Tracer

	entitiesStored metric.Int64Counter
	linkQueries    metric.Int64Counter
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithReportSource wires a report lookup used to attach username and creation
// time metadata to investigation-graph nodes. Without a source, nodes carry
// only their ID and depth.
func WithReportSource(src ReportSource) Option {
	return func(s *Store) {
		s.reports = src
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// Defaults to the global provider (no-op unless configured).
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) {
		s.tracer = tp.Tracer(instrumentationName)
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider.
// Defaults to the global provider (no-op unless configured).
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Store) {
		s.initMetrics(mp.Meter(instrumentationName))
	}
}

// New creates a Store on top of an existing Redis client. The client is
// shared, not owned: closing it is the caller's responsibility.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		rdb:    client,
		logger: slog.Default(),
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.entitiesStored == nil {
		s.initMetrics(otel.Meter(instrumentationName))
	}
	return s
}

// Open connects to Redis with the given options and returns a Store that
// owns the connection. Close releases it.
func Open(opts Options, extra ...Option) (*Store, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s := New(client, extra...)
	s.ownsRdb = true
	return s, nil
}

// Close releases the Redis connection if the store owns it.
func (s *Store) Close() error {
	if s.ownsRdb {
		return s.rdb.Close()
	}
	return nil
}

// Available reports whether the backing store answers a ping.
func (s *Store) Available(ctx context.Context) bool {
	return s.rdb.Ping(ctx).Err() == nil
}

func (s *Store) initMetrics(meter metric.Meter) {
	var err error
	s.entitiesStored, err = meter.Int64Counter("intelgraph.store.entities_stored",
		metric.WithDescription("Number of entity observations written to the store"))
	if err != nil {
		s.logger.Warn("failed to create entities_stored counter", "error", err)
	}
	s.linkQueries, err = meter.Int64Counter("intelgraph.store.link_queries",
		metric.WithDescription("Number of linked-report queries served"))
	if err != nil {
		s.logger.Warn("failed to create link_queries counter", "error", err)
	}
}

// Store persists a report's entities and updates every index.
//
// For each entity it adds the report to the entity's reverse-index set,
// creates the canonical record if absent (otherwise refreshing only the
// last_updated timestamp), and registers the entity ID in its category
// registry. The raw per-category snapshot is persisted verbatim for exact
// replay, and the report is marked as having entities.
//
// All writes are idempotent: calling Store repeatedly with the same
// arguments, or concurrently for different reports, converges on the same
// state.
func (s *Store) Store(ctx context.Context, reportID string, entities entity.Set) error {
	if reportID == "" {
		return ErrInvalidReportID
	}

	ctx, span := s.tracer.Start(ctx, "store.Store", trace.WithAttributes(
		attribute.String("report.id", reportID),
		attribute.Int("entity.count", entities.Total()),
	))
	defer span.End()

	now := time.Now().UTC()
	stored := 0

	for _, category := range entity.AllCategories() {
		items := entities[category]
		if len(items) == 0 {
			continue
		}

		data, err := json.Marshal(items)
		if err != nil {
			return s.fail(span, fmt.Errorf("failed to marshal %s snapshot for report %s: %w", category, reportID, err))
		}
		if err := s.rdb.Set(ctx, reportEntitiesKey(reportID, category), data, 0).Err(); err != nil {
			return s.fail(span, fmt.Errorf("failed to write %s snapshot for report %s: %w", category, reportID, err))
		}

		for _, e := range items {
			if err := s.indexEntity(ctx, reportID, e, now); err != nil {
				return s.fail(span, err)
			}
			stored++
		}
	}

	summary, err := json.Marshal(entities.Counts())
	if err != nil {
		return s.fail(span, fmt.Errorf("failed to marshal entity summary for report %s: %w", reportID, err))
	}
	if err := s.rdb.HSet(ctx, reportMetaKey(reportID),
		"entities", summary,
		"entities_extracted_at", now.Format(time.RFC3339),
	).Err(); err != nil {
		return s.fail(span, fmt.Errorf("failed to write entity summary for report %s: %w", reportID, err))
	}

	if err := s.rdb.SAdd(ctx, reportsWithEntitiesKey, reportID).Err(); err != nil {
		return s.fail(span, fmt.Errorf("failed to mark report %s as having entities: %w", reportID, err))
	}

	if s.entitiesStored != nil {
		s.entitiesStored.Add(ctx, int64(stored))
	}
	s.logger.Info("stored entities", "report_id", reportID, "count", stored)
	return nil
}

// indexEntity updates the reverse index, canonical record, and category
// registry for a single entity observation.
func (s *Store) indexEntity(ctx context.Context, reportID string, e entity.Entity, now time.Time) error {
	entityID := e.ID()

	if err := s.rdb.SAdd(ctx, entityReportsKey(entityID), reportID).Err(); err != nil {
		return fmt.Errorf("failed to add report %s to entity %s: %w", reportID, entityID, err)
	}

	record := Record{
		Category:    e.Category,
		Data:        e,
		FirstSeen:   now,
		LastUpdated: now,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for entity %s: %w", entityID, err)
	}

	// SETNX makes record creation commutative under concurrent stores;
	// the loser of the race only refreshes last_updated below.
	created, err := s.rdb.SetNX(ctx, entityDataKey(entityID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create record for entity %s: %w", entityID, err)
	}
	if !created {
		if err := s.touchRecord(ctx, entityID, now); err != nil {
			return err
		}
	}

	if err := s.rdb.SAdd(ctx, categoryKey(e.Category), entityID).Err(); err != nil {
		return fmt.Errorf("failed to register entity %s in category %s: %w", entityID, e.Category, err)
	}
	return nil
}

// touchRecord refreshes last_updated on an existing canonical record,
// leaving the first-seen attributes untouched.
func (s *Store) touchRecord(ctx context.Context, entityID string, now time.Time) error {
	raw, err := s.rdb.Get(ctx, entityDataKey(entityID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Record deleted between SETNX and read; the next sighting recreates it.
			return nil
		}
		return fmt.Errorf("failed to read record for entity %s: %w", entityID, err)
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return fmt.Errorf("failed to unmarshal record for entity %s: %w", entityID, err)
	}
	record.LastUpdated = now

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for entity %s: %w", entityID, err)
	}
	if err := s.rdb.Set(ctx, entityDataKey(entityID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update record for entity %s: %w", entityID, err)
	}
	return nil
}

// ReportEntities returns the raw per-report entity snapshots, not the
// canonical merged records. With no categories given, all categories are
// returned; missing snapshots yield empty lists.
func (s *Store) ReportEntities(ctx context.Context, reportID string, categories ...entity.Category) (entity.Set, error) {
	if reportID == "" {
		return nil, ErrInvalidReportID
	}
	if len(categories) == 0 {
		categories = entity.AllCategories()
	}

	set := make(entity.Set, len(categories))
	for _, category := range categories {
		raw, err := s.rdb.Get(ctx, reportEntitiesKey(reportID, category)).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				set[category] = nil
				continue
			}
			return nil, fmt.Errorf("failed to read %s snapshot for report %s: %w", category, reportID, err)
		}

		var items []entity.Entity
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s snapshot for report %s: %w", category, reportID, err)
		}
		set[category] = items
	}
	return set, nil
}

// EntityData returns the canonical record for an entity.
// Returns ErrEntityNotFound if no record exists.
func (s *Store) EntityData(ctx context.Context, entityID string) (*Record, error) {
	raw, err := s.rdb.Get(ctx, entityDataKey(entityID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to read record for entity %s: %w", entityID, err)
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record for entity %s: %w", entityID, err)
	}
	return &record, nil
}

// EntityReports returns the IDs of every report mentioning an entity,
// sorted for deterministic output.
func (s *Store) EntityReports(ctx context.Context, entityID string) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, entityReportsKey(entityID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read reports for entity %s: %w", entityID, err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Statistics summarizes the stored entity population.
type Statistics struct {
	TotalReportsWithEntities int64                     `json:"total_reports_with_entities"`
	EntitiesByCategory       map[entity.Category]int64 `json:"entities_by_category"`
	TotalEntities            int64                     `json:"total_entities"`
}

// Stats returns aggregate statistics over all stored entities.
func (s *Store) Stats(ctx context.Context) (*Statistics, error) {
	total, err := s.rdb.SCard(ctx, reportsWithEntitiesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count reports with entities: %w", err)
	}

	stats := &Statistics{
		TotalReportsWithEntities: total,
		EntitiesByCategory:       make(map[entity.Category]int64),
	}
	for _, category := range entity.AllCategories() {
		count, err := s.rdb.SCard(ctx, categoryKey(category)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to count %s entities: %w", category, err)
		}
		stats.EntitiesByCategory[category] = count
		stats.TotalEntities += count
	}
	return stats, nil
}

// DeleteReportEntities removes a report from every entity's reverse-index
// set, garbage-collects entities whose report set becomes empty (their
// canonical record and category-registry membership are deleted), removes
// the report's snapshots, and unmarks the report as having entities.
//
// Idempotent. The returned bool is false when the report had no stored
// entity data to delete.
func (s *Store) DeleteReportEntities(ctx context.Context, reportID string) (bool, error) {
	if reportID == "" {
		return false, ErrInvalidReportID
	}

	ctx, span := s.tracer.Start(ctx, "store.DeleteReportEntities", trace.WithAttributes(
		attribute.String("report.id", reportID),
	))
	defer span.End()

	snapshot, err := s.ReportEntities(ctx, reportID)
	if err != nil {
		return false, s.fail(span, err)
	}
	if snapshot.Total() == 0 {
		return false, nil
	}

	for _, category := range entity.AllCategories() {
		for _, e := range snapshot[category] {
			entityID := e.ID()

			if err := s.rdb.SRem(ctx, entityReportsKey(entityID), reportID).Err(); err != nil {
				return false, s.fail(span, fmt.Errorf("failed to remove report %s from entity %s: %w", reportID, entityID, err))
			}

			remaining, err := s.rdb.SCard(ctx, entityReportsKey(entityID)).Result()
			if err != nil {
				return false, s.fail(span, fmt.Errorf("failed to count reports for entity %s: %w", entityID, err))
			}
			if remaining == 0 {
				if err := s.rdb.Del(ctx, entityDataKey(entityID)).Err(); err != nil {
					return false, s.fail(span, fmt.Errorf("failed to delete record for entity %s: %w", entityID, err))
				}
				if err := s.rdb.SRem(ctx, categoryKey(category), entityID).Err(); err != nil {
					return false, s.fail(span, fmt.Errorf("failed to unregister entity %s: %w", entityID, err))
				}
			}
		}
	}

	for _, category := range entity.AllCategories() {
		if err := s.rdb.Del(ctx, reportEntitiesKey(reportID, category)).Err(); err != nil {
			return false, s.fail(span, fmt.Errorf("failed to delete %s snapshot for report %s: %w", category, reportID, err))
		}
	}

	if err := s.rdb.SRem(ctx, reportsWithEntitiesKey, reportID).Err(); err != nil {
		return false, s.fail(span, fmt.Errorf("failed to unmark report %s: %w", reportID, err))
	}

	s.logger.Info("deleted entity data", "report_id", reportID)
	return true, nil
}

func (s *Store) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
