package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Common errors returned by report persistence operations.
var (
	// ErrNotFound is returned when the requested report does not exist.
	ErrNotFound = errors.New("report: not found")

	// ErrInvalidID is returned when a report ID is empty.
	ErrInvalidID = errors.New("report: invalid report id")
)

const (
	indexKey          = "reports:index"
	usernameKeyPrefix = "reports:username:"
)

// Store persists reports in Redis.
//
// Reports live under report:{id} as JSON, with a recency-sorted index in
// reports:index (scored by creation time) and a per-username membership set
// in reports:username:{username}.
type Store struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger used by the store.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a report Store on top of an existing Redis client.
// The client is shared, not owned: closing it is the caller's responsibility.
func NewStore(client *redis.Client, opts ...StoreOption) *Store {
	s := &Store{
		rdb:    client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary is a listing entry for a stored report.
type Summary struct {
	ReportID  string    `json:"report_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func reportKey(id string) string {
	return "report:" + id
}

// Save persists a report and updates the recency and username indices.
func (s *Store) Save(ctx context.Context, r *Report) error {
	if r.ReportID == "" {
		return ErrInvalidID
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report %s: %w", r.ReportID, err)
	}

	if err := s.rdb.Set(ctx, reportKey(r.ReportID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save report %s: %w", r.ReportID, err)
	}

	if err := s.rdb.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(r.CreatedAt.Unix()),
		Member: r.ReportID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index report %s: %w", r.ReportID, err)
	}

	if r.Username != "" {
		if err := s.rdb.SAdd(ctx, usernameKeyPrefix+r.Username, r.ReportID).Err(); err != nil {
			return fmt.Errorf("failed to index report %s by username: %w", r.ReportID, err)
		}
	}

	s.logger.Info("saved report", "report_id", r.ReportID, "username", r.Username)
	return nil
}

// Get retrieves a report by ID. Returns ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, reportID string) (*Report, error) {
	if reportID == "" {
		return nil, ErrInvalidID
	}

	data, err := s.rdb.Get(ctx, reportKey(reportID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report %s: %w", reportID, err)
	}

	var r Report
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", reportID, err)
	}
	return &r, nil
}

// List returns report summaries sorted by creation time, newest first.
// Reports present in the index but missing their data key are skipped.
func (s *Store) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 100
	}

	ids, err := s.rdb.ZRevRange(ctx, indexKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		r, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		summaries = append(summaries, Summary{
			ReportID:  r.ReportID,
			Username:  r.Username,
			CreatedAt: r.CreatedAt,
		})
	}
	return summaries, nil
}

// ByUsername returns the IDs of every report for the given search subject.
func (s *Store) ByUsername(ctx context.Context, username string) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, usernameKeyPrefix+username).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for username %s: %w", username, err)
	}
	return ids, nil
}

// Delete removes a report and its index entries. Deleting a report that does
// not exist returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, reportID string) error {
	r, err := s.Get(ctx, reportID)
	if err != nil {
		return err
	}

	if err := s.rdb.Del(ctx, reportKey(reportID)).Err(); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", reportID, err)
	}
	if err := s.rdb.ZRem(ctx, indexKey, reportID).Err(); err != nil {
		return fmt.Errorf("failed to unindex report %s: %w", reportID, err)
	}
	if r.Username != "" {
		if err := s.rdb.SRem(ctx, usernameKeyPrefix+r.Username, reportID).Err(); err != nil {
			return fmt.Errorf("failed to unindex report %s by username: %w", reportID, err)
		}
	}

	s.logger.Info("deleted report", "report_id", reportID)
	return nil
}
