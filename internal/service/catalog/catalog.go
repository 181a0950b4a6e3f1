package catalog

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/util"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/pkg/errors"
	"go.uber.org/zap"
)

const (
	titleColumn        = "Game"
	availabilityColumn = "Available"
)

// Snapshot is an immutable membership set keyed by normalized title.
// Membership reads never fail; a missing or stale snapshot just answers
// "not found".
type Snapshot struct {
	titles   map[string]bool
	loadedAt time.Time
}

// Contains reports whether a normalized title is available in the catalog.
func (s *Snapshot) Contains(normalizedTitle string) bool {
	if s == nil || normalizedTitle == "" {
		return false
	}
	return s.titles[normalizedTitle]
}

// Size returns the number of distinct titles in the snapshot.
func (s *Snapshot) Size() int {
	if s == nil {
		return 0
	}
	return len(s.titles)
}

func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// SnapshotFromTitles builds a snapshot directly from raw titles, normalizing
// each one. Used by callers that already hold a title list and by tests.
func SnapshotFromTitles(titles []string) *Snapshot {
	m := make(map[string]bool, len(titles))
	for _, t := range titles {
		if key := util.NormalizeTitle(t); key != "" {
			m[key] = true
		}
	}
	return &Snapshot{titles: m, loadedAt: time.Now()}
}

// Service fetches the Game Pass CSV export and holds the current snapshot.
// The snapshot is replaced atomically on refresh; readers always see a
// complete set.
type Service struct {
	sourceURL  string
	httpClient *http.Client
	logger     *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewService(sourceURL string, logger *zap.Logger) *Service {
	return &Service{
		sourceURL: sourceURL,
		httpClient: &http.Client{
			Timeout: constants.APIConfig.RequestTimeout,
		},
		logger:   logger,
		snapshot: &Snapshot{titles: map[string]bool{}},
	}
}

// Current returns the active snapshot. Safe for concurrent use.
func (s *Service) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Refresh fetches the CSV export and swaps in a fresh snapshot. On any fetch
// or parse failure the previous snapshot stays in place and no error is
// returned to the caller; availability beats correctness here.
func (s *Service) Refresh(ctx context.Context) {
	snapshot, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("Catalog refresh failed, keeping previous snapshot",
			zap.String("url", s.sourceURL),
			zap.Int("previous_size", s.Current().Size()),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info("Catalog snapshot loaded",
		zap.Int("titles", snapshot.Size()),
	)
}

// StartRefreshLoop re-fetches the snapshot on a fixed interval until the
// context is cancelled. Staleness between refreshes is acceptable.
func (s *Service) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()
}

func (s *Service) fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, errors.NewServiceError("unexpected status "+resp.Status, "catalog", "fetch", nil)
	}

	return parseCSV(resp.Body)
}

func parseCSV(r io.Reader) (*Snapshot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	titleIdx, availIdx := 0, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case titleColumn:
			titleIdx = i
		case availabilityColumn:
			availIdx = i
		}
	}

	titles := make(map[string]bool)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if titleIdx >= len(record) {
			continue
		}

		key := util.NormalizeTitle(record[titleIdx])
		if key == "" {
			continue
		}

		available := true
		if availIdx >= 0 && availIdx < len(record) {
			available = strings.EqualFold(strings.TrimSpace(record[availIdx]), "yes")
		}
		// duplicates collapse; any available row wins
		if available {
			titles[key] = true
		}
	}

	return &Snapshot{titles: titles, loadedAt: time.Now()}, nil
}
