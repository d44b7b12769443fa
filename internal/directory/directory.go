// Package directory mirrors the team/user directory: immutable reference
// data about event owners, refreshed at most once per TTL and searchable by
// name, class and grade.
package directory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"schedview/internal/models"
)

// Lister fetches the owner roster from the remote directory.
type Lister interface {
	ListOwners(ctx context.Context) ([]models.OwnerSummary, error)
}

// SharedCache optionally persists the roster across processes (Redis). A nil
// cache disables sharing; the in-memory copy still honors the TTL.
type SharedCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const cacheKey = "directory:owners"

// Service caches the owner roster and answers lookups over it.
type Service struct {
	lister Lister
	cache  SharedCache
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.RWMutex
	owners      []models.OwnerSummary
	lastRefresh time.Time
	err         string
	refreshing  bool
}

// NewService constructs the directory. ttl <= 0 falls back to five minutes,
// the refresh interval the UI historically used.
func NewService(lister Lister, cache SharedCache, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{lister: lister, cache: cache, ttl: ttl, logger: logger}
}

// Refresh reloads the roster unless a fresh copy is already held and force
// is false. A failed refresh keeps the previous roster and records the
// error; a concurrent refresh is not started twice.
func (s *Service) Refresh(ctx context.Context, force bool) error {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return nil
	}
	if !force && !s.lastRefresh.IsZero() && time.Since(s.lastRefresh) < s.ttl {
		s.mu.Unlock()
		return nil
	}
	s.refreshing = true
	s.mu.Unlock()

	owners, err := s.lister.ListOwners(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	if err != nil {
		s.err = err.Error()
		s.logger.Warn("directory refresh failed", zap.Error(err))
		if len(s.owners) == 0 && s.cache != nil {
			var cached []models.OwnerSummary
			if hit, cacheErr := s.cache.Get(ctx, cacheKey, &cached); cacheErr == nil && hit {
				s.owners = cached
				s.logger.Info("directory served from shared cache", zap.Int("owners", len(cached)))
			}
		}
		return err
	}

	s.owners = owners
	s.lastRefresh = time.Now()
	s.err = ""
	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, cacheKey, owners, s.ttl); cacheErr != nil {
			s.logger.Warn("directory cache write failed", zap.Error(cacheErr))
		}
	}
	return nil
}

// Owners returns a copy of the roster.
func (s *Service) Owners() []models.OwnerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OwnerSummary(nil), s.owners...)
}

// ByID looks up one owner.
func (s *Service) ByID(id int64) (models.OwnerSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.owners {
		if o.ID == id {
			return o, true
		}
	}
	return models.OwnerSummary{}, false
}

// Search returns owners whose name, student id, class or grade contains the
// query, case-insensitively. An empty query returns everyone.
func (s *Service) Search(query string) []models.OwnerSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Owners()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OwnerSummary, 0)
	for _, o := range s.owners {
		if strings.Contains(strings.ToLower(o.FullName), query) ||
			strings.Contains(strings.ToLower(o.StudentID), query) ||
			strings.Contains(strings.ToLower(o.ClassName), query) ||
			strings.Contains(strings.ToLower(o.Grade), query) {
			out = append(out, o)
		}
	}
	return out
}

// FilterBy narrows the roster by exact class, grade and role. Empty
// arguments impose no restriction.
func (s *Service) FilterBy(className, grade, role string) []models.OwnerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OwnerSummary, 0)
	for _, o := range s.owners {
		if className != "" && o.ClassName != className {
			continue
		}
		if grade != "" && o.Grade != grade {
			continue
		}
		if role != "" && o.Role != role {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Classes returns the distinct class labels, sorted.
func (s *Service) Classes() []string {
	return s.distinct(func(o models.OwnerSummary) string { return o.ClassName })
}

// Grades returns the distinct grade labels, sorted.
func (s *Service) Grades() []string {
	return s.distinct(func(o models.OwnerSummary) string { return o.Grade })
}

func (s *Service) distinct(key func(models.OwnerSummary) string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, o := range s.owners {
		k := key(o)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Err returns the last refresh error message, empty when healthy.
func (s *Service) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// LastRefresh returns when the roster was last loaded successfully.
func (s *Service) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}
