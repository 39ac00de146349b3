// Package analysis orchestrates the squares and props engines into report
// envelopes, caches them, and renders them for export.
package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Report kinds, used as the leading cache-key segment and as the
// report_type metric label.
const (
	reportSquares   = "squares"
	reportPlayer    = "player"
	reportGameProps = "game_props"
)

// maxCachedReports bounds the cache before expired entries are reaped.
const maxCachedReports = 256

// cacheNamespace scopes report digests away from other NewSHA1 users.
var cacheNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("gridiron-edge/report-cache"))

// CacheKey identifies one report by kind, dataset digest, and options digest.
type CacheKey struct {
	Report  string
	Dataset uuid.UUID
	Options uuid.UUID
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Report, k.Dataset, k.Options)
}

// digest hashes any JSON-serializable value into a stable UUID. encoding/json
// sorts map keys, so equal values always digest equally.
func digest(v any) uuid.UUID {
	data, err := json.Marshal(v)
	if err != nil {
		return uuid.Nil
	}
	return uuid.NewSHA1(cacheNamespace, data)
}

// ReportCache provides in-memory caching for generated reports
type ReportCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewReportCache creates a new report cache
func NewReportCache(ttl, cleanupInterval time.Duration) *ReportCache {
	return &ReportCache{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// GetSquares retrieves a cached squares report, or nil on miss.
func (rc *ReportCache) GetSquares(key CacheKey) *models.SquaresReport {
	if report, ok := rc.get(key).(*models.SquaresReport); ok {
		return report
	}
	return nil
}

// GetPlayer retrieves a cached player report, or nil on miss.
func (rc *ReportCache) GetPlayer(key CacheKey) *models.PlayerReport {
	if report, ok := rc.get(key).(*models.PlayerReport); ok {
		return report
	}
	return nil
}

// GetGameProps retrieves a cached game prop report, or nil on miss.
func (rc *ReportCache) GetGameProps(key CacheKey) *models.GamePropsReport {
	if report, ok := rc.get(key).(*models.GamePropsReport); ok {
		return report
	}
	return nil
}

func (rc *ReportCache) get(key CacheKey) any {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if result, found := rc.cache.Get(key.String()); found {
		rc.hitCount++
		metrics.RecordCacheHit()
		return result
	}

	rc.missCount++
	metrics.RecordCacheMiss()
	return nil
}

// Set stores a report in cache
func (rc *ReportCache) Set(key CacheKey, report any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	// Check size limit
	if rc.cache.ItemCount() >= maxCachedReports {
		// Remove expired items first
		rc.cache.DeleteExpired()
	}

	rc.cache.Set(key.String(), report, rc.ttl)
}

// Invalidate removes all cache entries for one report kind.
// Cache key format: report:datasetDigest:optionsDigest
func (rc *ReportCache) Invalidate(report string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	prefix := report + ":"
	for k := range rc.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			rc.cache.Delete(k)
		}
	}
}

// Clear flushes the entire cache
func (rc *ReportCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache.Flush()
	rc.hitCount = 0
	rc.missCount = 0
}

// Stats returns cache statistics
func (rc *ReportCache) Stats() (hits, misses uint64, ratio float64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	hits = rc.hitCount
	misses = rc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (rc *ReportCache) ItemCount() int {
	return rc.cache.ItemCount()
}
