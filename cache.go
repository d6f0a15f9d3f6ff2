package linkage

import (
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"honnef.co/go/linkage/logging"
)

// DefaultCacheSize is the capacity of a [TrajectoryCache] created with a
// non-positive size.
const DefaultCacheSize = 16

type cacheKey struct {
	geometry Config
	mode     AssemblyMode
	step     float64
}

// String formats the key exactly; it names singleflight calls.
func (k cacheKey) String() string {
	g := k.geometry
	var b strings.Builder
	for _, f := range [...]float64{g.R1, g.R2, g.R3, g.R4, g.R6, g.Beta, k.step} {
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		b.WriteByte('/')
	}
	b.WriteString(k.mode.String())
	return b.String()
}

// TrajectoryCache memoizes [Sample]. Entries are keyed by the linkage's
// geometry, the assembly mode and the step; the driver angle of the config is
// ignored, so moving the crank does not invalidate the curve.
//
// The cache holds a bounded number of trajectories and evicts the least recently used
// one. It is safe for concurrent use; concurrent misses for the same key
// compute the trajectory once. Results are indistinguishable from calling
// Sample directly.
type TrajectoryCache struct {
	log     *zap.Logger
	entries *lru.Cache[cacheKey, Trajectory]
	group   singleflight.Group

	mu           sync.Mutex
	hits, misses int
}

// NewTrajectoryCache returns a cache holding up to size trajectories. A nil
// logger falls back to the global one.
func NewTrajectoryCache(size int, logger *zap.Logger) *TrajectoryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = logging.Global()
	}
	c := &TrajectoryCache{log: logger}
	// Only a non-positive size is an error.
	c.entries, _ = lru.NewWithEvict(size, func(key cacheKey, _ Trajectory) {
		c.log.Debug("trajectory cache eviction", zap.Stringer("key", key))
	})
	return c
}

// Sample returns the trajectory of cfg in the given mode. The caller owns the
// returned slice.
func (c *TrajectoryCache) Sample(cfg Config, mode AssemblyMode, step float64) Trajectory {
	if !mode.Valid() {
		mode = Open
	}
	key := cacheKey{geometry: cfg.Geometry(), mode: mode, step: step}
	if !isFinite(step) || hasNaN(key.geometry) {
		// NaN keys never compare equal and would never hit.
		return Sample(cfg, mode, step)
	}

	if traj, ok := c.get(key); ok {
		c.log.Debug("trajectory cache hit", zap.Stringer("key", key))
		return traj.Clone()
	}

	v, _, shared := c.group.Do(key.String(), func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if traj, ok := c.peek(key); ok {
			return traj, nil
		}
		traj := Sample(key.geometry, mode, step)
		c.put(key, traj)
		c.log.Debug("trajectory cache miss",
			zap.Stringer("key", key),
			zap.Int("samples", len(traj)))
		return traj, nil
	})
	if shared {
		c.log.Debug("trajectory shared with concurrent caller", zap.Stringer("key", key))
	}
	return v.(Trajectory).Clone()
}

// Trace samples cfg at [DefaultStep], memoized.
func (c *TrajectoryCache) Trace(cfg Config, mode AssemblyMode) Trajectory {
	return c.Sample(cfg, mode, DefaultStep)
}

func (c *TrajectoryCache) get(key cacheKey) (Trajectory, bool) {
	traj, ok := c.entries.Get(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return traj, ok
}

func (c *TrajectoryCache) peek(key cacheKey) (Trajectory, bool) {
	return c.entries.Peek(key)
}

func (c *TrajectoryCache) put(key cacheKey, traj Trajectory) {
	c.entries.Add(key, traj)
}

// Len returns the number of cached trajectories.
func (c *TrajectoryCache) Len() int {
	return c.entries.Len()
}

// Stats returns the number of lookups that did and did not find an entry.
func (c *TrajectoryCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Reset drops every entry and zeroes the statistics.
func (c *TrajectoryCache) Reset() {
	c.entries.Purge()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses = 0, 0
}

func hasNaN(cfg Config) bool {
	for _, f := range [...]float64{cfg.R1, cfg.R2, cfg.R3, cfg.R4, cfg.R6, cfg.Beta} {
		if f != f {
			return true
		}
	}
	return false
}
