package pipeline

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of profile embeddings kept in memory.
// At 384 dimensions * 4 bytes * 1024 entries this is about 1.5MB.
const DefaultCacheSize = 1024

type vectorEntry struct {
	context string
	vector  []float32
}

// VectorCache memoizes per-profile embeddings so repeated matching runs do
// not re-embed unchanged profiles. Entries are keyed by profile id and hold
// the exact context string the vector was derived from; a lookup with a
// different context is a miss and recomputes. The underlying LRU is safe for
// concurrent use; concurrent misses for the same id may compute twice, the
// last write wins.
type VectorCache struct {
	embed   EmbedFunc
	entries *lru.Cache[int64, vectorEntry]
	store   EmbeddingStore
	log     *slog.Logger
}

// NewVectorCache creates a cache around the given embedder.
func NewVectorCache(embed EmbedFunc, size int) *VectorCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, _ := lru.New[int64, vectorEntry](size)
	return &VectorCache{
		embed:   embed,
		entries: entries,
		log:     slog.Default(),
	}
}

// SetStore attaches a persistent embedding store. Misses consult the store
// before computing, and computed vectors are written through best-effort.
func (c *VectorCache) SetStore(store EmbeddingStore) {
	c.store = store
}

// SetLogger sets the logger used for write-through warnings.
func (c *VectorCache) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.log = logger
	}
}

// GetOrCompute returns the cached vector for the profile id when the stored
// context matches, otherwise computes, caches and returns a fresh one.
func (c *VectorCache) GetOrCompute(id int64, context string) ([]float32, error) {
	if entry, ok := c.entries.Get(id); ok && entry.context == context {
		return entry.vector, nil
	}

	// Warm start from the persistent store when available
	if c.store != nil {
		storedContext, vector, err := c.store.LoadEmbedding(id)
		if err == nil && storedContext == context && len(vector) > 0 {
			c.entries.Add(id, vectorEntry{context: context, vector: vector})
			return vector, nil
		}
	}

	vector, err := c.embed(context)
	if err != nil {
		return nil, err
	}

	c.entries.Add(id, vectorEntry{context: context, vector: vector})

	if c.store != nil {
		if err := c.store.SaveEmbedding(id, context, vector); err != nil {
			// The cache stays correct without the store, so only warn
			c.log.Warn("Failed to persist embedding", slog.Int64("profile_id", id), slog.String("error", err.Error()))
		}
	}

	return vector, nil
}

// Embed computes an embedding without identity-keyed caching, for ad-hoc
// query text that does not belong to a stored profile.
func (c *VectorCache) Embed(context string) ([]float32, error) {
	return c.embed(context)
}

// Invalidate drops the cached and persisted vector for a profile id.
// Must be called whenever a profile's bio or skills are edited.
func (c *VectorCache) Invalidate(id int64) {
	c.entries.Remove(id)

	if c.store != nil {
		if err := c.store.ClearEmbedding(id); err != nil {
			c.log.Warn("Failed to clear persisted embedding", slog.Int64("profile_id", id), slog.String("error", err.Error()))
		}
	}
}

// Len returns the number of cached entries.
func (c *VectorCache) Len() int {
	return c.entries.Len()
}
