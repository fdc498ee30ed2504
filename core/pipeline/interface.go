package pipeline

// DefaultEmbeddingDim is the dimensionality of the default embedding model
// (all-MiniLM-L6-v2).
const DefaultEmbeddingDim = 384

// EmbedFunc is a function that generates an embedding for text.
// Implementations must return the zero vector for empty or whitespace-only
// input instead of invoking the underlying model.
type EmbedFunc func(text string) ([]float32, error)

// EmbeddingStore persists (context, vector) pairs per profile id so a cache
// can warm-start across processes. Implemented by database.ProfilesDBHandler.
type EmbeddingStore interface {
	SaveEmbedding(id int64, context string, embedding []float32) error
	LoadEmbedding(id int64) (string, []float32, error)
	ClearEmbedding(id int64) error
}

// ZeroVector returns an all-zero embedding of the given dimensionality.
// The zero vector encodes "no information" and has defined cosine similarity 0.
func ZeroVector(dim int) []float32 {
	return make([]float32, dim)
}
