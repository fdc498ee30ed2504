package pipeline

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/siherrmann/matchmaker/helper"
	"github.com/siherrmann/matchmaker/model"
)

// DefaultEmbedder creates an embedder using a real sentence transformer model.
// Uses the all-MiniLM-L6-v2 model which produces 384-dimensional embeddings.
// The model is loaded once; the returned EmbedFunc shares it and is safe for
// concurrent use. Load failures wrap model.ErrConfiguration and are fatal at
// startup, never per-request.
func DefaultEmbedder() (EmbedFunc, error) {
	// Prepare model (download if needed)
	modelName := "sentence-transformers/all-MiniLM-L6-v2"
	modelPath, err := helper.PrepareModel(modelName, "onnx/model.onnx")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfiguration, err)
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create hugot session: %v", model.ErrConfiguration, err)
	}

	// Create sentence transformers pipeline configuration
	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("%w: failed to create sentence pipeline: %v (cleanup error: %v)", model.ErrConfiguration, err, destroyErr)
		}
		return nil, fmt.Errorf("%w: failed to create sentence pipeline: %v", model.ErrConfiguration, err)
	}

	return func(text string) ([]float32, error) {
		// Blank input carries no signal, skip the model entirely
		clean := strings.TrimSpace(text)
		if clean == "" {
			return ZeroVector(DefaultEmbeddingDim), nil
		}

		result, err := sentencePipeline.RunPipeline([]string{clean})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if len(result.Embeddings) == 0 {
			return nil, fmt.Errorf("no embedding generated")
		}

		return result.Embeddings[0], nil
	}, nil
}
