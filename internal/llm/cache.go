package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/boataniq/boataniq/internal/analysis"
	"github.com/rs/zerolog/log"
)

// ResultCache persists analysis results keyed by image hash. Cache errors
// are never fatal for an analysis request.
type ResultCache interface {
	GetAnalysisCache(imageHash string) (*analysis.Result, error)
	SetAnalysisCache(imageHash string, r *analysis.Result) error
}

// CachedAnalyzer wraps an Analyzer with a content-addressed result cache so
// re-analyzing an identical image does not cost a second backend call.
type CachedAnalyzer struct {
	inner Analyzer
	cache ResultCache
}

// NewCachedAnalyzer creates a cached analyzer.
func NewCachedAnalyzer(inner Analyzer, cache ResultCache) *CachedAnalyzer {
	return &CachedAnalyzer{inner: inner, cache: cache}
}

func hashImage(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return hex.EncodeToString(sum[:])
}

// ModelInfo implements the Analyzer interface.
func (c *CachedAnalyzer) ModelInfo() ModelInfo {
	return c.inner.ModelInfo()
}

// AnalyzeBoatImage implements the Analyzer interface with caching.
func (c *CachedAnalyzer) AnalyzeBoatImage(ctx context.Context, imageData []byte, mimeType string) (*analysis.Result, error) {
	hash := hashImage(imageData)

	if c.cache != nil {
		cached, err := c.cache.GetAnalysisCache(hash)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check analysis cache")
		} else if cached != nil {
			log.Debug().Str("hash", hash[:16]).Msg("analysis cache hit")
			return cached, nil
		}
	}

	result, err := c.inner.AnalyzeBoatImage(ctx, imageData, mimeType)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SetAnalysisCache(hash, result); err != nil {
			log.Warn().Err(err).Msg("failed to cache analysis result")
		} else {
			log.Debug().Str("hash", hash[:16]).Msg("analysis result cached")
		}
	}

	return result, nil
}
