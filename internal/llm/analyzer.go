// Package llm provides the hosted-model analyzer backends: a Gemini API-key
// backend, a Vertex AI credentialed backend, a fixed-order provider selector
// and a caching wrapper.
package llm

import (
	"context"

	"github.com/boataniq/boataniq/internal/analysis"
)

// ModelInfo describes the concrete backend behind an Analyzer.
type ModelInfo struct {
	ModelName    string `json:"model_name"`
	Provider     string `json:"provider"`
	AnalyzerType string `json:"analyzer_type"`
}

// Analyzer can analyze a boat image into a canonical identification result.
// A transport, auth or quota failure is returned as an error; a successful
// call always yields a normalized result, which may still be rejected by the
// validation gate downstream.
type Analyzer interface {
	AnalyzeBoatImage(ctx context.Context, imageData []byte, mimeType string) (*analysis.Result, error)
	ModelInfo() ModelInfo
}
