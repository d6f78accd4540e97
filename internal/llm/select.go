package llm

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrNoAnalyzer is returned by Select when no backend could be constructed.
// Downstream analysis requests must fail fast with this condition rather
// than crash.
var ErrNoAnalyzer = errors.New("ai analyzer not available")

const defaultCredentialsPath = "gcp-credentials.json"

// Select constructs exactly one analyzer backend, trying each option in a
// fixed preference order. Every attempt is independent: a failure is logged
// and the next option is tried. Selection happens once at startup and the
// returned analyzer is shared read-only across requests.
//
// Order:
//  1. Vertex AI with a credentials blob from GCP_CREDENTIALS_JSON
//  2. Vertex AI with a credentials file from GCP_CREDENTIALS_PATH
//  3. Gemini API with GEMINI_API_KEY
func Select(ctx context.Context) (Analyzer, error) {
	if blob := strings.TrimSpace(os.Getenv("GCP_CREDENTIALS_JSON")); blob != "" {
		analyzer, err := NewVertexAnalyzerFromJSON(ctx, []byte(blob))
		if err == nil {
			log.Info().Str("model", vertexModel).Msg("vertex ai analyzer initialized from credentials blob")
			return analyzer, nil
		}
		log.Warn().Err(err).Msg("vertex ai initialization from GCP_CREDENTIALS_JSON failed, trying next option")
	}

	credentialsPath := os.Getenv("GCP_CREDENTIALS_PATH")
	if credentialsPath == "" {
		credentialsPath = defaultCredentialsPath
	}
	if _, err := os.Stat(credentialsPath); err == nil {
		analyzer, err := NewVertexAnalyzerFromFile(ctx, credentialsPath)
		if err == nil {
			log.Info().Str("model", vertexModel).Str("path", credentialsPath).Msg("vertex ai analyzer initialized from credentials file")
			return analyzer, nil
		}
		log.Warn().Err(err).Str("path", credentialsPath).Msg("vertex ai initialization from credentials file failed, trying next option")
	}

	if os.Getenv("GEMINI_API_KEY") != "" {
		analyzer, err := NewGeminiAnalyzer(ctx)
		if err == nil {
			log.Info().Str("model", geminiModel).Msg("gemini analyzer initialized from api key")
			return analyzer, nil
		}
		log.Warn().Err(err).Msg("gemini initialization failed")
	}

	log.Warn().Msg("no analyzer backend available; image analysis is disabled")
	return nil, ErrNoAnalyzer
}
