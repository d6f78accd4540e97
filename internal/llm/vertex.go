package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cloud.google.com/go/auth/credentials"
	"github.com/boataniq/boataniq/internal/analysis"
	"google.golang.org/genai"
)

const (
	vertexModel           = "gemini-2.0-flash-001"
	defaultVertexLocation = "us-central1"
)

// Vertex AI Gemini Flash pricing (per million tokens)
const (
	vertexInputPricePerMillion  = 0.15
	vertexOutputPricePerMillion = 0.60
)

// VertexAnalyzer uses Vertex AI with service account credentials for boat
// image analysis. It is the preferred backend when GCP credentials are
// available.
type VertexAnalyzer struct {
	client  *genai.Client
	project string
}

// NewVertexAnalyzerFromJSON creates a Vertex-backed analyzer from a service
// account credentials blob (the GCP_CREDENTIALS_JSON deployment path). The
// GCP project is read from the blob itself.
func NewVertexAnalyzerFromJSON(ctx context.Context, credentialsJSON []byte) (*VertexAnalyzer, error) {
	if !json.Valid(credentialsJSON) {
		return nil, fmt.Errorf("credentials blob is not valid JSON")
	}
	return newVertexAnalyzer(ctx, credentialsJSON)
}

// NewVertexAnalyzerFromFile creates a Vertex-backed analyzer from a service
// account credentials file (local development path).
func NewVertexAnalyzerFromFile(ctx context.Context, path string) (*VertexAnalyzer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return newVertexAnalyzer(ctx, data)
}

func newVertexAnalyzer(ctx context.Context, credentialsJSON []byte) (*VertexAnalyzer, error) {
	project, err := projectFromCredentials(credentialsJSON)
	if err != nil {
		return nil, err
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		CredentialsJSON: credentialsJSON,
		Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build credentials: %w", err)
	}

	location := os.Getenv("GCP_LOCATION")
	if location == "" {
		location = defaultVertexLocation
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     project,
		Location:    location,
		Credentials: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexAnalyzer{client: client, project: project}, nil
}

// projectFromCredentials extracts the project_id field from a service
// account credentials blob.
func projectFromCredentials(credentialsJSON []byte) (string, error) {
	var blob struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(credentialsJSON, &blob); err != nil {
		return "", fmt.Errorf("failed to parse credentials JSON: %w", err)
	}
	if blob.ProjectID == "" {
		return "", fmt.Errorf("credentials JSON has no project_id")
	}
	return blob.ProjectID, nil
}

// ModelInfo implements the Analyzer interface.
func (v *VertexAnalyzer) ModelInfo() ModelInfo {
	return ModelInfo{
		ModelName:    vertexModel,
		Provider:     "Vertex AI",
		AnalyzerType: "vertex-ai",
	}
}

// AnalyzeBoatImage implements the Analyzer interface using Vertex AI.
func (v *VertexAnalyzer) AnalyzeBoatImage(ctx context.Context, imageData []byte, mimeType string) (*analysis.Result, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(boatAnalysisPrompt),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := v.client.Models.GenerateContent(ctx, vertexModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Vertex AI")
	}

	r := analysis.Normalize(result.Text())
	info := v.ModelInfo()
	r.ModelUsed = info.ModelName
	r.AnalyzerType = info.AnalyzerType

	logUsage(vertexModel, result.UsageMetadata, vertexInputPricePerMillion, vertexOutputPricePerMillion)

	return r, nil
}
