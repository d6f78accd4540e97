package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/boataniq/boataniq/internal/analysis"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

// Gemini Flash pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.10 // $0.10 per 1M input tokens (text/image)
	geminiOutputPricePerMillion = 0.40 // $0.40 per 1M output tokens
)

const boatAnalysisPrompt = `You are an expert marine analyst. Analyze this boat image and provide detailed information about the boat.

CRITICAL VALIDATION: Before analyzing, you MUST validate the image:
1. Is this image actually a boat? (not a car, plane, building, or other object)
2. Is the image clear and not too blurry?
3. Is the boat clearly visible and from a reasonable angle?
4. Can you see enough detail to identify the boat?

If the image is NOT suitable (not a boat, too blurry, wrong angle, unclear), set "is_valid_image" to false and "rejection_reason" with a clear explanation. Do NOT proceed with analysis if the image is unsuitable.

Respond with a JSON object containing the following fields:

{
    "is_valid_image": true,
    "rejection_reason": null,
    "image_quality_assessment": "Assessment of image quality (Clear, Acceptable, Blurry, Poor)",
    "boat_type": "Type of boat (e.g., Sailing Yacht, Motorboat, Cruiser, etc.)",
    "brand": "Brand name if identifiable (e.g., Bavaria, Beneteau, etc.)",
    "model": "Specific model if identifiable",
    "estimated_year": "Estimated year of manufacture (range if uncertain)",
    "length_estimate": "Estimated length in meters",
    "width_estimate": "Estimated width in meters",
    "hull_material": "Hull material if identifiable (e.g., Fiberglass, Steel, etc.)",
    "engine_type": "Engine type if visible (e.g., Inboard, Outboard, Sail)",
    "key_features": ["List of key visible features"],
    "condition": "Overall condition assessment",
    "price_estimate": "Estimated price range if possible",
    "confidence": "Confidence level (0-100) of the analysis. MUST be honest - if image is unclear or not a boat, set confidence below 30",
    "detailed_description": "Detailed description of what you see in the image"
}

Guidelines:
- FIRST: Validate if this is actually a boat image. If not, set is_valid_image=false and provide rejection_reason
- If image is blurry, unclear, or from a bad angle, set is_valid_image=false with appropriate rejection_reason
- Be honest about confidence - if uncertain, set confidence below 50. If very uncertain or image is poor quality, set below 30
- Only include information you can actually see or reasonably infer from the image
- REJECTION REASONS should be clear and helpful: "Image is too blurry", "This does not appear to be a boat", "Boat is not clearly visible", "Image angle is too extreme", etc.

Respond ONLY with the JSON object, no markdown or other text.`

// GeminiAnalyzer uses the Gemini API with an API key for boat image analysis.
type GeminiAnalyzer struct {
	client *genai.Client
}

// NewGeminiAnalyzer creates a new Gemini-based analyzer.
// It uses the GEMINI_API_KEY environment variable for authentication.
func NewGeminiAnalyzer(ctx context.Context) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiAnalyzer{client: client}, nil
}

// ModelInfo implements the Analyzer interface.
func (g *GeminiAnalyzer) ModelInfo() ModelInfo {
	return ModelInfo{
		ModelName:    geminiModel,
		Provider:     "Google AI Studio",
		AnalyzerType: "gemini-api",
	}
}

// AnalyzeBoatImage implements the Analyzer interface using Gemini.
func (g *GeminiAnalyzer) AnalyzeBoatImage(ctx context.Context, imageData []byte, mimeType string) (*analysis.Result, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(boatAnalysisPrompt),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, geminiModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	r := analysis.Normalize(result.Text())
	info := g.ModelInfo()
	r.ModelUsed = info.ModelName
	r.AnalyzerType = info.AnalyzerType

	logUsage(geminiModel, result.UsageMetadata, geminiInputPricePerMillion, geminiOutputPricePerMillion)

	return r, nil
}

// logUsage emits one token usage and cost line per vision call.
func logUsage(model string, usage *genai.GenerateContentResponseUsageMetadata, inputPrice, outputPrice float64) {
	if usage == nil {
		return
	}
	inputTokens := int64(usage.PromptTokenCount)
	outputTokens := int64(usage.CandidatesTokenCount)
	log.Info().
		Str("model", model).
		Int64("inputTokens", inputTokens).
		Int64("outputTokens", outputTokens).
		Float64("costUSD", calculateCost(inputTokens, outputTokens, inputPrice, outputPrice)).
		Msg("boat vision llm call")
}

func calculateCost(inputTokens, outputTokens int64, inputPrice, outputPrice float64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * inputPrice
	outputCost := float64(outputTokens) / 1_000_000 * outputPrice
	return inputCost + outputCost
}
