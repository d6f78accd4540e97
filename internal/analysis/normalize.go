package analysis

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed vocabularies for the text-fallback scanner. List order is the
// tie-break: the first match wins.
var (
	fallbackBoatTypes = []string{"sailing yacht", "motorboat", "cruiser", "speedboat", "fishing boat", "catamaran"}
	fallbackBrands    = []string{"bavaria", "beneteau", "jeanneau", "princess", "sunseeker", "azimut", "ferretti"}
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var titleCaser = cases.Title(language.English)

// resultWire mirrors the model's JSON reply. Confidence is kept raw because
// models return it as either a number or a string; is_valid_image and
// rejection_reason are pointers so an omitted field is distinguishable from
// an explicit one (older, looser replies omit both).
type resultWire struct {
	BoatType            string            `json:"boat_type"`
	Brand               string            `json:"brand"`
	Model               string            `json:"model"`
	ModelLine           string            `json:"model_line"`
	EstimatedYear       string            `json:"estimated_year"`
	LengthEstimate      string            `json:"length_estimate"`
	WidthEstimate       string            `json:"width_estimate"`
	HullMaterial        string            `json:"hull_material"`
	EngineType          string            `json:"engine_type"`
	HullType            string            `json:"hull_type"`
	Condition           string            `json:"condition"`
	KeyFeatures         []string          `json:"key_features"`
	DistinctiveElements []string          `json:"distinctive_elements"`
	PriceEstimate       string            `json:"price_estimate"`
	Confidence          json.RawMessage   `json:"confidence"`
	IsValidImage        *bool             `json:"is_valid_image"`
	RejectionReason     *string           `json:"rejection_reason"`
	QualityAssessment   string            `json:"image_quality_assessment"`
	DetailedDescription string            `json:"detailed_description"`
	IdentificationClues string            `json:"identification_clues"`
	TechnicalSpecs      map[string]string `json:"technical_specs"`
	DesignAnalysis      map[string]string `json:"design_analysis"`
	MarketPositioning   map[string]string `json:"market_positioning"`
	HistoricalContext   map[string]string `json:"historical_context"`
}

// Normalize converts a raw model reply into a canonical Result. It first
// attempts structured extraction of the JSON object between the first "{"
// and the last "}" in the reply; if no object is found or decoding fails it
// falls back to a deterministic text scanner. Either way the returned result
// has is_valid_image defaulted to true, rejection_reason defaulted to empty,
// and confidence coerced to a number (0 on coercion failure).
func Normalize(raw string) *Result {
	text := strings.TrimSpace(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return parseTextResponse(raw)
	}

	var wire resultWire
	if err := json.Unmarshal([]byte(text[start:end+1]), &wire); err != nil {
		return parseTextResponse(raw)
	}

	r := &Result{
		BoatType:            wire.BoatType,
		Brand:               wire.Brand,
		Model:               wire.Model,
		ModelLine:           wire.ModelLine,
		EstimatedYear:       wire.EstimatedYear,
		LengthEstimate:      wire.LengthEstimate,
		WidthEstimate:       wire.WidthEstimate,
		HullMaterial:        wire.HullMaterial,
		EngineType:          wire.EngineType,
		HullType:            wire.HullType,
		Condition:           wire.Condition,
		KeyFeatures:         wire.KeyFeatures,
		DistinctiveElements: wire.DistinctiveElements,
		PriceEstimate:       wire.PriceEstimate,
		Confidence:          coerceConfidence(wire.Confidence),
		IsValidImage:        true,
		QualityAssessment:   wire.QualityAssessment,
		DetailedDescription: wire.DetailedDescription,
		IdentificationClues: wire.IdentificationClues,
		TechnicalSpecs:      wire.TechnicalSpecs,
		DesignAnalysis:      wire.DesignAnalysis,
		MarketPositioning:   wire.MarketPositioning,
		HistoricalContext:   wire.HistoricalContext,
		RawResponse:         raw,
	}
	if wire.KeyFeatures == nil {
		r.KeyFeatures = []string{}
	}
	if wire.IsValidImage != nil {
		r.IsValidImage = *wire.IsValidImage
	}
	if wire.RejectionReason != nil {
		r.RejectionReason = *wire.RejectionReason
	}

	return r
}

// coerceConfidence accepts a JSON number or a numeric string. Anything else,
// including a missing value, is treated as 0.
func coerceConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}

	return 0
}

// parseTextResponse is the deterministic fallback for replies without a
// parseable JSON object. It scans a lower-cased copy of the text against the
// fixed boat-type and brand vocabularies and extracts a 4-digit year.
func parseTextResponse(text string) *Result {
	r := &Result{
		BoatType:            Unknown,
		Brand:               Unknown,
		Model:               Unknown,
		EstimatedYear:       Unknown,
		LengthEstimate:      Unknown,
		WidthEstimate:       Unknown,
		HullMaterial:        Unknown,
		EngineType:          Unknown,
		Condition:           Unknown,
		KeyFeatures:         []string{},
		PriceEstimate:       Unknown,
		Confidence:          50,
		IsValidImage:        true,
		DetailedDescription: text,
		RawResponse:         text,
	}

	lower := strings.ToLower(text)

	for _, boatType := range fallbackBoatTypes {
		if strings.Contains(lower, boatType) {
			r.BoatType = titleCaser.String(boatType)
			break
		}
	}

	for _, brand := range fallbackBrands {
		if strings.Contains(lower, brand) {
			r.Brand = titleCaser.String(brand)
			break
		}
	}

	if year := yearPattern.FindString(text); year != "" {
		r.EstimatedYear = year
	}

	return r
}
