// Package analysis defines the canonical boat identification result, the
// normalizer that turns raw model replies into it, the admission gate that
// decides whether a result is usable, and the human-readable summary.
package analysis

// Unknown is the default value for identification fields the model (or the
// catalog) could not fill in.
const Unknown = "Unknown"

// Result is the canonical identification record. Both the AI path and the
// catalog synthesis path produce this shape, so downstream summary and
// history code never care which path ran.
type Result struct {
	BoatType            string            `json:"boat_type"`
	Brand               string            `json:"brand"`
	Model               string            `json:"model"`
	ModelLine           string            `json:"model_line,omitempty"`
	EstimatedYear       string            `json:"estimated_year"`
	LengthEstimate      string            `json:"length_estimate"`
	WidthEstimate       string            `json:"width_estimate"`
	HullMaterial        string            `json:"hull_material"`
	EngineType          string            `json:"engine_type"`
	HullType            string            `json:"hull_type,omitempty"`
	Condition           string            `json:"condition"`
	KeyFeatures         []string          `json:"key_features"`
	DistinctiveElements []string          `json:"distinctive_elements,omitempty"`
	PriceEstimate       string            `json:"price_estimate"`
	Confidence          float64           `json:"confidence"`
	IsValidImage        bool              `json:"is_valid_image"`
	RejectionReason     string            `json:"rejection_reason,omitempty"`
	QualityAssessment   string            `json:"image_quality_assessment,omitempty"`
	DetailedDescription string            `json:"detailed_description"`
	IdentificationClues string            `json:"identification_clues,omitempty"`
	TechnicalSpecs      map[string]string `json:"technical_specs,omitempty"`
	DesignAnalysis      map[string]string `json:"design_analysis,omitempty"`
	MarketPositioning   map[string]string `json:"market_positioning,omitempty"`
	HistoricalContext   map[string]string `json:"historical_context,omitempty"`

	// Provenance: which backend/model produced the result, or
	// "database-analysis" for catalog synthesis.
	ModelUsed    string `json:"model_used,omitempty"`
	AnalyzerType string `json:"analyzer_type,omitempty"`
	RawResponse  string `json:"raw_response,omitempty"`

	// Enrichment applied just before history insertion.
	ImageName  string `json:"image_name,omitempty"`
	SearchMode bool   `json:"search_mode,omitempty"`
	BoatID     string `json:"boat_id,omitempty"`
}
