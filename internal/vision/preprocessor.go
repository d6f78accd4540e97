// Package vision defines the image preprocessing contract and the HTTP
// client for a remote preprocessing service.
package vision

import "context"

// Validation is the outcome of pre-analysis image screening.
type Validation struct {
	CanProceed          bool     `json:"can_proceed"`
	RejectionReason     string   `json:"rejection_reason,omitempty"`
	QualityScore        float64  `json:"quality_score"`
	BoatDetected        bool     `json:"boat_detected"`
	DetectionConfidence float64  `json:"detection_confidence"`
	Issues              []string `json:"issues,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
}

// Info describes what preprocessing did to an image.
type Info struct {
	ProcessingTimeMs    int64    `json:"processing_time_ms"`
	EnhancementsApplied []string `json:"enhancements_applied"`
}

// Preprocessor screens and enhances images before AI analysis. A nil
// preprocessor in the pipeline means screening is skipped, not that images
// are rejected.
type Preprocessor interface {
	ValidateBoatImage(ctx context.Context, imageData []byte) (*Validation, error)
	Preprocess(ctx context.Context, imageData []byte) ([]byte, *Info, error)
}
