package analysis

// MinConfidence is the admission floor: results below it are rejected even
// when the backend claims the image is valid.
const MinConfidence = 30

// Stage identifies which admission check rejected a request.
type Stage string

const (
	StagePreprocess        Stage = "preprocess"
	StageBackendSelfReport Stage = "backend-self-report"
	StageConfidenceFloor   Stage = "confidence-floor"
)

// Rejection is the unified rejection outcome for all gate stages. It is an
// expected result, not an error: the request was well-formed but the image
// (or the analysis of it) did not clear the bar.
type Rejection struct {
	Stage               Stage    `json:"stage"`
	Reason              string   `json:"reason"`
	Confidence          float64  `json:"confidence,omitempty"`
	QualityAssessment   string   `json:"quality_assessment,omitempty"`
	QualityScore        float64  `json:"quality_score,omitempty"`
	BoatDetected        bool     `json:"boat_detected,omitempty"`
	DetectionConfidence float64  `json:"detection_confidence,omitempty"`
	Issues              []string `json:"issues,omitempty"`
}

const (
	lowConfidenceReason = "AI confidence too low - image may be unclear, not a boat, or from a poor angle"
	invalidImageReason  = "Image validation failed"
)

// Evaluate runs the post-call admission checks against a normalized result:
// the backend's self-report (stage 1), then the confidence floor (stage 2).
// A nil return means the result is admitted. Stage 1 fires when the backend
// marked the image invalid or supplied a rejection reason; stage 2 fires
// when confidence is below MinConfidence, even if stage 1 passed.
func Evaluate(r *Result) *Rejection {
	if !r.IsValidImage || r.RejectionReason != "" {
		reason := r.RejectionReason
		if reason == "" {
			reason = invalidImageReason
		}
		return &Rejection{
			Stage:             StageBackendSelfReport,
			Reason:            reason,
			Confidence:        r.Confidence,
			QualityAssessment: r.QualityAssessment,
		}
	}

	if r.Confidence < MinConfidence {
		return &Rejection{
			Stage:      StageConfidenceFloor,
			Reason:     lowConfidenceReason,
			Confidence: r.Confidence,
		}
	}

	return nil
}
