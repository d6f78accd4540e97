package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStructuredReply(t *testing.T) {
	raw := `{"boat_type": "Sailing Yacht", "confidence": 85}`

	r := Normalize(raw)

	assert.Equal(t, "Sailing Yacht", r.BoatType)
	assert.Equal(t, 85.0, r.Confidence)
	assert.True(t, r.IsValidImage)
	assert.Empty(t, r.RejectionReason)
	assert.Equal(t, raw, r.RawResponse)
}

func TestNormalizeStripsSurroundingText(t *testing.T) {
	raw := "Here is the analysis:\n```json\n" +
		`{"boat_type": "Motorboat", "brand": "Sunseeker", "confidence": 72, "key_features": ["flybridge", "radar arch"]}` +
		"\n```\nHope this helps!"

	r := Normalize(raw)

	assert.Equal(t, "Motorboat", r.BoatType)
	assert.Equal(t, "Sunseeker", r.Brand)
	assert.Equal(t, 72.0, r.Confidence)
	assert.Equal(t, []string{"flybridge", "radar arch"}, r.KeyFeatures)
}

func TestNormalizeSelfReportedRejection(t *testing.T) {
	raw := `{"is_valid_image": false, "rejection_reason": "This does not appear to be a boat", "confidence": 10}`

	r := Normalize(raw)

	assert.False(t, r.IsValidImage)
	assert.Equal(t, "This does not appear to be a boat", r.RejectionReason)
	assert.Equal(t, 10.0, r.Confidence)
}

func TestNormalizeConfidenceCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `{"confidence": 85}`, 85},
		{"numeric string", `{"confidence": "85"}`, 85},
		{"decimal string", `{"confidence": " 62.5 "}`, 62.5},
		{"non-numeric string", `{"confidence": "high"}`, 0},
		{"missing", `{"boat_type": "Cruiser"}`, 0},
		{"null", `{"confidence": null}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw).Confidence)
		})
	}
}

func TestNormalizeTextFallback(t *testing.T) {
	raw := "The image shows what looks like a bavaria sailing yacht, probably from 2015."

	r := Normalize(raw)

	assert.Equal(t, "Sailing Yacht", r.BoatType)
	assert.Equal(t, "Bavaria", r.Brand)
	assert.Equal(t, "2015", r.EstimatedYear)
	assert.Equal(t, Unknown, r.Model)
	assert.Equal(t, []string{}, r.KeyFeatures)
	assert.Equal(t, 50.0, r.Confidence)
	assert.True(t, r.IsValidImage)
	assert.Equal(t, raw, r.DetailedDescription)
}

func TestNormalizeTextFallbackFirstMatchWins(t *testing.T) {
	// Vocabulary order is the tie-break, not order of appearance in the text.
	r := Normalize("Could be a catamaran or a motorboat, hard to tell.")

	assert.Equal(t, "Motorboat", r.BoatType)
}

func TestNormalizeMalformedJSONFallsBack(t *testing.T) {
	r := Normalize(`{"boat_type": "Cruiser", "confidence": }`)

	assert.Equal(t, Unknown, r.Brand)
	assert.Equal(t, 50.0, r.Confidence)
}
