package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		result    Result
		wantStage Stage
	}{
		{
			name:      "admitted at exactly the floor",
			result:    Result{Confidence: 30, IsValidImage: true},
			wantStage: "",
		},
		{
			name:      "admitted with high confidence",
			result:    Result{Confidence: 95, IsValidImage: true},
			wantStage: "",
		},
		{
			name:      "rejected below the floor",
			result:    Result{Confidence: 29, IsValidImage: true},
			wantStage: StageConfidenceFloor,
		},
		{
			name:      "backend says invalid",
			result:    Result{Confidence: 90, IsValidImage: false},
			wantStage: StageBackendSelfReport,
		},
		{
			name:      "backend supplies a reason despite claiming validity",
			result:    Result{Confidence: 90, IsValidImage: true, RejectionReason: "Image is too blurry"},
			wantStage: StageBackendSelfReport,
		},
		{
			name:      "self-report takes precedence over the floor",
			result:    Result{Confidence: 5, IsValidImage: false, RejectionReason: "Not a boat"},
			wantStage: StageBackendSelfReport,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := Evaluate(&tt.result)
			if tt.wantStage == "" {
				assert.Nil(t, rej)
				return
			}
			if assert.NotNil(t, rej) {
				assert.Equal(t, tt.wantStage, rej.Stage)
				assert.NotEmpty(t, rej.Reason)
				assert.Equal(t, tt.result.Confidence, rej.Confidence)
			}
		})
	}
}

func TestEvaluateUsesBackendReason(t *testing.T) {
	rej := Evaluate(&Result{IsValidImage: false, RejectionReason: "Boat is not clearly visible", Confidence: 40})

	assert.Equal(t, "Boat is not clearly visible", rej.Reason)
}

func TestEvaluateGenericReasonWhenAbsent(t *testing.T) {
	rej := Evaluate(&Result{IsValidImage: false, Confidence: 40})

	assert.Equal(t, invalidImageReason, rej.Reason)
}
