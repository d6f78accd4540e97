package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVisionServer(t *testing.T, quality qualityResponse, detection detectionResponse) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/quality", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(quality)
	})
	mux.HandleFunc("/v1/detect", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detection)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestValidateBoatImageProceeds(t *testing.T) {
	server := newVisionServer(t,
		qualityResponse{QualityScore: 85},
		detectionResponse{BoatDetected: true, Confidence: 0.93},
	)
	client := NewClient(ClientOpts{BaseURL: server.URL})

	v, err := client.ValidateBoatImage(context.Background(), []byte("image"))

	require.NoError(t, err)
	assert.True(t, v.CanProceed)
	assert.Empty(t, v.RejectionReason)
	assert.Equal(t, 85.0, v.QualityScore)
	assert.Equal(t, 0.93, v.DetectionConfidence)
}

func TestValidateBoatImageNoBoatDetected(t *testing.T) {
	server := newVisionServer(t,
		qualityResponse{QualityScore: 90},
		detectionResponse{BoatDetected: false, Confidence: 0.1},
	)
	client := NewClient(ClientOpts{BaseURL: server.URL})

	v, err := client.ValidateBoatImage(context.Background(), []byte("image"))

	require.NoError(t, err)
	assert.False(t, v.CanProceed)
	assert.Equal(t, "No boat detected in the image", v.RejectionReason)
}

func TestValidateBoatImageLowQuality(t *testing.T) {
	server := newVisionServer(t,
		qualityResponse{QualityScore: 25, Issues: []string{"blurry", "underexposed"}},
		detectionResponse{BoatDetected: true, Confidence: 0.8},
	)
	client := NewClient(ClientOpts{BaseURL: server.URL})

	v, err := client.ValidateBoatImage(context.Background(), []byte("image"))

	require.NoError(t, err)
	assert.False(t, v.CanProceed)
	assert.Equal(t, "Image quality too low for analysis (score: 25): blurry, underexposed", v.RejectionReason)
	assert.Equal(t, []string{"blurry", "underexposed"}, v.Issues)
}

func TestValidateBoatImageServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	client := NewClient(ClientOpts{BaseURL: server.URL})

	v, err := client.ValidateBoatImage(context.Background(), []byte("image"))

	assert.Nil(t, v)
	assert.Error(t, err)
}

func TestPreprocessReturnsEnhancedImage(t *testing.T) {
	enhanced := []byte("enhanced image bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/preprocess", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(preprocessResponse{
			Image:               base64.StdEncoding.EncodeToString(enhanced),
			ProcessingTimeMs:    42,
			EnhancementsApplied: []string{"contrast", "denoise"},
		})
	}))
	defer server.Close()
	client := NewClient(ClientOpts{BaseURL: server.URL})

	processed, info, err := client.Preprocess(context.Background(), []byte("original"))

	require.NoError(t, err)
	assert.Equal(t, enhanced, processed)
	assert.Equal(t, int64(42), info.ProcessingTimeMs)
	assert.Equal(t, []string{"contrast", "denoise"}, info.EnhancementsApplied)
}

func TestPreprocessFailureReturnsOriginal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	client := NewClient(ClientOpts{BaseURL: server.URL})

	original := []byte("original")
	processed, info, err := client.Preprocess(context.Background(), original)

	assert.Error(t, err)
	assert.Nil(t, info)
	assert.Equal(t, original, processed)
}
