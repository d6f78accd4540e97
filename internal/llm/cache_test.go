package llm

import (
	"context"
	"testing"

	"github.com/boataniq/boataniq/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	calls  int
	result *analysis.Result
}

func (f *fakeAnalyzer) AnalyzeBoatImage(ctx context.Context, imageData []byte, mimeType string) (*analysis.Result, error) {
	f.calls++
	return f.result, nil
}

func (f *fakeAnalyzer) ModelInfo() ModelInfo {
	return ModelInfo{ModelName: "fake", AnalyzerType: "fake"}
}

type memoryCache struct {
	entries map[string]*analysis.Result
}

func (m *memoryCache) GetAnalysisCache(imageHash string) (*analysis.Result, error) {
	return m.entries[imageHash], nil
}

func (m *memoryCache) SetAnalysisCache(imageHash string, r *analysis.Result) error {
	m.entries[imageHash] = r
	return nil
}

func TestCachedAnalyzerSecondCallHitsCache(t *testing.T) {
	inner := &fakeAnalyzer{result: &analysis.Result{BoatType: "Catamaran", Confidence: 77, IsValidImage: true}}
	cached := NewCachedAnalyzer(inner, &memoryCache{entries: map[string]*analysis.Result{}})
	image := []byte("jpeg bytes")

	first, err := cached.AnalyzeBoatImage(context.Background(), image, "image/jpeg")
	require.NoError(t, err)
	second, err := cached.AnalyzeBoatImage(context.Background(), image, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.BoatType, second.BoatType)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestCachedAnalyzerDistinctImagesMiss(t *testing.T) {
	inner := &fakeAnalyzer{result: &analysis.Result{BoatType: "Cruiser", Confidence: 60, IsValidImage: true}}
	cached := NewCachedAnalyzer(inner, &memoryCache{entries: map[string]*analysis.Result{}})

	_, err := cached.AnalyzeBoatImage(context.Background(), []byte("image a"), "image/jpeg")
	require.NoError(t, err)
	_, err = cached.AnalyzeBoatImage(context.Background(), []byte("image b"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedAnalyzerNilCachePassesThrough(t *testing.T) {
	inner := &fakeAnalyzer{result: &analysis.Result{BoatType: "Speedboat", IsValidImage: true}}
	cached := NewCachedAnalyzer(inner, nil)

	_, err := cached.AnalyzeBoatImage(context.Background(), []byte("x"), "image/jpeg")
	require.NoError(t, err)
	_, err = cached.AnalyzeBoatImage(context.Background(), []byte("x"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}
