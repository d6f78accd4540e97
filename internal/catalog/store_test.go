package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/boataniq/boataniq/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedBoats(t *testing.T, store *SQLiteStore) {
	t.Helper()
	boats := []Boat{
		{ID: "bavaria-34", Title: "Bavaria 34", Brand: "Bavaria", Model: "34", BoatType: "Sailing Yacht", Description: "Comfortable cruiser"},
		{ID: "beneteau-oceanis-40", Title: "Beneteau Oceanis 40", Brand: "Beneteau", Model: "Oceanis 40", BoatType: "Sailing Yacht", Description: "Family cruiser"},
		{ID: "princess-v50", Title: "Princess V50", Brand: "Princess", Model: "V50", BoatType: "Motor Yacht", Description: "Fast motor yacht"},
	}
	for i := range boats {
		require.NoError(t, store.Insert(context.Background(), &boats[i]))
	}
}

func TestGetBoatByID(t *testing.T) {
	store := newTestStore(t)
	seedBoats(t, store)

	boat, err := store.GetBoatByID(context.Background(), "bavaria-34")
	require.NoError(t, err)
	require.NotNil(t, boat)
	assert.Equal(t, "Bavaria 34", boat.Title)
	assert.Equal(t, "Bavaria", boat.Brand)
}

func TestGetBoatByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	boat, err := store.GetBoatByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, boat)
}

func TestSearchByBrand(t *testing.T) {
	store := newTestStore(t)
	seedBoats(t, store)

	boats, err := store.SearchByBrand(context.Background(), "bavaria", 5)
	require.NoError(t, err)
	require.Len(t, boats, 1)
	assert.Equal(t, "bavaria-34", boats[0].ID)
}

func TestSearchByBrandMatchesTitle(t *testing.T) {
	store := newTestStore(t)
	seedBoats(t, store)

	boats, err := store.SearchByBrand(context.Background(), "oceanis", 5)
	require.NoError(t, err)
	require.Len(t, boats, 1)
	assert.Equal(t, "beneteau-oceanis-40", boats[0].ID)
}

func TestSearchByKeywords(t *testing.T) {
	store := newTestStore(t)
	seedBoats(t, store)

	boats, err := store.SearchByKeywords(context.Background(), "princess motor", 5)
	require.NoError(t, err)
	require.Len(t, boats, 1)
	assert.Equal(t, "princess-v50", boats[0].ID)

	boats, err = store.SearchByKeywords(context.Background(), "princess sailing", 5)
	require.NoError(t, err)
	assert.Empty(t, boats)
}

func TestCount(t *testing.T) {
	store := newTestStore(t)
	seedBoats(t, store)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAnalysisCacheRoundtrip(t *testing.T) {
	store := newTestStore(t)

	miss, err := store.GetAnalysisCache("deadbeef")
	require.NoError(t, err)
	assert.Nil(t, miss)

	stored := &analysis.Result{BoatType: "Catamaran", Brand: "Lagoon", Confidence: 82, IsValidImage: true}
	require.NoError(t, store.SetAnalysisCache("deadbeef", stored))

	hit, err := store.GetAnalysisCache("deadbeef")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Catamaran", hit.BoatType)
	assert.Equal(t, 82.0, hit.Confidence)
}
