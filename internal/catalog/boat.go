// Package catalog provides the boat catalog store and the deterministic
// catalog-to-result synthesis used for text-based lookups.
package catalog

import "context"

// Boat is a catalog record. Fields are string-valued; an absent field is the
// empty string.
type Boat struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	BoatType  string `json:"boat_type"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	ModelLine string `json:"model_line"`
	YearBuilt string `json:"year_built"`
	Length    string `json:"length"`
	Width     string `json:"width"`

	HullMaterial string `json:"hull_material"`
	EngineType   string `json:"engine_type"`
	HullType     string `json:"hull_type"`
	Price        string `json:"price"`
	Description  string `json:"description"`

	Features            string `json:"features"`
	Equipment           string `json:"equipment"`
	SpecialFeatures     string `json:"special_features"`
	DesignFeatures      string `json:"design_features"`
	UniqueSellingPoints string `json:"unique_selling_points"`

	EnginePower   string `json:"engine_power"`
	FuelCapacity  string `json:"fuel_capacity"`
	WaterCapacity string `json:"water_capacity"`
	MaxSpeed      string `json:"max_speed"`
	Berths        string `json:"berths"`

	HullDesign   string `json:"hull_design"`
	CabinLayout  string `json:"cabin_layout"`
	DeckFeatures string `json:"deck_features"`
	Aerodynamics string `json:"aerodynamics"`

	TargetMarket  string `json:"target_market"`
	Competitors   string `json:"competitors"`
	IdealUseCases string `json:"ideal_use_cases"`

	DesignEra           string `json:"design_era"`
	ManufacturerHistory string `json:"manufacturer_history"`
	ModelEvolution      string `json:"model_evolution"`
	MarketReception     string `json:"market_reception"`
}

// Store defines the catalog lookup contract. The search engine behind it is
// an external concern; the pipeline only needs these narrow queries.
type Store interface {
	GetBoatByID(ctx context.Context, id string) (*Boat, error)
	SearchByBrand(ctx context.Context, query string, limit int) ([]Boat, error)
	SearchByModel(ctx context.Context, query string, limit int) ([]Boat, error)
	SearchByKeywords(ctx context.Context, query string, limit int) ([]Boat, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
