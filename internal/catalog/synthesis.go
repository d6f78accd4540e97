package catalog

import (
	"fmt"
	"strings"

	"github.com/boataniq/boataniq/internal/analysis"
)

// Synthesize builds a canonical analysis result directly from a catalog
// record, without calling the AI backend. The result is contract-identical
// to the AI path so downstream summary and history code treat both the same.
// No confidence gate applies to synthesized results: the computed confidence
// is informational, not a backend self-assessment.
func Synthesize(b *Boat) *analysis.Result {
	return &analysis.Result{
		BoatType:            orUnknown(b.BoatType),
		Brand:               orUnknown(b.Brand),
		Model:               orUnknown(b.Model),
		ModelLine:           orUnknown(b.ModelLine),
		EstimatedYear:       orUnknown(b.YearBuilt),
		LengthEstimate:      orUnknown(b.Length),
		WidthEstimate:       orUnknown(b.Width),
		HullMaterial:        orUnknown(b.HullMaterial),
		EngineType:          orUnknown(b.EngineType),
		HullType:            orUnknown(b.HullType),
		KeyFeatures:         keyFeatures(b),
		DistinctiveElements: distinctiveElements(b),
		Condition:           "Database Entry",
		PriceEstimate:       orUnknown(b.Price),
		Confidence:          confidence(b),
		IsValidImage:        true,
		DetailedDescription: detailedDescription(b),
		IdentificationClues: identificationClues(b),
		TechnicalSpecs:      technicalSpecs(b),
		DesignAnalysis:      designAnalysis(b),
		MarketPositioning:   marketPositioning(b),
		HistoricalContext:   historicalContext(b),
		ModelUsed:           "database-analysis",
		AnalyzerType:        "text_search",
	}
}

func orUnknown(v string) string {
	if v == "" {
		return analysis.Unknown
	}
	return v
}

// keyFeatures concatenates the optional feature fields that are present,
// preserving the fixed field-check order.
func keyFeatures(b *Boat) []string {
	features := []string{}
	for _, v := range []string{b.Features, b.Equipment, b.SpecialFeatures} {
		if v != "" {
			features = append(features, v)
		}
	}
	return features
}

func distinctiveElements(b *Boat) []string {
	var elements []string
	for _, v := range []string{b.DesignFeatures, b.UniqueSellingPoints} {
		if v != "" {
			elements = append(elements, v)
		}
	}
	return elements
}

// confidence scores data completeness additively: base 50, +10 each for
// brand/model/year, +5 each for length/price/engine type/hull type, capped
// at 95. The formula is a contract; the same set of present fields must
// always reproduce the same value.
func confidence(b *Boat) float64 {
	score := 50.0
	if b.Brand != "" {
		score += 10
	}
	if b.Model != "" {
		score += 10
	}
	if b.YearBuilt != "" {
		score += 10
	}
	if b.Length != "" {
		score += 5
	}
	if b.Price != "" {
		score += 5
	}
	if b.EngineType != "" {
		score += 5
	}
	if b.HullType != "" {
		score += 5
	}
	if score > 95 {
		score = 95
	}
	return score
}

// detailedDescription joins present fragments with ". " in fixed order:
// title, boat type, year, length, then the free-text description.
func detailedDescription(b *Boat) string {
	var parts []string
	if b.Title != "" {
		parts = append(parts, fmt.Sprintf("This is a %s", b.Title))
	}
	if b.BoatType != "" {
		parts = append(parts, fmt.Sprintf("classified as a %s", b.BoatType))
	}
	if b.YearBuilt != "" {
		parts = append(parts, fmt.Sprintf("built in %s", b.YearBuilt))
	}
	if b.Length != "" {
		parts = append(parts, fmt.Sprintf("with a length of %s", b.Length))
	}
	if b.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", b.Description))
	}
	return strings.Join(parts, ". ") + "."
}

// identificationClues is a "; "-joined list of "Label: value" fragments for
// the fields that are present.
func identificationClues(b *Boat) string {
	var clues []string
	if b.Brand != "" {
		clues = append(clues, fmt.Sprintf("Brand: %s", b.Brand))
	}
	if b.Model != "" {
		clues = append(clues, fmt.Sprintf("Model: %s", b.Model))
	}
	if b.YearBuilt != "" {
		clues = append(clues, fmt.Sprintf("Year: %s", b.YearBuilt))
	}
	return strings.Join(clues, "; ")
}

func technicalSpecs(b *Boat) map[string]string {
	specs := map[string]string{}
	if b.EnginePower != "" {
		specs["engine_power"] = b.EnginePower
	}
	if b.FuelCapacity != "" {
		specs["fuel_capacity"] = b.FuelCapacity
	}
	if b.WaterCapacity != "" {
		specs["water_capacity"] = b.WaterCapacity
	}
	if b.MaxSpeed != "" {
		specs["max_speed"] = b.MaxSpeed
	}
	if b.Berths != "" {
		specs["berths"] = b.Berths
	}
	return specs
}

// The placeholder strings below are field-specific and must match exactly
// for reproducibility.

func designAnalysis(b *Boat) map[string]string {
	return map[string]string{
		"hull_design":   orPlaceholder(b.HullDesign, "Design information not available"),
		"cabin_layout":  orPlaceholder(b.CabinLayout, "Cabin layout information not available"),
		"deck_features": orPlaceholder(b.DeckFeatures, "Deck features information not available"),
		"aerodynamics":  orPlaceholder(b.Aerodynamics, "Aerodynamics information not available"),
	}
}

func marketPositioning(b *Boat) map[string]string {
	return map[string]string{
		"target_market":         orPlaceholder(b.TargetMarket, "Market information not available"),
		"competitors":           orPlaceholder(b.Competitors, "Competitor information not available"),
		"unique_selling_points": orPlaceholder(b.UniqueSellingPoints, "USP information not available"),
		"ideal_use_cases":       orPlaceholder(b.IdealUseCases, "Use case information not available"),
	}
}

func historicalContext(b *Boat) map[string]string {
	return map[string]string{
		"design_era":           orPlaceholder(b.DesignEra, "Era information not available"),
		"manufacturer_history": orPlaceholder(b.ManufacturerHistory, "Manufacturer history not available"),
		"model_evolution":      orPlaceholder(b.ModelEvolution, "Model evolution not available"),
		"market_reception":     orPlaceholder(b.MarketReception, "Market reception not available"),
	}
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
