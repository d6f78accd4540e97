// Package pipeline wires the analyzer, catalog, preprocessor and history
// into the image and text analysis flows.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/boataniq/boataniq/internal/analysis"
	"github.com/boataniq/boataniq/internal/catalog"
	"github.com/boataniq/boataniq/internal/history"
	"github.com/boataniq/boataniq/internal/llm"
	"github.com/boataniq/boataniq/internal/vision"
)

var (
	ErrAnalyzerUnavailable = errors.New("ai analyzer not available")
	ErrCatalogUnavailable  = errors.New("boat catalog not available")
	ErrBoatNotFound        = errors.New("boat not found")
)

// rejectionRecommendation is shown alongside every image rejection.
const rejectionRecommendation = "Please upload a clear, well-lit boat image from a good angle where the boat is clearly visible and in focus."

// App is the application context. Analyzer, Catalog and Preprocessor may be
// nil; each flow reports the missing component it needs. History is always
// present.
type App struct {
	Analyzer     llm.Analyzer
	Catalog      catalog.Store
	Preprocessor vision.Preprocessor
	History      *history.Store
}

// Response is the outcome of an analysis flow, shaped for JSON output. On
// rejection Success is false and Validation carries the stage-tagged
// verdict; transport and component failures are returned as errors instead.
type Response struct {
	Success        bool                `json:"success"`
	Analysis       *analysis.Result    `json:"analysis,omitempty"`
	Summary        string              `json:"summary,omitempty"`
	HistoryID      string              `json:"history_id,omitempty"`
	Preprocessing  *vision.Info        `json:"preprocessing,omitempty"`
	BoatData       *catalog.Boat       `json:"boat_data,omitempty"`
	SearchMode     bool                `json:"search_mode,omitempty"`
	Error          string              `json:"error,omitempty"`
	Validation     *analysis.Rejection `json:"validation,omitempty"`
	Recommendation string              `json:"recommendation,omitempty"`
}

func rejected(rej *analysis.Rejection) *Response {
	return &Response{
		Success:        false,
		Error:          rej.Reason,
		Validation:     rej,
		Recommendation: rejectionRecommendation,
	}
}

// AnalyzeImage runs the full image flow: optional preprocessing screening,
// the AI backend call, admission checks, then history recording. Rejections
// come back as a failed Response; infrastructure failures as errors.
func (a *App) AnalyzeImage(ctx context.Context, imageData []byte, imageName string) (*Response, error) {
	if a.Analyzer == nil {
		return nil, ErrAnalyzerUnavailable
	}

	var preprocessing *vision.Info
	if a.Preprocessor != nil {
		validation, err := a.Preprocessor.ValidateBoatImage(ctx, imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to validate image: %w", err)
		}
		if !validation.CanProceed {
			log.Info().Str("reason", validation.RejectionReason).Msg("Image rejected before analysis")
			return rejected(&analysis.Rejection{
				Stage:               analysis.StagePreprocess,
				Reason:              validation.RejectionReason,
				QualityScore:        validation.QualityScore,
				BoatDetected:        validation.BoatDetected,
				DetectionConfidence: validation.DetectionConfidence,
				Issues:              validation.Issues,
			}), nil
		}

		processed, info, err := a.Preprocessor.Preprocess(ctx, imageData)
		if err != nil {
			log.Warn().Err(err).Msg("Preprocessing failed, analyzing original image")
		} else {
			imageData = processed
			preprocessing = info
		}
	}

	result, err := a.Analyzer.AnalyzeBoatImage(ctx, imageData, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to analyze image: %w", err)
	}

	if rej := analysis.Evaluate(result); rej != nil {
		log.Info().
			Str("stage", string(rej.Stage)).
			Float64("confidence", rej.Confidence).
			Msg("Analysis result rejected")
		return rejected(rej), nil
	}

	result.ImageName = imageName
	summary := analysis.Summary(result)
	historyID := a.History.Append(result, imageName, summary)

	log.Info().
		Str("boat_type", result.BoatType).
		Str("brand", result.Brand).
		Float64("confidence", result.Confidence).
		Msg("Image analysis complete")

	return &Response{
		Success:       true,
		Analysis:      result,
		Summary:       summary,
		HistoryID:     historyID,
		Preprocessing: preprocessing,
	}, nil
}

// AnalyzeText resolves a catalog boat and synthesizes an analysis result
// from it. With searchMode the query is matched by brand first, then model,
// then as free-text keywords; otherwise it is a direct id lookup. No
// admission gate applies here.
func (a *App) AnalyzeText(ctx context.Context, query string, searchMode bool) (*Response, error) {
	if a.Catalog == nil {
		return nil, ErrCatalogUnavailable
	}

	boat, err := a.findBoat(ctx, query, searchMode)
	if err != nil {
		return nil, err
	}
	if boat == nil {
		return nil, fmt.Errorf("%w: %s", ErrBoatNotFound, query)
	}

	result := catalog.Synthesize(boat)
	result.SearchMode = searchMode
	result.BoatID = boat.ID
	result.ImageName = fmt.Sprintf("Text Search: %s", boat.Title)

	summary := analysis.Summary(result)
	historyID := a.History.Append(result, result.ImageName, summary)

	log.Info().
		Str("boat_id", boat.ID).
		Bool("search_mode", searchMode).
		Msg("Text analysis complete")

	return &Response{
		Success:    true,
		Analysis:   result,
		Summary:    summary,
		HistoryID:  historyID,
		BoatData:   boat,
		SearchMode: searchMode,
	}, nil
}

func (a *App) findBoat(ctx context.Context, query string, searchMode bool) (*catalog.Boat, error) {
	if !searchMode {
		boat, err := a.Catalog.GetBoatByID(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to look up boat: %w", err)
		}
		return boat, nil
	}

	boats, err := a.Catalog.SearchByBrand(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to search by brand: %w", err)
	}
	if len(boats) == 0 {
		boats, err = a.Catalog.SearchByModel(ctx, query, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to search by model: %w", err)
		}
	}
	if len(boats) == 0 {
		boats, err = a.Catalog.SearchByKeywords(ctx, query, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to search by keywords: %w", err)
		}
	}
	if len(boats) == 0 {
		return nil, nil
	}
	return &boats[0], nil
}

// Status reports component availability for the status command.
type Status struct {
	AnalyzerAvailable     bool           `json:"analyzer_available"`
	Model                 *llm.ModelInfo `json:"model,omitempty"`
	CatalogAvailable      bool           `json:"catalog_available"`
	CatalogBoats          int            `json:"catalog_boats,omitempty"`
	PreprocessorAvailable bool           `json:"preprocessor_available"`
	HistoryEntries        int            `json:"history_entries"`
	HistoryDegraded       bool           `json:"history_degraded"`
}

func (a *App) Status(ctx context.Context) *Status {
	s := &Status{
		AnalyzerAvailable:     a.Analyzer != nil,
		CatalogAvailable:      a.Catalog != nil,
		PreprocessorAvailable: a.Preprocessor != nil,
		HistoryEntries:        len(a.History.List()),
		HistoryDegraded:       a.History.Degraded(),
	}
	if a.Analyzer != nil {
		info := a.Analyzer.ModelInfo()
		s.Model = &info
	}
	if a.Catalog != nil {
		count, err := a.Catalog.Count(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to count catalog boats")
		} else {
			s.CatalogBoats = count
		}
	}
	return s
}
