package analysis

import (
	"fmt"
	"strings"
)

// Summary renders a human-readable summary of a result by concatenating
// labeled lines for every field that was actually identified. Unknown fields
// are skipped so the summary only claims what the analysis found.
func Summary(r *Result) string {
	var parts []string

	addIfKnown := func(label, value string) {
		if value != "" && value != Unknown {
			parts = append(parts, fmt.Sprintf("**%s:** %s", label, value))
		}
	}

	addIfKnown("Boat Type", r.BoatType)
	addIfKnown("Brand", r.Brand)
	addIfKnown("Model", r.Model)
	addIfKnown("Estimated Year", r.EstimatedYear)
	addIfKnown("Estimated Length", r.LengthEstimate)
	addIfKnown("Estimated Width", r.WidthEstimate)

	if len(r.KeyFeatures) > 0 {
		parts = append(parts, fmt.Sprintf("**Key Features:** %s", strings.Join(r.KeyFeatures, ", ")))
	}

	addIfKnown("Condition", r.Condition)
	addIfKnown("Price Estimate", r.PriceEstimate)

	parts = append(parts, fmt.Sprintf("**Analysis Confidence:** %g%%", r.Confidence))

	if r.DetailedDescription != "" {
		parts = append(parts, fmt.Sprintf("\n**Detailed Analysis:**\n%s", r.DetailedDescription))
	}

	return strings.Join(parts, "\n")
}
