package quiz

import (
	"math"
	"sort"
)

// Detection is the outcome of analyzing the general-phase responses.
type Detection struct {
	// Categories are the cancer types with positive evidence, in the order
	// they first appear in the general question set.
	Categories []string
	// HasPositiveResponses is true when any general question received the
	// affirmative answer, whether or not that mapped to a specific category.
	HasPositiveResponses bool
}

// DetectCategories walks the general question set against the recorded
// responses and totals the category hint weights of every affirmatively
// answered boolean question. A category is detected when its total is
// strictly positive. Range and select responses never trigger detection.
func DetectCategories(responses map[int]any, general []Question) Detection {
	scores := map[string]int{}
	var order []string
	det := Detection{}

	for _, q := range general {
		resp, ok := responses[q.ID]
		if !ok {
			continue
		}
		if q.Type != TypeBoolean {
			continue
		}
		s, ok := resp.(string)
		if !ok || s != Affirmative {
			continue
		}
		det.HasPositiveResponses = true
		for _, cat := range sortedHintKeys(q.CategoryHints) {
			if _, seen := scores[cat]; !seen {
				order = append(order, cat)
			}
			scores[cat] += q.CategoryHints[cat]
		}
	}

	for _, cat := range order {
		if scores[cat] > 0 {
			det.Categories = append(det.Categories, cat)
		}
	}
	return det
}

// Score totals the weighted contributions of every answered question in the
// given set. Booleans contribute their full weight on an affirmative answer,
// ranges and selects contribute a linearly normalized share of it, rounded
// half up. Unanswered questions and responses that no longer match their
// question contribute nothing.
func Score(responses map[int]any, questions []Question) int {
	total := 0
	for _, q := range questions {
		resp, ok := responses[q.ID]
		if !ok {
			continue
		}
		switch opts := q.Options.(type) {
		case BooleanOptions:
			if s, ok := resp.(string); ok && s == Affirmative {
				total += q.Weight
			}
		case RangeOptions:
			v, ok := toNumber(resp)
			if !ok {
				continue
			}
			span := opts.Max - opts.Min
			if span <= 0 {
				continue
			}
			total += roundHalfUp((v - opts.Min) / span * float64(q.Weight))
		case SelectOptions:
			s, ok := resp.(string)
			if !ok {
				continue
			}
			idx := indexOf(opts.Choices, s)
			if idx < 0 {
				continue
			}
			if len(opts.Choices) == 1 {
				continue
			}
			frac := float64(idx) / float64(len(opts.Choices)-1)
			total += roundHalfUp(frac * float64(q.Weight))
		}
	}
	return total
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func sortedHintKeys(hints map[string]int) []string {
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
