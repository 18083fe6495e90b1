package quiz

// ResolveRisk maps a category's final score to a RiskAssessment. Authored
// bracket data cannot be assumed complete, so resolution degrades in steps
// and always produces an assessment:
//
//  1. a bracket scoped to the category covering the score,
//  2. a generic (unscoped) bracket covering the score,
//  3. the bracket with the numerically closest endpoint, preferring
//     category-scoped brackets and, on ties, the lower-score bracket,
//  4. a synthetic placeholder when no brackets are authored at all.
//
// The "general" pseudo-category has no scoped brackets and resolves through
// the generic steps.
func ResolveRisk(src RiskSource, category string, score int) RiskAssessment {
	if src == nil {
		return placeholderAssessment(category, score)
	}

	if category != "" && category != "general" {
		if b, err := src.FindBracket(category, score); err == nil && b != nil {
			return *b
		}
	}
	if b, err := src.FindGenericBracket(score); err == nil && b != nil {
		return *b
	}

	brackets, err := src.BracketsFor(category)
	if err != nil || len(brackets) == 0 {
		brackets, _ = src.AllBrackets()
	}
	if len(brackets) == 0 {
		return placeholderAssessment(category, score)
	}
	return closestBracket(brackets, score)
}

func closestBracket(brackets []RiskAssessment, score int) RiskAssessment {
	best := brackets[0]
	bestDist := bracketDistance(best, score)
	for _, b := range brackets[1:] {
		d := bracketDistance(b, score)
		if d < bestDist || (d == bestDist && lowerBracket(b, best)) {
			best, bestDist = b, d
		}
	}
	return best
}

func bracketDistance(b RiskAssessment, score int) int {
	if score >= b.MinScore && score <= b.MaxScore {
		return 0
	}
	lo := abs(score - b.MinScore)
	hi := abs(score - b.MaxScore)
	if lo < hi {
		return lo
	}
	return hi
}

func lowerBracket(a, b RiskAssessment) bool {
	if a.MinScore != b.MinScore {
		return a.MinScore < b.MinScore
	}
	if a.MaxScore != b.MaxScore {
		return a.MaxScore < b.MaxScore
	}
	return a.ID < b.ID
}

func placeholderAssessment(category string, score int) RiskAssessment {
	return RiskAssessment{
		RiskLevel: "Undetermined",
		Advice: "We could not match your answers to a calibrated risk level. " +
			"Please consult a healthcare professional for a thorough evaluation.",
		MinScore:    score,
		MaxScore:    score,
		Category:    category,
		Precautions: []string{"Schedule a checkup with your doctor to review these answers"},
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
