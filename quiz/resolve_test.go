package quiz

import "testing"

func TestResolveRiskPrefersCategoryScopedBracket(t *testing.T) {
	src := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "", MinScore: 0, MaxScore: 50, RiskLevel: "Generic"},
		{ID: 2, Category: "skin", MinScore: 10, MaxScore: 20, RiskLevel: "Skin"},
	}}
	got := ResolveRisk(src, "skin", 15)
	if got.RiskLevel != "Skin" {
		t.Errorf("expected the skin bracket, got %q", got.RiskLevel)
	}
}

func TestResolveRiskFallsBackToGenericBracket(t *testing.T) {
	src := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "", MinScore: 0, MaxScore: 50, RiskLevel: "Generic"},
		{ID: 2, Category: "skin", MinScore: 10, MaxScore: 20, RiskLevel: "Skin"},
	}}
	got := ResolveRisk(src, "skin", 40)
	if got.RiskLevel != "Generic" {
		t.Errorf("expected the generic bracket, got %q", got.RiskLevel)
	}
}

func TestResolveRiskGeneralCategoryUsesGenericBrackets(t *testing.T) {
	src := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "", MinScore: 0, MaxScore: 50, RiskLevel: "Generic"},
	}}
	got := ResolveRisk(src, "general", 25)
	if got.RiskLevel != "Generic" {
		t.Errorf("expected the generic bracket, got %q", got.RiskLevel)
	}
}

func TestResolveRiskPicksClosestBracketOnGap(t *testing.T) {
	src := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "skin", MinScore: 0, MaxScore: 10, RiskLevel: "Low"},
		{ID: 2, Category: "skin", MinScore: 20, MaxScore: 30, RiskLevel: "High"},
	}}
	// 12 is 2 away from the Low bracket's max, 8 away from High's min
	if got := ResolveRisk(src, "skin", 12); got.RiskLevel != "Low" {
		t.Errorf("score 12 should resolve to Low, got %q", got.RiskLevel)
	}
	if got := ResolveRisk(src, "skin", 19); got.RiskLevel != "High" {
		t.Errorf("score 19 should resolve to High, got %q", got.RiskLevel)
	}
}

func TestResolveRiskTieBreaksToLowerBracket(t *testing.T) {
	src := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "skin", MinScore: 0, MaxScore: 10, RiskLevel: "Low"},
		{ID: 2, Category: "skin", MinScore: 20, MaxScore: 30, RiskLevel: "High"},
	}}
	// 15 is equidistant from both brackets
	if got := ResolveRisk(src, "skin", 15); got.RiskLevel != "Low" {
		t.Errorf("tie must prefer the lower-score bracket, got %q", got.RiskLevel)
	}
}

func TestResolveRiskClosestPrefersScopedBrackets(t *testing.T) {
	src := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "", MinScore: 99, MaxScore: 100, RiskLevel: "Generic"},
		{ID: 2, Category: "skin", MinScore: 0, MaxScore: 10, RiskLevel: "Skin"},
	}}
	// no bracket covers 95; scoped brackets exist, so only they are candidates
	if got := ResolveRisk(src, "skin", 95); got.RiskLevel != "Skin" {
		t.Errorf("closest-bracket fallback must prefer scoped brackets, got %q", got.RiskLevel)
	}
}

func TestResolveRiskNeverReturnsEmpty(t *testing.T) {
	// P5: even with zero authored brackets a usable assessment comes back.
	for _, score := range []int{-10, 0, 7, 500} {
		got := ResolveRisk(fakeRisks{}, "skin", score)
		if got.RiskLevel == "" || got.Advice == "" {
			t.Errorf("score %d: placeholder assessment is incomplete: %+v", score, got)
		}
	}
	got := ResolveRisk(nil, "skin", 5)
	if got.RiskLevel == "" {
		t.Error("nil source must still yield a placeholder assessment")
	}
}
