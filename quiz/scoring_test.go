package quiz

import (
	"reflect"
	"testing"
)

func TestDetectCategoriesOnlyCountsAffirmativeBooleans(t *testing.T) {
	general := []Question{
		boolQuestion(1, "general", 5, map[string]int{"skin": 1}),
		boolQuestion(2, "general", 5, map[string]int{"kidney": 2}),
		{
			ID: 3, Type: TypeRange,
			Options:       RangeOptions{Min: 0, Max: 10, Step: 1},
			Weight:        10,
			Category:      "general",
			CategoryHints: map[string]int{"brain": 5},
		},
	}
	responses := map[int]any{
		1: "Yes",
		2: "No",
		3: float64(10), // range answers never trigger detection
	}

	det := DetectCategories(responses, general)
	if !det.HasPositiveResponses {
		t.Error("question 1 was answered affirmatively")
	}
	if !reflect.DeepEqual(det.Categories, []string{"skin"}) {
		t.Errorf("expected only skin detected, got %v", det.Categories)
	}
}

func TestDetectCategoriesPositiveWithoutHints(t *testing.T) {
	general := []Question{boolQuestion(1, "general", 5, nil)}
	det := DetectCategories(map[int]any{1: "Yes"}, general)
	if !det.HasPositiveResponses {
		t.Error("affirmative answer must set the flag even without hints")
	}
	if len(det.Categories) != 0 {
		t.Errorf("no hints means no detected categories, got %v", det.Categories)
	}
}

func TestDetectCategoriesIsMonotonicForBooleans(t *testing.T) {
	// P3: flipping any single boolean from negative to affirmative never
	// removes a previously detected category.
	general := []Question{
		boolQuestion(1, "general", 1, map[string]int{"skin": 1}),
		boolQuestion(2, "general", 1, map[string]int{"skin": 1, "kidney": 1}),
		boolQuestion(3, "general", 1, map[string]int{"oral": 2}),
	}
	base := map[int]any{1: "Yes", 2: "No", 3: "No"}
	before := DetectCategories(base, general)

	for _, flip := range []int{2, 3} {
		responses := map[int]any{}
		for k, v := range base {
			responses[k] = v
		}
		responses[flip] = "Yes"
		after := DetectCategories(responses, general)
		for _, cat := range before.Categories {
			if indexOf(after.Categories, cat) < 0 {
				t.Errorf("flipping question %d to Yes dropped category %s", flip, cat)
			}
		}
	}
}

func TestDetectCategoriesOrderFollowsQuestionOrder(t *testing.T) {
	general := []Question{
		boolQuestion(1, "general", 1, map[string]int{"kidney": 1}),
		boolQuestion(2, "general", 1, map[string]int{"skin": 1}),
	}
	det := DetectCategories(map[int]any{1: "Yes", 2: "Yes"}, general)
	if !reflect.DeepEqual(det.Categories, []string{"kidney", "skin"}) {
		t.Errorf("categories must follow first appearance in the question set, got %v", det.Categories)
	}
}

func TestScoreRangeNormalization(t *testing.T) {
	// P4: min contributes 0, max contributes the full weight, midpoint half.
	q := Question{
		ID: 1, Type: TypeRange,
		Options:  RangeOptions{Min: 0, Max: 10, Step: 1},
		Weight:   10,
		Category: "general",
	}
	cases := []struct {
		response float64
		want     int
	}{
		{0, 0},
		{10, 10},
		{5, 5},
	}
	for _, tc := range cases {
		got := Score(map[int]any{1: tc.response}, []Question{q})
		if got != tc.want {
			t.Errorf("range response %v: score = %d, want %d", tc.response, got, tc.want)
		}
	}
}

func TestScoreSelectRoundsHalfUp(t *testing.T) {
	// Scenario C: "Medium" of Low/Medium/High at weight 9 is 0.5*9 = 4.5,
	// which rounds up to 5.
	q := Question{
		ID: 1, Type: TypeSelect,
		Options:  SelectOptions{Choices: []string{"Low", "Medium", "High"}},
		Weight:   9,
		Category: "general",
	}
	if got := Score(map[int]any{1: "Medium"}, []Question{q}); got != 5 {
		t.Errorf("select Medium: score = %d, want 5", got)
	}
	if got := Score(map[int]any{1: "Low"}, []Question{q}); got != 0 {
		t.Errorf("select Low: score = %d, want 0", got)
	}
	if got := Score(map[int]any{1: "High"}, []Question{q}); got != 9 {
		t.Errorf("select High: score = %d, want 9", got)
	}
}

func TestScoreSingleOptionSelectContributesNothing(t *testing.T) {
	q := Question{
		ID: 1, Type: TypeSelect,
		Options:  SelectOptions{Choices: []string{"Only"}},
		Weight:   9,
		Category: "general",
	}
	if got := Score(map[int]any{1: "Only"}, []Question{q}); got != 0 {
		t.Errorf("single-option select: score = %d, want 0", got)
	}
}

func TestScoreSkipsUnansweredAndMismatchedResponses(t *testing.T) {
	questions := []Question{
		boolQuestion(1, "general", 5, nil),
		boolQuestion(2, "general", 7, nil),
		{
			ID: 3, Type: TypeSelect,
			Options:  SelectOptions{Choices: []string{"A", "B"}},
			Weight:   4,
			Category: "general",
		},
	}
	responses := map[int]any{
		1: "Yes",
		// 2 unanswered
		3: "Z", // no longer a valid choice
	}
	if got := Score(responses, questions); got != 5 {
		t.Errorf("score = %d, want 5", got)
	}
}

func TestScoreBooleanNegativeContributesNothing(t *testing.T) {
	q := boolQuestion(1, "general", 5, nil)
	if got := Score(map[int]any{1: "No"}, []Question{q}); got != 0 {
		t.Errorf("negative boolean: score = %d, want 0", got)
	}
}
