package quiz

import (
	"testing"
)

func TestParseQuestionBooleanWithHints(t *testing.T) {
	q, err := ParseQuestion(RawQuestion{
		ID:       1,
		Text:     "Have you noticed any unusual moles?",
		Type:     "boolean",
		Options:  `{"options":["Yes","No"],"category_hints":{"skin":2}}`,
		Weight:   5,
		Category: "general",
	})
	if err != nil {
		t.Fatal(err)
	}
	opts, ok := q.Options.(BooleanOptions)
	if !ok || len(opts.Choices) != 2 {
		t.Fatalf("unexpected options %+v", q.Options)
	}
	if q.CategoryHints["skin"] != 2 {
		t.Errorf("category hints not parsed: %v", q.CategoryHints)
	}
}

func TestParseQuestionDoubleEncodedPayload(t *testing.T) {
	// some authoring paths store the JSON payload as a JSON string
	q, err := ParseQuestion(RawQuestion{
		ID:       2,
		Type:     "range",
		Options:  `"{\"min\":1,\"max\":10,\"step\":1}"`,
		Weight:   10,
		Category: "general",
	})
	if err != nil {
		t.Fatal(err)
	}
	opts, ok := q.Options.(RangeOptions)
	if !ok || opts.Min != 1 || opts.Max != 10 {
		t.Fatalf("unexpected range options %+v", q.Options)
	}
}

func TestParseQuestionRoutingTable(t *testing.T) {
	q, err := ParseQuestion(RawQuestion{
		ID:       3,
		Type:     "boolean",
		Options:  `{"options":["Yes","No"]}`,
		Routing:  `{"Yes": 7, "default": 4}`,
		Category: "skin",
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.Routing["Yes"] != 7 || q.Routing[DefaultRoute] != 4 {
		t.Errorf("routing not parsed: %v", q.Routing)
	}
}

func TestParseQuestionDefaultsForEmptyPayloads(t *testing.T) {
	q, err := ParseQuestion(RawQuestion{
		ID:       4,
		Type:     "boolean",
		Category: "general",
	})
	if err != nil {
		t.Fatal(err)
	}
	opts := q.Options.(BooleanOptions)
	if len(opts.Choices) != 2 || opts.Choices[0] != "Yes" {
		t.Errorf("boolean defaults missing: %+v", opts)
	}

	q, err = ParseQuestion(RawQuestion{ID: 5, Type: "range", Category: "general"})
	if err != nil {
		t.Fatal(err)
	}
	ropts := q.Options.(RangeOptions)
	if ropts.Min != 0 || ropts.Max != 10 || ropts.Step != 1 {
		t.Errorf("range defaults missing: %+v", ropts)
	}
}

func TestParseQuestionRejectsBadRows(t *testing.T) {
	cases := []RawQuestion{
		{ID: 1, Type: "essay", Category: "general"},
		{ID: 2, Type: "select", Options: `{}`, Category: "general"},
		{ID: 3, Type: "range", Options: `{"min":10,"max":1}`, Category: "general"},
		{ID: 4, Type: "boolean", Options: `not json`, Category: "general"},
	}
	for _, raw := range cases {
		if _, err := ParseQuestion(raw); err == nil {
			t.Errorf("row %d: expected parse error", raw.ID)
		}
	}
}

func TestResponseKeyFormatting(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"Yes", "Yes"},
		{float64(5), "5"},
		{float64(2.5), "2.5"},
		{7, "7"},
	}
	for _, tc := range cases {
		if got := responseKey(tc.in); got != tc.want {
			t.Errorf("responseKey(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
