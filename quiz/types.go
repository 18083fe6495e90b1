package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type QuestionType string

const (
	TypeBoolean QuestionType = "boolean"
	TypeRange   QuestionType = "range"
	TypeSelect  QuestionType = "select"
)

// DefaultRoute is the reserved routing key used when no literal response
// value matches.
const DefaultRoute = "default"

// Affirmative is the boolean response that counts toward the risk score and
// toward cancer type detection.
const Affirmative = "Yes"

// Options is the type-dependent payload of a question. Exactly one concrete
// type backs it, keyed by the question's QuestionType.
type Options interface {
	optionsTag()
}

type BooleanOptions struct {
	Choices []string
}

type RangeOptions struct {
	Min  float64
	Max  float64
	Step float64
}

type SelectOptions struct {
	Choices []string
}

func (BooleanOptions) optionsTag() {}
func (RangeOptions) optionsTag()   {}
func (SelectOptions) optionsTag()  {}

// Question is a single quiz item with its routing and weighting metadata
// already parsed.
type Question struct {
	ID            int
	Text          string
	Type          QuestionType
	Options       Options
	CategoryHints map[string]int
	Weight        int
	Category      string
	// Routing maps a literal response value (or DefaultRoute) to the id of
	// the next question within the same phase. Empty means sequential advance.
	Routing map[string]int
}

// RiskAssessment is a scored outcome bracket. An empty Category means the
// bracket is generic and applies to any cancer type.
type RiskAssessment struct {
	ID           int      `json:"id"`
	RiskLevel    string   `json:"risk_level"`
	Advice       string   `json:"advice"`
	MinScore     int      `json:"min_score"`
	MaxScore     int      `json:"max_score"`
	FoodsToEat   []string `json:"foods_to_eat"`
	FoodsToAvoid []string `json:"foods_to_avoid"`
	Precautions  []string `json:"precautions"`
	Category     string   `json:"category,omitempty"`
}

// CategoryResult is one scored outcome per detected cancer type.
type CategoryResult struct {
	Category   string         `json:"category"`
	Score      int            `json:"score"`
	Assessment RiskAssessment `json:"assessment"`
}

// RawQuestion carries a question row as stored, with the options and routing
// payloads still JSON-serialized.
type RawQuestion struct {
	ID       int
	Text     string
	Type     string
	Options  string
	Weight   int
	Category string
	Routing  string
}

type optionsPayload struct {
	Min           *float64       `json:"min"`
	Max           *float64       `json:"max"`
	Step          *float64       `json:"step"`
	Options       []string       `json:"options"`
	CategoryHints map[string]int `json:"category_hints"`
}

// ParseQuestion converts a stored row into a Question, decoding the JSON
// payloads defensively. Stored payloads may be double-encoded (a JSON string
// containing JSON), which some authoring paths produce.
func ParseQuestion(raw RawQuestion) (Question, error) {
	q := Question{
		ID:       raw.ID,
		Text:     raw.Text,
		Weight:   raw.Weight,
		Category: raw.Category,
	}

	switch QuestionType(raw.Type) {
	case TypeBoolean, TypeRange, TypeSelect:
		q.Type = QuestionType(raw.Type)
	default:
		return Question{}, fmt.Errorf("question %d: unknown type %q", raw.ID, raw.Type)
	}

	var payload optionsPayload
	if err := decodeLoose(raw.Options, &payload); err != nil {
		return Question{}, fmt.Errorf("question %d: bad options payload: %w", raw.ID, err)
	}
	q.CategoryHints = payload.CategoryHints

	switch q.Type {
	case TypeBoolean:
		choices := payload.Options
		if len(choices) == 0 {
			choices = []string{"Yes", "No"}
		}
		q.Options = BooleanOptions{Choices: choices}
	case TypeRange:
		opts := RangeOptions{Min: 0, Max: 10, Step: 1}
		if payload.Min != nil {
			opts.Min = *payload.Min
		}
		if payload.Max != nil {
			opts.Max = *payload.Max
		}
		if payload.Step != nil {
			opts.Step = *payload.Step
		}
		if opts.Max < opts.Min {
			return Question{}, fmt.Errorf("question %d: range max %v below min %v", raw.ID, opts.Max, opts.Min)
		}
		q.Options = opts
	case TypeSelect:
		if len(payload.Options) == 0 {
			return Question{}, fmt.Errorf("question %d: select question has no options", raw.ID)
		}
		q.Options = SelectOptions{Choices: payload.Options}
	}

	if strings.TrimSpace(raw.Routing) != "" {
		routing := map[string]int{}
		if err := decodeLoose(raw.Routing, &routing); err != nil {
			return Question{}, fmt.Errorf("question %d: bad routing payload: %w", raw.ID, err)
		}
		if len(routing) > 0 {
			q.Routing = routing
		}
	}

	return q, nil
}

// decodeLoose unmarshals raw JSON that may arrive either as the value itself
// or as a JSON string wrapping the value.
func decodeLoose(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err != nil {
		return fmt.Errorf("invalid JSON: %s", raw)
	}
	return json.Unmarshal([]byte(inner), v)
}

// responseKey renders a response the way routing tables key it: strings
// verbatim, numbers without a trailing ".0".
func responseKey(response any) string {
	switch v := response.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

func toNumber(response any) (float64, bool) {
	switch v := response.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
