package quiz

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseGeneral     Phase = "general"
	PhaseSpecialized Phase = "specialized"
)

// ErrNoGeneralQuestions is returned by Start when the question store has no
// general screening questions. There is no valid root question to show, so
// the quiz cannot run at all.
var ErrNoGeneralQuestions = errors.New("quiz: no general screening questions configured")

// SequenceError reports a caller error: an answer for a question that is not
// the current one, or a response that violates the question's type contract.
// The session is left untouched.
type SequenceError struct {
	Reason string
}

func (e *SequenceError) Error() string {
	return "quiz: " + e.Reason
}

// QuestionSource provides the full question set, already parsed.
type QuestionSource interface {
	FetchQuestions() ([]Question, error)
}

// RiskSource answers bracket lookups against the risk assessment store.
// Implementations return (nil, nil) when no bracket matches.
type RiskSource interface {
	FindBracket(category string, score int) (*RiskAssessment, error)
	FindGenericBracket(score int) (*RiskAssessment, error)
	BracketsFor(category string) ([]RiskAssessment, error)
	AllBrackets() ([]RiskAssessment, error)
}

// ResponseSink receives every answered question for audit history. Writes are
// best-effort; a failing sink never blocks quiz progression.
type ResponseSink interface {
	Append(sessionID string, questionID int, response any) error
}

// Session is one quiz attempt, owned exclusively by its Engine and never
// shared across users.
type Session struct {
	ID                   string
	Phase                Phase
	Responses            map[int]any
	DetectedCategories   []string
	CurrentCategory      string
	Completed            bool
	HasPositiveResponses bool
	Results              []CategoryResult

	active []Question
	cursor int
	queue  []string
}

// Snapshot is the read-only view the presentation layer renders from.
type Snapshot struct {
	Phase                Phase            `json:"phase"`
	CurrentCategory      string           `json:"current_category,omitempty"`
	QuestionNumber       int              `json:"question_number"`
	PhaseTotal           int              `json:"phase_total"`
	Completed            bool             `json:"completed"`
	HasPositiveResponses bool             `json:"has_positive_responses"`
	Results              []CategoryResult `json:"results,omitempty"`
}

// Engine walks a single quiz session: the general screening set first, then
// one specialized set per detected cancer type, resolving a risk assessment
// per category on completion. It holds no state shared between sessions and
// performs no blocking work beyond the best-effort response log write.
type Engine struct {
	questions QuestionSource
	risks     RiskSource
	sink      ResponseSink

	general     []Question
	specialized map[string][]Question
	session     *Session
}

func NewEngine(questions QuestionSource, risks RiskSource, sink ResponseSink) *Engine {
	return &Engine{questions: questions, risks: risks, sink: sink}
}

// Start loads the full question set, partitions it into the general set and
// the per-category specialized pools, and opens a fresh session on the
// general phase.
func (e *Engine) Start() error {
	all, err := e.questions.FetchQuestions()
	if err != nil {
		return fmt.Errorf("quiz: loading questions: %w", err)
	}

	e.general = nil
	e.specialized = map[string][]Question{}
	for _, q := range all {
		if q.Category == "general" {
			e.general = append(e.general, q)
		} else {
			e.specialized[q.Category] = append(e.specialized[q.Category], q)
		}
	}
	sort.Slice(e.general, func(i, j int) bool { return e.general[i].ID < e.general[j].ID })
	for _, qs := range e.specialized {
		sort.Slice(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })
	}

	if len(e.general) == 0 {
		return ErrNoGeneralQuestions
	}

	e.session = &Session{
		ID:        uuid.New().String(),
		Phase:     PhaseGeneral,
		Responses: map[int]any{},
		active:    e.general,
	}
	return nil
}

// Reset discards the current session entirely and starts over. Safe to call
// from any state, including mid-quiz.
func (e *Engine) Reset() error {
	return e.Start()
}

// CurrentQuestion returns the question awaiting an answer, or nil once the
// session is completed.
func (e *Engine) CurrentQuestion() *Question {
	s := e.session
	if s == nil || s.Completed || s.cursor < 0 || s.cursor >= len(s.active) {
		return nil
	}
	q := s.active[s.cursor]
	return &q
}

// Session exposes the live session for read access.
func (e *Engine) Session() *Session {
	return e.session
}

// Snapshot reports the state the UI needs: phase, progress within the phase,
// and the final results once completed.
func (e *Engine) Snapshot() Snapshot {
	s := e.session
	if s == nil {
		return Snapshot{Phase: PhaseGeneral}
	}
	snap := Snapshot{
		Phase:                s.Phase,
		CurrentCategory:      s.CurrentCategory,
		PhaseTotal:           len(s.active),
		Completed:            s.Completed,
		HasPositiveResponses: s.HasPositiveResponses,
		Results:              s.Results,
	}
	if !s.Completed {
		snap.QuestionNumber = s.cursor + 1
	}
	return snap
}

// SubmitAnswer records the response to the current question and advances the
// session: to the routed or next question, to the next phase, or to
// completion. Out-of-order question ids and responses violating the
// question's type contract are rejected with a SequenceError and leave the
// session untouched.
func (e *Engine) SubmitAnswer(questionID int, response any) error {
	s := e.session
	if s == nil {
		return &SequenceError{Reason: "quiz has not been started"}
	}
	if s.Completed {
		return &SequenceError{Reason: "quiz is already completed"}
	}

	current := e.CurrentQuestion()
	if current == nil {
		return &SequenceError{Reason: "no question is currently active"}
	}
	if current.ID != questionID {
		return &SequenceError{Reason: fmt.Sprintf("expected answer for question %d, got %d", current.ID, questionID)}
	}
	if err := validateResponse(*current, response); err != nil {
		return err
	}

	s.Responses[questionID] = response

	if e.sink != nil {
		if err := e.sink.Append(s.ID, questionID, response); err != nil {
			log.Printf("⚠️ Quiz response log write failed for session %s question %d: %v", s.ID, questionID, err)
		}
	}

	e.advance(*current, response)
	return nil
}

// advance applies routing resolution. A routing target outside the active
// list, a self-referential target, or running past the end of the list all
// finish the current phase.
func (e *Engine) advance(current Question, response any) {
	s := e.session

	targetID, routed := 0, false
	if len(current.Routing) > 0 {
		if id, ok := current.Routing[responseKey(response)]; ok {
			targetID, routed = id, true
		} else if id, ok := current.Routing[DefaultRoute]; ok {
			targetID, routed = id, true
		}
	}

	if routed {
		if targetID != current.ID {
			for i, q := range s.active {
				if q.ID == targetID {
					s.cursor = i
					return
				}
			}
		}
		// dangling or self-referential target: the branch terminates here
		e.transition()
		return
	}

	if s.cursor+1 < len(s.active) {
		s.cursor++
		return
	}
	e.transition()
}

func (e *Engine) transition() {
	s := e.session

	if s.Phase == PhaseGeneral {
		det := DetectCategories(s.Responses, e.general)
		s.HasPositiveResponses = det.HasPositiveResponses

		if !det.HasPositiveResponses {
			// nothing flagged at all: reassurance outcome, no scored report
			s.Completed = true
			s.Results = []CategoryResult{}
			return
		}

		categories := det.Categories
		if len(categories) == 0 {
			categories = []string{"general"}
		}
		s.DetectedCategories = categories
		s.queue = append([]string(nil), categories[1:]...)
		s.Phase = PhaseSpecialized
		if !e.enterCategory(categories[0]) {
			e.nextCategory()
		}
		return
	}

	e.nextCategory()
}

// enterCategory loads a category's specialized set as the active list.
// Returns false when the category has no questions authored.
func (e *Engine) enterCategory(category string) bool {
	s := e.session
	s.CurrentCategory = category
	qs := e.specialized[category]
	if len(qs) == 0 {
		return false
	}
	s.active = qs
	s.cursor = 0
	return true
}

func (e *Engine) nextCategory() {
	s := e.session
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		if e.enterCategory(next) {
			return
		}
	}
	e.complete()
}

func (e *Engine) complete() {
	s := e.session
	s.Completed = true
	s.CurrentCategory = ""
	s.Results = make([]CategoryResult, 0, len(s.DetectedCategories))

	for _, category := range s.DetectedCategories {
		relevant := append(append([]Question(nil), e.general...), e.specialized[category]...)
		score := Score(s.Responses, relevant)
		assessment := ResolveRisk(e.risks, category, score)
		s.Results = append(s.Results, CategoryResult{
			Category:   category,
			Score:      score,
			Assessment: assessment,
		})
	}
}

func validateResponse(q Question, response any) error {
	switch opts := q.Options.(type) {
	case BooleanOptions:
		s, ok := response.(string)
		if !ok || indexOf(opts.Choices, s) < 0 {
			return &SequenceError{Reason: fmt.Sprintf("response %v is not a valid choice for question %d", response, q.ID)}
		}
	case SelectOptions:
		s, ok := response.(string)
		if !ok || indexOf(opts.Choices, s) < 0 {
			return &SequenceError{Reason: fmt.Sprintf("response %v is not a valid choice for question %d", response, q.ID)}
		}
	case RangeOptions:
		v, ok := toNumber(response)
		if !ok || v < opts.Min || v > opts.Max {
			return &SequenceError{Reason: fmt.Sprintf("response %v is outside the %v-%v range of question %d", response, opts.Min, opts.Max, q.ID)}
		}
	default:
		return &SequenceError{Reason: fmt.Sprintf("question %d has no options payload", q.ID)}
	}
	return nil
}
