package quiz

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

type fakeQuestions []Question

func (f fakeQuestions) FetchQuestions() ([]Question, error) { return f, nil }

type failingQuestions struct{}

func (failingQuestions) FetchQuestions() ([]Question, error) {
	return nil, errors.New("store unavailable")
}

type fakeRisks struct {
	brackets []RiskAssessment
}

func (f fakeRisks) FindBracket(category string, score int) (*RiskAssessment, error) {
	for _, b := range f.brackets {
		if b.Category == category && score >= b.MinScore && score <= b.MaxScore {
			bracket := b
			return &bracket, nil
		}
	}
	return nil, nil
}

func (f fakeRisks) FindGenericBracket(score int) (*RiskAssessment, error) {
	for _, b := range f.brackets {
		if b.Category == "" && score >= b.MinScore && score <= b.MaxScore {
			bracket := b
			return &bracket, nil
		}
	}
	return nil, nil
}

func (f fakeRisks) BracketsFor(category string) ([]RiskAssessment, error) {
	if category == "general" {
		category = ""
	}
	var out []RiskAssessment
	for _, b := range f.brackets {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f fakeRisks) AllBrackets() ([]RiskAssessment, error) {
	return f.brackets, nil
}

type memSink struct {
	rows []string
	fail bool
}

func (s *memSink) Append(sessionID string, questionID int, response any) error {
	if s.fail {
		return errors.New("sink down")
	}
	s.rows = append(s.rows, fmt.Sprintf("%d=%v", questionID, response))
	return nil
}

func boolQuestion(id int, category string, weight int, hints map[string]int) Question {
	return Question{
		ID:            id,
		Text:          fmt.Sprintf("Question %d", id),
		Type:          TypeBoolean,
		Options:       BooleanOptions{Choices: []string{"Yes", "No"}},
		Weight:        weight,
		Category:      category,
		CategoryHints: hints,
	}
}

func TestStartRequiresGeneralQuestions(t *testing.T) {
	e := NewEngine(fakeQuestions{boolQuestion(1, "skin", 10, nil)}, fakeRisks{}, nil)
	if err := e.Start(); !errors.Is(err, ErrNoGeneralQuestions) {
		t.Fatalf("expected ErrNoGeneralQuestions, got %v", err)
	}

	e = NewEngine(failingQuestions{}, fakeRisks{}, nil)
	if err := e.Start(); err == nil {
		t.Fatal("expected error when question source fails")
	}
}

func TestAllNegativeAnswersGiveReassuranceOutcome(t *testing.T) {
	// Scenario A
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 5, map[string]int{"skin": 1}),
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	if err := e.SubmitAnswer(1, "No"); err != nil {
		t.Fatal(err)
	}

	s := e.Session()
	if !s.Completed {
		t.Fatal("quiz should be completed")
	}
	if s.HasPositiveResponses {
		t.Error("no affirmative answer was given")
	}
	if len(s.Results) != 0 {
		t.Errorf("expected empty results, got %v", s.Results)
	}
}

func TestDetectedCategoryIsWalkedAndScored(t *testing.T) {
	// Scenario B: Q1 yes (weight 5, hints skin) then Q2 yes (weight 10)
	risks := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "skin", MinScore: 10, MaxScore: 20, RiskLevel: "High"},
	}}
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 5, map[string]int{"skin": 1}),
		boolQuestion(2, "skin", 10, nil),
	}, risks, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}
	snap := e.Snapshot()
	if snap.Phase != PhaseSpecialized || snap.CurrentCategory != "skin" {
		t.Fatalf("expected specialized skin phase, got %+v", snap)
	}

	if err := e.SubmitAnswer(2, "Yes"); err != nil {
		t.Fatal(err)
	}

	s := e.Session()
	if !s.Completed {
		t.Fatal("quiz should be completed")
	}
	if len(s.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(s.Results))
	}
	result := s.Results[0]
	if result.Category != "skin" || result.Score != 15 {
		t.Errorf("expected skin score 15, got %s score %d", result.Category, result.Score)
	}
	if result.Assessment.RiskLevel != "High" {
		t.Errorf("expected High bracket, got %q", result.Assessment.RiskLevel)
	}
}

func TestMultipleCategoriesWalkedInDeclaredOrder(t *testing.T) {
	// Scenario D: skin must be fully walked before kidney starts, and both
	// categories must produce independent results.
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 2, map[string]int{"skin": 1}),
		boolQuestion(2, "general", 3, map[string]int{"kidney": 1}),
		boolQuestion(10, "skin", 4, nil),
		boolQuestion(11, "skin", 5, nil),
		boolQuestion(20, "kidney", 6, nil),
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	for _, id := range []int{1, 2} {
		if err := e.SubmitAnswer(id, "Yes"); err != nil {
			t.Fatal(err)
		}
	}

	var walked []int
	for !e.Session().Completed {
		q := e.CurrentQuestion()
		if q == nil {
			t.Fatal("no current question on an incomplete session")
		}
		walked = append(walked, q.ID)
		if err := e.SubmitAnswer(q.ID, "Yes"); err != nil {
			t.Fatal(err)
		}
	}

	if !reflect.DeepEqual(walked, []int{10, 11, 20}) {
		t.Errorf("expected skin questions before kidney, walked %v", walked)
	}

	s := e.Session()
	if len(s.Results) != 2 {
		t.Fatalf("expected two results, got %d", len(s.Results))
	}
	// per-category score = general questions + that category's questions
	if s.Results[0].Category != "skin" || s.Results[0].Score != 2+3+4+5 {
		t.Errorf("unexpected skin result %+v", s.Results[0])
	}
	if s.Results[1].Category != "kidney" || s.Results[1].Score != 2+3+6 {
		t.Errorf("unexpected kidney result %+v", s.Results[1])
	}
}

func TestDanglingRoutingTargetEndsPhase(t *testing.T) {
	// Scenario E: "Yes" routes to a question id that does not exist.
	q1 := boolQuestion(1, "general", 5, map[string]int{"skin": 1})
	q1.Routing = map[string]int{"Yes": 999}
	e := NewEngine(fakeQuestions{
		q1,
		boolQuestion(2, "general", 5, nil),
		boolQuestion(10, "skin", 10, nil),
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}
	snap := e.Snapshot()
	if snap.Phase != PhaseSpecialized || snap.CurrentCategory != "skin" {
		t.Fatalf("dangling route should finish the general phase, got %+v", snap)
	}
}

func TestSelfReferentialRoutingTargetEndsPhase(t *testing.T) {
	q1 := boolQuestion(1, "general", 5, nil)
	q1.Routing = map[string]int{DefaultRoute: 1}
	e := NewEngine(fakeQuestions{q1}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	if err := e.SubmitAnswer(1, "No"); err != nil {
		t.Fatal(err)
	}
	if !e.Session().Completed {
		t.Fatal("self-referential route must not loop")
	}
}

func TestRoutingByLiteralResponseAndDefault(t *testing.T) {
	q1 := boolQuestion(1, "general", 1, nil)
	q1.Routing = map[string]int{"Yes": 3, DefaultRoute: 2}
	e := NewEngine(fakeQuestions{
		q1,
		boolQuestion(2, "general", 1, nil),
		boolQuestion(3, "general", 1, nil),
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}
	if q := e.CurrentQuestion(); q == nil || q.ID != 3 {
		t.Fatalf("expected literal route to question 3, got %+v", q)
	}

	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitAnswer(1, "No"); err != nil {
		t.Fatal(err)
	}
	if q := e.CurrentQuestion(); q == nil || q.ID != 2 {
		t.Fatalf("expected default route to question 2, got %+v", q)
	}
}

func TestSubmitAnswerRejectsOutOfOrderAndBadResponses(t *testing.T) {
	rangeQ := Question{
		ID:       2,
		Text:     "Pain level",
		Type:     TypeRange,
		Options:  RangeOptions{Min: 0, Max: 10, Step: 1},
		Weight:   10,
		Category: "general",
	}
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 5, nil),
		rangeQ,
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	var seqErr *SequenceError
	if err := e.SubmitAnswer(2, float64(5)); !errors.As(err, &seqErr) {
		t.Fatalf("expected SequenceError for out-of-order answer, got %v", err)
	}
	if err := e.SubmitAnswer(1, "Maybe"); !errors.As(err, &seqErr) {
		t.Fatalf("expected SequenceError for invalid choice, got %v", err)
	}
	if len(e.Session().Responses) != 0 {
		t.Error("rejected answers must not mutate the session")
	}

	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitAnswer(2, float64(11)); !errors.As(err, &seqErr) {
		t.Fatalf("expected SequenceError for out-of-range value, got %v", err)
	}
	if err := e.SubmitAnswer(2, float64(10)); err != nil {
		t.Fatal(err)
	}
}

func TestEmptyCategoriesAreSkipped(t *testing.T) {
	// brain is detected but has no specialized questions authored; the
	// engine must move on to oral instead of getting stuck.
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 1, map[string]int{"brain": 1, "oral": 1}),
		boolQuestion(10, "oral", 2, nil),
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}
	if q := e.CurrentQuestion(); q == nil || q.ID != 10 {
		t.Fatalf("expected oral question after skipping empty brain set, got %+v", q)
	}
	if err := e.SubmitAnswer(10, "No"); err != nil {
		t.Fatal(err)
	}

	s := e.Session()
	if !s.Completed || len(s.Results) != 2 {
		t.Fatalf("both detected categories must be scored, got %+v", s.Results)
	}
}

func TestPositiveAnswersWithoutHintsScoreAsGeneral(t *testing.T) {
	risks := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "", MinScore: 0, MaxScore: 50, RiskLevel: "Low"},
	}}
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 5, nil),
	}, risks, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}

	s := e.Session()
	if !s.Completed || !s.HasPositiveResponses {
		t.Fatal("quiz should complete with positive responses")
	}
	if len(s.Results) != 1 || s.Results[0].Category != "general" {
		t.Fatalf("expected a single general result, got %+v", s.Results)
	}
	if s.Results[0].Assessment.RiskLevel != "Low" {
		t.Errorf("expected the generic bracket, got %+v", s.Results[0].Assessment)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	questions := fakeQuestions{
		boolQuestion(1, "general", 2, map[string]int{"skin": 1}),
		boolQuestion(2, "general", 3, map[string]int{"kidney": 2}),
		{
			ID: 3, Text: "Age", Type: TypeRange,
			Options: RangeOptions{Min: 0, Max: 100, Step: 1},
			Weight:  10, Category: "general",
		},
		boolQuestion(10, "skin", 4, nil),
		boolQuestion(20, "kidney", 6, nil),
	}
	risks := fakeRisks{brackets: []RiskAssessment{
		{ID: 1, Category: "", MinScore: 0, MaxScore: 100, RiskLevel: "Low"},
	}}

	run := func() []CategoryResult {
		e := NewEngine(questions, risks, nil)
		if err := e.Start(); err != nil {
			t.Fatal(err)
		}
		answers := []struct {
			id   int
			resp any
		}{
			{1, "Yes"}, {2, "Yes"}, {3, float64(40)}, {10, "No"}, {20, "Yes"},
		}
		for _, a := range answers {
			if err := e.SubmitAnswer(a.id, a.resp); err != nil {
				t.Fatal(err)
			}
		}
		return e.Session().Results
	}

	first := run()
	for i := 0; i < 5; i++ {
		if got := run(); !reflect.DeepEqual(got, first) {
			t.Fatalf("replay %d diverged: %v vs %v", i, got, first)
		}
	}
}

func TestQuizTerminatesAfterEachQuestionOnce(t *testing.T) {
	questions := fakeQuestions{
		boolQuestion(1, "general", 1, map[string]int{"skin": 1}),
		boolQuestion(2, "general", 1, nil),
		boolQuestion(10, "skin", 1, nil),
		boolQuestion(11, "skin", 1, nil),
	}
	e := NewEngine(questions, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < len(questions); i++ {
		if e.Session().Completed {
			return
		}
		q := e.CurrentQuestion()
		if q == nil {
			t.Fatal("incomplete session without a current question")
		}
		if err := e.SubmitAnswer(q.ID, "Yes"); err != nil {
			t.Fatal(err)
		}
	}
	if !e.Session().Completed {
		t.Fatal("quiz did not terminate within the total question count")
	}
}

func TestSinkFailureDoesNotBlockProgress(t *testing.T) {
	sink := &memSink{fail: true}
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 5, nil),
	}, fakeRisks{}, sink)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitAnswer(1, "No"); err != nil {
		t.Fatalf("a failing response log must not abort the quiz: %v", err)
	}
	if !e.Session().Completed {
		t.Fatal("quiz should have completed")
	}
}

func TestResponsesReachTheSink(t *testing.T) {
	sink := &memSink{}
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 5, nil),
		boolQuestion(2, "general", 5, nil),
	}, fakeRisks{}, sink)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitAnswer(2, "No"); err != nil {
		t.Fatal(err)
	}
	want := []string{"1=Yes", "2=No"}
	if !reflect.DeepEqual(sink.rows, want) {
		t.Errorf("sink rows = %v, want %v", sink.rows, want)
	}
}

func TestResetDiscardsMidQuizState(t *testing.T) {
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 5, map[string]int{"skin": 1}),
		boolQuestion(10, "skin", 10, nil),
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	firstSession := e.Session().ID

	if err := e.SubmitAnswer(1, "Yes"); err != nil {
		t.Fatal(err)
	}
	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}

	s := e.Session()
	if s.ID == firstSession {
		t.Error("reset must mint a fresh session id")
	}
	if s.Phase != PhaseGeneral || len(s.Responses) != 0 || len(s.DetectedCategories) != 0 {
		t.Errorf("reset must discard all prior state, got %+v", s)
	}
	if q := e.CurrentQuestion(); q == nil || q.ID != 1 {
		t.Errorf("reset must rewind to the first general question, got %+v", q)
	}
}

func TestSnapshotReportsPhaseProgress(t *testing.T) {
	e := NewEngine(fakeQuestions{
		boolQuestion(1, "general", 1, nil),
		boolQuestion(2, "general", 1, nil),
		boolQuestion(3, "general", 1, nil),
	}, fakeRisks{}, nil)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	snap := e.Snapshot()
	if snap.Phase != PhaseGeneral || snap.QuestionNumber != 1 || snap.PhaseTotal != 3 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	if err := e.SubmitAnswer(1, "No"); err != nil {
		t.Fatal(err)
	}
	snap = e.Snapshot()
	if snap.QuestionNumber != 2 {
		t.Errorf("expected question 2 of 3, got %+v", snap)
	}
}
