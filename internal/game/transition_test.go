package game

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

func testSetup(t *testing.T) Setup {
	t.Helper()

	categories := []string{"History", "Science", "Movies"}
	var questions []Question
	for _, c := range categories {
		for _, v := range BoardValues {
			questions = append(questions, Question{
				Category: c,
				Value:    v,
				Question: c + " question for " + itoa(v),
				Answer:   "answer",
			})
		}
	}
	// One Daily Double on the board.
	questions[7].IsDailyDouble = true
	return Setup{Categories: categories, Questions: questions}
}

func itoa(v int) string {
	switch v {
	case 200:
		return "200"
	case 400:
		return "400"
	case 600:
		return "600"
	case 800:
		return "800"
	default:
		return "1000"
	}
}

func newTestDoc(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument("ABC123", testSetup(t))
	doc.Teams["Alpha"] = 0
	doc.Teams["Beta"] = 0
	return doc
}

func TestSelectQuestion(t *testing.T) {
	doc := newTestDoc(t)

	if err := doc.SelectQuestion("History question for 200", 200); err != nil {
		t.Fatalf("select question: %v", err)
	}
	if doc.CurrentQuestion == nil || doc.CurrentQuestion.Value != 200 {
		t.Fatalf("expected current question worth 200, got %+v", doc.CurrentQuestion)
	}
	if doc.BuzzesOpen {
		t.Error("buzzes should start closed")
	}
	if len(doc.IncorrectTeams) != 0 {
		t.Errorf("incorrect teams not reset: %v", doc.IncorrectTeams)
	}

	// A second selection while one is open is rejected.
	err := doc.SelectQuestion("Science question for 400", 400)
	if !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}
}

func TestSelectAnsweredQuestionRejected(t *testing.T) {
	doc := newTestDoc(t)
	doc.Questions[0].Answered = true

	err := doc.SelectQuestion(doc.Questions[0].Question, doc.Questions[0].Value)
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestBuzzWindow(t *testing.T) {
	doc := newTestDoc(t)
	mustSelect(t, doc, "History question for 400", 400)

	if err := doc.Buzz("alice", "Alpha"); !errors.Is(err, ErrBuzzesClosed) {
		t.Errorf("buzz before open: want ErrBuzzesClosed, got %v", err)
	}

	mustDo(t, doc.OpenBuzzes)

	if err := doc.Buzz("alice", "Alpha"); err != nil {
		t.Fatalf("first buzz: %v", err)
	}
	if err := doc.Buzz("bob", "Beta"); !errors.Is(err, ErrAlreadyBuzzed) {
		t.Errorf("second buzz: want ErrAlreadyBuzzed, got %v", err)
	}
	if doc.BuzzedPlayer == nil || doc.BuzzedPlayer.Name != "alice" {
		t.Fatalf("expected alice to hold the buzz, got %+v", doc.BuzzedPlayer)
	}
}

func TestScoreCorrectClosesQuestion(t *testing.T) {
	doc := newTestDoc(t)
	mustSelect(t, doc, "History question for 400", 400)
	mustDo(t, doc.OpenBuzzes)
	if err := doc.Buzz("alice", "Alpha"); err != nil {
		t.Fatalf("buzz: %v", err)
	}

	if err := doc.ScoreCurrent(true); err != nil {
		t.Fatalf("score: %v", err)
	}
	if got := doc.Teams["Alpha"]; got != 400 {
		t.Errorf("Alpha score = %d, want 400", got)
	}
	if doc.CurrentQuestion != nil {
		t.Error("current question not cleared")
	}
	if doc.BuzzesOpen {
		t.Error("buzzes should be closed")
	}
	q := doc.findQuestion("History question for 400", 400)
	if q == nil || !q.Answered {
		t.Error("board question not marked answered")
	}

	// Scoring again with no open question must fail.
	if err := doc.ScoreCurrent(true); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("replayed score: want ErrInvalidAction, got %v", err)
	}
}

func TestScoreIncorrectReopensBuzzes(t *testing.T) {
	doc := newTestDoc(t)
	mustSelect(t, doc, "History question for 600", 600)
	mustDo(t, doc.OpenBuzzes)
	if err := doc.Buzz("alice", "Alpha"); err != nil {
		t.Fatalf("buzz: %v", err)
	}

	if err := doc.ScoreCurrent(false); err != nil {
		t.Fatalf("score: %v", err)
	}
	if got := doc.Teams["Alpha"]; got != -600 {
		t.Errorf("Alpha score = %d, want -600", got)
	}
	if doc.CurrentQuestion == nil {
		t.Fatal("question should stay open after a wrong answer")
	}
	if !doc.BuzzesOpen {
		t.Error("buzzes should reopen for other teams")
	}

	// The failed team is locked out for the rest of the question.
	if err := doc.Buzz("alice", "Alpha"); !errors.Is(err, ErrTeamIncorrect) {
		t.Errorf("want ErrTeamIncorrect, got %v", err)
	}
	if err := doc.Buzz("bob", "Beta"); err != nil {
		t.Errorf("other team should be able to buzz: %v", err)
	}
}

func TestCloseQuestionWithoutScoring(t *testing.T) {
	doc := newTestDoc(t)
	mustSelect(t, doc, "Movies question for 1000", 1000)

	if err := doc.CloseQuestion(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if doc.CurrentQuestion != nil {
		t.Error("current question not cleared")
	}
	q := doc.findQuestion("Movies question for 1000", 1000)
	if q == nil || !q.Answered {
		t.Error("board question not marked answered")
	}
	if doc.Teams["Alpha"] != 0 || doc.Teams["Beta"] != 0 {
		t.Error("closing must not change scores")
	}
}

func TestDailyDoubleFlow(t *testing.T) {
	doc := newTestDoc(t)
	doc.Teams["Alpha"] = 200

	// Science question for 600 is the seeded Daily Double.
	mustSelect(t, doc, "Science question for 600", 600)
	if !doc.CurrentQuestion.IsDailyDouble {
		t.Fatal("expected a daily double")
	}
	if doc.DailyDoubleRevealed {
		t.Error("clue must start hidden")
	}

	if err := doc.SelectDailyDoubleTeam("Alpha"); err != nil {
		t.Fatalf("select team: %v", err)
	}

	a := PlayerKey{Team: "Alpha", Name: "alice"}
	b := PlayerKey{Team: "Alpha", Name: "anna"}
	if err := doc.SubmitDailyDoubleWager(a, 800); err != nil {
		t.Fatalf("submit wager: %v", err)
	}
	if err := doc.SubmitDailyDoubleWager(b, 800); err != nil {
		t.Fatalf("submit wager: %v", err)
	}
	if err := doc.ConfirmDailyDoubleWager(a); err != nil {
		t.Fatalf("confirm a: %v", err)
	}
	if doc.CurrentQuestion.WagerAmount != 0 {
		t.Error("stake must not resolve before all members confirm")
	}
	if err := doc.ConfirmDailyDoubleWager(b); err != nil {
		t.Fatalf("confirm b: %v", err)
	}
	if doc.CurrentQuestion.WagerAmount != 800 {
		t.Fatalf("stake = %d, want 800", doc.CurrentQuestion.WagerAmount)
	}

	mustDo(t, doc.RevealDailyDouble)
	if err := doc.ScoreCurrent(true); err != nil {
		t.Fatalf("score: %v", err)
	}
	if got := doc.Teams["Alpha"]; got != 1000 {
		t.Errorf("Alpha score = %d, want 1000", got)
	}
	if doc.CurrentQuestion != nil || doc.BuzzesOpen {
		t.Error("daily double must close fully after scoring")
	}
	if len(doc.DailyDoubleWagers) != 0 {
		t.Error("wagers not cleared")
	}
}

func TestDailyDoubleIncorrectClosesQuestion(t *testing.T) {
	doc := newTestDoc(t)
	mustSelect(t, doc, "Science question for 600", 600)
	if err := doc.SelectDailyDoubleTeam("Beta"); err != nil {
		t.Fatalf("select team: %v", err)
	}

	k := PlayerKey{Team: "Beta", Name: "bob"}
	if err := doc.SubmitDailyDoubleWager(k, 500); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := doc.ConfirmDailyDoubleWager(k); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := doc.ScoreCurrent(false); err != nil {
		t.Fatalf("score: %v", err)
	}
	if got := doc.Teams["Beta"]; got != -500 {
		t.Errorf("Beta score = %d, want -500", got)
	}
	// One attempt only: the question closes instead of reopening buzzes.
	if doc.CurrentQuestion != nil {
		t.Error("daily double should close after an incorrect answer")
	}
	if doc.BuzzesOpen {
		t.Error("buzzes must stay closed")
	}
}

func TestDailyDoubleWagerBounds(t *testing.T) {
	doc := newTestDoc(t)
	doc.Teams["Alpha"] = 2400
	mustSelect(t, doc, "Science question for 600", 600)
	if err := doc.SelectDailyDoubleTeam("Alpha"); err != nil {
		t.Fatalf("select team: %v", err)
	}
	k := PlayerKey{Team: "Alpha", Name: "alice"}

	tests := []struct {
		name   string
		amount int
		wantOK bool
	}{
		{"zero", 0, false},
		{"negative", -100, false},
		{"full score", 2400, true},
		{"above score", 2401, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := doc.SubmitDailyDoubleWager(k, tt.amount)
			if tt.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.wantOK && !errors.Is(err, ErrInvalidAction) {
				t.Fatalf("want ErrInvalidAction, got %v", err)
			}
		})
	}

	// A broke team can still wager up to 1000.
	doc.Teams["Alpha"] = -400
	if err := doc.SubmitDailyDoubleWager(k, 1000); err != nil {
		t.Errorf("broke team wagering 1000: %v", err)
	}
	if err := doc.SubmitDailyDoubleWager(k, 1001); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("broke team wagering 1001: want ErrInvalidAction, got %v", err)
	}
}

func TestFinalJeopardyFlow(t *testing.T) {
	doc := newTestDoc(t)
	doc.Final = &FinalRound{Category: "Space", Question: "q", Answer: "a"}
	doc.Teams["Alpha"] = 1000
	doc.Teams["Beta"] = 800

	if err := doc.StartFinalJeopardy(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := doc.SubmitFinalWager("Alpha", 600); err != nil {
		t.Fatalf("wager: %v", err)
	}
	if err := doc.SubmitFinalWager("Beta", 800); err != nil {
		t.Fatalf("wager: %v", err)
	}

	// One slot per team: a different amount is rejected with the pending
	// wager surfaced, the same amount is accepted as a re-submission.
	if err := doc.SubmitFinalWager("Alpha", 500); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("conflicting wager: want ErrInvalidAction, got %v", err)
	}
	if err := doc.SubmitFinalWager("Alpha", 600); err != nil {
		t.Errorf("matching re-submission: %v", err)
	}

	mustDo(t, doc.ShowFinalQuestion)

	a := PlayerKey{Team: "Alpha", Name: "alice"}
	if err := doc.SubmitFinalAnswer(a, "the moon"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := doc.ConfirmFinalAnswer(a); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := doc.FinalTeamAnswers["Alpha"]; got != "the moon" {
		t.Fatalf("team answer = %q, want %q", got, "the moon")
	}

	if err := doc.RevealFinalAnswer("Alpha"); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if err := doc.ScoreFinal("Alpha", true); err != nil {
		t.Fatalf("score: %v", err)
	}
	if got := doc.Teams["Alpha"]; got != 1600 {
		t.Errorf("Alpha score = %d, want 1600", got)
	}
	if err := doc.ScoreFinal("Alpha", true); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("double scoring: want ErrInvalidAction, got %v", err)
	}
	if err := doc.ScoreFinal("Beta", false); err != nil {
		t.Fatalf("score beta: %v", err)
	}
	if got := doc.Teams["Beta"]; got != 0 {
		t.Errorf("Beta score = %d, want 0", got)
	}
}

func TestFinalWagerBounds(t *testing.T) {
	doc := newTestDoc(t)
	doc.Final = &FinalRound{Category: "Space", Question: "q", Answer: "a"}
	doc.Teams["Alpha"] = 500
	doc.Teams["Beta"] = -200
	mustDo(t, doc.StartFinalJeopardy)

	if err := doc.SubmitFinalWager("Alpha", 501); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("over-score wager: want ErrInvalidAction, got %v", err)
	}
	if err := doc.SubmitFinalWager("Alpha", 0); err != nil {
		t.Errorf("zero wager: %v", err)
	}
	// Negative scores clamp to a zero-only wager.
	if err := doc.SubmitFinalWager("Beta", 100); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("negative-score team wager: want ErrInvalidAction, got %v", err)
	}
	if err := doc.SubmitFinalWager("Beta", 0); err != nil {
		t.Errorf("negative-score team zero wager: %v", err)
	}
}

func TestEndFinalJeopardyWinners(t *testing.T) {
	doc := newTestDoc(t)
	doc.Teams = map[string]int{"A": 1000, "B": 1000, "C": 800}

	if err := doc.EndFinalJeopardy(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if !doc.GameEnded {
		t.Error("game should be ended")
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(doc.Winners, want) {
		t.Errorf("winners = %v, want %v", doc.Winners, want)
	}
	if want := map[string]int{"A": 1000, "B": 1000, "C": 800}; !reflect.DeepEqual(doc.FinalScores, want) {
		t.Errorf("final scores = %v, want %v", doc.FinalScores, want)
	}
}

func TestChangeTeam(t *testing.T) {
	doc := newTestDoc(t)
	doc.Teams = map[string]int{"Old": 400}
	doc.FinalAnswers = Ballot[string]{
		{Team: "Old", Name: "alice"}: {Value: "x", Confirmed: true},
	}

	if err := doc.ChangeTeam("alice", "Old", "New"); err != nil {
		t.Fatalf("change team: %v", err)
	}
	if _, ok := doc.Teams["Old"]; ok {
		t.Error("empty old team should be removed")
	}
	if score, ok := doc.Teams["New"]; !ok || score != 0 {
		t.Errorf("new team = %d,%v; want 0,true", score, ok)
	}
	if len(doc.FinalAnswers) != 0 {
		t.Errorf("old ballot entries not scrubbed: %v", doc.FinalAnswers)
	}

	if err := doc.ChangeTeam("alice", "New", "New"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("same-team change: want ErrInvalidAction, got %v", err)
	}
}

func TestValidateSetup(t *testing.T) {
	valid := testSetup(t)
	if err := ValidateSetup(valid); err != nil {
		t.Fatalf("valid setup rejected: %v", err)
	}

	missing := testSetup(t)
	missing.Questions = missing.Questions[1:]
	if err := ValidateSetup(missing); err == nil {
		t.Error("setup with a missing question accepted")
	}

	few := testSetup(t)
	few.Categories = few.Categories[:2]
	if err := ValidateSetup(few); err == nil {
		t.Error("setup with 2 categories accepted")
	}
}

func TestWinnersSorted(t *testing.T) {
	doc := newTestDoc(t)
	doc.Teams = map[string]int{"Zeta": 500, "Alpha": 500, "Mid": 500}
	if err := doc.EndFinalJeopardy(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if !sort.StringsAreSorted(doc.Winners) {
		t.Errorf("winners not sorted: %v", doc.Winners)
	}
}

func mustSelect(t *testing.T, doc *Document, text string, value int) {
	t.Helper()
	if err := doc.SelectQuestion(text, value); err != nil {
		t.Fatalf("select %q: %v", text, err)
	}
}

func mustDo(t *testing.T, fn func() error) {
	t.Helper()
	if err := fn(); err != nil {
		t.Fatal(err)
	}
}
