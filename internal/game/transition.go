package game

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidAction marks a transition that is illegal in the document's
// current state. Handlers map it to a user-visible rejection; the document is
// never modified when it is returned.
var ErrInvalidAction = errors.New("invalid action")

// Buzz rejection sentinels. These are expected outcomes of a race, not
// failures, and carry the reason reported to the losing caller.
var (
	ErrBuzzesClosed  = errors.New("buzzes-closed")
	ErrAlreadyBuzzed = errors.New("already-buzzed")
	ErrTeamIncorrect = errors.New("team-already-incorrect")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidAction}, args...)...)
}

// SelectQuestion opens the (text, value) board question for play. Selecting
// resets all per-question state, including the Daily Double wager round when
// the question is a Daily Double.
func (d *Document) SelectQuestion(text string, value int) error {
	if d.CurrentQuestion != nil {
		return invalidf("a question is already open")
	}
	q := d.findQuestion(text, value)
	if q == nil {
		return invalidf("no question %q worth %d", text, value)
	}
	if q.Answered {
		return invalidf("question already answered")
	}

	current := *q
	d.CurrentQuestion = &current
	now := time.Now().UTC()
	d.QuestionStartTime = &now
	d.BuzzedPlayer = nil
	d.BuzzesOpen = false
	d.IncorrectTeams = []string{}
	if q.IsDailyDouble {
		d.DailyDoubleRevealed = false
		d.DailyDoubleWagers = Ballot[int]{}
		d.DailyDoubleTeam = ""
	}
	return nil
}

// SelectDailyDoubleTeam picks the team that must wager on and answer the open
// Daily Double.
func (d *Document) SelectDailyDoubleTeam(team string) error {
	if d.CurrentQuestion == nil || !d.CurrentQuestion.IsDailyDouble {
		return invalidf("no daily double in play")
	}
	if !d.teamKnown(team) {
		return invalidf("unknown team %q", team)
	}
	d.DailyDoubleTeam = team
	return nil
}

// RevealDailyDouble shows the clue text once the wager round is settled.
// Revealing an already-revealed clue is a no-op.
func (d *Document) RevealDailyDouble() error {
	if d.CurrentQuestion == nil || !d.CurrentQuestion.IsDailyDouble {
		return invalidf("no daily double in play")
	}
	d.DailyDoubleRevealed = true
	return nil
}

// OpenBuzzes starts a buzz window for the open question.
func (d *Document) OpenBuzzes() error {
	if d.CurrentQuestion == nil {
		return invalidf("no question in play")
	}
	d.BuzzesOpen = true
	return nil
}

// CloseBuzzes stops accepting buzz attempts without resolving the question.
func (d *Document) CloseBuzzes() error {
	d.BuzzesOpen = false
	return nil
}

// Buzz applies one player's buzz attempt. The caller must run it inside the
// store's atomic read-modify-write so that the check and the write are a
// single unit: at most one attempt per window can pass the BuzzedPlayer
// check.
func (d *Document) Buzz(name, team string) error {
	if !d.BuzzesOpen {
		return ErrBuzzesClosed
	}
	if d.BuzzedPlayer != nil {
		return ErrAlreadyBuzzed
	}
	if d.teamIncorrect(team) {
		return ErrTeamIncorrect
	}
	d.BuzzedPlayer = &Buzz{Name: name, Team: team, Timestamp: time.Now().UTC()}
	return nil
}

// ScoreCurrent resolves the open question for the acting team. Correct
// answers close the question. Incorrect answers close it too for Daily
// Doubles (one attempt only); for regular questions the team is excluded and
// buzzes reopen so other teams may try.
func (d *Document) ScoreCurrent(correct bool) error {
	q := d.CurrentQuestion
	if q == nil {
		return invalidf("no question in play")
	}

	team := ""
	if q.IsDailyDouble {
		team = d.DailyDoubleTeam
	} else if d.BuzzedPlayer != nil {
		team = d.BuzzedPlayer.Team
	}
	if team == "" {
		return invalidf("no team to score")
	}

	points := q.Value
	if q.IsDailyDouble {
		points = d.dailyDoubleStake(team)
		if points <= 0 {
			return invalidf("team %q has no wager", team)
		}
	}

	if correct {
		d.Teams[team] += points
	} else {
		d.Teams[team] -= points
	}

	if !correct && !q.IsDailyDouble {
		if !d.teamIncorrect(team) {
			d.IncorrectTeams = append(d.IncorrectTeams, team)
		}
		d.BuzzedPlayer = nil
		d.BuzzesOpen = true
		return nil
	}

	d.closeCurrent()
	return nil
}

// CloseQuestion retires the open question without scoring, the instructor's
// override when nobody buzzed.
func (d *Document) CloseQuestion() error {
	if d.CurrentQuestion == nil {
		return invalidf("no question in play")
	}
	d.closeCurrent()
	return nil
}

// dailyDoubleStake returns the wager the question is worth for team. The
// agreed amount is propagated to the in-play question on consensus; older
// clients may score before that write lands, so fall back to the team's
// ballot entry.
func (d *Document) dailyDoubleStake(team string) int {
	if d.CurrentQuestion.WagerAmount > 0 {
		return d.CurrentQuestion.WagerAmount
	}
	if amount, ok := d.DailyDoubleWagers.Agreed(team); ok {
		return amount
	}
	for k, s := range d.DailyDoubleWagers {
		if k.Team == team {
			return s.Value
		}
	}
	return 0
}

func (d *Document) closeCurrent() {
	q := d.CurrentQuestion
	if bq := d.findQuestion(q.Question, q.Value); bq != nil {
		bq.Answered = true
	}
	d.CurrentQuestion = nil
	d.QuestionStartTime = nil
	d.BuzzedPlayer = nil
	d.BuzzesOpen = false
	d.DailyDoubleWagers = Ballot[int]{}
}

// StartFinalJeopardy moves the session into the final round, clearing any
// open question and all previous wagers.
func (d *Document) StartFinalJeopardy() error {
	if d.Final == nil {
		return invalidf("game has no final round")
	}
	d.IsFinalJeopardy = true
	d.CurrentQuestion = nil
	d.QuestionStartTime = nil
	d.BuzzedPlayer = nil
	d.BuzzesOpen = false
	d.FinalWagers = map[string]int{}
	return nil
}

// ShowFinalQuestion reveals the final clue after wagers are placed.
func (d *Document) ShowFinalQuestion() error {
	if !d.IsFinalJeopardy {
		return invalidf("final round not started")
	}
	d.FinalQuestionShown = true
	return nil
}

// RevealFinalAnswer flips the instructor-controlled reveal gate for one
// team's answer. Repeating the reveal is a no-op.
func (d *Document) RevealFinalAnswer(team string) error {
	if !d.IsFinalJeopardy {
		return invalidf("final round not started")
	}
	if !d.teamKnown(team) {
		return invalidf("unknown team %q", team)
	}
	d.FinalRevealed[team] = true
	return nil
}

// ScoreFinal applies a team's final wager for or against its score. Scoring
// is not idempotent, so a second call for the same team is rejected.
func (d *Document) ScoreFinal(team string, correct bool) error {
	if !d.IsFinalJeopardy {
		return invalidf("final round not started")
	}
	if !d.teamKnown(team) {
		return invalidf("unknown team %q", team)
	}
	if _, scored := d.FinalScored[team]; scored {
		return invalidf("team %q already scored", team)
	}
	wager := d.FinalWagers[team]
	if correct {
		d.Teams[team] += wager
	} else {
		d.Teams[team] -= wager
	}
	d.FinalScored[team] = correct
	return nil
}

// EndFinalJeopardy ends the game: every team tied for the highest score wins,
// and the final scores are snapshotted for the results screen.
func (d *Document) EndFinalJeopardy() error {
	if len(d.Teams) == 0 {
		return invalidf("no teams in game")
	}

	top := 0
	first := true
	for _, score := range d.Teams {
		if first || score > top {
			top = score
			first = false
		}
	}

	winners := []string{}
	finalScores := make(map[string]int, len(d.Teams))
	for team, score := range d.Teams {
		finalScores[team] = score
		if score == top {
			winners = append(winners, team)
		}
	}
	sort.Strings(winners)

	d.GameEnded = true
	d.Winners = winners
	d.FinalScores = finalScores
	return nil
}
