package game

// Daily Double wager round and Final Jeopardy wager/answer round. Both build
// on Ballot, except the Final Jeopardy wager, which the clients store as a
// single value per team: whichever submission arrives first initializes it
// and later mismatches are rejected with the pending value surfaced.

// SubmitDailyDoubleWager records a player's wager for the open Daily Double.
// The wager is capped at the team score or 1000, whichever is higher, so a
// team in the red can still make a meaningful bet.
func (d *Document) SubmitDailyDoubleWager(key PlayerKey, amount int) error {
	if d.CurrentQuestion == nil || !d.CurrentQuestion.IsDailyDouble {
		return invalidf("no daily double in play")
	}
	if d.DailyDoubleTeam == "" || d.DailyDoubleTeam != key.Team {
		return invalidf("team %q is not playing this daily double", key.Team)
	}
	maxWager := d.Teams[key.Team]
	if maxWager < 1000 {
		maxWager = 1000
	}
	if amount <= 0 || amount > maxWager {
		return invalidf("wager must be between 1 and %d", maxWager)
	}
	d.DailyDoubleWagers.Submit(key, amount)
	return nil
}

// ConfirmDailyDoubleWager locks in a player's wager. Once every member of the
// team has confirmed the same amount, it becomes the question's stake.
func (d *Document) ConfirmDailyDoubleWager(key PlayerKey) error {
	if d.CurrentQuestion == nil || !d.CurrentQuestion.IsDailyDouble {
		return invalidf("no daily double in play")
	}
	if err := d.DailyDoubleWagers.Confirm(key); err != nil {
		return invalidf("%v", err)
	}
	if amount, ok := d.DailyDoubleWagers.Agreed(key.Team); ok {
		d.CurrentQuestion.WagerAmount = amount
	}
	return nil
}

// UnconfirmDailyDoubleWager withdraws a player's confirmation.
func (d *Document) UnconfirmDailyDoubleWager(key PlayerKey) error {
	if d.CurrentQuestion == nil || !d.CurrentQuestion.IsDailyDouble {
		return invalidf("no daily double in play")
	}
	d.DailyDoubleWagers.Unconfirm(key)
	return nil
}

// SubmitFinalWager places a team's Final Jeopardy wager. Unlike the Daily
// Double round there is one slot per team: the first submission wins and any
// different amount afterwards is rejected, so the team must agree out of
// band before retrying.
func (d *Document) SubmitFinalWager(team string, amount int) error {
	if !d.IsFinalJeopardy {
		return invalidf("final round not started")
	}
	if !d.teamKnown(team) {
		return invalidf("unknown team %q", team)
	}
	score := d.Teams[team]
	if score < 0 {
		score = 0
	}
	if amount < 0 || amount > score {
		return invalidf("wager must be between 0 and %d", score)
	}
	if existing, ok := d.FinalWagers[team]; ok && existing != amount {
		return invalidf("team already has a pending wager of %d", existing)
	}
	d.FinalWagers[team] = amount
	return nil
}

// SubmitFinalAnswer records a player's Final Jeopardy answer, unconfirmed.
func (d *Document) SubmitFinalAnswer(key PlayerKey, answer string) error {
	if !d.IsFinalJeopardy {
		return invalidf("final round not started")
	}
	if answer == "" {
		return invalidf("answer is required")
	}
	d.FinalAnswers.Submit(key, answer)
	return nil
}

// ConfirmFinalAnswer locks in a player's answer; full-team agreement promotes
// it to the team's official answer.
func (d *Document) ConfirmFinalAnswer(key PlayerKey) error {
	if !d.IsFinalJeopardy {
		return invalidf("final round not started")
	}
	if err := d.FinalAnswers.Confirm(key); err != nil {
		return invalidf("%v", err)
	}
	if answer, ok := d.FinalAnswers.Agreed(key.Team); ok {
		d.FinalTeamAnswers[key.Team] = answer
	}
	return nil
}

// UnconfirmFinalAnswer withdraws a player's confirmation.
func (d *Document) UnconfirmFinalAnswer(key PlayerKey) error {
	if !d.IsFinalJeopardy {
		return invalidf("final round not started")
	}
	d.FinalAnswers.Unconfirm(key)
	return nil
}
