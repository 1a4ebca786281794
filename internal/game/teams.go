package game

// JoinTeam registers a player on a team, creating the team at score 0 the
// first time anyone names it.
func (d *Document) JoinTeam(team string) error {
	if team == "" {
		return invalidf("team name is required")
	}
	if !d.teamKnown(team) {
		d.Teams[team] = 0
	}
	return nil
}

// ChangeTeam moves a player between teams. The player's ballot entries under
// the old team are scrubbed, and when they were the last member with any
// recorded presence, the old team itself is removed.
func (d *Document) ChangeTeam(player, from, to string) error {
	if to == "" {
		return invalidf("team name is required")
	}
	if to == from {
		return invalidf("already on team %q", to)
	}
	if !d.teamKnown(to) {
		d.Teams[to] = 0
	}

	oldKey := PlayerKey{Team: from, Name: player}
	d.DailyDoubleWagers.Remove(oldKey)
	d.FinalAnswers.Remove(oldKey)

	// Membership is only observable through ballot entries; if none remain,
	// the old team is gone.
	if d.DailyDoubleWagers.TeamSize(from)+d.FinalAnswers.TeamSize(from) == 0 {
		delete(d.Teams, from)
	}
	return nil
}
