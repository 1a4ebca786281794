package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrConsensusConflict is returned when a submission or confirmation clashes
// with a value another teammate has already locked in. The caller surfaces it
// to the submitting player only; the document is left untouched.
var ErrConsensusConflict = errors.New("team members disagree")

// Submission is one player's entry in a team ballot.
type Submission[V comparable] struct {
	Value     V
	Confirmed bool
}

// Ballot collects per-player submissions and tracks team agreement. It is
// used for Daily Double wagers (V = int) and Final Jeopardy answers
// (V = string). A value becomes authoritative for a team only once every
// entry present for that team is confirmed and all confirmed values match.
type Ballot[V comparable] map[PlayerKey]Submission[V]

// ballotEntry is the wire form of one submission. The map key stays the
// "{team}-{player}" composite the clients key their state by, but it is
// opaque on the way back in: team names may themselves contain the
// separator, so identity always travels in the explicit team/player fields.
// Wagers keep the clients' "amount" field name, answers keep "answer".
type ballotEntry[V comparable] struct {
	Team      string `json:"team"`
	Player    string `json:"player"`
	Amount    *V     `json:"amount,omitempty"`
	Answer    *V     `json:"answer,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

func (e ballotEntry[V]) value() V {
	if e.Amount != nil {
		return *e.Amount
	}
	if e.Answer != nil {
		return *e.Answer
	}
	var zero V
	return zero
}

func (b Ballot[V]) MarshalJSON() ([]byte, error) {
	out := make(map[string]ballotEntry[V], len(b))
	for k, s := range b {
		e := ballotEntry[V]{Team: k.Team, Player: k.Name, Confirmed: s.Confirmed}
		v := s.Value
		if _, isAnswer := any(v).(string); isAnswer {
			e.Answer = &v
		} else {
			e.Amount = &v
		}
		out[k.String()] = e
	}
	return json.Marshal(out)
}

func (b *Ballot[V]) UnmarshalJSON(data []byte) error {
	var raw map[string]ballotEntry[V]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Ballot[V], len(raw))
	for _, e := range raw {
		key := PlayerKey{Team: e.Team, Name: e.Player}
		out[key] = Submission[V]{Value: e.value(), Confirmed: e.Confirmed}
	}
	*b = out
	return nil
}

// Submit records a player's (not yet confirmed) value. If the player had
// already confirmed a different value, the edit invalidates the whole team's
// confirmations: agreement must be re-established from scratch.
func (b Ballot[V]) Submit(key PlayerKey, value V) {
	prev, existed := b[key]
	b[key] = Submission[V]{Value: value}
	if existed && prev.Confirmed {
		b.invalidate(key.Team)
	}
}

// Confirm locks in the player's submitted value. It fails if any other
// confirmed entry on the same team holds a different value. On success the
// value is copied onto every unconfirmed teammate entry as a pre-filled
// suggestion, without confirming them.
func (b Ballot[V]) Confirm(key PlayerKey) error {
	own, ok := b[key]
	if !ok {
		return fmt.Errorf("no submission for %s", key)
	}
	for k, s := range b {
		if k.Team != key.Team || k == key {
			continue
		}
		if s.Confirmed && s.Value != own.Value {
			return fmt.Errorf("%w: %v already confirmed by %s", ErrConsensusConflict, s.Value, k.Name)
		}
	}
	b[key] = Submission[V]{Value: own.Value, Confirmed: true}
	for k, s := range b {
		if k.Team == key.Team && k != key && !s.Confirmed {
			b[k] = Submission[V]{Value: own.Value}
		}
	}
	return nil
}

// Unconfirm withdraws the player's own confirmation without touching the
// stored value or other team members.
func (b Ballot[V]) Unconfirm(key PlayerKey) {
	if s, ok := b[key]; ok {
		b[key] = Submission[V]{Value: s.Value}
	}
}

// Remove drops a player's entry, e.g. when they switch teams.
func (b Ballot[V]) Remove(key PlayerKey) {
	delete(b, key)
}

// Agreed reports whether the team has reached consensus: at least one entry,
// every entry confirmed, all values equal. The agreed value is returned.
func (b Ballot[V]) Agreed(team string) (V, bool) {
	var agreed V
	found := false
	for k, s := range b {
		if k.Team != team {
			continue
		}
		if !s.Confirmed {
			var zero V
			return zero, false
		}
		if found && s.Value != agreed {
			var zero V
			return zero, false
		}
		agreed = s.Value
		found = true
	}
	return agreed, found
}

// TeamSize counts entries for a team.
func (b Ballot[V]) TeamSize(team string) int {
	n := 0
	for k := range b {
		if k.Team == team {
			n++
		}
	}
	return n
}

func (b Ballot[V]) invalidate(team string) {
	for k, s := range b {
		if k.Team == team && s.Confirmed {
			b[k] = Submission[V]{Value: s.Value}
		}
	}
}
