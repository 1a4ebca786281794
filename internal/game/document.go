// Package game holds the canonical state record for one trivia session and
// the pure transition rules that mutate it. Nothing in this package touches
// storage or transport: callers load a Document, apply transitions to their
// copy, and persist the result under whatever atomicity discipline they need.
package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Question values allowed on the board.
var BoardValues = []int{200, 400, 600, 800, 1000}

// Question is one clue on the board. Questions have no synthetic ID; the
// (question text, value) pair identifies them, matching the wire format the
// clients exchange.
type Question struct {
	Category      string `json:"category"`
	Value         int    `json:"value"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	IsDailyDouble bool   `json:"isDailyDouble"`
	Answered      bool   `json:"answered"`

	// WagerAmount is set on the in-play copy once a Daily Double team has
	// agreed on a wager. Never set on board questions.
	WagerAmount int `json:"wagerAmount,omitempty"`
}

// FinalRound is the optional Final Jeopardy clue.
type FinalRound struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Buzz records the single accepted buzz of the current window.
type Buzz struct {
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	Timestamp time.Time `json:"timestamp"`
}

// Setup is the parsed output of the game-definition file, everything needed
// to create a fresh Document.
type Setup struct {
	Categories []string
	Questions  []Question
	Final      *FinalRound
}

// Document is the full state of one game session. It is stored as a single
// JSON record keyed by GameID and broadcast whole to every subscriber after
// each committed mutation.
type Document struct {
	GameID     string      `json:"gameId"`
	Categories []string    `json:"categories"`
	Questions  []Question  `json:"questions"`
	Final      *FinalRound `json:"finalJeopardy,omitempty"`

	// Teams maps team name to score. Teams are created lazily on join and
	// scores may go negative.
	Teams map[string]int `json:"teams"`

	CurrentQuestion   *Question  `json:"currentQuestion"`
	QuestionStartTime *time.Time `json:"questionStartTime"`
	BuzzedPlayer      *Buzz      `json:"buzzedPlayer"`
	BuzzesOpen        bool       `json:"buzzesOpen"`
	IncorrectTeams    []string   `json:"incorrectTeams"`

	DailyDoubleTeam     string      `json:"dailyDoubleTeam,omitempty"`
	DailyDoubleRevealed bool        `json:"dailyDoubleRevealed"`
	DailyDoubleWagers   Ballot[int] `json:"dailyDoubleWagers"`

	IsFinalJeopardy    bool              `json:"isFinalJeopardy"`
	FinalQuestionShown bool              `json:"showFinalQuestion"`
	FinalWagers        map[string]int    `json:"finalJeopardyWagers"`
	FinalAnswers       Ballot[string]    `json:"finalJeopardyAnswers"`
	FinalTeamAnswers   map[string]string `json:"finalJeopardyTeamAnswers"`
	FinalRevealed      map[string]bool   `json:"finalJeopardyRevealedAnswers"`
	FinalScored        map[string]bool   `json:"finalJeopardyScored"`

	GameEnded   bool           `json:"gameEnded"`
	Winners     []string       `json:"winners"`
	FinalScores map[string]int `json:"finalScores"`

	CreatedAt time.Time `json:"createdAt"`
}

// PlayerKey identifies a player within a team. The "{team}-{player}" string
// the clients key their maps by is write-only: team names may contain the
// separator, so it is never parsed back into its parts.
type PlayerKey struct {
	Team string
	Name string
}

func (k PlayerKey) String() string {
	return k.Team + "-" + k.Name
}

// NewDocument builds the initial state for a session. The id must already be
// normalized (uppercase) and unique; uniqueness is the store's concern.
func NewDocument(id string, setup Setup) *Document {
	return &Document{
		GameID:            id,
		Categories:        setup.Categories,
		Questions:         setup.Questions,
		Final:             setup.Final,
		Teams:             map[string]int{},
		IncorrectTeams:    []string{},
		DailyDoubleWagers: Ballot[int]{},
		FinalWagers:       map[string]int{},
		FinalAnswers:      Ballot[string]{},
		FinalTeamAnswers:  map[string]string{},
		FinalRevealed:     map[string]bool{},
		FinalScored:       map[string]bool{},
		Winners:           []string{},
		FinalScores:       map[string]int{},
		CreatedAt:         time.Now().UTC(),
	}
}

// NormalizeID uppercases a caller-supplied game id.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidateID checks the short-code shape shared by all game ids.
func ValidateID(id string) error {
	if len(id) < 4 || len(id) > 20 {
		return errors.New("game id must be 4-20 characters")
	}
	for _, r := range id {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return errors.New("game id must be uppercase letters and digits")
		}
	}
	return nil
}

// ValidateSetup enforces the board shape: 3-8 categories and exactly one
// question per (category, value) pair over the standard values.
func ValidateSetup(s Setup) error {
	if len(s.Categories) < 3 || len(s.Categories) > 8 {
		return fmt.Errorf("expected 3-8 categories, got %d", len(s.Categories))
	}
	seen := map[string]map[int]bool{}
	for _, c := range s.Categories {
		seen[c] = map[int]bool{}
	}
	for _, q := range s.Questions {
		values, ok := seen[q.Category]
		if !ok {
			return fmt.Errorf("question category %q not in category list", q.Category)
		}
		if !validBoardValue(q.Value) {
			return fmt.Errorf("invalid question value %d in category %q", q.Value, q.Category)
		}
		if values[q.Value] {
			return fmt.Errorf("duplicate question for %s %d", q.Category, q.Value)
		}
		values[q.Value] = true
	}
	for c, values := range seen {
		if len(values) != len(BoardValues) {
			return fmt.Errorf("category %q has %d questions, want %d", c, len(values), len(BoardValues))
		}
	}
	return nil
}

func validBoardValue(v int) bool {
	for _, bv := range BoardValues {
		if v == bv {
			return true
		}
	}
	return false
}

// findQuestion locates a board question by the identity the clients use:
// question text plus value.
func (d *Document) findQuestion(text string, value int) *Question {
	for i := range d.Questions {
		if d.Questions[i].Question == text && d.Questions[i].Value == value {
			return &d.Questions[i]
		}
	}
	return nil
}

func (d *Document) teamKnown(team string) bool {
	_, ok := d.Teams[team]
	return ok
}

func (d *Document) teamIncorrect(team string) bool {
	for _, t := range d.IncorrectTeams {
		if t == team {
			return true
		}
	}
	return false
}
