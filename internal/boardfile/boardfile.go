// Package boardfile parses the game-definition text format instructors
// upload. The first line lists the category names, every following line is
// one question as `category, value, clue, answer[, isDailyDouble]`, and an
// optional trailing section introduced by a line reading FINAL JEOPARDY holds
// a single `category, question, answer` line for the final round. Fields are
// tab-separated when any tab is present on the line, comma-separated
// otherwise.
package boardfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quizhall/jeopardy/internal/game"
)

const finalMarker = "FINAL JEOPARDY"

// Parse reads a game definition and returns the setup for a new document.
// The returned setup is already validated for board shape.
func Parse(r io.Reader) (game.Setup, error) {
	var setup game.Setup

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	readLine := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	header, ok := readLine()
	if !ok {
		return setup, fmt.Errorf("empty file")
	}
	for _, c := range split(header) {
		if c != "" {
			setup.Categories = append(setup.Categories, c)
		}
	}

	inFinal := false
	for {
		line, ok := readLine()
		if !ok {
			break
		}
		if strings.EqualFold(line, finalMarker) {
			inFinal = true
			continue
		}

		fields := split(line)
		if inFinal {
			if setup.Final != nil {
				return setup, fmt.Errorf("line %d: multiple final jeopardy lines", lineNo)
			}
			if len(fields) < 3 {
				return setup, fmt.Errorf("line %d: final jeopardy needs category, question, answer", lineNo)
			}
			setup.Final = &game.FinalRound{
				Category: fields[0],
				Question: fields[1],
				Answer:   fields[2],
			}
			continue
		}

		q, err := parseQuestion(fields)
		if err != nil {
			return setup, fmt.Errorf("line %d: %w", lineNo, err)
		}
		setup.Questions = append(setup.Questions, q)
	}
	if err := scanner.Err(); err != nil {
		return setup, fmt.Errorf("reading file: %w", err)
	}

	if err := game.ValidateSetup(setup); err != nil {
		return setup, err
	}
	return setup, nil
}

func parseQuestion(fields []string) (game.Question, error) {
	if len(fields) < 4 {
		return game.Question{}, fmt.Errorf("need category, value, clue, answer; got %d fields", len(fields))
	}
	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Question{}, fmt.Errorf("bad value %q: %w", fields[1], err)
	}
	q := game.Question{
		Category: fields[0],
		Value:    value,
		Question: fields[2],
		Answer:   fields[3],
	}
	if len(fields) > 4 {
		q.IsDailyDouble = strings.EqualFold(fields[4], "true")
	}
	return q, nil
}

// split separates a line on tabs when it contains any, otherwise on commas,
// and trims each field. Tab files can therefore carry commas inside clues.
func split(line string) []string {
	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = strings.Split(line, ",")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
