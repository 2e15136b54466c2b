package handhistory

import (
	"errors"
	"fmt"
)

var (
	// ErrSectionNotFound reports a named section marker (e.g. "FLOP")
	// missing from the split text. Street stages absorb it and record the
	// street as absent; it only escapes when a mandatory section is missing.
	ErrSectionNotFound = errors.New("section not found")

	// ErrMalformedHeader reports a header line that does not match the
	// room's header grammar. Not recoverable.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMalformedLine reports a body line that does not match the shape a
	// stage expected. Not recoverable.
	ErrMalformedLine = errors.New("malformed line")

	// ErrHeroNotFound reports a hero name from the hole-cards line that
	// matches no parsed seat.
	ErrHeroNotFound = errors.New("hero not found among players")

	// ErrUnknownEnum reports a value outside a fixed enumeration
	// (action, limit, game, game type).
	ErrUnknownEnum = errors.New("unknown enumeration value")
)

// Stage identifies a step of the parse pipeline. Stages run in declaration
// order, each mutating the shared hand history record.
type Stage int

const (
	StageHeader Stage = iota
	StageTable
	StagePlayers
	StageButton
	StageHero
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
	StagePot
	StageBoard
	StageWinners
	StageExtra
)

func (s Stage) String() string {
	switch s {
	case StageHeader:
		return "header"
	case StageTable:
		return "table"
	case StagePlayers:
		return "players"
	case StageButton:
		return "button"
	case StageHero:
		return "hero"
	case StagePreflop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	case StagePot:
		return "pot"
	case StageBoard:
		return "board"
	case StageWinners:
		return "winners"
	case StageExtra:
		return "extra"
	default:
		return "unknown"
	}
}

// ParseError wraps a stage failure with the stage name and, when known, the
// index of the fragment the stage was reading.
type ParseError struct {
	Stage    Stage
	Fragment int // fragment index, -1 when not applicable
	Err      error
}

func (e *ParseError) Error() string {
	if e.Fragment >= 0 {
		return fmt.Sprintf("parse %s stage (fragment %d): %v", e.Stage, e.Fragment, e.Err)
	}
	return fmt.Sprintf("parse %s stage: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// stageError builds a ParseError with no fragment context.
func stageError(stage Stage, err error) *ParseError {
	return &ParseError{Stage: stage, Fragment: -1, Err: err}
}
