package handhistory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pokertools/handhistory/card"
)

// Action is the kind of a single player event on a street.
type Action int

const (
	Bet Action = iota
	Raise
	Call
	Check
	Fold
	Muck
	Show
	Think  // "N seconds left to act" timer notice
	Return // uncalled bet returned
	Win
)

func (a Action) String() string {
	switch a {
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case Call:
		return "call"
	case Check:
		return "check"
	case Fold:
		return "fold"
	case Muck:
		return "muck"
	case Show:
		return "show"
	case Think:
		return "think"
	case Return:
		return "return"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

// ParseAction maps a room action verb to an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "bets":
		return Bet, nil
	case "raises":
		return Raise, nil
	case "calls":
		return Call, nil
	case "checks":
		return Check, nil
	case "folds":
		return Fold, nil
	case "mucks":
		return Muck, nil
	case "shows":
		return Show, nil
	default:
		return 0, fmt.Errorf("%w: action %q", ErrUnknownEnum, s)
	}
}

// Limit is the betting structure of a game.
type Limit int

const (
	NoLimit Limit = iota
	PotLimit
	FixedLimit
)

func (l Limit) String() string {
	switch l {
	case NoLimit:
		return "NL"
	case PotLimit:
		return "PL"
	case FixedLimit:
		return "FL"
	default:
		return "?"
	}
}

// ParseLimit accepts both the short and long limit codes rooms emit.
func ParseLimit(s string) (Limit, error) {
	switch s {
	case "NL", "No Limit":
		return NoLimit, nil
	case "PL", "Pot Limit":
		return PotLimit, nil
	case "FL", "Fix Limit", "Fixed Limit":
		return FixedLimit, nil
	default:
		return 0, fmt.Errorf("%w: limit %q", ErrUnknownEnum, s)
	}
}

// Game is the poker variant.
type Game int

const (
	Holdem Game = iota
	Omaha
	OmahaHiLo
	Stud
)

func (g Game) String() string {
	switch g {
	case Holdem:
		return "Hold'em"
	case Omaha:
		return "Omaha"
	case OmahaHiLo:
		return "Omaha Hi/Lo"
	case Stud:
		return "Stud"
	default:
		return "?"
	}
}

// ParseGame maps a room game label to a Game.
func ParseGame(s string) (Game, error) {
	switch s {
	case "Hold'em", "Holdem":
		return Holdem, nil
	case "Omaha":
		return Omaha, nil
	case "Omaha Hi/Lo", "Omaha H/L":
		return OmahaHiLo, nil
	case "Stud", "7 Card Stud":
		return Stud, nil
	default:
		return 0, fmt.Errorf("%w: game %q", ErrUnknownEnum, s)
	}
}

// GameType distinguishes tournament formats from cash games.
type GameType int

const (
	Tournament GameType = iota
	SitAndGo
	Cash
)

func (t GameType) String() string {
	switch t {
	case Tournament:
		return "tournament"
	case SitAndGo:
		return "sit & go"
	case Cash:
		return "cash"
	default:
		return "?"
	}
}

// Currency is an ISO-like currency code. Empty means play money or unknown.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// Player is one seat in the hand. Seats that never appear in the text stay
// as "Empty Seat N" placeholders with a zero stack. Combo is non-nil only
// for the hero or for players whose cards were revealed.
type Player struct {
	Name  string
	Stack int
	Seat  int // 1-based
	Combo *card.Combo
}

// emptySeat builds the placeholder player for an unoccupied seat.
func emptySeat(seat int) Player {
	return Player{Name: fmt.Sprintf("Empty Seat %d", seat), Seat: seat}
}

// PlayerAction is a single observed actor event on a street, in document
// order. Amount is nil for actions that carry no money (check, fold, muck).
type PlayerAction struct {
	Name   string
	Action Action
	Amount *decimal.Decimal
}

// StreetID enumerates the betting rounds.
type StreetID int

const (
	Preflop StreetID = iota
	FlopStreet
	TurnStreet
	RiverStreet
)

func (s StreetID) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case FlopStreet:
		return "flop"
	case TurnStreet:
		return "turn"
	case RiverStreet:
		return "river"
	default:
		return "?"
	}
}

// Marker returns the section marker label for the street.
func (s StreetID) Marker() string {
	switch s {
	case FlopStreet:
		return "FLOP"
	case TurnStreet:
		return "TURN"
	case RiverStreet:
		return "RIVER"
	default:
		return ""
	}
}

// StreetStat carries the per-street pot and active-player count some rooms
// print on the street line. Nil pointer fields mean the room did not report
// the value or the street was never reached.
type StreetStat struct {
	Pot        *decimal.Decimal
	NumPlayers int
}
