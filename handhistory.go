// Package handhistory converts raw poker hand-history text into a
// structured, queryable record of a single hand: players, seating, actions
// per betting round, board cards, pot size and winners.
//
// The package is room-agnostic. A RoomParser adapter supplies the section
// delimiter pattern and the per-stage extraction logic for one poker room's
// text format; the generic pipeline here owns the stage ordering, the shared
// record, and the failure policy.
package handhistory

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pokertools/handhistory/card"
)

// RoomParser is the capability interface every room adapter implements.
// Each stage receives the split sections and the in-progress record; it may
// only read fragments at offsets it can justify from previously established
// boundaries. Turn and river share ParseStreet since their line shape is
// identical; the flop has its own stage because it deals three cards and
// builds a Street.
type RoomParser interface {
	// SectionPattern is the delimiter pattern handed to the section splitter.
	SectionPattern() *regexp.Regexp

	ParseHeader(h *HandHistory, sec *Sections) error
	ParseTable(h *HandHistory, sec *Sections) error
	ParsePlayers(h *HandHistory, sec *Sections) error
	ParseButton(h *HandHistory, sec *Sections) error
	ParseHero(h *HandHistory, sec *Sections) error
	ParsePreflop(h *HandHistory, sec *Sections) error
	ParseFlop(h *HandHistory, sec *Sections) error
	ParseStreet(h *HandHistory, sec *Sections, id StreetID) error
	ParseShowdown(h *HandHistory, sec *Sections) error
	ParsePot(h *HandHistory, sec *Sections) error
	ParseBoard(h *HandHistory, sec *Sections) error
	ParseWinners(h *HandHistory, sec *Sections) error
	ParseExtra(h *HandHistory, sec *Sections) error
}

// HandHistory is the shared parse-result record for a single hand. Header
// fields are populated by ParseHeader, the rest by Parse. A fully parsed
// record is read-mostly: concurrent readers are safe, concurrent mutation
// is the caller's problem.
type HandHistory struct {
	// Raw is the trimmed input text the hand was constructed from.
	Raw string

	// Header fields.
	ID              string
	Date            time.Time // normalized to UTC
	SB, BB          decimal.Decimal
	Limit           Limit
	Game            Game
	GameType        GameType
	Currency        Currency
	Buyin           *decimal.Decimal
	Rake            *decimal.Decimal
	TableName       string
	TournamentIdent string

	// Body fields.
	MaxPlayers int
	Players    []Player
	// Button and Hero point into Players, so enriching a seat (hero combo,
	// showdown cards) is visible through every reference.
	Button *Player
	Hero   *Player

	// PreflopActions keeps the raw preflop lines; preflop deals no board
	// cards so there is no Street to build.
	PreflopActions []string

	Flop  *Street
	Turn  *card.Card
	River *card.Card

	TurnActions  []PlayerAction
	RiverActions []PlayerAction

	ShowDown bool
	TotalPot *decimal.Decimal
	Winners  []string

	// Extra holds room-specific auxiliary facts that have no typed home,
	// e.g. the tournament name.
	Extra map[string]string

	streetStats [4]*StreetStat

	room         RoomParser
	sections     *Sections
	headerParsed bool
	parsed       bool
}

// New builds a hand history from a complete text blob and splits it into
// sections with the room's delimiter pattern. Nothing is parsed yet.
func New(room RoomParser, text string) *HandHistory {
	raw := strings.TrimSpace(text)
	return &HandHistory{
		Raw:      raw,
		Extra:    make(map[string]string),
		room:     room,
		sections: SplitSections(room.SectionPattern(), raw),
	}
}

// FromFile reads a single hand history from the named file.
func FromFile(room RoomParser, path string) (*HandHistory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hand history: %w", err)
	}
	return New(room, string(data)), nil
}

// String identifies the hand for logs.
func (h *HandHistory) String() string {
	return fmt.Sprintf("hand #%s", h.ID)
}

// HeaderParsed reports whether the header stage has run.
func (h *HandHistory) HeaderParsed() bool { return h.headerParsed }

// Parsed reports whether the full body parse has completed.
func (h *HandHistory) Parsed() bool { return h.parsed }

// ParseHeader parses only the hand's header, for cheap metadata-only scans.
// It is idempotent: once the header is parsed, further calls are no-ops.
func (h *HandHistory) ParseHeader() error {
	if h.headerParsed {
		return nil
	}
	if err := h.room.ParseHeader(h, h.sections); err != nil {
		return wrapStage(StageHeader, err)
	}
	h.headerParsed = true
	return nil
}

// Parse runs the full stage sequence exactly once, parsing the header first
// if it has not run yet. After a successful parse the fragment buffer is
// released and further calls return nil without re-running anything; the
// record never silently diverges from the text it was parsed from.
func (h *HandHistory) Parse() error {
	if h.parsed {
		return nil
	}
	if err := h.ParseHeader(); err != nil {
		return err
	}

	stages := []struct {
		stage Stage
		run   func(*HandHistory, *Sections) error
	}{
		{StageTable, h.room.ParseTable},
		{StagePlayers, h.room.ParsePlayers},
		{StageButton, h.room.ParseButton},
		{StageHero, h.room.ParseHero},
		{StagePreflop, h.room.ParsePreflop},
		{StageFlop, h.room.ParseFlop},
		{StageTurn, func(h *HandHistory, s *Sections) error { return h.room.ParseStreet(h, s, TurnStreet) }},
		{StageRiver, func(h *HandHistory, s *Sections) error { return h.room.ParseStreet(h, s, RiverStreet) }},
		{StageShowdown, h.room.ParseShowdown},
		{StagePot, h.room.ParsePot},
		{StageBoard, h.room.ParseBoard},
		{StageWinners, h.room.ParseWinners},
		{StageExtra, h.room.ParseExtra},
	}
	for _, s := range stages {
		if err := s.run(h, h.sections); err != nil {
			return wrapStage(s.stage, err)
		}
	}

	// Parsing is done; drop the fragment buffer to bound memory.
	h.sections = nil
	h.parsed = true
	return nil
}

// wrapStage attaches the stage to an error unless the adapter already did.
func wrapStage(stage Stage, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return stageError(stage, err)
}

// Board assembles the canonical board from flop, turn and river. A card is
// only included when all earlier street cards are present, so the board
// never has gaps. Nil means no flop was dealt.
func (h *HandHistory) Board() []card.Card {
	if h.Flop == nil {
		return nil
	}
	board := h.Flop.Cards()
	if h.Turn == nil {
		return board
	}
	board = append(board, *h.Turn)
	if h.River == nil {
		return board
	}
	return append(board, *h.River)
}

// InitSeats fills Players with n placeholder seats. Adapters call this
// before overwriting the seats the document actually names.
func (h *HandHistory) InitSeats(n int) {
	h.Players = make([]Player, n)
	for i := range h.Players {
		h.Players[i] = emptySeat(i + 1)
	}
}

// PlayerIndex finds the seat index of a player by name, or ErrHeroNotFound
// when the name matches no parsed seat.
func (h *HandHistory) PlayerIndex(name string) (int, error) {
	for i := range h.Players {
		if h.Players[i].Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrHeroNotFound, name)
}

// SetStreetStat records the per-street pot and player count.
func (h *HandHistory) SetStreetStat(id StreetID, stat *StreetStat) {
	h.streetStats[id] = stat
}

// StreetStatFor returns the per-street stat record, or nil when the street
// was never reached or the room reports no such line.
func (h *HandHistory) StreetStatFor(id StreetID) *StreetStat {
	return h.streetStats[id]
}
