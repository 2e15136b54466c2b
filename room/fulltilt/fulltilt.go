// Package fulltilt parses Full Tilt Poker tournament hand histories. It
// implements the generic pipeline's RoomParser extension points: the
// section-delimiter pattern, the header grammar, and every body stage.
package fulltilt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"

	"github.com/pokertools/handhistory"
	"github.com/pokertools/handhistory/card"
)

// Full Tilt timestamps are US Eastern local time.
const dateLayout = "15:04:05 ET - 2006/01/02"

var eastern = sync.OnceValues(func() (*time.Location, error) {
	return time.LoadLocation("US/Eastern")
})

var (
	sectionRe = regexp.MustCompile(` ?\*\*\* ?\n?|\n`)

	headerRe = regexp.MustCompile(
		`^Full Tilt Poker Game #(?P<ident>\d+): ` +
			`(?P<tournament_name>\$?(?P<buyin>\d*).*) ` +
			`\((?P<tournament_ident>\d+)\), ` +
			`Table (?P<table_name>\d+) - ` +
			`(?P<limit>NL|PL|FL|No Limit|Pot Limit|Fix Limit) ` +
			`(?P<game>.*?) - ` +
			`(?P<sb>\d+)/(?P<bb>\d+) - .*` +
			`\[(?P<date>.*)\]$`)

	seatRe     = regexp.MustCompile(`^Seat (\d+): (.+) \(([\d,]+)\)$`)
	buttonRe   = regexp.MustCompile(`^The button is in seat #(\d+)$`)
	heroRe     = regexp.MustCompile(`^Dealt to (.+) \[(..) (..)\]$`)
	streetRe   = regexp.MustCompile(`\[([^\]]*)\] \(Total Pot: ([\d,]+), (\d+) Players`)
	potRe      = regexp.MustCompile(`^Total pot ([\d,]+).*\| Rake ([\d,]+)$`)
	boardRe    = regexp.MustCompile(`\[([^\]]+)\]`)
	winnerRe   = regexp.MustCompile(`^Seat (\d+): (.+?) .*collected \(([\d,]+)\)`)
	showdownRe = regexp.MustCompile(`^Seat (\d+): (.+?) .*showed .* and won`)

	uncalledRe = regexp.MustCompile(`^Uncalled bet of ([\d,]+) returned to (.+)$`)
	raiseToRe  = regexp.MustCompile(`^(.+) raises to ([\d,]+)$`)
	winRe      = regexp.MustCompile(`^(.+) wins the pot \(([\d,]+)\)`)
)

// FTP hands never name a table size; nine-handed is the room maximum.
const maxSeats = 9

// Room is the Full Tilt Poker adapter. It is stateless and safe to share
// across any number of hands.
type Room struct{}

// New returns the Full Tilt adapter.
func New() *Room { return &Room{} }

// SectionPattern implements handhistory.RoomParser.
func (*Room) SectionPattern() *regexp.Regexp { return sectionRe }

// ParseHeader extracts identifier, stakes, game metadata and the UTC date
// from the first fragment.
func (*Room) ParseHeader(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	line, err := sec.Fragment(0)
	if err != nil {
		return err
	}
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return perr(handhistory.StageHeader, 0,
			fmt.Errorf("%w: %q", handhistory.ErrMalformedHeader, line))
	}
	g := groups(headerRe, m)

	h.ID = g["ident"]
	h.TournamentIdent = g["tournament_ident"]
	h.TableName = g["table_name"]

	if h.SB, err = parseAmount(g["sb"]); err != nil {
		return perr(handhistory.StageHeader, 0, err)
	}
	if h.BB, err = parseAmount(g["bb"]); err != nil {
		return perr(handhistory.StageHeader, 0, err)
	}
	if h.Limit, err = handhistory.ParseLimit(g["limit"]); err != nil {
		return perr(handhistory.StageHeader, 0, err)
	}
	if h.Game, err = handhistory.ParseGame(g["game"]); err != nil {
		return perr(handhistory.StageHeader, 0, err)
	}

	name := g["tournament_name"]
	h.Extra["tournament_name"] = name
	if strings.Contains(name, "Sit & Go") {
		h.GameType = handhistory.SitAndGo
	} else {
		h.GameType = handhistory.Tournament
	}
	if strings.Contains(name, "$") {
		h.Currency = handhistory.USD
	}
	if buyin := g["buyin"]; buyin != "" {
		d, err := parseAmount(buyin)
		if err != nil {
			return perr(handhistory.StageHeader, 0, err)
		}
		h.Buyin = &d
	}

	loc, err := eastern()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	date, err := time.ParseInLocation(dateLayout, g["date"], loc)
	if err != nil {
		return perr(handhistory.StageHeader, 0,
			fmt.Errorf("%w: date %q: %v", handhistory.ErrMalformedHeader, g["date"], err))
	}
	h.Date = date.UTC()
	return nil
}

// ParseTable is a no-op: the table name is part of the FTP header line.
func (*Room) ParseTable(*handhistory.HandHistory, *handhistory.Sections) error {
	return nil
}

// ParsePlayers reads the seat lines that follow the header. Seats the text
// never names keep their placeholder players.
func (*Room) ParsePlayers(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	h.InitSeats(maxSeats)
	last := 0
	for i := 1; ; i++ {
		line, err := sec.Fragment(i)
		if err != nil {
			return perr(handhistory.StagePlayers, i, err)
		}
		m := seatRe.FindStringSubmatch(line)
		if m == nil {
			break
		}
		seat, err := strconv.Atoi(m[1])
		if err != nil || seat < 1 || seat > maxSeats {
			return perr(handhistory.StagePlayers, i,
				fmt.Errorf("%w: seat %q", handhistory.ErrMalformedLine, line))
		}
		stack, err := parseChips(m[3])
		if err != nil {
			return perr(handhistory.StagePlayers, i,
				fmt.Errorf("%w: stack %q", handhistory.ErrMalformedLine, line))
		}
		h.Players[seat-1] = handhistory.Player{Name: m[2], Seat: seat, Stack: stack}
		last = seat
	}
	if last == 0 {
		return perr(handhistory.StagePlayers, 1,
			fmt.Errorf("%w: no seat lines after header", handhistory.ErrMalformedLine))
	}
	h.MaxPlayers = last
	h.Players = h.Players[:last]
	return nil
}

// ParseButton resolves the button seat from the line just before the first
// section boundary.
func (*Room) ParseButton(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	first, err := sec.FirstBoundary()
	if err != nil {
		return err
	}
	line, err := sec.Fragment(first - 1)
	if err != nil {
		return err
	}
	m := buttonRe.FindStringSubmatch(line)
	if m == nil {
		return perr(handhistory.StageButton, first-1,
			fmt.Errorf("%w: button %q", handhistory.ErrMalformedLine, line))
	}
	seat, _ := strconv.Atoi(m[1])
	if seat < 1 || seat > len(h.Players) {
		return perr(handhistory.StageButton, first-1,
			fmt.Errorf("%w: button seat %d outside table", handhistory.ErrMalformedLine, seat))
	}
	h.Button = &h.Players[seat-1]
	return nil
}

// ParseHero reads the hole-cards line and enriches the hero's seat with the
// parsed combo.
func (*Room) ParseHero(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	first, err := sec.FirstBoundary()
	if err != nil {
		return err
	}
	line, err := sec.Fragment(first + 2)
	if err != nil {
		return err
	}
	m := heroRe.FindStringSubmatch(line)
	if m == nil {
		return perr(handhistory.StageHero, first+2,
			fmt.Errorf("%w: hole cards %q", handhistory.ErrMalformedLine, line))
	}
	idx, err := h.PlayerIndex(m[1])
	if err != nil {
		return perr(handhistory.StageHero, first+2, err)
	}
	combo, err := card.ParseCombo(m[2] + m[3])
	if err != nil {
		return perr(handhistory.StageHero, first+2, err)
	}
	h.Players[idx].Combo = &combo
	h.Hero = &h.Players[idx]

	// The button may have been captured before the combo was known; both
	// references must share the hero's seat storage.
	if h.Button != nil && h.Button.Name == h.Hero.Name {
		h.Button = h.Hero
	}
	return nil
}

// ParsePreflop keeps the raw preflop action lines between the hole-cards
// line and the next boundary.
func (*Room) ParsePreflop(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	first, err := sec.FirstBoundary()
	if err != nil {
		return err
	}
	start := first + 3
	stop := sec.BoundaryAfter(start)
	if start > len(sec.Fragments) {
		return perr(handhistory.StagePreflop, start,
			fmt.Errorf("%w: preflop region", handhistory.ErrSectionNotFound))
	}
	h.PreflopActions = append([]string(nil), sec.Fragments[start:stop]...)
	return nil
}

// ParseFlop builds the flop street from the FLOP section: three cards and
// the street-line pot from the marker line, then the action log.
func (*Room) ParseFlop(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	idx, err := sec.Index("FLOP")
	if err != nil {
		// Hand ended preflop; that is not an error.
		h.Flop = nil
		return nil
	}
	stat, boardCodes, err := parseStreetLine(handhistory.StageFlop, sec, idx+1)
	if err != nil {
		return err
	}
	flopCards := make([]card.Card, 0, 3)
	for _, code := range strings.Fields(boardCodes) {
		c, err := card.Parse(code)
		if err != nil {
			return perr(handhistory.StageFlop, idx+1, err)
		}
		flopCards = append(flopCards, c)
	}
	if len(flopCards) != 3 {
		return perr(handhistory.StageFlop, idx+1,
			fmt.Errorf("%w: flop dealt %d cards", handhistory.ErrMalformedLine, len(flopCards)))
	}

	stop := sec.BoundaryAfter(idx + 1)
	actions, err := parseActionLines(sec.Fragments[idx+2 : stop])
	if err != nil {
		return perr(handhistory.StageFlop, idx+2, err)
	}

	h.Flop = handhistory.NewStreet(flopCards, actions)
	h.Flop.Pot = stat.Pot
	h.SetStreetStat(handhistory.FlopStreet, stat)
	return nil
}

// ParseStreet handles turn and river: street-line stats plus the action
// log. The dealt card itself comes from the summary board line.
func (*Room) ParseStreet(h *handhistory.HandHistory, sec *handhistory.Sections, id handhistory.StreetID) error {
	stage := handhistory.StageTurn
	if id == handhistory.RiverStreet {
		stage = handhistory.StageRiver
	}
	idx, err := sec.Index(id.Marker())
	if err != nil {
		// Street never reached.
		setStreetActions(h, id, nil)
		h.SetStreetStat(id, nil)
		return nil
	}
	stat, _, err := parseStreetLine(stage, sec, idx+1)
	if err != nil {
		return err
	}
	h.SetStreetStat(id, stat)

	stop := sec.BoundaryAfter(idx + 1)
	actions, err := parseActionLines(sec.Fragments[idx+2 : stop])
	if err != nil {
		return perr(stage, idx+2, err)
	}
	setStreetActions(h, id, actions)
	return nil
}

// ParseShowdown records whether the hand reached a showdown.
func (*Room) ParseShowdown(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	h.ShowDown = sec.Contains("SHOW DOWN")
	return nil
}

// ParsePot reads the total pot and rake from the summary region.
func (*Room) ParsePot(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	last, err := sec.LastBoundary()
	if err != nil {
		return err
	}
	line, err := sec.Fragment(last + 2)
	if err != nil {
		return err
	}
	m := potRe.FindStringSubmatch(line)
	if m == nil {
		return perr(handhistory.StagePot, last+2,
			fmt.Errorf("%w: pot %q", handhistory.ErrMalformedLine, line))
	}
	pot, err := parseAmount(m[1])
	if err != nil {
		return perr(handhistory.StagePot, last+2, err)
	}
	rake, err := parseAmount(m[2])
	if err != nil {
		return perr(handhistory.StagePot, last+2, err)
	}
	h.TotalPot = &pot
	h.Rake = &rake
	return nil
}

// ParseBoard reads turn and river cards from the summary board line when
// present. The flop stage already owns the first three cards.
func (*Room) ParseBoard(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	last, err := sec.LastBoundary()
	if err != nil {
		return err
	}
	line, err := sec.Fragment(last + 3)
	if err != nil || !strings.HasPrefix(line, "Board") {
		return nil
	}
	m := boardRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	codes := strings.Fields(m[1])
	if len(codes) > 3 {
		c, err := card.Parse(codes[3])
		if err != nil {
			return perr(handhistory.StageBoard, last+3, err)
		}
		h.Turn = &c
	}
	if len(codes) > 4 {
		c, err := card.Parse(codes[4])
		if err != nil {
			return perr(handhistory.StageBoard, last+3, err)
		}
		h.River = &c
	}
	return nil
}

// ParseWinners extracts the hand's collectors from the summary seat lines.
// Showdown and no-showdown summaries use different line shapes, so each has
// its own strategy.
func (*Room) ParseWinners(h *handhistory.HandHistory, sec *handhistory.Sections) error {
	last, err := sec.LastBoundary()
	if err != nil {
		return err
	}
	lines := sec.Fragments[min(last+4, len(sec.Fragments)):]
	if h.ShowDown {
		h.Winners = showdownWinners(lines)
	} else {
		h.Winners = collectedWinners(lines)
	}
	return nil
}

// ParseExtra has nothing left to do for FTP: per-street pots and player
// counts are recorded by the street stages, the tournament name by the
// header.
func (*Room) ParseExtra(*handhistory.HandHistory, *handhistory.Sections) error {
	return nil
}

// collectedWinners matches "collected (N)" summary lines, used when the
// hand ended without a showdown.
func collectedWinners(lines []string) []string {
	var winners []string
	for _, line := range lines {
		if !strings.Contains(line, "collected") {
			continue
		}
		if m := winnerRe.FindStringSubmatch(line); m != nil {
			winners = appendUnique(winners, m[2])
		}
	}
	return winners
}

// showdownWinners matches "showed ... and won" summary lines.
func showdownWinners(lines []string) []string {
	var winners []string
	for _, line := range lines {
		if !strings.Contains(line, "won") {
			continue
		}
		if m := showdownRe.FindStringSubmatch(line); m != nil {
			winners = appendUnique(winners, m[2])
		}
	}
	return winners
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

// parseStreetLine reads the "[cards] (Total Pot: N, M Players" line at the
// given fragment index, returning the street stats and the bracket contents.
func parseStreetLine(stage handhistory.Stage, sec *handhistory.Sections, idx int) (*handhistory.StreetStat, string, error) {
	line, err := sec.Fragment(idx)
	if err != nil {
		return nil, "", err
	}
	m := streetRe.FindStringSubmatch(line)
	if m == nil {
		return nil, "", perr(stage, idx,
			fmt.Errorf("%w: street line %q", handhistory.ErrMalformedLine, line))
	}
	pot, err := parseAmount(m[2])
	if err != nil {
		return nil, "", err
	}
	numPlayers, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, "", fmt.Errorf("%w: player count in %q", handhistory.ErrMalformedLine, line)
	}
	return &handhistory.StreetStat{Pot: &pot, NumPlayers: numPlayers}, m[1], nil
}

// parseActionLines converts a street's raw action lines into typed actions,
// in document order.
func parseActionLines(lines []string) ([]handhistory.PlayerAction, error) {
	var actions []handhistory.PlayerAction
	for _, line := range lines {
		action, err := parseActionLine(line)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func parseActionLine(line string) (handhistory.PlayerAction, error) {
	switch {
	case strings.HasPrefix(line, "Uncalled bet"):
		m := uncalledRe.FindStringSubmatch(line)
		if m == nil {
			return handhistory.PlayerAction{}, fmt.Errorf("%w: %q", handhistory.ErrMalformedLine, line)
		}
		amount, err := parseAmount(m[1])
		if err != nil {
			return handhistory.PlayerAction{}, err
		}
		return handhistory.PlayerAction{Name: m[2], Action: handhistory.Return, Amount: &amount}, nil

	case strings.Contains(line, "raises to"):
		m := raiseToRe.FindStringSubmatch(line)
		if m == nil {
			return handhistory.PlayerAction{}, fmt.Errorf("%w: %q", handhistory.ErrMalformedLine, line)
		}
		amount, err := parseAmount(m[2])
		if err != nil {
			return handhistory.PlayerAction{}, err
		}
		return handhistory.PlayerAction{Name: m[1], Action: handhistory.Raise, Amount: &amount}, nil

	case strings.Contains(line, "wins the pot"):
		m := winRe.FindStringSubmatch(line)
		if m == nil {
			return handhistory.PlayerAction{}, fmt.Errorf("%w: %q", handhistory.ErrMalformedLine, line)
		}
		amount, err := parseAmount(m[2])
		if err != nil {
			return handhistory.PlayerAction{}, err
		}
		return handhistory.PlayerAction{Name: m[1], Action: handhistory.Win, Amount: &amount}, nil

	case strings.Contains(line, "mucks"):
		name, _, _ := strings.Cut(line, " ")
		return handhistory.PlayerAction{Name: name, Action: handhistory.Muck}, nil

	case strings.Contains(line, "seconds left to act"):
		name, _, _ := strings.Cut(line, " ")
		return handhistory.PlayerAction{Name: name, Action: handhistory.Think}, nil

	case strings.Contains(line, " "):
		return parsePlainAction(line)

	default:
		return handhistory.PlayerAction{}, fmt.Errorf("%w: %q", handhistory.ErrMalformedLine, line)
	}
}

// parsePlainAction handles "name verb [amount]" lines: bets, calls, checks,
// folds, shows.
func parsePlainAction(line string) (handhistory.PlayerAction, error) {
	name, rest, _ := strings.Cut(line, " ")
	verb, amountStr, hasAmount := strings.Cut(rest, " ")
	action, err := handhistory.ParseAction(verb)
	if err != nil {
		return handhistory.PlayerAction{}, fmt.Errorf("%q: %w", line, err)
	}
	pa := handhistory.PlayerAction{Name: name, Action: action}
	if hasAmount {
		amount, err := parseAmount(amountStr)
		if err != nil {
			return handhistory.PlayerAction{}, fmt.Errorf("%w: amount in %q", handhistory.ErrMalformedLine, line)
		}
		pa.Amount = &amount
	}
	return pa, nil
}

func setStreetActions(h *handhistory.HandHistory, id handhistory.StreetID, actions []handhistory.PlayerAction) {
	switch id {
	case handhistory.TurnStreet:
		h.TurnActions = actions
	case handhistory.RiverStreet:
		h.RiverActions = actions
	}
}

// parseAmount parses a money amount, tolerating thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q", handhistory.ErrMalformedLine, s)
	}
	return d, nil
}

// parseChips parses a chip count with thousands separators.
func parseChips(s string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(s, ",", ""))
}

// groups maps named regexp groups to their submatches.
func groups(re *regexp.Regexp, m []string) map[string]string {
	out := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(m) {
			out[name] = m[i]
		}
	}
	return out
}

func perr(stage handhistory.Stage, fragment int, err error) *handhistory.ParseError {
	return &handhistory.ParseError{Stage: stage, Fragment: fragment, Err: err}
}
