package fulltilt

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertools/handhistory"
	"github.com/pokertools/handhistory/card"
)

const tournamentHand = `Full Tilt Poker Game #33286946295: MiniFTOPS Main Event (255707037), Table 179 - NL Hold'em - 10/20 - [19:26:50 ET - 2013/09/22]
Seat 1: Popp1987 (13,587)
Seat 2: Luckytobgood (10,110)
Seat 3: FatalRevange (9,970)
Seat 4: IgaziFerfi (10,000)
Seat 5: egis25 (6,873)
Seat 6: gamblie (9,880)
Seat 7: idanuTz1 (10,180)
Seat 8: PtheProphet (9,930)
Seat 9: JohnyyR (9,840)
JohnyyR posts the small blind of 10
Popp1987 posts the big blind of 20
The button is in seat #8
*** HOLE CARDS ***
Dealt to IgaziFerfi [9d Ks]
PtheProphet has 15 seconds left to act
PtheProphet folds
JohnyyR raises to 40
Popp1987 folds
Luckytobgood calls 40
FatalRevange calls 40
IgaziFerfi folds
egis25 folds
gamblie folds
idanuTz1 folds
*** FLOP *** [8h 4h Tc] (Total Pot: 130, 3 Players)
JohnyyR bets 30
Luckytobgood calls 30
FatalRevange raises to 120
JohnyyR folds
Luckytobgood calls 90
*** TURN *** [8h 4h Tc] [5d] (Total Pot: 400, 2 Players)
Luckytobgood checks
FatalRevange bets 130
Luckytobgood folds
Uncalled bet of 130 returned to FatalRevange
FatalRevange mucks
FatalRevange wins the pot (400)
*** SUMMARY ***
Total pot 400 | Rake 0
Board: [8h 4h Tc 5d]
Seat 1: Popp1987 (big blind) folded before the Flop
Seat 2: Luckytobgood folded on the Turn
Seat 3: FatalRevange collected (400), mucked
Seat 4: IgaziFerfi folded before the Flop
Seat 5: egis25 folded before the Flop
Seat 6: gamblie folded before the Flop
Seat 7: idanuTz1 folded before the Flop
Seat 8: PtheProphet didn't bet (folded)
Seat 9: JohnyyR (small blind) folded on the Flop
`

const preflopOnlyHand = `Full Tilt Poker Game #33286946296: MiniFTOPS Main Event (255707037), Table 179 - NL Hold'em - 10/20 - [19:28:01 ET - 2013/09/22]
Seat 1: Popp1987 (13,587)
Seat 2: Luckytobgood (10,110)
Seat 3: FatalRevange (9,970)
Seat 4: IgaziFerfi (10,000)
Popp1987 posts the small blind of 10
Luckytobgood posts the big blind of 20
The button is in seat #4
*** HOLE CARDS ***
Dealt to IgaziFerfi [Ah Kh]
FatalRevange folds
IgaziFerfi raises to 60
Popp1987 folds
Luckytobgood folds
Uncalled bet of 40 returned to IgaziFerfi
IgaziFerfi mucks
IgaziFerfi wins the pot (50)
*** SUMMARY ***
Total pot 50 | Rake 0
Seat 1: Popp1987 (small blind) folded before the Flop
Seat 2: Luckytobgood (big blind) folded before the Flop
Seat 3: FatalRevange folded before the Flop
Seat 4: IgaziFerfi collected (50), mucked
`

const showdownHand = `Full Tilt Poker Game #33286946297: MiniFTOPS Main Event (255707037), Table 179 - NL Hold'em - 10/20 - [19:30:00 ET - 2013/09/22]
Seat 1: Popp1987 (13,587)
Seat 2: Luckytobgood (10,110)
Seat 3: FatalRevange (9,970)
Seat 4: IgaziFerfi (10,000)
Popp1987 posts the small blind of 10
Luckytobgood posts the big blind of 20
The button is in seat #4
*** HOLE CARDS ***
Dealt to IgaziFerfi [9d Ks]
FatalRevange folds
IgaziFerfi folds
Popp1987 calls 10
Luckytobgood checks
*** FLOP *** [2c 7d Qh] (Total Pot: 40, 2 Players)
Popp1987 checks
Luckytobgood checks
*** TURN *** [2c 7d Qh] [8s] (Total Pot: 40, 2 Players)
Popp1987 bets 20
Luckytobgood calls 20
*** RIVER *** [2c 7d Qh 8s] [Qs] (Total Pot: 80, 2 Players)
Popp1987 checks
Luckytobgood checks
*** SHOW DOWN ***
Popp1987 shows [Jc Jd] a pair of Jacks
Luckytobgood shows [Ah Qd] three of a kind, Queens
Luckytobgood wins the pot (80) with three of a kind, Queens
*** SUMMARY ***
Total pot 80 | Rake 0
Board: [2c 7d Qh 8s Qs]
Seat 1: Popp1987 (small blind) showed [Jc Jd] and lost with a pair of Jacks
Seat 2: Luckytobgood (big blind) showed [Ah Qd] and won (80) with three of a kind, Queens
Seat 3: FatalRevange folded before the Flop
Seat 4: IgaziFerfi (button) folded before the Flop
`

func parseHand(t *testing.T, text string) *handhistory.HandHistory {
	t.Helper()
	h := handhistory.New(New(), text)
	require.NoError(t, h.Parse())
	return h
}

func TestParseHeader(t *testing.T) {
	h := handhistory.New(New(), tournamentHand)
	require.NoError(t, h.ParseHeader())

	assert.Equal(t, "33286946295", h.ID)
	assert.Equal(t, "255707037", h.TournamentIdent)
	assert.Equal(t, "179", h.TableName)
	assert.True(t, h.SB.Equal(decimal.NewFromInt(10)), "sb=%s", h.SB)
	assert.True(t, h.BB.Equal(decimal.NewFromInt(20)), "bb=%s", h.BB)
	assert.Equal(t, handhistory.NoLimit, h.Limit)
	assert.Equal(t, handhistory.Holdem, h.Game)
	assert.Equal(t, handhistory.Tournament, h.GameType)
	assert.Equal(t, handhistory.Currency(""), h.Currency)
	assert.Nil(t, h.Buyin)
	assert.Equal(t, "MiniFTOPS Main Event", h.Extra["tournament_name"])

	// 19:26:50 US/Eastern on 2013-09-22 is EDT (UTC-4)
	want := time.Date(2013, time.September, 22, 23, 26, 50, 0, time.UTC)
	assert.True(t, h.Date.Equal(want), "date=%s", h.Date)

	assert.True(t, h.HeaderParsed())
	assert.False(t, h.Parsed())
}

func TestParseFullHand(t *testing.T) {
	h := parseHand(t, tournamentHand)

	require.Len(t, h.Players, 9)
	assert.Equal(t, 9, h.MaxPlayers)
	assert.Equal(t, handhistory.Player{Name: "Popp1987", Seat: 1, Stack: 13587}, h.Players[0])
	assert.Equal(t, "JohnyyR", h.Players[8].Name)
	assert.Equal(t, 9840, h.Players[8].Stack)

	require.NotNil(t, h.Button)
	assert.Equal(t, "PtheProphet", h.Button.Name)
	assert.Equal(t, 8, h.Button.Seat)

	require.NotNil(t, h.Hero)
	assert.Equal(t, "IgaziFerfi", h.Hero.Name)
	require.NotNil(t, h.Hero.Combo)
	assert.Equal(t, "Ks9d", h.Hero.Combo.String())

	// preflop actions are kept as raw lines
	require.Len(t, h.PreflopActions, 10)
	assert.Equal(t, "PtheProphet has 15 seconds left to act", h.PreflopActions[0])
	assert.Equal(t, "idanuTz1 folds", h.PreflopActions[9])

	require.NotNil(t, h.Flop)
	assert.Equal(t, []card.Card{
		card.MustParse("8h"), card.MustParse("4h"), card.MustParse("Tc"),
	}, h.Flop.Cards())
	assert.False(t, h.Flop.IsRainbow())
	assert.True(t, h.Flop.HasFlushDraw())
	assert.True(t, h.Flop.HasStraightDraw())
	assert.True(t, h.Flop.HasGutshot())
	assert.False(t, h.Flop.HasPair())
	assert.Equal(t, []string{"JohnyyR", "Luckytobgood", "FatalRevange"}, h.Flop.Players())

	flopActions := h.Flop.Actions()
	require.Len(t, flopActions, 5)
	assert.Equal(t, handhistory.Bet, flopActions[0].Action)
	require.NotNil(t, flopActions[0].Amount)
	assert.True(t, flopActions[0].Amount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, handhistory.Raise, flopActions[2].Action)

	require.NotNil(t, h.Turn)
	assert.Equal(t, card.MustParse("5d"), *h.Turn)
	assert.Nil(t, h.River)

	require.Len(t, h.TurnActions, 6)
	assert.Equal(t, handhistory.Check, h.TurnActions[0].Action)
	assert.Equal(t, handhistory.Return, h.TurnActions[3].Action)
	assert.Equal(t, handhistory.Muck, h.TurnActions[4].Action)
	assert.Equal(t, handhistory.Win, h.TurnActions[5].Action)
	require.NotNil(t, h.TurnActions[5].Amount)
	assert.True(t, h.TurnActions[5].Amount.Equal(decimal.NewFromInt(400)))

	assert.Equal(t, cardCodes("8h", "4h", "Tc", "5d"), h.Board())

	flopStat := h.StreetStatFor(handhistory.FlopStreet)
	require.NotNil(t, flopStat)
	assert.True(t, flopStat.Pot.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, 3, flopStat.NumPlayers)

	turnStat := h.StreetStatFor(handhistory.TurnStreet)
	require.NotNil(t, turnStat)
	assert.True(t, turnStat.Pot.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 2, turnStat.NumPlayers)
	assert.Nil(t, h.StreetStatFor(handhistory.RiverStreet))

	assert.False(t, h.ShowDown)
	require.NotNil(t, h.TotalPot)
	assert.True(t, h.TotalPot.Equal(decimal.NewFromInt(400)))
	require.NotNil(t, h.Rake)
	assert.True(t, h.Rake.IsZero())
	assert.Equal(t, []string{"FatalRevange"}, h.Winners)

	assert.True(t, h.Parsed())
}

// A hand that reaches showdown exercises the full board and the showed-and-
// won summary line shape.
func TestParseShowdownHand(t *testing.T) {
	h := parseHand(t, showdownHand)

	require.NotNil(t, h.Flop)
	assert.Equal(t, []card.Card{
		card.MustParse("2c"), card.MustParse("7d"), card.MustParse("Qh"),
	}, h.Flop.Cards())

	require.NotNil(t, h.Turn)
	assert.Equal(t, card.MustParse("8s"), *h.Turn)
	require.NotNil(t, h.River)
	assert.Equal(t, card.MustParse("Qs"), *h.River)
	assert.Equal(t, cardCodes("2c", "7d", "Qh", "8s", "Qs"), h.Board())

	require.Len(t, h.TurnActions, 2)
	assert.Equal(t, handhistory.Bet, h.TurnActions[0].Action)
	require.Len(t, h.RiverActions, 2)
	assert.Equal(t, handhistory.Check, h.RiverActions[0].Action)
	assert.Equal(t, handhistory.Check, h.RiverActions[1].Action)
	assert.Equal(t, []string{"Popp1987", "Luckytobgood"}, h.Flop.Players())

	riverStat := h.StreetStatFor(handhistory.RiverStreet)
	require.NotNil(t, riverStat)
	assert.True(t, riverStat.Pot.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 2, riverStat.NumPlayers)

	assert.True(t, h.ShowDown)
	require.NotNil(t, h.TotalPot)
	assert.True(t, h.TotalPot.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, []string{"Luckytobgood"}, h.Winners)
}

// A hand that ends preflop has explicitly absent streets: nil flop, nil
// turn and river, nil board.
func TestParsePreflopOnlyHand(t *testing.T) {
	h := parseHand(t, preflopOnlyHand)

	assert.Nil(t, h.Flop)
	assert.Nil(t, h.Turn)
	assert.Nil(t, h.River)
	assert.Nil(t, h.Board())
	assert.Nil(t, h.TurnActions)
	assert.Nil(t, h.RiverActions)
	assert.Nil(t, h.StreetStatFor(handhistory.FlopStreet))
	assert.Nil(t, h.StreetStatFor(handhistory.TurnStreet))

	require.NotNil(t, h.TotalPot)
	assert.True(t, h.TotalPot.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, []string{"IgaziFerfi"}, h.Winners)
}

// The button was captured before the hero's combo was known; after the
// hero stage both must be the same enriched player.
func TestButtonIsHero(t *testing.T) {
	h := parseHand(t, preflopOnlyHand)

	require.NotNil(t, h.Button)
	require.NotNil(t, h.Hero)
	assert.Same(t, h.Hero, h.Button)
	require.NotNil(t, h.Button.Combo)
	assert.Equal(t, "AhKh", h.Button.Combo.String())
}

func TestParseIsIdempotent(t *testing.T) {
	h := handhistory.New(New(), tournamentHand)
	require.NoError(t, h.ParseHeader())
	date := h.Date

	require.NoError(t, h.Parse())
	require.NoError(t, h.Parse())

	assert.Equal(t, "33286946295", h.ID)
	assert.True(t, h.Date.Equal(date))
	assert.Equal(t, []string{"FatalRevange"}, h.Winners)
}

func TestMalformedHeader(t *testing.T) {
	h := handhistory.New(New(), "PokerStars Hand #42: something else entirely\nSeat 1: x (100)")
	err := h.ParseHeader()
	require.Error(t, err)
	assert.ErrorIs(t, err, handhistory.ErrMalformedHeader)

	var pe *handhistory.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, handhistory.StageHeader, pe.Stage)
	assert.Equal(t, 0, pe.Fragment)
}

func TestHeroNotSeated(t *testing.T) {
	broken := strings.Replace(tournamentHand, "Dealt to IgaziFerfi", "Dealt to Stranger", 1)
	hh := handhistory.New(New(), broken)
	err := hh.Parse()
	require.Error(t, err)
	assert.ErrorIs(t, err, handhistory.ErrHeroNotFound)

	var pe *handhistory.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, handhistory.StageHero, pe.Stage)
	assert.False(t, hh.Parsed())
}

func cardCodes(codes ...string) []card.Card {
	out := make([]card.Card, len(codes))
	for i, c := range codes {
		out[i] = card.MustParse(c)
	}
	return out
}
