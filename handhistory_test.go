package handhistory

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertools/handhistory/card"
)

// recordingRoom counts stage invocations and can fail a chosen stage.
type recordingRoom struct {
	headerCalls int
	stages      []Stage
	failAt      Stage
	fail        bool
}

func (r *recordingRoom) SectionPattern() *regexp.Regexp { return regexp.MustCompile(`\n`) }

func (r *recordingRoom) run(stage Stage) error {
	if r.fail && stage == r.failAt {
		return errors.New("boom")
	}
	r.stages = append(r.stages, stage)
	return nil
}

func (r *recordingRoom) ParseHeader(h *HandHistory, sec *Sections) error {
	r.headerCalls++
	h.ID = "42"
	return r.run(StageHeader)
}
func (r *recordingRoom) ParseTable(h *HandHistory, sec *Sections) error   { return r.run(StageTable) }
func (r *recordingRoom) ParsePlayers(h *HandHistory, sec *Sections) error { return r.run(StagePlayers) }
func (r *recordingRoom) ParseButton(h *HandHistory, sec *Sections) error  { return r.run(StageButton) }
func (r *recordingRoom) ParseHero(h *HandHistory, sec *Sections) error    { return r.run(StageHero) }
func (r *recordingRoom) ParsePreflop(h *HandHistory, sec *Sections) error { return r.run(StagePreflop) }
func (r *recordingRoom) ParseFlop(h *HandHistory, sec *Sections) error    { return r.run(StageFlop) }
func (r *recordingRoom) ParseStreet(h *HandHistory, sec *Sections, id StreetID) error {
	if id == TurnStreet {
		return r.run(StageTurn)
	}
	return r.run(StageRiver)
}
func (r *recordingRoom) ParseShowdown(h *HandHistory, sec *Sections) error { return r.run(StageShowdown) }
func (r *recordingRoom) ParsePot(h *HandHistory, sec *Sections) error      { return r.run(StagePot) }
func (r *recordingRoom) ParseBoard(h *HandHistory, sec *Sections) error    { return r.run(StageBoard) }
func (r *recordingRoom) ParseWinners(h *HandHistory, sec *Sections) error  { return r.run(StageWinners) }
func (r *recordingRoom) ParseExtra(h *HandHistory, sec *Sections) error    { return r.run(StageExtra) }

func TestParseRunsStagesInOrder(t *testing.T) {
	room := &recordingRoom{}
	h := New(room, "header\nbody")
	require.NoError(t, h.Parse())

	want := []Stage{
		StageHeader, StageTable, StagePlayers, StageButton, StageHero,
		StagePreflop, StageFlop, StageTurn, StageRiver, StageShowdown,
		StagePot, StageBoard, StageWinners, StageExtra,
	}
	assert.Equal(t, want, room.stages)
	assert.True(t, h.Parsed())
	assert.True(t, h.HeaderParsed())
}

func TestParseHeaderIdempotent(t *testing.T) {
	room := &recordingRoom{}
	h := New(room, "header\nbody")

	require.NoError(t, h.ParseHeader())
	require.NoError(t, h.ParseHeader())
	assert.Equal(t, 1, room.headerCalls)

	// a full parse must not re-run header parsing
	require.NoError(t, h.Parse())
	assert.Equal(t, 1, room.headerCalls)
	assert.Equal(t, "42", h.ID)
}

func TestParseTwiceIsNoOp(t *testing.T) {
	room := &recordingRoom{}
	h := New(room, "header\nbody")
	require.NoError(t, h.Parse())
	ran := len(room.stages)

	require.NoError(t, h.Parse())
	assert.Equal(t, ran, len(room.stages), "second parse must not re-run stages")
}

func TestParseStageFailure(t *testing.T) {
	room := &recordingRoom{fail: true, failAt: StageHero}
	h := New(room, "header\nbody")

	err := h.Parse()
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StageHero, pe.Stage)
	assert.False(t, h.Parsed(), "a failed parse must not be marked complete")
}

func TestBoardAssembly(t *testing.T) {
	flop := NewStreet(cards("8h", "4h", "Tc"), nil)
	turn := card.MustParse("5d")
	river := card.MustParse("Qs")

	h := &HandHistory{}
	assert.Nil(t, h.Board(), "no flop means no board")

	h.Flop = flop
	assert.Equal(t, cards("8h", "4h", "Tc"), h.Board())

	h.Turn = &turn
	assert.Equal(t, cards("8h", "4h", "Tc", "5d"), h.Board())

	h.River = &river
	assert.Equal(t, cards("8h", "4h", "Tc", "5d", "Qs"), h.Board())

	// a river with no turn cannot extend the board
	h.Turn = nil
	assert.Equal(t, cards("8h", "4h", "Tc"), h.Board())
}

func TestInitSeatsAndPlayerIndex(t *testing.T) {
	h := &HandHistory{}
	h.InitSeats(9)
	require.Len(t, h.Players, 9)
	assert.Equal(t, "Empty Seat 1", h.Players[0].Name)
	assert.Equal(t, 9, h.Players[8].Seat)

	h.Players[3] = Player{Name: "hero", Seat: 4, Stack: 1500}
	i, err := h.PlayerIndex("hero")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = h.PlayerIndex("nobody")
	assert.ErrorIs(t, err, ErrHeroNotFound)
}

// Button and Hero alias the same Player storage, so enriching the hero's
// seat is visible through the button reference.
func TestButtonHeroAliasing(t *testing.T) {
	h := &HandHistory{}
	h.InitSeats(2)
	h.Players[0] = Player{Name: "hero", Seat: 1, Stack: 100}
	h.Button = &h.Players[0]

	combo, err := card.ParseCombo("AsKh")
	require.NoError(t, err)
	h.Players[0].Combo = &combo
	h.Hero = &h.Players[0]

	require.NotNil(t, h.Button.Combo)
	assert.Equal(t, "AsKh", h.Button.Combo.String())
}
