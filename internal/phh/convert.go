package phh

import (
	"fmt"
	"strings"

	"github.com/pokertools/handhistory"
	"github.com/pokertools/handhistory/card"
)

// FromHistory converts a fully parsed hand into its PHH form. Seats the
// hand never named are carried as their "Empty Seat N" placeholders with a
// zero stack so positions stay aligned with the original table.
func FromHistory(h *handhistory.HandHistory) (*Hand, error) {
	variant, err := variantCode(h.Game, h.Limit)
	if err != nil {
		return nil, err
	}

	out := &Hand{
		Variant:   variant,
		Table:     h.TableName,
		SeatCount: h.MaxPlayers,
		MinBet:    h.BB.String(),
		HandID:    h.ID,
		Event:     h.Extra["tournament_name"],
		Currency:  string(h.Currency),
		Time:      h.Date.Format("15:04:05"),
		TimeZone:  "UTC",
		Day:       h.Date.Day(),
		Month:     int(h.Date.Month()),
		Year:      h.Date.Year(),
	}

	positions := make(map[string]int, len(h.Players))
	for i, p := range h.Players {
		out.Seats = append(out.Seats, p.Seat)
		out.Antes = append(out.Antes, 0)
		out.StartingStacks = append(out.StartingStacks, p.Stack)
		out.Players = append(out.Players, p.Name)
		positions[p.Name] = i + 1
	}
	out.BlindsOrStraddles = blindRow(h.SB.String(), h.BB.String(), len(h.Players))

	if h.Hero != nil && h.Hero.Combo != nil {
		out.Actions = append(out.Actions,
			fmt.Sprintf("d dh p%d %s", positions[h.Hero.Name], h.Hero.Combo))
	}
	for _, line := range h.PreflopActions {
		if a, ok := rawAction(line, positions); ok {
			out.Actions = append(out.Actions, a)
		}
	}

	if h.Flop != nil {
		out.Actions = append(out.Actions, "d db "+cardRun(h.Flop.Cards()))
		out.Actions = appendTyped(out.Actions, h.Flop.Actions(), positions)
	}
	if h.Turn != nil {
		out.Actions = append(out.Actions, "d db "+h.Turn.String())
		out.Actions = appendTyped(out.Actions, h.TurnActions, positions)
	}
	if h.River != nil {
		out.Actions = append(out.Actions, "d db "+h.River.String())
		out.Actions = appendTyped(out.Actions, h.RiverActions, positions)
	}
	return out, nil
}

// variantCode maps game and limit to the PHH variant identifier.
func variantCode(game handhistory.Game, limit handhistory.Limit) (string, error) {
	switch {
	case game == handhistory.Holdem && limit == handhistory.NoLimit:
		return "NT", nil
	case game == handhistory.Holdem && limit == handhistory.FixedLimit:
		return "FT", nil
	case game == handhistory.Omaha && limit == handhistory.PotLimit:
		return "PO", nil
	}
	return "", fmt.Errorf("phh: no variant code for %s %s", limit, game)
}

func blindRow(sb, bb string, seats int) []string {
	row := make([]string, seats)
	for i := range row {
		row[i] = "0"
	}
	if seats > 0 {
		row[0] = sb
	}
	if seats > 1 {
		row[1] = bb
	}
	return row
}

func cardRun(cards []card.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

func appendTyped(actions []string, src []handhistory.PlayerAction, positions map[string]int) []string {
	for _, a := range src {
		if s, ok := FormatAction(positions[a.Name], a); ok {
			actions = append(actions, s)
		}
	}
	return actions
}

// FormatAction converts one typed action into a PHH action token. It
// reports false for bookkeeping entries (wins, returned bets, timebank
// notices) that PHH has no vocabulary for.
func FormatAction(position int, a handhistory.PlayerAction) (string, bool) {
	player := fmt.Sprintf("p%d", position)
	switch a.Action {
	case handhistory.Fold:
		return player + " f", true
	case handhistory.Check, handhistory.Call:
		return player + " cc", true
	case handhistory.Bet, handhistory.Raise:
		if a.Amount == nil {
			return "", false
		}
		return fmt.Sprintf("%s cbr %s", player, a.Amount), true
	case handhistory.Muck:
		return player + " sm", true
	default:
		return "", false
	}
}

// rawAction translates one raw preflop line into a PHH action token. Lines
// PHH cannot express (blind posts, timebank notices) are dropped.
func rawAction(line string, positions map[string]int) (string, bool) {
	name, rest, ok := strings.Cut(line, " ")
	if !ok {
		return "", false
	}
	position, seated := positions[name]
	if !seated {
		return "", false
	}
	verb, amount, _ := strings.Cut(rest, " ")
	switch verb {
	case "folds":
		return FormatAction(position, handhistory.PlayerAction{Name: name, Action: handhistory.Fold})
	case "checks", "calls":
		return FormatAction(position, handhistory.PlayerAction{Name: name, Action: handhistory.Check})
	case "bets":
		return fmt.Sprintf("p%d cbr %s", position, strings.ReplaceAll(amount, ",", "")), amount != ""
	case "raises":
		// "raises to N"
		if n, ok := strings.CutPrefix(amount, "to "); ok && n != "" {
			return fmt.Sprintf("p%d cbr %s", position, strings.ReplaceAll(n, ",", "")), true
		}
		return "", false
	}
	return "", false
}
