package handhistory

import (
	"github.com/shopspring/decimal"

	"github.com/pokertools/handhistory/card"
)

// Street holds the cards dealt by a multi-card betting round (the flop)
// together with the actions observed on it. Cards and actions are fixed at
// construction, so every texture property is a pure function of the street
// and can be recomputed freely; with at most C(5,2) pairs there is nothing
// worth caching.
//
// Texture properties quantify over all unordered pairs of the street's
// cards. Single-card streets (turn, river) are not modeled here.
type Street struct {
	cards   []card.Card
	actions []PlayerAction

	// Pot is the pot at the start of the street when the room reports it.
	Pot *decimal.Decimal
}

// NewStreet builds a street from its dealt cards and action log. The slices
// are copied; the street never observes later mutation of the arguments.
func NewStreet(cards []card.Card, actions []PlayerAction) *Street {
	s := &Street{
		cards:   make([]card.Card, len(cards)),
		actions: make([]PlayerAction, len(actions)),
	}
	copy(s.cards, cards)
	copy(s.actions, actions)
	return s
}

// Cards returns the cards dealt on this street in document order.
func (s *Street) Cards() []card.Card {
	out := make([]card.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Actions returns the street's actions in document order.
func (s *Street) Actions() []PlayerAction {
	out := make([]PlayerAction, len(s.actions))
	copy(out, s.actions)
	return out
}

// all reports whether fn returns true for every unordered pair of street
// cards. Vacuously true with fewer than two cards.
func (s *Street) all(fn func(a, b card.Card) bool) bool {
	for i := 0; i < len(s.cards); i++ {
		for j := i + 1; j < len(s.cards); j++ {
			if !fn(s.cards[i], s.cards[j]) {
				return false
			}
		}
	}
	return true
}

// any reports whether fn returns true for at least one unordered pair.
func (s *Street) any(fn func(a, b card.Card) bool) bool {
	return !s.all(func(a, b card.Card) bool { return !fn(a, b) })
}

// IsRainbow reports whether no two cards share a suit.
func (s *Street) IsRainbow() bool {
	return s.all(func(a, b card.Card) bool { return a.Suit != b.Suit })
}

// IsMonotone reports whether all cards share a single suit.
func (s *Street) IsMonotone() bool {
	return s.all(func(a, b card.Card) bool { return a.Suit == b.Suit })
}

// IsTriplet reports whether all cards share a single rank.
func (s *Street) IsTriplet() bool {
	return s.all(func(a, b card.Card) bool { return a.Rank == b.Rank })
}

// HasPair reports whether at least two cards share a rank.
func (s *Street) HasPair() bool {
	return s.any(func(a, b card.Card) bool { return a.Rank == b.Rank })
}

// HasFlushDraw reports whether at least two cards share a suit.
func (s *Street) HasFlushDraw() bool {
	return s.any(func(a, b card.Card) bool { return a.Suit == b.Suit })
}

// HasStraightDraw reports whether any pair of cards sits within straight
// range: canonical rank distance 1 to 3.
func (s *Street) HasStraightDraw() bool {
	return s.any(func(a, b card.Card) bool {
		d := card.RankDistance(a.Rank, b.Rank)
		return d >= 1 && d <= 3
	})
}

// HasGutshot reports whether any pair of cards sits within gutshot range:
// canonical rank distance 1 to 4.
func (s *Street) HasGutshot() bool {
	return s.any(func(a, b card.Card) bool {
		d := card.RankDistance(a.Rank, b.Rank)
		return d >= 1 && d <= 4
	})
}

// Players returns the distinct acting player names in first-appearance
// order. It returns nil when the street has no actions at all, which
// distinguishes "street never acted on" from an acted street.
func (s *Street) Players() []string {
	if len(s.actions) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(s.actions))
	names := make([]string, 0, len(s.actions))
	for _, a := range s.actions {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, a.Name)
		}
	}
	return names
}
