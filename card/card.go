// Package card models the 52-card deck used by hand history parsing:
// ranks, suits, cards and hole-card combos, with the total ordering and
// rank-distance arithmetic that board texture analysis relies on.
package card

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrInvalidCard reports a card code that is not exactly two characters.
	ErrInvalidCard = errors.New("invalid card format")
	// ErrUnknownRank reports a rank character outside 2-9, T, J, Q, K, A.
	ErrUnknownRank = errors.New("unknown rank")
	// ErrUnknownSuit reports a suit character outside c, d, h, s.
	ErrUnknownSuit = errors.New("unknown suit")
)

// Suit represents a card suit. Ordering is clubs < diamonds < hearts < spades.
type Suit int8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists all four suits in canonical order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the suit glyph
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Code returns the single-character suit code used in hand history text
func (s Suit) Code() byte {
	switch s {
	case Clubs:
		return 'c'
	case Diamonds:
		return 'd'
	case Hearts:
		return 'h'
	case Spades:
		return 's'
	default:
		return '?'
	}
}

// Name returns the lowercase suit name
func (s Suit) Name() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// ParseSuit parses a single suit code character
func ParseSuit(c byte) (Suit, error) {
	switch c {
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSuit, c)
	}
}

// Rank represents a card rank. Ordering follows the canonical sequence
// 2, 3, ..., K, A; the ace is always high here. Distance between ranks is
// measured over this sequence, not over face values.
type Rank int8

const (
	Deuce Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists all thirteen ranks in canonical order.
var Ranks = [13]Rank{
	Deuce, Three, Four, Five, Six, Seven, Eight,
	Nine, Ten, Jack, Queen, King, Ace,
}

// String returns the single-character rank symbol
func (r Rank) String() string {
	switch r {
	case Deuce:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// FaceValue returns the numeric face value of the rank. The ace reports 1;
// comparisons never use face values, only canonical ordering.
func (r Rank) FaceValue() int {
	if r == Ace {
		return 1
	}
	return int(r) + 2
}

// ParseRank parses a single rank character, case-insensitively
func ParseRank(c byte) (Rank, error) {
	switch c {
	case '2':
		return Deuce, nil
	case '3':
		return Three, nil
	case '4':
		return Four, nil
	case '5':
		return Five, nil
	case '6':
		return Six, nil
	case '7':
		return Seven, nil
	case '8':
		return Eight, nil
	case '9':
		return Nine, nil
	case 'T', 't':
		return Ten, nil
	case 'J', 'j':
		return Jack, nil
	case 'Q', 'q':
		return Queen, nil
	case 'K', 'k':
		return King, nil
	case 'A', 'a':
		return Ace, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRank, c)
	}
}

// RankDistance returns the distance between two ranks over the canonical
// sequence. It is symmetric and zero for equal ranks.
func RankDistance(a, b Rank) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// Card represents a playing card as a rank and suit pair. Cards are plain
// comparable values: they can key maps and compare with ==.
type Card struct {
	Rank Rank
	Suit Suit
}

// Parse parses a two-character card code such as "As" or "td".
// The rank character is case-insensitive; the canonical form uses an
// uppercase rank and lowercase suit.
func Parse(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q must be two characters", ErrInvalidCard, s)
	}
	rank, err := ParseRank(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w in %q", err, s)
	}
	suit, err := ParseSuit(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w in %q", err, s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustParse parses a card code and panics on error. For fixtures and tests.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("card: %v", err))
	}
	return c
}

// String returns the two-character card code (e.g. "As")
func (c Card) String() string {
	return c.Rank.String() + string(c.Suit.Code())
}

// Less reports whether c sorts before other. Rank is the primary key,
// ties break by suit.
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit < other.Suit
}

// IsFace returns true for J, Q and K
func (c Card) IsFace() bool {
	return c.Rank >= Jack && c.Rank <= King
}

// IsBroadway returns true for T, J, Q, K and A
func (c Card) IsBroadway() bool {
	return c.Rank >= Ten
}

// allCards is the process-wide deck cache, built once at init from the
// Rank x Suit product and never mutated afterwards.
var allCards [52]Card

func init() {
	i := 0
	for _, r := range Ranks {
		for _, s := range Suits {
			allCards[i] = Card{Rank: r, Suit: s}
			i++
		}
	}
}

// Deck returns all 52 cards in rank-then-suit order. The array is returned
// by value, so callers get their own copy of the shared cache.
func Deck() [52]Card {
	return allCards
}

// Random returns a uniformly random card. It draws rank and suit directly
// rather than indexing the deck cache.
func Random() Card {
	return Card{
		Rank: Ranks[rand.IntN(len(Ranks))],
		Suit: Suits[rand.IntN(len(Suits))],
	}
}
