package card

import "fmt"

// Combo is a player's two hole cards. The pair is unordered: combos are
// normalized so the higher card comes first, which makes equal combos
// compare equal with == regardless of input order.
type Combo struct {
	First  Card
	Second Card
}

// NewCombo builds a combo from two distinct cards
func NewCombo(a, b Card) (Combo, error) {
	if a == b {
		return Combo{}, fmt.Errorf("%w: combo cards must differ, got %s twice", ErrInvalidCard, a)
	}
	if a.Less(b) {
		a, b = b, a
	}
	return Combo{First: a, Second: b}, nil
}

// ParseCombo parses a four-character combo code such as "AsKh"
func ParseCombo(s string) (Combo, error) {
	if len(s) != 4 {
		return Combo{}, fmt.Errorf("%w: combo %q must be four characters", ErrInvalidCard, s)
	}
	first, err := Parse(s[:2])
	if err != nil {
		return Combo{}, err
	}
	second, err := Parse(s[2:])
	if err != nil {
		return Combo{}, err
	}
	return NewCombo(first, second)
}

// String returns the four-character combo code, higher card first
func (c Combo) String() string {
	return c.First.String() + c.Second.String()
}

// IsPair returns true when both cards share a rank
func (c Combo) IsPair() bool {
	return c.First.Rank == c.Second.Rank
}

// IsSuited returns true when both cards share a suit
func (c Combo) IsSuited() bool {
	return c.First.Suit == c.Second.Suit
}
