// Package phh exports parsed hand histories in the PHH TOML interchange
// format, so hands from any supported room can feed PHH-speaking tools.
package phh

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand to w in PHH TOML format.
func Encode(w io.Writer, hand *Hand) error {
	if hand == nil {
		return fmt.Errorf("phh: hand is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *Hand) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Filename returns the conventional export filename for a hand.
func Filename(hand *Hand) string {
	return hand.HandID + ".phh"
}
