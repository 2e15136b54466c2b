package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pokertools/handhistory"
	"github.com/pokertools/handhistory/room/fulltilt"
)

// handSeparator splits a session file into individual hands. Rooms write one
// hand per paragraph with blank lines between them; a single hand never
// contains a blank line.
var handSeparator = regexp.MustCompile(`\n{2,}`)

func roomFor(name string) (handhistory.RoomParser, error) {
	switch name {
	case "fulltilt":
		return fulltilt.New(), nil
	}
	return nil, fmt.Errorf("unknown room %q", name)
}

// readHandsFile reads every hand in a session file. Chunks that fail to
// parse are returned as errors by the caller's Parse call, not here; this
// only carves the file into hand-sized pieces.
func readHandsFile(room handhistory.RoomParser, path string) ([]*handhistory.HandHistory, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var hands []*handhistory.HandHistory
	for _, chunk := range splitHands(string(data)) {
		hands = append(hands, handhistory.New(room, chunk))
	}
	if len(hands) == 0 {
		return nil, fmt.Errorf("no hands found in %s", path)
	}
	return hands, nil
}

// splitHands carves session-file text into one string per hand.
func splitHands(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}

	var chunks []string
	for _, chunk := range handSeparator.Split(text, -1) {
		if chunk = strings.TrimSpace(chunk); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
