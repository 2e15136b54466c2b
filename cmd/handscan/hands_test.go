package main

import (
	"os"
	"path/filepath"
	"testing"
)

const twoHands = "Full Tilt Poker Game #1: T (2), Table 1 - NL Hold'em - 10/20 - [19:26:50 ET - 2013/09/22]\nSeat 1: a (100)\n\n\nFull Tilt Poker Game #2: T (2), Table 1 - NL Hold'em - 10/20 - [19:27:50 ET - 2013/09/22]\nSeat 1: a (100)\n"

func TestSplitHands(t *testing.T) {
	chunks := splitHands(twoHands)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Fatalf("chunk %d is empty", i)
		}
		if chunk[len(chunk)-1] == '\n' {
			t.Fatalf("chunk %d keeps trailing newline", i)
		}
	}
}

func TestSplitHandsHandlesCRLF(t *testing.T) {
	chunks := splitHands("line one\r\nline two\r\n\r\nline three")
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0] != "line one\nline two" {
		t.Fatalf("chunk 0 = %q", chunks[0])
	}
}

func TestReadHandsFile(t *testing.T) {
	room, err := roomFor("fulltilt")
	if err != nil {
		t.Fatalf("roomFor: %v", err)
	}

	path := filepath.Join(t.TempDir(), "session.txt")
	if err := os.WriteFile(path, []byte(twoHands), 0o644); err != nil {
		t.Fatalf("write session: %v", err)
	}

	hands, err := readHandsFile(room, path)
	if err != nil {
		t.Fatalf("readHandsFile: %v", err)
	}
	if len(hands) != 2 {
		t.Fatalf("got %d hands, want 2", len(hands))
	}

	if _, err := readHandsFile(room, filepath.Join(t.TempDir(), "empty.txt")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestRoomForUnknown(t *testing.T) {
	if _, err := roomFor("pokerstars"); err == nil {
		t.Fatal("expected error for unknown room")
	}
}
