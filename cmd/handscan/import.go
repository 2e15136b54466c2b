package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pokertools/handhistory"
	"github.com/pokertools/handhistory/cmd/handscan/shared"
	"github.com/pokertools/handhistory/internal/config"
	"github.com/pokertools/handhistory/internal/store"
)

// ImportCmd archives hand-history files into the SQLite store.
type ImportCmd struct {
	Files    []string `arg:"" name:"file" help:"Hand-history files" type:"existingfile"`
	Room     string   `default:"fulltilt" enum:"fulltilt" help:"Room format"`
	Database string   `help:"Database path (defaults to the configured database)"`
}

func (cmd ImportCmd) Run(logger *log.Logger, cfg *config.Config) error {
	room, err := roomFor(cmd.Room)
	if err != nil {
		return err
	}

	db := cmd.Database
	if db == "" {
		db = cfg.Scan.Database
	}
	st, err := store.Open(db)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := shared.SetupSignalHandler(logger)
	for _, path := range cmd.Files {
		if err := importFile(ctx, logger, st, cmd.Room, room, path); err != nil {
			return err
		}
	}
	return nil
}

// importFile parses every hand in one file and upserts the batch. Hands
// that fail to parse are logged and skipped so one bad hand never blocks a
// session import.
func importFile(ctx context.Context, logger *log.Logger, st *store.Store,
	roomName string, room handhistory.RoomParser, path string) error {

	hands, err := readHandsFile(room, path)
	if err != nil {
		return err
	}

	parsed := make([]*handhistory.HandHistory, 0, len(hands))
	for _, h := range hands {
		if err := h.Parse(); err != nil {
			logger.Warn("skipping unparseable hand", "file", path, "error", err)
			continue
		}
		parsed = append(parsed, h)
	}

	res, err := st.SaveHands(ctx, roomName, parsed)
	if err != nil {
		return fmt.Errorf("archive %s: %w", path, err)
	}
	logger.Info("imported file", "file", path,
		"inserted", res.Inserted, "updated", res.Updated, "skipped", len(hands)-len(parsed))
	return nil
}
