package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pokertools/handhistory/internal/config"
	"github.com/pokertools/handhistory/internal/phh"
)

// ExportCmd writes parsed hands out as one PHH TOML file per hand.
type ExportCmd struct {
	Files []string `arg:"" name:"file" help:"Hand-history files" type:"existingfile"`
	Room  string   `default:"fulltilt" enum:"fulltilt" help:"Room format"`
	Out   string   `short:"o" help:"Output directory (defaults to the configured export directory)"`
}

func (cmd ExportCmd) Run(logger *log.Logger, cfg *config.Config) error {
	room, err := roomFor(cmd.Room)
	if err != nil {
		return err
	}

	out := cmd.Out
	if out == "" && cfg.Export != nil {
		out = cfg.Export.Directory
	}
	if out == "" {
		out = "phh"
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	exported := 0
	for _, path := range cmd.Files {
		hands, err := readHandsFile(room, path)
		if err != nil {
			return err
		}
		for _, h := range hands {
			if err := h.Parse(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			hand, err := phh.FromHistory(h)
			if err != nil {
				return fmt.Errorf("%s: %w", h, err)
			}
			data, err := phh.EncodeToBytes(hand)
			if err != nil {
				return fmt.Errorf("%s: %w", h, err)
			}
			dest := filepath.Join(out, phh.Filename(hand))
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			logger.Debug("exported hand", "hand", h.ID, "file", dest)
			exported++
		}
	}
	logger.Info("exported hands", "hands", exported, "dir", out)
	return nil
}
