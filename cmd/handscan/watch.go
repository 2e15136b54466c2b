package main

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pokertools/handhistory/cmd/handscan/shared"
	"github.com/pokertools/handhistory/internal/config"
	"github.com/pokertools/handhistory/internal/store"
	"github.com/pokertools/handhistory/internal/watcher"
)

// WatchCmd watches the configured directories and archives hands as the
// room writes them.
type WatchCmd struct {
	Database string `help:"Database path (defaults to the configured database)"`
}

func (cmd WatchCmd) Run(logger *log.Logger, cfg *config.Config) error {
	if len(cfg.Watches) == 0 {
		return errors.New("no watch blocks configured")
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

	var watchers []*watcher.Watcher
	defer func() {
		for _, w := range watchers {
			w.Stop()
		}
	}()

	for _, wc := range cfg.Watches {
		room, err := roomFor(wc.Room)
		if err != nil {
			return err
		}
		roomName := wc.Room
		w, err := watcher.New(watcher.Config{
			Dir:      wc.Path,
			Glob:     wc.Glob,
			Debounce: time.Duration(wc.DebounceMS) * time.Millisecond,
			Logger:   logger.With("watch", wc.Name),
			OnFile: func(path string) {
				if err := importFile(ctx, logger, st, roomName, room, path); err != nil {
					logger.Error("import failed", "file", path, "error", err)
				}
			},
		})
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		watchers = append(watchers, w)
	}

	<-ctx.Done()
	return nil
}
