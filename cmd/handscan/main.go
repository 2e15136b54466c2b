package main

import (
	"github.com/alecthomas/kong"

	"github.com/pokertools/handhistory/cmd/handscan/shared"
	"github.com/pokertools/handhistory/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"handscan.hcl" help:"Path to HCL config file"`
	Debug   bool             `help:"Enable debug logging"`

	Parse  ParseCmd  `cmd:"" help:"Parse hand-history files and print them"`
	Export ExportCmd `cmd:"" help:"Export parsed hands as PHH TOML files"`
	Import ImportCmd `cmd:"" help:"Import hand-history files into the archive"`
	Watch  WatchCmd  `cmd:"" help:"Watch configured directories and archive new hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handscan"),
		kong.Description("Poker hand-history parser and archive"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(cfg.Validate())

	logger := shared.SetupLogger(cfg.Scan.LogLevel, cli.Debug)

	err = ctx.Run(logger, cfg)
	ctx.FatalIfErrorf(err)
}
