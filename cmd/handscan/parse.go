package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/pokertools/handhistory"
)

// ParseCmd parses hand-history files and prints each hand.
type ParseCmd struct {
	Files      []string `arg:"" name:"file" help:"Hand-history files" type:"existingfile"`
	Room       string   `default:"fulltilt" enum:"fulltilt" help:"Room format"`
	HeaderOnly bool     `help:"Parse and print headers only"`
	Plain      bool     `help:"Disable styled output"`
}

func (cmd ParseCmd) Run(logger *log.Logger) error {
	room, err := roomFor(cmd.Room)
	if err != nil {
		return err
	}

	// Parse files concurrently, print in argument order.
	results := make([][]*handhistory.HandHistory, len(cmd.Files))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range cmd.Files {
		g.Go(func() error {
			hands, err := readHandsFile(room, path)
			if err != nil {
				return err
			}
			for _, h := range hands {
				if cmd.HeaderOnly {
					err = h.ParseHeader()
				} else {
					err = h.Parse()
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			results[i] = hands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r := newRenderer(cmd.Plain)
	total := 0
	for _, hands := range results {
		for _, h := range hands {
			if cmd.HeaderOnly {
				r.renderHeader(h)
			} else {
				r.renderHand(h)
			}
			total++
		}
	}
	logger.Info("parsed hands", "files", len(cmd.Files), "hands", total)
	return nil
}

// renderer pretty-prints hands to stdout.
type renderer struct {
	title lipgloss.Style
	label lipgloss.Style
	card  lipgloss.Style
	win   lipgloss.Style
}

func newRenderer(plain bool) *renderer {
	if plain {
		empty := lipgloss.NewStyle()
		return &renderer{title: empty, label: empty, card: empty, win: empty}
	}
	return &renderer{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		card:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("87")),
		win:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

func (r *renderer) renderHeader(h *handhistory.HandHistory) {
	fmt.Fprintf(os.Stdout, "%s  %s %s %s/%s  %s\n",
		r.title.Render("#"+h.ID),
		h.Limit, h.Game, h.SB, h.BB,
		r.label.Render(h.Date.Format("2006-01-02 15:04:05 MST")))
}

func (r *renderer) renderHand(h *handhistory.HandHistory) {
	r.renderHeader(h)

	var seats []string
	for _, p := range h.Players {
		seats = append(seats, fmt.Sprintf("%d:%s(%d)", p.Seat, p.Name, p.Stack))
	}
	fmt.Fprintf(os.Stdout, "  %s %s\n", r.label.Render("seats"), strings.Join(seats, " "))

	if h.Hero != nil && h.Hero.Combo != nil {
		fmt.Fprintf(os.Stdout, "  %s %s %s\n",
			r.label.Render("hero"), h.Hero.Name, r.card.Render(h.Hero.Combo.String()))
	}
	if h.Button != nil {
		fmt.Fprintf(os.Stdout, "  %s %s\n", r.label.Render("button"), h.Button.Name)
	}

	if board := h.Board(); board != nil {
		var codes []string
		for _, c := range board {
			codes = append(codes, c.String())
		}
		fmt.Fprintf(os.Stdout, "  %s %s\n",
			r.label.Render("board"), r.card.Render(strings.Join(codes, " ")))
	}

	if h.TotalPot != nil {
		fmt.Fprintf(os.Stdout, "  %s %s\n", r.label.Render("pot"), h.TotalPot)
	}
	if len(h.Winners) > 0 {
		fmt.Fprintf(os.Stdout, "  %s %s\n",
			r.label.Render("winners"), r.win.Render(strings.Join(h.Winners, ", ")))
	}
	fmt.Fprintln(os.Stdout)
}
