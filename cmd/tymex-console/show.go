// ABOUTME: show subcommand printing a screen's seeded table to the terminal
// ABOUTME: Applies the same search and agent filters as the web tables

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/2389/tymex-console/internal/config"
	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/screens"
	"github.com/2389/tymex-console/internal/table"
)

func runShow(ctx context.Context, args []string, out io.Writer) error {
	var agent, search string
	flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.StringVar(&agent, "agent", "", "only show records granted to this agent")
	flags.StringVar(&search, "search", "", "case-insensitive text search")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: tymex-console show <screen> [--agent A] [--search S]")
	}

	nav, err := screens.ParseNavigation(flags.Arg(0))
	if err != nil {
		return err
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}

	scr, err := env.Mount(ctx, nav)
	if err != nil {
		return err
	}

	header := scr.Header()
	color.New(color.Bold).Fprintln(out, header.Title)
	color.New(color.FgHiBlack).Fprintln(out, header.Description)
	fmt.Fprintln(out)

	switch s := scr.(type) {
	case screens.RecordScreen:
		s.SetQuery(records.Query{Search: search, Category: agent})
		return table.Render(out, s.Table())
	case screens.DashboardScreen:
		for _, a := range s.Agents() {
			name := a.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(out, "%s %s  %s\n", statusDot(a.StatusColor()), name, a.Description)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", screens.ErrUnsupported, nav)
	}
}

func statusDot(c string) string {
	switch c {
	case "green":
		return color.GreenString("●")
	case "yellow":
		return color.YellowString("●")
	case "red":
		return color.RedString("●")
	default:
		return color.HiBlackString("●")
	}
}
