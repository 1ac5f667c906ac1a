package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/safeeat/backend/internal/domain"
	"github.com/safeeat/backend/internal/infrastructure/barcode"
	"github.com/safeeat/backend/internal/usecase"
)

func (cli *CLI) createInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run the scanner as a line-driven session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session := usecase.NewSession(ctx, cli.app.Preferences)
			return cli.runSession(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runSession reads one command per line until quit or end of input
func (cli *CLI) runSession(ctx context.Context, session *usecase.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	cli.showView(ctx, session, out)

	for {
		fmt.Fprintf(out, "[%s]> ", session.View())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if verb == "quit" || verb == "exit" {
			return nil
		}
		if err := cli.handleLine(ctx, session, verb, rest, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", userMessage(err))
		}
	}
}

func (cli *CLI) handleLine(ctx context.Context, session *usecase.Session, verb, rest string, out io.Writer) error {
	if verb == "back" || verb == "home" {
		if session.View() == usecase.ViewSettings {
			session.Reload(ctx)
		}
		session.ShowHome()
		cli.showView(ctx, session, out)
		return nil
	}

	switch session.View() {
	case usecase.ViewHome:
		switch verb {
		case "scan":
			if err := session.ShowScanner(); err != nil {
				return err
			}
		case "settings":
			session.ShowSettings()
		default:
			return fmt.Errorf("unknown command %q (scan, settings, quit)", verb)
		}

	case usecase.ViewScanner:
		var capturer domain.BarcodeCapturer = barcode.ManualCapturer{Input: verb}
		if verb == "camera" {
			capturer = cli.app.Camera
		}
		outcome, err := cli.app.Scanner.ScanWith(ctx, capturer)
		if err != nil {
			return err
		}
		if err := session.ShowResult(outcome); err != nil {
			return err
		}

	case usecase.ViewSettings:
		switch verb {
		case "add":
			if err := cli.app.Preferences.AddIngredient(ctx, rest); err != nil {
				return err
			}
		case "remove":
			if err := cli.app.Preferences.RemoveIngredient(ctx, usecase.NormalizeIngredient(rest)); err != nil {
				return err
			}
		case "suggest":
			renderList(out, cli.app.Preferences.SuggestedIngredients())
			return nil
		default:
			return fmt.Errorf("unknown command %q (add, remove, suggest, back)", verb)
		}

	case usecase.ViewResult:
		switch verb {
		case "again":
			if err := session.ScanAgain(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown command %q (again, back)", verb)
		}
	}

	cli.showView(ctx, session, out)
	return nil
}

func (cli *CLI) showView(ctx context.Context, session *usecase.Session, out io.Writer) {
	switch session.View() {
	case usecase.ViewHome:
		renderSummary(out, session.Summary())
	case usecase.ViewScanner:
		fmt.Fprintln(out, "Enter a barcode, or 'camera' to scan.")
	case usecase.ViewSettings:
		renderList(out, cli.app.Preferences.GetAvoidList(ctx))
	case usecase.ViewResult:
		if last := session.LastOutcome(); last != nil {
			renderOutcome(out, last)
		}
	}
}
