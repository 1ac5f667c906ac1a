package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/safeeat/backend/config"
	"github.com/safeeat/backend/internal/domain"
	"github.com/safeeat/backend/internal/infrastructure/barcode"
	"github.com/safeeat/backend/internal/usecase"
)

// Version is reported by --version
const Version = "1.0.0"

// CLI represents the command-line interface
type CLI struct {
	configFile string
	app        *App
	injected   bool
	in         io.Reader
	out        io.Writer
}

// New creates a CLI reading from in and writing to out
func New(in io.Reader, out io.Writer) *CLI {
	return &CLI{in: in, out: out}
}

// WithApp uses app instead of building one from configuration
func (cli *CLI) WithApp(app *App) *CLI {
	cli.app = app
	cli.injected = true
	return cli
}

// Execute sets up and runs the root command
func (cli *CLI) Execute(ctx context.Context, args []string) error {
	root := cli.rootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (cli *CLI) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "safeeat",
		Short:         "SafeEat scans food products for ingredients you want to avoid.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cli.app == nil || cli.injected {
				return nil
			}
			return cli.app.Close()
		},
	}
	rootCmd.SetIn(cli.in)
	rootCmd.SetOut(cli.out)
	rootCmd.SetErr(cli.out)

	rootCmd.PersistentFlags().StringVar(&cli.configFile, "config", "", "Config file (default: ./config.yaml if present)")

	rootCmd.AddCommand(cli.createScanCommand())
	rootCmd.AddCommand(cli.createAvoidCommand())
	rootCmd.AddCommand(cli.createInteractiveCommand())

	return rootCmd
}

func (cli *CLI) setup(ctx context.Context) error {
	if cli.injected {
		return nil
	}
	cfg, err := config.Load(cli.configFile)
	if err != nil {
		return err
	}
	if err := config.ConfigureLogging(cfg, os.Stderr); err != nil {
		return err
	}
	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	cli.app = app
	logrus.WithField("store", cfg.Store.Type).Debug("cli ready")
	return nil
}

// createScanCommand creates the 'scan' subcommand
func (cli *CLI) createScanCommand() *cobra.Command {
	var (
		useCamera bool
		imagePath string
	)

	scanCmd := &cobra.Command{
		Use:   "scan [BARCODE]",
		Short: "Look up a product and check it against your avoided ingredients.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var capturer domain.BarcodeCapturer
			switch {
			case imagePath != "":
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("reading image: %w", err)
				}
				capturer = barcode.ImageCapturer{Data: data}
			case useCamera:
				capturer = cli.app.Camera
			case len(args) == 1:
				capturer = barcode.ManualCapturer{Input: args[0]}
			default:
				return fmt.Errorf("give a barcode, --camera or --image")
			}

			outcome, err := cli.app.Scanner.ScanWith(ctx, capturer)
			if err != nil {
				return userMessage(err)
			}
			renderOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}

	scanCmd.Flags().BoolVar(&useCamera, "camera", false, "Use the camera scanner")
	scanCmd.Flags().StringVar(&imagePath, "image", "", "Decode the barcode from a PNG or JPEG photo")

	return scanCmd
}

// createAvoidCommand creates the 'avoid' subcommand and its children
func (cli *CLI) createAvoidCommand() *cobra.Command {
	avoidCmd := &cobra.Command{
		Use:   "avoid",
		Short: "Manage the ingredients you want to avoid.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show avoided ingredients.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderList(cmd.OutOrStdout(), cli.app.Preferences.GetAvoidList(cmd.Context()))
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <INGREDIENT>...",
		Short: "Avoid one or more ingredients.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for _, term := range args {
				if err := cli.app.Preferences.AddIngredient(ctx, term); err != nil {
					return userMessage(err)
				}
			}
			renderList(cmd.OutOrStdout(), cli.app.Preferences.GetAvoidList(ctx))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <INGREDIENT>",
		Short: "Stop avoiding an ingredient.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := cli.app.Preferences.RemoveIngredient(ctx, usecase.NormalizeIngredient(args[0])); err != nil {
				return userMessage(err)
			}
			renderList(cmd.OutOrStdout(), cli.app.Preferences.GetAvoidList(ctx))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every avoided ingredient.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.app.Preferences.SaveAvoidList(cmd.Context(), []string{}); err != nil {
				return userMessage(err)
			}
			renderList(cmd.OutOrStdout(), nil)
			return nil
		},
	}

	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show commonly avoided ingredients.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderList(cmd.OutOrStdout(), cli.app.Preferences.SuggestedIngredients())
			return nil
		},
	}

	avoidCmd.AddCommand(listCmd, addCmd, removeCmd, clearCmd, suggestCmd)
	return avoidCmd
}
