package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"blockmeta/internal/config"
	blockerrors "blockmeta/internal/errors"
	"blockmeta/internal/pipeline"
	"blockmeta/internal/slogutil"
	"blockmeta/internal/version"
)

var (
	// rootFlag is the CLI --root flag value
	rootFlag string
	// configFlag is the CLI --config flag value
	configFlag string
	verbosity  int
	quiet      bool
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "blockmeta <file>",
	Short: "Inject or update the METADATA declaration of a block file",
	Long: `blockmeta analyzes a Python block file and writes a METADATA dictionary at its top.

Imports, third-party dependencies, template arguments and the block type are derived from
the source on every run. Hand-curated fields of an existing declaration are kept and the
version is bumped.

Examples:
  blockmeta python/base/net/scan__eve.py
  blockmeta --root blocks blocks/python/util/cwd.py
  blockmeta --dry-run python/x.py
  blockmeta show --format json python/x.py`,
	Args:          cobra.ArbitraryArgs,
	Version:       version.Short(),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runAnnotate,
}

func init() {
	rootCmd.SetVersionTemplate("blockmeta {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return blockerrors.NewBlockError(blockerrors.Usage, err.Error(), nil)
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlag, "root", "", "Directory block names are relative to (default: the path as given)")
	pf.StringVar(&configFlag, "config", "", "Config file (default: .blockmeta/config.{json,yaml,toml})")
	pf.CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the annotated file instead of writing it")
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	resetFlags(rootCmd)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}

	if blockerrors.HasCode(err, blockerrors.Usage) {
		target := rootCmd
		if sub, _, findErr := rootCmd.Find(args); findErr == nil {
			target = sub
		}
		_, _ = fmt.Fprint(stdout, target.UsageString())
		return 1
	}
	_, _ = fmt.Fprintf(stderr, "%s %v\n", colorFor(stderr, color.FgRed).Sprint("Error:"), err)
	return 1
}

// resetFlags restores every flag of cmd and its subcommands to its default, so
// repeated runs in one process start from the same state.
func resetFlags(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// colorFor returns a color that is only applied when w is the process terminal stream.
func colorFor(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if w != io.Writer(os.Stdout) && w != io.Writer(os.Stderr) {
		c.DisableColor()
	}
	return c
}

// exactlyOneFile is the positional argument check shared by the commands that take a file.
func exactlyOneFile(args []string) error {
	if len(args) != 1 {
		return blockerrors.NewBlockError(blockerrors.Usage,
			fmt.Sprintf("expected exactly one file, got %d", len(args)), nil)
	}
	return nil
}

// setup loads the config and builds the logger and annotator for one command.
func setup(stderr io.Writer) (*pipeline.Annotator, *slog.Logger, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, blockerrors.NewBlockError(blockerrors.FileAccess, "failed to get working directory", err)
	}
	cfg, err := config.LoadConfig(wd, configFlag)
	if err != nil {
		return nil, nil, blockerrors.NewBlockError(blockerrors.InvalidConfig, "failed to load config", err).
			WithPath(configFlag)
	}

	level := slogutil.ResolveLevel(verbosity, quiet, cfg.Logging.Level)
	logger := slogutil.NewLogger(stderr, level)

	annotator := pipeline.New(cfg, pipeline.Options{Root: rootFlag, Logger: logger})
	return annotator, logger, nil
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if err := exactlyOneFile(args); err != nil {
		return err
	}
	stdout := cmd.OutOrStdout()
	annotator, logger, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if dryRun {
		res, err := annotator.Prepare(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, res.Text)
		return err
	}

	res, err := annotator.Annotate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	logger.Info("Wrote block file", "file", res.Path, "name", res.Name)
	_, _ = fmt.Fprintf(stdout, "%s METADATA injected/updated in %s\n", colorFor(stdout, color.FgGreen).Sprint("[+]"), res.Path)
	return nil
}
