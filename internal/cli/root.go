// Package cli implements the stockroom command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir   string
	dataDir     string
	envFile     string
	jsonMode    bool
	verbose     bool
	journal     bool
	metricsFile string
}

// app is the per-invocation state shared by subcommands.
type app struct {
	flags     rootFlags
	configDir string
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "stockroom",
		Short: "Place inventory items on a 10x10x10 storage grid",
		Long: "Stockroom assigns items to (row, shelf, zone) slots of a fixed storage grid,\n" +
			"honoring fragile row limits, oversized spans and admission filters.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory for the journal (default: platform data dir)")
	pf.StringVar(&a.flags.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug messages to stderr")
	pf.BoolVar(&a.flags.journal, "journal", false, "record placements in the journal database")
	pf.StringVar(&a.flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newPlanCmd(a),
		newShellCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// setup loads the dotenv file, resolves the config directory and builds the
// logger. It runs before every subcommand.
func (a *app) setup(stderr io.Writer) error {
	if err := loadDotEnv(a.flags.envFile); err != nil {
		return userErrorf("load %s: %w", a.flags.envFile, err)
	}
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErrorf("resolve config dir: %w", err)
	}
	a.configDir = dir

	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// cliError tags an error with the process exit code it maps to.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return &cliError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysErrorf(format string, args ...any) error {
	return &cliError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps err to a process exit code. Untagged errors (cobra flag and
// argument errors) are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
