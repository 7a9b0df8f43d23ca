// Package cli implements the shelf command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool
}

// app carries the state shared by one invocation of the root command.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *slog.Logger
}

// NewRootCmd creates the top-level "shelf" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "shelf",
		Short: "Inspect and edit a typed preference store",
		Long: "Shelf reads and writes the named slots of a preference store kept in\n" +
			"memory, in a SQLite file or in a PostgreSQL table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir/shelf)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir/shelf)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: memory, sqlite or postgres (default from config.yaml)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVar(&a.flags.verbose, "verbose", false, "log debug diagnostics to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newGetCmd())
	root.AddCommand(a.newSetCmd())
	root.AddCommand(a.newDeleteCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newClearCmd())
	root.AddCommand(a.newDumpCmd())
	root.AddCommand(a.newLoadCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code. Errors are
// printed to stderr.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "shelf:", err)
	return exitCode(err)
}

// setup builds the logger and loads config.yaml before any subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.config = cfg
	a.logger.Debug("config loaded", "dir", configDir, "backend", cfg.GetString(cfgKeyBackend))
	return nil
}

// cliError attaches an exit code to an error.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }
func sysError(err error) error  { return &cliError{code: exitSysError, err: err} }

// userErrors are sentinels caused by bad input rather than a broken system.
var userErrors = []error{
	types.ErrInvalidKey,
	types.ErrUnsupportedValue,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrDSNEmpty,
	types.ErrTimeoutInvalid,
}

// classify wraps err as a user error when it stems from a known input
// sentinel and as a system error otherwise.
func classify(err error) error {
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps an error returned by a command to a process exit code.
// Cobra's own argument and flag errors carry no code and are user errors.
func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
