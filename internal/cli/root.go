// Package cli implements the registrar command-line interface: one command
// group per editor plus the dashboard and housekeeping commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/internal/logger"
	"github.com/mesh-intelligence/registrar/internal/registry"
	"github.com/mesh-intelligence/registrar/pkg/store"
	"github.com/mesh-intelligence/registrar/pkg/types"
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
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags    rootFlags
	settings settings
	log      zerolog.Logger
}

// NewRootCmd creates the top-level "registrar" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "registrar",
		Short: "Manage course types, courses, offerings, and student registrations",
		Long: "Registrar keeps a small school's catalog: course types and courses,\n" +
			"the offerings that pair them, and the students registered for each offering.",
		Version: Version,
		// Errors are printed once by Execute.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/registrar)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.registrar-db)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite, file, memory, postgres")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error, disabled")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newDashboardCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newCourseTypeCmd(a))
	root.AddCommand(newCourseCmd(a))
	root.AddCommand(newOfferingCmd(a))
	root.AddCommand(newRegistrationCmd(a))

	return root
}

// Execute runs the root command against os.Args and returns the process
// exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:])
}

func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	printError(root.ErrOrStderr(), err)
	return exitCode(err)
}

// setup loads .env and config.yaml, then configures logging. Stores are
// opened lazily by the commands that need them.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return systemError{fmt.Errorf("load .env: %w", err)}
	}

	s, err := loadSettings(a.flags)
	if err != nil {
		return systemError{err}
	}
	a.settings = s

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(s.LogLevel),
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})
	a.log = logger.WithComponent("cli")
	a.log.Debug().
		Str("config_dir", s.ConfigDir).
		Str("data_dir", s.DataDir).
		Str("backend", s.Backend).
		Msg("settings resolved")
	return nil
}

// withState attaches the configured backend, loads the registry, runs fn,
// and detaches again.
func (a *app) withState(fn func(*registry.State) error) (err error) {
	kv, err := store.Open(a.settings.storeConfig())
	if err != nil {
		return systemError{fmt.Errorf("open %s store: %w", a.settings.Backend, err)}
	}
	defer func() {
		if detachErr := kv.Detach(); detachErr != nil && err == nil {
			err = systemError{fmt.Errorf("close store: %w", detachErr)}
		}
	}()

	return fn(registry.Open(kv, registry.WithLogger(logger.WithComponent("registry"))))
}

// usageError marks bad flags or arguments.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// systemError marks failures of the environment rather than the input.
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

// storeError classifies an error returned by a registry store. Validation
// failures and lookups of unknown IDs are the user's; anything else came
// from the backend.
func storeError(err error) error {
	if err == nil || types.IsValidation(err) || errors.Is(err, types.ErrNotFound) {
		return err
	}
	return systemError{err}
}

func exitCode(err error) int {
	var sys systemError
	if errors.As(err, &sys) {
		return exitSysError
	}
	return exitUserError
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed)
	if types.IsValidation(err) {
		red.Fprintln(w, err.Error())
		return
	}
	red.Fprintln(w, "Error:", err.Error())
}
