package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/registrar/internal/paths"
	"github.com/mesh-intelligence/registrar/internal/registry"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	DSN      string `yaml:"dsn,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize registrar storage",
		Long: "Create the configuration directory and config.yaml if missing, then\n" +
			"initialize the storage backend and its four collections.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	s := a.settings

	if err := os.MkdirAll(s.ConfigDir, 0o755); err != nil {
		return systemError{fmt.Errorf("create config directory: %w", err)}
	}
	written, err := writeConfigIfMissing(paths.ConfigFile(s.ConfigDir), configFile{
		Backend:  s.Backend,
		DataDir:  s.DataDir,
		DSN:      s.DSN,
		LogLevel: s.LogLevel,
	})
	if err != nil {
		return systemError{fmt.Errorf("write config: %w", err)}
	}
	if written {
		a.log.Info().Str("path", paths.ConfigFile(s.ConfigDir)).Msg("wrote default config")
	}

	err = a.withState(func(state *registry.State) error {
		return state.Persist()
	})
	if err != nil {
		return storeError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Registrar initialized successfully")
	return nil
}

// writeConfigIfMissing creates path with cfg unless it already exists.
// Reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
