package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/registrar/internal/paths"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

const (
	// Config keys in config.yaml.
	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyDSN      = "dsn"
	cfgKeyLogLevel = "log_level"

	defaultBackend  = types.BackendSQLite
	defaultLogLevel = "warn"
)

// envBindings maps config keys to the environment variables that override
// config.yaml. data_dir is absent: its precedence is handled by paths.
var envBindings = map[string]string{
	cfgKeyBackend:  "REGISTRAR_BACKEND",
	cfgKeyDSN:      "REGISTRAR_DSN",
	cfgKeyLogLevel: "REGISTRAR_LOG_LEVEL",
}

// settings is the resolved configuration for one invocation.
type settings struct {
	ConfigDir string
	DataDir   string
	Backend   string
	DSN       string
	LogLevel  string
}

func (s settings) storeConfig() types.Config {
	return types.Config{Backend: s.Backend, DataDir: s.DataDir, DSN: s.DSN}
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.SetConfigFile(paths.ConfigFile(configDir))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadSettings resolves directories and merges flags over config.yaml.
// Precedence for each value: flag, environment, config.yaml, default.
func loadSettings(f rootFlags) (settings, error) {
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, err
	}
	dataDir, err := paths.ResolveDataDir(f.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	s := settings{
		ConfigDir: configDir,
		DataDir:   dataDir,
		Backend:   v.GetString(cfgKeyBackend),
		DSN:       v.GetString(cfgKeyDSN),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}
	if f.backend != "" {
		s.Backend = f.backend
	}
	if f.logLevel != "" {
		s.LogLevel = f.logLevel
	}
	return s, nil
}
