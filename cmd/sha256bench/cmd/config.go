package cmd

import (
	"os"
	"path/filepath"

	"github.com/dmitryelj/SHA256-Benchmark/config"
	"github.com/dmitryelj/SHA256-Benchmark/errors"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/dmitryelj/SHA256-Benchmark/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "sha256bench"
	defaultConfigFile = config.DefaultConfigFilename
	reportsDirname    = "reports"
	reportsDbType     = "leveldb"
)

var (
	cfgFile      string
	flagLogDir   string
	flagLogLevel string
	flagDataDir  string

	usingConfigFile string
	cfg             = config.DefaultConfig()
)

// loadConfig reads the config file, if any, and applies flags and
// environment variables over it.
func loadConfig() (*config.Config, string, error) {
	filename := cfgFile
	if filename == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			filename = defaultConfigFile
		}
	}

	c := config.DefaultConfig()
	if filename != "" {
		loaded, err := config.LoadConfig(filename)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrLoadConfig, err, filename)
		}
		c = loaded
	}

	if v := viper.GetString("log_dir"); v != "" {
		c.Log.LogDir = v
	}
	if v := viper.GetString("log_level"); v != "" {
		c.Log.LogLevel = v
	}
	if v := viper.GetString("data_dir"); v != "" {
		c.Datastore.Dir = v
	}

	if err := config.CheckConfig(c); err != nil {
		return nil, "", errors.New(errors.ErrCheckConfig, err)
	}
	return c, filename, nil
}

// initialize loads the config and starts logging before any subcommand.
func initialize(cmd *cobra.Command, args []string) error {
	c, filename, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, usingConfigFile = c, filename

	if err := logging.Init(cfg.Log.LogDir, config.DefaultLoggingFilename, cfg.Log.LogLevel, cfg.Log.LogAge, cfg.Log.DisableCPrint); err != nil {
		return errors.Wrap(errors.ErrInitLogger, err, cfg.Log.LogDir)
	}
	logging.VPrint(logging.INFO, "command started", logging.LogFormat{
		"command": cmd.Name(),
		"config":  usingConfigFile,
		"version": version.GetVersion(),
	})
	return nil
}

func reportsPath() string {
	return filepath.Join(cfg.Datastore.Dir, reportsDirname)
}
