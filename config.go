package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/garyluck/pilot/interp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//
// Settings read from pilot.yaml.  Every key is optional
//

type config struct {
	AcceptMaxLen  int    `yaml:"accept_max_len"`
	WaitTimeout   string `yaml:"wait_timeout"`
	PollInterval  string `yaml:"poll_interval"`
	EscapeEnabled bool   `yaml:"escape_enabled"`
	StackDepth    int    `yaml:"stack_depth"`
	TraceExec     bool   `yaml:"trace_exec"`
	PrintStats    bool   `yaml:"print_stats"`
	Prompt        string `yaml:"prompt"`
	FileSuffix    string `yaml:"file_suffix"`

	waitTimeout  time.Duration
	pollInterval time.Duration
}

func defaultConfig() config {

	def := interp.DefaultOptions()

	return config{
		AcceptMaxLen:  def.AcceptMaxLen,
		WaitTimeout:   def.WaitTimeout.String(),
		PollInterval:  def.PollInterval.String(),
		EscapeEnabled: def.EscapeEnabled,
		StackDepth:    def.StackDepth,
		Prompt:        myPrompt,
		FileSuffix:    pilotFileSuffix,
		waitTimeout:   def.WaitTimeout,
		pollInterval:  def.PollInterval,
	}
}

//
// $PILOT_CONFIG wins over the per-user config directory
//

func configPath() (string, error) {

	if p := os.Getenv(configEnvVar); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configDirName, configFileName), nil
}

//
// Read a config file over the defaults.  A missing file is not an
// error.  Keys left out of the file keep their default values
//

func readConfig(path string) (config, error) {

	cfg := defaultConfig()

	fp, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return defaultConfig(), err
	}

	defer fp.Close()

	decoder := yaml.NewDecoder(fp)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return defaultConfig(), fmt.Errorf("%s : %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return defaultConfig(), fmt.Errorf("%s : %w", path, err)
	}

	return cfg, nil
}

func (cfg *config) validate() error {

	var err error

	if cfg.AcceptMaxLen < 1 {
		return fmt.Errorf("accept_max_len must be >= 1 (%d)", cfg.AcceptMaxLen)
	}

	if cfg.StackDepth < 1 {
		return fmt.Errorf("stack_depth must be >= 1 (%d)", cfg.StackDepth)
	}

	if cfg.waitTimeout, err = time.ParseDuration(cfg.WaitTimeout); err != nil || cfg.waitTimeout <= 0 {
		return fmt.Errorf("invalid wait_timeout (%s)", cfg.WaitTimeout)
	}

	if cfg.pollInterval, err = time.ParseDuration(cfg.PollInterval); err != nil || cfg.pollInterval <= 0 {
		return fmt.Errorf("invalid poll_interval (%s)", cfg.PollInterval)
	}

	if len(cfg.FileSuffix) < 2 || strings.LastIndex(cfg.FileSuffix, ".") != 0 {
		return fmt.Errorf("invalid file_suffix (%s)", cfg.FileSuffix)
	}

	return nil
}

//
// A bad config file is reported, and the shell carries on with the
// defaults
//

func loadConfig() {

	g.config = defaultConfig()

	path, err := configPath()
	if err != nil {
		return
	}

	cfg, err := readConfig(path)
	if err != nil {
		fmt.Printf("%s : %v\n", ECONFIG, err)
	}

	g.config = cfg
	g.traceExec = cfg.TraceExec
	g.printStats = cfg.PrintStats
}

func (cfg *config) options(log zerolog.Logger) interp.Options {

	opts := interp.DefaultOptions()

	opts.AcceptMaxLen = cfg.AcceptMaxLen
	opts.StackDepth = cfg.StackDepth
	opts.WaitTimeout = cfg.waitTimeout
	opts.PollInterval = cfg.pollInterval
	opts.EscapeEnabled = cfg.EscapeEnabled
	opts.Logger = log

	return opts
}
