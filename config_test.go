package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyluck/pilot/test"
	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, text string) string {

	t.Helper()

	path := filepath.Join(t.TempDir(), configFileName)

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestConfigDefaults(t *testing.T) {

	cfg, err := readConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, cfg.AcceptMaxLen, 80)
	test.ExpectEquality(t, cfg.StackDepth, 512)
	test.ExpectEquality(t, cfg.EscapeEnabled, true)
	test.ExpectEquality(t, cfg.Prompt, myPrompt)
	test.ExpectEquality(t, cfg.FileSuffix, pilotFileSuffix)
	test.ExpectEquality(t, cfg.waitTimeout, 6*time.Second)
	test.ExpectEquality(t, cfg.pollInterval, 100*time.Millisecond)

	cfg, err = readConfig(writeConfig(t, ""))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cfg.waitTimeout, 6*time.Second)
}

func TestConfigFile(t *testing.T) {

	path := writeConfig(t, `
accept_max_len: 40
wait_timeout: 2s
poll_interval: 50ms
escape_enabled: false
stack_depth: 16
trace_exec: true
print_stats: true
prompt: "> "
file_suffix: .plt
`)

	cfg, err := readConfig(path)
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, cfg.AcceptMaxLen, 40)
	test.ExpectEquality(t, cfg.StackDepth, 16)
	test.ExpectEquality(t, cfg.EscapeEnabled, false)
	test.ExpectEquality(t, cfg.TraceExec, true)
	test.ExpectEquality(t, cfg.PrintStats, true)
	test.ExpectEquality(t, cfg.Prompt, "> ")
	test.ExpectEquality(t, cfg.FileSuffix, ".plt")

	opts := cfg.options(zerolog.Nop())
	test.ExpectEquality(t, opts.AcceptMaxLen, 40)
	test.ExpectEquality(t, opts.StackDepth, 16)
	test.ExpectEquality(t, opts.WaitTimeout, 2*time.Second)
	test.ExpectEquality(t, opts.PollInterval, 50*time.Millisecond)
	test.ExpectEquality(t, opts.EscapeEnabled, false)
}

func TestConfigErrors(t *testing.T) {

	for _, text := range []string{
		"accept_max_len: 0\n",
		"stack_depth: -1\n",
		"wait_timeout: soon\n",
		"poll_interval: 0s\n",
		"file_suffix: pil\n",
		"file_suffix: .a.b\n",
		"colour: blue\n",
		"accept_max_len: [1, 2]\n",
	} {
		cfg, err := readConfig(writeConfig(t, text))
		test.ExpectFailure(t, err)

		// a bad file leaves every default in place
		test.ExpectEquality(t, cfg.AcceptMaxLen, 80)
		test.ExpectEquality(t, cfg.FileSuffix, pilotFileSuffix)
	}
}

func TestConfigPath(t *testing.T) {

	t.Setenv(configEnvVar, "/tmp/elsewhere.yaml")

	path, err := configPath()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, path, "/tmp/elsewhere.yaml")

	t.Setenv(configEnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err = configPath()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, path, filepath.Join("/tmp/xdg", configDirName, configFileName))
}
