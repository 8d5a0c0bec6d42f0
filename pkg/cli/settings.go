package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"

	"github.com/funvibe/ollang/internal/config"
)

const envPrefix = "OLLANG"

// bindSettings registers every settings key with v, so that flags, the
// OLLANG_* environment and the config file all feed the same keys.
func bindSettings(v *viper.Viper, cmd *cobra.Command) error {
	defaults := config.DefaultSettings()
	v.SetDefault("import_paths", defaults.ImportPaths)
	v.SetDefault("lexer.strict", defaults.Lexer.Strict)
	v.SetDefault("sandbox.max_bytes", defaults.Sandbox.MaxBytes)
	v.SetDefault("sandbox.allow_syscalls", defaults.Sandbox.AllowSyscalls)
	v.SetDefault("sandbox.allow_native", defaults.Sandbox.AllowNative)
	v.SetDefault("eval.max_depth", defaults.Eval.MaxDepth)
	v.SetDefault("eval.max_array_len", defaults.Eval.MaxArrayLen)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	flags := cmd.PersistentFlags()
	for key, name := range map[string]string{
		"log_level":              "log-level",
		"import_paths":           "import-path",
		"lexer.strict":           "strict",
		"sandbox.max_bytes":      "max-memory",
		"sandbox.allow_syscalls": "allow-syscalls",
		"sandbox.allow_native":   "allow-native",
		"eval.max_depth":         "max-depth",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// loadSettings reads the config file, if any, and decodes the merged
// view. An explicit --config must exist; the default file is optional.
func loadSettings(v *viper.Viper, configPath string) (*config.Settings, error) {
	switch {
	case configPath != "":
		v.SetConfigFile(configPath)
	default:
		if _, err := os.Stat(config.SettingsFileName); err == nil {
			v.SetConfigFile(config.SettingsFileName)
		}
	}
	if v.ConfigFileUsed() != "" {
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, tracerr.Wrap(fmt.Errorf("read config: %w", err))
		}
	}

	s := config.DefaultSettings()
	if err := v.Unmarshal(s); err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("decode config: %w", err))
	}
	if err := s.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return s, nil
}

// newLogger writes human-readable events to w at the named level.
func newLogger(level string, w io.Writer, noColor bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode maps an error returned by Execute to a process status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}
