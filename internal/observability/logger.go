package observability

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "CHAOSCTL_LOG_LEVEL"
	EnvLogTimestamp = "CHAOSCTL_LOG_TIMESTAMP"
	EnvLogNoColor   = "CHAOSCTL_LOG_NOCOLOR"
)

// Profile selects logging defaults for runtime or test processes.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

type logConfig struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Out       io.Writer
}

var configureOnce sync.Once

// ConfigureRuntime configures the global logger with runtime defaults.
func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

// ConfigureTests configures the global logger with quiet test defaults.
func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure installs the global zerolog logger once per process. Environment
// variables override the profile defaults.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)

		writer := zerolog.ConsoleWriter{
			Out:        cfg.Out,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor,
		}
		ctx := zerolog.New(writer).With()
		if cfg.Timestamp {
			ctx = ctx.Timestamp()
		}
		zerolog.SetGlobalLevel(cfg.Level)
		log.Logger = ctx.Logger()
	})
}

// InitLogger returns a named logger derived from the global configuration.
func InitLogger(app string) zerolog.Logger {
	ConfigureRuntime()
	return log.With().Str("app", app).Logger()
}

func defaultConfig(profile Profile) logConfig {
	cfg := logConfig{
		Level:     zerolog.InfoLevel,
		Timestamp: true,
		Out:       os.Stderr,
	}
	if profile == ProfileTest {
		cfg.Level = zerolog.WarnLevel
		cfg.Timestamp = false
		cfg.NoColor = true
	}
	return cfg
}

func applyEnvOverrides(cfg *logConfig) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
