package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// levels maps the -v count to a level; counts past the end use the last entry.
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

var (
	mu      sync.Mutex
	logFile *os.File
)

// SetupLogger points the global logger at stderr and at the polkadot log
// file. A log file that cannot be opened only disables file output.
// Calling it again replaces the previous file handle.
func SetupLogger(verbosity int) {
	mu.Lock()
	defer mu.Unlock()

	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		verbosity = len(levels) - 1
	}
	zerolog.SetGlobalLevel(levels[verbosity])

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	path := getLogFilePath()
	file, err := openLogFile(path)
	if err == nil {
		logFile = file
		writers = append(writers, file)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// getLogFilePath prefers XDG_STATE_HOME as set at call time over the value
// xdg resolved at startup.
func getLogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return "polkadot.log"
	}
	return filepath.Join(stateHome, "polkadot", "polkadot.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create log directory for %s", path)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot open log file %s", path)
	}
	return file, nil
}

// LogOperationStart logs operation at debug level and returns the matching
// completion logger, which records the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
