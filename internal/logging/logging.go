package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init initializes the global logger with dual sinks: os.Stderr and a
// rotating file. Stderr keeps the batch output streams clean for the report
// artifacts written to stdout-adjacent paths.
func Init(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		logDir = "logs"
	}

	var sink io.Writer = consoleWriter
	if err := os.MkdirAll(logDir, 0755); err == nil {
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "churnwatch.log"),
			MaxSize:    16, // megabytes
			MaxBackups: 8,
			MaxAge:     90, // days
			Compress:   true,
		}
		sink = zerolog.MultiLevelWriter(consoleWriter, fileWriter)
	}

	log.Logger = zerolog.New(sink).
		With().
		Timestamp().
		Logger()
}
