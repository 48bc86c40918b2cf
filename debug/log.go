package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

const categoryField = "category"

var (
	logger = newLogger()

	mu       sync.Mutex
	file     *os.File
	counters = make(map[string]int)
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&ConsoleFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetOutput redirects console output (tests, TUI)
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Enable turns on debug-level logging and mirrors every entry to path
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		return nil
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	logger.AddHook(&fileHook{
		w:         f,
		formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true, TimestampFormat: "15:04:05.000"},
	})
	logger.SetLevel(logrus.DebugLevel)
	logger.WithField(categoryField, "debug").Debug("=== Debug logging started ===")

	return nil
}

// Disable stops mirroring to the debug file
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	logger.ReplaceHooks(make(logrus.LevelHooks))
	logger.SetLevel(logrus.InfoLevel)
	if file != nil {
		file.Close()
		file = nil
	}
}

// Log writes a debug-level message
func Log(category, format string, args ...any) {
	logger.WithField(categoryField, category).Debugf(format, args...)
}

// Info writes an info-level message
func Info(category, format string, args ...any) {
	logger.WithField(categoryField, category).Infof(format, args...)
}

// Warn writes a warning; used for recoverable conditions (truncation, bad glyphs)
func Warn(category, format string, args ...any) {
	logger.WithField(categoryField, category).Warnf(format, args...)
}

// Error writes an error that the caller recovered from
func Error(category, format string, args ...any) {
	logger.WithField(categoryField, category).Errorf(format, args...)
}

// LogEvery logs only every N calls (use for high-frequency events)
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// fileHook writes plain text entries to the debug file
type fileHook struct {
	w         io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("format debug entry: %w", err)
	}
	_, err = h.w.Write(line)
	return err
}
