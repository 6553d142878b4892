package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the layout of the bracketed timestamp on every entry.
const TimestampFormat = "2006-01-02 15:04:05"

// LogConfig represents the optional [logging] section of the config file
type LogConfig struct {
	Level string `yaml:"level" toml:"level" ini:"level"`
}

// Options controls how New builds a logger.
type Options struct {
	// File is the bounded log file. Empty disables the file sink.
	File string

	// MaxEntries caps the log file. Zero means DefaultMaxEntries.
	MaxEntries int

	// Verbose echoes every entry to Console.
	Verbose bool

	// Console defaults to os.Stdout.
	Console io.Writer

	// Files defaults to the local file system.
	Files port.FileManager
}

// Logger is a logrus logger whose entries are also kept in a bounded log file.
type Logger struct {
	*logrus.Logger
	hook *BoundedFileHook
}

// EntryFormatter renders "[YYYY-MM-DD HH:MM:SS] message" followed by any fields.
type EntryFormatter struct{}

// Format renders a single log entry
func (f *EntryFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("[%s] ", entry.Time.Format(TimestampFormat)))
	b.WriteString(singleLine(entry.Message))

	if len(entry.Data) > 0 {
		b.WriteString(" (")

		// Sort fields for consistent output
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(singleLine(fmt.Sprintf("%s=%v", key, entry.Data[key])))
		}
		b.WriteString(")")
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// singleLine keeps one entry on one line of the log file.
func singleLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\r", "")), " ")
}

// New builds a logger from opts. Verbosity only decides whether the console sees entries.
func New(opts Options) *Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&EntryFormatter{})

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	if opts.Verbose {
		logger.SetOutput(console)
	} else {
		logger.SetOutput(io.Discard)
	}

	l := &Logger{Logger: logger}
	if opts.File != "" {
		l.hook = NewBoundedFileHook(NewJournal(opts.File, opts.MaxEntries, opts.Files))
		logger.AddHook(l.hook)
	}
	return l
}

// ApplyConfig applies the [logging] section once the config file has been read.
func (l *Logger) ApplyConfig(config LogConfig) {
	if config.Level == "" {
		return
	}
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		l.Warnf("Invalid log level '%s', keeping '%s'", config.Level, l.GetLevel())
		return
	}
	l.SetLevel(level)
}

// Err returns the first failure to write the log file, if any.
func (l *Logger) Err() error {
	if l.hook == nil {
		return nil
	}
	return l.hook.Err()
}
