package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls level, format and destination of every named logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output string // stdout, file or both
	Path   string // directory for rotated files
}

func DefaultConfig() *LogConfig {
	return &LogConfig{Level: "info", Format: "text", Output: "stdout", Path: "logs"}
}

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex
	config    *LogConfig
)

// Init sets the configuration used by loggers created afterwards.
// Loggers already handed out are rebuilt so the new settings apply everywhere.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()
	config = cfg
	for name, l := range loggers {
		configure(l, name)
	}
	return nil
}

// GetLogger returns the logger registered under name (app, access, ...).
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		config = DefaultConfig()
	}
	if l, ok := loggers[name]; ok {
		return l
	}
	l := logrus.New()
	configure(l, name)
	loggers[name] = l
	return l
}

// App is the general purpose application logger.
func App() *logrus.Logger {
	return GetLogger("app")
}

func configure(l *logrus.Logger, name string) {
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
	}

	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(config.Path, name+".log"),
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
	if config.Output != "file" {
		writers = append(writers, os.Stdout)
	}
	l.SetOutput(io.MultiWriter(writers...))
}
