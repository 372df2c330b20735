package gekkoedit

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var _ Logger = (*DefaultLogger)(nil)

// DefaultLogger is a zap sugared logger whose debug level can be toggled at runtime.
type DefaultLogger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

// NewDefaultLogger builds a logger writing to stderr. encoding is "console" or "json".
func NewDefaultLogger(prefix string, debug bool, encoding string) (*DefaultLogger, error) {
	level := newLevel(debug)
	config := zap.Config{
		Level:            level,
		Encoding:         defaultEncoding(encoding),
		EncoderConfig:    newEncoderConfig(encoding),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}
	if prefix != "" {
		zapLogger = zapLogger.Named(prefix)
	}
	return &DefaultLogger{level: level, sugar: zapLogger.Sugar()}, nil
}

// LogFile configures a size-rotated log file.
type LogFile struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// NewFileLogger builds a logger writing to a rotated file instead of stderr.
func NewFileLogger(prefix string, debug bool, encoding string, file LogFile) (*DefaultLogger, error) {
	var encoder zapcore.Encoder
	switch defaultEncoding(encoding) {
	case "console":
		encoder = zapcore.NewConsoleEncoder(newEncoderConfig(encoding))
	case "json":
		encoder = zapcore.NewJSONEncoder(newEncoderConfig(encoding))
	default:
		return nil, fmt.Errorf("unknown log encoding %q", encoding)
	}
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    file.MaxSizeMB, // megabytes
		MaxBackups: file.MaxBackups,
	})
	level := newLevel(debug)
	zapLogger := zap.New(zapcore.NewCore(encoder, sink, level))
	if prefix != "" {
		zapLogger = zapLogger.Named(prefix)
	}
	return &DefaultLogger{level: level, sugar: zapLogger.Sugar()}, nil
}

func newLevel(debug bool) zap.AtomicLevel {
	if debug {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

func defaultEncoding(encoding string) string {
	if encoding == "" {
		return "console"
	}
	return encoding
}

func newEncoderConfig(encoding string) zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if defaultEncoding(encoding) == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return encoderConfig
}

// NewLoggerWithCore wraps an existing zap core, e.g. an observer in tests.
// The core's own level filter still applies on top of SetDebug.
func NewLoggerWithCore(core zapcore.Core, debug bool) *DefaultLogger {
	level := newLevel(debug)
	filtered, err := zapcore.NewIncreaseLevelCore(core, level)
	if err != nil {
		// The core is stricter than Info; use it as is.
		filtered = core
	}
	return &DefaultLogger{level: level, sugar: zap.New(filtered).Sugar()}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.level.Enabled(zap.DebugLevel)
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zap.DebugLevel)
	} else {
		l.level.SetLevel(zap.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered entries.
func (l *DefaultLogger) Sync() error {
	return l.sugar.Sync()
}

// LoggingModule installs a logger as a resource. Logger takes precedence over the
// other fields when set; a File with a Path logs there instead of stderr.
type LoggingModule struct {
	Prefix   string
	Debug    bool
	Encoding string
	File     LogFile
	Logger   Logger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	if m.Logger != nil {
		app.addResources(&loggerResource{Logger: m.Logger})
		return
	}
	var logger *DefaultLogger
	var err error
	if m.File.Path != "" {
		logger, err = NewFileLogger(m.Prefix, m.Debug, m.Encoding, m.File)
	} else {
		logger, err = NewDefaultLogger(m.Prefix, m.Debug, m.Encoding)
	}
	if err != nil {
		panic(err)
	}
	app.addResources(&loggerResource{Logger: logger})
}

// loggerResource lets any Logger implementation live in the typed resource map.
type loggerResource struct {
	Logger
}

// Nop logger and App helper accessor

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the installed logger, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil || app.resources == nil {
		return NewNopLogger()
	}
	if r, ok := app.resources[typeOfLoggerResource]; ok {
		return r.(*loggerResource).Logger
	}
	return NewNopLogger()
}
