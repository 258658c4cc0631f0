package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Level represents the severity of a log message
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelStyles = map[Level]struct {
	label string
	color *color.Color
}{
	DebugLevel: {"DEBUG", color.New(color.FgHiBlack)},
	InfoLevel:  {"INFO ", color.New(color.FgGreen)},
	WarnLevel:  {"WARN ", color.New(color.FgYellow)},
	ErrorLevel: {"ERROR", color.New(color.FgRed, color.Bold)},
}

var (
	faint  = color.New(color.FgHiBlack)
	accent = color.New(color.FgCyan)
)

// Logger is the main logger interface
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithPrefix(prefix string) Logger
}

// Config holds logger configuration
type Config struct {
	Level    Level
	Writer   io.Writer
	NoColor  bool
	ShowTime bool
}

type logger struct {
	mu       *sync.Mutex
	level    *Level
	writer   io.Writer
	fields   map[string]interface{}
	prefix   string
	noColor  bool
	showTime bool
}

var defaultLogger = New()

// New creates a logger writing to stdout. Color is enabled only when
// stdout is a terminal.
func New() Logger {
	return NewWithConfig(Config{
		Level:    InfoLevel,
		Writer:   os.Stdout,
		NoColor:  !term.IsTerminal(int(os.Stdout.Fd())),
		ShowTime: true,
	})
}

// NewWithConfig creates a logger with custom configuration
func NewWithConfig(cfg Config) Logger {
	level := cfg.Level
	return &logger{
		mu:       &sync.Mutex{},
		level:    &level,
		writer:   cfg.Writer,
		fields:   map[string]interface{}{},
		noColor:  cfg.NoColor,
		showTime: cfg.ShowTime,
	}
}

// SetLevel sets the level of the default logger
func SetLevel(level Level) {
	if l, ok := defaultLogger.(*logger); ok {
		l.mu.Lock()
		*l.level = level
		l.mu.Unlock()
	}
}

// SetNoColor disables color output on the default logger
func SetNoColor(noColor bool) {
	if l, ok := defaultLogger.(*logger); ok {
		l.mu.Lock()
		l.noColor = l.noColor || noColor
		l.mu.Unlock()
	}
}

// SetOutput redirects the default logger
func SetOutput(w io.Writer) {
	if l, ok := defaultLogger.(*logger); ok {
		l.mu.Lock()
		l.writer = w
		l.mu.Unlock()
	}
}

func Debug(args ...interface{})                      { defaultLogger.Debug(args...) }
func Debugf(format string, args ...interface{})      { defaultLogger.Debugf(format, args...) }
func Info(args ...interface{})                       { defaultLogger.Info(args...) }
func Infof(format string, args ...interface{})       { defaultLogger.Infof(format, args...) }
func Warn(args ...interface{})                       { defaultLogger.Warn(args...) }
func Warnf(format string, args ...interface{})       { defaultLogger.Warnf(format, args...) }
func Error(args ...interface{})                      { defaultLogger.Error(args...) }
func Errorf(format string, args ...interface{})      { defaultLogger.Errorf(format, args...) }
func WithField(key string, value interface{}) Logger { return defaultLogger.WithField(key, value) }
func WithPrefix(prefix string) Logger                { return defaultLogger.WithPrefix(prefix) }

func (l *logger) paint(c *color.Color, s string) string {
	if l.noColor {
		return s
	}
	return c.Sprint(s)
}

func (l *logger) log(level Level, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < *l.level {
		return
	}

	var parts []string
	if l.showTime {
		parts = append(parts, l.paint(faint, time.Now().Format("15:04:05")))
	}

	style := levelStyles[level]
	parts = append(parts, l.paint(style.color, style.label))

	if l.prefix != "" {
		parts = append(parts, l.paint(accent, "["+l.prefix+"]"))
	}

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		parts = append(parts, l.paint(faint, strings.Join(fieldParts, " ")))
	}

	parts = append(parts, fmt.Sprint(args...))
	_, _ = fmt.Fprintln(l.writer, strings.Join(parts, " "))
}

func (l *logger) Debug(args ...interface{}) { l.log(DebugLevel, args...) }
func (l *logger) Info(args ...interface{})  { l.log(InfoLevel, args...) }
func (l *logger) Warn(args ...interface{})  { l.log(WarnLevel, args...) }
func (l *logger) Error(args ...interface{}) { l.log(ErrorLevel, args...) }

func (l *logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}

// derive copies l so that children share its level and output lock
func (l *logger) derive() *logger {
	child := *l
	child.fields = make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		child.fields[k] = v
	}
	return &child
}

func (l *logger) WithField(key string, value interface{}) Logger {
	child := l.derive()
	child.fields[key] = value
	return child
}

func (l *logger) WithPrefix(prefix string) Logger {
	child := l.derive()
	child.prefix = prefix
	return child
}

// ParseLevel parses a string log level, falling back to info
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
