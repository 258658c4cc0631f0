package logger

import (
	"fmt"
	"strings"
)

// Icons used by the console helpers
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconRefresh = "🔄"
	IconDot     = "•"
)

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	defaultLogger.Info(IconSuccess + " " + fmt.Sprint(args...))
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message with a refresh icon
func Progress(args ...interface{}) {
	defaultLogger.Info(IconRefresh + " " + fmt.Sprint(args...))
}

// LogSection writes a visual section separator to the default output
func LogSection(title string) {
	l, ok := defaultLogger.(*logger)
	if !ok {
		return
	}
	line := strings.Repeat("=", 50)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.writer, l.paint(accent, line))
	_, _ = fmt.Fprintln(l.writer, l.paint(accent, title))
	_, _ = fmt.Fprintln(l.writer, l.paint(accent, line))
}

// LogKeyValue writes an aligned key: value line
func LogKeyValue(key string, value interface{}) {
	l, ok := defaultLogger.(*logger)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.writer, "%s %v\n", l.paint(accent, fmt.Sprintf("%-28s", key+":")), value)
}

// LogList logs a titled list of items with bullets
func LogList(title string, items []string) {
	Info(title)
	l, ok := defaultLogger.(*logger)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range items {
		_, _ = fmt.Fprintf(l.writer, "  %s %s\n", IconDot, item)
	}
}
