package contracts

import "time"

// LogLevel represents the severity level for logging. Higher values are more severe.
type LogLevel int

const (
	// DebugLevel indicates per-frame and per-decision detail useful when following the greedy rule step by step.
	DebugLevel LogLevel = iota - 1
	// InfoLevel indicates messages that highlight the progress of a session.
	InfoLevel
	// WarnLevel indicates degraded but working situations, such as a missing soundfont.
	WarnLevel
	// ErrorLevel indicates failed triggers or backend errors.
	ErrorLevel
	// FatalLevel indicates errors after which the program aborts.
	FatalLevel
)

// ParseLogLevel converts a textual level ("debug", "info", "warn", "error", "fatal") into a LogLevel.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch s {
	case "debug":
		return DebugLevel, true
	case "info", "":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "fatal":
		return FatalLevel, true
	}
	return InfoLevel, false
}

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog directs log messages to stderr.
	ConsoleLog LogDestination = "console"
	// FileLog directs log messages to a file.
	FileLog LogDestination = "file"
)

// Field is a typed key/value pair attached to a log entry.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Duration(key string, val time.Duration) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
}

// Logger provides leveled, structured logging.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string)
}
