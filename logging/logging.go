package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLogLevel translates a string representation of a log level into a log level enum.
// Unrecognized names are treated as InfoLevel.
func ParseLogLevel(name string) int {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return DebugLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// toLogrusLevel translates a log level enum to its logrus equivalent
func toLogrusLevel(level int) logrus.Level {
	switch level {
	case TraceLevel:
		return logrus.TraceLevel
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// CreateLogger produces a logrus Logger writing text-formatted entries to out (stderr if nil)
func CreateLogger(level int, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(toLogrusLevel(level))
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false, FullTimestamp: true})
	return logger
}
