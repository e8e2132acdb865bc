// Package logger provides leveled logging for the simulation processes.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger writes info and warning messages to one writer and errors to another.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger creates the logger writing to stdout and stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr)
}

// NewLoggerTo creates the logger writing to the given writers.
func NewLoggerTo(out io.Writer, errOut io.Writer) *Logger {
	return &Logger{
		infoLogger:  log.New(out, "[LIFE-INFO] ", log.Ldate|log.Ltime|log.Lshortfile),
		warnLogger:  log.New(out, "[LIFE-WARN] ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLogger: log.New(errOut, "[LIFE-ERROR] ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

func (l *Logger) Info(msg string) {
	_ = l.infoLogger.Output(2, msg)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	_ = l.infoLogger.Output(2, fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(msg string) {
	_ = l.warnLogger.Output(2, msg)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	_ = l.warnLogger.Output(2, fmt.Sprintf(format, v...))
}

func (l *Logger) Error(msg string) {
	_ = l.errorLogger.Output(2, msg)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	_ = l.errorLogger.Output(2, fmt.Sprintf(format, v...))
}
