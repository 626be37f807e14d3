// Package logging wraps logrus with two process-wide loggers: CPrint
// writes to stdout and the log file, VPrint to the log file only.
package logging

import (
	"io/ioutil"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level names accepted by Init.
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
	TraceLevel = "trace"
)

// Levels accepted by CPrint and VPrint.
const (
	PANIC uint32 = iota
	FATAL
	ERROR
	WARN
	INFO
	DEBUG
	TRACE
)

const (
	//MsgFormatSingle annotates entries with the calling function
	MsgFormatSingle uint32 = iota
	//MsgFormatMulti annotates entries with a short call chain
	MsgFormatMulti
)

// LogFormat is a set of structured fields attached to an entry.
type LogFormat = map[string]interface{}

type Logger struct {
	*logrus.Logger
}

func NewLogger() *Logger {
	return &Logger{
		Logger: logrus.New(),
	}
}

// callRelation picks the caller annotation for an entry level.
func (logger *Logger) callRelation(level logrus.Level) uint32 {
	if level <= logrus.ErrorLevel {
		return MsgFormatMulti
	}
	return MsgFormatSingle
}

var (
	mu   sync.RWMutex
	clog *Logger
	vlog *Logger
)

var levels = map[uint32]logrus.Level{
	PANIC: logrus.PanicLevel,
	FATAL: logrus.FatalLevel,
	ERROR: logrus.ErrorLevel,
	WARN:  logrus.WarnLevel,
	INFO:  logrus.InfoLevel,
	DEBUG: logrus.DebugLevel,
	TRACE: logrus.TraceLevel,
}

func convertLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}

func newFileLogger(hook logrus.Hook, level string) *Logger {
	l := NewLogger()
	LoadFunctionHooker(l)
	l.Hooks.Add(hook)
	l.Out = ioutil.Discard
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = convertLevel(level)
	return l
}

// Init sets up both loggers. Files go to path/filename-YYYYMMDD.log and
// are kept for age days. With disableCPrint, CPrint stays off stdout.
func Init(path, filename string, level string, age uint32, disableCPrint bool) error {
	fileHooker, err := NewFileRotateHooker(path, filename, age, nil)
	if err != nil {
		return err
	}

	v := newFileLogger(fileHooker, level)
	c := v
	if !disableCPrint {
		c = newFileLogger(fileHooker, level)
		c.Out = os.Stdout
	}

	mu.Lock()
	vlog, clog = v, c
	mu.Unlock()

	v.WithFields(logrus.Fields{
		"path":  path,
		"level": level,
	}).Info("Logger Configuration.")
	return nil
}

// loggers returns the active loggers, falling back to a stderr logger
// when Init was never called.
func loggers() (*Logger, *Logger) {
	mu.RLock()
	c, v := clog, vlog
	mu.RUnlock()
	if c != nil {
		return c, v
	}

	mu.Lock()
	defer mu.Unlock()
	if clog == nil {
		l := NewLogger()
		l.Out = os.Stderr
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		clog, vlog = l, l
	}
	return clog, vlog
}

func output(logger *Logger, level uint32, msg string, formats []LogFormat) {
	lvl, ok := levels[level]
	if !ok {
		lvl = logrus.ErrorLevel
	}
	entry := logger.WithFields(mergeLogFormats(formats...))
	switch lvl {
	case logrus.PanicLevel:
		entry.Panic(msg)
	case logrus.FatalLevel:
		entry.Fatal(msg)
	case logrus.ErrorLevel:
		entry.Error(msg)
	case logrus.WarnLevel:
		entry.Warn(msg)
	case logrus.InfoLevel:
		entry.Info(msg)
	case logrus.DebugLevel:
		entry.Debug(msg)
	default:
		entry.Trace(msg)
	}
}

// CPrint into stdout + log
func CPrint(level uint32, msg string, formats ...LogFormat) {
	c, _ := loggers()
	output(c, level, msg, formats)
}

// VPrint into log
func VPrint(level uint32, msg string, formats ...LogFormat) {
	_, v := loggers()
	output(v, level, msg, formats)
}

// mergeLogFormats merges LogFormats.
// Same key would be covered by later-presented values.
func mergeLogFormats(formats ...LogFormat) logrus.Fields {
	fields := logrus.Fields{}
	for _, data := range formats {
		for k, v := range data {
			fields[k] = v
		}
	}
	return fields
}
