package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// callerSkip locates the code that called CPrint or VPrint from inside
// fire/fires: the hook, LevelHooks.Fire, fireHooks, Entry.log, the Entry
// level method, output and the print function itself (logrus v1.2).
const callerSkip = 8

// functionHooker annotates entries with the calling function, file and
// line, or with a short call chain for error levels.
type functionHooker struct {
	innerLogger *Logger
}

func shortFuncName(fname string) string {
	if index := strings.LastIndex(fname, "/"); index >= 0 {
		return fname[index+1:]
	}
	return fname
}

func (h *functionHooker) fire(entry *logrus.Entry) {
	pc, file, line, ok := runtime.Caller(callerSkip)
	if !ok {
		return
	}
	if f := runtime.FuncForPC(pc); f != nil {
		entry.Data["func"] = shortFuncName(f.Name())
	}
	entry.Data["line"] = line
	entry.Data["file"] = filepath.Base(file)
}

func (h *functionHooker) fires(entry *logrus.Entry) {
	for i := callerSkip; i < callerSkip+3; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fname := "?"
		if f := runtime.FuncForPC(pc); f != nil {
			fname = shortFuncName(f.Name())
		}
		entry.Data["f"+strconv.Itoa(i-callerSkip)] = fmt.Sprintf("{%s,%s,%d}", filepath.Base(file), fname, line)
	}
}

func (h *functionHooker) Fire(entry *logrus.Entry) error {
	switch h.innerLogger.callRelation(entry.Level) {
	case MsgFormatMulti:
		h.fires(entry)
	case MsgFormatSingle:
		h.fire(entry)
	}
	return nil
}

func (h *functionHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

// LoadFunctionHooker attaches a function hooker to logger.
func LoadFunctionHooker(logger *Logger) {
	logger.Hooks.Add(&functionHooker{innerLogger: logger})
}
