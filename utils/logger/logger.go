package logger

import (
	"fmt"
	"io"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

const objWidth = 20

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		t := reflect.TypeOf(obj)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		objStr = t.Name()
	}
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	return
}

func line(object any, message string) string {
	return fmt.Sprintf("|%20s|%-100s", objToString(object), message)
}

// Init configures the process-wide logrus logger. Log lines go to out (stderr when nil)
// so that they never interleave with the trace printed on stdout.
func Init(lvl logrus.Level, out io.Writer) {
	logrus.SetLevel(lvl)
	if out != nil {
		logrus.SetOutput(out)
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
}

func logAt(lvl logrus.Level, object any, message string) {
	if !logrus.IsLevelEnabled(lvl) {
		return
	}
	logrus.StandardLogger().Log(lvl, line(object, message))
}

func Trace(object any, message string) {
	logAt(logrus.TraceLevel, object, message)
}

func Tracef(object any, message string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	logAt(logrus.TraceLevel, object, fmt.Sprintf(message, args...))
}

func Debug(object any, message string) {
	logAt(logrus.DebugLevel, object, message)
}

func Debugf(object any, message string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logAt(logrus.DebugLevel, object, fmt.Sprintf(message, args...))
}

func Info(object any, message string) {
	logAt(logrus.InfoLevel, object, message)
}

func Infof(object any, message string, args ...any) {
	logAt(logrus.InfoLevel, object, fmt.Sprintf(message, args...))
}

func Warning(object any, message string) {
	logAt(logrus.WarnLevel, object, message)
}

func Warningf(object any, message string, args ...any) {
	logAt(logrus.WarnLevel, object, fmt.Sprintf(message, args...))
}

func Error(object any, message string) {
	logAt(logrus.ErrorLevel, object, message)
}

func Errorf(object any, message string, args ...any) {
	logAt(logrus.ErrorLevel, object, fmt.Sprintf(message, args...))
}

func Fatal(object any, message string) {
	logrus.Fatal(line(object, message))
}

func Fatalf(object any, message string, args ...any) {
	logrus.Fatal(line(object, fmt.Sprintf(message, args...)))
}
