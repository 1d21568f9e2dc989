package console

import (
	"io"
	"log"
	"os"
)

// Logger writes the agent's operational log: [INFO] and [OK] lines go to
// out, [ERR] lines go to errOut.
type Logger struct {
	info *log.Logger
	ok   *log.Logger
	err  *log.Logger
}

func New(out, errOut io.Writer) *Logger {
	const flags = log.LstdFlags | log.Lmsgprefix
	return &Logger{
		info: log.New(out, "[INFO] ", flags),
		ok:   log.New(out, "[OK] ", flags),
		err:  log.New(errOut, "[ERR] ", flags),
	}
}

func Default() *Logger {
	return New(os.Stdout, os.Stderr)
}

func (l *Logger) Infof(format string, v ...any) {
	l.info.Printf(format, v...)
}

func (l *Logger) OKf(format string, v ...any) {
	l.ok.Printf(format, v...)
}

func (l *Logger) Errorf(format string, v ...any) {
	l.err.Printf(format, v...)
}
