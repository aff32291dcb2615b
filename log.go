// log.go - minimal verbose-gated logging, matching the teacher's own
// choice to stick with fmt/log rather than pull in a structured logging
// framework (see DESIGN.md).

package main

import (
	"fmt"
	"log"
	"os"
)

type logger struct {
	verbose bool
	out     *log.Logger
}

func newLogger(verbose bool) *logger {
	return &logger{verbose: verbose, out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *logger) debugf(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.out.Output(2, fmt.Sprintf(format, args...))
}

func (l *logger) infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.out.Output(2, fmt.Sprintf(format, args...))
}
