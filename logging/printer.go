// Package logging provides a level-keyed structured printer for the container package,
// replacing the compile-time debug dumps of the original C++ implementation with a
// logger a caller can configure or silence at runtime.
package logging

import "github.com/sirupsen/logrus"

// Printer dumps a value at a given level. Implementations decide how v is rendered; the
// default Printer passes it to logrus as a structured field.
type Printer interface {
	// Dump logs v at level under the given message, as a structured field rather than an
	// interpolated string.
	Dump(level logrus.Level, msg string, v any)
}

// logrusPrinter is the default Printer, wrapping a *logrus.Logger.
type logrusPrinter struct {
	log *logrus.Logger
}

// New returns a Printer backed by log. A nil log falls back to logrus.StandardLogger().
func New(log *logrus.Logger) Printer {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &logrusPrinter{log: log}
}

// Dump implements Printer.
func (p *logrusPrinter) Dump(level logrus.Level, msg string, v any) {
	p.log.WithField("value", v).Log(level, msg)
}

// Discard is a Printer that drops every call, for callers that don't want diagnostics.
var Discard Printer = discardPrinter{}

type discardPrinter struct{}

func (discardPrinter) Dump(logrus.Level, string, any) {}
