package release

import (
	"fmt"

	"github.com/indaco/cutrelease/internal/printer"
)

// Reporter receives progress messages from a release run.
type Reporter interface {
	Step(format string, a ...any)
	Skip(format string, a ...any)
	Warn(format string, a ...any)
}

// ConsoleReporter writes progress through the printer package.
type ConsoleReporter struct{}

func (ConsoleReporter) Step(format string, a ...any) { printer.PrintStep(format, a...) }
func (ConsoleReporter) Skip(format string, a ...any) { printer.PrintSkip(format, a...) }
func (ConsoleReporter) Warn(format string, a ...any) {
	printer.PrintWarning("! " + fmt.Sprintf(format, a...))
}

type nopReporter struct{}

func (nopReporter) Step(string, ...any) {}
func (nopReporter) Skip(string, ...any) {}
func (nopReporter) Warn(string, ...any) {}
