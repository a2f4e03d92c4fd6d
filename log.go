/*
Package dynafluent – logging shim.

Callers may inject any Logger; the default writes info and error lines to
the standard library logger and drops trace output.
*/
package dynafluent

import (
	"encoding/json"
	"log"
)

// Logger is the interface callers may supply to a Registry.
// Each method receives a structured context map (may be nil).
type Logger interface {
	Trace(message string, ctx map[string]any)
	Info(message string, ctx map[string]any)
	Error(message string, ctx map[string]any)
}

// leveledLogger writes to the standard library logger. Trace lines are
// emitted only when verbose is set.
type leveledLogger struct {
	verbose bool
}

func (l leveledLogger) Trace(msg string, ctx map[string]any) {
	if l.verbose {
		logLine("TRACE", msg, ctx)
	}
}

func (l leveledLogger) Info(msg string, ctx map[string]any)  { logLine("INFO", msg, ctx) }
func (l leveledLogger) Error(msg string, ctx map[string]any) { logLine("ERROR", msg, ctx) }

func logLine(level, msg string, ctx map[string]any) {
	if ctx == nil {
		log.Printf("[%s] %s", level, msg)
		return
	}
	b, err := json.Marshal(ctx)
	if err != nil {
		log.Printf("[%s] %s %v", level, msg, ctx)
		return
	}
	log.Printf("[%s] %s %s", level, msg, b)
}

// FuncLogger adapts a plain function to the Logger interface.
type FuncLogger struct {
	Fn func(level, message string, ctx map[string]any)
}

func (f FuncLogger) Trace(msg string, ctx map[string]any) { f.Fn("trace", msg, ctx) }
func (f FuncLogger) Info(msg string, ctx map[string]any)  { f.Fn("info", msg, ctx) }
func (f FuncLogger) Error(msg string, ctx map[string]any) { f.Fn("error", msg, ctx) }

// NopLogger silently discards everything.
type NopLogger struct{}

func (NopLogger) Trace(string, map[string]any) {}
func (NopLogger) Info(string, map[string]any)  {}
func (NopLogger) Error(string, map[string]any) {}
