// Package diagnostics represent utiltiy methods for diagnostics messages
package diagnostics

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/btree"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Severity tells whether a diagnostic stopped the build
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	default:
		return "error"
	}
}

// Diagnostic is a message attached to a source position. Line and Column are
// 1-based.
type Diagnostic struct {
	Message  string   `json:"message" yaml:"message"`
	Line     int      `json:"line" yaml:"line"`
	Column   int      `json:"column" yaml:"column"`
	Severity Severity `json:"-" yaml:"-"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Collector receives every diagnostic produced while building a module.
type Collector interface {
	Add(d Diagnostic)
}

// List is a Collector that keeps diagnostics in arrival order. It is safe for
// concurrent use so one List can be shared by several builds.
type List struct {
	mu    sync.Mutex
	items []Diagnostic
}

func (l *List) Add(d Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, d)
}

// Items returns a copy of the collected diagnostics
func (l *List) Items() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Diagnostic(nil), l.items...)
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// FatalError aborts a build. Builders return it unchanged up the call chain.
type FatalError struct {
	Diagnostic
}

func (e *FatalError) Error() string {
	return "fatal: " + e.Diagnostic.Error()
}

// IsFatal reports whether err carries a *FatalError
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

type entry struct {
	seq int
	d   Diagnostic
}

func lessEntry(a, b entry) bool {
	if a.d.Line != b.d.Line {
		return a.d.Line < b.d.Line
	}
	if a.d.Column != b.d.Column {
		return a.d.Column < b.d.Column
	}
	return a.seq < b.seq
}

// Handler is owned by a single build. Recoverable diagnostics are forwarded to
// the collector and kept in source order; fatal ones are turned into errors.
type Handler struct {
	collector Collector
	logger    *zap.Logger
	sorted    *btree.BTreeG[entry]
	seq       int
}

// NewHandler creates a Handler. Both arguments may be nil.
func NewHandler(collector Collector, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		collector: collector,
		logger:    logger,
		sorted:    btree.NewBTreeG(lessEntry),
	}
}

// Report records a recoverable diagnostic
func (h *Handler) Report(line, column int, format string, args ...any) {
	d := Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   column,
		Severity: SeverityError,
	}
	h.logger.Warn(d.Message, zap.Int("line", line), zap.Int("column", column))
	h.seq++
	h.sorted.Set(entry{seq: h.seq, d: d})
	if h.collector != nil {
		h.collector.Add(d)
	}
}

// Fatal records a fatal diagnostic and returns the error the caller must
// propagate.
func (h *Handler) Fatal(line, column int, format string, args ...any) error {
	d := Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   column,
		Severity: SeverityFatal,
	}
	h.logger.Error(d.Message, zap.Int("line", line), zap.Int("column", column))
	if h.collector != nil {
		h.collector.Add(d)
	}
	return &FatalError{Diagnostic: d}
}

// Diagnostics returns the recoverable diagnostics ordered by position
func (h *Handler) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, h.sorted.Len())
	h.sorted.Scan(func(e entry) bool {
		out = append(out, e.d)
		return true
	})
	return out
}

// Err combines every recoverable diagnostic into one error, or nil if none
// were reported.
func (h *Handler) Err() error {
	var err error
	h.sorted.Scan(func(e entry) bool {
		err = multierr.Append(err, e.d)
		return true
	})
	return err
}

// Fatal prints a fatal error message and exits if err is not nil
func Fatal(msg string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Fatal: %s: %v\n", msg, err)
	os.Exit(1)
}
