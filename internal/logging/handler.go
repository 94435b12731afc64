// Package logging builds the slog handlers used by the huff command: a
// coloured terminal format for interactive use and a JSON format written to
// a rotating log file.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
	"unicode"

	"github.com/fatih/color"
)

// Levels beyond the four built into slog.
const (
	LevelTrace slog.Level = -8
	LevelCrit  slog.Level = 12
)

const (
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

// LevelString returns the 5-character aligned name of l.
func LevelString(l slog.Level) string {
	switch {
	case l <= LevelTrace:
		return "TRACE"
	case l <= slog.LevelDebug:
		return "DEBUG"
	case l <= slog.LevelInfo:
		return "INFO "
	case l <= slog.LevelWarn:
		return "WARN "
	case l <= slog.LevelError:
		return "ERROR"
	default:
		return "CRIT "
	}
}

var levelColor = map[string]*color.Color{
	"TRACE": color.New(color.FgBlue),
	"DEBUG": color.New(color.FgCyan),
	"INFO ": color.New(color.FgGreen),
	"WARN ": color.New(color.FgYellow),
	"ERROR": color.New(color.FgRed),
	"CRIT ": color.New(color.FgMagenta),
}

func init() {
	// Colouring is decided per handler, not by fatih/color's stdout check.
	for _, c := range levelColor {
		c.EnableColor()
	}
}

// TerminalHandler writes records in a human readable format:
//
//	INFO [10-18|21:51:02.117] Encoded stream                  size=1024 packed=612
type TerminalHandler struct {
	mu       *sync.Mutex
	w        io.Writer
	level    slog.Leveler
	useColor bool

	prefix string
	attrs  []byte
}

// NewTerminalHandler returns a handler writing records at or above level to w.
func NewTerminalHandler(w io.Writer, level slog.Leveler, useColor bool) *TerminalHandler {
	return &TerminalHandler{mu: new(sync.Mutex), w: w, level: level, useColor: useColor}
}

func (h *TerminalHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	lvl := LevelString(r.Level)
	if h.useColor {
		lvl = levelColor[lvl].Sprint(lvl)
	}
	buf.WriteString(lvl)
	buf.WriteString(" [")
	buf.WriteString(r.Time.Format(termTimeFormat))
	buf.WriteString("] ")
	buf.WriteString(r.Message)

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		if pad := termMsgJust - len(r.Message); pad > 0 {
			buf.Write(bytes.Repeat([]byte{' '}, pad))
		}
		buf.Write(h.attrs)
		r.Attrs(func(a slog.Attr) bool {
			h.appendAttr(&buf, h.prefix, a)
			return true
		})
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	buf.Write(h.attrs)
	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, a)
	}
	h2 := *h
	h2.attrs = buf.Bytes()
	return &h2
}

func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *TerminalHandler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, g := range a.Value.Group() {
			h.appendAttr(buf, prefix, g)
		}
		return
	}
	buf.WriteByte(' ')
	key := prefix + a.Key
	if h.useColor {
		key = levelColor["DEBUG"].Sprint(key)
	}
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return quoteIfNeeded(v.String())
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', 3, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return quoteIfNeeded(err.Error())
		}
		return quoteIfNeeded(fmt.Sprint(v.Any()))
	default:
		return v.String()
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}
	return s
}
