// Package logging implements the engine's logger contract: leveled
// messages emitted at every boundary crossing and recoverable error,
// with colored console output for interactive sessions and a
// structured zerolog backend for file/pipe output.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Level mirrors the logger contract in §6: INFO=0, WARN=1, ERROR=2,
// DEBUG=3, HELLO=4. HELLO is a startup/banner level, one notch above
// DEBUG, used once per process for the engine's version banner.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
	LevelDebug
	LevelHello
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelDebug:
		return "DEBUG"
	case LevelHello:
		return "HELLO"
	default:
		return "UNKNOWN"
	}
}

func (l Level) color(p termenv.Profile) termenv.Color {
	switch l {
	case LevelInfo:
		return p.Color("2") // green
	case LevelWarn:
		return p.Color("3") // yellow
	case LevelError:
		return p.Color("1") // red
	case LevelDebug:
		return p.Color("6") // cyan
	case LevelHello:
		return p.Color("5") // magenta
	default:
		return p.Color("7")
	}
}

// Logger is the engine-wide logging instance. It fans every message
// out to a colored console writer and a zerolog structured writer,
// either of which may be disabled.
type Logger struct {
	mu        sync.Mutex
	min       Level
	profile   termenv.Profile
	console   io.Writer
	zl        zerolog.Logger
	component string
}

// Config controls logger construction.
type Config struct {
	MinLevel     Level
	ConsoleOut   io.Writer // nil disables colored console output
	Structured   io.Writer // nil disables the zerolog backend
	NoColor      bool
	Component    string
}

func DefaultConfig() Config {
	return Config{MinLevel: LevelInfo, ConsoleOut: os.Stderr}
}

func New(cfg Config) *Logger {
	profile := termenv.ColorProfile()
	if cfg.NoColor {
		profile = termenv.Ascii
	}
	var zl zerolog.Logger
	if cfg.Structured != nil {
		zl = zerolog.New(cfg.Structured).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(io.Discard)
	}
	return &Logger{
		min:       cfg.MinLevel,
		profile:   profile,
		console:   cfg.ConsoleOut,
		zl:        zl,
		component: cfg.Component,
	}
}

// WithComponent returns a derived logger tagging every line with a
// component name (e.g. "scheduler", "eventbus").
func (l *Logger) WithComponent(name string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{min: l.min, profile: l.profile, console: l.console, zl: l.zl.With().Str("component", name).Logger(), component: name}
}

// severity ranks levels for MinLevel filtering, least severe first;
// the Level values follow the logger contract's numbering instead.
var severity = map[Level]int{LevelDebug: 0, LevelInfo: 1, LevelWarn: 2, LevelError: 3}

func (l *Logger) log(level Level, msg string, fields map[string]any) {
	if level != LevelHello && severity[level] < severity[l.min] {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.console != nil {
		tag := termenv.String(level.String()).Foreground(level.color(l.profile)).Bold()
		line := tag.String() + " "
		if l.component != "" {
			line += "[" + l.component + "] "
		}
		line += msg
		for k, v := range fields {
			line += " " + k + "=" + toStr(v)
		}
		io.WriteString(l.console, line+"\n")
	}

	var ev *zerolog.Event
	switch level {
	case LevelInfo, LevelHello:
		ev = l.zl.Info()
	case LevelWarn:
		ev = l.zl.Warn()
	case LevelError:
		ev = l.zl.Error()
	case LevelDebug:
		ev = l.zl.Debug()
	default:
		ev = l.zl.Info()
	}
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func toStr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (l *Logger) Info(msg string, fields ...map[string]any)  { l.log(LevelInfo, msg, merge(fields)) }
func (l *Logger) Warn(msg string, fields ...map[string]any)  { l.log(LevelWarn, msg, merge(fields)) }
func (l *Logger) Error(msg string, fields ...map[string]any) { l.log(LevelError, msg, merge(fields)) }
func (l *Logger) Debug(msg string, fields ...map[string]any) { l.log(LevelDebug, msg, merge(fields)) }
func (l *Logger) Hello(msg string, fields ...map[string]any) { l.log(LevelHello, msg, merge(fields)) }

func merge(fields []map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	return fields[0]
}

var global *Logger
var globalMu sync.RWMutex

func init() {
	global = New(DefaultConfig())
}

func SetGlobal(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

func Global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}
