// Copyright 2026 The ringhearts Authors
// This file is part of the ringhearts library.
//
// The ringhearts library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ringhearts library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ringhearts library. If not, see <http://www.gnu.org/licenses/>.

// Package log provides leveled, structured, colorized logging for every
// peer process, in the key=value console style used throughout the
// codebase this project is grounded on.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
)

// Level is a logging severity, ordered from most to least verbose.
type Level int

const (
	LvlTrace Level = iota
	LvlDebug
	LvlInfo
	LvlWarn
	LvlError
	LvlCrit
)

var levelNames = map[Level]string{
	LvlTrace: "TRACE",
	LvlDebug: "DEBUG",
	LvlInfo:  "INFO",
	LvlWarn:  "WARN",
	LvlError: "ERROR",
	LvlCrit:  "CRIT",
}

var levelColors = map[Level]*color.Color{
	LvlTrace: color.New(color.FgHiBlack),
	LvlDebug: color.New(color.FgBlue),
	LvlInfo:  color.New(color.FgGreen),
	LvlWarn:  color.New(color.FgYellow),
	LvlError: color.New(color.FgRed),
	LvlCrit:  color.New(color.FgHiRed, color.Bold),
}

// Logger writes leveled, key=value structured lines. The zero value is not
// usable; use New.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	color  bool
	ctx    []interface{} // sticky key=value pairs, e.g. peer id, session id
	caller bool
}

// New returns a Logger writing to stderr, colorized when the stream is a
// terminal.
func New() *Logger {
	return &Logger{
		out:   colorable.NewColorableStderr(),
		level: LvlInfo,
		color: true,
	}
}

// SetLevel adjusts the minimum severity that is emitted.
func (l *Logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = lvl
}

// SetCallerInfo toggles appending the call site (via go-stack/stack) to
// every line; useful when debugging ring-traversal bugs.
func (l *Logger) SetCallerInfo(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.caller = on
}

// New returns a derived logger carrying additional sticky context, e.g.
// l.New("peer", id) so every subsequent line includes peer=<id>.
func (l *Logger) New(ctx ...interface{}) *Logger {
	child := &Logger{
		out:    l.out,
		level:  l.level,
		color:  l.color,
		caller: l.caller,
		ctx:    append(append([]interface{}{}, l.ctx...), ctx...),
	}
	return child
}

func (l *Logger) write(lvl Level, msg string, kv []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lvl < l.level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000")
	name := levelNames[lvl]
	var line string
	if l.color {
		line = fmt.Sprintf("%s [%s] %s", ts, levelColors[lvl].Sprint(name), msg)
	} else {
		line = fmt.Sprintf("%s [%s] %s", ts, name, msg)
	}
	all := append(append([]interface{}{}, l.ctx...), kv...)
	for i := 0; i+1 < len(all); i += 2 {
		line += fmt.Sprintf(" %v=%v", all[i], all[i+1])
	}
	if l.caller {
		c := stack.Caller(2)
		line += fmt.Sprintf(" at=%+v", c)
	}
	fmt.Fprintln(l.out, line)
	if lvl == LvlCrit {
		os.Exit(1)
	}
}

func (l *Logger) Trace(msg string, kv ...interface{}) { l.write(LvlTrace, msg, kv) }
func (l *Logger) Debug(msg string, kv ...interface{}) { l.write(LvlDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.write(LvlInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.write(LvlWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.write(LvlError, msg, kv) }

// Crit logs at critical severity and terminates the process. The only
// fatal error class this project defines is a socket-open failure at
// startup.
func (l *Logger) Crit(msg string, kv ...interface{}) { l.write(LvlCrit, msg, kv) }

// Root is the default logger used when no more specific Logger has been
// threaded through.
var Root = New()

func Trace(msg string, kv ...interface{}) { Root.Trace(msg, kv...) }
func Debug(msg string, kv ...interface{}) { Root.Debug(msg, kv...) }
func Info(msg string, kv ...interface{})  { Root.Info(msg, kv...) }
func Warn(msg string, kv ...interface{})  { Root.Warn(msg, kv...) }
func Error(msg string, kv ...interface{}) { Root.Error(msg, kv...) }
func Crit(msg string, kv ...interface{})  { Root.Crit(msg, kv...) }
