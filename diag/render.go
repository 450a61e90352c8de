// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package diag

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/width"

	"github.com/wdamron/polycheck/ast"
)

// ColorMode controls ANSI coloring of rendered diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Renderer writes diagnostics in a human-readable form, quoting source excerpts when the
// source of a span's file is known.
type Renderer struct {
	// Sources maps file names to their contents.
	Sources  map[string][]byte
	Color    ColorMode
	TabWidth int
}

// NewRenderer creates a renderer with automatic color detection.
func NewRenderer(sources map[string][]byte) *Renderer {
	return &Renderer{Sources: sources, Color: ColorAuto, TabWidth: 4}
}

// UseColor reports whether output written to w will be colored.
func (r *Renderer) UseColor(w io.Writer) bool {
	switch r.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderAll writes every diagnostic in l, followed by a summary line.
func (r *Renderer) RenderAll(w io.Writer, l *List) error {
	for _, d := range l.All() {
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	nerr, nwarn := len(l.Errors())+l.Dropped(), len(l.Warnings())
	if nerr == 0 && nwarn == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s)\n", nerr, nwarn)
	return err
}

// Render writes a single diagnostic.
func (r *Renderer) Render(w io.Writer, d *Diagnostic) error {
	color := r.UseColor(w)
	var buf bytes.Buffer

	sevColor := ansiRed
	if d.Severity == Warning {
		sevColor = ansiYellow
	}
	buf.WriteString(r.paint(color, ansiBold+sevColor, d.Severity.String()+"["+d.Code.Id()+"]"))
	buf.WriteString(r.paint(color, ansiBold, ": "+d.Message))
	buf.WriteByte('\n')

	for _, l := range d.Labels {
		r.renderLabel(&buf, color, sevColor, l)
	}
	for _, note := range d.Notes {
		buf.WriteString(r.paint(color, ansiBlue, "  = "))
		buf.WriteString("note: " + note + "\n")
	}
	if d.Help != "" {
		buf.WriteString(r.paint(color, ansiBlue, "  = "))
		buf.WriteString("help: " + d.Help + "\n")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) paint(color bool, code, s string) string {
	if !color {
		return s
	}
	return code + s + ansiReset
}

func (r *Renderer) renderLabel(buf *bytes.Buffer, color bool, sevColor string, l Label) {
	src, ok := r.Sources[l.Span.File]
	if !ok || l.Span.Start > len(src) {
		if l.Span.IsEmpty() {
			if l.Message != "" {
				buf.WriteString("  " + l.Message + "\n")
			}
			return
		}
		loc := fmt.Sprintf("%s@%d..%d", l.Span.File, l.Span.Start, l.Span.End)
		buf.WriteString(r.paint(color, ansiBlue, " --> ") + loc)
		if l.Message != "" {
			buf.WriteString(": " + l.Message)
		}
		buf.WriteByte('\n')
		return
	}

	line, lineStart, lineEnd := LineOf(src, l.Span.Start)
	text := string(src[lineStart:lineEnd])
	col := r.displayWidth(src[lineStart:l.Span.Start])
	end := l.Span.End
	if end > lineEnd {
		end = lineEnd
	}
	if end < l.Span.Start {
		end = l.Span.Start
	}
	n := r.displayWidth(src[l.Span.Start:end])
	if n == 0 {
		n = 1
	}

	lineNo := strconv.Itoa(line)
	gutter := strings.Repeat(" ", len(lineNo))
	fmt.Fprintf(buf, "%s%s%s:%d:%d\n", gutter, r.paint(color, ansiBlue, "--> "), l.Span.File, line, col+1)
	buf.WriteString(gutter + r.paint(color, ansiBlue, " |") + "\n")
	buf.WriteString(r.paint(color, ansiBlue, lineNo+" | ") + r.expandTabs(text) + "\n")

	marker, markerColor := "-", ansiBlue
	if l.Primary {
		marker, markerColor = "^", sevColor
	}
	underline := strings.Repeat(" ", col) + strings.Repeat(marker, n)
	if l.Message != "" {
		underline += " " + l.Message
	}
	buf.WriteString(gutter + r.paint(color, ansiBlue, " | ") + r.paint(color, markerColor, underline) + "\n")
}

// LineOf returns the 1-based line number containing offset, and the byte range of that line
// (excluding the line terminator).
func LineOf(src []byte, offset int) (line, start, end int) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1 + bytes.Count(src[:offset], []byte{'\n'})
	start = bytes.LastIndexByte(src[:offset], '\n') + 1
	end = bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	if end > start && src[end-1] == '\r' {
		end--
	}
	return line, start, end
}

// displayWidth returns the number of terminal columns occupied by b. East-Asian wide and
// fullwidth runes occupy two columns; tabs expand to the renderer's tab width.
func (r *Renderer) displayWidth(b []byte) int {
	n := 0
	for len(b) > 0 {
		c, size := utf8.DecodeRune(b)
		b = b[size:]
		switch {
		case c == '\t':
			n += r.tabWidth()
		case c < 0x20:
		default:
			switch width.LookupRune(c).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
	}
	return n
}

func (r *Renderer) tabWidth() int {
	if r.TabWidth <= 0 {
		return 4
	}
	return r.TabWidth
}

func (r *Renderer) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", r.tabWidth()))
}

// Location returns the `file:line:col` of span within src.
func Location(src []byte, span ast.Span) string {
	line, start, _ := LineOf(src, span.Start)
	col := utf8.RuneCount(src[start:min(span.Start, len(src))]) + 1
	return span.File + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(col)
}
