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

// List holds diagnostics in emission order.
//
// When a limit is set, errors beyond the limit are counted but not recorded; warnings are
// always recorded.
type List struct {
	items   []*Diagnostic
	limit   int
	errors  int
	dropped int
}

// NewList creates a list which records at most maxErrors errors (unlimited when maxErrors <= 0).
func NewList(maxErrors int) *List { return &List{limit: maxErrors} }

// Add records d.
func (l *List) Add(d *Diagnostic) {
	if d.Severity == Error {
		l.errors++
		if l.limit > 0 && l.errors > l.limit {
			l.dropped++
			return
		}
	}
	l.items = append(l.items, d)
}

// All returns every recorded diagnostic.
func (l *List) All() []*Diagnostic { return l.items }

// Len returns the number of recorded diagnostics.
func (l *List) Len() int { return len(l.items) }

// Errors returns the recorded errors.
func (l *List) Errors() []*Diagnostic { return l.filter(Error) }

// Warnings returns the recorded warnings.
func (l *List) Warnings() []*Diagnostic { return l.filter(Warning) }

// HasErrors reports whether any error was emitted, including dropped ones.
func (l *List) HasErrors() bool { return l.errors > 0 }

// Dropped returns the number of errors which were not recorded due to the limit.
func (l *List) Dropped() int { return l.dropped }

// WithCode returns the recorded diagnostics with the given code.
func (l *List) WithCode(code Code) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range l.items {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func (l *List) filter(sev Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range l.items {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}
