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

// diag provides the diagnostic vocabulary shared by the checker and its drivers.
package diag

import (
	"strings"

	"github.com/wdamron/polycheck/ast"
)

// Severity of a diagnostic.
type Severity uint8

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Code is a stable identifier for a class of diagnostics.
type Code uint8

const (
	TypeMismatch Code = iota + 1
	InfiniteType
	UnboundVariable
	MissingMethod
	MissingField
	UnknownField
	NonExhaustiveMatch
	UnreachablePattern
	UnusedVariable
	AmbiguousType
	PrivateAccess
	CyclicDependency
	MissingAssocType
	UnknownTrait
	ExtraImplItem
	Internal Code = 99
)

var codeInfo = map[Code]struct {
	id, name string
}{
	TypeMismatch:       {"E0001", "TypeMismatch"},
	InfiniteType:       {"E0002", "InfiniteType"},
	UnboundVariable:    {"E0003", "UnboundVariable"},
	MissingMethod:      {"E0004", "MissingMethod"},
	MissingField:       {"E0005", "MissingField"},
	UnknownField:       {"E0006", "UnknownField"},
	NonExhaustiveMatch: {"E0007", "NonExhaustiveMatch"},
	UnreachablePattern: {"W0008", "UnreachablePattern"},
	UnusedVariable:     {"W0009", "UnusedVariable"},
	AmbiguousType:      {"E0010", "AmbiguousType"},
	PrivateAccess:      {"E0011", "PrivateAccess"},
	CyclicDependency:   {"E0012", "CyclicDependency"},
	MissingAssocType:   {"E0013", "MissingAssocType"},
	UnknownTrait:       {"E0014", "UnknownTrait"},
	ExtraImplItem:      {"E0015", "ExtraImplItem"},
	Internal:           {"E0099", "Internal"},
}

// Id returns the stable code printed with the diagnostic, e.g. `E0001`.
func (c Code) Id() string {
	if info, ok := codeInfo[c]; ok {
		return info.id
	}
	return "E????"
}

func (c Code) String() string {
	if info, ok := codeInfo[c]; ok {
		return info.name
	}
	return "Unknown"
}

// Label attaches a message to a source span. Exactly one label of a diagnostic is primary.
type Label struct {
	Span    ast.Span
	Message string
	Primary bool
}

// Diagnostic is a single positioned error or warning.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Labels   []Label
	Notes    []string
	Help     string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(d.Severity.String())
	sb.WriteByte('[')
	sb.WriteString(d.Code.Id())
	sb.WriteString("]: ")
	sb.WriteString(d.Message)
	return sb.String()
}

// Span returns the span of the primary label, or an empty span.
func (d *Diagnostic) Span() ast.Span {
	for _, l := range d.Labels {
		if l.Primary {
			return l.Span
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Span
	}
	return ast.Span{}
}

// New creates an error diagnostic with a primary label.
func New(code Code, span ast.Span, message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  message,
		Labels:   []Label{{Span: span, Primary: true}},
	}
}

// NewWarning creates a warning diagnostic with a primary label.
func NewWarning(code Code, span ast.Span, message string) *Diagnostic {
	d := New(code, span, message)
	d.Severity = Warning
	return d
}

// WithLabel adds a secondary label.
func (d *Diagnostic) WithLabel(span ast.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

// WithPrimaryMessage sets the message of the primary label.
func (d *Diagnostic) WithPrimaryMessage(message string) *Diagnostic {
	for i := range d.Labels {
		if d.Labels[i].Primary {
			d.Labels[i].Message = message
		}
	}
	return d
}

// WithNote appends a note.
func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp sets the help text.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}
