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

package ast

// Pattern is the base for all patterns.
type Pattern interface {
	PatternName() string
	PatternSpan() Span
}

var (
	_ Pattern = (*WildcardPat)(nil)
	_ Pattern = (*BindPat)(nil)
	_ Pattern = (*LitPat)(nil)
	_ Pattern = (*TuplePat)(nil)
	_ Pattern = (*ListPat)(nil)
	_ Pattern = (*RecordPat)(nil)
	_ Pattern = (*CtorPat)(nil)
)

// Wildcard: `_`
type WildcardPat struct {
	Span Span
}

// Variable binding: `x`
type BindPat struct {
	Local LocalId
	Name  string
	Span  Span
}

// Literal pattern: `0`, `"a"`, `true`
type LitPat struct {
	Lit  Literal
	Span Span
}

// Tuple pattern: `(a, b)`
type TuplePat struct {
	Elems []Pattern
	Span  Span
}

// List pattern: `[a, b]`
type ListPat struct {
	Elems []Pattern
	Span  Span
}

// Field pattern within a record pattern.
type FieldPat struct {
	Name    string
	Pattern Pattern
	Span    Span
}

// Record pattern: `#{ a = x, b = _ }`
type RecordPat struct {
	Fields []FieldPat
	Span   Span
}

// Constructor pattern: `Some(x)`. The variant is selected by the number of arguments.
type CtorPat struct {
	Enum    DefId
	Variant string
	Args    []Pattern
	Span    Span
}

func (p *WildcardPat) PatternName() string { return "Wildcard" }
func (p *BindPat) PatternName() string     { return "Bind" }
func (p *LitPat) PatternName() string      { return "Literal" }
func (p *TuplePat) PatternName() string    { return "Tuple" }
func (p *ListPat) PatternName() string     { return "List" }
func (p *RecordPat) PatternName() string   { return "Record" }
func (p *CtorPat) PatternName() string     { return "Constructor" }

func (p *WildcardPat) PatternSpan() Span { return p.Span }
func (p *BindPat) PatternSpan() Span     { return p.Span }
func (p *LitPat) PatternSpan() Span      { return p.Span }
func (p *TuplePat) PatternSpan() Span    { return p.Span }
func (p *ListPat) PatternSpan() Span     { return p.Span }
func (p *RecordPat) PatternSpan() Span   { return p.Span }
func (p *CtorPat) PatternSpan() Span     { return p.Span }

// IsIrrefutable reports whether p matches every value of its type.
func IsIrrefutable(p Pattern) bool {
	switch p := p.(type) {
	case *WildcardPat, *BindPat:
		return true
	case *TuplePat:
		for _, e := range p.Elems {
			if !IsIrrefutable(e) {
				return false
			}
		}
		return true
	case *RecordPat:
		for _, f := range p.Fields {
			if !IsIrrefutable(f.Pattern) {
				return false
			}
		}
		return true
	}
	return false
}
