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

package types

import (
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

type typePrinter struct {
	defName func(DefId) string
	sb      strings.Builder
}

func newTypePrinter(defName func(DefId) string) *typePrinter {
	p := printerPool.Get().(*typePrinter)
	p.defName = defName
	return p
}

func (p *typePrinter) Release() {
	p.defName = nil
	p.sb.Reset()
	printerPool.Put(p)
}

// Printer renders types, resolving the names of user-defined types through DefName.
type Printer struct {
	// DefName returns the display name of a named type. When nil (or when it returns an
	// empty string), def ids are printed as `#<id>`.
	DefName func(DefId) string
}

// String returns a string representation of t.
func (pr Printer) String(t Type) string {
	p := newTypePrinter(pr.DefName)
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// TypeString returns a string representation of a Type.
func TypeString(t Type) string { return Printer{}.String(t) }

// VarName returns the printed name of the type-variable with the given id.
func VarName(id int) string { return "'_" + strconv.Itoa(id) }

// GenericName returns the name assigned to the i-th variable quantified by a generalized type.
func GenericName(i int) string {
	name := "'" + string(rune('a'+i%26))
	if i >= 26 {
		name += strconv.Itoa(i / 26)
	}
	return name
}

func (p *typePrinter) name(id DefId) string {
	if id == ListDef {
		return "List"
	}
	if p.defName != nil {
		if name := p.defName(id); name != "" {
			return name
		}
	}
	return id.String()
}

func typeString(p *typePrinter, t Type) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case Prim:
		p.sb.WriteString(t.String())

	case Unknown:
		p.sb.WriteByte('_')

	case *Var:
		p.sb.WriteString(VarName(t.Id))

	case *Param:
		if t.Name != "" {
			p.sb.WriteString(t.Name)
		} else {
			p.sb.WriteString("'p" + strconv.Itoa(t.Index))
		}

	case *Named:
		p.sb.WriteString(p.name(t.Def))
		if len(t.Args) == 0 {
			return
		}
		p.sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, arg)
		}
		p.sb.WriteByte('>')

	case *Fn:
		p.sb.WriteByte('(')
		for i, param := range t.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, param)
		}
		p.sb.WriteString(") -> ")
		typeString(p, t.Ret)

	case *Tuple:
		p.sb.WriteByte('(')
		for i, elem := range t.Elems {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, elem)
		}
		if len(t.Elems) == 1 {
			p.sb.WriteByte(',')
		}
		p.sb.WriteByte(')')

	case *Record:
		if t.Fields.Len() == 0 {
			p.sb.WriteString("#{}")
			return
		}
		p.sb.WriteString("#{ ")
		i := 0
		t.Fields.Range(func(label string, ft Type) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(label)
			p.sb.WriteString(": ")
			typeString(p, ft)
			i++
			return true
		})
		p.sb.WriteString(" }")

	case *Forall:
		p.sb.WriteString("forall")
		for _, name := range t.Names {
			p.sb.WriteByte(' ')
			p.sb.WriteString(name)
		}
		p.sb.WriteString(". ")
		typeString(p, t.Body)

	default:
		p.sb.WriteString("<" + t.TypeName() + ">")
	}
}
