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

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

var (
	_ Type = Prim(0)
	_ Type = (*Var)(nil)
	_ Type = (*Param)(nil)
	_ Type = (*Named)(nil)
	_ Type = (*Fn)(nil)
	_ Type = (*Tuple)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*Forall)(nil)
	_ Type = Unknown{}
)

func (t Prim) TypeName() string    { return "Prim" }
func (t *Var) TypeName() string    { return "Var" }
func (t *Param) TypeName() string  { return "Param" }
func (t *Named) TypeName() string  { return "Named" }
func (t *Fn) TypeName() string     { return "Fn" }
func (t *Tuple) TypeName() string  { return "Tuple" }
func (t *Record) TypeName() string { return "Record" }
func (t *Forall) TypeName() string { return "Forall" }
func (t Unknown) TypeName() string { return "Unknown" }

// Primitive type: `Int`, `Bool`, etc
type Prim uint8

const (
	Int Prim = iota
	Float
	Bool
	Char
	String
	Unit
)

var primNames = [...]string{"Int", "Float", "Bool", "Char", "String", "Unit"}

func (t Prim) String() string {
	if int(t) < len(primNames) {
		return primNames[t]
	}
	return "Prim?"
}

// IsNumeric reports whether t is Int or Float.
func (t Prim) IsNumeric() bool { return t == Int || t == Float }

// Unification variable, solved through a substitution.
type Var struct {
	Id int
}

// Reference to a generic parameter bound by an enclosing signature, or to a variable
// quantified by an enclosing Forall.
type Param struct {
	Index int
	Name  string
}

// SelfParam stands for the implementing type within trait method signatures.
var SelfParam = &Param{Index: -1, Name: "Self"}

// IsSelf reports whether p refers to the implementing type of a trait.
func (p *Param) IsSelf() bool { return p.Index == -1 }

// User-defined (possibly generic) type: `Option<Int>`
type Named struct {
	Def  DefId
	Args []Type
}

// Function type: `(Int, Int) -> Int`
type Fn struct {
	Params []Type
	Ret    Type
}

// Tuple type: `(Int, Bool)`
type Tuple struct {
	Elems []Type
}

// Record type: `#{ a: Int, b: Bool }`
type Record struct {
	Fields FieldMap
}

// Polymorphic type scheme: `forall 'a. ('a) -> 'a`
//
// Bound occurrences within Body are Params whose Index refers to a position in Names.
type Forall struct {
	Names []string
	Body  Type
}

// Placeholder for a type which has not been inferred yet.
type Unknown struct{}

// NewList returns the builtin list type with the given element type.
func NewList(elem Type) *Named { return &Named{Def: ListDef, Args: []Type{elem}} }

// ListElem returns the element type of a builtin list type.
func ListElem(t Type) (Type, bool) {
	n, ok := t.(*Named)
	if !ok || n.Def != ListDef || len(n.Args) != 1 {
		return nil, false
	}
	return n.Args[0], true
}

// NewRecord creates a record type from unscoped labels.
func NewRecord(fields map[string]Type) *Record {
	return &Record{Fields: NewFieldMap(fields)}
}

// IsKnown reports whether t contains no Unknown placeholder.
func IsKnown(t Type) bool {
	known := true
	Visit(t, func(t Type) bool {
		if _, ok := t.(Unknown); ok {
			known = false
		}
		return known
	})
	return known
}

// Visit calls f for t and each of its component types, depth-first.
// If f returns false, the components of the visited type are skipped.
func Visit(t Type, f func(Type) bool) {
	if t == nil || !f(t) {
		return
	}
	switch t := t.(type) {
	case *Named:
		for _, arg := range t.Args {
			Visit(arg, f)
		}
	case *Fn:
		for _, p := range t.Params {
			Visit(p, f)
		}
		Visit(t.Ret, f)
	case *Tuple:
		for _, e := range t.Elems {
			Visit(e, f)
		}
	case *Record:
		t.Fields.Range(func(_ string, ft Type) bool {
			Visit(ft, f)
			return true
		})
	case *Forall:
		Visit(t.Body, f)
	}
}

// Map rebuilds t bottom-up, replacing each component type with the result of f.
// Types which f leaves unchanged are shared with the original.
func Map(t Type, f func(Type) Type) Type {
	switch t := t.(type) {
	case *Named:
		if len(t.Args) == 0 {
			return f(t)
		}
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = Map(arg, f)
		}
		return f(&Named{Def: t.Def, Args: args})
	case *Fn:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Map(p, f)
		}
		return f(&Fn{Params: params, Ret: Map(t.Ret, f)})
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Map(e, f)
		}
		return f(&Tuple{Elems: elems})
	case *Record:
		b := NewFieldMapBuilder()
		t.Fields.Range(func(label string, ft Type) bool {
			b.Set(label, Map(ft, f))
			return true
		})
		return f(&Record{Fields: b.Build()})
	case *Forall:
		return f(&Forall{Names: t.Names, Body: Map(t.Body, f)})
	}
	return f(t)
}

// SubstParams replaces each Param with a non-negative index below len(args) by the
// corresponding argument. Other params (including Self) are left untouched.
func SubstParams(t Type, args []Type) Type {
	if len(args) == 0 {
		return t
	}
	return Map(t, func(t Type) Type {
		if p, ok := t.(*Param); ok && p.Index >= 0 && p.Index < len(args) {
			return args[p.Index]
		}
		return t
	})
}

// SubstSelf replaces every occurrence of SelfParam with self.
func SubstSelf(t Type, self Type) Type {
	return Map(t, func(t Type) Type {
		if p, ok := t.(*Param); ok && p.IsSelf() {
			return self
		}
		return t
	})
}
