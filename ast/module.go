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

import (
	"github.com/wdamron/polycheck/types"
)

type (
	DefId   = types.DefId
	LocalId = types.LocalId
)

// Span is a half-open byte range within a source file.
type Span struct {
	File  string
	Start int
	End   int
}

// IsEmpty reports whether the span carries no location.
func (s Span) IsEmpty() bool { return s.Start == 0 && s.End == 0 && s.File == "" }

// Module is a fully name-resolved module. Every reference within the module is a DefId or a
// LocalId; the checker performs no textual lookups.
type Module struct {
	Items []Item
}

// Item is the base for all module-level items.
type Item interface {
	// Name of the syntax-type of the item.
	ItemName() string
	// Def returns the resolver-assigned id of the item.
	Def() DefId
	ItemSpan() Span
}

var (
	_ Item = (*Function)(nil)
	_ Item = (*Struct)(nil)
	_ Item = (*Enum)(nil)
	_ Item = (*TypeAlias)(nil)
	_ Item = (*Trait)(nil)
	_ Item = (*Impl)(nil)
)

// Generic parameter of an item. Within the item, the parameter is referenced as
// types.Param{Index: <position>, Name: Name}.
type Generic struct {
	Name string
}

// Function parameter. Type is types.Unknown{} when the parameter is not annotated.
type Param struct {
	Local LocalId
	Name  string
	Type  types.Type
	Span  Span
}

// Function item: `fn f<T>(x: T) -> T = body`
type Function struct {
	Id       DefId
	Name     string
	Span     Span
	Generics []Generic
	Params   []Param
	// Ret is types.Unknown{} when the return type is not annotated.
	Ret  types.Type
	Body Expr
}

// Struct field declaration.
type Field struct {
	Name string
	Type types.Type
	Span Span
}

// Struct item: `struct Point { x: Int, y: Int }`
type Struct struct {
	Id       DefId
	Name     string
	Span     Span
	Generics []Generic
	Fields   []Field
}

// Enum variant declaration: `Some(T)`
type Variant struct {
	Name   string
	Fields []types.Type
	Span   Span
}

// Enum item: `enum Option<T> { None, Some(T) }`
type Enum struct {
	Id       DefId
	Name     string
	Span     Span
	Generics []Generic
	Variants []Variant
}

// Type alias item: `type Pair<A> = (A, A)`
type TypeAlias struct {
	Id       DefId
	Name     string
	Span     Span
	Generics []Generic
	Target   types.Type
}

// Trait method declaration. The implementing type is referenced as types.SelfParam.
type TraitMethod struct {
	Name       string
	Params     []types.Type
	Ret        types.Type
	HasDefault bool
	Span       Span
}

// Associated type declaration: `type Item: Bound = Default`
type AssocType struct {
	Name   string
	Bounds []DefId
	// Default is nil when the trait provides no default.
	Default types.Type
	Span    Span
}

// Trait item.
type Trait struct {
	Id         DefId
	Name       string
	Span       Span
	Methods    []TraitMethod
	AssocTypes []AssocType
}

// Method provided by an impl block. The method body is the function item Func.
type ImplMethod struct {
	Name string
	Func DefId
	Span Span
}

// Associated type binding provided by an impl block: `type Item = Int`
type AssocBinding struct {
	Name string
	Type types.Type
	Span Span
}

// Impl item: `impl Trait for Self { ... }` or `impl Self { ... }`.
type Impl struct {
	Id DefId
	// Trait is nil for inherent impls.
	Trait      *DefId
	Self       types.Type
	Span       Span
	Generics   []Generic
	Methods    []ImplMethod
	AssocTypes []AssocBinding
}

func (i *Function) ItemName() string  { return "Function" }
func (i *Struct) ItemName() string    { return "Struct" }
func (i *Enum) ItemName() string      { return "Enum" }
func (i *TypeAlias) ItemName() string { return "TypeAlias" }
func (i *Trait) ItemName() string     { return "Trait" }
func (i *Impl) ItemName() string      { return "Impl" }

func (i *Function) Def() DefId  { return i.Id }
func (i *Struct) Def() DefId    { return i.Id }
func (i *Enum) Def() DefId      { return i.Id }
func (i *TypeAlias) Def() DefId { return i.Id }
func (i *Trait) Def() DefId     { return i.Id }
func (i *Impl) Def() DefId      { return i.Id }

func (i *Function) ItemSpan() Span  { return i.Span }
func (i *Struct) ItemSpan() Span    { return i.Span }
func (i *Enum) ItemSpan() Span      { return i.Span }
func (i *TypeAlias) ItemSpan() Span { return i.Span }
func (i *Trait) ItemSpan() Span     { return i.Span }
func (i *Impl) ItemSpan() Span      { return i.Span }

// IsInherent reports whether the impl is not tied to a trait.
func (i *Impl) IsInherent() bool { return i.Trait == nil }
