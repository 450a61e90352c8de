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

package construct

import (
	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/types"
)

// Types

// Generic parameter reference: `T`
func TParam(index int, name string) *types.Param {
	return &types.Param{Index: index, Name: name}
}

// Named type: `Option<Int>`
func TNamed(def ast.DefId, args ...types.Type) *types.Named {
	return &types.Named{Def: def, Args: args}
}

// List type: `List<Int>`
func TList(elem types.Type) *types.Named {
	return types.NewList(elem)
}

// Function type: `(Int, Int) -> Int`
func TFn(params []types.Type, ret types.Type) *types.Fn {
	return &types.Fn{Params: params, Ret: ret}
}

// Function type: `(Int) -> Int`
func TFn1(param types.Type, ret types.Type) *types.Fn {
	return &types.Fn{Params: []types.Type{param}, Ret: ret}
}

// Tuple type: `(Int, Bool)`
func TTuple(elems ...types.Type) *types.Tuple {
	return &types.Tuple{Elems: elems}
}

// Record type: `#{ a: Int, b: Bool }`
func TRecord(fields map[string]types.Type) *types.Record {
	return types.NewRecord(fields)
}

// Expressions:

// Integer literal
func Int(value string) *ast.Literal { return &ast.Literal{Kind: ast.IntLit, Value: value} }

// Floating-point literal
func Float(value string) *ast.Literal { return &ast.Literal{Kind: ast.FloatLit, Value: value} }

// String literal
func Str(value string) *ast.Literal { return &ast.Literal{Kind: ast.StringLit, Value: value} }

// Boolean literal
func Bool(value bool) *ast.Literal {
	if value {
		return &ast.Literal{Kind: ast.BoolLit, Value: "true"}
	}
	return &ast.Literal{Kind: ast.BoolLit, Value: "false"}
}

// Unit literal: `()`
func Unit() *ast.Literal { return &ast.Literal{Kind: ast.UnitLit, Value: "()"} }

// Local variable reference
func Local(id ast.LocalId) *ast.LocalRef { return &ast.LocalRef{Id: id} }

// Module-level definition reference
func Global(def ast.DefId) *ast.GlobalRef { return &ast.GlobalRef{Def: def} }

// List literal: `[a, b, c]`
func List(elems ...ast.Expr) *ast.List { return &ast.List{Elems: elems} }

// Tuple literal: `(a, b)`
func Tuple(elems ...ast.Expr) *ast.TupleLit { return &ast.TupleLit{Elems: elems} }

// Field initializer: `a = value`
func Init(name string, value ast.Expr) ast.FieldInit { return ast.FieldInit{Name: name, Value: value} }

// Record literal: `#{ a = 1, b = 2 }`
func Record(fields ...ast.FieldInit) *ast.RecordLit { return &ast.RecordLit{Fields: fields} }

// Struct literal: `Point { x = 1, y = 2 }`
func StructLit(def ast.DefId, fields ...ast.FieldInit) *ast.StructLit {
	return &ast.StructLit{Struct: def, Fields: fields}
}

// Variant construction: `Some(x)`
func Variant(enum ast.DefId, name string, args ...ast.Expr) *ast.VariantLit {
	return &ast.VariantLit{Enum: enum, Variant: name, Args: args}
}

// Parameter without an annotation
func P(id ast.LocalId, name string) ast.Param {
	return ast.Param{Local: id, Name: name, Type: types.Unknown{}}
}

// Annotated parameter: `x: Int`
func PT(id ast.LocalId, name string, t types.Type) ast.Param {
	return ast.Param{Local: id, Name: name, Type: t}
}

// Abstraction: `fn (x, y) body`
func Lambda(params []ast.Param, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Params: params, Body: body}
}

// Application: `f(x)`
func Call(f ast.Expr, args ...ast.Expr) *ast.Call { return &ast.Call{Callee: f, Args: args} }

// Method call: `x.len()`
func Method(recv ast.Expr, name string, args ...ast.Expr) *ast.MethodCall {
	return &ast.MethodCall{Receiver: recv, Method: name, Args: args}
}

// Field access: `r.a`
func Field(base ast.Expr, name string) *ast.FieldAccess {
	return &ast.FieldAccess{Base: base, Field: name}
}

// Tuple index: `t.0`
func Index(base ast.Expr, i int) *ast.TupleIndex { return &ast.TupleIndex{Base: base, Index: i} }

// Binary operation: `a + b`
func Bin(op ast.BinOp, left, right ast.Expr) *ast.Binary {
	return &ast.Binary{Op: op, Left: left, Right: right}
}

// Unary operation: `-x`, `not b`
func Un(op ast.UnOp, operand ast.Expr) *ast.Unary { return &ast.Unary{Op: op, Operand: operand} }

// Conditional: `if c then a else b`
func If(cond, then, els ast.Expr) *ast.If { return &ast.If{Cond: cond, Then: then, Else: els} }

// Match arm: `pattern -> body`
func Arm(p ast.Pattern, body ast.Expr) ast.Arm { return ast.Arm{Pattern: p, Body: body} }

// Guarded match arm: `pattern if guard -> body`
func GuardArm(p ast.Pattern, guard, body ast.Expr) ast.Arm {
	return ast.Arm{Pattern: p, Guard: guard, Body: body}
}

// Pattern match: `match x { ... }`
func Match(scrutinee ast.Expr, arms ...ast.Arm) *ast.Match {
	return &ast.Match{Scrutinee: scrutinee, Arms: arms}
}

// Block: `{ stmts; tail }`
func Block(tail ast.Expr, stmts ...ast.Stmt) *ast.Block { return &ast.Block{Stmts: stmts, Tail: tail} }

// Let-binding: `let x = value;`
func Let(id ast.LocalId, name string, value ast.Expr) *ast.Let {
	return &ast.Let{Pattern: BindP(id, name), Value: value}
}

// Annotated let-binding: `let x: T = value;`
func LetT(id ast.LocalId, name string, t types.Type, value ast.Expr) *ast.Let {
	return &ast.Let{Pattern: BindP(id, name), Type: t, Value: value}
}

// Destructuring let-binding: `let (a, b) = value;`
func LetP(p ast.Pattern, value ast.Expr) *ast.Let { return &ast.Let{Pattern: p, Value: value} }

// Expression statement: `f(x);`
func Do(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

// Type ascription: `(e : T)`
func Ascribe(e ast.Expr, t types.Type) *ast.Ascribe { return &ast.Ascribe{Expr: e, Type: t} }

// Patterns:

// Wildcard: `_`
func Wild() *ast.WildcardPat { return &ast.WildcardPat{} }

// Variable binding: `x`
func BindP(id ast.LocalId, name string) *ast.BindPat { return &ast.BindPat{Local: id, Name: name} }

// Literal pattern: `0`
func LitP(lit *ast.Literal) *ast.LitPat { return &ast.LitPat{Lit: *lit} }

// Tuple pattern: `(a, b)`
func TupleP(elems ...ast.Pattern) *ast.TuplePat { return &ast.TuplePat{Elems: elems} }

// List pattern: `[a, b]`
func ListP(elems ...ast.Pattern) *ast.ListPat { return &ast.ListPat{Elems: elems} }

// Field pattern: `a = p`
func FieldP(name string, p ast.Pattern) ast.FieldPat { return ast.FieldPat{Name: name, Pattern: p} }

// Record pattern: `#{ a = x }`
func RecordP(fields ...ast.FieldPat) *ast.RecordPat { return &ast.RecordPat{Fields: fields} }

// Constructor pattern: `Some(x)`
func CtorP(enum ast.DefId, variant string, args ...ast.Pattern) *ast.CtorPat {
	return &ast.CtorPat{Enum: enum, Variant: variant, Args: args}
}

// Items:

// Generic parameters: `<T, U>`
func Generics(names ...string) []ast.Generic {
	gs := make([]ast.Generic, len(names))
	for i, name := range names {
		gs[i] = ast.Generic{Name: name}
	}
	return gs
}

// Function item without a return annotation: `fn f(x) = body`
func Fn(def ast.DefId, name string, params []ast.Param, body ast.Expr) *ast.Function {
	return &ast.Function{Id: def, Name: name, Params: params, Ret: types.Unknown{}, Body: body}
}

// Function item with a return annotation: `fn f(x) -> T = body`
func FnT(def ast.DefId, name string, params []ast.Param, ret types.Type, body ast.Expr) *ast.Function {
	return &ast.Function{Id: def, Name: name, Params: params, Ret: ret, Body: body}
}

// Struct field declaration: `x: Int`
func StructField(name string, t types.Type) ast.Field { return ast.Field{Name: name, Type: t} }

// Struct item: `struct Point { x: Int, y: Int }`
func Struct(def ast.DefId, name string, generics []ast.Generic, fields ...ast.Field) *ast.Struct {
	return &ast.Struct{Id: def, Name: name, Generics: generics, Fields: fields}
}

// Enum variant declaration: `Some(T)`
func V(name string, fields ...types.Type) ast.Variant { return ast.Variant{Name: name, Fields: fields} }

// Enum item: `enum Option<T> { None, Some(T) }`
func Enum(def ast.DefId, name string, generics []ast.Generic, variants ...ast.Variant) *ast.Enum {
	return &ast.Enum{Id: def, Name: name, Generics: generics, Variants: variants}
}

// Type alias item: `type Pair<A> = (A, A)`
func Alias(def ast.DefId, name string, generics []ast.Generic, target types.Type) *ast.TypeAlias {
	return &ast.TypeAlias{Id: def, Name: name, Generics: generics, Target: target}
}

// Trait method declaration: `fn show(self: Self) -> String`
func TraitMethod(name string, params []types.Type, ret types.Type, hasDefault bool) ast.TraitMethod {
	return ast.TraitMethod{Name: name, Params: params, Ret: ret, HasDefault: hasDefault}
}

// Trait item
func Trait(def ast.DefId, name string, methods []ast.TraitMethod, assocTypes ...ast.AssocType) *ast.Trait {
	return &ast.Trait{Id: def, Name: name, Methods: methods, AssocTypes: assocTypes}
}

// Trait impl: `impl Trait for Self { ... }`
func Impl(def, trait ast.DefId, self types.Type, methods ...ast.ImplMethod) *ast.Impl {
	return &ast.Impl{Id: def, Trait: &trait, Self: self, Methods: methods}
}

// Inherent impl: `impl Self { ... }`
func InherentImpl(def ast.DefId, self types.Type, methods ...ast.ImplMethod) *ast.Impl {
	return &ast.Impl{Id: def, Self: self, Methods: methods}
}

// Impl method, implemented by the function item fn
func ImplMethod(name string, fn ast.DefId) ast.ImplMethod { return ast.ImplMethod{Name: name, Func: fn} }

// Module
func Module(items ...ast.Item) *ast.Module { return &ast.Module{Items: items} }
