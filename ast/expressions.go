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

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	ExprSpan() Span
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*LocalRef)(nil)
	_ Expr = (*GlobalRef)(nil)
	_ Expr = (*List)(nil)
	_ Expr = (*RecordLit)(nil)
	_ Expr = (*TupleLit)(nil)
	_ Expr = (*StructLit)(nil)
	_ Expr = (*VariantLit)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*MethodCall)(nil)
	_ Expr = (*FieldAccess)(nil)
	_ Expr = (*TupleIndex)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*Ascribe)(nil)
)

// LitKind is the syntactic class of a literal.
type LitKind uint8

const (
	IntLit LitKind = iota
	FloatLit
	BoolLit
	CharLit
	StringLit
	UnitLit
)

// Type returns the fixed primitive type of literals of kind k.
func (k LitKind) Type() types.Prim {
	switch k {
	case IntLit:
		return types.Int
	case FloatLit:
		return types.Float
	case BoolLit:
		return types.Bool
	case CharLit:
		return types.Char
	case StringLit:
		return types.String
	}
	return types.Unit
}

// Literal value: `1`, `"a"`, `true`
type Literal struct {
	Kind  LitKind
	Value string
	Span  Span
}

// Reference to a local binding.
type LocalRef struct {
	Id   LocalId
	Span Span
}

// Reference to a module-level definition.
type GlobalRef struct {
	Def  DefId
	Span Span
}

// List literal: `[1, 2, 3]`
type List struct {
	Elems []Expr
	Span  Span
}

// Field initializer within a record or struct literal.
type FieldInit struct {
	Name  string
	Value Expr
	Span  Span
}

// Record literal: `#{ a = 1, b = 2 }`
type RecordLit struct {
	Fields []FieldInit
	Span   Span
}

// Tuple literal: `(1, "a")`
type TupleLit struct {
	Elems []Expr
	Span  Span
}

// Struct literal: `Point { x = 1, y = 2 }`
type StructLit struct {
	Struct DefId
	Fields []FieldInit
	Span   Span
}

// Enum variant construction: `Some(1)`
type VariantLit struct {
	Enum    DefId
	Variant string
	Args    []Expr
	Span    Span
}

// Abstraction: `fn(x, y) x`
type Lambda struct {
	Params []Param
	Body   Expr
	Span   Span
}

// Application: `f(x)`
type Call struct {
	Callee Expr
	Args   []Expr
	Span   Span
}

// Method call: `x.len()`
type MethodCall struct {
	Receiver Expr
	Method   string
	Args     []Expr
	Span     Span
}

// Field access: `p.x`
type FieldAccess struct {
	Base  Expr
	Field string
	Span  Span
}

// Tuple index: `t.0`
type TupleIndex struct {
	Base  Expr
	Index int
	Span  Span
}

// Binary operator.
type BinOp uint8

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Concat
	Pipe
)

var binOpNames = [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "and", "or", "++", "|>"}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// Binary operation: `a + b`
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
	Span  Span
}

// Unary operator.
type UnOp uint8

const (
	Neg UnOp = iota
	Not
)

func (op UnOp) String() string {
	if op == Neg {
		return "-"
	}
	return "not"
}

// Unary operation: `-x`, `not b`
type Unary struct {
	Op      UnOp
	Operand Expr
	Span    Span
}

// Conditional: `if c then a else b`. Else may be nil, in which case both branches are Unit.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

// Match arm: `pattern if guard -> body`. Guard may be nil.
type Arm struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
	Span    Span
}

// Pattern match: `match x { ... }`
type Match struct {
	Scrutinee Expr
	Arms      []Arm
	Span      Span
}

// Block: `{ stmts; tail }`. Tail may be nil, in which case the block is Unit.
type Block struct {
	Stmts []Stmt
	Tail  Expr
	Span  Span
}

// Type ascription: `(e : T)`
type Ascribe struct {
	Expr Expr
	Type types.Type
	Span Span
}

func (e *Literal) ExprName() string     { return "Literal" }
func (e *LocalRef) ExprName() string    { return "LocalRef" }
func (e *GlobalRef) ExprName() string   { return "GlobalRef" }
func (e *List) ExprName() string        { return "List" }
func (e *RecordLit) ExprName() string   { return "RecordLit" }
func (e *TupleLit) ExprName() string    { return "TupleLit" }
func (e *StructLit) ExprName() string   { return "StructLit" }
func (e *VariantLit) ExprName() string  { return "VariantLit" }
func (e *Lambda) ExprName() string      { return "Lambda" }
func (e *Call) ExprName() string        { return "Call" }
func (e *MethodCall) ExprName() string  { return "MethodCall" }
func (e *FieldAccess) ExprName() string { return "FieldAccess" }
func (e *TupleIndex) ExprName() string  { return "TupleIndex" }
func (e *Binary) ExprName() string      { return "Binary" }
func (e *Unary) ExprName() string       { return "Unary" }
func (e *If) ExprName() string          { return "If" }
func (e *Match) ExprName() string       { return "Match" }
func (e *Block) ExprName() string       { return "Block" }
func (e *Ascribe) ExprName() string     { return "Ascribe" }

func (e *Literal) ExprSpan() Span     { return e.Span }
func (e *LocalRef) ExprSpan() Span    { return e.Span }
func (e *GlobalRef) ExprSpan() Span   { return e.Span }
func (e *List) ExprSpan() Span        { return e.Span }
func (e *RecordLit) ExprSpan() Span   { return e.Span }
func (e *TupleLit) ExprSpan() Span    { return e.Span }
func (e *StructLit) ExprSpan() Span   { return e.Span }
func (e *VariantLit) ExprSpan() Span  { return e.Span }
func (e *Lambda) ExprSpan() Span      { return e.Span }
func (e *Call) ExprSpan() Span        { return e.Span }
func (e *MethodCall) ExprSpan() Span  { return e.Span }
func (e *FieldAccess) ExprSpan() Span { return e.Span }
func (e *TupleIndex) ExprSpan() Span  { return e.Span }
func (e *Binary) ExprSpan() Span      { return e.Span }
func (e *Unary) ExprSpan() Span       { return e.Span }
func (e *If) ExprSpan() Span          { return e.Span }
func (e *Match) ExprSpan() Span       { return e.Span }
func (e *Block) ExprSpan() Span       { return e.Span }
func (e *Ascribe) ExprSpan() Span     { return e.Span }

// Stmt is the base for all statements within a block.
type Stmt interface {
	StmtName() string
	StmtSpan() Span
}

var (
	_ Stmt = (*Let)(nil)
	_ Stmt = (*ExprStmt)(nil)
)

// Let-binding: `let x: T = value;`. Type is nil or types.Unknown{} when not annotated.
type Let struct {
	Pattern Pattern
	Type    types.Type
	Value   Expr
	Span    Span
}

// Expression evaluated for its effects: `f(x);`
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (s *Let) StmtName() string      { return "Let" }
func (s *ExprStmt) StmtName() string { return "ExprStmt" }
func (s *Let) StmtSpan() Span        { return s.Span }
func (s *ExprStmt) StmtSpan() Span   { return s.Span }
