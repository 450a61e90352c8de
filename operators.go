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

package polycheck

import (
	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/types"
)

type opClass uint8

const (
	arithmeticOp opClass = iota
	comparisonOp
	logicalOp
	concatOp
	pipeOp
)

var opClasses = [...]opClass{
	ast.Add:    arithmeticOp,
	ast.Sub:    arithmeticOp,
	ast.Mul:    arithmeticOp,
	ast.Div:    arithmeticOp,
	ast.Mod:    arithmeticOp,
	ast.Eq:     comparisonOp,
	ast.Ne:     comparisonOp,
	ast.Lt:     comparisonOp,
	ast.Le:     comparisonOp,
	ast.Gt:     comparisonOp,
	ast.Ge:     comparisonOp,
	ast.And:    logicalOp,
	ast.Or:     logicalOp,
	ast.Concat: concatOp,
	ast.Pipe:   pipeOp,
}

func (tc *TypeChecker) inferBinary(e *ast.Binary) types.Type {
	if int(e.Op) >= len(opClasses) {
		tc.internal(e.Span, e)
		return tc.fresh()
	}
	left := tc.inferExpr(e.Left)
	right := tc.inferExpr(e.Right)

	switch opClasses[e.Op] {
	case arithmeticOp:
		if !tc.unifyOperands(e, left, right) {
			return left
		}
		if t := tc.subst.Apply(left); !isNumeric(t) {
			tc.report(diag.New(diag.TypeMismatch, e.Span, "cannot apply `"+e.Op.String()+"` to "+tc.quote(t)).
				WithPrimaryMessage("expected a numeric type, found "+tc.quote(t)).
				WithHelp("arithmetic operands must be `Int` or `Float`"))
		}
		return left

	case comparisonOp:
		tc.unifyOperands(e, left, right)
		return types.Bool

	case logicalOp:
		tc.expect(types.Bool, left, e.Left.ExprSpan())
		tc.expect(types.Bool, right, e.Right.ExprSpan())
		return types.Bool

	case concatOp:
		if !tc.unifyOperands(e, left, right) {
			return left
		}
		if t := tc.subst.Apply(left); !isConcatenable(t) {
			tc.report(diag.New(diag.TypeMismatch, e.Span, "cannot apply `++` to "+tc.quote(t)).
				WithPrimaryMessage("expected `String` or a list, found "+tc.quote(t)))
		}
		return left

	default: // pipe
		ret := tc.fresh()
		want := &types.Fn{Params: []types.Type{left}, Ret: ret}
		if err := tc.unify(right, want); err != nil {
			tc.report(tc.mismatch(err, want, right, e.Right.ExprSpan()).
				WithNote("the right side of `|>` must be a function taking one argument"))
		}
		return ret
	}
}

// unifyOperands requires both operands of a binary operator to have the same type.
func (tc *TypeChecker) unifyOperands(e *ast.Binary, left, right types.Type) bool {
	if err := tc.unify(left, right); err != nil {
		tc.report(tc.mismatch(err, left, right, e.Right.ExprSpan()).
			WithLabel(e.Left.ExprSpan(), "expected because of this operand of `"+e.Op.String()+"`"))
		return false
	}
	return true
}

func (tc *TypeChecker) inferUnary(e *ast.Unary) types.Type {
	t := tc.inferExpr(e.Operand)
	switch e.Op {
	case ast.Neg:
		if solved := tc.subst.Apply(t); !isNumeric(solved) {
			tc.report(diag.New(diag.TypeMismatch, e.Span, "cannot apply unary `-` to "+tc.quote(solved)).
				WithPrimaryMessage("expected a numeric type"))
		}
		return t
	case ast.Not:
		tc.expect(types.Bool, t, e.Operand.ExprSpan())
		return types.Bool
	}
	tc.internal(e.Span, e)
	return tc.fresh()
}

// Unsolved variables are accepted; the operator does not constrain them further.
func isNumeric(t types.Type) bool {
	switch t := t.(type) {
	case types.Prim:
		return t.IsNumeric()
	case *types.Var, types.Unknown:
		return true
	}
	return false
}

func isConcatenable(t types.Type) bool {
	switch t := t.(type) {
	case types.Prim:
		return t == types.String
	case *types.Var, types.Unknown:
		return true
	}
	_, isList := types.ListElem(t)
	return isList
}
