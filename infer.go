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
	"errors"
	"strconv"

	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/types"
)

// inferExpr infers the type of e. Failures are reported as diagnostics, and a fresh
// type-variable stands in for the type of the failing expression so checking can continue.
func (tc *TypeChecker) inferExpr(e ast.Expr) types.Type {
	switch e := e.(type) {
	case nil:
		return types.Unit

	case *ast.Literal:
		return e.Kind.Type()

	case *ast.LocalRef:
		info, ok := tc.locals.get(e.Id)
		if !ok {
			tc.unbound(e.Span, "value "+e.Id.String())
			return tc.fresh()
		}
		info.Used = true
		return Instantiate(info.Type, tc.fresh)

	case *ast.GlobalRef:
		t, ok := tc.globals[e.Def]
		if !ok {
			if _, isType := tc.structs[e.Def]; isType {
				tc.report(diag.New(diag.UnboundVariable, e.Span, "expected value, found struct "+tc.itemName(e.Def)))
			} else {
				tc.unbound(e.Span, "value "+tc.itemName(e.Def))
			}
			return tc.fresh()
		}
		return Instantiate(t, tc.fresh)

	case *ast.List:
		elem := tc.fresh()
		for _, x := range e.Elems {
			tc.expect(elem, tc.inferExpr(x), x.ExprSpan())
		}
		return types.NewList(elem)

	case *ast.RecordLit:
		b := types.NewFieldMapBuilder()
		for _, f := range e.Fields {
			t := tc.inferExpr(f.Value)
			if b.Has(f.Name) {
				tc.report(diag.New(diag.UnknownField, f.Span, "field `"+f.Name+"` specified more than once"))
				continue
			}
			b.Set(f.Name, t)
		}
		return &types.Record{Fields: b.Build()}

	case *ast.TupleLit:
		elems := make([]types.Type, len(e.Elems))
		for i, x := range e.Elems {
			elems[i] = tc.inferExpr(x)
		}
		return &types.Tuple{Elems: elems}

	case *ast.StructLit:
		return tc.inferStructLit(e)

	case *ast.VariantLit:
		return tc.inferVariantLit(e)

	case *ast.Lambda:
		params := make([]types.Type, len(e.Params))
		for i, p := range e.Params {
			params[i] = tc.resolveType(p.Type)
			tc.locals.bind(p.Local, p.Name, params[i], p.Span, true)
		}
		body := tc.inferExpr(e.Body)
		for _, p := range e.Params {
			tc.locals.remove(p.Local)
		}
		return &types.Fn{Params: params, Ret: body}

	case *ast.Call:
		return tc.inferCall(e)

	case *ast.MethodCall:
		return tc.inferMethodCall(e)

	case *ast.FieldAccess:
		base := tc.subst.Apply(tc.inferExpr(e.Base))
		switch b := base.(type) {
		case *types.Record:
			if t, ok := b.Fields.Get(e.Field); ok {
				return t
			}
		case *types.Named:
			if s, ok := tc.structs[b.Def]; ok {
				if t, ok := s.field(e.Field); ok {
					return types.SubstParams(t, b.Args)
				}
			}
		case *types.Var:
			tc.ambiguous(e.Base.ExprSpan(), "to access field `"+e.Field+"`")
			return tc.fresh()
		}
		tc.unknownField(e.Span, e.Field, base)
		return tc.fresh()

	case *ast.TupleIndex:
		base := tc.subst.Apply(tc.inferExpr(e.Base))
		switch b := base.(type) {
		case *types.Tuple:
			if e.Index >= 0 && e.Index < len(b.Elems) {
				return b.Elems[e.Index]
			}
		case *types.Var:
			tc.ambiguous(e.Base.ExprSpan(), "to access element "+strconv.Itoa(e.Index))
			return tc.fresh()
		}
		tc.unknownField(e.Span, strconv.Itoa(e.Index), base)
		return tc.fresh()

	case *ast.Binary:
		return tc.inferBinary(e)

	case *ast.Unary:
		return tc.inferUnary(e)

	case *ast.If:
		tc.expect(types.Bool, tc.inferExpr(e.Cond), e.Cond.ExprSpan())
		then := tc.inferExpr(e.Then)
		if e.Else == nil {
			tc.expect(types.Unit, then, e.Then.ExprSpan())
			return types.Unit
		}
		result := tc.fresh()
		tc.unify(result, then)
		els := tc.inferExpr(e.Else)
		if err := tc.unify(result, els); err != nil {
			tc.report(tc.mismatch(err, result, els, e.Else.ExprSpan()).
				WithLabel(e.Then.ExprSpan(), "expected because of this").
				WithNote("`if` and `else` have incompatible types"))
		}
		return result

	case *ast.Match:
		return tc.inferMatch(e)

	case *ast.Block:
		for _, s := range e.Stmts {
			switch s := s.(type) {
			case *ast.Let:
				tc.checkLet(s)
			case *ast.ExprStmt:
				tc.inferExpr(s.Expr)
			default:
				tc.internal(s.StmtSpan(), s)
			}
		}
		if e.Tail == nil {
			return types.Unit
		}
		return tc.inferExpr(e.Tail)

	case *ast.Ascribe:
		t := tc.resolveType(e.Type)
		tc.expect(t, tc.inferExpr(e.Expr), e.Expr.ExprSpan())
		return t
	}

	tc.internal(e.ExprSpan(), e)
	return tc.fresh()
}

func (tc *TypeChecker) checkLet(s *ast.Let) {
	t := tc.inferExpr(s.Value)
	if isDeclared(s.Type) {
		declared := tc.resolveType(s.Type)
		tc.expect(declared, t, s.Value.ExprSpan())
		t = declared
	}

	bind, ok := s.Pattern.(*ast.BindPat)
	if !ok {
		tc.checkPattern(s.Pattern, t)
		return
	}
	scheme := Generalize(t, tc.envFreeVars(), tc.subst)
	if tc.cfg.Trace {
		tc.tracef("generalize %s : %s", bind.Name, tc.printer.String(scheme))
	}
	tc.locals.bind(bind.Local, bind.Name, scheme, bind.Span, false)
}

// inferCall unifies the callee with a function over the argument types. The fresh result
// stays unconstrained when unification fails.
func (tc *TypeChecker) inferCall(e *ast.Call) types.Type {
	callee := tc.inferExpr(e.Callee)
	args := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		args[i] = tc.inferExpr(a)
	}
	ret := tc.fresh()
	want := &types.Fn{Params: args, Ret: ret}
	err := tc.unify(callee, want)
	if err == nil {
		return ret
	}

	switch fn := tc.subst.Shallow(callee).(type) {
	case *types.Fn:
		var uerr *UnifyError
		if errors.As(err, &uerr) && uerr.Kind == ArityMismatch && len(fn.Params) != len(args) {
			d := diag.New(diag.TypeMismatch, e.Span, "this function takes "+argCount(len(fn.Params))+
				" but "+argCount(len(args))+" "+wasWere(len(args))+" supplied").
				WithPrimaryMessage("expected " + argCount(len(fn.Params)))
			if g, ok := e.Callee.(*ast.GlobalRef); ok {
				if span, ok := tc.spans[g.Def]; ok {
					d.WithLabel(span, "function defined here")
				}
			}
			tc.report(d)
			return ret
		}
		tc.report(tc.mismatch(err, callee, want, e.Span))
	case *types.Var:
		tc.report(tc.mismatch(err, callee, want, e.Span))
	default:
		tc.report(diag.New(diag.TypeMismatch, e.Callee.ExprSpan(), "expected function, found "+tc.quote(callee)).
			WithPrimaryMessage("call expression requires a function"))
	}
	return ret
}

func (tc *TypeChecker) inferMethodCall(e *ast.MethodCall) types.Type {
	recv := tc.inferExpr(e.Receiver)
	args := make([]types.Type, 0, len(e.Args)+1)
	args = append(args, recv)
	for _, a := range e.Args {
		args = append(args, tc.inferExpr(a))
	}

	self := tc.subst.Apply(recv)
	res, ok := tc.traits.ResolveMethod(self, e.Method)
	if !ok {
		if _, isVar := self.(*types.Var); isVar {
			tc.ambiguous(e.Receiver.ExprSpan(), "to call method `"+e.Method+"`")
		} else {
			tc.report(diag.New(diag.MissingMethod, e.Span, "no method named `"+e.Method+"` found for type "+tc.quote(self)).
				WithPrimaryMessage("method not found"))
		}
		return tc.fresh()
	}
	if tc.cfg.Trace {
		tc.tracef("method %s.%s resolved to impl %s", tc.TypeString(self), e.Method, res.Impl.Def)
	}

	ret := tc.fresh()
	method := Instantiate(res.Type(self), tc.fresh)
	want := &types.Fn{Params: args, Ret: ret}
	if err := tc.unify(method, want); err != nil {
		var uerr *UnifyError
		if errors.As(err, &uerr) && uerr.Kind == ArityMismatch {
			if fn, ok := tc.subst.Shallow(method).(*types.Fn); ok && len(fn.Params) != len(args) {
				tc.report(diag.New(diag.TypeMismatch, e.Span, "method `"+e.Method+"` takes "+
					argCount(max(len(fn.Params)-1, 0))+" but "+argCount(len(e.Args))+" "+wasWere(len(e.Args))+" supplied"))
				return ret
			}
		}
		tc.report(tc.mismatch(err, method, want, e.Span))
	}
	return ret
}

func (tc *TypeChecker) inferStructLit(e *ast.StructLit) types.Type {
	s, ok := tc.structs[e.Struct]
	if !ok {
		for _, f := range e.Fields {
			tc.inferExpr(f.Value)
		}
		tc.unbound(e.Span, "struct "+tc.itemName(e.Struct))
		return tc.fresh()
	}

	args := tc.ctx.FreshList(len(s.generics))
	seen := set.New[string](len(e.Fields))
	for _, f := range e.Fields {
		t := tc.inferExpr(f.Value)
		declared, ok := s.field(f.Name)
		if !ok {
			tc.report(diag.New(diag.UnknownField, f.Span, "struct `"+s.name+"` has no field named `"+f.Name+"`"))
			continue
		}
		if !seen.Insert(f.Name) {
			tc.report(diag.New(diag.UnknownField, f.Span, "field `"+f.Name+"` specified more than once"))
			continue
		}
		tc.expect(types.SubstParams(declared, args), t, f.Value.ExprSpan())
	}

	var missing []string
	for _, f := range s.fields {
		if !seen.Contains(f.Name) {
			missing = append(missing, "`"+f.Name+"`")
		}
	}
	if len(missing) > 0 {
		tc.report(diag.New(diag.MissingField, e.Span, "missing "+fieldList(missing)+" in initializer of `"+s.name+"`"))
	}
	return &types.Named{Def: s.def, Args: args}
}

func (tc *TypeChecker) inferVariantLit(e *ast.VariantLit) types.Type {
	argTypes := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = tc.inferExpr(a)
	}
	en, ok := tc.enums[e.Enum]
	if !ok {
		tc.unbound(e.Span, "enum "+tc.itemName(e.Enum))
		return tc.fresh()
	}

	args := tc.ctx.FreshList(len(en.generics))
	result := &types.Named{Def: en.def, Args: args}
	v, ok := en.variant(e.Variant)
	if !ok {
		tc.report(diag.New(diag.UnknownField, e.Span, "no variant named `"+e.Variant+"` in enum `"+en.name+"`"))
		return result
	}
	if len(v.Fields) != len(e.Args) {
		tc.report(diag.New(diag.TypeMismatch, e.Span, "variant `"+en.name+"::"+v.Name+"` takes "+
			argCount(len(v.Fields))+" but "+argCount(len(e.Args))+" "+wasWere(len(e.Args))+" supplied"))
	}
	for i := range min(len(v.Fields), len(e.Args)) {
		tc.expect(types.SubstParams(v.Fields[i], args), argTypes[i], e.Args[i].ExprSpan())
	}
	return result
}

func fieldList(names []string) string {
	if len(names) == 1 {
		return "field " + names[0]
	}
	s := "fields "
	for i, n := range names {
		switch {
		case i == 0:
		case i == len(names)-1:
			s += " and "
		default:
			s += ", "
		}
		s += n
	}
	return s
}
