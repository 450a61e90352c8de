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

	"github.com/davecgh/go-spew/spew"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/types"
)

func (tc *TypeChecker) report(d *diag.Diagnostic) { tc.diags.Add(d) }

func (tc *TypeChecker) quote(t types.Type) string { return "`" + tc.TypeString(t) + "`" }

// mismatch describes a failure to unify expected with found at span.
func (tc *TypeChecker) mismatch(err error, expected, found types.Type, span ast.Span) *diag.Diagnostic {
	var uerr *UnifyError
	if !errors.As(err, &uerr) {
		return diag.New(diag.Internal, span, err.Error())
	}

	if uerr.Kind == InfiniteType {
		return diag.New(diag.InfiniteType, span, "cannot construct the infinite type "+
			tc.quote(uerr.Expected)+" = "+tc.quote(uerr.Found)).
			WithPrimaryMessage("this expression would have an infinitely nested type")
	}

	d := diag.New(diag.TypeMismatch, span, "mismatched types").
		WithPrimaryMessage("expected " + tc.quote(expected) + ", found " + tc.quote(found))
	switch uerr.Kind {
	case ArityMismatch, RecordShape:
		d.WithNote(uerr.Reason)
	case NotInstantiated:
		d.Code = diag.Internal
		d.WithNote(uerr.Reason)
	default:
		inner := "expected " + tc.quote(uerr.Expected) + ", found " + tc.quote(uerr.Found)
		if inner != d.Labels[0].Message {
			d.WithNote(inner)
		}
	}
	return d
}

// expect unifies expected with the type found at span, reporting a mismatch on failure.
func (tc *TypeChecker) expect(expected, found types.Type, span ast.Span) bool {
	if err := tc.unify(expected, found); err != nil {
		tc.report(tc.mismatch(err, expected, found, span))
		return false
	}
	return true
}

func (tc *TypeChecker) unbound(span ast.Span, what string) {
	tc.report(diag.New(diag.UnboundVariable, span, "cannot find "+what+" in this scope"))
}

func (tc *TypeChecker) unknownField(span ast.Span, field string, t types.Type) {
	tc.report(diag.New(diag.UnknownField, span, "no field `"+field+"` on type "+tc.quote(t)).
		WithPrimaryMessage("unknown field"))
}

func (tc *TypeChecker) ambiguous(span ast.Span, what string) {
	tc.report(diag.New(diag.AmbiguousType, span, "type annotations needed").
		WithPrimaryMessage("the type of this value must be known "+what))
}

// internal reports a syntax node the checker does not handle.
func (tc *TypeChecker) internal(span ast.Span, node interface{}) {
	tc.report(diag.New(diag.Internal, span, "unsupported syntax").WithNote(spew.Sdump(node)))
}

func (tc *TypeChecker) itemName(def types.DefId) string {
	if name, ok := tc.names[def]; ok {
		return "`" + name + "`"
	}
	return "item " + def.String()
}

func argCount(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}

func wasWere(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}
