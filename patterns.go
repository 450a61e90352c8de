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
	"strconv"
	"strings"

	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/types"
)

// checkPattern checks p against the type of the matched value, binding the locals
// introduced by p.
func (tc *TypeChecker) checkPattern(p ast.Pattern, expected types.Type) {
	switch p := p.(type) {
	case *ast.WildcardPat:

	case *ast.BindPat:
		tc.locals.bind(p.Local, p.Name, expected, p.Span, false)

	case *ast.LitPat:
		tc.expect(expected, p.Lit.Kind.Type(), p.Span)

	case *ast.TuplePat:
		elems := tc.ctx.FreshList(len(p.Elems))
		tc.expect(expected, &types.Tuple{Elems: elems}, p.Span)
		for i, sub := range p.Elems {
			tc.checkPattern(sub, elems[i])
		}

	case *ast.ListPat:
		elem := tc.fresh()
		tc.expect(expected, types.NewList(elem), p.Span)
		for _, sub := range p.Elems {
			tc.checkPattern(sub, elem)
		}

	case *ast.RecordPat:
		tc.checkRecordPattern(p, expected)

	case *ast.CtorPat:
		tc.checkCtorPattern(p, expected)

	default:
		tc.internal(p.PatternSpan(), p)
	}
}

func (tc *TypeChecker) checkRecordPattern(p *ast.RecordPat, expected types.Type) {
	// a known record or struct type may be matched partially:
	var fieldType func(string) (types.Type, bool)
	switch t := tc.subst.Shallow(expected).(type) {
	case *types.Record:
		fieldType = t.Fields.Get
	case *types.Named:
		if s, ok := tc.structs[t.Def]; ok {
			fieldType = func(name string) (types.Type, bool) {
				ft, ok := s.field(name)
				if !ok {
					return nil, false
				}
				return types.SubstParams(ft, t.Args), true
			}
		}
	}
	if fieldType != nil {
		for _, f := range p.Fields {
			ft, ok := fieldType(f.Name)
			if !ok {
				tc.unknownField(f.Span, f.Name, expected)
				ft = tc.fresh()
			}
			tc.checkPattern(f.Pattern, ft)
		}
		return
	}

	b := types.NewFieldMapBuilder()
	fields := make([]types.Type, len(p.Fields))
	for i, f := range p.Fields {
		fields[i] = tc.fresh()
		b.Set(f.Name, fields[i])
	}
	tc.expect(expected, &types.Record{Fields: b.Build()}, p.Span)
	for i, f := range p.Fields {
		tc.checkPattern(f.Pattern, fields[i])
	}
}

func (tc *TypeChecker) checkCtorPattern(p *ast.CtorPat, expected types.Type) {
	en, ok := tc.enums[p.Enum]
	if !ok {
		tc.unbound(p.Span, "enum "+tc.itemName(p.Enum))
		for _, sub := range p.Args {
			tc.checkPattern(sub, tc.fresh())
		}
		return
	}
	args := tc.ctx.FreshList(len(en.generics))
	tc.expect(expected, &types.Named{Def: en.def, Args: args}, p.Span)

	v := tc.selectVariant(p, en)
	if v == nil {
		for _, sub := range p.Args {
			tc.checkPattern(sub, tc.fresh())
		}
		return
	}
	for i, sub := range p.Args {
		tc.checkPattern(sub, types.SubstParams(v.Fields[i], args))
	}
}

// selectVariant returns the first variant of en whose number of fields equals the number
// of arguments of p. When the name written in the pattern disagrees with the selected
// variant, or several variants share the arity of an unnamed pattern, a warning is
// reported.
func (tc *TypeChecker) selectVariant(p *ast.CtorPat, en *enumInfo) *VariantInfo {
	var (
		found *VariantInfo
		count int
	)
	for i := range en.variants {
		if len(en.variants[i].Fields) == len(p.Args) {
			if found == nil {
				found = &en.variants[i]
			}
			count++
		}
	}
	switch {
	case found == nil:
	case p.Variant != "" && p.Variant != found.Name:
		tc.report(diag.NewWarning(diag.AmbiguousType, p.Span, "pattern `"+p.Variant+"` is checked as variant `"+
			en.name+"::"+found.Name+"`").
			WithNote("constructor patterns select the first variant taking " + argCount(len(p.Args))))
	case p.Variant == "" && count > 1:
		tc.report(diag.NewWarning(diag.AmbiguousType, p.Span, strconv.Itoa(count)+" variants of `"+en.name+
			"` take "+argCount(len(p.Args))+"; using `"+found.Name+"`"))
	}
	return found
}

func (tc *TypeChecker) inferMatch(e *ast.Match) types.Type {
	scrutinee := tc.inferExpr(e.Scrutinee)
	result := tc.fresh()
	var first ast.Span
	for i := range e.Arms {
		arm := &e.Arms[i]
		tc.checkPattern(arm.Pattern, scrutinee)
		if arm.Guard != nil {
			tc.expect(types.Bool, tc.inferExpr(arm.Guard), arm.Guard.ExprSpan())
		}
		body := tc.inferExpr(arm.Body)
		if i == 0 {
			first = arm.Body.ExprSpan()
		}
		if err := tc.unify(result, body); err != nil {
			tc.report(tc.mismatch(err, result, body, arm.Body.ExprSpan()).
				WithLabel(first, "this is found to be of type "+tc.quote(result)).
				WithNote("`match` arms have incompatible types"))
		}
	}
	tc.checkCoverage(e, scrutinee)
	return result
}

// checkCoverage reports arms which can never be reached, and scrutinee values of an enum
// or primitive type which no arm matches. Guarded arms never count as covering a value.
func (tc *TypeChecker) checkCoverage(e *ast.Match, scrutinee types.Type) {
	if len(e.Arms) == 0 {
		tc.report(diag.New(diag.NonExhaustiveMatch, e.Span, "non-exhaustive patterns: `match` has no arms").
			WithHelp("add a match arm with a wildcard pattern"))
		return
	}

	var catchAll *ast.Arm
	covered := set.New[string](len(e.Arms))
	for i := range e.Arms {
		arm := &e.Arms[i]
		if catchAll != nil {
			tc.report(diag.NewWarning(diag.UnreachablePattern, arm.Pattern.PatternSpan(), "unreachable pattern").
				WithLabel(catchAll.Pattern.PatternSpan(), "matches any value"))
			continue
		}
		if arm.Guard != nil {
			continue
		}
		if ast.IsIrrefutable(arm.Pattern) {
			catchAll = arm
			continue
		}
		if key, ok := tc.coverKey(arm.Pattern); ok && !covered.Insert(key) {
			tc.report(diag.NewWarning(diag.UnreachablePattern, arm.Pattern.PatternSpan(), "unreachable pattern").
				WithPrimaryMessage("`" + key + "` is already covered by an earlier arm"))
		}
	}
	if catchAll != nil {
		return
	}

	var missing []string
	switch t := tc.subst.Apply(scrutinee).(type) {
	case types.Prim:
		switch t {
		case types.Bool:
			for _, v := range []string{"true", "false"} {
				if !covered.Contains(v) {
					missing = append(missing, v)
				}
			}
		case types.Unit:
			if !covered.Contains("()") {
				missing = append(missing, "()")
			}
		default:
			missing = append(missing, "_")
		}
	case *types.Named:
		en, ok := tc.enums[t.Def]
		if !ok {
			return
		}
		for _, v := range en.variants {
			if !covered.Contains(v.Name) {
				missing = append(missing, variantPattern(v))
			}
		}
	}
	if len(missing) == 0 {
		return
	}
	for i := range missing {
		missing[i] = "`" + missing[i] + "`"
	}
	tc.report(diag.New(diag.NonExhaustiveMatch, e.Scrutinee.ExprSpan(), "non-exhaustive patterns: "+
		strings.Join(missing, ", ")+" not covered").
		WithHelp("ensure that all possible cases are being handled by adding a match arm with a wildcard pattern"))
}

// coverKey names the value or variant fully matched by an unguarded pattern. Constructor
// patterns cover the variant they name; unnamed ones cover the first variant of their arity.
func (tc *TypeChecker) coverKey(p ast.Pattern) (string, bool) {
	switch p := p.(type) {
	case *ast.LitPat:
		switch p.Lit.Kind {
		case ast.BoolLit:
			return p.Lit.Value, true
		case ast.UnitLit:
			return "()", true
		}
	case *ast.CtorPat:
		en, ok := tc.enums[p.Enum]
		if !ok {
			return "", false
		}
		for _, sub := range p.Args {
			if !ast.IsIrrefutable(sub) {
				return "", false
			}
		}
		if v, ok := en.variant(p.Variant); ok && len(v.Fields) == len(p.Args) {
			return v.Name, true
		}
		if p.Variant != "" {
			return "", false
		}
		for i := range en.variants {
			if len(en.variants[i].Fields) == len(p.Args) {
				return en.variants[i].Name, true
			}
		}
	}
	return "", false
}

func variantPattern(v VariantInfo) string {
	if len(v.Fields) == 0 {
		return v.Name
	}
	return v.Name + "(" + strings.TrimSuffix(strings.Repeat("_, ", len(v.Fields)), ", ") + ")"
}
