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
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/traits"
	"github.com/wdamron/polycheck/types"
)

// checkImpls checks every trait impl against its trait: required methods and associated
// types must be provided, no undeclared items may be provided, and provided methods must
// agree with the trait's signatures.
func (tc *TypeChecker) checkImpls() {
	for _, trait := range tc.traits.Traits() {
		for _, id := range tc.traits.ImplsOf(trait.Id) {
			tc.checkImpl(trait, tc.traits.Impl(id))
		}
	}
}

func (tc *TypeChecker) checkImpl(trait *traits.Trait, impl *traits.Impl) {
	subject := "`" + trait.Name + "` for " + tc.quote(impl.Self)

	for _, name := range tc.traits.CheckImplCompleteness(impl.Id) {
		m := trait.Method(name)
		tc.report(diag.New(diag.MissingMethod, impl.Span, "not all trait items implemented, missing method `"+name+"`").
			WithPrimaryMessage("missing `"+name+"` in impl of "+subject).
			WithLabel(m.Span, "`"+name+"` is declared here"))
	}
	for _, name := range tc.traits.CheckImplAssocTypes(impl.Id) {
		at := trait.AssocType(name)
		tc.report(diag.New(diag.MissingAssocType, impl.Span, "not all trait items implemented, missing associated type `"+name+"`").
			WithPrimaryMessage("missing `type "+name+"` in impl of "+subject).
			WithLabel(at.Span, "`"+name+"` is declared here"))
	}
	methods, assocTypes := tc.traits.ExtraImplItems(impl.Id)
	for _, m := range methods {
		tc.report(diag.New(diag.ExtraImplItem, m.Span, "method `"+m.Name+"` is not a member of trait `"+trait.Name+"`"))
	}
	for _, at := range assocTypes {
		tc.report(diag.New(diag.ExtraImplItem, at.Span, "type `"+at.Name+"` is not a member of trait `"+trait.Name+"`"))
	}

	// Signatures are compared only for impls over closed self types; generic parameters of
	// the impl are not in scope of the method items.
	if hasParams(impl.Self) {
		return
	}
	for i := range impl.Methods {
		m := &impl.Methods[i]
		decl := trait.Method(m.Name)
		if decl == nil {
			continue
		}
		want := decl.Signature(impl.Self)
		got := Instantiate(m.Type, tc.fresh)
		if err := tc.unify(want, got); err != nil {
			tc.report(tc.mismatch(err, want, got, m.Span).
				WithLabel(decl.Span, "type in trait").
				WithNote("method `" + m.Name + "` has an incompatible type for trait `" + trait.Name + "`"))
		}
	}
}

func hasParams(t types.Type) bool {
	found := false
	types.Visit(t, func(t types.Type) bool {
		if _, ok := t.(*types.Param); ok {
			found = true
		}
		return !found
	})
	return found
}
