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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/polycheck/types"
)

var emptyBindings = immutable.NewSortedMap(nil)

// Substitution maps type-variable ids to types, and generic-parameter indexes to types.
//
// Both maps are persistent, so taking a snapshot before speculative unification and
// restoring it afterwards is constant-time. Bindings are only ever added through the
// unifier, which performs an occurs-check before binding, so chains of bound variables are
// always finite.
//
// A substitution cannot be used concurrently.
type Substitution struct {
	vars   *immutable.SortedMap // int -> types.Type
	params *immutable.SortedMap // int -> types.Type
}

// Snapshot is a saved state of a substitution.
type Snapshot struct {
	vars, params *immutable.SortedMap
}

// Create an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{vars: emptyBindings, params: emptyBindings}
}

// Len returns the number of bound type-variables.
func (s *Substitution) Len() int { return s.vars.Len() }

// Lookup returns the direct binding of the type-variable with the given id.
func (s *Substitution) Lookup(id int) (types.Type, bool) {
	t, ok := s.vars.Get(id)
	if !ok {
		return nil, false
	}
	return t.(types.Type), true
}

// Bind the type-variable with the given id to t. No occurs-check is performed; use Unify
// to bind variables safely.
func (s *Substitution) Bind(id int, t types.Type) { s.vars = s.vars.Set(id, t) }

// BindParam binds the generic parameter with the given index to t.
func (s *Substitution) BindParam(index int, t types.Type) { s.params = s.params.Set(index, t) }

// LookupParam returns the binding of the generic parameter with the given index.
func (s *Substitution) LookupParam(index int) (types.Type, bool) {
	t, ok := s.params.Get(index)
	if !ok {
		return nil, false
	}
	return t.(types.Type), true
}

// ClearParams removes all generic parameter bindings.
func (s *Substitution) ClearParams() { s.params = emptyBindings }

// Snapshot saves the current bindings.
func (s *Substitution) Snapshot() Snapshot { return Snapshot{s.vars, s.params} }

// Restore discards all bindings made since snap was taken.
func (s *Substitution) Restore(snap Snapshot) { s.vars, s.params = snap.vars, snap.params }

// Shallow follows the chain of bindings for a type-variable until reaching an unbound
// variable or a non-variable type.
func (s *Substitution) Shallow(t types.Type) types.Type {
	for {
		tv, ok := t.(*types.Var)
		if !ok {
			return t
		}
		bound, ok := s.Lookup(tv.Id)
		if !ok {
			return t
		}
		t = bound
	}
}

// Apply rewrites every bound type-variable within t to its binding, transitively.
// Generic parameters are left untouched. Apply is idempotent.
func (s *Substitution) Apply(t types.Type) types.Type {
	if s.vars.Len() == 0 || !hasVars(t) {
		return t
	}
	return types.Map(t, func(t types.Type) types.Type {
		tv, ok := t.(*types.Var)
		if !ok {
			return t
		}
		bound, ok := s.Lookup(tv.Id)
		if !ok {
			return t
		}
		return s.Apply(bound)
	})
}

// ApplyParams replaces each bound generic parameter within t with its binding, then
// applies the variable bindings.
func (s *Substitution) ApplyParams(t types.Type) types.Type {
	if s.params.Len() > 0 {
		t = types.Map(t, func(t types.Type) types.Type {
			p, ok := t.(*types.Param)
			if !ok || p.IsSelf() {
				return t
			}
			if bound, ok := s.LookupParam(p.Index); ok {
				return bound
			}
			return t
		})
	}
	return s.Apply(t)
}

func hasVars(t types.Type) bool {
	found := false
	types.Visit(t, func(t types.Type) bool {
		if _, ok := t.(*types.Var); ok {
			found = true
		}
		return !found
	})
	return found
}
