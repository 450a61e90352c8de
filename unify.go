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

	"github.com/wdamron/polycheck/types"
)

// UnifyErrorKind classifies unification failures.
type UnifyErrorKind uint8

const (
	// Structurally different types.
	Mismatch UnifyErrorKind = iota
	// Occurs-check failure: a type-variable would have to contain itself.
	InfiniteType
	// Functions or tuples with a different number of components.
	ArityMismatch
	// Records with different sets of labels.
	RecordShape
	// A polymorphic type reached the unifier without being instantiated.
	NotInstantiated
)

// UnifyError describes the most specific pair of types which failed to unify.
type UnifyError struct {
	Kind     UnifyErrorKind
	Reason   string
	Expected types.Type
	Found    types.Type
}

func (e *UnifyError) Error() string { return e.Reason }

func unifyErr(kind UnifyErrorKind, expected, found types.Type, reason string) *UnifyError {
	return &UnifyError{Kind: kind, Reason: reason, Expected: expected, Found: found}
}

// Unify finds bindings in s which make a and b structurally equal. On failure, an
// *UnifyError is returned; bindings made before the failure are kept.
//
// a is treated as the expected type and b as the found type when describing failures.
func Unify(a, b types.Type, s *Substitution) error {
	a, b = s.Shallow(a), s.Shallow(b)

	// unify type variables:

	if av, ok := a.(*types.Var); ok {
		return bindVar(av, b, s, false)
	}
	if bv, ok := b.(*types.Var); ok {
		return bindVar(bv, a, s, true)
	}

	// Unknown adopts the other side:
	if _, ok := a.(types.Unknown); ok {
		return nil
	}
	if _, ok := b.(types.Unknown); ok {
		return nil
	}

	if _, ok := a.(*types.Forall); ok {
		return unifyErr(NotInstantiated, a, b, "polymorphic type "+types.TypeString(a)+" was not instantiated before unification")
	}
	if _, ok := b.(*types.Forall); ok {
		return unifyErr(NotInstantiated, a, b, "polymorphic type "+types.TypeString(b)+" was not instantiated before unification")
	}

	// unify types:

	switch a := a.(type) {
	case types.Prim:
		if b, ok := b.(types.Prim); ok && a == b {
			return nil
		}

	case *types.Param:
		if b, ok := b.(*types.Param); ok && a.Index == b.Index && a.Name == b.Name {
			return nil
		}

	case *types.Named:
		b, ok := b.(*types.Named)
		if !ok || a.Def != b.Def {
			break
		}
		if len(a.Args) != len(b.Args) {
			return unifyErr(ArityMismatch, a, b, "Cannot unify named types with differing numbers of type arguments")
		}
		for i := range a.Args {
			if err := Unify(a.Args[i], b.Args[i], s); err != nil {
				return err
			}
		}
		return nil

	case *types.Fn:
		b, ok := b.(*types.Fn)
		if !ok {
			break
		}
		if len(a.Params) != len(b.Params) {
			return unifyErr(ArityMismatch, a, b, "expected a function taking "+plural(len(a.Params), "argument")+
				", found a function taking "+plural(len(b.Params), "argument"))
		}
		for i := range a.Params {
			if err := Unify(a.Params[i], b.Params[i], s); err != nil {
				return err
			}
		}
		return Unify(a.Ret, b.Ret, s)

	case *types.Tuple:
		b, ok := b.(*types.Tuple)
		if !ok {
			break
		}
		if len(a.Elems) != len(b.Elems) {
			return unifyErr(ArityMismatch, a, b, "expected a tuple with "+plural(len(a.Elems), "element")+
				", found one with "+plural(len(b.Elems), "element"))
		}
		for i := range a.Elems {
			if err := Unify(a.Elems[i], b.Elems[i], s); err != nil {
				return err
			}
		}
		return nil

	case *types.Record:
		b, ok := b.(*types.Record)
		if !ok {
			break
		}
		return unifyRecords(a, b, s)
	}

	return unifyErr(Mismatch, a, b, "Failed to unify "+types.TypeString(a)+" with "+types.TypeString(b))
}

// CanUnify reports whether a and b unify, without keeping any bindings.
func CanUnify(a, b types.Type, s *Substitution) bool {
	snap := s.Snapshot()
	err := Unify(a, b, s)
	s.Restore(snap)
	return err == nil
}

func bindVar(v *types.Var, t types.Type, s *Substitution, swapped bool) error {
	if tv, ok := t.(*types.Var); ok && tv.Id == v.Id {
		return nil
	}
	if _, ok := t.(types.Unknown); ok {
		return nil
	}
	// prevent cyclical types:
	if applied := s.Apply(t); types.Occurs(v.Id, applied) {
		expected, found := types.Type(v), applied
		if swapped {
			expected, found = found, expected
		}
		return unifyErr(InfiniteType, expected, found,
			"infinite type: "+types.VarName(v.Id)+" occurs within "+types.TypeString(applied))
	}
	s.Bind(v.Id, t)
	return nil
}

// Records unify only when both sides have exactly the same labels.
func unifyRecords(a, b *types.Record, s *Substitution) error {
	var missing, extra []string
	a.Fields.Range(func(label string, _ types.Type) bool {
		if _, ok := b.Fields.Get(label); !ok {
			missing = append(missing, label)
		}
		return true
	})
	b.Fields.Range(func(label string, _ types.Type) bool {
		if _, ok := a.Fields.Get(label); !ok {
			extra = append(extra, label)
		}
		return true
	})
	if len(missing) > 0 || len(extra) > 0 {
		var sb strings.Builder
		sb.WriteString("record fields differ")
		if len(missing) > 0 {
			sb.WriteString("; missing " + strings.Join(missing, ", "))
		}
		if len(extra) > 0 {
			sb.WriteString("; unexpected " + strings.Join(extra, ", "))
		}
		return unifyErr(RecordShape, a, b, sb.String())
	}
	var err error
	a.Fields.Range(func(label string, at types.Type) bool {
		bt, _ := b.Fields.Get(label)
		err = Unify(at, bt, s)
		return err == nil
	})
	return err
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
