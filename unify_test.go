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
	"testing"

	"github.com/wdamron/polycheck/types"
)

func TestUnify(t *testing.T) {
	ctx := NewInferContext()
	a, b := ctx.Fresh(), ctx.Fresh()
	const opt types.DefId = 3

	cases := []struct {
		name     string
		x, y     types.Type
		kind     UnifyErrorKind
		succeeds bool
	}{
		{"prim", types.Int, types.Int, 0, true},
		{"prim mismatch", types.Int, types.Bool, Mismatch, false},
		{"var", a, types.Int, 0, true},
		{"unknown", types.Unknown{}, types.String, 0, true},
		{"resolved unknown", ctx.ResolveType(&types.Tuple{Elems: []types.Type{types.Unknown{}}}), &types.Tuple{Elems: []types.Type{types.String}}, 0, true},
		{"fn", &types.Fn{Params: []types.Type{a}, Ret: b}, &types.Fn{Params: []types.Type{types.Int}, Ret: types.Bool}, 0, true},
		{"fn arity", &types.Fn{Params: []types.Type{a}, Ret: b}, &types.Fn{Ret: types.Bool}, ArityMismatch, false},
		{"tuple arity", &types.Tuple{Elems: []types.Type{a}}, &types.Tuple{Elems: []types.Type{a, b}}, ArityMismatch, false},
		{"named", &types.Named{Def: opt, Args: []types.Type{a}}, &types.Named{Def: opt, Args: []types.Type{types.Int}}, 0, true},
		{"named def", &types.Named{Def: opt}, &types.Named{Def: opt + 1}, Mismatch, false},
		{"list", types.NewList(a), types.NewList(types.Char), 0, true},
		{"occurs", a, types.NewList(a), InfiniteType, false},
		{"forall", &types.Forall{Names: []string{"'a"}, Body: &types.Param{Name: "'a"}}, types.Int, NotInstantiated, false},
		{
			"record width",
			types.NewRecord(map[string]types.Type{"a": types.Int}),
			types.NewRecord(map[string]types.Type{"a": types.Int, "b": types.Bool}),
			RecordShape, false,
		},
		{
			"record",
			types.NewRecord(map[string]types.Type{"a": a, "b": types.Bool}),
			types.NewRecord(map[string]types.Type{"b": b, "a": types.Int}),
			0, true,
		},
		{"self", types.SelfParam, types.SelfParam, 0, true},
		{"params", &types.Param{Index: 0, Name: "T"}, &types.Param{Index: 1, Name: "U"}, Mismatch, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSubstitution()
			err := Unify(c.x, c.y, s)
			if c.succeeds {
				if err != nil {
					t.Fatalf("expected %s ~ %s to unify: %v", types.TypeString(c.x), types.TypeString(c.y), err)
				}
				// Unknown adopts the other side without binding anything:
				if !types.IsKnown(c.x) || !types.IsKnown(c.y) {
					return
				}
				if x, y := types.TypeString(s.Apply(c.x)), types.TypeString(s.Apply(c.y)); x != y {
					t.Fatalf("unified types differ after substitution: %s vs %s", x, y)
				}
				return
			}
			var uerr *UnifyError
			if !errors.As(err, &uerr) {
				t.Fatalf("expected a unification error, got %v", err)
			}
			if uerr.Kind != c.kind {
				t.Fatalf("expected error kind %d, got %d (%s)", c.kind, uerr.Kind, uerr.Reason)
			}
		})
	}
}

func TestUnifySymmetric(t *testing.T) {
	ctx := NewInferContext()
	a, b := ctx.Fresh(), ctx.Fresh()
	x := &types.Fn{Params: []types.Type{a, types.Int}, Ret: types.NewList(b)}
	y := &types.Fn{Params: []types.Type{types.String, b}, Ret: types.NewList(types.Int)}

	s1, s2 := NewSubstitution(), NewSubstitution()
	if err := Unify(x, y, s1); err != nil {
		t.Fatal(err)
	}
	if err := Unify(y, x, s2); err != nil {
		t.Fatal(err)
	}
	if r1, r2 := types.TypeString(s1.Apply(x)), types.TypeString(s2.Apply(x)); r1 != r2 {
		t.Fatalf("unification is not symmetric: %s vs %s", r1, r2)
	}
	if got := types.TypeString(s1.Apply(x)); got != "(String, Int) -> List<Int>" {
		t.Fatalf("unexpected solution %s", got)
	}
}

func TestUnifyChains(t *testing.T) {
	ctx := NewInferContext()
	a, b, c := ctx.Fresh(), ctx.Fresh(), ctx.Fresh()
	s := NewSubstitution()
	for _, pair := range [][2]types.Type{{a, b}, {b, c}, {c, types.Float}} {
		if err := Unify(pair[0], pair[1], s); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Apply(a); got != types.Float {
		t.Fatalf("expected 'a to resolve to Float, got %s", types.TypeString(got))
	}
	// binding a variable to itself is a no-op:
	if err := Unify(a, a, s); err != nil {
		t.Fatal(err)
	}
	// the occurs-check sees through bindings:
	d := ctx.Fresh()
	if err := Unify(b, types.Float, s); err != nil {
		t.Fatal(err)
	}
	if err := Unify(d, &types.Tuple{Elems: []types.Type{d}}, s); err == nil {
		t.Fatalf("expected an infinite type")
	}
}

func TestCanUnify(t *testing.T) {
	ctx := NewInferContext()
	a := ctx.Fresh()
	s := NewSubstitution()
	if !CanUnify(a, types.Int, s) {
		t.Fatalf("expected 'a ~ Int to unify")
	}
	if _, ok := s.Lookup(a.Id); ok {
		t.Fatalf("CanUnify must not keep bindings")
	}
	if CanUnify(&types.Tuple{Elems: []types.Type{a, a}}, &types.Tuple{Elems: []types.Type{types.Int, types.Bool}}, s) {
		t.Fatalf("expected (a, a) ~ (Int, Bool) to fail")
	}
	if s.Len() != 0 {
		t.Fatalf("failed speculative unification leaked %d bindings", s.Len())
	}
}

func TestApplyIdempotent(t *testing.T) {
	ctx := NewInferContext()
	a, b := ctx.Fresh(), ctx.Fresh()
	s := NewSubstitution()
	s.Bind(a.Id, types.NewList(b))
	s.Bind(b.Id, types.Int)
	t1 := s.Apply(&types.Tuple{Elems: []types.Type{a, b}})
	t2 := s.Apply(t1)
	if types.TypeString(t1) != types.TypeString(t2) {
		t.Fatalf("apply is not idempotent: %s vs %s", types.TypeString(t1), types.TypeString(t2))
	}
	if got := types.TypeString(t1); got != "(List<Int>, Int)" {
		t.Fatalf("unexpected type %s", got)
	}
}

func TestApplyParams(t *testing.T) {
	ctx := NewInferContext()
	a := ctx.Fresh()
	s := NewSubstitution()
	s.BindParam(0, a)
	s.Bind(a.Id, types.String)
	fn := &types.Fn{Params: []types.Type{&types.Param{Index: 0, Name: "T"}, types.SelfParam}, Ret: &types.Param{Index: 1, Name: "U"}}
	if got := types.TypeString(s.ApplyParams(fn)); got != "(String, Self) -> U" {
		t.Fatalf("unexpected type %s", got)
	}
	snap := s.Snapshot()
	s.ClearParams()
	if _, ok := s.LookupParam(0); ok {
		t.Fatalf("params should be cleared")
	}
	s.Restore(snap)
	if _, ok := s.LookupParam(0); !ok {
		t.Fatalf("params should be restored")
	}
}
