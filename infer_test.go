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
	"bytes"
	"strings"
	"testing"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/construct"
	"github.com/wdamron/polycheck/types"
)

func TestLetGeneralization(t *testing.T) {
	tc := New(DefaultConfig())
	tc.checkLet(construct.Let(1, "id", construct.Lambda([]ast.Param{construct.P(2, "x")}, construct.Local(2))))

	info, ok := tc.locals.get(1)
	if !ok {
		t.Fatalf("expected id to be bound")
	}
	fa, ok := info.Type.(*types.Forall)
	if !ok {
		t.Fatalf("expected a polymorphic binding, got %s", types.TypeString(info.Type))
	}
	if len(fa.Names) != 1 {
		t.Fatalf("expected one quantified variable, got %v", fa.Names)
	}
	if got := tc.TypeString(info.Type); got != "forall 'a. ('a) -> 'a" {
		t.Fatalf("unexpected scheme %s", got)
	}
	if _, ok := tc.locals.get(2); ok {
		t.Fatalf("lambda parameters must not outlive the lambda")
	}
}

func TestLetDoesNotGeneralizeEnvironment(t *testing.T) {
	tc := New(DefaultConfig())
	x := tc.fresh()
	tc.locals.bind(1, "x", x, ast.Span{}, true)

	// let y = x; y shares x's variable, which is free in the environment:
	tc.checkLet(construct.Let(2, "y", construct.Local(1)))
	info, _ := tc.locals.get(2)
	if _, ok := info.Type.(*types.Forall); ok {
		t.Fatalf("variables free in the environment must not be generalized: %s", tc.TypeString(info.Type))
	}

	// let pair = fn(z) (x, z) generalizes z only:
	pair := construct.Lambda([]ast.Param{construct.P(4, "z")}, construct.Tuple(construct.Local(1), construct.Local(4)))
	tc.checkLet(construct.Let(3, "pair", pair))
	info, _ = tc.locals.get(3)
	if got := tc.TypeString(info.Type); got != "forall 'a. ('a) -> ('_0, 'a)" {
		t.Fatalf("unexpected scheme %s", got)
	}
}

func TestLocalsTable(t *testing.T) {
	l := newLocalTable()
	l.bind(1, "a", types.Int, ast.Span{}, false)
	l.bind(2, "b", types.Int, ast.Span{}, false)
	l.bind(3, "c", types.Int, ast.Span{}, false)
	l.remove(2)
	l.bind(1, "a", types.Bool, ast.Span{}, true)

	var names []string
	l.each(func(_ types.LocalId, info *LocalInfo) { names = append(names, info.Name) })
	if strings.Join(names, ",") != "a,c" {
		t.Fatalf("unexpected binding order %v", names)
	}
	if info, _ := l.get(1); info.Type != types.Type(types.Bool) || !info.Used {
		t.Fatalf("rebinding must replace the entry")
	}
	l.reset()
	if len(l.order) != 0 || len(l.entries) != 0 {
		t.Fatalf("expected an empty table")
	}
}

func TestTrace(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.Trace, cfg.TraceWriter = true, &out
	tc := New(cfg)

	body := construct.Block(construct.Local(1), construct.Let(1, "id", construct.Lambda([]ast.Param{construct.P(2, "x")}, construct.Local(2))))
	tc.Check(construct.Module(construct.Fn(1, "main", nil, body)))

	trace := out.String()
	for _, want := range []string{"check main", "generalize id : forall 'a. ('a) -> 'a", "unify "} {
		if !strings.Contains(trace, want) {
			t.Fatalf("missing %q in trace:\n%s", want, trace)
		}
	}
}
