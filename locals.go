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
	"strings"

	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/types"
)

// LocalInfo describes a local binding within the function being checked. Type may be
// polymorphic for let-bound names.
type LocalInfo struct {
	Type types.Type
	Name string
	Span ast.Span
	Used bool
}

// Locals of one function body, in binding order.
type localTable struct {
	entries map[types.LocalId]*LocalInfo
	order   []types.LocalId
}

func newLocalTable() *localTable {
	return &localTable{entries: make(map[types.LocalId]*LocalInfo)}
}

func (l *localTable) bind(id types.LocalId, name string, t types.Type, span ast.Span, used bool) {
	if info, ok := l.entries[id]; ok {
		info.Type, info.Name, info.Span, info.Used = t, name, span, used
		return
	}
	l.entries[id] = &LocalInfo{Type: t, Name: name, Span: span, Used: used}
	l.order = append(l.order, id)
}

func (l *localTable) get(id types.LocalId) (*LocalInfo, bool) {
	info, ok := l.entries[id]
	return info, ok
}

func (l *localTable) remove(id types.LocalId) {
	if _, ok := l.entries[id]; !ok {
		return
	}
	delete(l.entries, id)
	for i, other := range l.order {
		if other == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *localTable) reset() {
	clear(l.entries)
	l.order = l.order[:0]
}

// Iterate over locals in binding order.
func (l *localTable) each(f func(types.LocalId, *LocalInfo)) {
	for _, id := range l.order {
		f(id, l.entries[id])
	}
}

// envFreeVars returns the type-variables which may not be generalized at a let-binding:
// those free in the types of the current locals and of monomorphic global signatures.
func (tc *TypeChecker) envFreeVars() *set.Set[int] {
	vars := set.New[int](16)
	tc.locals.each(func(_ types.LocalId, info *LocalInfo) {
		types.CollectFreeVars(vars, tc.subst.Apply(info.Type))
	})
	for _, t := range tc.globals {
		types.CollectFreeVars(vars, tc.subst.Apply(t))
	}
	return vars
}

func (tc *TypeChecker) checkUnused() {
	if !tc.cfg.WarnUnused {
		return
	}
	tc.locals.each(func(_ types.LocalId, info *LocalInfo) {
		if info.Used || strings.HasPrefix(info.Name, "_") {
			return
		}
		tc.report(diag.NewWarning(diag.UnusedVariable, info.Span, "unused variable: `"+info.Name+"`").
			WithHelp("if this is intentional, prefix it with an underscore: `_" + info.Name + "`"))
	})
}
