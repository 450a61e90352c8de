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
	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/polycheck/types"
)

// Generalize quantifies every type-variable within t which is unsolved in s and does not
// occur in envFree. Quantified variables become generic parameters named `'a`, `'b`, ...
// in ascending order of variable id.
//
// If no variable can be quantified, the solved type is returned without a Forall wrapper.
// envFree may be nil.
func Generalize(t types.Type, envFree *set.Set[int], s *Substitution) types.Type {
	if _, ok := t.(*types.Forall); ok {
		return t
	}
	t = s.Apply(t)
	var ids []int
	for _, id := range types.SortedVars(types.FreeVars(t)) {
		if envFree == nil || !envFree.Contains(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return t
	}

	index := make(map[int]int, len(ids))
	names := make([]string, len(ids))
	for i, id := range ids {
		index[id] = i
		names[i] = types.GenericName(i)
	}
	body := types.Map(t, func(t types.Type) types.Type {
		if tv, ok := t.(*types.Var); ok {
			if i, ok := index[tv.Id]; ok {
				return &types.Param{Index: i, Name: names[i]}
			}
		}
		return t
	})
	return &types.Forall{Names: names, Body: body}
}

// Instantiate replaces the quantified parameters of a polymorphic type with fresh
// type-variables. Monomorphic types are returned unchanged.
func Instantiate(t types.Type, fresh func() types.Type) types.Type {
	fa, ok := t.(*types.Forall)
	if !ok {
		return t
	}
	args := make([]types.Type, len(fa.Names))
	for i := range args {
		args[i] = fresh()
	}
	return types.SubstParams(fa.Body, args)
}
