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

package types

import (
	"slices"

	set "github.com/hashicorp/go-set/v3"
)

// FreeVars returns the ids of all type-variables occurring in t.
//
// Variables are reported as they appear; callers which need solved types should apply
// their substitution to t first.
func FreeVars(t Type) *set.Set[int] {
	vars := set.New[int](4)
	CollectFreeVars(vars, t)
	return vars
}

// CollectFreeVars inserts the ids of all type-variables occurring in t into vars.
func CollectFreeVars(vars *set.Set[int], t Type) {
	Visit(t, func(t Type) bool {
		if tv, ok := t.(*Var); ok {
			vars.Insert(tv.Id)
		}
		return true
	})
}

// Occurs reports whether the type-variable with the given id occurs within t.
func Occurs(id int, t Type) bool {
	found := false
	Visit(t, func(t Type) bool {
		if tv, ok := t.(*Var); ok && tv.Id == id {
			found = true
		}
		return !found
	})
	return found
}

// SortedVars returns the members of vars in ascending order.
func SortedVars(vars *set.Set[int]) []int {
	ids := vars.Slice()
	slices.Sort(ids)
	return ids
}
