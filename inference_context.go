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
	"github.com/wdamron/polycheck/types"
)

// InferContext mints fresh type-variables. Variable ids are unique for the lifetime of
// the context.
//
// An inference context cannot be used concurrently.
type InferContext struct {
	next int
}

// Create a new inference context.
func NewInferContext() *InferContext { return &InferContext{} }

// Fresh returns a new unsolved type-variable.
func (ctx *InferContext) Fresh() *types.Var {
	tv := &types.Var{Id: ctx.next}
	ctx.next++
	return tv
}

// FreshType returns a new unsolved type-variable as a types.Type.
func (ctx *InferContext) FreshType() types.Type { return ctx.Fresh() }

// FreshList returns n new unsolved type-variables.
func (ctx *InferContext) FreshList(n int) []types.Type {
	ts := make([]types.Type, n)
	for i := range ts {
		ts[i] = ctx.Fresh()
	}
	return ts
}

// Count returns the number of type-variables created so far.
func (ctx *InferContext) Count() int { return ctx.next }

// ResolveType replaces each Unknown placeholder within t with a fresh type-variable.
func (ctx *InferContext) ResolveType(t types.Type) types.Type {
	if t == nil {
		return ctx.Fresh()
	}
	if types.IsKnown(t) {
		return t
	}
	return types.Map(t, func(t types.Type) types.Type {
		if _, ok := t.(types.Unknown); ok {
			return ctx.Fresh()
		}
		return t
	})
}
