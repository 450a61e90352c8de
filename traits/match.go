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

package traits

import (
	"github.com/wdamron/polycheck/types"
)

type keyKind uint8

const (
	primKey keyKind = iota
	namedKey
	fnKey
	tupleKey
	recordKey
)

// selfKey is the head constructor of an impl's self type, used to index inherent impls.
type selfKey struct {
	kind keyKind
	prim types.Prim
	def  types.DefId
	n    int
}

// keyOf returns the index key for t. Type-variables, generic parameters and Unknown have
// no key; impls over them apply to every type.
func keyOf(t types.Type) (selfKey, bool) {
	switch t := t.(type) {
	case types.Prim:
		return selfKey{kind: primKey, prim: t}, true
	case *types.Named:
		return selfKey{kind: namedKey, def: t.Def}, true
	case *types.Fn:
		return selfKey{kind: fnKey, n: len(t.Params)}, true
	case *types.Tuple:
		return selfKey{kind: tupleKey, n: len(t.Elems)}, true
	case *types.Record:
		return selfKey{kind: recordKey, n: t.Fields.Len()}, true
	}
	return selfKey{}, false
}

// Matches reports whether the impl self type pattern structurally matches t. Type-variables,
// generic parameters and Unknown on either side match any type.
func Matches(pattern, t types.Type) bool {
	return match(pattern, t, nil)
}

// match compares pattern against t structurally. When binds is non-nil, the type matched
// by each generic parameter within pattern is recorded by parameter index.
func match(pattern, t types.Type, binds map[int]types.Type) bool {
	switch p := pattern.(type) {
	case *types.Param:
		if binds != nil && !p.IsSelf() {
			if _, ok := binds[p.Index]; !ok {
				binds[p.Index] = t
			}
		}
		return true
	case *types.Var, types.Unknown:
		return true
	}
	switch t.(type) {
	case *types.Var, *types.Param, types.Unknown:
		return true
	}

	switch p := pattern.(type) {
	case types.Prim:
		tp, ok := t.(types.Prim)
		return ok && tp == p
	case *types.Named:
		tn, ok := t.(*types.Named)
		if !ok || tn.Def != p.Def || len(tn.Args) != len(p.Args) {
			return false
		}
		for i := range p.Args {
			if !match(p.Args[i], tn.Args[i], binds) {
				return false
			}
		}
		return true
	case *types.Fn:
		tf, ok := t.(*types.Fn)
		if !ok || len(tf.Params) != len(p.Params) {
			return false
		}
		for i := range p.Params {
			if !match(p.Params[i], tf.Params[i], binds) {
				return false
			}
		}
		return match(p.Ret, tf.Ret, binds)
	case *types.Tuple:
		tt, ok := t.(*types.Tuple)
		if !ok || len(tt.Elems) != len(p.Elems) {
			return false
		}
		for i := range p.Elems {
			if !match(p.Elems[i], tt.Elems[i], binds) {
				return false
			}
		}
		return true
	case *types.Record:
		tr, ok := t.(*types.Record)
		if !ok || tr.Fields.Len() != p.Fields.Len() {
			return false
		}
		matched := true
		p.Fields.Range(func(label string, pt types.Type) bool {
			ft, ok := tr.Fields.Get(label)
			matched = ok && match(pt, ft, binds)
			return matched
		})
		return matched
	}
	return false
}
