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

import "strconv"

// DefId identifies a module-level item (function, struct, enum, trait, impl or type alias).
// Def ids are minted by the name resolver; the checker never creates or reuses them.
type DefId int

// LocalId identifies a single binding occurrence (parameter, let-bound name or pattern variable).
type LocalId int

// Reserved def ids for builtin types. Resolver-minted ids are non-negative.
const (
	ListDef DefId = -1 - iota
)

func (id DefId) String() string {
	if id == ListDef {
		return "List"
	}
	return "#" + strconv.Itoa(int(id))
}

func (id LocalId) String() string { return "%" + strconv.Itoa(int(id)) }
