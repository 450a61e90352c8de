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

package util

import "slices"

// Graph is a directed graph over dense vertex numbers, stored as successor lists.
type Graph [][]int

func NewGraph(numVerts int) Graph { return Graph(make([][]int, numVerts)) }

func (g Graph) AddEdge(from, to int) {
	if !slices.Contains(g[from], to) {
		g[from] = append(g[from], to)
	}
}

func (g Graph) HasEdge(from, to int) bool { return slices.Contains(g[from], to) }

// SCC returns the strongly-connected components of g in topological order (a component
// appears before the components it depends on).
func (g Graph) SCC() [][]int {
	st := tarjan{
		index:   make([]int, len(g)),
		low:     make([]int, len(g)),
		onStack: make([]bool, len(g)),
	}
	for v := range g {
		if st.index[v] == 0 {
			st.visit(g, v)
		}
	}
	// Tarjan emits components in reverse topological order:
	slices.Reverse(st.sccs)
	return st.sccs
}

// Cycles returns each component which contains a cycle: components with more than one
// vertex, and single vertices with an edge to themselves. Vertices within a cycle are
// sorted in ascending order.
func (g Graph) Cycles() [][]int {
	var cycles [][]int
	for _, c := range g.SCC() {
		if len(c) == 1 && !g.HasEdge(c[0], c[0]) {
			continue
		}
		slices.Sort(c)
		cycles = append(cycles, c)
	}
	slices.SortFunc(cycles, func(a, b []int) int { return a[0] - b[0] })
	return cycles
}

// Tarjan's SCC algorithm, based on https://github.com/gonum/gonum/blob/master/graph/topo/tarjan.go
type tarjan struct {
	next    int
	index   []int // 1-based discovery index; 0 means unvisited
	low     []int
	onStack []bool
	stack   []int
	sccs    [][]int
}

func (st *tarjan) visit(g Graph, v int) {
	st.next++
	st.index[v], st.low[v] = st.next, st.next
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for _, w := range g[v] {
		switch {
		case st.index[w] == 0:
			st.visit(g, w)
			st.low[v] = min(st.low[v], st.low[w])
		case st.onStack[w]:
			st.low[v] = min(st.low[v], st.index[w])
		}
	}

	if st.low[v] != st.index[v] {
		return
	}
	// v is the root of a component; pop it off the stack:
	var c []int
	for {
		w := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		st.onStack[w] = false
		c = append(c, w)
		if w == v {
			break
		}
	}
	st.sccs = append(st.sccs, c)
}
