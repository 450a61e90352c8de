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

// polycheck provides bidirectional type-checking for a small statically-typed language with
// let-polymorphism, traits and algebraic data types.
//
// The type-system is Hindley-Milner with explicit generics on items, extended with nominal
// structs and enums, exact-width anonymous records, and single-parameter traits with
// associated types.
//
//
// Supported Features:
//
//   * Let-polymorphism for locally bound names
//   * Generic functions, structs, enums and (transparent) type aliases
//   * Traits with default methods and associated types, inherent impls which shadow trait impls
//   * Pattern matching with exhaustiveness and reachability checks
//   * Diagnostics with labelled source spans, notes and suggestions
//
//
// A module is checked in three passes: items are collected into the global environment,
// trait impls are checked against their traits, and finally each function body is inferred
// against its signature. Errors never stop a pass; unresolvable types become fresh
// type-variables so that checking continues with the remaining items.
//
//
// Links:
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Bidirectional Typing (Dunfield, Krishnaswami): https://arxiv.org/abs/1908.08219
package polycheck
