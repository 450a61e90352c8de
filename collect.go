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

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/internal/util"
	"github.com/wdamron/polycheck/traits"
	"github.com/wdamron/polycheck/types"
)

// collect records spans, type declarations and function signatures, then registers all
// traits followed by all impls.
func (tc *TypeChecker) collect(m *ast.Module) {
	var (
		aliases []*ast.TypeAlias
		decls   []*ast.Trait
		impls   []*ast.Impl
	)
	for _, item := range m.Items {
		tc.spans[item.Def()] = item.ItemSpan()
		switch it := item.(type) {
		case *ast.Function:
			tc.names[it.Id] = it.Name
			tc.functions = append(tc.functions, it)
		case *ast.Struct:
			tc.names[it.Id] = it.Name
			tc.structs[it.Id] = &structInfo{def: it.Id, name: it.Name, generics: genericNames(it.Generics)}
		case *ast.Enum:
			tc.names[it.Id] = it.Name
			tc.enums[it.Id] = &enumInfo{def: it.Id, name: it.Name, generics: genericNames(it.Generics)}
		case *ast.TypeAlias:
			tc.names[it.Id] = it.Name
			tc.aliases[it.Id] = &aliasInfo{def: it.Id, generics: genericNames(it.Generics), target: it.Target}
			aliases = append(aliases, it)
		case *ast.Trait:
			tc.names[it.Id] = it.Name
			decls = append(decls, it)
		case *ast.Impl:
			impls = append(impls, it)
		default:
			tc.internal(item.ItemSpan(), item)
		}
	}

	tc.checkAliasCycles(aliases)

	for _, item := range m.Items {
		switch it := item.(type) {
		case *ast.Struct:
			s := tc.structs[it.Id]
			for _, f := range it.Fields {
				if _, dup := s.field(f.Name); dup {
					tc.report(diag.New(diag.UnknownField, f.Span, "field `"+f.Name+"` is already declared in `"+it.Name+"`"))
					continue
				}
				s.fields = append(s.fields, FieldInfo{Name: f.Name, Type: tc.resolveType(f.Type)})
			}
		case *ast.Enum:
			e := tc.enums[it.Id]
			for _, v := range it.Variants {
				fields := make([]types.Type, len(v.Fields))
				for i, f := range v.Fields {
					fields[i] = tc.resolveType(f)
				}
				e.variants = append(e.variants, VariantInfo{Name: v.Name, Fields: fields})
			}
		}
	}

	for _, f := range tc.functions {
		tc.collectSignature(f)
	}
	for _, t := range decls {
		tc.collectTrait(t)
	}
	for _, impl := range impls {
		tc.collectImpl(impl)
	}
}

func (tc *TypeChecker) collectSignature(f *ast.Function) {
	sig := &signature{params: make([]types.Type, len(f.Params))}
	for i, p := range f.Params {
		sig.params[i] = tc.resolveType(p.Type)
	}
	sig.declaredRet = isDeclared(f.Ret)
	sig.ret = tc.resolveType(f.Ret)
	tc.sigs[f.Id] = sig

	var t types.Type = &types.Fn{Params: sig.params, Ret: sig.ret}
	if len(f.Generics) > 0 {
		t = &types.Forall{Names: genericNames(f.Generics), Body: t}
	}
	tc.globals[f.Id] = t
}

func (tc *TypeChecker) collectTrait(t *ast.Trait) {
	decl := traits.Trait{Def: t.Id, Name: t.Name, Span: t.Span}
	for _, m := range t.Methods {
		params := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = tc.resolveType(p)
		}
		decl.Methods = append(decl.Methods, traits.Method{
			Name:       m.Name,
			Params:     params,
			Ret:        tc.resolveType(m.Ret),
			HasDefault: m.HasDefault,
			Span:       m.Span,
		})
	}
	for _, at := range t.AssocTypes {
		var def types.Type
		if isDeclared(at.Default) {
			def = tc.resolveType(at.Default)
		}
		decl.AssocTypes = append(decl.AssocTypes, traits.AssocType{Name: at.Name, Bounds: at.Bounds, Default: def, Span: at.Span})
	}
	tc.traits.RegisterTrait(decl)
}

func (tc *TypeChecker) collectImpl(impl *ast.Impl) {
	decl := traits.ImplDecl{
		Def:      impl.Id,
		TraitDef: impl.Trait,
		Self:     tc.resolveType(impl.Self),
		Span:     impl.Span,
	}
	for _, m := range impl.Methods {
		t, ok := tc.globals[m.Func]
		if !ok {
			tc.report(diag.New(diag.UnboundVariable, m.Span, "method `"+m.Name+"` refers to an unknown function "+m.Func.String()))
			t = tc.fresh()
		}
		decl.Methods = append(decl.Methods, traits.ImplMethod{Name: m.Name, Func: m.Func, Type: t, Span: m.Span})
	}
	for _, at := range impl.AssocTypes {
		decl.AssocTypes = append(decl.AssocTypes, traits.AssocBinding{Name: at.Name, Type: tc.resolveType(at.Type), Span: at.Span})
	}

	id, err := tc.traits.RegisterImpl(decl)
	if err != nil {
		tc.report(diag.New(diag.UnknownTrait, impl.Span, "cannot find trait "+tc.itemName(*impl.Trait)).
			WithPrimaryMessage("not a trait"))
		return
	}
	tc.impls[impl.Id] = id
}

// checkAliasCycles reports each group of type aliases defined in terms of each other.
func (tc *TypeChecker) checkAliasCycles(aliases []*ast.TypeAlias) {
	if len(aliases) == 0 {
		return
	}
	index := make(map[types.DefId]int, len(aliases))
	for i, a := range aliases {
		index[a.Id] = i
	}
	g := util.NewGraph(len(aliases))
	for i, a := range aliases {
		types.Visit(a.Target, func(t types.Type) bool {
			if n, ok := t.(*types.Named); ok {
				if j, ok := index[n.Def]; ok {
					g.AddEdge(i, j)
				}
			}
			return true
		})
	}

	for _, cycle := range g.Cycles() {
		first := aliases[cycle[0]]
		names := make([]string, len(cycle))
		for i, v := range cycle {
			names[i] = "`" + aliases[v].Name + "`"
			tc.aliases[aliases[v].Id].cyclic = true
		}
		msg := "type alias `" + first.Name + "` is defined in terms of itself"
		if len(cycle) > 1 {
			msg = "cycle detected between type aliases " + strings.Join(names, ", ")
		}
		d := diag.New(diag.CyclicDependency, first.Span, msg)
		for _, v := range cycle[1:] {
			d.WithLabel(aliases[v].Span, "`"+aliases[v].Name+"` is part of the cycle")
		}
		tc.report(d.WithHelp("use a struct or enum to introduce a nominal type"))
	}
}

func genericNames(generics []ast.Generic) []string {
	if len(generics) == 0 {
		return nil
	}
	names := make([]string, len(generics))
	for i, g := range generics {
		names[i] = g.Name
	}
	return names
}

// isDeclared reports whether an optional annotation is present.
func isDeclared(t types.Type) bool {
	if t == nil {
		return false
	}
	_, unknown := t.(types.Unknown)
	return !unknown
}
