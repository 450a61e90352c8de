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
	"fmt"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/traits"
	"github.com/wdamron/polycheck/types"
)

// FieldInfo is a declared struct field.
type FieldInfo struct {
	Name string
	Type types.Type
}

// VariantInfo is a declared enum variant.
type VariantInfo struct {
	Name   string
	Fields []types.Type
}

type structInfo struct {
	def      types.DefId
	name     string
	generics []string
	fields   []FieldInfo
}

func (s *structInfo) field(name string) (types.Type, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

type enumInfo struct {
	def      types.DefId
	name     string
	generics []string
	variants []VariantInfo
}

func (e *enumInfo) variant(name string) (*VariantInfo, bool) {
	for i := range e.variants {
		if e.variants[i].Name == name {
			return &e.variants[i], true
		}
	}
	return nil, false
}

type aliasInfo struct {
	def      types.DefId
	generics []string
	target   types.Type
	cyclic   bool
}

// Declared signature of a function item. Generic parameters appear as types.Param.
type signature struct {
	params []types.Type
	ret    types.Type
	// annotated return type
	declaredRet bool
}

// TypeChecker checks a fully name-resolved module in three passes: collecting item
// signatures, checking impl blocks against their traits, and inferring function bodies.
//
// A type-checker cannot be used concurrently.
type TypeChecker struct {
	cfg     Config
	subst   *Substitution
	ctx     *InferContext
	traits  *traits.Resolver
	diags   *diag.List
	printer types.Printer

	names   map[types.DefId]string
	spans   map[types.DefId]ast.Span
	structs map[types.DefId]*structInfo
	enums   map[types.DefId]*enumInfo
	aliases map[types.DefId]*aliasInfo

	// function signatures, polymorphic over declared generics
	globals   map[types.DefId]types.Type
	sigs      map[types.DefId]*signature
	functions []*ast.Function
	impls     map[types.DefId]traits.ImplId

	locals  *localTable
	current *ast.Function
}

// Create a new type-checker.
func New(cfg Config) *TypeChecker {
	tc := &TypeChecker{cfg: cfg}
	tc.printer = types.Printer{DefName: tc.defName}
	tc.reset()
	return tc
}

func (tc *TypeChecker) reset() {
	tc.subst = NewSubstitution()
	tc.ctx = NewInferContext()
	tc.traits = traits.New()
	tc.diags = diag.NewList(tc.cfg.MaxErrors)
	tc.names = make(map[types.DefId]string)
	tc.spans = make(map[types.DefId]ast.Span)
	tc.structs = make(map[types.DefId]*structInfo)
	tc.enums = make(map[types.DefId]*enumInfo)
	tc.aliases = make(map[types.DefId]*aliasInfo)
	tc.globals = make(map[types.DefId]types.Type)
	tc.sigs = make(map[types.DefId]*signature)
	tc.functions = nil
	tc.impls = make(map[types.DefId]traits.ImplId)
	tc.locals = newLocalTable()
	tc.current = nil
}

// Check type-checks m and returns the diagnostics found. State from a previous call is
// discarded; queries made after Check describe m.
func (tc *TypeChecker) Check(m *ast.Module) (diags *diag.List) {
	tc.reset()
	defer func() {
		if r := recover(); r != nil {
			span := ast.Span{}
			if tc.current != nil {
				span = tc.current.Span
			}
			tc.diags.Add(diag.New(diag.Internal, span, fmt.Sprintf("internal checker error: %v", r)))
			diags = tc.diags
		}
	}()

	tc.collect(m)
	tc.checkImpls()
	for _, f := range tc.functions {
		tc.checkFunction(f)
	}
	return tc.diags
}

// Diagnostics returns the diagnostics recorded by the last call to Check.
func (tc *TypeChecker) Diagnostics() *diag.List { return tc.diags }

// Traits returns the trait resolver populated by the last call to Check.
func (tc *TypeChecker) Traits() *traits.Resolver { return tc.traits }

// GlobalSpan returns the span of the item def.
func (tc *TypeChecker) GlobalSpan(def types.DefId) (ast.Span, bool) {
	span, ok := tc.spans[def]
	return span, ok
}

// StructFieldType returns the declared type of a struct field. Generic parameters of the
// struct appear as types.Param.
func (tc *TypeChecker) StructFieldType(def types.DefId, field string) (types.Type, bool) {
	s, ok := tc.structs[def]
	if !ok {
		return nil, false
	}
	return s.field(field)
}

// StructFields returns the declared fields of a struct in declaration order.
func (tc *TypeChecker) StructFields(def types.DefId) ([]FieldInfo, bool) {
	s, ok := tc.structs[def]
	if !ok {
		return nil, false
	}
	return s.fields, true
}

// EnumVariantTypes returns the field types of an enum variant.
func (tc *TypeChecker) EnumVariantTypes(def types.DefId, variant string) ([]types.Type, bool) {
	e, ok := tc.enums[def]
	if !ok {
		return nil, false
	}
	v, ok := e.variant(variant)
	if !ok {
		return nil, false
	}
	return v.Fields, true
}

// EnumVariants returns the declared variants of an enum in declaration order.
func (tc *TypeChecker) EnumVariants(def types.DefId) ([]VariantInfo, bool) {
	e, ok := tc.enums[def]
	if !ok {
		return nil, false
	}
	return e.variants, true
}

// ResolveTypeAlias expands the alias def applied to args. Cyclic aliases do not resolve.
func (tc *TypeChecker) ResolveTypeAlias(def types.DefId, args []types.Type) (types.Type, bool) {
	a, ok := tc.aliases[def]
	if !ok || a.cyclic {
		return nil, false
	}
	return tc.expandAliases(types.SubstParams(a.target, args)), true
}

// FunctionType returns the solved signature of the function item def.
func (tc *TypeChecker) FunctionType(def types.DefId) (types.Type, bool) {
	t, ok := tc.globals[def]
	if !ok {
		return nil, false
	}
	return tc.subst.Apply(t), true
}

// Apply returns t with all solved type-variables substituted.
func (tc *TypeChecker) Apply(t types.Type) types.Type { return tc.subst.Apply(t) }

// TypeString formats the solved form of t, naming user-defined types by their declared names.
func (tc *TypeChecker) TypeString(t types.Type) string { return tc.printer.String(tc.subst.Apply(t)) }

func (tc *TypeChecker) defName(def types.DefId) string { return tc.names[def] }

func (tc *TypeChecker) fresh() types.Type { return tc.ctx.Fresh() }

func (tc *TypeChecker) tracef(format string, args ...interface{}) {
	if tc.cfg.Trace && tc.cfg.TraceWriter != nil {
		fmt.Fprintf(tc.cfg.TraceWriter, format+"\n", args...)
	}
}

// unify expected with found, tracing the attempt.
func (tc *TypeChecker) unify(expected, found types.Type) error {
	if tc.cfg.Trace {
		tc.tracef("unify %s ~ %s", tc.TypeString(expected), tc.TypeString(found))
	}
	err := Unify(expected, found, tc.subst)
	if err != nil && tc.cfg.Trace {
		tc.tracef("  failed: %v", err)
	}
	return err
}

// resolveType prepares a declared type for inference: bound generic parameters are
// replaced, aliases are expanded, and Unknown placeholders become fresh type-variables.
func (tc *TypeChecker) resolveType(t types.Type) types.Type {
	if t == nil {
		return tc.fresh()
	}
	return tc.ctx.ResolveType(tc.expandAliases(tc.subst.ApplyParams(t)))
}

// expandAliases replaces each reference to a type alias with its target. References to
// cyclic aliases become distinct fresh type-variables at each use; alias targets are stored
// unexpanded.
func (tc *TypeChecker) expandAliases(t types.Type) types.Type {
	if len(tc.aliases) == 0 {
		return t
	}
	return types.Map(t, func(t types.Type) types.Type {
		n, ok := t.(*types.Named)
		if !ok {
			return t
		}
		a, ok := tc.aliases[n.Def]
		if !ok {
			return t
		}
		if a.cyclic {
			return tc.fresh()
		}
		return tc.expandAliases(types.SubstParams(a.target, n.Args))
	})
}

func (tc *TypeChecker) checkFunction(f *ast.Function) {
	sig, ok := tc.sigs[f.Id]
	if !ok || f.Body == nil {
		return
	}
	tc.current = f
	tc.tracef("check %s", f.Name)

	tc.subst.ClearParams()
	for i := range f.Generics {
		tc.subst.BindParam(i, tc.fresh())
	}
	for i, p := range f.Params {
		tc.locals.bind(p.Local, p.Name, tc.subst.ApplyParams(sig.params[i]), p.Span, true)
	}
	ret := tc.subst.ApplyParams(sig.ret)
	body := tc.inferExpr(f.Body)
	if err := tc.unify(ret, body); err != nil {
		d := tc.mismatch(err, ret, body, f.Body.ExprSpan())
		if sig.declaredRet {
			d.WithLabel(f.Span, "expected `"+tc.TypeString(ret)+"` because of the declared return type")
		}
		tc.report(d)
	}

	tc.checkUnused()
	tc.locals.reset()
	tc.subst.ClearParams()
	tc.current = nil
}
