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

// Package traits indexes trait declarations and impl blocks, and resolves methods and
// associated types against self types.
package traits

import (
	"strconv"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/types"
)

// TraitId identifies a registered trait.
type TraitId int

// ImplId identifies a registered impl block.
type ImplId int

// Method declared by a trait. Within Params and Ret, the implementing type is types.SelfParam.
type Method struct {
	Name       string
	Params     []types.Type
	Ret        types.Type
	HasDefault bool
	Span       ast.Span
}

// Signature returns the method's function type with the implementing type substituted for Self.
func (m *Method) Signature(self types.Type) *types.Fn {
	params := make([]types.Type, len(m.Params))
	for i, p := range m.Params {
		params[i] = types.SubstSelf(p, self)
	}
	return &types.Fn{Params: params, Ret: types.SubstSelf(m.Ret, self)}
}

// AssocType is an associated type declared by a trait. Default is nil when the trait
// provides no default.
type AssocType struct {
	Name    string
	Bounds  []types.DefId
	Default types.Type
	Span    ast.Span
}

// Trait is a registered trait declaration.
type Trait struct {
	Id         TraitId
	Def        types.DefId
	Name       string
	Methods    []Method
	AssocTypes []AssocType
	Span       ast.Span
}

// Method returns the declared method with the given name.
func (t *Trait) Method(name string) *Method {
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			return &t.Methods[i]
		}
	}
	return nil
}

// AssocType returns the declared associated type with the given name.
func (t *Trait) AssocType(name string) *AssocType {
	for i := range t.AssocTypes {
		if t.AssocTypes[i].Name == name {
			return &t.AssocTypes[i]
		}
	}
	return nil
}

// ImplMethod is a method provided by an impl block. Type is the signature of the function
// item implementing the method, and may be polymorphic.
type ImplMethod struct {
	Name string
	Func types.DefId
	Type types.Type
	Span ast.Span
}

// AssocBinding binds an associated type within an impl block.
type AssocBinding struct {
	Name string
	Type types.Type
	Span ast.Span
}

// ImplDecl describes an impl block to register. TraitDef is nil for inherent impls.
type ImplDecl struct {
	Def        types.DefId
	TraitDef   *types.DefId
	Self       types.Type
	Methods    []ImplMethod
	AssocTypes []AssocBinding
	Span       ast.Span
}

// Impl is a registered impl block. Trait is nil for inherent impls.
type Impl struct {
	Id         ImplId
	Def        types.DefId
	Trait      *Trait
	Self       types.Type
	Methods    []ImplMethod
	AssocTypes []AssocBinding
	Span       ast.Span
}

// IsInherent reports whether the impl is not tied to a trait.
func (impl *Impl) IsInherent() bool { return impl.Trait == nil }

// Method returns the provided method with the given name.
func (impl *Impl) Method(name string) *ImplMethod {
	for i := range impl.Methods {
		if impl.Methods[i].Name == name {
			return &impl.Methods[i]
		}
	}
	return nil
}

// AssocType returns the associated type binding with the given name.
func (impl *Impl) AssocType(name string) *AssocBinding {
	for i := range impl.AssocTypes {
		if impl.AssocTypes[i].Name == name {
			return &impl.AssocTypes[i]
		}
	}
	return nil
}

// UnknownTraitError is returned when an impl names a trait which has not been registered.
type UnknownTraitError struct {
	Def types.DefId
}

func (e *UnknownTraitError) Error() string {
	return "impl refers to unknown trait " + e.Def.String()
}

// MethodResolution is the outcome of a successful method lookup. For a trait method which
// the impl does not override, Method is nil and TraitMethod holds the declaration with its
// default body.
type MethodResolution struct {
	Impl        *Impl
	Method      *ImplMethod
	Trait       *Trait
	TraitMethod *Method
}

// Inherent reports whether the method was found in an inherent impl.
func (r *MethodResolution) Inherent() bool { return r.Trait == nil }

// Type returns the type of the resolved method, with self substituted for the implementing
// type when the method comes from a trait declaration.
func (r *MethodResolution) Type(self types.Type) types.Type {
	if r.Method != nil {
		return r.Method.Type
	}
	return r.TraitMethod.Signature(self)
}

// Resolver indexes traits and impls. All traits must be registered before the impls
// which refer to them.
//
// A resolver cannot be used concurrently.
type Resolver struct {
	traits     []*Trait
	traitByDef map[types.DefId]TraitId
	// traits declaring each method name, in registration order
	methodTraits map[string][]TraitId

	impls      []*Impl
	traitImpls map[TraitId][]ImplId
	inherent   map[selfKey][]ImplId
	// inherent impls over type-variables or generic parameters
	inherentAny []ImplId
	inherentAll []ImplId
}

// Create an empty resolver.
func New() *Resolver {
	return &Resolver{
		traitByDef:   make(map[types.DefId]TraitId),
		methodTraits: make(map[string][]TraitId),
		traitImpls:   make(map[TraitId][]ImplId),
		inherent:     make(map[selfKey][]ImplId),
	}
}

// RegisterTrait adds a trait declaration. The Id field of t is assigned by the resolver.
func (r *Resolver) RegisterTrait(t Trait) TraitId {
	id := TraitId(len(r.traits))
	t.Id = id
	r.traits = append(r.traits, &t)
	r.traitByDef[t.Def] = id
	for _, m := range t.Methods {
		r.methodTraits[m.Name] = append(r.methodTraits[m.Name], id)
	}
	return id
}

// Trait returns the trait with the given id.
func (r *Resolver) Trait(id TraitId) *Trait { return r.traits[id] }

// TraitByDef returns the trait declared by the item def.
func (r *Resolver) TraitByDef(def types.DefId) (*Trait, bool) {
	id, ok := r.traitByDef[def]
	if !ok {
		return nil, false
	}
	return r.traits[id], true
}

// Traits returns all registered traits in registration order.
func (r *Resolver) Traits() []*Trait { return r.traits }

// RegisterImpl adds an impl block. If the impl names a trait which has not been registered,
// an *UnknownTraitError is returned and the impl is not registered.
func (r *Resolver) RegisterImpl(decl ImplDecl) (ImplId, error) {
	impl := &Impl{
		Id:         ImplId(len(r.impls)),
		Def:        decl.Def,
		Self:       decl.Self,
		Methods:    decl.Methods,
		AssocTypes: decl.AssocTypes,
		Span:       decl.Span,
	}
	if decl.TraitDef != nil {
		trait, ok := r.TraitByDef(*decl.TraitDef)
		if !ok {
			return -1, &UnknownTraitError{Def: *decl.TraitDef}
		}
		impl.Trait = trait
	}
	r.impls = append(r.impls, impl)

	switch {
	case impl.Trait != nil:
		r.traitImpls[impl.Trait.Id] = append(r.traitImpls[impl.Trait.Id], impl.Id)
	default:
		r.inherentAll = append(r.inherentAll, impl.Id)
		if key, ok := keyOf(impl.Self); ok {
			r.inherent[key] = append(r.inherent[key], impl.Id)
		} else {
			r.inherentAny = append(r.inherentAny, impl.Id)
		}
	}
	return impl.Id, nil
}

// Impl returns the impl with the given id.
func (r *Resolver) Impl(id ImplId) *Impl { return r.impls[id] }

// Impls returns all registered impls in registration order.
func (r *Resolver) Impls() []*Impl { return r.impls }

// ImplsOf returns the impls of a trait in registration order.
func (r *Resolver) ImplsOf(trait TraitId) []ImplId { return r.traitImpls[trait] }

// InherentImpls returns the inherent impls whose self type matches self, in registration order.
func (r *Resolver) InherentImpls(self types.Type) []*Impl {
	var candidates []ImplId
	if key, ok := keyOf(self); ok {
		candidates = mergeIds(r.inherent[key], r.inherentAny)
	} else {
		candidates = r.inherentAll
	}
	var found []*Impl
	for _, id := range candidates {
		if impl := r.impls[id]; Matches(impl.Self, self) {
			found = append(found, impl)
		}
	}
	return found
}

// FindImpl returns the first impl of trait whose self type matches self.
func (r *Resolver) FindImpl(self types.Type, trait TraitId) (*Impl, bool) {
	for _, id := range r.traitImpls[trait] {
		if impl := r.impls[id]; Matches(impl.Self, self) {
			return impl, true
		}
	}
	return nil, false
}

// ResolveMethod finds the method name for self. Inherent impls take precedence over traits.
// Traits are then searched in registration order, and the first impl of the first trait
// declaring name which matches self is selected.
func (r *Resolver) ResolveMethod(self types.Type, name string) (*MethodResolution, bool) {
	for _, impl := range r.InherentImpls(self) {
		if m := impl.Method(name); m != nil {
			return &MethodResolution{Impl: impl, Method: m}, true
		}
	}
	for _, tid := range r.methodTraits[name] {
		impl, ok := r.FindImpl(self, tid)
		if !ok {
			continue
		}
		trait := r.traits[tid]
		return &MethodResolution{
			Impl:        impl,
			Method:      impl.Method(name),
			Trait:       trait,
			TraitMethod: trait.Method(name),
		}, true
	}
	return nil, false
}

// ResolveAssocType returns the associated type name of trait for self. The binding of the
// first matching impl is used, falling back to the trait's default. Generic parameters of
// the impl are replaced with the corresponding components of self.
func (r *Resolver) ResolveAssocType(self types.Type, trait TraitId, name string) (types.Type, bool) {
	for _, id := range r.traitImpls[trait] {
		impl := r.impls[id]
		binds := make(map[int]types.Type)
		if !match(impl.Self, self, binds) {
			continue
		}
		var t types.Type
		if b := impl.AssocType(name); b != nil {
			t = b.Type
		} else if decl := r.traits[trait].AssocType(name); decl != nil && decl.Default != nil {
			t = decl.Default
		} else {
			return nil, false
		}
		return types.SubstSelf(substBinds(t, binds), self), true
	}
	return nil, false
}

// CheckImplCompleteness returns the names of trait methods without a default body which
// the impl does not provide, in declaration order. Inherent impls are always complete.
func (r *Resolver) CheckImplCompleteness(id ImplId) []string {
	impl := r.impls[id]
	if impl.Trait == nil {
		return nil
	}
	var missing []string
	for _, m := range impl.Trait.Methods {
		if !m.HasDefault && impl.Method(m.Name) == nil {
			missing = append(missing, m.Name)
		}
	}
	return missing
}

// CheckImplAssocTypes returns the names of associated types without a default which the
// impl does not bind, in declaration order.
func (r *Resolver) CheckImplAssocTypes(id ImplId) []string {
	impl := r.impls[id]
	if impl.Trait == nil {
		return nil
	}
	var missing []string
	for _, at := range impl.Trait.AssocTypes {
		if at.Default == nil && impl.AssocType(at.Name) == nil {
			missing = append(missing, at.Name)
		}
	}
	return missing
}

// ExtraImplItems returns the methods and associated types of a trait impl which the trait
// does not declare.
func (r *Resolver) ExtraImplItems(id ImplId) (methods []*ImplMethod, assocTypes []*AssocBinding) {
	impl := r.impls[id]
	if impl.Trait == nil {
		return nil, nil
	}
	for i := range impl.Methods {
		if impl.Trait.Method(impl.Methods[i].Name) == nil {
			methods = append(methods, &impl.Methods[i])
		}
	}
	for i := range impl.AssocTypes {
		if impl.Trait.AssocType(impl.AssocTypes[i].Name) == nil {
			assocTypes = append(assocTypes, &impl.AssocTypes[i])
		}
	}
	return methods, assocTypes
}

func substBinds(t types.Type, binds map[int]types.Type) types.Type {
	if len(binds) == 0 {
		return t
	}
	return types.Map(t, func(t types.Type) types.Type {
		if p, ok := t.(*types.Param); ok && !p.IsSelf() {
			if b, ok := binds[p.Index]; ok {
				return b
			}
		}
		return t
	})
}

// merge two ascending id lists
func mergeIds(a, b []ImplId) []ImplId {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	merged := make([]ImplId, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	return append(merged, b[j:]...)
}

func (id TraitId) String() string { return "trait#" + strconv.Itoa(int(id)) }
func (id ImplId) String() string  { return "impl#" + strconv.Itoa(int(id)) }
