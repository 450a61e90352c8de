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

package polycheck_test

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	. "github.com/wdamron/polycheck"
	. "github.com/wdamron/polycheck/construct"

	"github.com/wdamron/polycheck/ast"
	"github.com/wdamron/polycheck/diag"
	"github.com/wdamron/polycheck/types"
)

func check(t *testing.T, items ...ast.Item) (*TypeChecker, *diag.List) {
	t.Helper()
	cfg := DefaultConfig()
	tc := New(cfg)
	return tc, tc.Check(Module(items...))
}

func expectClean(t *testing.T, diags *diag.List) {
	t.Helper()
	if diags.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %s", describe(diags))
	}
}

func expectCodes(t *testing.T, diags *diag.List, codes ...diag.Code) {
	t.Helper()
	all := diags.All()
	if len(all) != len(codes) {
		t.Fatalf("expected %d diagnostics, got %s", len(codes), describe(diags))
	}
	for i, d := range all {
		if d.Code != codes[i] {
			t.Fatalf("diagnostic %d: expected %s, got %s", i, codes[i], describe(diags))
		}
	}
}

func describe(diags *diag.List) string {
	var sb strings.Builder
	for _, d := range diags.All() {
		sb.WriteString("\n  ")
		sb.WriteString(d.Error())
		for _, n := range d.Notes {
			sb.WriteString("\n    note: " + n)
		}
	}
	if sb.Len() == 0 {
		return "none"
	}
	return sb.String()
}

func expectType(t *testing.T, tc *TypeChecker, def ast.DefId, want string) {
	t.Helper()
	ty, ok := tc.FunctionType(def)
	if !ok {
		t.Fatalf("no signature for %s", def)
	}
	if got := tc.TypeString(ty); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestFactorial(t *testing.T) {
	const fact ast.DefId = 1
	n := Local(1)
	body := If(
		Bin(ast.Le, n, Int("1")),
		Int("1"),
		Bin(ast.Mul, n, Call(Global(fact), Bin(ast.Sub, n, Int("1")))))

	tc, diags := check(t, Fn(fact, "fact", []ast.Param{P(1, "n")}, body))
	expectClean(t, diags)
	expectType(t, tc, fact, "(Int) -> Int")
}

func TestArithmeticOnBool(t *testing.T) {
	const bad ast.DefId = 1
	_, diags := check(t, Fn(bad, "bad", []ast.Param{P(1, "x")}, Bin(ast.Add, Local(1), Bool(true))))
	expectCodes(t, diags, diag.TypeMismatch)
}

func TestLetPolymorphism(t *testing.T) {
	const main ast.DefId = 1
	id := Lambda([]ast.Param{P(2, "x")}, Local(2))
	body := Block(
		Tuple(Call(Local(1), Int("1")), Call(Local(1), Str("a"))),
		Let(1, "id", id))

	tc, diags := check(t, Fn(main, "main", nil, body))
	expectClean(t, diags)
	expectType(t, tc, main, "() -> (Int, String)")
}

func TestLambdaParamsAreMonomorphic(t *testing.T) {
	const main ast.DefId = 1
	// fn(f) (f(1), f("a")) must not typecheck: lambda parameters are not generalized
	body := Lambda([]ast.Param{P(1, "f")}, Tuple(Call(Local(1), Int("1")), Call(Local(1), Str("a"))))
	_, diags := check(t, Fn(main, "main", nil, body))
	expectCodes(t, diags, diag.TypeMismatch)
}

func TestGenericFunction(t *testing.T) {
	const (
		id   ast.DefId = 1
		main ast.DefId = 2
	)
	T := TParam(0, "T")
	identity := FnT(id, "id", []ast.Param{PT(1, "x", T)}, T, Local(1))
	identity.Generics = Generics("T")
	body := Tuple(Call(Global(id), Int("1")), Call(Global(id), Bool(true)))

	tc, diags := check(t, identity, Fn(main, "main", nil, body))
	expectClean(t, diags)
	expectType(t, tc, id, "forall T. (T) -> T")
	expectType(t, tc, main, "() -> (Int, Bool)")
}

func TestCallArity(t *testing.T) {
	const (
		add  ast.DefId = 1
		main ast.DefId = 2
	)
	_, diags := check(t,
		Fn(add, "add", []ast.Param{P(1, "a"), P(2, "b")}, Bin(ast.Add, Local(1), Local(2))),
		Fn(main, "main", nil, Call(Global(add), Int("1"))))
	expectCodes(t, diags, diag.TypeMismatch)
	if msg := diags.All()[0].Message; !strings.Contains(msg, "takes 2 arguments but 1 argument was supplied") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestCallArityLeavesResultUnconstrained(t *testing.T) {
	const (
		two  ast.DefId = 1
		main ast.DefId = 2
	)
	_, diags := check(t,
		FnT(two, "two", []ast.Param{PT(1, "a", types.Int), PT(2, "b", types.Int)}, types.Int, Local(1)),
		Fn(main, "main", nil, Bin(ast.And, Call(Global(two), Int("1")), Bool(true))))
	expectCodes(t, diags, diag.TypeMismatch)
	if msg := diags.All()[0].Message; !strings.Contains(msg, "takes 2 arguments but 1 argument was supplied") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestCallArgumentMismatch(t *testing.T) {
	const (
		two  ast.DefId = 1
		main ast.DefId = 2
	)
	_, diags := check(t,
		FnT(two, "two", []ast.Param{PT(1, "a", types.Int), PT(2, "b", types.Int)}, types.Int, Local(1)),
		Fn(main, "main", nil, Call(Global(two), Int("1"), Str("x"))))
	expectCodes(t, diags, diag.TypeMismatch)
	if notes := diags.All()[0].Notes; len(notes) != 1 || notes[0] != "expected `Int`, found `String`" {
		t.Fatalf("expected the mismatched argument to be described, got %s", describe(diags))
	}
}

func TestCallNonFunction(t *testing.T) {
	const main ast.DefId = 1
	_, diags := check(t, Fn(main, "main", nil, Call(Int("1"), Int("2"))))
	expectCodes(t, diags, diag.TypeMismatch)
}

func TestInfiniteType(t *testing.T) {
	const f ast.DefId = 1
	_, diags := check(t, Fn(f, "f", []ast.Param{P(1, "x")}, Call(Local(1), Local(1))))
	expectCodes(t, diags, diag.InfiniteType)
}

func TestRecordWidth(t *testing.T) {
	const main ast.DefId = 1
	narrow := TRecord(map[string]types.Type{"a": types.Int})
	wide := Record(Init("a", Int("1")), Init("b", Int("2")))
	_, diags := check(t, Fn(main, "main", nil, Block(Local(1), LetT(1, "p", narrow, wide))))
	expectCodes(t, diags, diag.TypeMismatch)
	if notes := diags.All()[0].Notes; len(notes) == 0 || !strings.Contains(notes[0], "unexpected b") {
		t.Fatalf("expected a note naming the extra field, got %v", notes)
	}
}

func TestRecordFieldAccess(t *testing.T) {
	const (
		get  ast.DefId = 1
		main ast.DefId = 2
		bad  ast.DefId = 3
	)
	r := Record(Init("a", Int("1")), Init("b", Str("x")))
	tc, diags := check(t,
		Fn(main, "main", nil, Field(r, "b")),
		Fn(get, "get", []ast.Param{P(1, "r")}, Field(Local(1), "a")),
		Fn(bad, "bad", nil, Index(Tuple(Int("1"), Bool(true)), 2)))
	expectCodes(t, diags, diag.AmbiguousType, diag.UnknownField)
	expectType(t, tc, main, "() -> String")
}

func TestUnusedVariables(t *testing.T) {
	const main ast.DefId = 1
	body := Block(Int("3"), Let(1, "x", Int("1")), Let(2, "_y", Int("2")))
	_, diags := check(t, Fn(main, "main", nil, body))
	expectCodes(t, diags, diag.UnusedVariable)
	if d := diags.All()[0]; d.Severity != diag.Warning || !strings.Contains(d.Message, "`x`") {
		t.Fatalf("expected a warning naming x, got %s", d.Error())
	}

	cfg := DefaultConfig()
	cfg.WarnUnused = false
	if diags := New(cfg).Check(Module(Fn(main, "main", nil, body))); diags.Len() != 0 {
		t.Fatalf("expected unused warnings to be disabled, got %s", describe(diags))
	}
}

func TestUnboundLocal(t *testing.T) {
	const main ast.DefId = 1
	_, diags := check(t, Fn(main, "main", nil, Bin(ast.Add, Local(7), Int("1"))))
	expectCodes(t, diags, diag.UnboundVariable)
}

const (
	pointDef ast.DefId = iota + 100
	showDef
	showImplDef
	pointImplDef
	showPointDef
	pointShowDef
	mainDef
)

func point() *ast.Struct {
	return Struct(pointDef, "Point", nil, StructField("x", types.Int), StructField("y", types.Int))
}

func showTrait() *ast.Trait {
	return Trait(showDef, "Show", []ast.TraitMethod{
		TraitMethod("show", []types.Type{types.SelfParam}, types.String, false),
		TraitMethod("debug", []types.Type{types.SelfParam}, types.String, true),
	})
}

func TestInherentMethodShadowsTrait(t *testing.T) {
	self := TNamed(pointDef)
	tc, diags := check(t,
		point(),
		showTrait(),
		FnT(showPointDef, "show_point", []ast.Param{PT(1, "self", self)}, types.String, Str("p")),
		FnT(pointShowDef, "point_show", []ast.Param{PT(1, "self", self)}, types.Int, Int("1")),
		Impl(showImplDef, showDef, self, ImplMethod("show", showPointDef)),
		InherentImpl(pointImplDef, self, ImplMethod("show", pointShowDef)),
		Fn(mainDef, "main", []ast.Param{PT(1, "p", self)}, Method(Local(1), "show")))
	expectClean(t, diags)
	expectType(t, tc, mainDef, "(Point) -> Int")
}

func TestTraitMethodCall(t *testing.T) {
	self := TNamed(pointDef)
	tc, diags := check(t,
		point(),
		showTrait(),
		FnT(showPointDef, "show_point", []ast.Param{PT(1, "self", self)}, types.String, Str("p")),
		Impl(showImplDef, showDef, self, ImplMethod("show", showPointDef)),
		Fn(mainDef, "main", []ast.Param{PT(1, "p", self)},
			Tuple(Method(Local(1), "show"), Method(Local(1), "debug"))))
	expectClean(t, diags)
	expectType(t, tc, mainDef, "(Point) -> (String, String)")
}

func TestMissingMethodCall(t *testing.T) {
	_, diags := check(t, point(), Fn(mainDef, "main", []ast.Param{PT(1, "p", TNamed(pointDef))}, Method(Local(1), "area")))
	expectCodes(t, diags, diag.MissingMethod)
}

func TestImplCompleteness(t *testing.T) {
	_, diags := check(t, point(), showTrait(), Impl(showImplDef, showDef, TNamed(pointDef)))
	expectCodes(t, diags, diag.MissingMethod)
	if msg := diags.All()[0].Message; !strings.Contains(msg, "`show`") {
		t.Fatalf("expected the missing method to be named: %s", msg)
	}
}

func TestImplExtraItemsAndSignature(t *testing.T) {
	self := TNamed(pointDef)
	_, diags := check(t,
		point(),
		showTrait(),
		// show returns Int where the trait declares String:
		FnT(showPointDef, "show_point", []ast.Param{PT(1, "self", self)}, types.Int, Int("1")),
		FnT(pointShowDef, "extra", []ast.Param{PT(1, "self", self)}, types.Int, Int("1")),
		Impl(showImplDef, showDef, self, ImplMethod("show", showPointDef), ImplMethod("area", pointShowDef)))
	expectCodes(t, diags, diag.ExtraImplItem, diag.TypeMismatch)
}

func TestUnknownTrait(t *testing.T) {
	_, diags := check(t, point(), Impl(showImplDef, showDef, TNamed(pointDef)))
	expectCodes(t, diags, diag.UnknownTrait)
}

func TestAssociatedTypes(t *testing.T) {
	const (
		iterDef     ast.DefId = 1
		iterImplDef ast.DefId = 2
	)
	iter := Trait(iterDef, "Iter", nil,
		ast.AssocType{Name: "Item"},
		ast.AssocType{Name: "Size", Default: types.Int})
	impl := Impl(iterImplDef, iterDef, TList(TParam(0, "T")))
	impl.AssocTypes = []ast.AssocBinding{{Name: "Item", Type: TParam(0, "T")}}
	incomplete := Impl(3, iterDef, types.String)

	tc, diags := check(t, iter, impl, incomplete)
	expectCodes(t, diags, diag.MissingAssocType)

	trait, ok := tc.Traits().TraitByDef(iterDef)
	if !ok {
		t.Fatalf("expected Iter to be registered")
	}
	item, ok := tc.Traits().ResolveAssocType(TList(types.Char), trait.Id, "Item")
	if !ok || tc.TypeString(item) != "Char" {
		t.Fatalf("expected Item = Char, got %s", spew.Sdump(item))
	}
	size, ok := tc.Traits().ResolveAssocType(TList(types.Char), trait.Id, "Size")
	if !ok || size != types.Type(types.Int) {
		t.Fatalf("expected the default Size = Int")
	}
}

const (
	optionDef ast.DefId = iota + 200
	unwrapDef
	useDef
)

func option() *ast.Enum {
	return Enum(optionDef, "Option", Generics("T"), V("None"), V("Some", TParam(0, "T")))
}

func TestVariantsAndPatterns(t *testing.T) {
	o := Local(1)
	unwrap := Fn(unwrapDef, "unwrap", []ast.Param{P(1, "o")}, Match(o,
		Arm(CtorP(optionDef, "Some", BindP(2, "x")), Local(2)),
		Arm(CtorP(optionDef, "None"), Int("0"))))
	use := Fn(useDef, "use", nil, Call(Global(unwrapDef), Variant(optionDef, "Some", Int("5"))))

	tc, diags := check(t, option(), unwrap, use)
	expectClean(t, diags)
	expectType(t, tc, unwrapDef, "(Option<Int>) -> Int")
	expectType(t, tc, useDef, "() -> Int")

	names, _ := tc.EnumVariants(optionDef)
	if len(names) != 2 || names[1].Name != "Some" {
		t.Fatalf("unexpected variants %v", names)
	}
	fields, ok := tc.EnumVariantTypes(optionDef, "Some")
	if !ok || len(fields) != 1 || tc.TypeString(fields[0]) != "T" {
		t.Fatalf("unexpected variant fields %v", fields)
	}
}

func TestVariantLiteralErrors(t *testing.T) {
	_, diags := check(t, option(),
		Fn(useDef, "use", nil, Tuple(
			Variant(optionDef, "Some"),
			Variant(optionDef, "Many", Int("1")))))
	expectCodes(t, diags, diag.TypeMismatch, diag.UnknownField)
}

func TestMatchCoverage(t *testing.T) {
	cases := []struct {
		name  string
		arms  []ast.Arm
		codes []diag.Code
	}{
		{"missing variant", []ast.Arm{Arm(CtorP(optionDef, "Some", Wild()), Int("1"))}, []diag.Code{diag.NonExhaustiveMatch}},
		{"complete", []ast.Arm{Arm(CtorP(optionDef, "None"), Int("0")), Arm(CtorP(optionDef, "Some", Wild()), Int("1"))}, nil},
		{"after wildcard", []ast.Arm{Arm(Wild(), Int("0")), Arm(CtorP(optionDef, "None"), Int("1"))}, []diag.Code{diag.UnreachablePattern}},
		{"repeated variant", []ast.Arm{
			Arm(CtorP(optionDef, "None"), Int("0")),
			Arm(CtorP(optionDef, "None"), Int("1")),
			Arm(Wild(), Int("2")),
		}, []diag.Code{diag.UnreachablePattern}},
		{"guarded", []ast.Arm{
			GuardArm(Wild(), Bool(true), Int("0")),
			Arm(CtorP(optionDef, "None"), Int("1")),
		}, []diag.Code{diag.NonExhaustiveMatch}},
		{"empty", nil, []diag.Code{diag.NonExhaustiveMatch}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body := Match(Local(1), c.arms...)
			_, diags := check(t, option(), Fn(unwrapDef, "f", []ast.Param{PT(1, "o", TNamed(optionDef, types.Int))}, body))
			expectCodes(t, diags, c.codes...)
		})
	}
}

func TestBoolMatchCoverage(t *testing.T) {
	body := Match(Local(1), Arm(LitP(Bool(true)), Int("1")))
	_, diags := check(t, Fn(unwrapDef, "f", []ast.Param{PT(1, "b", types.Bool)}, body))
	expectCodes(t, diags, diag.NonExhaustiveMatch)
	if msg := diags.All()[0].Message; !strings.Contains(msg, "`false`") {
		t.Fatalf("expected false to be reported: %s", msg)
	}
}

func TestMatchArmsMustAgree(t *testing.T) {
	body := Match(Local(1),
		Arm(LitP(Bool(true)), Int("1")),
		Arm(LitP(Bool(false)), Str("no")))
	_, diags := check(t, Fn(unwrapDef, "f", []ast.Param{P(1, "b")}, body))
	expectCodes(t, diags, diag.TypeMismatch)
}

func TestAmbiguousConstructorPattern(t *testing.T) {
	const (
		shapeDef ast.DefId = 1
		areaDef  ast.DefId = 2
	)
	shape := Enum(shapeDef, "Shape", nil, V("Circle", types.Float), V("Square", types.Float))
	body := Match(Local(1),
		Arm(CtorP(shapeDef, "Square", BindP(2, "s")), Bin(ast.Mul, Local(2), Local(2))))
	_, diags := check(t, shape, Fn(areaDef, "area", []ast.Param{P(1, "shape")}, body))
	if len(diags.WithCode(diag.AmbiguousType)) != 1 {
		t.Fatalf("expected the arity-based variant selection to be flagged, got %s", describe(diags))
	}
	// the arm covers Square, the variant it names
	missing := diags.WithCode(diag.NonExhaustiveMatch)
	if len(missing) != 1 || !strings.Contains(missing[0].Message, "`Circle(_)`") || strings.Contains(missing[0].Message, "Square") {
		t.Fatalf("expected only Circle to be uncovered, got %s", describe(diags))
	}
}

func TestSameArityVariantsCoverage(t *testing.T) {
	const (
		resultDef ast.DefId = 1
		fDef      ast.DefId = 2
	)
	T, E := TParam(0, "T"), TParam(1, "E")
	result := Enum(resultDef, "Result", Generics("T", "E"), V("Ok", T), V("Err", E))
	param := []ast.Param{PT(1, "r", TNamed(resultDef, types.Int, types.String))}

	cases := []struct {
		name  string
		arms  []ast.Arm
		codes []diag.Code
	}{
		{"exhaustive", []ast.Arm{
			Arm(CtorP(resultDef, "Ok", Wild()), Int("1")),
			Arm(CtorP(resultDef, "Err", Wild()), Int("0")),
		}, nil},
		{"repeated variant", []ast.Arm{
			Arm(CtorP(resultDef, "Ok", Wild()), Int("1")),
			Arm(CtorP(resultDef, "Ok", Wild()), Int("2")),
			Arm(CtorP(resultDef, "Err", Wild()), Int("0")),
		}, []diag.Code{diag.UnreachablePattern}},
		{"missing variant", []ast.Arm{
			Arm(CtorP(resultDef, "Err", Wild()), Int("0")),
		}, []diag.Code{diag.NonExhaustiveMatch}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, diags := check(t, result, Fn(fDef, "f", param, Match(Local(1), c.arms...)))
			var got []diag.Code
			for _, d := range diags.All() {
				if d.Code != diag.AmbiguousType {
					got = append(got, d.Code)
				}
			}
			if len(got) != len(c.codes) {
				t.Fatalf("expected %v, got %s", c.codes, describe(diags))
			}
			for i := range got {
				if got[i] != c.codes[i] {
					t.Fatalf("expected %v, got %s", c.codes, describe(diags))
				}
			}
		})
	}
}

func TestStructLiterals(t *testing.T) {
	tc, diags := check(t, point(),
		Fn(mainDef, "main", nil, Tuple(
			StructLit(pointDef, Init("x", Int("1")), Init("y", Int("2"))),
			StructLit(pointDef, Init("x", Int("1"))),
			StructLit(pointDef, Init("x", Int("1")), Init("y", Int("2")), Init("z", Int("3"))),
			StructLit(pointDef, Init("x", Bool(true)), Init("y", Int("2"))))))
	expectCodes(t, diags, diag.MissingField, diag.UnknownField, diag.TypeMismatch)

	fields, ok := tc.StructFields(pointDef)
	if !ok || len(fields) != 2 || fields[1].Name != "y" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if ft, ok := tc.StructFieldType(pointDef, "x"); !ok || ft != types.Type(types.Int) {
		t.Fatalf("expected x: Int")
	}
	if _, ok := tc.GlobalSpan(pointDef); !ok {
		t.Fatalf("expected a span for Point")
	}
}

func TestStructFieldAccess(t *testing.T) {
	const (
		boxDef ast.DefId = 1
		getDef ast.DefId = 2
	)
	box := Struct(boxDef, "Box", Generics("T"), StructField("value", TParam(0, "T")))
	get := Fn(getDef, "get", nil, Field(StructLit(boxDef, Init("value", Str("v"))), "value"))
	tc, diags := check(t, box, get)
	expectClean(t, diags)
	expectType(t, tc, getDef, "() -> String")
}

func TestTypeAliases(t *testing.T) {
	const (
		pairDef ast.DefId = 1
		aDef    ast.DefId = 2
		bDef    ast.DefId = 3
		selfDef ast.DefId = 4
		mainDef ast.DefId = 5
	)
	A := TParam(0, "A")
	tc, diags := check(t,
		Alias(pairDef, "Pair", Generics("A"), TTuple(A, A)),
		Alias(aDef, "A", nil, TNamed(bDef)),
		Alias(bDef, "B", nil, TList(TNamed(aDef))),
		Alias(selfDef, "Self", nil, TFn1(TNamed(selfDef), types.Int)),
		FnT(mainDef, "main", nil, TNamed(pairDef, types.Int), Tuple(Int("1"), Int("2"))))
	expectCodes(t, diags, diag.CyclicDependency, diag.CyclicDependency)

	if ty, ok := tc.ResolveTypeAlias(pairDef, []types.Type{types.Bool}); !ok || tc.TypeString(ty) != "(Bool, Bool)" {
		t.Fatalf("unexpected alias expansion")
	}
	if _, ok := tc.ResolveTypeAlias(aDef, nil); ok {
		t.Fatalf("cyclic aliases must not resolve")
	}
	expectType(t, tc, mainDef, "() -> (Int, Int)")
}

func TestAliasOverCyclicAlias(t *testing.T) {
	const (
		loopDef ast.DefId = 1
		wrapDef ast.DefId = 2
		fDef    ast.DefId = 3
		gDef    ast.DefId = 4
		mainDef ast.DefId = 5
	)
	wrap := TNamed(wrapDef)
	_, diags := check(t,
		Alias(loopDef, "Loop", nil, TList(TNamed(loopDef))),
		Alias(wrapDef, "Wrap", nil, TTuple(TNamed(loopDef))),
		Fn(fDef, "f", []ast.Param{PT(1, "x", wrap)}, Int("1")),
		Fn(gDef, "g", []ast.Param{PT(1, "y", wrap)}, Int("2")),
		Fn(mainDef, "main", nil, Tuple(
			Call(Global(fDef), Tuple(Int("1"))),
			Call(Global(gDef), Tuple(Bool(true))))))
	// each use of Wrap gets its own placeholder for the cyclic reference
	expectCodes(t, diags, diag.CyclicDependency)
}

func TestIfWithoutElse(t *testing.T) {
	cases := []struct {
		name  string
		then  ast.Expr
		typ   string
		codes []diag.Code
	}{
		{"unit branch", Unit(), "() -> Unit", nil},
		{"value branch", Int("1"), "() -> Unit", []diag.Code{diag.TypeMismatch}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tc, diags := check(t, Fn(mainDef, "main", nil, If(Bool(true), c.then, nil)))
			expectCodes(t, diags, c.codes...)
			expectType(t, tc, mainDef, c.typ)
		})
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		name  string
		expr  ast.Expr
		typ   string
		codes []diag.Code
	}{
		{"float arithmetic", Bin(ast.Div, Float("1.0"), Float("2.0")), "() -> Float", nil},
		{"mixed arithmetic", Bin(ast.Add, Int("1"), Float("2.0")), "() -> Int", []diag.Code{diag.TypeMismatch}},
		{"string arithmetic", Bin(ast.Sub, Str("a"), Str("b")), "() -> String", []diag.Code{diag.TypeMismatch}},
		{"comparison", Bin(ast.Lt, Str("a"), Str("b")), "() -> Bool", nil},
		{"logic", Bin(ast.And, Bool(true), Int("1")), "() -> Bool", []diag.Code{diag.TypeMismatch}},
		{"concat strings", Bin(ast.Concat, Str("a"), Str("b")), "() -> String", nil},
		{"concat lists", Bin(ast.Concat, List(Int("1")), List()), "() -> List<Int>", nil},
		{"concat ints", Bin(ast.Concat, Int("1"), Int("2")), "() -> Int", []diag.Code{diag.TypeMismatch}},
		{"pipe", Bin(ast.Pipe, Int("1"), Lambda([]ast.Param{P(1, "x")}, Bin(ast.Eq, Local(1), Int("2")))), "() -> Bool", nil},
		{"pipe non-function", Bin(ast.Pipe, Int("1"), Int("2")), "() -> '_1", []diag.Code{diag.TypeMismatch}},
		{"negate", Un(ast.Neg, Float("1.5")), "() -> Float", nil},
		{"negate bool", Un(ast.Neg, Bool(true)), "() -> Bool", []diag.Code{diag.TypeMismatch}},
		{"not", Un(ast.Not, Bool(false)), "() -> Bool", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tc, diags := check(t, Fn(mainDef, "main", nil, c.expr))
			expectCodes(t, diags, c.codes...)
			if c.codes == nil {
				expectType(t, tc, mainDef, c.typ)
			}
		})
	}
}

func TestListsAndAscription(t *testing.T) {
	tc, diags := check(t,
		Fn(mainDef, "main", nil, Ascribe(List(), TList(types.Char))),
		Fn(useDef, "use", nil, List(Int("1"), Str("2"))))
	expectCodes(t, diags, diag.TypeMismatch)
	expectType(t, tc, mainDef, "() -> List<Char>")
}

func TestPatternLet(t *testing.T) {
	body := Block(Bin(ast.Add, Local(1), Local(3)),
		LetP(TupleP(BindP(1, "a"), Wild()), Tuple(Int("1"), Str("b"))),
		LetP(RecordP(FieldP("c", BindP(3, "c"))), Record(Init("c", Int("2")))),
		LetP(ListP(BindP(4, "_d")), List(Bool(true))))
	tc, diags := check(t, Fn(mainDef, "main", nil, body))
	expectClean(t, diags)
	expectType(t, tc, mainDef, "() -> Int")
}

func TestMaxErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxErrors = 1
	tc := New(cfg)
	diags := tc.Check(Module(Fn(mainDef, "main", nil, Tuple(
		Bin(ast.Add, Int("1"), Bool(true)),
		Bin(ast.Add, Int("1"), Str("a"))))))
	if len(diags.Errors()) != 1 || diags.Dropped() != 1 {
		t.Fatalf("expected one recorded and one dropped error, got %s", describe(diags))
	}
}

func TestCheckResetsState(t *testing.T) {
	tc := New(DefaultConfig())
	bad := Module(Fn(mainDef, "main", nil, Bin(ast.Add, Int("1"), Bool(true))))
	if diags := tc.Check(bad); !diags.HasErrors() {
		t.Fatalf("expected an error")
	}
	good := Module(Fn(mainDef, "main", nil, Int("1")))
	if diags := tc.Check(good); diags.Len() != 0 {
		t.Fatalf("diagnostics leaked between checks: %s", describe(diags))
	}
	expectType(t, tc, mainDef, "() -> Int")
}

func TestUnsupportedSyntax(t *testing.T) {
	_, diags := check(t, Fn(mainDef, "main", nil, &weirdExpr{}))
	expectCodes(t, diags, diag.Internal)
	if notes := diags.All()[0].Notes; len(notes) != 1 || !strings.Contains(notes[0], "weirdExpr") {
		t.Fatalf("expected a dump of the node, got %v", notes)
	}
}

type weirdExpr struct{ Span ast.Span }

func (e *weirdExpr) ExprName() string   { return "Weird" }
func (e *weirdExpr) ExprSpan() ast.Span { return e.Span }
