package typesystem_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

func TestIntrinsicsAreStableAcrossInstances(t *testing.T) {
	a := typesystem.New()
	b := typesystem.New()
	if a.String() != b.String() {
		t.Fatalf("string intrinsic TypeId differs across Interner instances: %d vs %d", a.String(), b.String())
	}
	if a.Any() == a.Never() {
		t.Fatalf("distinct intrinsics must not share a TypeId")
	}
}

func TestStructurallyIdenticalLiteralsShareATypeId(t *testing.T) {
	in := typesystem.New()
	a := in.LiteralString("hello")
	b := in.LiteralString("hello")
	if a != b {
		t.Fatalf("identical string literals must intern to the same TypeId, got %d and %d", a, b)
	}
	if in.LiteralString("hello") == in.LiteralString("world") {
		t.Fatalf("distinct string literals must not collide")
	}
}

func TestStructurallyIdenticalObjectsShareATypeId(t *testing.T) {
	in := typesystem.New()
	shape := func() typesystem.ObjectShape {
		return typesystem.ObjectShape{
			Properties: []typesystem.PropertyInfo{
				{Name: "x", Type: in.Number()},
				{Name: "y", Type: in.String(), Optional: true},
			},
		}
	}
	a := in.ObjectType(shape())
	b := in.ObjectType(shape())
	if a != b {
		t.Fatalf("identical object shapes must intern to the same TypeId")
	}
}

func TestObjectPropertyOrderDoesNotAffectIdentity(t *testing.T) {
	in := typesystem.New()
	a := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{
		{Name: "x", Type: in.Number()},
		{Name: "y", Type: in.String()},
	}})
	b := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{
		{Name: "y", Type: in.String()},
		{Name: "x", Type: in.Number()},
	}})
	if a != b {
		t.Fatalf("property order must not affect an object shape's canonical identity")
	}
}

func TestNominalIdentityDistinguishesIdenticalShapes(t *testing.T) {
	in := typesystem.New()
	nomA := in.NewNominalID()
	nomB := in.NewNominalID()
	props := []typesystem.PropertyInfo{{Name: "value", Type: in.Number()}}
	a := in.ObjectType(typesystem.ObjectShape{Properties: props, Nominal: nomA})
	b := in.ObjectType(typesystem.ObjectShape{Properties: props, Nominal: nomB})
	if a == b {
		t.Fatalf("two classes with identical shape but different nominal tags must intern to distinct TypeIds")
	}
	anon1 := in.ObjectType(typesystem.ObjectShape{Properties: props})
	anon2 := in.ObjectType(typesystem.ObjectShape{Properties: props})
	if anon1 != anon2 {
		t.Fatalf("two anonymous object literals with the same shape must collapse to one TypeId")
	}
}

func TestUnionFlattensNestedUnions(t *testing.T) {
	in := typesystem.New()
	inner := in.Union([]typesystem.TypeId{in.String(), in.Number()})
	outer := in.Union([]typesystem.TypeId{inner, in.Boolean()})
	members := in.UnionMembers(outer)
	if len(members) != 3 {
		t.Fatalf("expected a flattened 3-member union, got %d members", len(members))
	}
}

func TestUnionDedupesMembers(t *testing.T) {
	in := typesystem.New()
	u := in.Union([]typesystem.TypeId{in.String(), in.String(), in.Number()})
	if len(in.UnionMembers(u)) != 2 {
		t.Fatalf("expected duplicate members to be deduped, got %d", len(in.UnionMembers(u)))
	}
}

func TestUnionDropsNever(t *testing.T) {
	in := typesystem.New()
	u := in.Union([]typesystem.TypeId{in.String(), in.Never()})
	if u != in.String() {
		t.Fatalf("a union with `never` and one other member must collapse to that member")
	}
}

func TestUnionAbsorbsAny(t *testing.T) {
	in := typesystem.New()
	u := in.Union([]typesystem.TypeId{in.String(), in.Any(), in.Number()})
	if u != in.Any() {
		t.Fatalf("a union containing `any` must collapse to `any`")
	}
}

func TestUnionOfSingleMemberReturnsThatMember(t *testing.T) {
	in := typesystem.New()
	u := in.Union([]typesystem.TypeId{in.String()})
	if u != in.String() {
		t.Fatalf("a 1-member union must return that member directly, not a wrapper")
	}
}

func TestUnionFoldsBooleanLiteralPair(t *testing.T) {
	in := typesystem.New()
	u := in.Union([]typesystem.TypeId{in.LiteralBoolean(true), in.LiteralBoolean(false)})
	if u != in.Boolean() {
		t.Fatalf("`true | false` must fold to `boolean`, got TypeId %d", u)
	}
}

func TestUnionIsOrderInsensitive(t *testing.T) {
	in := typesystem.New()
	a := in.Union([]typesystem.TypeId{in.String(), in.Number(), in.Boolean()})
	b := in.Union([]typesystem.TypeId{in.Boolean(), in.String(), in.Number()})
	if a != b {
		t.Fatalf("union member order must not affect the resulting TypeId, got %d and %d", a, b)
	}
}

func TestIntersectionOfDisjointPrimitivesIsNever(t *testing.T) {
	in := typesystem.New()
	x := in.Intersection([]typesystem.TypeId{in.String(), in.Number()}, typesystem.DefaultMaxIntersectionArms)
	if x != in.Never() {
		t.Fatalf("`string & number` must collapse to `never`")
	}
}

func TestIntersectionAbsorbsUnknown(t *testing.T) {
	in := typesystem.New()
	obj := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{{Name: "x", Type: in.Number()}}})
	x := in.Intersection([]typesystem.TypeId{obj, in.Unknown()}, typesystem.DefaultMaxIntersectionArms)
	if x != obj {
		t.Fatalf("`T & unknown` must collapse to T")
	}
}

func TestIntersectionDistributesOverUnion(t *testing.T) {
	in := typesystem.New()
	a := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{{Name: "a", Type: in.Number()}}})
	b := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{{Name: "b", Type: in.Number()}}})
	c := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{{Name: "c", Type: in.Number()}}})
	u := in.Union([]typesystem.TypeId{b, c})
	x := in.Intersection([]typesystem.TypeId{a, u}, typesystem.DefaultMaxIntersectionArms)
	if in.Kind(x) != typesystem.KindUnion {
		t.Fatalf("A & (B|C) must distribute into a union of intersections, got kind %s", in.Kind(x))
	}
	if len(in.UnionMembers(x)) != 2 {
		t.Fatalf("expected 2 distributed arms, got %d", len(in.UnionMembers(x)))
	}
}

func TestIntersectionSkipsDistributionBeyondMaxArms(t *testing.T) {
	in := typesystem.New()
	members := make([]typesystem.TypeId, 0, 3)
	for i := 0; i < 3; i++ {
		members = append(members, in.LiteralString(string(rune('a'+i))))
	}
	u := in.Union(members)
	x := in.Intersection([]typesystem.TypeId{in.String(), u}, 2)
	if in.Kind(x) == typesystem.KindUnion {
		t.Fatalf("distribution exceeding maxArms must not happen, got a union back")
	}
}

func TestTemplateLiteralExpandsFiniteLiteralUnion(t *testing.T) {
	in := typesystem.New()
	sizes := in.Union([]typesystem.TypeId{in.LiteralString("sm"), in.LiteralString("lg")})
	tmpl := in.TemplateLiteral([]string{"size-", ""}, []typesystem.TypeId{sizes}, typesystem.DefaultMaxTemplateLiteralExpansion)
	if in.Kind(tmpl) != typesystem.KindUnion {
		t.Fatalf("a template literal over a finite literal union must expand to a union, got kind %s", in.Kind(tmpl))
	}
	members := in.UnionMembers(tmpl)
	if len(members) != 2 {
		t.Fatalf("expected 2 expanded members, got %d", len(members))
	}
	seen := map[string]bool{}
	for _, m := range members {
		seen[in.StringLiteralValue(m)] = true
	}
	if !seen["size-sm"] || !seen["size-lg"] {
		t.Fatalf("expected {size-sm, size-lg}, got %v", seen)
	}
}

func TestTemplateLiteralOverBareStringStaysOpaque(t *testing.T) {
	in := typesystem.New()
	tmpl := in.TemplateLiteral([]string{"", ""}, []typesystem.TypeId{in.String()}, typesystem.DefaultMaxTemplateLiteralExpansion)
	if in.Kind(tmpl) != typesystem.KindTemplateLiteral {
		t.Fatalf("a template literal over the bare `string` primitive must stay an opaque TemplateLiteral node, got kind %s", in.Kind(tmpl))
	}
}

func TestTemplateLiteralPanicsOnMismatchedAtomsAndTypes(t *testing.T) {
	in := typesystem.New()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for len(atoms) != len(types)+1")
		}
	}()
	in.TemplateLiteral([]string{"a", "b", "c"}, []typesystem.TypeId{in.String()}, 100)
}

func TestFormatTypeRendersUnion(t *testing.T) {
	in := typesystem.New()
	u := in.Union([]typesystem.TypeId{in.String(), in.Number()})
	got := in.FormatType(u)
	if got != "string | number" {
		t.Fatalf("expected %q, got %q", "string | number", got)
	}
}

func TestFormatTypeRendersObject(t *testing.T) {
	in := typesystem.New()
	obj := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{
		{Name: "x", Type: in.Number()},
		{Name: "y", Type: in.String(), Optional: true},
	}})
	got := in.FormatType(obj)
	if got != "{ x: number; y?: string }" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatTypeRendersFunctionSignature(t *testing.T) {
	in := typesystem.New()
	fn := in.Function(typesystem.FunctionShape{Signature: typesystem.Signature{
		Params:     []typesystem.Param{{Name: "x", Type: in.Number()}},
		ReturnType: in.String(),
	}})
	got := in.FormatType(fn)
	if got != "(x: number) => string" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatTypeRendersArrayAndTuple(t *testing.T) {
	in := typesystem.New()
	arr := in.Array(in.String())
	if got := in.FormatType(arr); got != "string[]" {
		t.Fatalf("got %q", got)
	}
	tup := in.Tuple([]typesystem.TupleElement{{Type: in.String()}, {Type: in.Number(), Optional: true}})
	if got := in.FormatType(tup); got != "[string, number?]" {
		t.Fatalf("got %q", got)
	}
}

func TestSignatureMinArgsStopsAtFirstOptionalOrRest(t *testing.T) {
	sig := typesystem.Signature{Params: []typesystem.Param{
		{Name: "a"},
		{Name: "b"},
		{Name: "c", Optional: true},
		{Name: "rest", Rest: true},
	}}
	if got := sig.MinArgs(); got != 2 {
		t.Fatalf("expected MinArgs() == 2, got %d", got)
	}
}
