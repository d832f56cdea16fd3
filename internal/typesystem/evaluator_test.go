package typesystem_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

func TestKeyOfReducesObjectToPropertyNameUnion(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	obj := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{
		{Name: "x", Type: in.Number()},
		{Name: "y", Type: in.String()},
	}})
	reduced := ev.Reduce(in.KeyOf(obj))
	if in.Kind(reduced) != typesystem.KindUnion {
		t.Fatalf("expected keyof to reduce to a union, got kind %s", in.Kind(reduced))
	}
	seen := map[string]bool{}
	for _, m := range in.UnionMembers(reduced) {
		seen[in.StringLiteralValue(m)] = true
	}
	if !seen["x"] || !seen["y"] {
		t.Fatalf("expected {\"x\", \"y\"}, got %v", seen)
	}
}

func TestKeyOfOnArrayIsNumber(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	reduced := ev.Reduce(in.KeyOf(in.Array(in.String())))
	if reduced != in.Number() {
		t.Fatalf("keyof T[] must reduce to number")
	}
}

func TestKeyOfBlocksOnTypeParameter(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	tp := in.TypeParameter(typesystem.TypeParameterInfo{Name: "T"})
	if got := ev.Reduce(in.KeyOf(tp)); got != typesystem.Blocked {
		t.Fatalf("keyof of an unresolved type parameter must be Blocked, got %d", got)
	}
}

func TestIndexAccessLooksUpProperty(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	obj := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{
		{Name: "x", Type: in.Number()},
	}})
	reduced := ev.Reduce(in.IndexAccess(obj, in.LiteralString("x")))
	if reduced != in.Number() {
		t.Fatalf("T[\"x\"] must resolve to the property's type")
	}
}

func TestIndexAccessDistributesOverUnionKey(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	obj := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{
		{Name: "x", Type: in.Number()},
		{Name: "y", Type: in.String()},
	}})
	key := in.Union([]typesystem.TypeId{in.LiteralString("x"), in.LiteralString("y")})
	reduced := ev.Reduce(in.IndexAccess(obj, key))
	if in.Kind(reduced) != typesystem.KindUnion {
		t.Fatalf("indexed access with a union key must distribute, got kind %s", in.Kind(reduced))
	}
	if len(in.UnionMembers(reduced)) != 2 {
		t.Fatalf("expected 2 members, got %d", len(in.UnionMembers(reduced)))
	}
}

func TestIndexAccessOnTupleWithNumericLiteral(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	tup := in.Tuple([]typesystem.TupleElement{{Type: in.String()}, {Type: in.Number()}})
	reduced := ev.Reduce(in.IndexAccess(tup, in.LiteralNumber(1)))
	if reduced != in.Number() {
		t.Fatalf("tuple[1] must be the second element's type")
	}
}

func TestIndexAccessOutOfRangeTupleIndexIsNever(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	tup := in.Tuple([]typesystem.TupleElement{{Type: in.String()}})
	reduced := ev.Reduce(in.IndexAccess(tup, in.LiteralNumber(5)))
	if reduced != in.Never() {
		t.Fatalf("an out-of-range tuple index must reduce to never")
	}
}

func TestConditionalTakesTrueBranchWhenSubtype(t *testing.T) {
	in := typesystem.New()
	subtype := func(source, target typesystem.TypeId) bool { return source == target }
	ev := typesystem.NewEvaluator(in, subtype)
	c := typesystem.ConditionalInfo{Check: in.String(), Extends: in.String(), True: in.Number(), False: in.Boolean()}
	if got := ev.Reduce(in.Conditional(c)); got != in.Number() {
		t.Fatalf("expected the true branch when check extends target")
	}
}

func TestConditionalTakesFalseBranchWhenNotSubtype(t *testing.T) {
	in := typesystem.New()
	subtype := func(source, target typesystem.TypeId) bool { return source == target }
	ev := typesystem.NewEvaluator(in, subtype)
	c := typesystem.ConditionalInfo{Check: in.String(), Extends: in.Number(), True: in.Number(), False: in.Boolean()}
	if got := ev.Reduce(in.Conditional(c)); got != in.Boolean() {
		t.Fatalf("expected the false branch when check does not extend target")
	}
}

func TestConditionalDistributesOverUnionCheck(t *testing.T) {
	in := typesystem.New()
	subtype := func(source, target typesystem.TypeId) bool { return source == target }
	ev := typesystem.NewEvaluator(in, subtype)
	check := in.Union([]typesystem.TypeId{in.String(), in.Number()})
	c := typesystem.ConditionalInfo{Check: check, Extends: in.String(), True: in.Boolean(), False: in.Never(), Distributive: true}
	reduced := ev.Reduce(in.Conditional(c))
	// string extends string ? boolean : never -> boolean
	// number extends string ? boolean : never -> never, dropped by Union
	if reduced != in.Boolean() {
		t.Fatalf("expected distribution to drop the never arm and leave boolean, got %s", in.FormatType(reduced))
	}
}

func TestConditionalBlocksOnBareDistributiveTypeParameter(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	tp := in.TypeParameter(typesystem.TypeParameterInfo{Name: "T"})
	c := typesystem.ConditionalInfo{Check: tp, Extends: in.String(), True: in.Number(), False: in.Boolean(), Distributive: true}
	if got := ev.Reduce(in.Conditional(c)); got != typesystem.Blocked {
		t.Fatalf("a distributive conditional over an unresolved type parameter must be Blocked")
	}
}

func TestMappedTypeIteratesLiteralKeys(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	param := in.TypeParameter(typesystem.TypeParameterInfo{Name: "P"})
	constraint := in.Union([]typesystem.TypeId{in.LiteralString("a"), in.LiteralString("b")})
	m := typesystem.MappedInfo{TypeParam: param, Constraint: constraint, Template: in.Number()}
	reduced := ev.Reduce(in.Mapped(m))
	if in.Kind(reduced) != typesystem.KindObject {
		t.Fatalf("expected a mapped type to reduce to an Object, got kind %s", in.Kind(reduced))
	}
	shape := in.ObjectShapeOf(reduced)
	if len(shape.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(shape.Properties))
	}
	for _, p := range shape.Properties {
		if p.Type != in.Number() {
			t.Fatalf("expected every property to have type number")
		}
	}
}

func TestMappedTypeAppliesOptionalModifier(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	param := in.TypeParameter(typesystem.TypeParameterInfo{Name: "P"})
	constraint := in.LiteralString("a")
	m := typesystem.MappedInfo{TypeParam: param, Constraint: constraint, Template: in.String(), Optional: typesystem.ModifierAdd}
	reduced := ev.Reduce(in.Mapped(m))
	shape := in.ObjectShapeOf(reduced)
	if len(shape.Properties) != 1 || !shape.Properties[0].Optional {
		t.Fatalf("expected the single property to be optional")
	}
}

func TestMappedTypeBlocksOnNonLiteralConstraint(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	param := in.TypeParameter(typesystem.TypeParameterInfo{Name: "P"})
	m := typesystem.MappedInfo{TypeParam: param, Constraint: in.String(), Template: in.Number()}
	if got := ev.Reduce(in.Mapped(m)); got != typesystem.Blocked {
		t.Fatalf("a mapped type over an unresolved (non-literal) key space must be Blocked")
	}
}

// TestMappedTypeTemplateSubstitutionOverflowsToAny builds a Template nested
// well past DefaultMaxEvaluatorDepth levels of Array wrapping around the
// mapped type's own parameter, so substituting it recurses past the cap.
// The deepest frames give up and yield `any` instead of recursing further
// (the shallower, still-in-budget frames above them keep wrapping Array as
// usual), so the cap hit is observed through Overflows rather than through
// the shape of the result.
func TestMappedTypeTemplateSubstitutionOverflowsToAny(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	param := in.TypeParameter(typesystem.TypeParameterInfo{Name: "P"})

	template := param
	for i := 0; i < typesystem.DefaultMaxEvaluatorDepth+10; i++ {
		template = in.Array(template)
	}

	m := typesystem.MappedInfo{TypeParam: param, Constraint: in.LiteralString("a"), Template: template}
	reduced := ev.Reduce(in.Mapped(m))
	shape := in.ObjectShapeOf(reduced)
	if len(shape.Properties) != 1 {
		t.Fatalf("expected 1 property, got %d", len(shape.Properties))
	}
	if ev.Overflows() == 0 {
		t.Fatalf("expected Overflows() to record at least one cap hit for a %d-level-deep template", typesystem.DefaultMaxEvaluatorDepth+10)
	}
}

func TestReduceIsIdentityOnNonOperatorKinds(t *testing.T) {
	in := typesystem.New()
	ev := typesystem.NewEvaluator(in, nil)
	if got := ev.Reduce(in.String()); got != in.String() {
		t.Fatalf("Reduce on a non-operator type must return it unchanged")
	}
}
