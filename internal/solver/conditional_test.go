package solver_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// These tests exercise Evaluator.Reduce wired to a real Checker's
// IsSubtype (rather than a stub closure), the way internal/checker will
// actually construct things: NewChecker builds its own Evaluator bound to
// IsSubtype, so reducing a Conditional through the Checker drives the same
// subtype algorithm under test elsewhere in this package.

func TestConditionalReductionThroughRealChecker(t *testing.T) {
	in, c := newChecker()
	ev := typesystem.NewEvaluator(in, c.IsSubtype)

	cond := in.Conditional(typesystem.ConditionalInfo{
		Check: in.LiteralString("x"), Extends: in.String(),
		True: in.Number(), False: in.Boolean(),
	})
	if got := ev.Reduce(cond); got != in.Number() {
		t.Fatalf("\"x\" extends string should take the true branch via the real subtype checker")
	}
}

func TestIndexAccessThenSubtypeCompare(t *testing.T) {
	in, c := newChecker()
	ev := typesystem.NewEvaluator(in, c.IsSubtype)

	obj := in.ObjectType(typesystem.ObjectShape{Properties: []typesystem.PropertyInfo{
		{Name: "id", Type: in.LiteralNumber(1)},
	}})
	accessed := ev.Reduce(in.IndexAccess(obj, in.LiteralString("id")))
	if !c.IsSubtype(accessed, in.Number()) {
		t.Fatalf("obj[\"id\"] must reduce to a type that is a subtype of number")
	}
}
