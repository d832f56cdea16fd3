package solver

import "github.com/mohsen1/tsz-sub030/internal/typesystem"

// AssignabilityOptions carries the call-site context a TypeId alone can't:
// whether the source is a just-written object literal (as opposed to a
// value flowing through a variable), the condition under which the
// excess-property check applies.
type AssignabilityOptions struct {
	// SourceIsFreshObjectLiteral enables the excess-property check: a
	// fresh object literal assigned to an Object target may not have
	// properties the target doesn't declare.
	SourceIsFreshObjectLiteral bool
}

// IsAssignable decides assignability, which is subtyping relaxed per spec
// §4.4.2: `any` is bidirectionally compatible, a literal source widens to
// its primitive when the target is that primitive, fresh object literals
// get an excess-property check, and an all-optional target accepts any
// object structurally comparable to at least one of its properties (the
// "weak type" relaxation).
func (c *Checker) IsAssignable(source, target typesystem.TypeId, opts AssignabilityOptions) bool {
	in := c.in

	if source == in.Any() || target == in.Any() {
		return true
	}

	if opts.SourceIsFreshObjectLiteral && in.Kind(source) == typesystem.KindObject && in.Kind(target) == typesystem.KindObject {
		if !c.excessPropertyCheckPasses(source, target) {
			return false
		}
	}

	if in.Kind(source) == typesystem.KindObject && in.Kind(target) == typesystem.KindObject &&
		len(in.ObjectShapeOf(source).Properties) > 0 && c.isWeakType(target) &&
		!c.weakTypeIsAssignable(source, target) {
		return false
	}

	if c.IsSubtype(source, target) {
		return true
	}

	if widened, ok := c.widenLiteral(source); ok && c.IsSubtype(widened, target) {
		return true
	}

	if in.Kind(target) == typesystem.KindObject && c.isWeakType(target) {
		return c.weakTypeIsAssignable(source, target)
	}

	return false
}

// widenLiteral maps a literal type to its containing primitive, per the
// "widening literal types on the source side when the target is their
// primitive" assignability relaxation.
func (c *Checker) widenLiteral(source typesystem.TypeId) (typesystem.TypeId, bool) {
	in := c.in
	switch in.Kind(source) {
	case typesystem.KindLiteralString:
		return in.String(), true
	case typesystem.KindLiteralNumber:
		return in.Number(), true
	case typesystem.KindLiteralBigInt:
		return in.BigInt(), true
	case typesystem.KindLiteralBoolean:
		return in.Boolean(), true
	default:
		return typesystem.NoType, false
	}
}

// excessPropertyCheckPasses reports whether a fresh object literal source
// declares no property the target Object shape doesn't also declare
// (directly or via an index signature).
func (c *Checker) excessPropertyCheckPasses(source, target typesystem.TypeId) bool {
	in := c.in
	targetShape := in.ObjectShapeOf(target)
	known := make(map[string]bool, len(targetShape.Properties))
	for _, p := range targetShape.Properties {
		known[p.Name] = true
	}
	hasIndex := targetShape.StringIndex != nil || targetShape.NumberIndex != nil
	for _, sp := range in.ObjectShapeOf(source).Properties {
		if !known[sp.Name] && !hasIndex {
			return false
		}
	}
	return true
}

// isWeakType reports whether every declared property of target is
// optional — the "weak type" shape tsc relaxes assignability for, since an
// object with none of a weak type's properties would otherwise vacuously
// satisfy it.
func (c *Checker) isWeakType(target typesystem.TypeId) bool {
	shape := c.in.ObjectShapeOf(target)
	if len(shape.Properties) == 0 {
		return false
	}
	for _, p := range shape.Properties {
		if !p.Optional {
			return false
		}
	}
	return true
}

// weakTypeIsAssignable requires source to share at least one property in
// common with the weak target, rejecting totally unrelated object shapes
// that would otherwise trivially satisfy an all-optional target.
func (c *Checker) weakTypeIsAssignable(source, target typesystem.TypeId) bool {
	in := c.in
	if in.Kind(source) != typesystem.KindObject {
		return false
	}
	sourceProps := make(map[string]bool, len(in.ObjectShapeOf(source).Properties))
	for _, p := range in.ObjectShapeOf(source).Properties {
		sourceProps[p.Name] = true
	}
	for _, tp := range in.ObjectShapeOf(target).Properties {
		if sourceProps[tp.Name] {
			return true
		}
	}
	return false
}
