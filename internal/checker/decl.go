package checker

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/binder"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// resolveCrossFileSymbol is the checker's only actual use of multi-file
// linkage: the parser doesn't preserve import specifiers (see
// parseImportDeclaration), so there is no specifier string to hand
// CrossFileResolution.Resolve. Rather than leave cross-file names
// unresolved outright, this looks the bare name up in every other file's
// direct export table — correct for the common case of one file importing
// a uniquely-named declaration from another, but not a substitute for real
// specifier-based resolution (two files exporting the same name would
// resolve ambiguously to whichever is scanned first).
func (c *Checker) resolveCrossFileSymbol(name string) (*binder.Symbol, bool) {
	if c.prog == nil {
		return nil, false
	}
	for i := range c.prog.Files {
		f := &c.prog.Files[i]
		if f == c.file || f.Binder == nil || f.Binder.Exports == nil {
			continue
		}
		if sym, ok := f.Binder.Exports.Direct[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// symbolTypeReference produces the TypeId a type-position reference to sym
// denotes, memoized by its first declaration node so repeated references
// (and mutually-recursive declarations) share one resolution.
func (c *Checker) symbolTypeReference(sym *binder.Symbol) typesystem.TypeId {
	if len(sym.Declarations) == 0 {
		return c.in.Any()
	}
	key := sym.Declarations[0]
	if t, ok := c.typeOfDecl[key]; ok {
		return t
	}
	if c.resolving[key] {
		// Recursive reference (e.g. `interface Node { next: Node }`)
		// encountered before its own shape finished resolving. The
		// interner is content-addressed, so a forward-referencing handle
		// isn't available mid-construction; fall back to the generic
		// object type rather than looping.
		return c.in.Object()
	}
	if c.resolving == nil {
		c.resolving = make(map[ast.NodeIndex]bool)
	}
	c.resolving[key] = true
	defer delete(c.resolving, key)

	var result typesystem.TypeId
	a := c.file.Arena
	switch {
	case sym.Flags.Has(binder.SymInterface):
		result = c.resolveMergedInterface(sym)
	case sym.Flags.Has(binder.SymClass):
		result = c.resolveClassType(sym, key)
	case sym.Flags.Has(binder.SymEnum):
		result = c.resolveEnumType(sym, key)
	case sym.Flags.Has(binder.SymTypeAlias) && a.Kind(key) == ast.KindTypeAliasDeclaration:
		result = c.resolveType(a.TypeAlias(key).Type)
	default:
		result = c.in.Any()
	}
	c.typeOfDecl[key] = result
	return result
}

// resolveMergedInterface merges every Declarations entry that is itself an
// interface declaration into one Object shape — declaration merging
// (`interface I { a: string } interface I { b: number }` yields one type
// with both members) is already performed at the symbol level by the
// binder's declare(); the checker just needs to read every member list
// instead of only the first.
func (c *Checker) resolveMergedInterface(sym *binder.Symbol) typesystem.TypeId {
	a := c.file.Arena
	shape := typesystem.ObjectShape{}
	for _, decl := range sym.Declarations {
		if a.Kind(decl) != ast.KindInterfaceDeclaration {
			continue
		}
		data := a.Interface(decl)
		c.collectMembers(data.Members, &shape)
		for _, ext := range data.Extends {
			base := c.resolveType(ext)
			if c.in.Kind(base) == typesystem.KindObject {
				shape.Properties = append(c.in.ObjectShapeOf(base).Properties, shape.Properties...)
			}
		}
	}
	return c.in.ObjectType(shape)
}

func (c *Checker) resolveClassType(sym *binder.Symbol, declNode ast.NodeIndex) typesystem.TypeId {
	a := c.file.Arena
	if a.Kind(declNode) != ast.KindClassDeclaration {
		return c.in.Any()
	}
	class := a.Class(declNode)
	shape := typesystem.ObjectShape{Nominal: c.nominalFor(declNode)}
	if class.Extends != ast.NONE {
		base := c.resolveType(class.Extends)
		if base != typesystem.NoType && c.in.Kind(base) == typesystem.KindObject {
			shape.Properties = append(shape.Properties, c.in.ObjectShapeOf(base).Properties...)
		}
	}
	for _, m := range class.Members {
		switch a.Kind(m) {
		case ast.KindPropertyDeclaration:
			p := a.Property(m)
			if p.Computed || p.Name == ast.NONE || a.Kind(p.Name) != ast.KindIdentifier {
				continue
			}
			t := c.in.Any()
			if p.Type != ast.NONE {
				t = c.resolveType(p.Type)
			} else if p.Initializer != ast.NONE {
				t = c.inferExpr(p.Initializer, typesystem.NoType)
			}
			shape.Properties = append(shape.Properties, typesystem.PropertyInfo{
				Name: a.Identifier(p.Name).Text, Type: t,
				Optional: p.Optional, Readonly: p.Modifiers.Has(ast.ModReadonly),
			})
		case ast.KindMethodDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
			fn := a.Function(m)
			if fn.Name == ast.NONE || a.Kind(fn.Name) != ast.KindIdentifier {
				continue
			}
			shape.Properties = append(shape.Properties, typesystem.PropertyInfo{
				Name: a.Identifier(fn.Name).Text,
				Type: c.in.Function(typesystem.FunctionShape{Signature: c.resolveFunctionSignature(fn)}),
			})
		}
	}
	return c.in.ObjectType(shape)
}

func (c *Checker) resolveFunctionSignature(fn ast.FunctionData) typesystem.Signature {
	params := make([]typesystem.Param, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		params = append(params, c.resolveParam(p))
	}
	ret := c.in.Any()
	if fn.ReturnType != ast.NONE {
		ret = c.resolveType(fn.ReturnType)
	} else if fn.Body != ast.NONE {
		ret = c.inferReturnType(fn.Body)
	}
	return typesystem.Signature{Params: params, ReturnType: ret}
}

// nominalFor assigns (once) and returns the NominalID tagging declNode's
// reified type, so two distinct classes with identical member shapes still
// compare unequal under the solver's rule-11 nominal checks.
func (c *Checker) nominalFor(declNode ast.NodeIndex) typesystem.NominalID {
	if id, ok := c.nominals[declNode]; ok {
		return id
	}
	id := c.in.NewNominalID()
	c.nominals[declNode] = id
	return id
}

func (c *Checker) resolveEnumType(sym *binder.Symbol, declNode ast.NodeIndex) typesystem.TypeId {
	a := c.file.Arena
	if a.Kind(declNode) != ast.KindEnumDeclaration {
		return c.in.Any()
	}
	members := c.enumMemberTypes(declNode)
	structural := c.in.Never()
	if len(members) > 0 {
		structural = c.in.Union(members)
	}
	return c.in.EnumType(typesystem.EnumInfo{Nominal: c.nominalFor(declNode), Structural: structural})
}

// enumMemberTypes computes every member's literal type in declaration
// order, auto-incrementing a running numeric counter across members with
// no initializer (or a non-literal initializer) exactly as plain numeric
// enums do, and resetting string-valued runs have no successor to infer.
func (c *Checker) enumMemberTypes(declNode ast.NodeIndex) []typesystem.TypeId {
	a := c.file.Arena
	data := a.Enum(declNode)
	types := make([]typesystem.TypeId, 0, len(data.Members))
	next := 0.0
	for _, m := range data.Members {
		em := a.EnumMember(m)
		if em.Initializer == ast.NONE {
			t := c.in.LiteralNumber(next)
			types = append(types, t)
			next++
			continue
		}
		t := c.inferExpr(em.Initializer, typesystem.NoType)
		types = append(types, t)
		if c.in.Kind(t) == typesystem.KindLiteralNumber {
			next = c.in.NumberLiteralValue(t) + 1
		}
	}
	return types
}

// enumMemberPlainLiteral finds member's own structural (number/string)
// literal value within declNode's member list, with no Enum nominal tag.
func (c *Checker) enumMemberPlainLiteral(declNode ast.NodeIndex, member string) (typesystem.TypeId, bool) {
	a := c.file.Arena
	data := a.Enum(declNode)
	types := c.enumMemberTypes(declNode)
	for i, m := range data.Members {
		em := a.EnumMember(m)
		if em.Name != ast.NONE && a.Kind(em.Name) == ast.KindIdentifier && a.Identifier(em.Name).Text == member {
			return types[i], true
		}
	}
	return c.in.Any(), false
}

// enumMemberValueType is what a reference to `E.A` denotes, whether used
// in a type position (`let x: E.A`) or a value position (`E.A` as an
// expression): the member's own structural literal, tagged with the
// enclosing enum's NominalID so the solver's nominal enum rule (rule 11)
// accepts it where the bare literal would be rejected, and rejects an
// unrelated literal of the same structural value where the enum-typed
// member is required.
func (c *Checker) enumMemberValueType(declNode ast.NodeIndex, member string) (typesystem.TypeId, bool) {
	lit, ok := c.enumMemberPlainLiteral(declNode, member)
	if !ok {
		return c.in.Any(), false
	}
	return c.in.EnumType(typesystem.EnumInfo{Nominal: c.nominalFor(declNode), Structural: lit}), true
}

func (c *Checker) inferReturnType(body ast.NodeIndex) typesystem.TypeId {
	a := c.file.Arena
	if a.Kind(body) != ast.KindBlock {
		return c.inferExpr(body, typesystem.NoType)
	}
	var returns []typesystem.TypeId
	c.collectReturnTypes(a.Block(body).Statements, &returns)
	if len(returns) == 0 {
		return c.in.Void()
	}
	return c.in.Union(returns)
}

func (c *Checker) collectReturnTypes(stmts []ast.NodeIndex, out *[]typesystem.TypeId) {
	a := c.file.Arena
	for _, s := range stmts {
		switch a.Kind(s) {
		case ast.KindReturnStatement:
			r := a.Return(s)
			if r.Argument == ast.NONE {
				*out = append(*out, c.in.Void())
			} else {
				*out = append(*out, c.inferExpr(r.Argument, typesystem.NoType))
			}
		case ast.KindBlock:
			c.collectReturnTypes(a.Block(s).Statements, out)
		case ast.KindIfStatement:
			ifd := a.If(s)
			c.collectReturnTypes([]ast.NodeIndex{ifd.Then}, out)
			if ifd.Else != ast.NONE {
				c.collectReturnTypes([]ast.NodeIndex{ifd.Else}, out)
			}
		}
	}
}
