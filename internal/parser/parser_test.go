package parser_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/parser"
)

// parseProgram parses src as a whole source file and fails the test if any
// diagnostics were produced, returning the arena and the root node.
func parseProgram(t *testing.T, src string) (*ast.Arena, ast.NodeIndex) {
	t.Helper()
	p := parser.New("input.ts", src)
	root := p.ParseSourceFile()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("input %q: unexpected diagnostics: %v", src, errs)
	}
	return p.Arena(), root
}

// statements returns the top-level statement list of a parsed program.
func statements(t *testing.T, src string) (*ast.Arena, []ast.NodeIndex) {
	t.Helper()
	a, root := parseProgram(t, src)
	return a, a.SourceFile(root).Statements
}

// singleStatement parses src and returns its one expected top-level
// statement, failing if the count doesn't match.
func singleStatement(t *testing.T, src string) (*ast.Arena, ast.NodeIndex) {
	t.Helper()
	a, stmts := statements(t, src)
	if len(stmts) != 1 {
		t.Fatalf("input %q: got %d statements, want 1", src, len(stmts))
	}
	return a, stmts[0]
}

func TestVariableStatements(t *testing.T) {
	a, stmt := singleStatement(t, "let x: number = 1;")
	if a.Kind(stmt) != ast.KindVariableDeclarationList {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	list := a.VarDeclList(stmt)
	if list.Kind != ast.VarKindLet || len(list.Declarations) != 1 {
		t.Fatalf("got %+v", list)
	}
	decl := a.VarDecl(list.Declarations[0])
	if a.Identifier(decl.Name).Text != "x" {
		t.Fatalf("got decl %+v", decl)
	}
	if a.Kind(decl.Type) != ast.KindTypeReference {
		t.Fatalf("expected type annotation, got %s", a.Kind(decl.Type))
	}
}

func TestVariableStatementDefiniteAssignment(t *testing.T) {
	a, stmt := singleStatement(t, "let x!: string;")
	decl := a.VarDecl(a.VarDeclList(stmt).Declarations[0])
	if !decl.Definite {
		t.Fatalf("expected definite assignment assertion, got %+v", decl)
	}
}

func TestMultipleDeclaratorsInOneStatement(t *testing.T) {
	a, stmt := singleStatement(t, "var a = 1, b = 2, c;")
	list := a.VarDeclList(stmt)
	if len(list.Declarations) != 3 {
		t.Fatalf("got %d declarators", len(list.Declarations))
	}
}

func TestIfElseStatement(t *testing.T) {
	a, stmt := singleStatement(t, "if (x) { y(); } else { z(); }")
	ifData := a.If(stmt)
	if a.Kind(ifData.Then) != ast.KindBlock || a.Kind(ifData.Else) != ast.KindBlock {
		t.Fatalf("got %+v", ifData)
	}
}

func TestClassicForLoop(t *testing.T) {
	a, stmt := singleStatement(t, "for (let i = 0; i < 10; i++) { f(i); }")
	if a.Kind(stmt) != ast.KindForStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	loop := a.Loop(stmt)
	if loop.Init == ast.NONE || loop.Condition == ast.NONE || loop.Update == ast.NONE {
		t.Fatalf("got %+v", loop)
	}
}

func TestForOfLoop(t *testing.T) {
	a, stmt := singleStatement(t, "for (const x of xs) { use(x); }")
	if a.Kind(stmt) != ast.KindForOfStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
}

func TestForInLoop(t *testing.T) {
	a, stmt := singleStatement(t, "for (const k in obj) { use(k); }")
	if a.Kind(stmt) != ast.KindForInStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
}

func TestForAwaitOfLoop(t *testing.T) {
	a, stmt := singleStatement(t, "for await (const x of xs) { use(x); }")
	if a.Kind(stmt) != ast.KindForOfStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	if !a.Loop(stmt).IsAwait {
		t.Fatalf("expected IsAwait on for-await-of loop")
	}
}

func TestWhileAndDoWhile(t *testing.T) {
	a, stmt := singleStatement(t, "while (running) { step(); }")
	if a.Kind(stmt) != ast.KindWhileStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	a, stmt = singleStatement(t, "do { step(); } while (running);")
	if a.Kind(stmt) != ast.KindDoWhileStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
}

func TestReturnAndThrow(t *testing.T) {
	a, stmts := statements(t, "function f() { return 1; }")
	fn := a.Function(stmts[0])
	body := a.Block(fn.Body).Statements
	if a.Kind(body[0]) != ast.KindReturnStatement {
		t.Fatalf("got kind %s", a.Kind(body[0]))
	}
	if a.Return(body[0]).Argument == ast.NONE {
		t.Fatalf("expected return argument")
	}

	a, stmt := singleStatement(t, "throw new Error('boom');")
	if a.Kind(stmt) != ast.KindThrowStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
}

func TestBreakContinueWithLabel(t *testing.T) {
	a, stmt := singleStatement(t, "outer: while (true) { break outer; }")
	if a.Kind(stmt) != ast.KindLabeledStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	labeled := a.LabeledStatement(stmt)
	loopBody := a.Block(a.Loop(labeled.Statement).Body).Statements
	brk := loopBody[0]
	if a.Kind(brk) != ast.KindBreakStatement {
		t.Fatalf("got kind %s", a.Kind(brk))
	}
	label := a.BreakContinue(brk).Label
	if label == ast.NONE || a.Identifier(label).Text != "outer" {
		t.Fatalf("expected label 'outer', got %+v", a.BreakContinue(brk))
	}
}

func TestTryCatchFinally(t *testing.T) {
	a, stmt := singleStatement(t, "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }")
	if a.Kind(stmt) != ast.KindTryStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	tryData := a.Try(stmt)
	if tryData.Catch == ast.NONE || tryData.Finally == ast.NONE {
		t.Fatalf("expected catch and finally, got %+v", tryData)
	}
	catch := a.CatchClause(tryData.Catch)
	if a.Identifier(catch.Param).Text != "e" {
		t.Fatalf("got catch param %+v", catch)
	}
}

func TestTryCatchWithoutParam(t *testing.T) {
	a, stmt := singleStatement(t, "try { risky(); } catch { handle(); }")
	tryData := a.Try(stmt)
	catch := a.CatchClause(tryData.Catch)
	if catch.Param != ast.NONE {
		t.Fatalf("expected parameterless catch, got %+v", catch)
	}
}

func TestSwitchStatement(t *testing.T) {
	a, stmt := singleStatement(t, `switch (x) {
		case 1:
			a();
			break;
		case 2:
		default:
			b();
	}`)
	if a.Kind(stmt) != ast.KindSwitchStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	sw := a.Switch(stmt)
	if len(sw.Clauses) != 3 {
		t.Fatalf("got %d clauses", len(sw.Clauses))
	}
	if a.Kind(sw.Clauses[2]) != ast.KindDefaultClause {
		t.Fatalf("expected last clause to be default, got %s", a.Kind(sw.Clauses[2]))
	}
	if a.CaseClause(sw.Clauses[1]).Test == ast.NONE {
		t.Fatalf("expected case 2 to carry a test expression")
	}
}

func TestFunctionDeclarationWithGenericsAndReturnType(t *testing.T) {
	a, stmt := singleStatement(t, "function identity<T>(x: T): T { return x; }")
	fn := a.Function(stmt)
	if len(fn.TypeParams) != 1 || len(fn.Parameters) != 1 || fn.ReturnType == ast.NONE {
		t.Fatalf("got %+v", fn)
	}
}

func TestAsyncGeneratorFunction(t *testing.T) {
	a, stmt := singleStatement(t, "async function* gen() { yield 1; }")
	fn := a.Function(stmt)
	if !fn.IsAsync || !fn.IsGenerator {
		t.Fatalf("got %+v", fn)
	}
}

func TestExportedAndDeclaredDeclarations(t *testing.T) {
	a, stmt := singleStatement(t, "export function f() {}")
	fn := a.Function(stmt)
	if !fn.Modifiers.Has(ast.ModExport) {
		t.Fatalf("expected export modifier, got %+v", fn.Modifiers)
	}

	a, stmt = singleStatement(t, "export default function f() {}")
	fn = a.Function(stmt)
	if !fn.Modifiers.Has(ast.ModExport) || !fn.Modifiers.Has(ast.ModDefault) {
		t.Fatalf("expected export+default modifiers, got %+v", fn.Modifiers)
	}

	a, stmt = singleStatement(t, "declare const x: number;")
	list := a.VarDeclList(stmt)
	if !list.Modifiers.Has(ast.ModDeclare) {
		t.Fatalf("expected declare modifier, got %+v", list.Modifiers)
	}
}

func TestClassDeclaration(t *testing.T) {
	a, stmt := singleStatement(t, `class Box<T> extends Base implements Comparable {
		private value: T;
		static count = 0;
		constructor(value: T) {
			this.value = value;
		}
		get current(): T {
			return this.value;
		}
		async run(): Promise<void> {}
	}`)
	if a.Kind(stmt) != ast.KindClassDeclaration {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	cls := a.Class(stmt)
	if cls.Extends == ast.NONE || len(cls.Implements) != 1 {
		t.Fatalf("got %+v", cls)
	}
	if len(cls.Members) != 5 {
		t.Fatalf("got %d members", len(cls.Members))
	}

	field := a.Property(cls.Members[0])
	if !field.Modifiers.Has(ast.ModPrivate) {
		t.Fatalf("expected private field, got %+v", field)
	}
	static := a.Property(cls.Members[1])
	if !static.Modifiers.Has(ast.ModStatic) {
		t.Fatalf("expected static field, got %+v", static)
	}
	ctor := a.Function(cls.Members[2])
	if a.Kind(cls.Members[2]) != ast.KindConstructorDeclaration || len(ctor.Parameters) != 1 {
		t.Fatalf("got ctor %+v", ctor)
	}
	getter := a.Function(cls.Members[3])
	if a.Kind(cls.Members[3]) != ast.KindGetAccessor {
		t.Fatalf("expected get accessor, got kind %s", a.Kind(cls.Members[3]))
	}
	method := a.Function(cls.Members[4])
	if !method.IsAsync {
		t.Fatalf("expected async method, got %+v", getter)
	}
}

func TestClassMemberNamedLikeModifier(t *testing.T) {
	a, stmt := singleStatement(t, "class C { static: number; }")
	cls := a.Class(stmt)
	if len(cls.Members) != 1 {
		t.Fatalf("got %d members", len(cls.Members))
	}
	field := a.Property(cls.Members[0])
	if field.Modifiers.Has(ast.ModStatic) {
		t.Fatalf("'static' used as a field name must not be read as a modifier: %+v", field)
	}
	if a.Identifier(field.Name).Text != "static" {
		t.Fatalf("got field name %+v", field)
	}
}

func TestInterfaceDeclaration(t *testing.T) {
	a, stmt := singleStatement(t, `interface Shape extends Named {
		area(): number;
		readonly color?: string;
	}`)
	iface := a.Interface(stmt)
	if len(iface.Extends) != 1 || len(iface.Members) != 2 {
		t.Fatalf("got %+v", iface)
	}
}

func TestTypeAliasDeclaration(t *testing.T) {
	a, stmt := singleStatement(t, "type Pair<T> = [T, T];")
	alias := a.TypeAlias(stmt)
	if len(alias.TypeParams) != 1 || a.Kind(alias.Type) != ast.KindTupleType {
		t.Fatalf("got %+v", alias)
	}
}

func TestEnumDeclaration(t *testing.T) {
	a, stmt := singleStatement(t, `const enum Color { Red, Green = 2, Blue = "blue" }`)
	en := a.Enum(stmt)
	if !en.Modifiers.Has(ast.ModConst) || len(en.Members) != 3 {
		t.Fatalf("got %+v", en)
	}
	green := a.EnumMember(en.Members[1])
	if green.Initializer == ast.NONE {
		t.Fatalf("expected Green's initializer, got %+v", green)
	}
	blue := a.EnumMember(en.Members[2])
	if a.Kind(blue.Name) != ast.KindIdentifier {
		t.Fatalf("got blue name kind %s", a.Kind(blue.Name))
	}
}

func TestImportDeclarations(t *testing.T) {
	srcs := []string{
		`import "side-effect";`,
		`import Default from "mod";`,
		`import * as NS from "mod";`,
		`import { a, b as c } from "mod";`,
		`import Default, { a, b } from "mod";`,
		`import Default, * as NS from "mod";`,
		`import type { T } from "mod";`,
	}
	for _, src := range srcs {
		a, stmt := singleStatement(t, src)
		if a.Kind(stmt) != ast.KindImportDeclaration {
			t.Fatalf("input %q: got kind %s", src, a.Kind(stmt))
		}
	}
}

func TestLabeledStatement(t *testing.T) {
	a, stmt := singleStatement(t, "done: console.log('ok');")
	if a.Kind(stmt) != ast.KindLabeledStatement {
		t.Fatalf("got kind %s", a.Kind(stmt))
	}
	labeled := a.LabeledStatement(stmt)
	if a.Identifier(labeled.Label).Text != "done" {
		t.Fatalf("got %+v", labeled)
	}
}

func TestEmptyAndDebuggerStatements(t *testing.T) {
	a, stmts := statements(t, ";\ndebugger;")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements", len(stmts))
	}
	if a.Kind(stmts[0]) != ast.KindEmptyStatement || a.Kind(stmts[1]) != ast.KindDebuggerStatement {
		t.Fatalf("got kinds %s, %s", a.Kind(stmts[0]), a.Kind(stmts[1]))
	}
}

func TestArrowFunctionExpression(t *testing.T) {
	a, stmt := singleStatement(t, "const add = (a: number, b: number): number => a + b;")
	list := a.VarDeclList(stmt)
	decl := a.VarDecl(list.Declarations[0])
	if a.Kind(decl.Initializer) != ast.KindArrowFunction {
		t.Fatalf("got kind %s", a.Kind(decl.Initializer))
	}
	arrow := a.ArrowFunction(decl.Initializer)
	if len(arrow.Parameters) != 2 || arrow.ReturnType == ast.NONE {
		t.Fatalf("got %+v", arrow)
	}
}

func TestGenericCallDisambiguatedFromComparison(t *testing.T) {
	a, stmt := singleStatement(t, "f<number>(1);")
	exprStmt := a.ExprStmt(stmt)
	if a.Kind(exprStmt.Expression) != ast.KindCallExpression {
		t.Fatalf("got kind %s", a.Kind(exprStmt.Expression))
	}
	call := a.Call(exprStmt.Expression)
	if len(call.TypeArguments) != 1 {
		t.Fatalf("expected one type argument, got %+v", call)
	}

	a, stmt = singleStatement(t, "a < b;")
	exprStmt = a.ExprStmt(stmt)
	if a.Kind(exprStmt.Expression) != ast.KindBinaryExpression {
		t.Fatalf("expected plain comparison, got kind %s", a.Kind(exprStmt.Expression))
	}
}

func TestNestedGenericsSplitDoubleGreaterThan(t *testing.T) {
	a, stmt := singleStatement(t, "let m: Map<string, Array<number>>;")
	decl := a.VarDecl(a.VarDeclList(stmt).Declarations[0])
	if a.Kind(decl.Type) != ast.KindTypeReference {
		t.Fatalf("got kind %s", a.Kind(decl.Type))
	}
	outer := a.TypeRef(decl.Type)
	if len(outer.TypeArguments) != 2 {
		t.Fatalf("got %d type arguments", len(outer.TypeArguments))
	}
	if a.Kind(outer.TypeArguments[1]) != ast.KindTypeReference {
		t.Fatalf("got kind %s", a.Kind(outer.TypeArguments[1]))
	}
}
