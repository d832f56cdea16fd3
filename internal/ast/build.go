package ast

// The AddX functions are the only way to put a node of kind X into the
// arena; each lazily creates its side table on first use. Every AddX
// returns the new node's index, which callers pass as a child reference to
// an outer AddX call — the arena never mutates a node's children after
// allocation, only its Parent pointer (via SetParent) and, for nodes built
// bottom-up, the owning container's own side-table slice.

func (a *Arena) AddSourceFile(span Span, data SourceFileData) NodeIndex {
	n := a.alloc(KindSourceFile, span, NONE)
	if a.sourceFiles == nil {
		a.sourceFiles = make(map[NodeIndex]SourceFileData)
	}
	a.sourceFiles[n] = data
	for _, stmt := range data.Statements {
		a.SetParent(stmt, n)
	}
	return n
}

func (a *Arena) SourceFile(n NodeIndex) SourceFileData { return a.sourceFiles[n] }

func (a *Arena) AddIdentifier(span Span, text string) NodeIndex {
	n := a.alloc(KindIdentifier, span, NONE)
	if a.identifiers == nil {
		a.identifiers = make(map[NodeIndex]IdentifierData)
	}
	a.identifiers[n] = IdentifierData{Text: text}
	return n
}

func (a *Arena) Identifier(n NodeIndex) IdentifierData { return a.identifiers[n] }

func (a *Arena) AddLiteral(kind Kind, span Span, value any, raw string) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.literals == nil {
		a.literals = make(map[NodeIndex]LiteralData)
	}
	a.literals[n] = LiteralData{Value: value, Raw: raw}
	return n
}

func (a *Arena) Literal(n NodeIndex) LiteralData { return a.literals[n] }

func (a *Arena) AddTemplateLiteral(span Span, data TemplateLiteralData) NodeIndex {
	n := a.alloc(KindTemplateLiteral, span, NONE)
	if a.templates == nil {
		a.templates = make(map[NodeIndex]TemplateLiteralData)
	}
	a.templates[n] = data
	for _, e := range data.Exprs {
		a.SetParent(e, n)
	}
	return n
}

func (a *Arena) TemplateLiteral(n NodeIndex) TemplateLiteralData { return a.templates[n] }

func (a *Arena) AddBinary(span Span, data BinaryData) NodeIndex {
	n := a.alloc(KindBinaryExpression, span, NONE)
	if a.binaries == nil {
		a.binaries = make(map[NodeIndex]BinaryData)
	}
	a.binaries[n] = data
	a.SetParent(data.Left, n)
	a.SetParent(data.Right, n)
	return n
}

func (a *Arena) Binary(n NodeIndex) BinaryData { return a.binaries[n] }

func (a *Arena) AddLogical(span Span, data LogicalData) NodeIndex {
	n := a.alloc(KindLogicalExpression, span, NONE)
	if a.logicals == nil {
		a.logicals = make(map[NodeIndex]LogicalData)
	}
	a.logicals[n] = data
	a.SetParent(data.Left, n)
	a.SetParent(data.Right, n)
	return n
}

func (a *Arena) Logical(n NodeIndex) LogicalData { return a.logicals[n] }

func (a *Arena) AddUnary(kind Kind, span Span, data UnaryData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.unaries == nil {
		a.unaries = make(map[NodeIndex]UnaryData)
	}
	a.unaries[n] = data
	a.SetParent(data.Operand, n)
	return n
}

func (a *Arena) Unary(n NodeIndex) UnaryData { return a.unaries[n] }

func (a *Arena) AddCall(kind Kind, span Span, data CallData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.calls == nil {
		a.calls = make(map[NodeIndex]CallData)
	}
	a.calls[n] = data
	a.SetParent(data.Callee, n)
	for _, arg := range data.Arguments {
		a.SetParent(arg, n)
	}
	return n
}

func (a *Arena) Call(n NodeIndex) CallData { return a.calls[n] }

func (a *Arena) AddMember(span Span, data MemberData) NodeIndex {
	n := a.alloc(KindMemberExpression, span, NONE)
	if a.members == nil {
		a.members = make(map[NodeIndex]MemberData)
	}
	a.members[n] = data
	a.SetParent(data.Object, n)
	if data.Computed {
		a.SetParent(data.Property, n)
	}
	return n
}

func (a *Arena) Member(n NodeIndex) MemberData { return a.members[n] }

func (a *Arena) AddConditionalExpr(span Span, data ConditionalExprData) NodeIndex {
	n := a.alloc(KindConditionalExpression, span, NONE)
	if a.conditionals == nil {
		a.conditionals = make(map[NodeIndex]ConditionalExprData)
	}
	a.conditionals[n] = data
	a.SetParent(data.Condition, n)
	a.SetParent(data.WhenTrue, n)
	a.SetParent(data.WhenFalse, n)
	return n
}

func (a *Arena) ConditionalExpr(n NodeIndex) ConditionalExprData { return a.conditionals[n] }

func (a *Arena) AddAsExpression(kind Kind, span Span, data AsExpressionData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.asExprs == nil {
		a.asExprs = make(map[NodeIndex]AsExpressionData)
	}
	a.asExprs[n] = data
	a.SetParent(data.Expression, n)
	a.SetParent(data.Type, n)
	return n
}

func (a *Arena) AsExpression(n NodeIndex) AsExpressionData { return a.asExprs[n] }

func (a *Arena) AddParameter(span Span, data ParameterData) NodeIndex {
	n := a.alloc(KindParameter, span, NONE)
	if a.parameters == nil {
		a.parameters = make(map[NodeIndex]ParameterData)
	}
	a.parameters[n] = data
	a.SetParent(data.Name, n)
	a.SetParent(data.Type, n)
	a.SetParent(data.Initializer, n)
	return n
}

func (a *Arena) Parameter(n NodeIndex) ParameterData { return a.parameters[n] }

func (a *Arena) AddFunction(kind Kind, span Span, data FunctionData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.functions == nil {
		a.functions = make(map[NodeIndex]FunctionData)
	}
	a.functions[n] = data
	a.SetParent(data.Name, n)
	for _, p := range data.Parameters {
		a.SetParent(p, n)
	}
	a.SetParent(data.ReturnType, n)
	a.SetParent(data.Body, n)
	return n
}

func (a *Arena) Function(n NodeIndex) FunctionData { return a.functions[n] }

func (a *Arena) AddArrowFunction(span Span, data ArrowFunctionData) NodeIndex {
	n := a.alloc(KindArrowFunction, span, NONE)
	if a.arrows == nil {
		a.arrows = make(map[NodeIndex]ArrowFunctionData)
	}
	a.arrows[n] = data
	for _, p := range data.Parameters {
		a.SetParent(p, n)
	}
	a.SetParent(data.ReturnType, n)
	a.SetParent(data.Body, n)
	return n
}

func (a *Arena) ArrowFunction(n NodeIndex) ArrowFunctionData { return a.arrows[n] }

func (a *Arena) AddVarDeclList(span Span, data VarDeclListData) NodeIndex {
	n := a.alloc(KindVariableDeclarationList, span, NONE)
	if a.varDeclLists == nil {
		a.varDeclLists = make(map[NodeIndex]VarDeclListData)
	}
	a.varDeclLists[n] = data
	for _, d := range data.Declarations {
		a.SetParent(d, n)
	}
	return n
}

func (a *Arena) VarDeclList(n NodeIndex) VarDeclListData { return a.varDeclLists[n] }

func (a *Arena) AddVarDecl(span Span, data VarDeclData) NodeIndex {
	n := a.alloc(KindVariableDeclaration, span, NONE)
	if a.varDecls == nil {
		a.varDecls = make(map[NodeIndex]VarDeclData)
	}
	a.varDecls[n] = data
	a.SetParent(data.Name, n)
	a.SetParent(data.Type, n)
	a.SetParent(data.Initializer, n)
	return n
}

func (a *Arena) VarDecl(n NodeIndex) VarDeclData { return a.varDecls[n] }

func (a *Arena) AddBlock(span Span, data BlockData) NodeIndex {
	n := a.alloc(KindBlock, span, NONE)
	if a.blocks == nil {
		a.blocks = make(map[NodeIndex]BlockData)
	}
	a.blocks[n] = data
	for _, s := range data.Statements {
		a.SetParent(s, n)
	}
	return n
}

func (a *Arena) Block(n NodeIndex) BlockData { return a.blocks[n] }

func (a *Arena) AddIf(span Span, data IfData) NodeIndex {
	n := a.alloc(KindIfStatement, span, NONE)
	if a.ifs == nil {
		a.ifs = make(map[NodeIndex]IfData)
	}
	a.ifs[n] = data
	a.SetParent(data.Condition, n)
	a.SetParent(data.Then, n)
	a.SetParent(data.Else, n)
	return n
}

func (a *Arena) If(n NodeIndex) IfData { return a.ifs[n] }

func (a *Arena) AddLoop(kind Kind, span Span, data LoopData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.loops == nil {
		a.loops = make(map[NodeIndex]LoopData)
	}
	a.loops[n] = data
	a.SetParent(data.Init, n)
	a.SetParent(data.Condition, n)
	a.SetParent(data.Update, n)
	a.SetParent(data.Declared, n)
	a.SetParent(data.Expr, n)
	a.SetParent(data.Body, n)
	return n
}

func (a *Arena) Loop(n NodeIndex) LoopData { return a.loops[n] }

func (a *Arena) AddReturn(kind Kind, span Span, data ReturnData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.returns == nil {
		a.returns = make(map[NodeIndex]ReturnData)
	}
	a.returns[n] = data
	a.SetParent(data.Argument, n)
	return n
}

func (a *Arena) Return(n NodeIndex) ReturnData { return a.returns[n] }

func (a *Arena) AddExprStmt(span Span, data ExprStmtData) NodeIndex {
	n := a.alloc(KindExpressionStatement, span, NONE)
	if a.exprStmts == nil {
		a.exprStmts = make(map[NodeIndex]ExprStmtData)
	}
	a.exprStmts[n] = data
	a.SetParent(data.Expression, n)
	return n
}

func (a *Arena) ExprStmt(n NodeIndex) ExprStmtData { return a.exprStmts[n] }

func (a *Arena) AddTypeAlias(span Span, data TypeAliasData) NodeIndex {
	n := a.alloc(KindTypeAliasDeclaration, span, NONE)
	if a.typeAliases == nil {
		a.typeAliases = make(map[NodeIndex]TypeAliasData)
	}
	a.typeAliases[n] = data
	a.SetParent(data.Name, n)
	for _, tp := range data.TypeParams {
		a.SetParent(tp, n)
	}
	a.SetParent(data.Type, n)
	return n
}

func (a *Arena) TypeAlias(n NodeIndex) TypeAliasData { return a.typeAliases[n] }

func (a *Arena) AddInterface(span Span, data InterfaceData) NodeIndex {
	n := a.alloc(KindInterfaceDeclaration, span, NONE)
	if a.interfaces == nil {
		a.interfaces = make(map[NodeIndex]InterfaceData)
	}
	a.interfaces[n] = data
	a.SetParent(data.Name, n)
	for _, m := range data.Members {
		a.SetParent(m, n)
	}
	return n
}

func (a *Arena) Interface(n NodeIndex) InterfaceData { return a.interfaces[n] }

func (a *Arena) AddClass(span Span, data ClassData) NodeIndex {
	n := a.alloc(KindClassDeclaration, span, NONE)
	if a.classes == nil {
		a.classes = make(map[NodeIndex]ClassData)
	}
	a.classes[n] = data
	a.SetParent(data.Name, n)
	for _, m := range data.Members {
		a.SetParent(m, n)
	}
	return n
}

func (a *Arena) Class(n NodeIndex) ClassData { return a.classes[n] }

func (a *Arena) AddProperty(kind Kind, span Span, data PropertyData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.properties == nil {
		a.properties = make(map[NodeIndex]PropertyData)
	}
	a.properties[n] = data
	a.SetParent(data.Name, n)
	a.SetParent(data.Type, n)
	a.SetParent(data.Initializer, n)
	return n
}

func (a *Arena) Property(n NodeIndex) PropertyData { return a.properties[n] }

func (a *Arena) AddTypeRef(span Span, data TypeRefData) NodeIndex {
	n := a.alloc(KindTypeReference, span, NONE)
	if a.typeRefs == nil {
		a.typeRefs = make(map[NodeIndex]TypeRefData)
	}
	a.typeRefs[n] = data
	a.SetParent(data.Name, n)
	for _, ta := range data.TypeArguments {
		a.SetParent(ta, n)
	}
	return n
}

func (a *Arena) TypeRef(n NodeIndex) TypeRefData { return a.typeRefs[n] }

func (a *Arena) AddUnionIntersection(kind Kind, span Span, data UnionIntersectionData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.unionTypes == nil {
		a.unionTypes = make(map[NodeIndex]UnionIntersectionData)
	}
	a.unionTypes[n] = data
	for _, t := range data.Types {
		a.SetParent(t, n)
	}
	return n
}

func (a *Arena) UnionIntersection(n NodeIndex) UnionIntersectionData { return a.unionTypes[n] }

func (a *Arena) AddArrayType(span Span, data ArrayTypeData) NodeIndex {
	n := a.alloc(KindArrayType, span, NONE)
	if a.arrayTypes == nil {
		a.arrayTypes = make(map[NodeIndex]ArrayTypeData)
	}
	a.arrayTypes[n] = data
	a.SetParent(data.ElementType, n)
	return n
}

func (a *Arena) ArrayType(n NodeIndex) ArrayTypeData { return a.arrayTypes[n] }

func (a *Arena) AddTupleType(span Span, data TupleTypeData) NodeIndex {
	n := a.alloc(KindTupleType, span, NONE)
	if a.tupleTypes == nil {
		a.tupleTypes = make(map[NodeIndex]TupleTypeData)
	}
	a.tupleTypes[n] = data
	for _, t := range data.ElementTypes {
		a.SetParent(t, n)
	}
	return n
}

func (a *Arena) TupleType(n NodeIndex) TupleTypeData { return a.tupleTypes[n] }

func (a *Arena) AddFunctionType(kind Kind, span Span, data FunctionTypeData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.funcTypes == nil {
		a.funcTypes = make(map[NodeIndex]FunctionTypeData)
	}
	a.funcTypes[n] = data
	for _, p := range data.Parameters {
		a.SetParent(p, n)
	}
	a.SetParent(data.ReturnType, n)
	return n
}

func (a *Arena) FunctionType(n NodeIndex) FunctionTypeData { return a.funcTypes[n] }

func (a *Arena) AddConditionalType(span Span, data ConditionalTypeData) NodeIndex {
	n := a.alloc(KindConditionalType, span, NONE)
	if a.condTypes == nil {
		a.condTypes = make(map[NodeIndex]ConditionalTypeData)
	}
	a.condTypes[n] = data
	a.SetParent(data.CheckType, n)
	a.SetParent(data.ExtendsType, n)
	a.SetParent(data.TrueType, n)
	a.SetParent(data.FalseType, n)
	return n
}

func (a *Arena) ConditionalType(n NodeIndex) ConditionalTypeData { return a.condTypes[n] }

func (a *Arena) AddMappedType(span Span, data MappedTypeData) NodeIndex {
	n := a.alloc(KindMappedType, span, NONE)
	if a.mappedTypes == nil {
		a.mappedTypes = make(map[NodeIndex]MappedTypeData)
	}
	a.mappedTypes[n] = data
	a.SetParent(data.TypeParameter, n)
	a.SetParent(data.NameType, n)
	a.SetParent(data.Type, n)
	return n
}

func (a *Arena) MappedType(n NodeIndex) MappedTypeData { return a.mappedTypes[n] }

func (a *Arena) AddIndexedAccessType(span Span, data IndexedAccessTypeData) NodeIndex {
	n := a.alloc(KindIndexedAccessType, span, NONE)
	if a.indexedTypes == nil {
		a.indexedTypes = make(map[NodeIndex]IndexedAccessTypeData)
	}
	a.indexedTypes[n] = data
	a.SetParent(data.ObjectType, n)
	a.SetParent(data.IndexType, n)
	return n
}

func (a *Arena) IndexedAccessType(n NodeIndex) IndexedAccessTypeData { return a.indexedTypes[n] }

func (a *Arena) AddKeyOfType(kind Kind, span Span, data KeyOfTypeData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.keyofTypes == nil {
		a.keyofTypes = make(map[NodeIndex]KeyOfTypeData)
	}
	a.keyofTypes[n] = data
	a.SetParent(data.Operand, n)
	return n
}

func (a *Arena) KeyOfType(n NodeIndex) KeyOfTypeData { return a.keyofTypes[n] }

func (a *Arena) AddTypeParameter(span Span, data TypeParameterData) NodeIndex {
	n := a.alloc(KindTypeParameter, span, NONE)
	if a.typeParams == nil {
		a.typeParams = make(map[NodeIndex]TypeParameterData)
	}
	a.typeParams[n] = data
	a.SetParent(data.Name, n)
	a.SetParent(data.Constraint, n)
	a.SetParent(data.Default, n)
	return n
}

func (a *Arena) TypeParameter(n NodeIndex) TypeParameterData { return a.typeParams[n] }

func (a *Arena) AddObjectLiteral(span Span, data ObjectLiteralData) NodeIndex {
	n := a.alloc(KindObjectLiteralExpression, span, NONE)
	if a.objectLits == nil {
		a.objectLits = make(map[NodeIndex]ObjectLiteralData)
	}
	a.objectLits[n] = data
	for _, p := range data.Properties {
		a.SetParent(p, n)
	}
	return n
}

func (a *Arena) ObjectLiteral(n NodeIndex) ObjectLiteralData { return a.objectLits[n] }

func (a *Arena) AddPropertyAssign(kind Kind, span Span, data PropertyAssignData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.propAssigns == nil {
		a.propAssigns = make(map[NodeIndex]PropertyAssignData)
	}
	a.propAssigns[n] = data
	a.SetParent(data.Name, n)
	if !data.Shorthand {
		a.SetParent(data.Value, n)
	}
	return n
}

func (a *Arena) PropertyAssign(n NodeIndex) PropertyAssignData { return a.propAssigns[n] }

func (a *Arena) AddArrayLiteral(span Span, data ArrayLiteralData) NodeIndex {
	n := a.alloc(KindArrayLiteralExpression, span, NONE)
	if a.arrayLits == nil {
		a.arrayLits = make(map[NodeIndex]ArrayLiteralData)
	}
	a.arrayLits[n] = data
	for _, e := range data.Elements {
		a.SetParent(e, n)
	}
	return n
}

func (a *Arena) ArrayLiteral(n NodeIndex) ArrayLiteralData { return a.arrayLits[n] }

func (a *Arena) AddTry(span Span, data TryData) NodeIndex {
	n := a.alloc(KindTryStatement, span, NONE)
	if a.tries == nil {
		a.tries = make(map[NodeIndex]TryData)
	}
	a.tries[n] = data
	a.SetParent(data.Block, n)
	a.SetParent(data.Catch, n)
	a.SetParent(data.Finally, n)
	return n
}

func (a *Arena) Try(n NodeIndex) TryData { return a.tries[n] }

func (a *Arena) AddCatchClause(span Span, data CatchClauseData) NodeIndex {
	n := a.alloc(KindCatchClause, span, NONE)
	if a.catchClauses == nil {
		a.catchClauses = make(map[NodeIndex]CatchClauseData)
	}
	a.catchClauses[n] = data
	a.SetParent(data.Param, n)
	a.SetParent(data.Body, n)
	return n
}

func (a *Arena) CatchClause(n NodeIndex) CatchClauseData { return a.catchClauses[n] }

func (a *Arena) AddSwitch(span Span, data SwitchData) NodeIndex {
	n := a.alloc(KindSwitchStatement, span, NONE)
	if a.switches == nil {
		a.switches = make(map[NodeIndex]SwitchData)
	}
	a.switches[n] = data
	a.SetParent(data.Discriminant, n)
	for _, c := range data.Clauses {
		a.SetParent(c, n)
	}
	return n
}

func (a *Arena) Switch(n NodeIndex) SwitchData { return a.switches[n] }

func (a *Arena) AddCaseClause(kind Kind, span Span, data CaseClauseData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.caseClauses == nil {
		a.caseClauses = make(map[NodeIndex]CaseClauseData)
	}
	a.caseClauses[n] = data
	a.SetParent(data.Test, n)
	for _, s := range data.Statements {
		a.SetParent(s, n)
	}
	return n
}

func (a *Arena) CaseClause(n NodeIndex) CaseClauseData { return a.caseClauses[n] }

func (a *Arena) AddLabeledStatement(span Span, data LabeledStatementData) NodeIndex {
	n := a.alloc(KindLabeledStatement, span, NONE)
	if a.labeled == nil {
		a.labeled = make(map[NodeIndex]LabeledStatementData)
	}
	a.labeled[n] = data
	a.SetParent(data.Label, n)
	a.SetParent(data.Statement, n)
	return n
}

func (a *Arena) LabeledStatement(n NodeIndex) LabeledStatementData { return a.labeled[n] }

func (a *Arena) AddBreakContinue(kind Kind, span Span, data BreakContinueData) NodeIndex {
	n := a.alloc(kind, span, NONE)
	if a.breakContinues == nil {
		a.breakContinues = make(map[NodeIndex]BreakContinueData)
	}
	a.breakContinues[n] = data
	a.SetParent(data.Label, n)
	return n
}

func (a *Arena) BreakContinue(n NodeIndex) BreakContinueData { return a.breakContinues[n] }

func (a *Arena) AddEnum(span Span, data EnumData) NodeIndex {
	n := a.alloc(KindEnumDeclaration, span, NONE)
	if a.enums == nil {
		a.enums = make(map[NodeIndex]EnumData)
	}
	a.enums[n] = data
	a.SetParent(data.Name, n)
	for _, m := range data.Members {
		a.SetParent(m, n)
	}
	return n
}

func (a *Arena) Enum(n NodeIndex) EnumData { return a.enums[n] }

func (a *Arena) AddEnumMember(span Span, data EnumMemberData) NodeIndex {
	n := a.alloc(KindEnumMember, span, NONE)
	if a.enumMembers == nil {
		a.enumMembers = make(map[NodeIndex]EnumMemberData)
	}
	a.enumMembers[n] = data
	a.SetParent(data.Name, n)
	a.SetParent(data.Initializer, n)
	return n
}

func (a *Arena) EnumMember(n NodeIndex) EnumMemberData { return a.enumMembers[n] }

// AddSimple allocates a childless node (KindThisExpression,
// KindSuperExpression, KindEmptyStatement, KindDebuggerStatement,
// KindBreakStatement, KindContinueStatement without a label) that needs no
// side table entry at all.
func (a *Arena) AddSimple(kind Kind, span Span) NodeIndex {
	return a.alloc(kind, span, NONE)
}
