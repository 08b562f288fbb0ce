package ast

// Visitor is called for each node by Walk. Returning false skips the children.
type Visitor func(n Node) bool

// Inspect walks the tree rooted at n in source order.
func Inspect(n Node, f Visitor) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Walk is Inspect with a post-order callback; leave may be nil.
func Walk(n Node, enter Visitor, leave func(Node)) {
	if n == nil || !enter(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, enter, leave)
	}
	if leave != nil {
		leave(n)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}

func add[N comparable](out []Node, n N) []Node {
	var zero N
	if n == zero {
		return out
	}
	if node, ok := any(n).(Node); ok {
		out = append(out, node)
	}
	return out
}

func addAll[N comparable](out []Node, list []N) []Node {
	for _, n := range list {
		out = add(out, n)
	}
	return out
}

func fnChildren(out []Node, f *Function) []Node {
	out = add(out, f.ID)
	out = addAll(out, f.Params)
	return add(out, f.Body)
}

// Children lists the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case *File:
		out = add(out, n.Program)
	case *Program:
		out = add(out, n.Interpreter)
		out = addAll(out, n.Directives)
		out = addAll(out, n.Body)
	case *Directive:
		out = add(out, n.Value)
	case *PrivateName:
		out = add(out, n.ID)
	case *TemplateLiteral:
		for i, q := range n.Quasis {
			out = add(out, q)
			if i < len(n.Expressions) {
				out = add(out, n.Expressions[i])
			}
		}
	case *TaggedTemplateExpression:
		out = add(out, n.Tag)
		out = add(out, n.Quasi)
	case *MetaProperty:
		out = add(out, n.Meta)
		out = add(out, n.Property)
	case *ArrayExpression:
		out = addAll(out, n.Elements)
	case *ObjectExpression:
		out = addAll(out, n.Properties)
	case *ObjectProperty:
		out = add(out, n.Key)
		out = add(out, n.Value)
	case *ObjectMethod:
		out = add(out, n.Key)
		out = fnChildren(out, &n.Function)
	case *FunctionExpression:
		out = fnChildren(out, &n.Function)
	case *FunctionDeclaration:
		out = fnChildren(out, &n.Function)
	case *ArrowFunctionExpression:
		out = addAll(out, n.Params)
		out = add(out, n.Body)
	case *ClassDeclaration:
		out = add(out, n.ID)
		out = add(out, n.SuperClass)
		out = add(out, n.Body)
	case *ClassExpression:
		out = add(out, n.ID)
		out = add(out, n.SuperClass)
		out = add(out, n.Body)
	case *ClassBody:
		out = addAll(out, n.Body)
	case *ClassMethod:
		out = add(out, n.Key)
		out = fnChildren(out, &n.Function)
	case *ClassPrivateMethod:
		out = add(out, n.Key)
		out = fnChildren(out, &n.Function)
	case *ClassProperty:
		out = add(out, n.Key)
		out = add(out, n.Value)
	case *ClassPrivateProperty:
		out = add(out, n.Key)
		out = add(out, n.Value)
	case *StaticBlock:
		out = addAll(out, n.Body)
	case *UnaryExpression:
		out = add(out, n.Argument)
	case *UpdateExpression:
		out = add(out, n.Argument)
	case *BinaryExpression:
		out = add(out, n.Left)
		out = add(out, n.Right)
	case *LogicalExpression:
		out = add(out, n.Left)
		out = add(out, n.Right)
	case *AssignmentExpression:
		out = add(out, n.Left)
		out = add(out, n.Right)
	case *ConditionalExpression:
		out = add(out, n.Test)
		out = add(out, n.Consequent)
		out = add(out, n.Alternate)
	case *CallExpression:
		out = add(out, n.Callee)
		out = addAll(out, n.Arguments)
	case *OptionalCallExpression:
		out = add(out, n.Callee)
		out = addAll(out, n.Arguments)
	case *NewExpression:
		out = add(out, n.Callee)
		out = addAll(out, n.Arguments)
	case *MemberExpression:
		out = add(out, n.Object)
		out = add(out, n.Property)
	case *OptionalMemberExpression:
		out = add(out, n.Object)
		out = add(out, n.Property)
	case *SequenceExpression:
		out = addAll(out, n.Expressions)
	case *SpreadElement:
		out = add(out, n.Argument)
	case *YieldExpression:
		out = add(out, n.Argument)
	case *AwaitExpression:
		out = add(out, n.Argument)
	case *ObjectPattern:
		out = addAll(out, n.Properties)
	case *ArrayPattern:
		out = addAll(out, n.Elements)
	case *AssignmentPattern:
		out = add(out, n.Left)
		out = add(out, n.Right)
	case *RestElement:
		out = add(out, n.Argument)
	case *ExpressionStatement:
		out = add(out, n.Expression)
	case *BlockStatement:
		out = addAll(out, n.Directives)
		out = addAll(out, n.Body)
	case *WithStatement:
		out = add(out, n.Object)
		out = add(out, n.Body)
	case *ReturnStatement:
		out = add(out, n.Argument)
	case *LabeledStatement:
		out = add(out, n.Label)
		out = add(out, n.Body)
	case *BreakStatement:
		out = add(out, n.Label)
	case *ContinueStatement:
		out = add(out, n.Label)
	case *IfStatement:
		out = add(out, n.Test)
		out = add(out, n.Consequent)
		out = add(out, n.Alternate)
	case *SwitchStatement:
		out = add(out, n.Discriminant)
		out = addAll(out, n.Cases)
	case *SwitchCase:
		out = add(out, n.Test)
		out = addAll(out, n.Consequent)
	case *ThrowStatement:
		out = add(out, n.Argument)
	case *TryStatement:
		out = add(out, n.Block)
		out = add(out, n.Handler)
		out = add(out, n.Finalizer)
	case *CatchClause:
		out = add(out, n.Param)
		out = add(out, n.Body)
	case *WhileStatement:
		out = add(out, n.Test)
		out = add(out, n.Body)
	case *DoWhileStatement:
		out = add(out, n.Body)
		out = add(out, n.Test)
	case *ForStatement:
		out = add(out, n.Init)
		out = add(out, n.Test)
		out = add(out, n.Update)
		out = add(out, n.Body)
	case *ForInStatement:
		out = add(out, n.Left)
		out = add(out, n.Right)
		out = add(out, n.Body)
	case *ForOfStatement:
		out = add(out, n.Left)
		out = add(out, n.Right)
		out = add(out, n.Body)
	case *VariableDeclaration:
		out = addAll(out, n.Declarations)
	case *VariableDeclarator:
		out = add(out, n.ID)
		out = add(out, n.Init)
	case *ImportDeclaration:
		out = addAll(out, n.Specifiers)
		out = add(out, n.Source)
	case *ImportSpecifier:
		out = add(out, n.Imported)
		out = add(out, n.Local)
	case *ImportDefaultSpecifier:
		out = add(out, n.Local)
	case *ImportNamespaceSpecifier:
		out = add(out, n.Local)
	case *ExportNamedDeclaration:
		out = add(out, n.Declaration)
		out = addAll(out, n.Specifiers)
		out = add(out, n.Source)
	case *ExportSpecifier:
		out = add(out, n.Local)
		out = add(out, n.Exported)
	case *ExportNamespaceSpecifier:
		out = add(out, n.Exported)
	case *ExportDefaultDeclaration:
		out = add(out, n.Declaration)
	case *ExportAllDeclaration:
		out = add(out, n.Source)
	}
	return out
}
