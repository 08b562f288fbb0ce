package ast

type ExpressionStatement struct {
	NodeBase
	Expression Expression `json:"expression"`
}

// BlockStatement Directives is only filled for function bodies.
type BlockStatement struct {
	NodeBase
	Body       []Statement  `json:"body"`
	Directives []*Directive `json:"directives"`
}

type EmptyStatement struct {
	NodeBase
}

type DebuggerStatement struct {
	NodeBase
}

type WithStatement struct {
	NodeBase
	Object Expression `json:"object"`
	Body   Statement  `json:"body"`
}

type ReturnStatement struct {
	NodeBase
	Argument Expression `json:"argument"`
}

type LabeledStatement struct {
	NodeBase
	Label *Identifier `json:"label"`
	Body  Statement   `json:"body"`
}

type BreakStatement struct {
	NodeBase
	Label *Identifier `json:"label"`
}

type ContinueStatement struct {
	NodeBase
	Label *Identifier `json:"label"`
}

type IfStatement struct {
	NodeBase
	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate"`
}

type SwitchStatement struct {
	NodeBase
	Discriminant Expression    `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

// SwitchCase Test is nil for the default clause.
type SwitchCase struct {
	NodeBase
	Test       Expression  `json:"test"`
	Consequent []Statement `json:"consequent"`
}

type ThrowStatement struct {
	NodeBase
	Argument Expression `json:"argument"`
}

type TryStatement struct {
	NodeBase
	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler"`
	Finalizer *BlockStatement `json:"finalizer"`
}

// CatchClause Param is nil for `catch {`.
type CatchClause struct {
	NodeBase
	Param Pattern         `json:"param"`
	Body  *BlockStatement `json:"body"`
}

type WhileStatement struct {
	NodeBase
	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

type DoWhileStatement struct {
	NodeBase
	Body Statement  `json:"body"`
	Test Expression `json:"test"`
}

// ForStatement Init is a *VariableDeclaration or an Expression.
type ForStatement struct {
	NodeBase
	Init   Node       `json:"init"`
	Test   Expression `json:"test"`
	Update Expression `json:"update"`
	Body   Statement  `json:"body"`
}

// ForInStatement Left is a *VariableDeclaration or a Pattern.
type ForInStatement struct {
	NodeBase
	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
}

type ForOfStatement struct {
	NodeBase
	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
	Await bool       `json:"await"`
}

type FunctionDeclaration struct {
	NodeBase
	Function
}

// VariableDeclaration Kind is "var", "let" or "const".
type VariableDeclaration struct {
	NodeBase
	Kind         string                `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

type VariableDeclarator struct {
	NodeBase
	ID   Pattern    `json:"id"`
	Init Expression `json:"init"`
}

func (*ExpressionStatement) statementNode()      {}
func (*BlockStatement) statementNode()           {}
func (*EmptyStatement) statementNode()           {}
func (*DebuggerStatement) statementNode()        {}
func (*WithStatement) statementNode()            {}
func (*ReturnStatement) statementNode()          {}
func (*LabeledStatement) statementNode()         {}
func (*BreakStatement) statementNode()           {}
func (*ContinueStatement) statementNode()        {}
func (*IfStatement) statementNode()              {}
func (*SwitchStatement) statementNode()          {}
func (*ThrowStatement) statementNode()           {}
func (*TryStatement) statementNode()             {}
func (*WhileStatement) statementNode()           {}
func (*DoWhileStatement) statementNode()         {}
func (*ForStatement) statementNode()             {}
func (*ForInStatement) statementNode()           {}
func (*ForOfStatement) statementNode()           {}
func (*FunctionDeclaration) statementNode()      {}
func (*VariableDeclaration) statementNode()      {}
func (*ClassDeclaration) statementNode()         {}
func (*ImportDeclaration) statementNode()        {}
func (*ExportNamedDeclaration) statementNode()   {}
func (*ExportDefaultDeclaration) statementNode() {}
func (*ExportAllDeclaration) statementNode()     {}
