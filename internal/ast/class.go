package ast

// Class is the shared part of class declarations and expressions.
type Class struct {
	ID         *Identifier `json:"id"`
	SuperClass Expression  `json:"superClass"`
	Body       *ClassBody  `json:"body"`
}

type ClassDeclaration struct {
	NodeBase
	Class
}

type ClassExpression struct {
	NodeBase
	Class
}

// ClassBody members are *ClassMethod, *ClassPrivateMethod, *ClassProperty,
// *ClassPrivateProperty or *StaticBlock.
type ClassBody struct {
	NodeBase
	Body []Node `json:"body"`
}

// ClassMethod Kind is "constructor", "method", "get" or "set".
type ClassMethod struct {
	NodeBase
	Function
	Kind     string     `json:"kind"`
	Key      Expression `json:"key"`
	Computed bool       `json:"computed"`
	Static   bool       `json:"static"`
}

type ClassPrivateMethod struct {
	NodeBase
	Function
	Kind   string       `json:"kind"`
	Key    *PrivateName `json:"key"`
	Static bool         `json:"static"`
}

type ClassProperty struct {
	NodeBase
	Key      Expression `json:"key"`
	Value    Expression `json:"value"`
	Computed bool       `json:"computed"`
	Static   bool       `json:"static"`
}

type ClassPrivateProperty struct {
	NodeBase
	Key    *PrivateName `json:"key"`
	Value  Expression   `json:"value"`
	Static bool         `json:"static"`
}

type StaticBlock struct {
	NodeBase
	Body []Statement `json:"body"`
}
