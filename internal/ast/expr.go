package ast

// Identifier is a plain name; it is also a binding pattern.
type Identifier struct {
	NodeBase
	Name string `json:"name"`
}

// PrivateName is "#name" inside a class body.
type PrivateName struct {
	NodeBase
	ID *Identifier `json:"id"`
}

type StringLiteral struct {
	NodeBase
	Value string `json:"value"`
}

type NumericLiteral struct {
	NodeBase
	Value float64 `json:"value"`
}

// BigIntLiteral keeps the decimal or radix digits without separators and suffix.
type BigIntLiteral struct {
	NodeBase
	Value string `json:"value"`
}

type BooleanLiteral struct {
	NodeBase
	Value bool `json:"value"`
}

type NullLiteral struct {
	NodeBase
}

type RegExpLiteral struct {
	NodeBase
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// TemplateElementValue holds both renderings of a template chunk. Cooked is
// nil when the chunk contains an escape that is only legal in tagged templates.
type TemplateElementValue struct {
	Raw    string  `json:"raw"`
	Cooked *string `json:"cooked"`
}

type TemplateElement struct {
	NodeBase
	Value TemplateElementValue `json:"value"`
	Tail  bool                 `json:"tail"`
}

// TemplateLiteral always has len(Quasis) == len(Expressions)+1.
type TemplateLiteral struct {
	NodeBase
	Quasis      []*TemplateElement `json:"quasis"`
	Expressions []Expression       `json:"expressions"`
}

type TaggedTemplateExpression struct {
	NodeBase
	Tag   Expression       `json:"tag"`
	Quasi *TemplateLiteral `json:"quasi"`
}

type ThisExpression struct {
	NodeBase
}

type Super struct {
	NodeBase
}

// Import is the callee of a dynamic import(...) call.
type Import struct {
	NodeBase
}

// MetaProperty is new.target or import.meta.
type MetaProperty struct {
	NodeBase
	Meta     *Identifier `json:"meta"`
	Property *Identifier `json:"property"`
}

// ArrayExpression elements are nil for holes.
type ArrayExpression struct {
	NodeBase
	Elements []Expression `json:"elements"`
}

// ObjectExpression properties are *ObjectProperty, *ObjectMethod or *SpreadElement.
type ObjectExpression struct {
	NodeBase
	Properties []Node `json:"properties"`
}

// ObjectProperty appears in object expressions and object patterns. In a
// pattern Value is a Pattern.
type ObjectProperty struct {
	NodeBase
	Key       Expression `json:"key"`
	Value     Node       `json:"value"`
	Computed  bool       `json:"computed"`
	Shorthand bool       `json:"shorthand"`
	Method    bool       `json:"method"`
}

// Function is the shared part of every function-like node.
type Function struct {
	ID        *Identifier     `json:"id"`
	Params    []Pattern       `json:"params"`
	Body      *BlockStatement `json:"body"`
	Generator bool            `json:"generator"`
	Async     bool            `json:"async"`
}

// ObjectMethod Kind is "method", "get" or "set".
type ObjectMethod struct {
	NodeBase
	Function
	Kind     string     `json:"kind"`
	Key      Expression `json:"key"`
	Computed bool       `json:"computed"`
	Method   bool       `json:"method"`
}

type FunctionExpression struct {
	NodeBase
	Function
}

// ArrowFunctionExpression Body is a *BlockStatement or an Expression; Expression
// reports the latter.
type ArrowFunctionExpression struct {
	NodeBase
	ID         *Identifier `json:"id"`
	Params     []Pattern   `json:"params"`
	Body       Node        `json:"body"`
	Async      bool        `json:"async"`
	Generator  bool        `json:"generator"`
	Expression bool        `json:"expression"`
}

type UnaryExpression struct {
	NodeBase
	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

type UpdateExpression struct {
	NodeBase
	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

// BinaryExpression Left may be a *PrivateName for `#x in obj`.
type BinaryExpression struct {
	NodeBase
	Operator string     `json:"operator"`
	Left     Node       `json:"left"`
	Right    Expression `json:"right"`
}

type LogicalExpression struct {
	NodeBase
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

type AssignmentExpression struct {
	NodeBase
	Operator string     `json:"operator"`
	Left     Pattern    `json:"left"`
	Right    Expression `json:"right"`
}

type ConditionalExpression struct {
	NodeBase
	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

type CallExpression struct {
	NodeBase
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

// OptionalCallExpression is a call inside an optional chain; Optional marks `?.(`.
type OptionalCallExpression struct {
	NodeBase
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
	Optional  bool         `json:"optional"`
}

type NewExpression struct {
	NodeBase
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

// MemberExpression Property is an *Identifier, a *PrivateName or, when
// Computed, any expression.
type MemberExpression struct {
	NodeBase
	Object   Expression `json:"object"`
	Property Node       `json:"property"`
	Computed bool       `json:"computed"`
}

type OptionalMemberExpression struct {
	NodeBase
	Object   Expression `json:"object"`
	Property Node       `json:"property"`
	Computed bool       `json:"computed"`
	Optional bool       `json:"optional"`
}

type SequenceExpression struct {
	NodeBase
	Expressions []Expression `json:"expressions"`
}

// SpreadElement is `...x` in arrays, calls and object literals.
type SpreadElement struct {
	NodeBase
	Argument Expression `json:"argument"`
}

type YieldExpression struct {
	NodeBase
	Delegate bool       `json:"delegate"`
	Argument Expression `json:"argument"`
}

type AwaitExpression struct {
	NodeBase
	Argument Expression `json:"argument"`
}

func (*Identifier) expressionNode()               {}
func (*PrivateName) expressionNode()              {}
func (*StringLiteral) expressionNode()            {}
func (*NumericLiteral) expressionNode()           {}
func (*BigIntLiteral) expressionNode()            {}
func (*BooleanLiteral) expressionNode()           {}
func (*NullLiteral) expressionNode()              {}
func (*RegExpLiteral) expressionNode()            {}
func (*TemplateLiteral) expressionNode()          {}
func (*TaggedTemplateExpression) expressionNode() {}
func (*ThisExpression) expressionNode()           {}
func (*Super) expressionNode()                    {}
func (*Import) expressionNode()                   {}
func (*MetaProperty) expressionNode()             {}
func (*ArrayExpression) expressionNode()          {}
func (*ObjectExpression) expressionNode()         {}
func (*FunctionExpression) expressionNode()       {}
func (*ArrowFunctionExpression) expressionNode()  {}
func (*ClassExpression) expressionNode()          {}
func (*UnaryExpression) expressionNode()          {}
func (*UpdateExpression) expressionNode()         {}
func (*BinaryExpression) expressionNode()         {}
func (*LogicalExpression) expressionNode()        {}
func (*AssignmentExpression) expressionNode()     {}
func (*ConditionalExpression) expressionNode()    {}
func (*CallExpression) expressionNode()           {}
func (*OptionalCallExpression) expressionNode()   {}
func (*NewExpression) expressionNode()            {}
func (*MemberExpression) expressionNode()         {}
func (*OptionalMemberExpression) expressionNode() {}
func (*SequenceExpression) expressionNode()       {}
func (*SpreadElement) expressionNode()            {}
func (*YieldExpression) expressionNode()          {}
func (*AwaitExpression) expressionNode()          {}
