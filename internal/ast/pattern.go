package ast

// ObjectPattern properties are *ObjectProperty (Value is a Pattern) or a
// trailing *RestElement.
type ObjectPattern struct {
	NodeBase
	Properties []Node `json:"properties"`
}

// ArrayPattern elements are nil for holes.
type ArrayPattern struct {
	NodeBase
	Elements []Pattern `json:"elements"`
}

type AssignmentPattern struct {
	NodeBase
	Left  Pattern    `json:"left"`
	Right Expression `json:"right"`
}

type RestElement struct {
	NodeBase
	Argument Pattern `json:"argument"`
}

func (*Identifier) patternNode()        {}
func (*MemberExpression) patternNode()  {}
func (*ObjectPattern) patternNode()     {}
func (*ArrayPattern) patternNode()      {}
func (*AssignmentPattern) patternNode() {}
func (*RestElement) patternNode()       {}
