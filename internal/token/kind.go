package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Num is a numeric literal; Value is float64.
	Num
	// BigInt is a big-integer literal; Value is the digit string without separators or n.
	BigInt
	// String is a string literal; Value is the decoded string.
	String
	// Regexp is a regular-expression literal; Value is RegExpValue.
	Regexp
	// Name is an identifier or a contextual keyword; Value is the decoded name.
	Name
	// PrivateName is #name; Value is the name without '#'.
	PrivateName
	// TemplateNonTail is a template chunk ending in '${'; Value is TemplateValue.
	TemplateNonTail
	// TemplateTail is a template chunk ending in '`'; Value is TemplateValue.
	TemplateTail
	// InterpreterDirective is a leading '#!' line; Value is the text after '#!'.
	InterpreterDirective

	LBracket    // [
	RBracket    // ]
	LBrace      // {
	RBrace      // }
	LParen      // (
	RParen      // )
	Comma       // ,
	Semicolon   // ;
	Colon       // :
	Dot         // .
	Question    // ?
	QuestionDot // ?.
	Arrow       // =>
	Ellipsis    // ...
	At          // @

	Assign           // =
	AddAssign        // +=
	SubAssign        // -=
	MulAssign        // *=
	DivAssign        // /=
	ModAssign        // %=
	ExpAssign        // **=
	ShlAssign        // <<=
	ShrAssign        // >>=
	UShrAssign       // >>>=
	AndAssign        // &=
	OrAssign         // |=
	XorAssign        // ^=
	LogicalAndAssign // &&=
	LogicalOrAssign  // ||=
	NullishAssign    // ??=

	Inc   // ++
	Dec   // --
	Bang  // !
	Tilde // ~

	Nullish     // ??
	LogicalOr   // ||
	LogicalAnd  // &&
	Pipe        // |
	Caret       // ^
	Amp         // &
	Eq          // ==
	NotEq       // !=
	StrictEq    // ===
	StrictNotEq // !==
	Lt          // <
	Gt          // >
	LtEq        // <=
	GtEq        // >=
	Shl         // <<
	Shr         // >>
	UShr        // >>>
	Plus        // +
	Minus       // -
	Percent     // %
	Star        // *
	Slash       // /
	Exp         // **

	KwBreak
	KwCase
	KwCatch
	KwContinue
	KwDebugger
	KwDefault
	KwDo
	KwElse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwReturn
	KwSwitch
	KwThrow
	KwTry
	KwVar
	KwConst
	KwWhile
	KwWith
	KwNew
	KwThis
	KwSuper
	KwClass
	KwExtends
	KwExport
	KwImport
	KwNull
	KwTrue
	KwFalse
	KwIn
	KwInstanceof
	KwTypeof
	KwVoid
	KwDelete

	numKinds
)

// NumKinds is the number of token kinds.
const NumKinds = int(numKinds)

// String returns the registry label.
func (k Kind) String() string {
	if int(k) >= NumKinds {
		return "unknown"
	}
	return registry[k].Label
}

// Info returns the registry descriptor of k.
func (k Kind) Info() Descriptor {
	if int(k) >= NumKinds {
		return Descriptor{Label: "unknown"}
	}
	return registry[k]
}

func (k Kind) has(f Flag) bool { return k.Info().Flags&f != 0 }

// Binop returns the binary precedence of k, or 0 when k is not a binary operator.
func (k Kind) Binop() int { return int(k.Info().Binop) }

// BeforeExpr reports whether an expression may follow k (so '/' starts a regex).
func (k Kind) BeforeExpr() bool { return k.has(BeforeExpr) }

// StartsExpr reports whether k can begin an expression.
func (k Kind) StartsExpr() bool { return k.has(StartsExpr) }

// IsAssign reports whether k is '=' or a compound assignment.
func (k Kind) IsAssign() bool { return k.has(IsAssign) }

// IsPrefix reports whether k is a prefix operator.
func (k Kind) IsPrefix() bool { return k.has(Prefix) }

// IsPostfix reports whether k is a postfix operator.
func (k Kind) IsPostfix() bool { return k.has(Postfix) }

// RightAssoc reports whether k is a right-associative binary operator.
func (k Kind) RightAssoc() bool { return k.has(RightAssoc) }

// IsLoop reports whether k is a loop keyword.
func (k Kind) IsLoop() bool { return k.has(IsLoop) }

// IsPunct reports whether the label of k is its literal spelling.
func (k Kind) IsPunct() bool { return k.has(Punct) }

// IsKeyword reports whether k is a reserved keyword.
func (k Kind) IsKeyword() bool { return k.Info().Keyword != "" }

// IsLiteral reports whether k is a literal value kind.
func (k Kind) IsLiteral() bool {
	switch k {
	case Num, BigInt, String, Regexp, KwNull, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}
