package token

// Flag is a bit set of parsing properties of a token kind.
type Flag uint16

const (
	// BeforeExpr marks kinds after which an expression may start.
	BeforeExpr Flag = 1 << iota
	// StartsExpr marks kinds that can begin an expression.
	StartsExpr
	// IsAssign marks '=' and compound assignment operators.
	IsAssign
	// Prefix marks prefix operators.
	Prefix
	// Postfix marks postfix operators.
	Postfix
	// RightAssoc marks right-associative binary operators.
	RightAssoc
	// IsLoop marks loop keywords.
	IsLoop
	// Punct marks kinds whose label is their exact spelling.
	Punct
)

// Descriptor is one registry entry.
type Descriptor struct {
	Label   string
	Keyword string // reserved word spelling, empty for non-keywords
	Binop   int8   // binary precedence, 0 when not a binary operator
	Flags   Flag
}

// Binary operator precedences, loosest first.
const (
	PrecNullish    = 1 // ?? ||
	PrecLogicalAnd = 2
	PrecBitOr      = 3
	PrecBitXor     = 4
	PrecBitAnd     = 5
	PrecEquality   = 6
	PrecRelational = 7
	PrecShift      = 8
	PrecAdditive   = 9
	PrecMultiply   = 10
	PrecExponent   = 11
)

const (
	bx = BeforeExpr
	sx = StartsExpr
	pu = Punct
)

var registry = [numKinds]Descriptor{
	Invalid: {Label: "invalid"},
	EOF:     {Label: "eof"},

	Num:                  {Label: "num", Flags: sx},
	BigInt:               {Label: "bigint", Flags: sx},
	String:               {Label: "string", Flags: sx},
	Regexp:               {Label: "regexp", Flags: sx},
	Name:                 {Label: "name", Flags: sx},
	PrivateName:          {Label: "#name", Flags: sx},
	TemplateNonTail:      {Label: "...${", Flags: bx | sx},
	TemplateTail:         {Label: "...`", Flags: sx},
	InterpreterDirective: {Label: "#!..."},

	LBracket:    {Label: "[", Flags: pu | bx | sx},
	RBracket:    {Label: "]", Flags: pu},
	LBrace:      {Label: "{", Flags: pu | bx | sx},
	RBrace:      {Label: "}", Flags: pu},
	LParen:      {Label: "(", Flags: pu | bx | sx},
	RParen:      {Label: ")", Flags: pu},
	Comma:       {Label: ",", Flags: pu | bx},
	Semicolon:   {Label: ";", Flags: pu | bx},
	Colon:       {Label: ":", Flags: pu | bx},
	Dot:         {Label: ".", Flags: pu},
	Question:    {Label: "?", Flags: pu | bx},
	QuestionDot: {Label: "?.", Flags: pu},
	Arrow:       {Label: "=>", Flags: pu | bx},
	Ellipsis:    {Label: "...", Flags: pu | bx},
	At:          {Label: "@", Flags: pu},

	Assign:           {Label: "=", Flags: pu | bx | IsAssign},
	AddAssign:        {Label: "+=", Flags: pu | bx | IsAssign},
	SubAssign:        {Label: "-=", Flags: pu | bx | IsAssign},
	MulAssign:        {Label: "*=", Flags: pu | bx | IsAssign},
	DivAssign:        {Label: "/=", Flags: pu | bx | IsAssign},
	ModAssign:        {Label: "%=", Flags: pu | bx | IsAssign},
	ExpAssign:        {Label: "**=", Flags: pu | bx | IsAssign},
	ShlAssign:        {Label: "<<=", Flags: pu | bx | IsAssign},
	ShrAssign:        {Label: ">>=", Flags: pu | bx | IsAssign},
	UShrAssign:       {Label: ">>>=", Flags: pu | bx | IsAssign},
	AndAssign:        {Label: "&=", Flags: pu | bx | IsAssign},
	OrAssign:         {Label: "|=", Flags: pu | bx | IsAssign},
	XorAssign:        {Label: "^=", Flags: pu | bx | IsAssign},
	LogicalAndAssign: {Label: "&&=", Flags: pu | bx | IsAssign},
	LogicalOrAssign:  {Label: "||=", Flags: pu | bx | IsAssign},
	NullishAssign:    {Label: "??=", Flags: pu | bx | IsAssign},

	Inc:   {Label: "++", Flags: pu | Prefix | Postfix | sx},
	Dec:   {Label: "--", Flags: pu | Prefix | Postfix | sx},
	Bang:  {Label: "!", Flags: pu | bx | Prefix | sx},
	Tilde: {Label: "~", Flags: pu | bx | Prefix | sx},

	Nullish:     {Label: "??", Binop: PrecNullish, Flags: pu | bx},
	LogicalOr:   {Label: "||", Binop: PrecNullish, Flags: pu | bx},
	LogicalAnd:  {Label: "&&", Binop: PrecLogicalAnd, Flags: pu | bx},
	Pipe:        {Label: "|", Binop: PrecBitOr, Flags: pu | bx},
	Caret:       {Label: "^", Binop: PrecBitXor, Flags: pu | bx},
	Amp:         {Label: "&", Binop: PrecBitAnd, Flags: pu | bx},
	Eq:          {Label: "==", Binop: PrecEquality, Flags: pu | bx},
	NotEq:       {Label: "!=", Binop: PrecEquality, Flags: pu | bx},
	StrictEq:    {Label: "===", Binop: PrecEquality, Flags: pu | bx},
	StrictNotEq: {Label: "!==", Binop: PrecEquality, Flags: pu | bx},
	Lt:          {Label: "<", Binop: PrecRelational, Flags: pu | bx},
	Gt:          {Label: ">", Binop: PrecRelational, Flags: pu | bx},
	LtEq:        {Label: "<=", Binop: PrecRelational, Flags: pu | bx},
	GtEq:        {Label: ">=", Binop: PrecRelational, Flags: pu | bx},
	Shl:         {Label: "<<", Binop: PrecShift, Flags: pu | bx},
	Shr:         {Label: ">>", Binop: PrecShift, Flags: pu | bx},
	UShr:        {Label: ">>>", Binop: PrecShift, Flags: pu | bx},
	Plus:        {Label: "+", Binop: PrecAdditive, Flags: pu | bx | Prefix | sx},
	Minus:       {Label: "-", Binop: PrecAdditive, Flags: pu | bx | Prefix | sx},
	Percent:     {Label: "%", Binop: PrecMultiply, Flags: pu | bx},
	Star:        {Label: "*", Binop: PrecMultiply, Flags: pu | bx},
	Slash:       {Label: "/", Binop: PrecMultiply, Flags: pu | bx},
	Exp:         {Label: "**", Binop: PrecExponent, Flags: pu | bx | RightAssoc},

	KwBreak:      {Label: "break", Keyword: "break"},
	KwCase:       {Label: "case", Keyword: "case", Flags: bx},
	KwCatch:      {Label: "catch", Keyword: "catch"},
	KwContinue:   {Label: "continue", Keyword: "continue"},
	KwDebugger:   {Label: "debugger", Keyword: "debugger"},
	KwDefault:    {Label: "default", Keyword: "default", Flags: bx},
	KwDo:         {Label: "do", Keyword: "do", Flags: IsLoop | bx},
	KwElse:       {Label: "else", Keyword: "else", Flags: bx},
	KwFinally:    {Label: "finally", Keyword: "finally"},
	KwFor:        {Label: "for", Keyword: "for", Flags: IsLoop},
	KwFunction:   {Label: "function", Keyword: "function", Flags: sx},
	KwIf:         {Label: "if", Keyword: "if"},
	KwReturn:     {Label: "return", Keyword: "return", Flags: bx},
	KwSwitch:     {Label: "switch", Keyword: "switch"},
	KwThrow:      {Label: "throw", Keyword: "throw", Flags: bx},
	KwTry:        {Label: "try", Keyword: "try"},
	KwVar:        {Label: "var", Keyword: "var"},
	KwConst:      {Label: "const", Keyword: "const"},
	KwWhile:      {Label: "while", Keyword: "while", Flags: IsLoop},
	KwWith:       {Label: "with", Keyword: "with"},
	KwNew:        {Label: "new", Keyword: "new", Flags: bx | sx},
	KwThis:       {Label: "this", Keyword: "this", Flags: sx},
	KwSuper:      {Label: "super", Keyword: "super", Flags: sx},
	KwClass:      {Label: "class", Keyword: "class", Flags: sx},
	KwExtends:    {Label: "extends", Keyword: "extends", Flags: bx},
	KwExport:     {Label: "export", Keyword: "export"},
	KwImport:     {Label: "import", Keyword: "import", Flags: sx},
	KwNull:       {Label: "null", Keyword: "null", Flags: sx},
	KwTrue:       {Label: "true", Keyword: "true", Flags: sx},
	KwFalse:      {Label: "false", Keyword: "false", Flags: sx},
	KwIn:         {Label: "in", Keyword: "in", Binop: PrecRelational, Flags: bx},
	KwInstanceof: {Label: "instanceof", Keyword: "instanceof", Binop: PrecRelational, Flags: bx},
	KwTypeof:     {Label: "typeof", Keyword: "typeof", Flags: bx | Prefix | sx},
	KwVoid:       {Label: "void", Keyword: "void", Flags: bx | Prefix | sx},
	KwDelete:     {Label: "delete", Keyword: "delete", Flags: bx | Prefix | sx},
}
