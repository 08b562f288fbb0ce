package diag

import (
	"fmt"
)

// Code is a stable numeric identifier of a diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                 Code = 1000
	LexUnexpectedChar       Code = 1001
	LexUnterminatedString   Code = 1002
	LexUnterminatedComment  Code = 1003
	LexInvalidNumber        Code = 1004
	LexUnterminatedTemplate Code = 1005
	LexUnterminatedRegexp   Code = 1006
	LexInvalidRegexpFlags   Code = 1007
	LexInvalidEscape        Code = 1008
	LexInvalidCodePoint     Code = 1009
	LexNumericSeparator     Code = 1010
	LexIdentAfterNumber     Code = 1011
	LexInvalidIdentEscape   Code = 1012
	LexInvalidBigInt        Code = 1013
	LexIdentNotNFC          Code = 1014

	// syntax
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynExpectedToken         Code = 2002
	SynMissingSemicolon      Code = 2003
	SynInvalidLHS            Code = 2004
	SynDuplicateLabel        Code = 2005
	SynUnknownLabel          Code = 2006
	SynIllegalBreak          Code = 2007
	SynIllegalContinue       Code = 2008
	SynReservedWord          Code = 2009
	SynStrictOctal           Code = 2010
	SynStrictDuplicateParam  Code = 2011
	SynStrictDelete          Code = 2012
	SynStrictWith            Code = 2013
	SynStrictEvalArguments   Code = 2014
	SynIllegalReturn         Code = 2015
	SynNewlineAfterThrow     Code = 2016
	SynMultipleDefaults      Code = 2017
	SynMissingCatchOrFinally Code = 2018
	SynInvalidPrivateName    Code = 2019
	SynMixedNullish          Code = 2020
	SynUnaryBeforeExponent   Code = 2021
	SynModuleOnly            Code = 2022
	SynInvalidParameters     Code = 2023
	SynDuplicateConstructor  Code = 2024
	SynInvalidForHead        Code = 2025
	SynMissingInitializer    Code = 2026
	SynEscapedKeyword        Code = 2027
	SynDuplicateProto        Code = 2028
	SynArrowLineBreak        Code = 2029
	SynInvalidOptionalChain  Code = 2030
	SynYieldAwaitInParams    Code = 2031
	SynInvalidCoverInit      Code = 2032
	SynInvalidSuper          Code = 2033
	SynInvalidNewTarget      Code = 2034
	SynDuplicateExport       Code = 2035

	// driver
	IOLoadFileError Code = 4001
	ObsTimings      Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnexpectedChar:        "Unexpected character",
	LexUnterminatedString:    "Unterminated string constant",
	LexUnterminatedComment:   "Unterminated comment",
	LexInvalidNumber:         "Invalid number",
	LexUnterminatedTemplate:  "Unterminated template",
	LexUnterminatedRegexp:    "Unterminated regular expression",
	LexInvalidRegexpFlags:    "Invalid regular expression flag",
	LexInvalidEscape:         "Invalid escape sequence",
	LexInvalidCodePoint:      "Code point out of bounds",
	LexNumericSeparator:      "Invalid numeric separator",
	LexIdentAfterNumber:      "Identifier directly after number",
	LexInvalidIdentEscape:    "Invalid Unicode escape in identifier",
	LexInvalidBigInt:         "Invalid BigInt literal",
	LexIdentNotNFC:           "Identifier is not in Unicode NFC form",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynExpectedToken:         "Missing expected token",
	SynMissingSemicolon:      "Missing semicolon",
	SynInvalidLHS:            "Invalid left-hand side",
	SynDuplicateLabel:        "Label already declared",
	SynUnknownLabel:          "Unknown label",
	SynIllegalBreak:          "Illegal break statement",
	SynIllegalContinue:       "Illegal continue statement",
	SynReservedWord:          "Unexpected reserved word",
	SynStrictOctal:           "Legacy octal in strict mode",
	SynStrictDuplicateParam:  "Duplicate parameter name in strict mode",
	SynStrictDelete:          "Deleting local variable in strict mode",
	SynStrictWith:            "'with' in strict mode",
	SynStrictEvalArguments:   "Binding eval or arguments in strict mode",
	SynIllegalReturn:         "'return' outside of function",
	SynNewlineAfterThrow:     "Illegal newline after throw",
	SynMultipleDefaults:      "Multiple default clauses",
	SynMissingCatchOrFinally: "Missing catch or finally clause",
	SynInvalidPrivateName:    "Private name used outside member access",
	SynMixedNullish:          "Nullish coalescing mixed with logical operators",
	SynUnaryBeforeExponent:   "Unary operator before exponentiation",
	SynModuleOnly:            "Import/export outside of a module",
	SynInvalidParameters:     "Invalid parameter list",
	SynDuplicateConstructor:  "Duplicate constructor",
	SynInvalidForHead:        "Invalid for-in/of head",
	SynMissingInitializer:    "Missing initializer in const declaration",
	SynEscapedKeyword:        "Keyword must not contain escaped characters",
	SynDuplicateProto:        "Redefinition of __proto__ property",
	SynArrowLineBreak:        "Line break before arrow",
	SynInvalidOptionalChain:  "Invalid optional chain",
	SynYieldAwaitInParams:    "yield or await in parameters",
	SynInvalidCoverInit:      "Shorthand property initializer outside a pattern",
	SynInvalidSuper:          "'super' is only valid in methods",
	SynInvalidNewTarget:      "new.target outside of function",
	SynDuplicateExport:       "Duplicate export name",
	IOLoadFileError:          "I/O load file error",
	ObsTimings:               "Pipeline timings",
}

// ID returns the stable textual form, e.g. LEX1002 or SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Title returns the short description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsLexical reports whether c belongs to the lexical range.
func (c Code) IsLexical() bool {
	return c >= 1000 && c < 2000
}
