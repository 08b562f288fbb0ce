package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"esparse/internal/source"
	"esparse/internal/token"
)

// TokenOutput is the serialized form of a token.
type TokenOutput struct {
	Kind  string          `json:"kind" msgpack:"kind"`
	Value any             `json:"value,omitempty" msgpack:"value,omitempty"`
	Start int             `json:"start" msgpack:"start"`
	End   int             `json:"end" msgpack:"end"`
	Loc   source.Location `json:"loc" msgpack:"loc"`
}

type templateOutput struct {
	Cooked *string `json:"cooked" msgpack:"cooked"`
	Raw    string  `json:"raw" msgpack:"raw"`
}

type regexpOutput struct {
	Pattern string `json:"pattern" msgpack:"pattern"`
	Flags   string `json:"flags" msgpack:"flags"`
}

func tokenValue(v any) any {
	switch v := v.(type) {
	case token.TemplateValue:
		return templateOutput{Cooked: v.Cooked, Raw: v.Raw}
	case token.RegExpValue:
		return regexpOutput{Pattern: v.Pattern, Flags: v.Flags}
	}
	return v
}

// TokenOutputs converts tokens for serialization, stopping after EOF.
func TokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:  tok.Kind.String(),
			Value: tokenValue(tok.Value),
			Start: tok.Start,
			End:   tok.End,
			Loc:   tok.Loc,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty prints one token per line with its 1-based line and
// column range.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if v := prettyValue(tok.Value); v != "" {
			fmt.Fprintf(w, " %s", v)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			tok.Loc.Start.Line, tok.Loc.Start.Column+1,
			tok.Loc.End.Line, tok.Loc.End.Column+1)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func prettyValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case token.TemplateValue:
		if v.Cooked == nil {
			return fmt.Sprintf("raw=%q cooked=<invalid>", v.Raw)
		}
		return fmt.Sprintf("raw=%q cooked=%q", v.Raw, *v.Cooked)
	case token.RegExpValue:
		return fmt.Sprintf("/%s/%s", v.Pattern, v.Flags)
	}
	return fmt.Sprint(v)
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(TokenOutputs(tokens))
}

// FormatTokensMsgpack writes the tokens as one msgpack array.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	return msgpack.NewEncoder(w).Encode(TokenOutputs(tokens))
}
