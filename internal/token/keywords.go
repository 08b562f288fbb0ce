package token

// keywords maps every reserved spelling to its kind. It is derived from the
// registry once at package load and never written afterwards.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, 40)
	for k := Kind(0); k < numKinds; k++ {
		if kw := registry[k].Keyword; kw != "" {
			m[kw] = k
		}
	}
	return m
}()

// LookupKeyword returns the keyword kind for word. Keywords are case-sensitive.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// strictReserved are identifiers reserved only in strict mode code.
var strictReserved = map[string]struct{}{
	"implements": {}, "interface": {}, "let": {}, "package": {},
	"private": {}, "protected": {}, "public": {}, "static": {}, "yield": {},
}

// IsStrictReserved reports whether word is reserved in strict mode code.
func IsStrictReserved(word string) bool {
	_, ok := strictReserved[word]
	return ok
}

// IsReservedWord reports whether word can never be an identifier
// (keywords plus the future-reserved "enum").
func IsReservedWord(word string) bool {
	if len(word) < 2 || len(word) > 10 {
		// no reserved word has this length
		return false
	}
	if word == "enum" {
		return true
	}
	_, ok := keywords[word]
	return ok
}
