package driver

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"esparse/internal/parser"
)

// Digest is a SHA-256 sum.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). Parts must come in a
// deterministic order.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey identifies the parse of a file with the given content hash under
// opts. The source type is resolved from path first, so a .mjs file keys
// the same whatever the default is.
func CacheKey(content Digest, path string, opts Options) Digest {
	return combineDigest(content, optionsFingerprint(path, opts))
}

func optionsFingerprint(path string, opts Options) []byte {
	p := opts.Parser
	var b strings.Builder
	fmt.Fprintf(&b, "schema=%d;type=%s;strict=%t;return=%t;html=%t;lint=%t",
		cacheSchemaVersion, SourceTypeFor(path, orScript(p.SourceType)), p.Strict,
		p.AllowReturnOutsideFunction, p.AllowHTMLComments, opts.Lint)
	for _, ext := range p.Extensions {
		b.WriteString(";ext=" + ext.Name())
	}
	return []byte(b.String())
}

func orScript(st parser.SourceType) parser.SourceType {
	if st == "" {
		return parser.SourceScript
	}
	return st
}
