// Package token defines the lexical token kinds of the JS-family grammar and
// the static registry describing how the parser treats each kind.
// Invariants:
//   - The registry is a compile-time array indexed by Kind; nothing mutates it.
//   - Every operator spelling has its own Kind, and the Kind's label is that
//     exact spelling, so maximal munch can be checked against the table.
//   - Contextual words (let, async, of, get, set, static, yield, await, as,
//     from) are Name tokens; the parser recognises them by value.
//   - A word spelled with escapes is always a Name token, even if it spells a
//     keyword.
package token
