// Package rewrite applies a substitution table to a single text field.
//
// Entries are applied in the table's order (longest original first). For each
// entry:
//
//  1. email-shaped originals are replaced on every case-insensitive exact
//     occurrence, with no boundary requirement, so addresses inside
//     signatures or next to punctuation still match
//  2. name-shaped originals go through three strategies in sequence:
//     a word-boundary match, a quote/punctuation-adjacency match, and, for
//     multi-word phrases, an unconditioned exact-substring match (boundary
//     rules are unreliable across tokens)
//
// Replacements are inserted verbatim, never case-adjusted. Substitutions are
// sequential and order-dependent: an earlier entry's output can be matched by
// a later entry. That behavior is relied on for longest-first precedence, so
// it must not be collapsed into a single combined pass. After all name/email
// substitution the text is optionally piped through the link classifier.
package rewrite

import (
	"strings"

	"chatscrub/internal/core/mapping"
	"chatscrub/internal/core/redact"
)

// Options controls the trailing link pass
type Options struct {
	LinkEnabled bool
	LinkLevel   redact.Level
}

// Text rewrites one free-text field with the table and options
func Text(text string, t mapping.Table, opt Options) string {
	if text != "" {
		folded := mapping.Fold(text)
		for _, e := range t.Entries() {
			// cheap containment check before any regex work
			if !strings.Contains(folded, e.Folded) {
				continue
			}
			text = applyEntry(text, e)
			folded = mapping.Fold(text)
		}
	}
	if opt.LinkEnabled {
		text = redact.Apply(text, opt.LinkLevel)
	}
	return text
}

func applyEntry(text string, e mapping.Entry) string {
	if e.IsEmail {
		return e.Exact.ReplaceAllLiteralString(text, e.Replacement)
	}

	text = e.Word.ReplaceAllLiteralString(text, e.Replacement)

	// boundary runes are captured, restore them around the replacement;
	// $ in the replacement must not be treated as a group reference
	repl := strings.ReplaceAll(e.Replacement, "$", "$$")
	text = e.Punct.ReplaceAllString(text, "${1}"+repl+"${2}")

	if e.MultiWord {
		text = e.Exact.ReplaceAllLiteralString(text, e.Replacement)
	}
	return text
}

// Filename rewrites an attachment filename: every entry is substring-replaced
// case-insensitively with no boundary rule, which is acceptable for short
// filename strings
func Filename(name string, t mapping.Table) string {
	for _, e := range t.Entries() {
		name = e.Exact.ReplaceAllLiteralString(name, e.Replacement)
	}
	return name
}
