// Package mapping builds the substitution table driving all anonymization.
// The only supported mode is manual: the table is exactly the caller-supplied
// original to replacement pairs, copied defensively. Entries are ordered
// longest-original first so specific strings are substituted before their
// substrings, and each entry precompiles its match patterns so the rewriter
// never recompiles per message.
package mapping

import (
	"regexp"
	"sort"
	"strings"

	"chatscrub/internal/platform/logger"

	"golang.org/x/text/cases"
)

// Mode is the anonymization mode. Only manual survives the final design;
// anything else degrades to manual with a warning, never an error
type Mode string

// ModeManual honors exactly the caller-supplied mappings
const ModeManual Mode = "manual"

// ParseMode maps a config string onto a Mode. Unknown modes fall back to
// manual with a warning rather than failing the request
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m != ModeManual && m != "" {
		logger.Named("mapping").Warn().Str("mode", s).Msg("unsupported anonymization mode, falling back to manual")
	}
	return ModeManual
}

// Entry is one compiled substitution pair. Matching is case-insensitive;
// Replacement is inserted verbatim, never case-adjusted
type Entry struct {
	Original    string
	Replacement string

	// IsEmail entries match exact case-insensitive occurrences with no
	// boundary requirement; name entries get word/punct/phrase patterns
	IsEmail   bool
	MultiWord bool

	// precompiled patterns, nil where not applicable
	Word  *regexp.Regexp
	Punct *regexp.Regexp
	Exact *regexp.Regexp

	// folded original for the containment fast path
	Folded string
}

// Table is the ordered substitution set. The zero value is an empty table
type Table struct {
	entries []Entry
	index   map[string]string
}

var foldCaser = cases.Fold()

// Fold lowercases s with full Unicode case folding; the rewriter uses it for
// its containment fast path so the check agrees with (?i) matching
func Fold(s string) string { return foldCaser.String(s) }

// Build compiles the caller-supplied mapping into an ordered table.
// The input map is never retained; blank originals or replacements are
// dropped with a warning
func Build(custom map[string]string, mode Mode) Table {
	_ = mode // every mode resolves to manual via ParseMode

	t := Table{index: make(map[string]string, len(custom))}
	for original, replacement := range custom {
		o := strings.TrimSpace(original)
		r := strings.TrimSpace(replacement)
		if o == "" || r == "" {
			logger.Named("mapping").Warn().Str("original", original).Msg("dropping blank mapping entry")
			continue
		}
		if _, dup := t.index[o]; dup {
			// last write wins is the documented caller responsibility; with a
			// map input a duplicate key cannot actually occur, but trimming
			// can collide two inputs
			logger.Named("mapping").Warn().Str("original", o).Msg("duplicate mapping entry, keeping the later value")
		}
		t.index[o] = r
	}

	t.entries = make([]Entry, 0, len(t.index))
	for o, r := range t.index {
		t.entries = append(t.entries, compile(o, r))
	}

	// longest-original first so longer, more specific strings win;
	// ties break lexicographically for determinism
	sort.Slice(t.entries, func(i, j int) bool {
		a, b := t.entries[i].Original, t.entries[j].Original
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return t
}

func compile(original, replacement string) Entry {
	quoted := regexp.QuoteMeta(original)
	e := Entry{
		Original:    original,
		Replacement: replacement,
		IsEmail:     strings.Contains(original, "@"),
		MultiWord:   len(strings.Fields(original)) > 1,
		Folded:      Fold(original),
		Exact:       regexp.MustCompile(`(?i)` + quoted),
	}
	if !e.IsEmail {
		e.Word = regexp.MustCompile(`(?i)\b` + quoted + `\b`)
		// RE2 has no lookarounds; capture the boundary runes and restore them
		// in the replacement instead
		e.Punct = regexp.MustCompile(`(?i)(["'\s])` + quoted + `([\s"'.,!?])`)
	}
	return e
}

// Entries returns the compiled entries in application order
func (t Table) Entries() []Entry { return t.entries }

// Len reports the number of entries
func (t Table) Len() int { return len(t.entries) }

// Empty reports whether the table has no entries
func (t Table) Empty() bool { return len(t.entries) == 0 }

// Lookup is the exact-match (case-sensitive, no regex) form used for keyed
// fields like creator names, creator emails and reactor emails
func (t Table) Lookup(original string) (string, bool) {
	if t.index == nil {
		return "", false
	}
	r, ok := t.index[original]
	return r, ok
}

// Resolve returns the mapped value when present, else the original
func (t Table) Resolve(original string) string {
	if r, ok := t.Lookup(original); ok {
		return r
	}
	return original
}
