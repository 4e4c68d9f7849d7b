package rewrite

import (
	"testing"

	"chatscrub/internal/core/mapping"
	"chatscrub/internal/core/redact"
)

func table(pairs map[string]string) mapping.Table {
	return mapping.Build(pairs, mapping.ModeManual)
}

func TestTextWordBoundary(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"John": "Person1"})
	cases := []struct {
		in, want string
	}{
		{"John said hi", "Person1 said hi"},
		{"hi John", "hi Person1"},
		{"John, are you there?", "Person1, are you there?"},
		// substrings of longer words stay intact
		{"Johnson is here", "Johnson is here"},
		{"ask john about it", "ask Person1 about it"}, // case-insensitive match, verbatim replacement
	}
	for _, c := range cases {
		if got := Text(c.in, tab, Options{}); got != c.want {
			t.Errorf("Text(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

// longer originals are applied first, so a full name wins over its first name
func TestTextLongestOriginalFirst(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{
		"John Smith": "Person2",
		"John":       "Person1",
	})
	got := Text("John Smith met John at noon", tab, Options{})
	want := "Person2 met Person1 at noon"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// the boundary-adjacency pattern handles names \b cannot, like non-ASCII
// word edges
func TestTextPunctAdjacency(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"José": "Person3"})
	got := Text("ping José today", tab, Options{})
	want := "ping Person3 today"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got = Text(`she said "José" twice`, tab, Options{})
	want = `she said "Person3" twice`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// dollar signs in replacements must come through literally, not as group refs
func TestTextDollarInReplacement(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"José": "$2x"})
	got := Text("hi José !", tab, Options{})
	want := "hi $2x !"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestTextEmailNoBoundaryRequired(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"jane@example.com": "person1@example.com"})
	cases := []struct {
		in, want string
	}{
		{"contact:jane@example.com!", "contact:person1@example.com!"},
		{"JANE@EXAMPLE.COM wrote", "person1@example.com wrote"},
		{"(jane@example.com)", "(person1@example.com)"},
	}
	for _, c := range cases {
		if got := Text(c.in, tab, Options{}); got != c.want {
			t.Errorf("Text(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestTextMultiWordExactSubstring(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"Data Science Team": "Group1"})
	got := Text("ping the Data Science Team-leads", tab, Options{})
	want := "ping the Group1-leads"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// substitution happens before the link pass: a mapped email survives
// domain-level redaction, and a URL still becomes its placeholder
func TestTextSubstitutionThenLinks(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"jane@example.com": "person1@example.com"})
	opt := Options{LinkEnabled: true, LinkLevel: redact.LevelDomain}
	got := Text("Email me at jane@example.com or visit https://github.com/org/repo", tab, opt)
	want := "Email me at person1@example.com or visit [GITHUB_LINK]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// at full level the replacement email is itself collapsed to [EMAIL]
func TestTextFullLevelCollapsesReplacementEmail(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"jane@example.com": "person1@example.com"})
	opt := Options{LinkEnabled: true, LinkLevel: redact.LevelFull}
	got := Text("reach jane@example.com", tab, opt)
	want := "reach [EMAIL]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// an empty table with links on degrades to a pure link pass
func TestTextEmptyTableLinkOnly(t *testing.T) {
	t.Parallel()

	var tab mapping.Table
	opt := Options{LinkEnabled: true, LinkLevel: redact.LevelDomain}
	got := Text("see https://docs.google.com/document/d/abc", tab, opt)
	want := "see [DOCS_LINK]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestTextLinksDisabled(t *testing.T) {
	t.Parallel()

	var tab mapping.Table
	in := "see https://github.com/org"
	if got := Text(in, tab, Options{}); got != in {
		t.Fatalf("links must stay when disabled: %q", got)
	}
}

func TestTextEmpty(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{"John": "Person1"})
	if got := Text("", tab, Options{}); got != "" {
		t.Fatalf("empty in, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tab := table(map[string]string{
		"John Smith": "Person2",
		"John":       "Person1",
	})
	cases := []struct {
		in, want string
	}{
		{"john_report.pdf", "Person1_report.pdf"},
		{"John Smith notes.txt", "Person2 notes.txt"},
		{"summary.txt", "summary.txt"},
	}
	for _, c := range cases {
		if got := Filename(c.in, tab); got != c.want {
			t.Errorf("Filename(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
