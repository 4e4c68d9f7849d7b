package mapping

import "testing"

func TestBuildOrdering(t *testing.T) {
	t.Parallel()

	tab := Build(map[string]string{
		"John":       "Person1",
		"John Smith": "Person2",
		"Jo":         "Person3",
	}, ModeManual)

	if tab.Len() != 3 {
		t.Fatalf("want 3 entries, got %d", tab.Len())
	}
	got := tab.Entries()
	if got[0].Original != "John Smith" || got[1].Original != "John" || got[2].Original != "Jo" {
		t.Fatalf("wrong order: %q %q %q", got[0].Original, got[1].Original, got[2].Original)
	}
}

func TestBuildTieBreaksLexicographically(t *testing.T) {
	t.Parallel()

	tab := Build(map[string]string{"Bob": "B", "Ann": "A"}, ModeManual)
	got := tab.Entries()
	if got[0].Original != "Ann" || got[1].Original != "Bob" {
		t.Fatalf("wrong tie order: %q %q", got[0].Original, got[1].Original)
	}
}

func TestBuildDropsBlankEntries(t *testing.T) {
	t.Parallel()

	tab := Build(map[string]string{
		"":      "x",
		"   ":   "y",
		"Jane":  "",
		"Alice": "Person1",
	}, ModeManual)
	if tab.Len() != 1 {
		t.Fatalf("want 1 entry, got %d", tab.Len())
	}
	if tab.Entries()[0].Original != "Alice" {
		t.Fatalf("unexpected survivor: %q", tab.Entries()[0].Original)
	}
}

func TestBuildTrimsWhitespace(t *testing.T) {
	t.Parallel()

	tab := Build(map[string]string{" Jane ": " Person1 "}, ModeManual)
	r, ok := tab.Lookup("Jane")
	if !ok || r != "Person1" {
		t.Fatalf("Lookup(Jane)=%q,%v", r, ok)
	}
}

func TestCompileFlags(t *testing.T) {
	t.Parallel()

	tab := Build(map[string]string{
		"jane@example.com": "person1@example.com",
		"John Smith":       "Person2",
		"John":             "Person1",
	}, ModeManual)

	for _, e := range tab.Entries() {
		switch e.Original {
		case "jane@example.com":
			if !e.IsEmail || e.Word != nil || e.Punct != nil {
				t.Errorf("email entry miscompiled: %+v", e)
			}
		case "John Smith":
			if e.IsEmail || !e.MultiWord || e.Word == nil || e.Punct == nil {
				t.Errorf("phrase entry miscompiled: %+v", e)
			}
		case "John":
			if e.IsEmail || e.MultiWord {
				t.Errorf("name entry miscompiled: %+v", e)
			}
		}
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	t.Parallel()

	tab := Build(map[string]string{"John": "Person1"}, ModeManual)
	if _, ok := tab.Lookup("john"); ok {
		t.Fatal("Lookup must be exact, not case-insensitive")
	}
	if r, ok := tab.Lookup("John"); !ok || r != "Person1" {
		t.Fatalf("Lookup(John)=%q,%v", r, ok)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tab := Build(map[string]string{"John": "Person1"}, ModeManual)
	if got := tab.Resolve("John"); got != "Person1" {
		t.Fatalf("Resolve(John)=%q", got)
	}
	if got := tab.Resolve("Jane"); got != "Jane" {
		t.Fatalf("unmapped Resolve(Jane)=%q", got)
	}
}

func TestZeroTable(t *testing.T) {
	t.Parallel()

	var tab Table
	if !tab.Empty() || tab.Len() != 0 {
		t.Fatal("zero table should be empty")
	}
	if _, ok := tab.Lookup("x"); ok {
		t.Fatal("zero table Lookup should miss")
	}
	if got := tab.Resolve("x"); got != "x" {
		t.Fatalf("zero table Resolve(x)=%q", got)
	}
}

func TestParseModeFallsBackToManual(t *testing.T) {
	for _, in := range []string{"manual", "", "auto", "mixed", "MANUAL"} {
		if got := ParseMode(in); got != ModeManual {
			t.Errorf("ParseMode(%q)=%v", in, got)
		}
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"HeLLo": "hello",
		"JOSÉ":  "josé",
		"":      "",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q)=%q want %q", in, got, want)
		}
	}
}
