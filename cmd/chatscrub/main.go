// Command chatscrub processes a Google Chat takeout export from the command
// line: anonymize it, print conversation statistics, and optionally save the
// scrubbed document or page through the transcript
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chatscrub/internal/archive"
	"chatscrub/internal/services/transcript/domain"
	"chatscrub/internal/services/transcript/service"
)

// mapFlags collects repeated -map original=replacement pairs
type mapFlags []string

func (m *mapFlags) String() string { return strings.Join(*m, ",") }

func (m *mapFlags) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	var (
		anon      = flag.Bool("anonymize", false, "replace mapped names, emails, and links in the output")
		mapFile   = flag.String("map-file", "", "JSON file of original-to-replacement pairs")
		links     = flag.Bool("links", true, "redact links while anonymizing")
		linkLevel = flag.String("link-level", "domain", "link redaction level: domain or full")
		save      = flag.Bool("save", false, "write the processed document next to the input")
		page      = flag.Int("page", 0, "print the given transcript page (1-based)")
		pageSize  = flag.Int("page-size", 0, "messages per page (default 50)")
	)
	var pairs mapFlags
	flag.Var(&pairs, "map", "original=replacement pair, repeatable")
	flag.Parse()

	if flag.NArg() != 1 {
		_, _ = fmt.Fprintln(os.Stderr, "usage: chatscrub [flags] <messages.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	in := flag.Arg(0)

	raw, err := os.ReadFile(in)
	must(err)

	entries, err := collectMappings(pairs, *mapFile)
	must(err)

	linkOn := *links
	opt := domain.Options{
		Anonymize:         *anon,
		Mappings:          entries,
		LinkAnonymization: &linkOn,
		LinkLevel:         *linkLevel,
		PageSize:          *pageSize,
		Filename:          filepath.Base(in),
	}

	svc := service.New()
	sess, err := svc.Process(context.Background(), raw, opt)
	must(err)

	printSummary(os.Stdout, sess)

	if *page > 0 {
		rows := svc.Page(sess, *page)
		if rows == nil {
			must(fmt.Errorf("page %d out of range (1..%d)", *page, sess.Pages))
		}
		fmt.Printf("\n--- page %d of %d ---\n", *page, sess.Pages)
		for _, r := range rows {
			fmt.Printf("\n[%s] %s\n%s\n", r.Timestamp, r.DisplayName, r.FullText)
		}
	}

	if *save {
		b, err := sess.Document.Encode()
		must(err)
		out := filepath.Join(filepath.Dir(in), archive.OutputName(filepath.Base(in)))
		must(os.WriteFile(out, b, 0o644))
		fmt.Printf("\nwrote %s (%d bytes)\n", out, len(b))
	}
}

// collectMappings merges -map-file contents (sorted for determinism) with
// repeated -map flags; later -map pairs win over the file on duplicates
func collectMappings(pairs []string, file string) ([]domain.MappingEntry, error) {
	var out []domain.MappingEntry
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var m map[string]string
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", file, err)
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, domain.MappingEntry{Original: k, Replacement: m[k]})
		}
	}
	for _, p := range pairs {
		orig, repl, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(orig) == "" {
			return nil, fmt.Errorf("bad -map value %q; want original=replacement", p)
		}
		out = append(out, domain.MappingEntry{Original: orig, Replacement: repl})
	}
	return out, nil
}

func printSummary(w io.Writer, sess *domain.Session) {
	st := sess.Stats
	_, _ = fmt.Fprintf(w, "messages:     %d\n", st.TotalMessages)
	_, _ = fmt.Fprintf(w, "participants: %d\n", st.UniqueParticipants)
	if st.DateRange != nil {
		_, _ = fmt.Fprintf(w, "range:        %s to %s (%d days)\n",
			st.DateRange.Start.Format("2006-01-02"),
			st.DateRange.End.Format("2006-01-02"),
			st.DateRange.TotalDays,
		)
	}
	if st.MostActiveDay != nil {
		_, _ = fmt.Fprintf(w, "busiest day:  %s (%d messages)\n", st.MostActiveDay.Date, st.MostActiveDay.Count)
	}
	_, _ = fmt.Fprintf(w, "avg per day:  %.1f\n", st.AveragePerDay)
	for _, nc := range st.MessageCounts {
		_, _ = fmt.Fprintf(w, "  %-24s %d (%.1f%%)\n", nc.Name, nc.Count, nc.Percent)
	}
	for _, warn := range sess.Warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", warn)
	}
}
