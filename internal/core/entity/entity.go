// Package entity discovers identifying entities in a parsed chat archive.
// Detection is deterministic and field-driven: sender names come from creator
// fields, emails from a fixed pattern over message text. No statistics, no
// NLP.
package entity

import (
	"regexp"
	"sort"
	"strings"

	"chatscrub/internal/archive"
	"chatscrub/internal/core/redact"
	"chatscrub/internal/platform/logger"
)

var emailRe = regexp.MustCompile(`\b` + redact.EmailPattern + `\b`)

// Entities holds the distinct names and emails found in a document.
// Slices are sorted for deterministic downstream mapping
type Entities struct {
	Names  []string
	Emails []string
}

// Extract scans every message: trimmed non-empty creator names are collected
// as-is, email matches in message text are lowercased and kept only when
// structurally valid (an @ with a dot after it). An empty document yields
// empty entity sets with a logged warning
func Extract(doc *archive.Document) Entities {
	names := map[string]struct{}{}
	emails := map[string]struct{}{}

	if doc == nil || len(doc.Messages) == 0 {
		logger.Named("entity").Warn().Msg("no messages found in data")
		return Entities{}
	}

	for _, m := range doc.Messages {
		if m.Creator != nil {
			if name := strings.TrimSpace(m.Creator.Name); name != "" {
				names[name] = struct{}{}
			}
		}
		if m.Text == "" {
			continue
		}
		for _, match := range emailRe.FindAllString(m.Text, -1) {
			e := strings.ToLower(strings.TrimSpace(match))
			if valid(e) {
				emails[e] = struct{}{}
			}
		}
	}

	out := Entities{
		Names:  make([]string, 0, len(names)),
		Emails: make([]string, 0, len(emails)),
	}
	for n := range names {
		out.Names = append(out.Names, n)
	}
	for e := range emails {
		out.Emails = append(out.Emails, e)
	}
	sort.Slice(out.Names, func(i, j int) bool {
		return strings.ToLower(out.Names[i]) < strings.ToLower(out.Names[j])
	})
	sort.Strings(out.Emails)
	return out
}

// valid requires an @ and a dot somewhere in the domain part
func valid(e string) bool {
	at := strings.Index(e, "@")
	if at <= 0 || at == len(e)-1 {
		return false
	}
	return strings.Contains(e[at+1:], ".")
}
