// Package normalize converts raw archive messages into display-ready records.
// Messages without a creator name are system messages and are filtered out,
// which is a rule, not an error. Timestamps that fail to parse fall back to
// the current wall-clock time so the message survives with a warning instead
// of being dropped.
package normalize

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"chatscrub/internal/archive"
	"chatscrub/internal/core/mapping"
	"chatscrub/internal/platform/logger"
	pstrings "chatscrub/internal/platform/strings"
)

// timestampLayout matches the export's human-readable created_date, eg
// "Monday, January 1, 2024 10:00:00 AM UTC", after separator cleanup
const timestampLayout = "Monday, January 2, 2006 3:04:05 PM MST"

// maxExcerpt is the display cut for quoted text and attachment names
const maxExcerpt = 100

// now is a seam for tests
var now = time.Now

// Message is the display-ready record derived from one raw message
type Message struct {
	DisplayName  string    `json:"display_name"`
	OriginalName string    `json:"original_name"`
	Email        string    `json:"email,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	FullText     string    `json:"full_text"`
}

// Report carries the non-fatal events of a normalization pass so callers can
// surface them instead of losing them in blanket suppression
type Report struct {
	SystemFiltered     int
	TimestampFallbacks int
}

// One normalizes a single message. ok is false for system messages
func One(m archive.Message, t mapping.Table) (Message, bool) {
	return one(m, t, &Report{})
}

func one(m archive.Message, t mapping.Table, rep *Report) (Message, bool) {
	if m.IsSystem() {
		rep.SystemFiltered++
		return Message{}, false
	}

	original := m.Creator.Name
	out := Message{
		DisplayName:  t.Resolve(original),
		OriginalName: original,
		Email:        t.Resolve(m.Creator.Email),
		Timestamp:    parseTimestamp(m.CreatedDate, rep),
	}

	var b strings.Builder
	b.WriteString(quoteBlock(m.Quoted, t))
	b.WriteString(m.Text)
	b.WriteString(attachmentBlock(m.AttachedFiles))
	b.WriteString(reactionBlock(m.Reactions))
	out.FullText = b.String()

	return out, true
}

// All normalizes every message in document order, then sorts by timestamp
// ascending (stable, so same-instant messages keep their archive order)
func All(doc *archive.Document, t mapping.Table) ([]Message, Report) {
	rep := Report{}
	if doc == nil {
		return nil, rep
	}
	out := make([]Message, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		if n, ok := one(m, t, &rep); ok {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, rep
}

// parseTimestamp cleans the export's separators (" at ", narrow no-break
// space) and parses the fixed layout. Failures substitute the current time,
// a lossy but continuity-preserving fallback
func parseTimestamp(s string, rep *Report) time.Time {
	clean := strings.ReplaceAll(s, " at ", " ")
	clean = strings.ReplaceAll(clean, "\u202f", " ")
	clean = strings.TrimSpace(clean)
	ts, err := time.Parse(timestampLayout, clean)
	if err != nil {
		rep.TimestampFallbacks++
		logger.Named("normalize").Warn().Str("created_date", s).Msg("could not parse date, using current time")
		return now()
	}
	return ts
}

func quoteBlock(q *archive.Quoted, t mapping.Table) string {
	if q == nil {
		return ""
	}
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return ""
	}
	author := "Someone"
	if q.Creator != nil && q.Creator.Name != "" {
		author = t.Resolve(q.Creator.Name)
	}
	return fmt.Sprintf("> **%s said:**\n> %s\n\n", author, pstrings.Truncate(text, maxExcerpt, true))
}

func attachmentBlock(files []archive.Attachment) string {
	var b strings.Builder
	for _, f := range files {
		name := f.OriginalName
		if name == "" {
			name = "Attached File"
		}
		b.WriteString(fmt.Sprintf("\n\n> 📎 **Attachment:** `%s`", pstrings.Truncate(name, maxExcerpt, false)))
	}
	return b.String()
}

func reactionBlock(reactions []archive.Reaction) string {
	var parts []string
	for _, r := range reactions {
		count := len(r.ReactorEmails)
		if count == 0 {
			continue
		}
		emoji := r.Emoji.Unicode
		if emoji == "" {
			emoji = "▫️"
		}
		parts = append(parts, fmt.Sprintf("%s %d", emoji, count))
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(parts, " ")
}
