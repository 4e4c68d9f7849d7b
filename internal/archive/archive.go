// Package archive defines the chat-archive document model and its ingestion
// boundary. Exports are Google-Takeout-shaped messages.json files; validation
// happens once here so the core packages can work with explicit records
// instead of key-existence checks.
package archive

import (
	"bytes"
	"encoding/json"
	stderrs "errors"
	"strings"
	"unicode/utf8"

	perr "chatscrub/internal/platform/errors"
	"chatscrub/internal/platform/logger"
)

// Document is the top-level chat archive
type Document struct {
	Messages []Message `json:"messages"`
}

// Message is one archive record; every field except the creator name is optional
type Message struct {
	Creator       *Creator     `json:"creator,omitempty"`
	CreatedDate   string       `json:"created_date,omitempty"`
	Text          string       `json:"text,omitempty"`
	Quoted        *Quoted      `json:"quoted_message_metadata,omitempty"`
	AttachedFiles []Attachment `json:"attached_files,omitempty"`
	Reactions     []Reaction   `json:"reactions,omitempty"`
}

// Creator identifies a message sender
type Creator struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Quoted is the metadata of a message being replied to
type Quoted struct {
	Creator *Creator `json:"creator,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Attachment is one attached file reference
type Attachment struct {
	OriginalName string `json:"original_name,omitempty"`
}

// Reaction is one emoji reaction with the reacting addresses
type Reaction struct {
	Emoji         Emoji    `json:"emoji"`
	ReactorEmails []string `json:"reactor_emails,omitempty"`
}

// Emoji carries the reaction glyph
type Emoji struct {
	Unicode string `json:"unicode,omitempty"`
}

// IsSystem reports whether m lacks a creator name and is therefore a
// non-conversational system message
func (m Message) IsSystem() bool {
	return m.Creator == nil || strings.TrimSpace(m.Creator.Name) == ""
}

// Parse validates and decodes an exported archive. The failure modes are
// distinguished per the ingestion contract: bad encoding, invalid JSON,
// top level not an object, missing messages field, messages not a list,
// empty messages list. Individually malformed message records are skipped
// with a warning rather than failing the document.
func Parse(b []byte) (*Document, error) {
	if !utf8.Valid(b) {
		return nil, perr.Validationf("file is not valid UTF-8")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrs.As(err, &typeErr) {
			return nil, perr.Validationf("invalid file format: expected a JSON object")
		}
		return nil, perr.JSONErrf("invalid JSON: %v", err)
	}

	raw, ok := top["messages"]
	if !ok {
		return nil, perr.Validationf("invalid chat archive: no 'messages' field found")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, perr.Validationf("invalid structure: 'messages' should be a list")
	}
	if len(items) == 0 {
		return nil, perr.Validationf("no messages found")
	}

	doc := &Document{Messages: make([]Message, 0, len(items))}
	skipped := 0
	for _, item := range items {
		var m Message
		if err := json.Unmarshal(item, &m); err != nil {
			skipped++
			continue
		}
		doc.Messages = append(doc.Messages, m)
	}
	if skipped > 0 {
		logger.Named("archive").Warn().Int("skipped", skipped).Msg("skipped malformed message records")
	}
	if len(doc.Messages) == 0 {
		return nil, perr.Validationf("no messages found")
	}
	return doc, nil
}

// Clone returns a deep copy of the document. Anonymization operates on the
// copy only; the caller's document is never aliased
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Messages: make([]Message, len(d.Messages))}
	for i, m := range d.Messages {
		out.Messages[i] = m.clone()
	}
	return out
}

func (m Message) clone() Message {
	c := m
	if m.Creator != nil {
		cc := *m.Creator
		c.Creator = &cc
	}
	if m.Quoted != nil {
		q := Quoted{Text: m.Quoted.Text}
		if m.Quoted.Creator != nil {
			qc := *m.Quoted.Creator
			q.Creator = &qc
		}
		c.Quoted = &q
	}
	if m.AttachedFiles != nil {
		c.AttachedFiles = make([]Attachment, len(m.AttachedFiles))
		copy(c.AttachedFiles, m.AttachedFiles)
	}
	if m.Reactions != nil {
		c.Reactions = make([]Reaction, len(m.Reactions))
		for i, r := range m.Reactions {
			nr := r
			if r.ReactorEmails != nil {
				nr.ReactorEmails = make([]string, len(r.ReactorEmails))
				copy(nr.ReactorEmails, r.ReactorEmails)
			}
			c.Reactions[i] = nr
		}
	}
	return c
}

// Encode serializes the document as UTF-8 JSON with 2-space indentation,
// stable key order and no HTML escaping
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode archive")
	}
	return buf.Bytes(), nil
}

// OutputName derives the sibling filename for anonymized output:
// <stem>_anonymized<ext>, or <name>_anonymized when there is no extension
func OutputName(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i] + "_anonymized" + name[i:]
	}
	return name + "_anonymized"
}
