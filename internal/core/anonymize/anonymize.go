// Package anonymize walks a chat document and applies the substitution table
// to every identifying location. It always operates on a deep copy; the
// caller's document is never mutated. A catastrophic failure mid-walk returns
// the untouched original with a reportable error, so the pass may no-op but
// can never emit corrupted output.
package anonymize

import (
	"chatscrub/internal/archive"
	"chatscrub/internal/core/mapping"
	"chatscrub/internal/core/rewrite"
	"chatscrub/internal/platform/logger"

	perr "chatscrub/internal/platform/errors"
)

// Document applies the table to a deep copy of doc and returns it.
// Per message, in fixed order: creator name, creator email, quoted creator,
// quoted text (full rewrite), message text (full rewrite), reactor emails
// (exact key match, order preserved), attachment filenames (substring).
// Keyed fields use exact, non-regex lookups only
func Document(doc *archive.Document, t mapping.Table, opt rewrite.Options) (out *archive.Document, err error) {
	if doc == nil {
		return nil, perr.InvalidArgf("nil document")
	}

	defer func() {
		if v := recover(); v != nil {
			logger.Named("anonymize").Error().Interface("panic", v).Msg("anonymization pass failed, returning original document")
			out = doc
			err = perr.Anonymizef("anonymization failed: %v", v)
		}
	}()

	out = doc.Clone()
	for i := range out.Messages {
		anonymizeMessage(&out.Messages[i], t, opt)
	}
	return out, nil
}

func anonymizeMessage(m *archive.Message, t mapping.Table, opt rewrite.Options) {
	if m.Creator != nil {
		if r, ok := t.Lookup(m.Creator.Name); ok {
			m.Creator.Name = r
		}
		if r, ok := t.Lookup(m.Creator.Email); ok {
			m.Creator.Email = r
		}
	}

	if m.Quoted != nil {
		if m.Quoted.Creator != nil {
			if r, ok := t.Lookup(m.Quoted.Creator.Name); ok {
				m.Quoted.Creator.Name = r
			}
			if r, ok := t.Lookup(m.Quoted.Creator.Email); ok {
				m.Quoted.Creator.Email = r
			}
		}
		if m.Quoted.Text != "" {
			m.Quoted.Text = rewrite.Text(m.Quoted.Text, t, opt)
		}
	}

	if m.Text != "" {
		m.Text = rewrite.Text(m.Text, t, opt)
	}

	for ri := range m.Reactions {
		emails := m.Reactions[ri].ReactorEmails
		for ei := range emails {
			if r, ok := t.Lookup(emails[ei]); ok {
				emails[ei] = r
			}
		}
	}

	for ai := range m.AttachedFiles {
		if m.AttachedFiles[ai].OriginalName != "" {
			m.AttachedFiles[ai].OriginalName = rewrite.Filename(m.AttachedFiles[ai].OriginalName, t)
		}
	}
}
