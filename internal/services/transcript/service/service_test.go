package service

import (
	"context"
	"strings"
	"testing"

	"chatscrub/internal/platform/testkit"
	"chatscrub/internal/services/transcript/domain"

	perr "chatscrub/internal/platform/errors"
)

const archiveJSON = `{
	"messages": [
		{
			"creator": {"name": "John Smith", "email": "john@example.com"},
			"created_date": "Monday, January 1, 2024 at 10:00:00 AM UTC",
			"text": "Email me at jane@example.com or visit https://github.com/org/repo"
		},
		{
			"creator": {"name": "Jane Doe", "email": "jane@example.com"},
			"created_date": "Monday, January 1, 2024 at 10:05:00 AM UTC",
			"text": "will do"
		},
		{
			"text": "Jane Doe joined the space"
		}
	]
}`

func anonOptions() domain.Options {
	return domain.Options{
		Anonymize: true,
		Mappings: []domain.MappingEntry{
			{Original: "John Smith", Replacement: "Person1"},
			{Original: "Jane Doe", Replacement: "Person2"},
			{Original: "jane@example.com", Replacement: "person2@example.com"},
			{Original: "john@example.com", Replacement: "person1@example.com"},
		},
	}
}

func TestProcessAnonymizes(t *testing.T) {
	t.Parallel()

	s := New()
	sess, err := s.Process(context.Background(), []byte(archiveJSON), anonOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.ID == "" {
		t.Fatal("expected a session id")
	}
	if len(sess.Messages) != 2 {
		t.Fatalf("want 2 conversational messages, got %d", len(sess.Messages))
	}

	first := sess.Messages[0]
	if first.DisplayName != "Person1" {
		t.Fatalf("display name %q", first.DisplayName)
	}
	want := "Email me at person2@example.com or visit [GITHUB_LINK]"
	if first.FullText != want {
		t.Fatalf("full text %q want %q", first.FullText, want)
	}

	// the stored document is anonymized too
	if sess.Document.Messages[0].Creator.Name != "Person1" {
		t.Fatalf("document creator %q", sess.Document.Messages[0].Creator.Name)
	}

	if sess.Stats.TotalMessages != 2 || sess.Stats.UniqueParticipants != 2 {
		t.Fatalf("stats %+v", sess.Stats)
	}
	if sess.PageSize != DefaultPageSize || sess.Pages != 1 {
		t.Fatalf("paging %d/%d", sess.PageSize, sess.Pages)
	}
}

func TestProcessWithoutAnonymization(t *testing.T) {
	t.Parallel()

	s := New()
	sess, err := s.Process(context.Background(), []byte(archiveJSON), domain.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Messages[0].DisplayName != "John Smith" {
		t.Fatalf("display name %q", sess.Messages[0].DisplayName)
	}
	if !strings.Contains(sess.Messages[0].FullText, "https://github.com/org/repo") {
		t.Fatalf("links must survive when anonymization is off: %q", sess.Messages[0].FullText)
	}
}

func TestProcessLinkLevelFull(t *testing.T) {
	t.Parallel()

	s := New()
	opt := anonOptions()
	opt.LinkLevel = "full"
	sess, err := s.Process(context.Background(), []byte(archiveJSON), opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Email me at [EMAIL] or visit [LINK]"
	if sess.Messages[0].FullText != want {
		t.Fatalf("full text %q want %q", sess.Messages[0].FullText, want)
	}
}

func TestProcessLinksDisabled(t *testing.T) {
	t.Parallel()

	s := New()
	off := false
	opt := anonOptions()
	opt.LinkAnonymization = &off
	sess, err := s.Process(context.Background(), []byte(archiveJSON), opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sess.Messages[0].FullText, "https://github.com/org/repo") {
		t.Fatalf("links should be kept: %q", sess.Messages[0].FullText)
	}
	// names and emails are still substituted
	if !strings.Contains(sess.Messages[0].FullText, "person2@example.com") {
		t.Fatalf("mapped email missing: %q", sess.Messages[0].FullText)
	}
}

func TestProcessInvalidDocument(t *testing.T) {
	t.Parallel()

	s := New()
	if _, err := s.Process(context.Background(), []byte(`{"messages":[]}`), domain.Options{}); err == nil {
		t.Fatal("expected error for empty archive")
	}
}

func TestProcessOnlySystemMessages(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := s.Process(context.Background(), []byte(`{"messages":[{"text":"notice"}]}`), domain.Options{})
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProcessTimestampFallbackWarning(t *testing.T) {
	t.Parallel()

	s := New()
	doc := `{"messages":[{"creator":{"name":"A"},"created_date":"garbage","text":"hi"}]}`
	sess, err := s.Process(context.Background(), []byte(doc), domain.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Warnings) == 0 {
		t.Fatalf("expected a fallback warning, got %v", sess.Warnings)
	}
	testkit.MustContain(t, sess.Warnings[0], "unparsable dates")
}

func TestGetAndDelete(t *testing.T) {
	t.Parallel()

	s := New()
	sess, err := s.Process(context.Background(), []byte(archiveJSON), domain.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := s.Get(sess.ID)
	if !ok || got.ID != sess.ID {
		t.Fatalf("Get(%s)=%v,%v", sess.ID, got, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatal("unknown id should miss")
	}

	if !s.Delete(sess.ID) {
		t.Fatal("delete should report true")
	}
	if s.Delete(sess.ID) {
		t.Fatal("second delete should report false")
	}
	if _, ok := s.Get(sess.ID); ok {
		t.Fatal("session should be gone")
	}
}

func TestPageSlicing(t *testing.T) {
	t.Parallel()

	s := New()
	doc := `{"messages":[
		{"creator":{"name":"A"},"created_date":"Monday, January 1, 2024 at 10:00:00 AM UTC","text":"one"},
		{"creator":{"name":"A"},"created_date":"Monday, January 1, 2024 at 10:01:00 AM UTC","text":"two"},
		{"creator":{"name":"A"},"created_date":"Monday, January 1, 2024 at 10:02:00 AM UTC","text":"three"}
	]}`
	sess, err := s.Process(context.Background(), []byte(doc), domain.Options{PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Pages != 2 {
		t.Fatalf("pages %d", sess.Pages)
	}

	p1 := s.Page(sess, 1)
	if len(p1) != 2 || p1[0].FullText != "one" || p1[1].FullText != "two" {
		t.Fatalf("page 1: %+v", p1)
	}
	p2 := s.Page(sess, 2)
	if len(p2) != 1 || p2[0].FullText != "three" {
		t.Fatalf("page 2: %+v", p2)
	}
	if s.Page(sess, 3) != nil || s.Page(sess, 0) != nil || s.Page(nil, 1) != nil {
		t.Fatal("out-of-range pages must be nil")
	}
	if p1[0].Timestamp != "Jan 01, 2024 at 10:00 AM" {
		t.Fatalf("rendered timestamp %q", p1[0].Timestamp)
	}
}

func TestStore(t *testing.T) {
	t.Parallel()

	st := NewStore()
	if st.Len() != 0 {
		t.Fatalf("new store len %d", st.Len())
	}
	st.Put(&domain.Session{ID: "a"})
	st.Put(&domain.Session{ID: "b"})
	if st.Len() != 2 {
		t.Fatalf("len %d", st.Len())
	}
	if _, ok := st.Get("a"); !ok {
		t.Fatal("expected a")
	}
	if !st.Delete("a") || st.Delete("a") {
		t.Fatal("delete semantics broken")
	}
}
