// Package service contains the transcript processing workflow: parse,
// extract, build the mapping table, anonymize, normalize, aggregate
package service

import (
	"context"
	"fmt"
	"time"

	"chatscrub/internal/archive"
	"chatscrub/internal/core/anonymize"
	"chatscrub/internal/core/entity"
	"chatscrub/internal/core/mapping"
	"chatscrub/internal/core/normalize"
	"chatscrub/internal/core/redact"
	"chatscrub/internal/core/rewrite"
	"chatscrub/internal/core/stats"
	"chatscrub/internal/platform/logger"
	"chatscrub/internal/services/transcript/domain"

	perr "chatscrub/internal/platform/errors"

	"github.com/google/uuid"
)

// DefaultPageSize mirrors the original viewer's messages-per-page
const DefaultPageSize = 50

// pageTimestampLayout is the rendered per-row timestamp
const pageTimestampLayout = "Jan 02, 2006 at 03:04 PM"

// Service is the transcript service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the transcript service
type Svc struct {
	store *Store
	log   *logger.Logger
}

// New constructs the transcript service with its session store
func New() *Svc {
	return &Svc{
		store: NewStore(),
		log:   logger.Named("transcript"),
	}
}

// Process runs the full pipeline over a raw archive payload and retains the
// result for paging. Validation failures stop the document; everything past
// ingestion degrades instead of failing
func (s *Svc) Process(ctx context.Context, raw []byte, opt domain.Options) (*domain.Session, error) {
	doc, err := archive.Parse(raw)
	if err != nil {
		return nil, err
	}

	var warnings []string
	table := mapping.Table{}

	if opt.Anonymize {
		ents := entity.Extract(doc)
		table, warnings = s.buildTable(opt, ents, warnings)
	}

	rewOpt := rewrite.Options{
		LinkEnabled: opt.Anonymize && opt.LinksEnabled(),
		LinkLevel:   redact.ParseLevel(opt.LinkLevel),
	}

	outDoc := doc
	if opt.Anonymize {
		outDoc, err = anonymize.Document(doc, table, rewOpt)
		if err != nil {
			// contract: the pass no-ops on failure, never corrupts output
			warnings = append(warnings, err.Error())
		}
	}

	msgs, rep := normalize.All(outDoc, table)
	if rep.TimestampFallbacks > 0 {
		warnings = append(warnings, fmt.Sprintf("%d message(s) had unparsable dates and use the current time", rep.TimestampFallbacks))
	}
	if len(msgs) == 0 {
		return nil, perr.Validationf("no valid chat messages found")
	}

	pageSize := opt.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Filename:  opt.Filename,
		Document:  outDoc,
		Messages:  msgs,
		Stats:     stats.Aggregate(msgs),
		Warnings:  warnings,
		PageSize:  pageSize,
		Pages:     (len(msgs)-1)/pageSize + 1,
	}
	s.store.Put(sess)

	s.log.Info().
		Str("session", sess.ID).
		Int("messages", len(msgs)).
		Int("system_filtered", rep.SystemFiltered).
		Int("mappings", table.Len()).
		Msg("transcript processed")
	return sess, nil
}

// buildTable compiles the caller mappings; construction failures degrade to
// an empty table with a reportable warning so the pipeline still runs
func (s *Svc) buildTable(opt domain.Options, ents entity.Entities, warnings []string) (t mapping.Table, out []string) {
	out = warnings
	defer func() {
		if v := recover(); v != nil {
			t = mapping.Table{}
			out = append(out, perr.Mappingf("mapping table construction failed: %v", v).Error())
		}
	}()

	custom := make(map[string]string, len(opt.Mappings))
	for _, e := range opt.Mappings {
		custom[e.Original] = e.Replacement
	}
	t = mapping.Build(custom, mapping.ParseMode(opt.Mode))

	total := len(ents.Names) + len(ents.Emails)
	coverage := 0.0
	if total > 0 {
		coverage = float64(t.Len()) / float64(total) * 100
	}
	s.log.Debug().
		Int("names_found", len(ents.Names)).
		Int("emails_found", len(ents.Emails)).
		Int("entities_mapped", t.Len()).
		Float64("coverage_pct", coverage).
		Msg("anonymization mappings built")
	return t, out
}

// Get returns a stored session by id
func (s *Svc) Get(id string) (*domain.Session, bool) { return s.store.Get(id) }

// Delete drops a stored session, reporting whether it existed
func (s *Svc) Delete(id string) bool { return s.store.Delete(id) }

// Page renders one 1-based page slice of a session's transcript
func (s *Svc) Page(sess *domain.Session, page int) []domain.PageEntry {
	if sess == nil || page < 1 || page > sess.Pages {
		return nil
	}
	start := (page - 1) * sess.PageSize
	end := min(start+sess.PageSize, len(sess.Messages))

	out := make([]domain.PageEntry, 0, end-start)
	for _, m := range sess.Messages[start:end] {
		out = append(out, domain.PageEntry{
			DisplayName: m.DisplayName,
			Timestamp:   m.Timestamp.Format(pageTimestampLayout),
			FullText:    m.FullText,
		})
	}
	return out
}
