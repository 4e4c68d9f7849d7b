// Package domain holds the transcript service DTOs and ports
package domain

import (
	"context"
	"encoding/json"
	"time"

	"chatscrub/internal/archive"
	"chatscrub/internal/core/normalize"
	"chatscrub/internal/core/stats"
)

// MappingEntry is one caller-supplied original to replacement pair
type MappingEntry struct {
	Original    string `json:"original" validate:"required"`
	Replacement string `json:"replacement" validate:"required"`
}

// Options is the explicit configuration value threaded into a processing
// pass; the core never reads ambient state
type Options struct {
	Anonymize bool           `json:"anonymize"`
	Mode      string         `json:"mode,omitempty"`
	Mappings  []MappingEntry `json:"mappings,omitempty" validate:"omitempty,dive"`

	// LinkAnonymization defaults to true when anonymization is on
	LinkAnonymization *bool  `json:"link_anonymization,omitempty"`
	LinkLevel         string `json:"link_level,omitempty" validate:"omitempty,oneof=domain full"`

	// PageSize affects only the display slice, never the transform
	PageSize int `json:"page_size,omitempty" validate:"omitempty,min=1,max=500"`

	// Filename is the uploaded file's name, used for the download name
	Filename string `json:"filename,omitempty"`
}

// LinksEnabled resolves the link-anonymization flag with its default
func (o Options) LinksEnabled() bool {
	if o.LinkAnonymization == nil {
		return true
	}
	return *o.LinkAnonymization
}

// ProcessInput is the API payload: the raw archive document plus options
type ProcessInput struct {
	Document json.RawMessage `json:"document" validate:"required"`
	Options  Options         `json:"options"`
}

// Session is one processed transcript held for paging. Immutable after
// creation; safe to share across requests
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Filename  string    `json:"filename,omitempty"`

	Document *archive.Document   `json:"-"`
	Messages []normalize.Message `json:"-"`

	Stats    stats.Statistics `json:"stats"`
	Warnings []string         `json:"warnings,omitempty"`
	PageSize int              `json:"page_size"`
	Pages    int              `json:"pages"`
}

// PageEntry is one rendered transcript row
type PageEntry struct {
	DisplayName string `json:"display_name"`
	Timestamp   string `json:"timestamp"`
	FullText    string `json:"full_text"`
}

// ServicePort is the transcript service contract
type ServicePort interface {
	Process(ctx context.Context, raw []byte, opt Options) (*Session, error)
	Get(id string) (*Session, bool)
	Page(s *Session, page int) []PageEntry
	Delete(id string) bool
}
