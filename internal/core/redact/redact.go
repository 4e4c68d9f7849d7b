// Package redact classifies embedded URLs by service shape and replaces each
// occurrence with a bracketed placeholder tag.
//
// Two levels are supported
//   - LevelDomain keeps the service identity, eg a Google Docs URL becomes
//     [DOCS_LINK] and a GitHub URL becomes [GITHUB_LINK]
//   - LevelFull collapses everything: URLs become [LINK], email addresses
//     become [EMAIL], file and drive-letter paths become [PATH]
//
// The domain table is ordered most-specific first; the generic https/http
// catch-alls must run last or a Docs URL would degrade to [HTTPS_LINK].
// Classification is pure, deterministic, and idempotent once every raw URL
// has been tagged.
package redact

import (
	"regexp"
	"strings"
)

// Level selects how much service context survives redaction
type Level string

const (
	// LevelDomain preserves the service type in the placeholder
	LevelDomain Level = "domain"
	// LevelFull uses generic placeholders only
	LevelFull Level = "full"
)

// ParseLevel maps a config string onto a Level, defaulting to domain
func ParseLevel(s string) Level {
	if strings.EqualFold(strings.TrimSpace(s), string(LevelFull)) {
		return LevelFull
	}
	return LevelDomain
}

// EmailPattern matches RFC-mailbox-shaped addresses; shared with the entity
// extractor so detection and redaction agree on what an email looks like
const EmailPattern = `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// domainRules is ordered: Google services, code hosting, registries,
// communication, storage, social, docs platforms, then the generic
// catch-alls. Order is load-bearing
var domainRules = []rule{
	{regexp.MustCompile(`(?i)https://docs\.google\.com/document/d/[a-zA-Z0-9-_]+[^\s]*`), "[DOCS_LINK]"},
	{regexp.MustCompile(`(?i)https://docs\.google\.com/spreadsheets/d/[a-zA-Z0-9-_]+[^\s]*`), "[SHEETS_LINK]"},
	{regexp.MustCompile(`(?i)https://docs\.google\.com/presentation/d/[a-zA-Z0-9-_]+[^\s]*`), "[SLIDES_LINK]"},
	{regexp.MustCompile(`(?i)https://docs\.google\.com/forms/d/[a-zA-Z0-9-_]+[^\s]*`), "[FORMS_LINK]"},
	{regexp.MustCompile(`(?i)https://drive\.google\.com/[^\s]*`), "[DRIVE_LINK]"},
	{regexp.MustCompile(`(?i)https://meet\.google\.com/[^\s]*`), "[MEET_LINK]"},
	{regexp.MustCompile(`(?i)https://calendar\.google\.com/[^\s]*`), "[CALENDAR_LINK]"},
	{regexp.MustCompile(`(?i)https://classroom\.google\.com/[^\s]*`), "[CLASSROOM_LINK]"},
	{regexp.MustCompile(`(?i)https://mail\.google\.com/[^\s]*`), "[GMAIL_LINK]"},
	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]*\.google\.com/[^\s]*`), "[GOOGLE_LINK]"},

	{regexp.MustCompile(`(?i)https://(?:www\.)?github\.com/[^\s]*`), "[GITHUB_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?gitlab\.com/[^\s]*`), "[GITLAB_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?bitbucket\.org/[^\s]*`), "[BITBUCKET_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?stackoverflow\.com/[^\s]*`), "[STACKOVERFLOW_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?npmjs\.com/[^\s]*`), "[NPM_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?pypi\.org/[^\s]*`), "[PYPI_LINK]"},

	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]+\.slack\.com/[^\s]*`), "[SLACK_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?discord\.(?:gg|com)/[^\s]*`), "[DISCORD_LINK]"},
	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]*\.zoom\.us/[^\s]*`), "[ZOOM_LINK]"},
	{regexp.MustCompile(`(?i)https://teams\.microsoft\.com/[^\s]*`), "[TEAMS_LINK]"},
	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]*\.webex\.com/[^\s]*`), "[WEBEX_LINK]"},

	{regexp.MustCompile(`(?i)https://(?:www\.)?dropbox\.com/[^\s]*`), "[DROPBOX_LINK]"},
	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]*\.sharepoint\.com/[^\s]*`), "[ONEDRIVE_LINK]"},
	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]*\.box\.com/[^\s]*`), "[BOX_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?icloud\.com/[^\s]*`), "[ICLOUD_LINK]"},

	{regexp.MustCompile(`(?i)https://(?:www\.)?linkedin\.com/[^\s]*`), "[LINKEDIN_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?(?:twitter|x)\.com/[^\s]*`), "[TWITTER_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?facebook\.com/[^\s]*`), "[FACEBOOK_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?instagram\.com/[^\s]*`), "[INSTAGRAM_LINK]"},
	{regexp.MustCompile(`(?i)https://(?:www\.)?(?:youtube\.com|youtu\.be)/[^\s]*`), "[YOUTUBE_LINK]"},

	{regexp.MustCompile(`(?i)https://(?:www\.)?notion\.so/[^\s]*`), "[NOTION_LINK]"},
	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]*\.atlassian\.net/[^\s]*`), "[CONFLUENCE_LINK]"},

	{regexp.MustCompile(`(?i)ftp://[^\s]*`), "[FTP_LINK]"},
	{regexp.MustCompile(`(?i)file://[^\s]*`), "[FILE_PATH]"},
	{regexp.MustCompile(`\\\\[a-zA-Z0-9.-]+\\[^\s]*`), "[NETWORK_PATH]"},
	{regexp.MustCompile(`(?i)https?://(?:\d{1,3}\.){3}\d{1,3}(?::\d+)?[^\s]*`), "[IP_ADDRESS]"},
	{regexp.MustCompile(`(?i)https://[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}[^\s]*`), "[HTTPS_LINK]"},
	{regexp.MustCompile(`(?i)http://[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}[^\s]*`), "[HTTP_LINK]"},
}

// fullRules collapse service identity entirely. Paths are limited to
// file:// and drive-letter shapes; bare /-rooted tokens are left alone so
// ordinary prose is not eaten
var fullRules = []rule{
	{regexp.MustCompile(`(?i)https?://[^\s]+`), "[LINK]"},
	{regexp.MustCompile(`\b` + EmailPattern + `\b`), "[EMAIL]"},
	{regexp.MustCompile(`(?i)(?:file://|[A-Z]:\\)[^\s]*`), "[PATH]"},
}

// Apply rewrites every classified URL in text with its placeholder at the
// given level. Unmatched text is returned unchanged
func Apply(text string, level Level) string {
	if text == "" {
		return text
	}
	rules := domainRules
	if level == LevelFull {
		rules = fullRules
	}
	for _, r := range rules {
		if r.re.MatchString(text) {
			text = r.re.ReplaceAllLiteralString(text, r.placeholder)
		}
	}
	return text
}
