package monitor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tornsuite/consigliere/internal/torn"
)

// --------------------------------------------------------------------------
// HTML cleaning
// --------------------------------------------------------------------------

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	entityReplacer    = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// CleanHTML strips tag-delimited spans, decodes the handful of entities the
// game API actually emits, and collapses whitespace runs.
func CleanHTML(text string) string {
	if text == "" {
		return ""
	}
	clean := tagPattern.ReplaceAllString(text, "")
	clean = entityReplacer.Replace(clean)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(clean, " "))
}

// --------------------------------------------------------------------------
// Keyword classification
// --------------------------------------------------------------------------

// Rule maps keyword constraints to a notification category. All keywords
// must match, case-insensitively; rules are evaluated in order and the first
// match wins.
type Rule struct {
	Keywords []string
	Category Category
	Icon     string
	Title    string
}

// EventRules is the ordered classification table for the events feed.
// Substring matching on free text is best-effort: the API gives no
// structured event type, so misclassification is accepted, not fixed.
var EventRules = []Rule{
	{Keywords: []string{"bought"}, Category: CategoryPurchase, Icon: "💰", Title: "Item Sold"},
	{Keywords: []string{"purchased"}, Category: CategoryPurchase, Icon: "💰", Title: "Item Sold"},
	{Keywords: []string{"mugged"}, Category: CategoryMugged, Icon: "💸", Title: "MUGGED!"},
	{Keywords: []string{"attacked", "you"}, Category: CategoryAttacked, Icon: "⚔️", Title: "ATTACKED!"},
	{Keywords: []string{"hospitalized"}, Category: CategoryHospitalized, Icon: "🏥", Title: "Hospitalized"},
}

// genericEventRule is the fallback when no table entry matches.
var genericEventRule = Rule{Category: CategoryGenericEvent, Icon: "🔔", Title: "NEW EVENT"}

// MatchRule returns the first rule whose keywords all appear in text, or the
// generic fallback.
func MatchRule(text string) Rule {
	lower := strings.ToLower(text)
	for _, rule := range EventRules {
		matched := true
		for _, kw := range rule.Keywords {
			if !strings.Contains(lower, kw) {
				matched = false
				break
			}
		}
		if matched {
			return rule
		}
	}
	return genericEventRule
}

// --------------------------------------------------------------------------
// Feed — watermark-deduplicated record stream
// --------------------------------------------------------------------------

// Record is one timestamped free-text entry from a polled feed. IDs are
// opaque (possibly hashes) and never used for ordering or dedup.
type Record struct {
	ID        string
	Name      string
	Title     string
	Text      string
	Timestamp int64
}

// Feed processes one record stream against a persisted watermark. The
// events and inbox feeds share the algorithm and differ only in the state
// key and per-record formatting.
type Feed struct {
	StateKey string
	Format   func(Record) Notification
}

// Process sorts records by timestamp, drops everything at or below the
// watermark, formats the rest, and returns the advanced watermark. The
// returned watermark only moves forward; when nothing qualifies the input
// watermark comes back unchanged with an empty result — callers must treat
// that silently.
func (f Feed) Process(records []Record, watermark int64) ([]Notification, int64) {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	var out []Notification
	newWatermark := watermark
	for _, rec := range sorted {
		if rec.Timestamp <= watermark {
			continue
		}
		out = append(out, f.Format(rec))
		if rec.Timestamp > newWatermark {
			newWatermark = rec.Timestamp
		}
	}
	return out, newWatermark
}

// NewestTimestamp returns the maximum timestamp among records, or 0 for an
// empty batch. Used for first-boot watermark initialization.
func NewestTimestamp(records []Record) int64 {
	var newest int64
	for _, rec := range records {
		if rec.Timestamp > newest {
			newest = rec.Timestamp
		}
	}
	return newest
}

// EventFeed builds the feed for player events.
func EventFeed() Feed {
	return Feed{
		StateKey: KeyLastEventTimestamp,
		Format: func(rec Record) Notification {
			text := CleanHTML(rec.Text)
			rule := MatchRule(text)
			return Notification{
				Category: rule.Category,
				Icon:     rule.Icon,
				Title:    rule.Title,
				Body:     fmt.Sprintf("_%s_", text),
			}
		},
	}
}

// InboxFeed builds the feed for inbox messages.
func InboxFeed() Feed {
	return Feed{
		StateKey: KeyLastMessageTimestamp,
		Format: func(rec Record) Notification {
			text := CleanHTML(rec.Text)
			if len(text) > inboxPreviewLimit {
				text = text[:inboxPreviewLimit] + "..."
			}
			return Notification{
				Category: CategoryInbox,
				Icon:     "📩",
				Title:    "New message from " + rec.Name,
				Body:     fmt.Sprintf("📌 *%s*\n\n_%s_", rec.Title, text),
			}
		},
	}
}

// EventRecords adapts typed snapshot events to feed records.
func EventRecords(events []torn.Event) []Record {
	out := make([]Record, len(events))
	for i, e := range events {
		out[i] = Record{ID: e.ID, Text: e.Text, Timestamp: e.Timestamp}
	}
	return out
}

// MessageRecords adapts typed snapshot messages to feed records.
func MessageRecords(messages []torn.Message) []Record {
	out := make([]Record, len(messages))
	for i, m := range messages {
		out[i] = Record{ID: m.ID, Name: m.Name, Title: m.Title, Text: m.Text, Timestamp: m.Timestamp}
	}
	return out
}
