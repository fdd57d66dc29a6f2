package monitor

import (
	"strings"
	"testing"
)

func TestCleanHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "nothing to strip", "nothing to strip"},
		{"anchor", `<a href="profile.php?XID=1">Someone</a> mugged you`, "Someone mugged you"},
		{"entities", "Tom &amp; Jerry &lt;3 &quot;quoted&quot; &#39;s&nbsp;end", `Tom & Jerry <3 "quoted" 's end`},
		{"whitespace", "  a\n\n b\t\tc  ", "a b c"},
		{"nested tags", "<b><i>bold</i></b> text", "bold text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanHTML(tc.in); got != tc.want {
				t.Errorf("CleanHTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMatchRuleFirstMatchWins(t *testing.T) {
	cases := []struct {
		text string
		want Category
	}{
		{"Someone bought 3 bottles of beer from your bazaar", CategoryPurchase},
		{"Your item was purchased", CategoryPurchase},
		{"PlayerX mugged you and stole $1,000", CategoryMugged},
		{"PlayerX attacked you but you escaped", CategoryAttacked},
		{"You were hospitalized by PlayerX", CategoryHospitalized},
		{"You found a city item", CategoryGenericEvent},
		// "attacked" without "you" stays generic.
		{"Your faction mate attacked an enemy", CategoryGenericEvent},
		// Case-insensitive.
		{"SOMEONE MUGGED YOU", CategoryMugged},
	}
	for _, tc := range cases {
		if got := MatchRule(tc.text).Category; got != tc.want {
			t.Errorf("MatchRule(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestFeedProcessFiltersByWatermark(t *testing.T) {
	feed := EventFeed()
	records := []Record{
		{ID: "a7f", Text: `<a href="#">X</a> mugged you`, Timestamp: 1500},
		{ID: "b2", Text: "bought an item", Timestamp: 900},
	}

	out, watermark := feed.Process(records, 1000)
	if len(out) != 1 {
		t.Fatalf("want 1 notification, got %d", len(out))
	}
	if out[0].Category != CategoryMugged {
		t.Errorf("category = %s, want %s", out[0].Category, CategoryMugged)
	}
	if !strings.Contains(out[0].Body, "X mugged you") {
		t.Errorf("body %q does not contain cleaned text", out[0].Body)
	}
	if watermark != 1500 {
		t.Errorf("watermark = %d, want 1500", watermark)
	}
}

func TestFeedProcessWatermarkMonotonic(t *testing.T) {
	feed := EventFeed()
	watermark := int64(0)

	batches := [][]Record{
		{{ID: "1", Text: "e1", Timestamp: 100}, {ID: "2", Text: "e2", Timestamp: 200}},
		{{ID: "2", Text: "e2", Timestamp: 200}},                                   // all seen
		{{ID: "3", Text: "e3", Timestamp: 150}},                                   // older than watermark
		{{ID: "4", Text: "e4", Timestamp: 300}, {ID: "2", Text: "e2", Timestamp: 200}},
		nil,
	}
	wantCounts := []int{2, 0, 0, 1, 0}
	wantMarks := []int64{200, 200, 200, 300, 300}

	for i, batch := range batches {
		out, next := feed.Process(batch, watermark)
		if len(out) != wantCounts[i] {
			t.Errorf("batch %d: got %d notifications, want %d", i, len(out), wantCounts[i])
		}
		if next < watermark {
			t.Fatalf("batch %d: watermark regressed %d -> %d", i, watermark, next)
		}
		if next != wantMarks[i] {
			t.Errorf("batch %d: watermark = %d, want %d", i, next, wantMarks[i])
		}
		watermark = next
	}
}

func TestFeedProcessOrderIndependentOfIDs(t *testing.T) {
	// IDs can be hashes with no ordering; only timestamps matter.
	inOrder := []Record{
		{ID: "zzz", Text: "first", Timestamp: 10},
		{ID: "aaa", Text: "second", Timestamp: 20},
		{ID: "mmm", Text: "third", Timestamp: 30},
	}
	shuffled := []Record{inOrder[2], inOrder[0], inOrder[1]}

	feed := EventFeed()
	out1, wm1 := feed.Process(inOrder, 0)
	out2, wm2 := feed.Process(shuffled, 0)

	if wm1 != wm2 {
		t.Fatalf("watermarks differ: %d vs %d", wm1, wm2)
	}
	if len(out1) != len(out2) {
		t.Fatalf("result counts differ: %d vs %d", len(out1), len(out2))
	}
	for i := range out1 {
		if out1[i] != out2[i] {
			t.Errorf("record %d differs: %+v vs %+v", i, out1[i], out2[i])
		}
	}
}

func TestFeedProcessEmptyBatchIsSilent(t *testing.T) {
	feed := InboxFeed()
	out, watermark := feed.Process(nil, 500)
	if len(out) != 0 {
		t.Fatalf("want no notifications, got %d", len(out))
	}
	if watermark != 500 {
		t.Fatalf("watermark changed on empty batch: %d", watermark)
	}
}

func TestInboxFeedFormatting(t *testing.T) {
	feed := InboxFeed()
	long := strings.Repeat("x", 300)
	out, _ := feed.Process([]Record{
		{ID: "9", Name: "Vito", Title: "About tonight", Text: "<b>" + long + "</b>", Timestamp: 50},
	}, 0)
	if len(out) != 1 {
		t.Fatalf("want 1 notification, got %d", len(out))
	}
	n := out[0]
	if n.Category != CategoryInbox {
		t.Errorf("category = %s, want %s", n.Category, CategoryInbox)
	}
	if !strings.Contains(n.Title, "Vito") {
		t.Errorf("title %q missing sender", n.Title)
	}
	if !strings.Contains(n.Body, "About tonight") {
		t.Errorf("body %q missing subject", n.Body)
	}
	if !strings.Contains(n.Body, "...") {
		t.Errorf("body %q not truncated", n.Body)
	}
	if strings.Contains(n.Body, long) {
		t.Error("body contains the full untruncated text")
	}
}

func TestNewestTimestamp(t *testing.T) {
	records := []Record{
		{Timestamp: 300}, {Timestamp: 900}, {Timestamp: 100},
	}
	if got := NewestTimestamp(records); got != 900 {
		t.Errorf("NewestTimestamp = %d, want 900", got)
	}
	if got := NewestTimestamp(nil); got != 0 {
		t.Errorf("NewestTimestamp(nil) = %d, want 0", got)
	}
}
