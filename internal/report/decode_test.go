package report

import (
	"strings"
	"testing"
	"time"
)

func TestDecodeItems(t *testing.T) {
	t.Parallel()

	t.Run("issues", func(t *testing.T) {
		input := `[{"number": 1, "state": "closed", "html_url": "https://github.com/a/b/issues/1",
			"title": "t", "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-02T00:00:00Z",
			"closed_at": "2024-01-01T06:00:00Z", "milestone": null, "user": {"login": "u"},
			"assignee": {"login": "a"}}]`

		items, err := DecodeItems(KindIssue, strings.NewReader(input))
		if err != nil {
			t.Fatalf("DecodeItems returned error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		issue, ok := items[0].(Issue)
		if !ok {
			t.Fatalf("expected Issue, got %T", items[0])
		}
		if issue.ClosedAt == nil || !issue.ClosedAt.Equal(time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected closed_at: %v", issue.ClosedAt)
		}
		if issue.Milestone != nil || issue.Assignee == nil || issue.Assignee.Login != "a" {
			t.Fatalf("unexpected optional fields: %+v", issue)
		}
	})

	t.Run("users", func(t *testing.T) {
		items, err := DecodeItems(KindUser, strings.NewReader(`[{"login":"mona","html_url":"h","contributions":4}]`))
		if err != nil {
			t.Fatalf("DecodeItems returned error: %v", err)
		}
		if user := items[0].(User); user.Contributions != 4 {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("other", func(t *testing.T) {
		items, err := DecodeItems(KindOther, strings.NewReader(`["x", 2]`))
		if err != nil {
			t.Fatalf("DecodeItems returned error: %v", err)
		}
		if len(items) != 2 || items[0] != "x" {
			t.Fatalf("unexpected items: %v", items)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := DecodeItems(KindLabel, strings.NewReader(`{"name": "not an array"}`)); err == nil {
			t.Fatalf("expected error for non-array input")
		}
	})
}
