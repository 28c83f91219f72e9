package application

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/ghreport/internal/config"
	"github.com/eugenenazirov/ghreport/internal/membership"
	"github.com/eugenenazirov/ghreport/internal/report"
)

const memberships = `[{"state": "active", "role": "member", "organization": {"login": "acme"},
  "user": {"login": "mona", "name": "Mona", "email": "m@example.com", "url": "https://api.github.com/users/mona"}}]`

const contributors = `[
  {"login": "mona", "html_url": "https://github.com/mona", "contributions": 10},
  {"login": "ghost", "html_url": "https://github.com/ghost", "contributions": 1}
]`

func baseTestConfig() config.Config {
	return config.Config{
		Org:         "acme",
		LookupRPS:   0,
		LookupBurst: 1,
		LogLevel:    "debug",
	}
}

func TestNewWithMembershipsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memberships.json")
	if err := os.WriteFile(path, []byte(memberships), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var out bytes.Buffer
	app, err := New(baseTestConfig(), zaptest.NewLogger(t), &out, WithMembershipsFile(path))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.lookup == nil || app.Printer() == nil {
		t.Fatalf("expected lookup and printer to be initialized")
	}

	if err := app.Report(context.Background(), report.KindUser, strings.NewReader(contributors), true); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	want := strings.Join([]string{
		"user,name,email,userUrl,membershipState,organization,organizationRole,contributions",
		"mona,Mona,m@example.com,https://api.github.com/users/mona,active,acme,member,10",
		"ghost,-,-,https://github.com/ghost,-,-,-,1",
	}, "\n") + "\n"
	if out.String() != want {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestNewWithoutLookupFallsBack(t *testing.T) {
	var out bytes.Buffer
	app, err := New(baseTestConfig(), zaptest.NewLogger(t), &out)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.lookup != nil {
		t.Fatalf("expected no lookup without memberships")
	}

	if err := app.Report(context.Background(), report.KindUser, strings.NewReader(contributors), false); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "mona,-,-,https://github.com/mona,-,-,-,10\n") {
		t.Fatalf("expected fallback rows, got %q", out.String())
	}
}

func TestNewReturnsErrorForMissingMemberships(t *testing.T) {
	_, err := New(baseTestConfig(), zaptest.NewLogger(t), &bytes.Buffer{},
		WithMembershipsFile(filepath.Join(t.TempDir(), "missing.json")))
	if err == nil {
		t.Fatalf("expected error for missing memberships file")
	}
}

func TestReportRejectsMalformedInput(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := app.Report(context.Background(), report.KindIssue, strings.NewReader("{"), true); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMembershipsFileIsNotThrottled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memberships.json")
	if err := os.WriteFile(path, []byte(memberships), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg := baseTestConfig()
	cfg.LookupRPS = 5
	cfg.LookupBurst = 1

	app, err := New(cfg, zaptest.NewLogger(t), &bytes.Buffer{}, WithMembershipsFile(path))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := app.lookup.(*membership.MemoryStore); !ok {
		t.Fatalf("expected the memberships file to be served unthrottled, got %T", app.lookup)
	}

	rows := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		rows = append(rows, `{"login": "mona", "html_url": "https://github.com/mona", "contributions": 1}`)
	}
	start := time.Now()
	input := "[" + strings.Join(rows, ",") + "]"
	if err := app.Report(context.Background(), report.KindUser, strings.NewReader(input), false); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected local lookups to run without throttling, took %s", elapsed)
	}
}

func TestSuppliedLookupIsThrottled(t *testing.T) {
	cfg := baseTestConfig()
	cfg.LookupRPS = 5
	cfg.LookupBurst = 1

	store := membership.NewMemoryStore()
	app, err := New(cfg, zaptest.NewLogger(t), &bytes.Buffer{}, WithLookup(store))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.lookup == report.MembershipLookup(store) {
		t.Fatalf("expected supplied lookup to be wrapped by the throttle")
	}
}
