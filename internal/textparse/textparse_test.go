package textparse

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"
)

func TestCanonicalName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "RepositoryPath", in: "my-org/some.repo", want: "myorg_somerepo"},
		{name: "Spaces", in: "Team A / backend", want: "TeamA_backend"},
		{name: "AlreadyCanonical", in: "org_repo", want: "org_repo"},
		{name: "Empty", in: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalName(tc.in); got != tc.want {
				t.Fatalf("CanonicalName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCanonicalNameIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"a/b/c", "x-y.z w", "..//--", "already_ok", "ümlaut-repo/v1.2"}
	for _, in := range inputs {
		once := CanonicalName(in)
		if twice := CanonicalName(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestDictFromString(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		got, err := DictFromString("state=closed;sort=updated", ";")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]string{"state": "closed", "sort": "updated"}
		if !maps.Equal(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got, err := DictFromString("", ",")
		if err != nil || got != nil {
			t.Fatalf("expected nil map and no error, got %v, %v", got, err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, in := range []string{"state", "a=b=c", "a=b,c"} {
			if _, err := DictFromString(in, ","); !errors.Is(err, ErrMalformedPair) {
				t.Fatalf("expected ErrMalformedPair for %q, got %v", in, err)
			}
		}
	})
}

func TestDictFromStringRoundTrip(t *testing.T) {
	t.Parallel()

	original := map[string]string{"state": "open", "assignee": "none", "direction": "asc", "empty": ""}
	pairs := make([]string, 0, len(original))
	for k, v := range original {
		pairs = append(pairs, k+"="+v)
	}

	got, err := DictFromString(strings.Join(pairs, "|"), "|")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !maps.Equal(got, original) {
		t.Fatalf("round trip mismatch: want %v, got %v", original, got)
	}
}

func TestListFromString(t *testing.T) {
	t.Parallel()

	if got, want := ListFromString("a,b,,c", ","), []string{"a", "b", "", "c"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ListFromString("", ","); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected single empty item, got %q", got)
	}
}

func TestMergeMaps(t *testing.T) {
	t.Parallel()

	got := MergeMaps([]map[string]string{
		{"bug": "d73a4a"},
		{"enhancement": "a2eeef"},
		{"bug": "ff0000"},
	})
	want := map[string]string{"bug": "ff0000", "enhancement": "a2eeef"}
	if !maps.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if empty := MergeMaps[string, int](nil); len(empty) != 0 {
		t.Fatalf("expected empty map, got %v", empty)
	}
}
