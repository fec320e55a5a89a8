package archive

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chamberedinseams/storefront/config"
)

func TestExtractTitle(t *testing.T) {
	if got := extractTitle(""); got != "Untitled Post" {
		t.Fatalf("empty caption: %q", got)
	}
	if got := extractTitle("Fresh drop\n#vintage #denim"); got != "Fresh drop" {
		t.Fatalf("first line expected: %q", got)
	}
	long := strings.Repeat("a", 60)
	if got := extractTitle(long); got != strings.Repeat("a", 50)+"..." {
		t.Fatalf("long captions must be truncated: %q", got)
	}
}

func TestDetectCategory(t *testing.T) {
	cases := map[string]string{
		"":                          "General",
		"new drop #denim":           "Denim",
		"fresh #tee for summer":     "Tops",
		"#boots back in stock":      "Footwear",
		"leather #bag":              "Accessories",
		"a real #vintage find":      "Vintage",
		"no hashtags denim mention": "General",
	}
	for caption, want := range cases {
		if got := detectCategory(caption); got != want {
			t.Fatalf("caption %q: got %q want %q", caption, got, want)
		}
	}
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	fetchedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	posts := []Post{
		{ID: "1", Caption: "Fresh drop #denim", Title: "Fresh drop #denim", Category: "Denim"},
		{ID: "2", Caption: "staff pick boots", IsFeatured: true},
	}

	first := NewService(config.InstagramConfig{})
	if err := first.OpenCache(path); err != nil {
		t.Fatalf("open cache: %v", err)
	}
	first.saveSnapshot(posts, fetchedAt)
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := NewService(config.InstagramConfig{})
	if err := second.OpenCache(path); err != nil {
		t.Fatalf("reopen cache: %v", err)
	}
	defer second.Close()

	restored := second.Posts()
	if len(restored) != 2 || restored[0].ID != "1" || !restored[1].IsFeatured {
		t.Fatalf("unexpected restored posts %+v", restored)
	}
	if !second.FetchedAt().Equal(fetchedAt) {
		t.Fatalf("fetchedAt not restored: %v", second.FetchedAt())
	}
}

func TestIsFeatured(t *testing.T) {
	if !isFeatured("This week's STAFF PICK") {
		t.Fatalf("staff pick caption should be featured")
	}
	if isFeatured("plain caption") {
		t.Fatalf("plain caption should not be featured")
	}
}
