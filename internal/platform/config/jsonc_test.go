package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStripCommentsRemovesLineComments(t *testing.T) {
	src := []byte("{\n  // leading comment\n  \"a\": 1 // trailing\n}")

	got := string(StripComments(src))

	if strings.Contains(got, "comment") || strings.Contains(got, "trailing") {
		t.Fatalf("expected comments removed, got %q", got)
	}
	if !strings.Contains(got, "\"a\": 1") {
		t.Fatalf("expected payload preserved, got %q", got)
	}
}

func TestStripCommentsRemovesBlockComments(t *testing.T) {
	src := []byte("{\"a\": /* inline */ 1, /* multi\nline */ \"b\": 2}")

	got := string(StripComments(src))

	if strings.Contains(got, "inline") || strings.Contains(got, "multi") {
		t.Fatalf("expected block comments removed, got %q", got)
	}
}

func TestStripCommentsPreservesStringLiterals(t *testing.T) {
	src := []byte(`{"url": "http://example.com", "note": "a /* b */ c", "esc": "say \"//\" twice"}`)

	got := string(StripComments(src))

	if got != string(src) {
		t.Fatalf("expected string literals untouched\n got %q\nwant %q", got, src)
	}
}

func TestLoadJSONCDecodesCommentedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := "{\n  // event weights\n  \"weight\": 2.5, /* default tone */ \"tone\": \"casual\"\n}"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var target struct {
		Weight float64 `json:"weight"`
		Tone   string  `json:"tone"`
	}
	if err := LoadJSONC(path, &target); err != nil {
		t.Fatalf("LoadJSONC returned error: %v", err)
	}
	if target.Weight != 2.5 || target.Tone != "casual" {
		t.Fatalf("unexpected decode result: %+v", target)
	}
}

func TestLoadJSONCMissingFile(t *testing.T) {
	var target map[string]any
	err := LoadJSONC(filepath.Join(t.TempDir(), "absent.json"), &target)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadJSONCMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var target map[string]any
	if err := LoadJSONC(path, &target); err == nil {
		t.Fatal("expected error for malformed file")
	}
}
