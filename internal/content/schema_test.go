package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"lantern/internal/content"
)

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadActivityDocAppliesDefaults(t *testing.T) {
	path := writeDoc(t, "a_2.yaml", "")

	activity, err := content.LoadActivityDoc(path, "a_2")
	if err != nil {
		t.Fatalf("LoadActivityDoc returned error: %v", err)
	}
	if activity.ID != "a_2" {
		t.Fatalf("expected id from stem, got %q", activity.ID)
	}
	if activity.Title != "a_2" {
		t.Fatalf("expected title defaulting to id, got %q", activity.Title)
	}
	if activity.Version != 1 {
		t.Fatalf("expected default version 1, got %d", activity.Version)
	}
	if activity.Locale != "en-US" {
		t.Fatalf("expected default locale, got %q", activity.Locale)
	}
	if activity.Questions == nil || len(activity.Questions) != 0 {
		t.Fatalf("expected empty question list, got %#v", activity.Questions)
	}
}

func TestLoadActivityDocReadsDeclaredFields(t *testing.T) {
	path := writeDoc(t, "a_1.yaml", `
id: custom
title: Counting
version: 3
locale: fil-PH
questions:
  - prompt: "1+1?"
    answer: 2
  - prompt: "2+2?"
    answer: 4
`)

	activity, err := content.LoadActivityDoc(path, "a_1")
	if err != nil {
		t.Fatalf("LoadActivityDoc returned error: %v", err)
	}
	if activity.ID != "custom" {
		t.Fatalf("unexpected id: %q", activity.ID)
	}
	if activity.Title != "Counting" {
		t.Fatalf("unexpected title: %q", activity.Title)
	}
	if activity.Version != 3 {
		t.Fatalf("unexpected version: %d", activity.Version)
	}
	if activity.Locale != "fil-PH" {
		t.Fatalf("unexpected locale: %q", activity.Locale)
	}
	if len(activity.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(activity.Questions))
	}
}

func TestLoadActivityDocCoercesStringVersion(t *testing.T) {
	path := writeDoc(t, "a_1.yaml", "version: \"7\"\n")

	activity, err := content.LoadActivityDoc(path, "a_1")
	if err != nil {
		t.Fatalf("LoadActivityDoc returned error: %v", err)
	}
	if activity.Version != 7 {
		t.Fatalf("expected coerced version 7, got %d", activity.Version)
	}
}

func TestLoadActivityDocRejectsNonIntegerVersion(t *testing.T) {
	path := writeDoc(t, "a_1.yaml", "version: \"two\"\n")
	if _, err := content.LoadActivityDoc(path, "a_1"); err == nil {
		t.Fatal("expected error for non-integer version")
	}
}

func TestLoadActivityDocCanonicalizesLocale(t *testing.T) {
	path := writeDoc(t, "a_1.yaml", "locale: en-us\n")

	activity, err := content.LoadActivityDoc(path, "a_1")
	if err != nil {
		t.Fatalf("LoadActivityDoc returned error: %v", err)
	}
	if activity.Locale != "en-US" {
		t.Fatalf("expected canonical locale en-US, got %q", activity.Locale)
	}
}

func TestLoadActivityDocKeepsUnparseableLocale(t *testing.T) {
	path := writeDoc(t, "a_1.yaml", "locale: \"not a locale!\"\n")

	activity, err := content.LoadActivityDoc(path, "a_1")
	if err != nil {
		t.Fatalf("LoadActivityDoc returned error: %v", err)
	}
	if activity.Locale != "not a locale!" {
		t.Fatalf("expected verbatim locale, got %q", activity.Locale)
	}
}

func TestLoadUnitDocDefaults(t *testing.T) {
	path := writeDoc(t, "u_1.yaml", "")

	unit, err := content.LoadUnitDoc(path, "u_1")
	if err != nil {
		t.Fatalf("LoadUnitDoc returned error: %v", err)
	}
	if unit.ID != "u_1" || unit.Title != "u_1" || unit.Content != "" {
		t.Fatalf("unexpected unit defaults: %#v", unit)
	}
}

func TestLoadEpisodeDocDefaults(t *testing.T) {
	path := writeDoc(t, "e_1.yaml", "title: Basics\n")

	episode, err := content.LoadEpisodeDoc(path, "e_1")
	if err != nil {
		t.Fatalf("LoadEpisodeDoc returned error: %v", err)
	}
	if episode.ID != "e_1" {
		t.Fatalf("expected id from directory name, got %q", episode.ID)
	}
	if episode.Title != "Basics" {
		t.Fatalf("unexpected title: %q", episode.Title)
	}
}

func TestLoadUnitDocMissingFile(t *testing.T) {
	if _, err := content.LoadUnitDoc(filepath.Join(t.TempDir(), "absent.yaml"), "u_1"); err == nil {
		t.Fatal("expected error for missing document")
	}
}
