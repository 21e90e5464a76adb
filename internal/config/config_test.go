package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"default_density": "compact", "allowed_paths": ["/exports"]}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultDensity != "compact" {
		t.Errorf("DefaultDensity = %q", cfg.DefaultDensity)
	}
	if !reflect.DeepEqual(cfg.AllowedPaths, []string{"/exports"}) {
		t.Errorf("AllowedPaths = %v", cfg.AllowedPaths)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{not json`)
	if _, err := Load(dir); err == nil {
		t.Error("expected an error for invalid json")
	}
}

func TestMergePrecedence(t *testing.T) {
	base := &Config{
		DefaultDensity: "normal",
		AllowedPaths:   []string{"/a", "/b"},
	}
	overlay := &Config{
		DefaultDensity:   "compact",
		AllowedPaths:     []string{"/b", "/c"},
		AllowUnsafePaths: true,
	}

	got := Merge(base, overlay)
	if got.DefaultDensity != "compact" {
		t.Errorf("DefaultDensity = %q, overlay should win", got.DefaultDensity)
	}
	if !got.AllowUnsafePaths {
		t.Error("AllowUnsafePaths should be sticky")
	}
	if !reflect.DeepEqual(got.AllowedPaths, []string{"/a", "/b", "/c"}) {
		t.Errorf("AllowedPaths = %v, want merged dedup", got.AllowedPaths)
	}
}

func TestMergeEmptyOverlayKeepsBase(t *testing.T) {
	base := &Config{DefaultDensity: "compact"}
	got := Merge(base, &Config{})
	if got.DefaultDensity != "compact" {
		t.Errorf("DefaultDensity = %q, want base value", got.DefaultDensity)
	}
}

func TestLoadWithRepo(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `{"default_density": "compact", "allowed_paths": ["/global"]}`)

	repoRoot := t.TempDir()
	writeConfig(t, filepath.Join(repoRoot, ".plank"), `{"default_density": "normal", "allowed_paths": ["/repo"]}`)
	nested := filepath.Join(repoRoot, "sub", "dir")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	// Repo config is found by walking up from a nested directory and its
	// scalars win over global.
	cfg, err := LoadWithRepo(globalDir, nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultDensity != "normal" {
		t.Errorf("DefaultDensity = %q, repo should win", cfg.DefaultDensity)
	}
	if !reflect.DeepEqual(cfg.AllowedPaths, []string{"/global", "/repo"}) {
		t.Errorf("AllowedPaths = %v", cfg.AllowedPaths)
	}
}

func TestLoadWithRepoBothMissing(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestFindRepoConfigMissing(t *testing.T) {
	if got := FindRepoConfig(t.TempDir()); got != "" {
		t.Errorf("FindRepoConfig = %q, want empty", got)
	}
}
