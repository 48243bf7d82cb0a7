package resolver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"desktopclean/internal/config"
	"desktopclean/internal/desktop"
	"desktopclean/internal/models"
)

// setupTestEnv creates system and user roots
func setupTestEnv(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.ForRoots(filepath.Join(tmpDir, "system"), filepath.Join(tmpDir, "user"), filepath.Join(tmpDir, "config"))
	os.MkdirAll(cfg.SystemDir, 0755)
	os.MkdirAll(cfg.UserDir, 0755)
	return cfg
}

func writeRecord(t *testing.T, cfg *config.Config, dir, file, content string) models.LauncherRecord {
	t.Helper()
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	rec, err := desktop.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	rec.Role = cfg.Classify(path)
	return rec
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestOrder(t *testing.T) {
	records := []models.LauncherRecord{
		{Path: "/u/b.desktop", Role: models.RoleUser},
		{Path: "/s/z.desktop", Role: models.RoleSystem},
		{Path: "/u/a.desktop", Role: models.RoleUser},
		{Path: "/s/c.desktop", Role: models.RoleSystem},
	}

	ordered := Order(records)
	expected := []string{"/s/c.desktop", "/s/z.desktop", "/u/a.desktop", "/u/b.desktop"}

	for i, path := range expected {
		if ordered[i].Path != path {
			t.Errorf("ordered[%d] = %s, want %s", i, ordered[i].Path, path)
		}
	}
	if records[0].Path != "/u/b.desktop" {
		t.Error("Order should not modify its input")
	}
}

func TestOrder_UserOnly(t *testing.T) {
	ordered := Order([]models.LauncherRecord{
		{Path: "/u/z.desktop", Role: models.RoleUser},
		{Path: "/u/m.desktop", Role: models.RoleUser},
	})
	if ordered[0].Path != "/u/m.desktop" {
		t.Errorf("Expected lexicographically first user record, got %s", ordered[0].Path)
	}
}

func TestResolve_SystemSurvivorUserHidden(t *testing.T) {
	cfg := setupTestEnv(t)
	content := "[Desktop Entry]\nType=Application\nName=Editor\nNoDisplay=false\nExec=edit\n"
	sys := writeRecord(t, cfg, cfg.SystemDir, "org.editor.desktop", "[Desktop Entry]\nType=Application\nName=Editor\n")
	usr := writeRecord(t, cfg, cfg.UserDir, "editor.desktop", content)

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "Editor", Records: []models.LauncherRecord{usr, sys}}})

	if result.Hidden != 1 {
		t.Fatalf("Expected 1 hidden, got %d", result.Hidden)
	}
	if result.Survivors[0].Path != sys.Path {
		t.Errorf("Expected system survivor, got %s", result.Survivors[0].Path)
	}

	expected := "[Desktop Entry]\nNoDisplay=true\nType=Application\nName=Editor\nExec=edit\n"
	if got := readFile(t, usr.Path); got != expected {
		t.Errorf("Unexpected user file:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(cfg.UserDir, "org.editor.desktop")); !os.IsNotExist(err) {
		t.Error("survivor must not be shadowed")
	}
}

func TestResolve_SystemShadowed(t *testing.T) {
	cfg := setupTestEnv(t)
	original := "[Desktop Entry]\nType=Application\nName=Viewer\nExec=b\n"
	a := writeRecord(t, cfg, cfg.SystemDir, "a.desktop", "[Desktop Entry]\nType=Application\nName=Viewer\nExec=a\n")
	b := writeRecord(t, cfg, cfg.SystemDir, "b.desktop", original)

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "Viewer", Records: []models.LauncherRecord{b, a}}})

	if result.Hidden != 1 {
		t.Fatalf("Expected 1 hidden, got %d", result.Hidden)
	}
	shadow := filepath.Join(cfg.UserDir, "b.desktop")
	if got := readFile(t, shadow); got != string(desktop.Stub("Viewer")) {
		t.Errorf("Unexpected stub:\n%s", got)
	}
	if got := readFile(t, b.Path); got != original {
		t.Error("system file must not be modified")
	}

	action := result.Actions[0]
	if action.Kind != models.ActionShadow || action.Source != b.Path || action.Target != shadow {
		t.Errorf("Unexpected action %+v", action)
	}
	if !result.Changes[0].Created() {
		t.Error("stub should be reported as a new file")
	}
}

func TestResolve_OverwritesExistingShadow(t *testing.T) {
	cfg := setupTestEnv(t)
	a := writeRecord(t, cfg, cfg.SystemDir, "a.desktop", "[Desktop Entry]\nType=Application\nName=X\n")
	b := writeRecord(t, cfg, cfg.SystemDir, "b.desktop", "[Desktop Entry]\nType=Application\nName=X\n")
	shadow := filepath.Join(cfg.UserDir, "b.desktop")
	os.WriteFile(shadow, []byte("stale"), 0644)

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "X", Records: []models.LauncherRecord{a, b}}})

	if got := readFile(t, shadow); got != string(desktop.Stub("X")) {
		t.Errorf("Expected stub to replace stale file, got %q", got)
	}
	if string(result.Changes[0].Before) != "stale" {
		t.Error("change should carry the previous content")
	}
}

func TestResolve_ExactlyOneVisible(t *testing.T) {
	cfg := setupTestEnv(t)
	var records []models.LauncherRecord
	for _, f := range []string{"c.desktop", "a.desktop"} {
		records = append(records, writeRecord(t, cfg, cfg.SystemDir, f, "[Desktop Entry]\nType=Application\nName=Same\n"))
	}
	for _, f := range []string{"b.desktop", "d.desktop"} {
		records = append(records, writeRecord(t, cfg, cfg.UserDir, f, "[Desktop Entry]\nType=Application\nName=Same\n"))
	}

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "Same", Records: records}})
	if result.Hidden != 3 {
		t.Fatalf("Expected 3 hidden, got %d", result.Hidden)
	}

	// Re-read every effective launcher: user files shadow system files
	visible := 0
	for _, f := range []string{"a.desktop", "b.desktop", "c.desktop", "d.desktop"} {
		path := filepath.Join(cfg.UserDir, f)
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(cfg.SystemDir, f)
		}
		rec, _ := desktop.Extract(path)
		if !rec.Hidden() {
			visible++
			if f != "a.desktop" {
				t.Errorf("Expected a.desktop to survive, %s is visible", f)
			}
		}
	}
	if visible != 1 {
		t.Errorf("Expected exactly 1 visible launcher, got %d", visible)
	}
}

func TestResolve_DryRun(t *testing.T) {
	cfg := setupTestEnv(t)
	cfg.DryRun = true
	userContent := "[Desktop Entry]\nType=Application\nName=Dup\n"
	a := writeRecord(t, cfg, cfg.SystemDir, "a.desktop", userContent)
	b := writeRecord(t, cfg, cfg.SystemDir, "b.desktop", userContent)
	c := writeRecord(t, cfg, cfg.UserDir, "c.desktop", userContent)

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "Dup", Records: []models.LauncherRecord{a, b, c}}})

	if result.Hidden != 2 {
		t.Errorf("Expected dry run to count 2, got %d", result.Hidden)
	}
	if _, err := os.Stat(filepath.Join(cfg.UserDir, "b.desktop")); !os.IsNotExist(err) {
		t.Error("dry run must not create a stub")
	}
	if got := readFile(t, c.Path); got != userContent {
		t.Error("dry run must not modify the user file")
	}
	if len(result.Changes) != 2 || !strings.Contains(string(result.Changes[1].After), "NoDisplay=true") {
		t.Error("dry run should still report the planned content")
	}
}

func TestResolve_SkipsUnknownRole(t *testing.T) {
	cfg := setupTestEnv(t)
	a := writeRecord(t, cfg, cfg.SystemDir, "a.desktop", "[Desktop Entry]\nType=Application\nName=Q\n")
	stray := models.LauncherRecord{Path: "/opt/q.desktop", Name: "Q", HasName: true, Type: "Application"}

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "Q", Records: []models.LauncherRecord{a, stray}}})

	if result.Hidden != 0 || result.Skipped != 1 {
		t.Errorf("Expected 0 hidden and 1 skipped, got %d and %d", result.Hidden, result.Skipped)
	}
}

func TestResolve_FailureNotCounted(t *testing.T) {
	cfg := setupTestEnv(t)
	a := writeRecord(t, cfg, cfg.SystemDir, "a.desktop", "[Desktop Entry]\nType=Application\nName=F\n")
	b := writeRecord(t, cfg, cfg.UserDir, "b.desktop", "[Desktop Entry]\nType=Application\nName=F\n")
	os.Remove(b.Path)

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "F", Records: []models.LauncherRecord{a, b}}})

	if result.Hidden != 0 || result.Failed != 1 {
		t.Errorf("Expected 0 hidden and 1 failed, got %d and %d", result.Hidden, result.Failed)
	}
	if !result.Actions[0].Failed() {
		t.Error("failed action should carry its error")
	}
}

func TestResolve_SingleRecordGroupIgnored(t *testing.T) {
	cfg := setupTestEnv(t)
	a := writeRecord(t, cfg, cfg.SystemDir, "a.desktop", "[Desktop Entry]\nType=Application\nName=Solo\n")

	result := New(cfg, nil).Resolve([]models.DuplicateGroup{{Name: "Solo", Records: []models.LauncherRecord{a}}})
	if result.Hidden != 0 || len(result.Survivors) != 0 {
		t.Errorf("Expected nothing to happen, got %+v", result)
	}
}
