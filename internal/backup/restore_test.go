package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRestore(t *testing.T) {
	_, original := setupTestEnv(t)
	m := New(".bak", false)

	want, _ := os.ReadFile(original)
	if _, _, err := m.Backup(original); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(original, []byte("rewritten"), 0644)

	result, err := m.Restore([]string{original})
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if len(result.Restored) != 1 {
		t.Errorf("expected 1 restored file, got %d", len(result.Restored))
	}

	got, _ := os.ReadFile(original)
	if string(got) != string(want) {
		t.Errorf("expected original content back, got %q", got)
	}
	if _, err := os.Stat(m.PathFor(original)); err != nil {
		t.Error("backup should be kept after restore")
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	tmpDir := t.TempDir()
	m := New(".bak", false)
	path := filepath.Join(tmpDir, "mimeapps.list")

	result, err := m.Restore([]string{path})
	if err != nil {
		t.Fatalf("missing backups are not errors: %v", err)
	}
	if len(result.Missing) != 1 || result.Missing[0] != path {
		t.Errorf("expected %s reported missing, got %v", path, result.Missing)
	}
}

func TestRestoreDryRun(t *testing.T) {
	_, original := setupTestEnv(t)
	New(".bak", false).Backup(original)
	os.WriteFile(original, []byte("rewritten"), 0644)

	result, err := New(".bak", true).Restore([]string{original})
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if len(result.Restored) != 1 {
		t.Error("dry run should still report what would be restored")
	}

	got, _ := os.ReadFile(original)
	if string(got) != "rewritten" {
		t.Error("dry run should not touch the original")
	}
}
