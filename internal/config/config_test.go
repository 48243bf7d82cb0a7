package config

import (
	"os"
	"path/filepath"
	"testing"

	"desktopclean/internal/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default should return a Config")
	}
	if cfg.SystemDir != "/usr/share/applications" {
		t.Errorf("Expected system dir /usr/share/applications, got %s", cfg.SystemDir)
	}
	if cfg.UserDir == "" {
		t.Error("UserDir should not be empty")
	}
	if filepath.Base(cfg.UserMimeApps) != "mimeapps.list" {
		t.Errorf("Expected user mimeapps.list, got %s", cfg.UserMimeApps)
	}
	if filepath.Dir(cfg.UserMimeApps) != cfg.UserDir {
		t.Error("user mimeapps.list should live in the user launcher directory")
	}
	if cfg.BackupSuffix != DefaultBackupSuffix {
		t.Errorf("Expected backup suffix %s, got %s", DefaultBackupSuffix, cfg.BackupSuffix)
	}
	if !cfg.RefreshCaches {
		t.Error("RefreshCaches should be true by default")
	}
	if cfg.DryRun || cfg.Verbose {
		t.Error("DryRun and Verbose should be off by default")
	}
}

func TestDefault_XDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg := Default()
	expected := filepath.Join(dataHome, "applications")
	if cfg.UserDir != expected {
		t.Errorf("Expected %s, got %s", expected, cfg.UserDir)
	}
}

func TestConfigPath(t *testing.T) {
	path := ConfigPath()

	if path == "" {
		t.Error("ConfigPath should not be empty")
	}
	if !filepath.IsAbs(path) {
		t.Error("ConfigPath should return absolute path")
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected config file name 'config.yaml', got %s", filepath.Base(path))
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SystemDir != Default().SystemDir {
		t.Errorf("Expected default system dir, got %s", cfg.SystemDir)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	content := "system_dir: /opt/apps\nuser_dir: ~/apps\nrefresh_caches: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SystemDir != "/opt/apps" {
		t.Errorf("Expected /opt/apps, got %s", cfg.SystemDir)
	}
	homeDir, _ := os.UserHomeDir()
	if cfg.UserDir != filepath.Join(homeDir, "apps") {
		t.Errorf("Expected ~ to expand, got %s", cfg.UserDir)
	}
	if cfg.RefreshCaches {
		t.Error("refresh_caches: false should be honoured")
	}
	if cfg.BackupSuffix != DefaultBackupSuffix {
		t.Error("omitted keys should keep their default")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("system_dir: [unclosed\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := ForRoots(filepath.Join(tmpDir, "sys"), filepath.Join(tmpDir, "user"), tmpDir)
	cfg.DryRun = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.UserDir != cfg.UserDir {
		t.Errorf("Expected %s, got %s", cfg.UserDir, loaded.UserDir)
	}
	if loaded.DryRun {
		t.Error("DryRun is a runtime flag and should not be persisted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no user dir", func(c *Config) { c.UserDir = "" }, true},
		{"no system dir", func(c *Config) { c.SystemDir = " " }, true},
		{"same dirs", func(c *Config) { c.UserDir = c.SystemDir + "/" }, true},
		{"no suffix", func(c *Config) { c.BackupSuffix = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ForRoots("/sys/apps", "/home/u/apps", "/home/u/.config")
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	cfg := ForRoots("/usr/share/applications", "/home/u/.local/share/applications", "/home/u/.config")

	tests := []struct {
		path string
		role models.Role
	}{
		{"/usr/share/applications/firefox.desktop", models.RoleSystem},
		{"/home/u/.local/share/applications/firefox.desktop", models.RoleUser},
		{"/usr/share/applications-extra/x.desktop", models.RoleUnknown},
		{"/opt/x.desktop", models.RoleUnknown},
	}

	for _, tt := range tests {
		if got := cfg.Classify(tt.path); got != tt.role {
			t.Errorf("Classify(%s) = %v, want %v", tt.path, got, tt.role)
		}
	}
}

func TestClassify_NestedRoots(t *testing.T) {
	cfg := ForRoots("/data", "/data/user", "/cfg")

	if got := cfg.Classify("/data/user/a.desktop"); got != models.RoleUser {
		t.Errorf("Expected user role for nested root, got %v", got)
	}
	if got := cfg.Classify("/data/a.desktop"); got != models.RoleSystem {
		t.Errorf("Expected system role, got %v", got)
	}
}

func TestShadowPath(t *testing.T) {
	cfg := ForRoots("/usr/share/applications", "/home/u/apps", "/home/u/.config")

	got := cfg.ShadowPath("/usr/share/applications/org.gnome.Evince.desktop")
	if got != "/home/u/apps/org.gnome.Evince.desktop" {
		t.Errorf("Unexpected shadow path %s", got)
	}
}

func TestMimeAppsFiles(t *testing.T) {
	cfg := ForRoots("/sys", "/user", "/cfg")
	files := cfg.MimeAppsFiles()

	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if files[0] != "/user/mimeapps.list" || files[1] != "/cfg/mimeapps.list" {
		t.Errorf("Unexpected order: %v", files)
	}

	cfg.ConfigMimeApps = ""
	if len(cfg.MimeAppsFiles()) != 1 {
		t.Error("empty paths should be skipped")
	}
}

func TestWithDryRun(t *testing.T) {
	cfg := Default()
	dry := cfg.WithDryRun(true)

	if !dry.DryRun {
		t.Error("copy should be dry run")
	}
	if cfg.DryRun {
		t.Error("original should be untouched")
	}
}

func TestEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := ForRoots(filepath.Join(tmpDir, "sys"), filepath.Join(tmpDir, "a", "b", "apps"), tmpDir)

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.UserDir); err != nil || !info.IsDir() {
		t.Error("user directory should exist")
	}
	if _, err := os.Stat(cfg.SystemDir); !os.IsNotExist(err) {
		t.Error("system directory must not be created")
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("DESKTOPCLEAN_TEST_DIR", "/tmp/dc")
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"~/x", filepath.Join(homeDir, "x")},
		{"$DESKTOPCLEAN_TEST_DIR/apps", "/tmp/dc/apps"},
		{"/abs//path/", "/abs/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
