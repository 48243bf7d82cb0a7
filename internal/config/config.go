package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"desktopclean/internal/models"

	"gopkg.in/yaml.v3"
)

// Config holds the directories and switches a cleaning run works with
type Config struct {
	SystemDir      string `yaml:"system_dir"`      // Vendor launcher directory (read-only)
	UserDir        string `yaml:"user_dir"`        // User launcher directory (read-write)
	UserMimeApps   string `yaml:"user_mimeapps"`   // mimeapps.list inside the user launcher directory
	ConfigMimeApps string `yaml:"config_mimeapps"` // mimeapps.list inside the user config root
	MimeDir        string `yaml:"mime_dir"`        // User MIME database for update-mime-database
	BackupSuffix   string `yaml:"backup_suffix"`   // Suffix appended to association backups
	RefreshCaches  bool   `yaml:"refresh_caches"`  // Run the cache indexers after a real run

	DryRun  bool `yaml:"-"` // Compute everything, change nothing
	Verbose bool `yaml:"-"` // Log debug detail
}

// configFileName is the name of the config file
const configFileName = "config.yaml"

// DefaultBackupSuffix is appended to association files when backing them up
const DefaultBackupSuffix = ".bak"

// Default returns the default configuration for the current user
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataHome := xdgDir("XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share"))
	configHome := xdgDir("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))

	userDir := filepath.Join(dataHome, "applications")
	return &Config{
		SystemDir:      "/usr/share/applications",
		UserDir:        userDir,
		UserMimeApps:   filepath.Join(userDir, "mimeapps.list"),
		ConfigMimeApps: filepath.Join(configHome, "mimeapps.list"),
		MimeDir:        filepath.Join(dataHome, "mime"),
		BackupSuffix:   DefaultBackupSuffix,
		RefreshCaches:  true,
	}
}

// ForRoots returns a configuration confined to the given launcher directories.
// Association files default to the user directory and configDir.
func ForRoots(systemDir, userDir, configDir string) *Config {
	return &Config{
		SystemDir:      systemDir,
		UserDir:        userDir,
		UserMimeApps:   filepath.Join(userDir, "mimeapps.list"),
		ConfigMimeApps: filepath.Join(configDir, "mimeapps.list"),
		MimeDir:        filepath.Join(filepath.Dir(userDir), "mime"),
		BackupSuffix:   DefaultBackupSuffix,
		RefreshCaches:  true,
	}
}

// ConfigDir returns the directory containing desktopclean config files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config")), "desktopclean")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load loads the configuration from path, or from ConfigPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal over the defaults so omitted keys keep their default value
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.expand()
	return cfg, nil
}

// Save saves the configuration to path, or to ConfigPath when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserDir) == "" {
		return fmt.Errorf("user_dir is required")
	}
	if strings.TrimSpace(c.SystemDir) == "" {
		return fmt.Errorf("system_dir is required")
	}
	if filepath.Clean(c.UserDir) == filepath.Clean(c.SystemDir) {
		return fmt.Errorf("user_dir and system_dir must differ: %s", c.UserDir)
	}
	if c.BackupSuffix == "" {
		return fmt.Errorf("backup_suffix must not be empty")
	}
	return nil
}

// EnsureDirectories creates the user launcher directory
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.UserDir, 0755)
}

// MimeAppsFiles returns the association files in processing order
func (c *Config) MimeAppsFiles() []string {
	var files []string
	for _, f := range []string{c.UserMimeApps, c.ConfigMimeApps} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// Classify returns the role of path according to the configured roots
func (c *Config) Classify(path string) models.Role {
	inSystem, inUser := within(c.SystemDir, path), within(c.UserDir, path)
	switch {
	case inSystem && inUser:
		// Nested roots: the deeper one owns the file
		if len(filepath.Clean(c.UserDir)) > len(filepath.Clean(c.SystemDir)) {
			return models.RoleUser
		}
		return models.RoleSystem
	case inSystem:
		return models.RoleSystem
	case inUser:
		return models.RoleUser
	default:
		return models.RoleUnknown
	}
}

// ShadowPath returns where an override for the given launcher file goes
func (c *Config) ShadowPath(path string) string {
	return filepath.Join(c.UserDir, filepath.Base(path))
}

// WithDryRun returns a copy of the configuration with DryRun set
func (c *Config) WithDryRun(dryRun bool) *Config {
	cp := *c
	cp.DryRun = dryRun
	return &cp
}

// expand resolves ~ and environment variables in every path
func (c *Config) expand() {
	for _, p := range []*string{&c.SystemDir, &c.UserDir, &c.UserMimeApps, &c.ConfigMimeApps, &c.MimeDir} {
		*p = ExpandPath(*p)
	}
}

// ExpandPath expands a leading ~ and $VARS in path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// within reports whether path is root itself or below it
func within(root, path string) bool {
	if root == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func xdgDir(env, fallback string) string {
	if v := os.Getenv(env); v != "" && filepath.IsAbs(v) {
		return v
	}
	return fallback
}
