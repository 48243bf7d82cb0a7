package models

import (
	"path/filepath"
)

// Role tells which configured root a launcher file lives under
type Role int

const (
	RoleUnknown Role = iota // Outside both roots
	RoleSystem              // Vendor-managed, read-only
	RoleUser                // User-owned, read-write
)

// String returns a string representation of the role
func (r Role) String() string {
	switch r {
	case RoleSystem:
		return "system"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// Icon returns an icon for the role
func (r Role) Icon() string {
	switch r {
	case RoleSystem:
		return "⚙"
	case RoleUser:
		return "●"
	default:
		return "?"
	}
}

// MarshalText lets roles appear by name in JSON reports
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Tristate distinguishes a key that is missing from one set to false
type Tristate int

const (
	Absent Tristate = iota
	True
	False
)

// Bool reports whether the value is present and true
func (t Tristate) Bool() bool {
	return t == True
}

// String returns a string representation of the value
func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "absent"
	}
}

// MarshalText lets tristates appear by name in JSON reports
func (t Tristate) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// LauncherRecord is the minimal view of one .desktop file
type LauncherRecord struct {
	Path      string   `json:"path"`       // Full path on system
	Name      string   `json:"name"`       // Display name (Name=)
	HasName   bool     `json:"-"`          // Whether a Name= line was found
	Type      string   `json:"type"`       // Entry type (Type=), empty if absent
	NoDisplay Tristate `json:"no_display"` // Visibility flag (NoDisplay=)
	Role      Role     `json:"role"`       // Which root the file belongs to
}

// FileName returns the base name of the launcher file
func (r LauncherRecord) FileName() string {
	return filepath.Base(r.Path)
}

// IsApplication reports whether the record has a name and Type=Application
func (r LauncherRecord) IsApplication() bool {
	return r.HasName && r.Type == "Application"
}

// Hidden reports whether the record is already marked NoDisplay=true
func (r LauncherRecord) Hidden() bool {
	return r.NoDisplay.Bool()
}

// IsCandidate reports whether the record takes part in duplicate grouping
func (r LauncherRecord) IsCandidate() bool {
	return r.IsApplication() && !r.Hidden()
}

// DuplicateGroup holds every visible launcher sharing one display name
type DuplicateGroup struct {
	Name    string           `json:"name"`
	Records []LauncherRecord `json:"records"`
}

// Len returns the number of records in the group
func (g DuplicateGroup) Len() int {
	return len(g.Records)
}

// Paths returns the file paths of the group's records
func (g DuplicateGroup) Paths() []string {
	paths := make([]string, len(g.Records))
	for i, r := range g.Records {
		paths[i] = r.Path
	}
	return paths
}
