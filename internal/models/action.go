package models

// ActionKind is the type of change a run makes (or would make) on disk
type ActionKind int

const (
	ActionShadow    ActionKind = iota // New override stub in the user root
	ActionInPlace                     // NoDisplay=true written into a user file
	ActionRemove                      // Compatibility-layer file removed
	ActionRemoveDir                   // Backup directory with compatibility files removed
	ActionBackup                      // Association file copied aside
	ActionRewrite                     // Association file rewritten
)

// String returns a string representation of the action kind
func (k ActionKind) String() string {
	switch k {
	case ActionShadow:
		return "shadow"
	case ActionInPlace:
		return "hide"
	case ActionRemove:
		return "remove"
	case ActionRemoveDir:
		return "remove-dir"
	case ActionBackup:
		return "backup"
	case ActionRewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// MarshalText lets action kinds appear by name in JSON reports
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Action records one planned or applied change
type Action struct {
	Kind   ActionKind `json:"kind"`
	Name   string     `json:"name,omitempty"`   // Display name for launcher actions
	Source string     `json:"source"`           // File the action is about
	Target string     `json:"target,omitempty"` // File written, if different from Source
	Count  int        `json:"count,omitempty"`  // Files covered (directory removals)
	Err    error      `json:"-"`
	Error  string     `json:"error,omitempty"`
}

// Failed reports whether the action could not be applied
func (a Action) Failed() bool {
	return a.Err != nil
}

// WithError attaches an error to the action
func (a Action) WithError(err error) Action {
	a.Err = err
	if err != nil {
		a.Error = err.Error()
	}
	return a
}

// FileChange holds the content of a file before and after a rewrite
type FileChange struct {
	Path   string `json:"path"`
	Before []byte `json:"-"` // Empty when the file is created
	After  []byte `json:"-"`
}

// Created reports whether the change creates the file
func (c FileChange) Created() bool {
	return c.Before == nil
}
