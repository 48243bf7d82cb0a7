package cleaner

import (
	"errors"
	"fmt"
	"strings"

	"desktopclean/internal/backup"
)

// Stage names a step of a cleaning run
type Stage string

const (
	StageSetup        Stage = "setup"
	StageAssociations Stage = "associations"
)

// ErrCancelled is returned when the operator declines to proceed
var ErrCancelled = errors.New("operation cancelled")

// RunError is returned when a stage fails. Work done by earlier stages is
// kept.
type RunError struct {
	Stage Stage
	Err   error
}

func (e *RunError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "cleanup failed during %s", e.Stage)
	if e.Err != nil {
		fmt.Fprint(&msg, ": ", e.Err)
	}
	return msg.String()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(stage Stage, err error) *RunError {
	return &RunError{Stage: stage, Err: err}
}

// onlyBackupFailures reports whether every error joined in err is a
// backup failure
func onlyBackupFailures(err error) bool {
	if err == nil {
		return false
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var be *backup.BackupError
		return errors.As(err, &be)
	}
	for _, e := range joined.Unwrap() {
		if !onlyBackupFailures(e) {
			return false
		}
	}
	return true
}
