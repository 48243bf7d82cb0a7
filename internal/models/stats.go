package models

// RunStatistics holds the counters of one cleaning run
type RunStatistics struct {
	WineFilesRemoved      int `json:"wine_files_removed"`
	DuplicatesHidden      int `json:"duplicates_hidden"`
	MimeDuplicatesCleaned int `json:"mime_duplicates_cleaned"`
	BackupsCreated        int `json:"backups_created"`
}

// Total returns the number of changes counted by the run
func (s RunStatistics) Total() int {
	return s.WineFilesRemoved + s.DuplicatesHidden + s.MimeDuplicatesCleaned
}

// IsZero reports whether the run found nothing to do
func (s RunStatistics) IsZero() bool {
	return s == RunStatistics{}
}
