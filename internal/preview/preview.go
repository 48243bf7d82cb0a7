// Package preview computes line diffs of the rewrites a cleaning run plans.
package preview

import (
	"fmt"
	"strconv"
	"strings"

	"desktopclean/internal/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around a change
const contextLines = 3

// DiffType represents the type of diff operation
type DiffType int

const (
	DiffEqual DiffType = iota
	DiffInsert
	DiffDelete
)

// DiffLine represents a single line in the diff
type DiffLine struct {
	Type    DiffType
	Content string
	OldNum  int // Line number in the old text (next line for inserts)
	NewNum  int // Line number in the new text (next line for deletes)
}

// DiffHunk represents a group of changes with surrounding context
type DiffHunk struct {
	StartOld int
	LenOld   int
	StartNew int
	LenNew   int
	Lines    []DiffLine
}

// Header returns the unified diff hunk header
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", span(h.StartOld, h.LenOld), span(h.StartNew, h.LenNew))
}

func span(start, n int) string {
	if n == 0 {
		// Empty range points at the line before
		return strconv.Itoa(start-1) + ",0"
	}
	if n == 1 {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(n)
}

// DiffResult contains the complete diff of one file rewrite
type DiffResult struct {
	Path         string
	Created      bool
	Identical    bool
	Hunks        []DiffHunk
	LinesAdded   int
	LinesRemoved int
}

// Compute computes the line diff between the old and new content of path.
// A nil before means the file is created.
func Compute(path string, before, after []byte) *DiffResult {
	result := &DiffResult{
		Path:    path,
		Created: before == nil,
	}

	oldText, newText := string(before), string(after)
	if oldText == newText && !result.Created {
		result.Identical = true
		return result
	}

	// Line mode diff: each line is mapped to a rune, diffed, then mapped back
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	lines := flatten(diffs)
	for _, l := range lines {
		switch l.Type {
		case DiffInsert:
			result.LinesAdded++
		case DiffDelete:
			result.LinesRemoved++
		}
	}

	result.Hunks = group(lines)
	result.Identical = len(result.Hunks) == 0
	return result
}

// FromChange computes the diff of a planned file change
func FromChange(c models.FileChange) *DiffResult {
	return Compute(c.Path, c.Before, c.After)
}

// flatten turns go-diff output into numbered lines
func flatten(diffs []diffmatchpatch.Diff) []DiffLine {
	var lines []DiffLine
	oldNum, newNum := 1, 1

	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, content := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			line := DiffLine{Content: content, OldNum: oldNum, NewNum: newNum}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				line.Type = DiffEqual
				oldNum++
				newNum++
			case diffmatchpatch.DiffInsert:
				line.Type = DiffInsert
				newNum++
			case diffmatchpatch.DiffDelete:
				line.Type = DiffDelete
				oldNum++
			}
			lines = append(lines, line)
		}
	}

	return lines
}

// group splits numbered lines into hunks. Changes closer than twice the
// context share a hunk.
func group(lines []DiffLine) []DiffHunk {
	var hunks []DiffHunk

	i := 0
	for i < len(lines) {
		if lines[i].Type == DiffEqual {
			i++
			continue
		}

		start := max(0, i-contextLines)
		end := i
		for end < len(lines) {
			if lines[end].Type != DiffEqual {
				end++
				continue
			}
			run := end
			for run < len(lines) && lines[run].Type == DiffEqual {
				run++
			}
			if run == len(lines) || run-end > 2*contextLines {
				end = min(len(lines), end+contextLines)
				break
			}
			end = run
		}

		hunk := DiffHunk{
			StartOld: lines[start].OldNum,
			StartNew: lines[start].NewNum,
			Lines:    lines[start:end],
		}
		for _, l := range hunk.Lines {
			if l.Type != DiffInsert {
				hunk.LenOld++
			}
			if l.Type != DiffDelete {
				hunk.LenNew++
			}
		}
		hunks = append(hunks, hunk)
		i = end
	}

	return hunks
}

// FormatUnified formats the diff result as a unified diff
func FormatUnified(result *DiffResult) string {
	if result.Identical {
		return ""
	}

	var sb strings.Builder

	oldName := "a" + result.Path
	if result.Created {
		oldName = "/dev/null"
	}
	sb.WriteString("--- " + oldName + "\n")
	sb.WriteString("+++ b" + result.Path + "\n")

	for _, hunk := range result.Hunks {
		sb.WriteString(hunk.Header() + "\n")
		for _, line := range hunk.Lines {
			switch line.Type {
			case DiffEqual:
				sb.WriteString(" " + line.Content + "\n")
			case DiffInsert:
				sb.WriteString("+" + line.Content + "\n")
			case DiffDelete:
				sb.WriteString("-" + line.Content + "\n")
			}
		}
	}

	return sb.String()
}

// HasChanges returns true if there are any changes
func (d *DiffResult) HasChanges() bool {
	return !d.Identical
}

// Summary returns a brief summary of changes
func (d *DiffResult) Summary() string {
	if d.Identical {
		return "No changes"
	}

	var parts []string
	if d.Created {
		parts = append(parts, "new file")
	}
	if d.LinesAdded > 0 {
		parts = append(parts, "+"+strconv.Itoa(d.LinesAdded))
	}
	if d.LinesRemoved > 0 {
		parts = append(parts, "-"+strconv.Itoa(d.LinesRemoved))
	}
	return strings.Join(parts, " ")
}
