// Package desktop reads and rewrites the handful of .desktop launcher keys
// the cleaner cares about.
//
// Keys are matched by line prefix anywhere in the file, not only inside the
// [Desktop Entry] group, so a Name= under a [Desktop Action] group can win if
// it comes first. Localized keys (Name[de]=) never match.
package desktop

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"desktopclean/internal/models"
)

const (
	// SectionHeader opens the main group of a launcher file
	SectionHeader = "[Desktop Entry]"
	// TypeApplication is the only entry type considered for deduplication
	TypeApplication = "Application"

	keyName      = "Name="
	keyNoDisplay = "NoDisplay="
	keyType      = "Type="
)

// Extract reads the launcher file at path. A read failure returns an empty
// record for path together with the error; callers log it and move on.
func Extract(path string) (models.LauncherRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.LauncherRecord{Path: path}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Parse(f)
	rec.Path = path
	if err != nil {
		return rec, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rec, nil
}

// Parse extracts Name, Type and NoDisplay from r. The first occurrence of
// each key wins. Bytes that are not valid UTF-8 are replaced, never fatal.
func Parse(r io.Reader) (models.LauncherRecord, error) {
	var rec models.LauncherRecord
	var seenType, seenNoDisplay bool

	// Lines have no length limit
	br := bufio.NewReader(r)
	for {
		raw, readErr := br.ReadString('\n')
		if raw == "" && readErr != nil {
			if readErr == io.EOF {
				return rec, nil
			}
			return rec, readErr
		}
		line := strings.TrimSpace(strings.ToValidUTF8(raw, "\uFFFD"))

		switch {
		case strings.HasPrefix(line, keyName):
			if !rec.HasName {
				rec.Name = strings.TrimPrefix(line, keyName)
				rec.HasName = true
			}
		case strings.HasPrefix(line, keyNoDisplay):
			if !seenNoDisplay {
				rec.NoDisplay = parseBool(strings.TrimPrefix(line, keyNoDisplay))
				seenNoDisplay = true
			}
		case strings.HasPrefix(line, keyType):
			if !seenType {
				rec.Type = strings.TrimPrefix(line, keyType)
				seenType = true
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				return rec, nil
			}
			// Keep what was read before the I/O error
			return rec, readErr
		}
	}
}

func parseBool(value string) models.Tristate {
	if strings.EqualFold(strings.TrimSpace(value), "true") {
		return models.True
	}
	return models.False
}

// Stub returns the minimal launcher that hides name when placed in the user
// directory under the same file name as a system launcher.
func Stub(name string) []byte {
	var b strings.Builder
	b.WriteString(SectionHeader + "\n")
	b.WriteString(keyType + TypeApplication + "\n")
	b.WriteString(keyName + name + "\n")
	b.WriteString(keyNoDisplay + "true\n")
	return []byte(b.String())
}

// MarkHidden returns content with every NoDisplay= line removed and a single
// NoDisplay=true placed right after the first [Desktop Entry] header. Without
// a header, the header and the flag are appended. Other lines are kept as-is,
// including their line endings.
func MarkHidden(content []byte) []byte {
	lines := splitLinesKeepEnds(content)

	eol := []byte("\n")
	if bytes.Contains(content, []byte("\r\n")) {
		eol = []byte("\r\n")
	}
	flag := append([]byte(keyNoDisplay+"true"), eol...)

	out := make([]byte, 0, len(content)+len(flag))
	inserted := false
	for _, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte(keyNoDisplay)) {
			continue
		}
		out = append(out, line...)
		if !inserted && string(trimmed) == SectionHeader {
			if !bytes.HasSuffix(line, []byte("\n")) {
				out = append(out, eol...)
			}
			out = append(out, flag...)
			inserted = true
		}
	}

	if !inserted {
		if len(out) > 0 && !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, eol...)
		}
		out = append(out, []byte(SectionHeader)...)
		out = append(out, eol...)
		out = append(out, flag...)
	}

	return out
}

// IsHidden reports whether content already carries NoDisplay=true as its
// first NoDisplay key.
func IsHidden(content []byte) bool {
	rec, _ := Parse(bytes.NewReader(content))
	return rec.Hidden()
}

// splitLinesKeepEnds splits content after every '\n', keeping the separator
func splitLinesKeepEnds(content []byte) [][]byte {
	var lines [][]byte
	for len(content) > 0 {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return lines
}
