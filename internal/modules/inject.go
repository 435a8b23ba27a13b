package modules

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/renato0307/lmtt/internal/errs"
)

// Marker comments delimiting the block lmtt manages in third-party files.
// They are identical for every module so cleanup needs no module knowledge.
const (
	MarkerStart = "# >>> lmtt managed block - do not edit manually >>>"
	MarkerEnd   = "# <<< lmtt managed block <<<"
)

// separator between the managed block and the original content
const separator = "\n\n"

// IsIncluded reports whether the file at path currently contains line.
// Missing or unreadable files report false.
func IsIncluded(path, line string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), line)
}

// InjectInclude prepends a marker block holding line to the file at path.
// The file must exist. If line is already present the file is left as is.
func InjectInclude(path, line string) error {
	content, perm, err := readConfig(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.NotFound("inject "+path, err)
		}
		return errs.IO("inject "+path, err)
	}

	if strings.Contains(content, line) {
		return nil
	}

	block := MarkerStart + "\n" + line + "\n" + MarkerEnd
	if err := os.WriteFile(path, []byte(block+separator+content), perm); err != nil {
		return errs.IO("inject "+path, err)
	}
	return nil
}

// RemoveInclude deletes the marker block from the file at path, or, when no
// block is present, the bare line. A missing file is already clean.
func RemoveInclude(path, line string) error {
	content, perm, err := readConfig(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errs.IO("remove from "+path, err)
	}

	updated, ok := removeBlock(content)
	if !ok {
		updated, ok = removeLine(content, line)
	}
	if !ok {
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), perm); err != nil {
		return errs.IO("remove from "+path, err)
	}
	return nil
}

// removeBlock cuts the first marker block plus the separator newlines that
// follow it
func removeBlock(content string) (string, bool) {
	start := strings.Index(content, MarkerStart)
	if start < 0 {
		return content, false
	}
	rel := strings.Index(content[start:], MarkerEnd)
	if rel < 0 {
		return content, false
	}
	end := start + rel + len(MarkerEnd)

	rest := content[end:]
	for i := 0; i < len(separator) && strings.HasPrefix(rest, "\n"); i++ {
		rest = rest[1:]
	}
	return content[:start] + rest, true
}

func removeLine(content, line string) (string, bool) {
	if line == "" {
		return content, false
	}
	if strings.Contains(content, line+"\n") {
		return strings.Replace(content, line+"\n", "", 1), true
	}
	if strings.HasSuffix(content, line) {
		return strings.TrimSuffix(content, line), true
	}
	return content, false
}

func readConfig(path string) (string, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	return string(data), info.Mode().Perm(), nil
}
