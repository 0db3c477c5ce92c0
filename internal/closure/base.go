package closure

import (
	"path/filepath"
	"strings"
)

// CommonBase returns the longest directory prefix shared by every path,
// compared segment by segment. An empty input yields "". A single path
// (or a set of identical paths) yields that path unchanged.
func CommonBase(paths []string) string {
	return commonBase(paths, filepath.Separator)
}

// RootDir is CommonBase narrowed to a directory. When the shared prefix is
// itself one of paths, as with a single-file closure, its parent is used.
func RootDir(paths []string) string {
	base := CommonBase(paths)
	for _, p := range paths {
		if filepath.Clean(p) == base {
			return filepath.Dir(base)
		}
	}
	return base
}

func commonBase(paths []string, sep rune) string {
	if len(paths) == 0 {
		return ""
	}

	s := string(sep)
	common := strings.Split(paths[0], s)
	for _, p := range paths[1:] {
		parts := strings.Split(p, s)
		j := 0
		for j < len(common) && j < len(parts) && common[j] == parts[j] {
			j++
		}
		common = common[:j]
	}

	// Only the root (or a volume name) is shared: keep the trailing separator
	// so the result is still a usable directory.
	if len(common) == 1 {
		switch {
		case common[0] == "" && strings.HasPrefix(paths[0], s):
			return s
		case strings.HasSuffix(common[0], ":"):
			return common[0] + s
		}
	}
	return strings.Join(common, s)
}
