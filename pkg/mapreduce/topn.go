package mapreduce

import (
	"fmt"
	"path/filepath"
	"sort"
)

type fileCount struct {
	Path  string
	Words int
}

// sortedCounts returns the successful counts ordered by word count (descending), then path.
func sortedCounts(counts WordCounts) []fileCount {
	ss := make([]fileCount, 0, len(counts))
	for path, c := range counts {
		if c.IsError() {
			continue
		}
		ss = append(ss, fileCount{path, c.Words()})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Words != ss[j].Words {
			return ss[i].Words > ss[j].Words
		}
		return ss[i].Path < ss[j].Path
	})
	return ss
}

// TopFiles returns the n largest files by word count as "name:count" strings
// (e.g., "moby-dick.txt:215830"). Failed files are left out.
func TopFiles(counts WordCounts, n int) []string {
	ss := sortedCounts(counts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	top := make([]string, limit)
	for i := 0; i < limit; i++ {
		top[i] = fmt.Sprintf("%s:%d", filepath.Base(ss[i].Path), ss[i].Words)
	}
	return top
}

// SortedPaths returns every key in path order, failures included.
func SortedPaths(counts WordCounts) []string {
	paths := make([]string, 0, len(counts))
	for path := range counts {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
