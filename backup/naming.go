package backup

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimestampLayout = "2006-01-02T15-04-05"
)

func splitName(src string) (string, string) {
	name := filepath.Base(src)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if len(base) == 0 { //类似 .db 这种隐藏文件, 不拆分扩展名
		return name, ""
	}
	return base, ext
}

func buildName(src string, now time.Time, idx int) string {
	base, ext := splitName(src)
	name := base + "_" + now.UTC().Format(defaultTimestampLayout)
	if idx > 1 {
		name += "_" + strconv.Itoa(idx)
	}
	return name + ext
}

// BuildBackupName turns /data/takings.sqlite3 into takings_2025-01-08T08-15-00.sqlite3, using UTC.
func BuildBackupName(src string, now time.Time) string {
	return buildName(src, now, 0)
}

// BuildBackupNames names all files of one run. Files sharing a base name get a _2, _3, ...
// suffix so that no upload of the run overwrites another.
func BuildBackupNames(srcs []string, now time.Time) []string {
	rs := make([]string, 0, len(srcs))
	used := make(map[string]struct{}, len(srcs))
	for _, src := range srcs {
		name := buildName(src, now, 0)
		for idx := 2; ; idx++ {
			if _, ok := used[name]; !ok {
				break
			}
			name = buildName(src, now, idx)
		}
		used[name] = struct{}{}
		rs = append(rs, name)
	}
	return rs
}
